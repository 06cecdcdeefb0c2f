package repository

import (
	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorAvailabilityRepository interface {
	Create(db *gorm.DB, window *entity.DoctorAvailability) error
	FindByID(db *gorm.DB, id int) (*entity.DoctorAvailability, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error)
	Update(db *gorm.DB, window *entity.DoctorAvailability) error
	Delete(db *gorm.DB, id int) (int64, error)
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.DoctorAvailability) error
}
