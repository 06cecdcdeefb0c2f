package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorAvailabilityRepository struct{}

func NewDoctorAvailabilityRepository() domainRepo.DoctorAvailabilityRepository {
	return &doctorAvailabilityRepository{}
}

func (r *doctorAvailabilityRepository) Create(db *gorm.DB, window *entity.DoctorAvailability) error {
	return db.Create(window).Error
}

func (r *doctorAvailabilityRepository) FindByID(db *gorm.DB, id int) (*entity.DoctorAvailability, error) {
	var window entity.DoctorAvailability
	err := db.Where("id = ?", id).First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func (r *doctorAvailabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error) {
	var windows []entity.DoctorAvailability
	err := db.Where("doctor_id = ?", doctorID).Order("day ASC, start_time ASC").Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *doctorAvailabilityRepository) Update(db *gorm.DB, window *entity.DoctorAvailability) error {
	return db.Omit("Doctor").Save(window).Error
}

func (r *doctorAvailabilityRepository) Delete(db *gorm.DB, id int) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.DoctorAvailability{})
	return affected.RowsAffected, affected.Error
}

// ReplaceForDoctor swaps a doctor's whole weekly template in one go. The
// availability editor always submits the full template.
func (r *doctorAvailabilityRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.DoctorAvailability) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorAvailability{}).Error; err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}
	for i := range windows {
		windows[i].ID = 0
		windows[i].DoctorID = doctorID
	}
	return db.Create(&windows).Error
}
