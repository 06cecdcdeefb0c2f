package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Order("first_name ASC, last_name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// Search matches name, phone or email, used by the existing-patient picker.
func (r *patientRepository) Search(db *gorm.DB, query string) ([]entity.Patient, error) {
	var patients []entity.Patient
	pattern := "%" + query + "%"
	err := db.
		Where("first_name ILIKE ? OR last_name ILIKE ? OR phone_number LIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern).
		Order("first_name ASC, last_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

func (r *patientRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Patient{})
	return affected.RowsAffected, affected.Error
}
