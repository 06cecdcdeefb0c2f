package converter

import (
	"clinic-booking-service/internal/bookingflow"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/scheduling"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:          patient.ID,
		FirstName:   patient.FirstName,
		LastName:    patient.LastName,
		FullName:    patient.FullName(),
		DateOfBirth: patient.DateOfBirth.Format(scheduling.DateFormat),
		Age:         patient.Age,
		PhoneNumber: patient.PhoneNumber,
		Email:       patient.Email,
		Address:     patient.Address,
		Notes:       patient.Notes,
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PatientToExisting normalizes a stored patient record into the booking
// flow's autofill shape.
func PatientToExisting(patient *entity.Patient) bookingflow.ExistingPatient {
	return bookingflow.ExistingPatient{
		ID:        patient.ID.String(),
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		DOB:       patient.DateOfBirth,
		Phone:     patient.PhoneNumber,
		Email:     patient.Email,
		Address:   patient.Address,
		Age:       patient.Age,
	}
}
