package converter

import (
	"time"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/scheduling"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              profile.UserID,
		Email:           profile.User.Email,
		FullName:        profile.User.FullName,
		Specialization:  profile.Specialization,
		Biography:       profile.Biography,
		StartBufferDays: profile.StartBufferDays,
		EndBufferDays:   profile.EndBufferDays,
		IsActive:        profile.User.IsActive,
		Availability:    AvailabilitiesToResponses(profile.Availability),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

func AvailabilitiesToResponses(windows []entity.DoctorAvailability) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(windows))
	for i, window := range windows {
		responses[i] = dto.AvailabilityResponse{
			ID:           window.ID,
			Day:          window.Day,
			Closed:       window.Closed,
			StartTime:    window.StartTime,
			EndTime:      window.EndTime,
			SlotDuration: window.SlotDuration,
			Persons:      window.Persons,
			IsClinicTime: window.IsClinicTime,
			IsVideoTime:  window.IsVideoTime,
		}
	}
	return responses
}

// AvailabilityInputToEntity maps one editor window onto the storage row.
func AvailabilityInputToEntity(input dto.AvailabilityInput) entity.DoctorAvailability {
	return entity.DoctorAvailability{
		Day:          input.Day,
		Closed:       input.Closed,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		SlotDuration: input.SlotDuration,
		Persons:      input.Persons,
		IsClinicTime: input.IsClinicTime,
		IsVideoTime:  input.IsVideoTime,
	}
}

// DoctorToScheduling normalizes a stored doctor profile into the canonical
// model the slot generator works against. This is the only place the storage
// shape (profile + user + availability rows) is flattened, so the core never
// branches on record shapes.
func DoctorToScheduling(profile *entity.DoctorProfile) *scheduling.Doctor {
	if profile == nil {
		return nil
	}

	doctor := &scheduling.Doctor{
		ID:              profile.UserID.String(),
		Name:            profile.User.FullName,
		Specialty:       profile.Specialization,
		StartBufferDays: profile.StartBufferDays,
		EndBufferDays:   profile.EndBufferDays,
		Availability:    make([]scheduling.Availability, 0, len(profile.Availability)),
	}

	for _, window := range profile.Availability {
		day, ok := weekdayFromName(window.Day)
		if !ok {
			continue
		}
		doctor.Availability = append(doctor.Availability, scheduling.Availability{
			Day:          day,
			Closed:       window.Closed,
			StartTime:    window.StartTime,
			EndTime:      window.EndTime,
			SlotDuration: window.SlotDuration,
			Persons:      window.Persons,
			ClinicTime:   window.IsClinicTime,
			VideoTime:    window.IsVideoTime,
		})
	}

	return doctor
}

// SentinelDoctor is the "No Doctor" roster entry used by sources that do not
// require a specific physician.
func SentinelDoctor() *scheduling.Doctor {
	return &scheduling.Doctor{Sentinel: true, Name: "No Doctor"}
}

func weekdayFromName(name string) (time.Weekday, bool) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if day.String() == name {
			return day, true
		}
	}
	return 0, false
}
