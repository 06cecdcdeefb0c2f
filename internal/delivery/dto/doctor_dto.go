package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// AvailabilityInput is one weekly template window as submitted by the
// availability editor.
type AvailabilityInput struct {
	Day          string `json:"day" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	Closed       bool   `json:"closed"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	SlotDuration int    `json:"slot_duration" validate:"required,min=1"`
	Persons      int    `json:"persons" validate:"required,min=1"`
	IsClinicTime bool   `json:"is_clinic_time"`
	IsVideoTime  bool   `json:"is_video_time"`
}

type CreateDoctorRequest struct {
	Email           string              `json:"email" validate:"required,email"`
	Password        string              `json:"password" validate:"required,min=6"`
	FullName        string              `json:"full_name" validate:"required,min=2"`
	Specialization  string              `json:"specialization" validate:"required"`
	Biography       string              `json:"biography" validate:"omitempty"`
	StartBufferDays int                 `json:"start_buffer_days" validate:"omitempty,min=0"`
	EndBufferDays   int                 `json:"end_buffer_days" validate:"omitempty,min=0"`
	Availability    []AvailabilityInput `json:"availability" validate:"omitempty,dive"`
}

type UpdateDoctorRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	FullName        string `json:"full_name" validate:"omitempty,min=2"`
	Specialization  string `json:"specialization" validate:"omitempty"`
	Biography       string `json:"biography" validate:"omitempty"`
	StartBufferDays *int   `json:"start_buffer_days" validate:"omitempty,min=0"`
	EndBufferDays   *int   `json:"end_buffer_days" validate:"omitempty,min=0"`
	IsActive        *bool  `json:"is_active" validate:"omitempty"`
}

type ReplaceAvailabilityRequest struct {
	Availability []AvailabilityInput `json:"availability" validate:"required,dive"`
}

// Response DTOs

type AvailabilityResponse struct {
	ID           int    `json:"id"`
	Day          string `json:"day"`
	Closed       bool   `json:"closed"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotDuration int    `json:"slot_duration"`
	Persons      int    `json:"persons"`
	IsClinicTime bool   `json:"is_clinic_time"`
	IsVideoTime  bool   `json:"is_video_time"`
}

type DoctorProfileResponse struct {
	Specialization  string `json:"specialization"`
	Biography       string `json:"biography,omitempty"`
	StartBufferDays int    `json:"start_buffer_days"`
	EndBufferDays   int    `json:"end_buffer_days"`
}

type DoctorResponse struct {
	ID              uuid.UUID              `json:"id"`
	Email           string                 `json:"email"`
	FullName        string                 `json:"full_name"`
	Specialization  string                 `json:"specialization"`
	Biography       string                 `json:"biography,omitempty"`
	StartBufferDays int                    `json:"start_buffer_days"`
	EndBufferDays   int                    `json:"end_buffer_days"`
	IsActive        *bool                  `json:"is_active"`
	Availability    []AvailabilityResponse `json:"availability"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
