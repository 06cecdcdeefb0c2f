package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved completed cancelled"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	DoctorID        *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName      string     `json:"doctor_name,omitempty"`
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
	Date            string     `json:"date"`
	TimeLabel       string     `json:"time_label"`
	Status          string     `json:"status"`
	Mode            string     `json:"mode"`
	AppointmentType string     `json:"appointment_type"`
	ClinicalReason  string     `json:"clinical_reason"`
	Source          string     `json:"source"`
	PatientName     string     `json:"patient_name"`
	PatientPhone    string     `json:"patient_phone,omitempty"`
	PatientEmail    string     `json:"patient_email,omitempty"`
	PatientDOB      string     `json:"patient_dob,omitempty"`
	PatientAge      string     `json:"patient_age,omitempty"`
	ReferralName    string     `json:"referral_name,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
