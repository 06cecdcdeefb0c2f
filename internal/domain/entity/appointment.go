package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked visit. The patient snapshot fields are
// captured at booking time so the record stays intact even if the patient
// record is edited later.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        *uuid.UUID        `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	PatientID       *uuid.UUID        `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	Date            time.Time         `gorm:"type:date;not null;index" json:"date"`
	TimeLabel       string            `gorm:"type:varchar(10);not null" json:"time_label"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Mode            string            `gorm:"type:varchar(10);not null" json:"mode"`
	AppointmentType string            `gorm:"type:varchar(20);not null" json:"appointment_type"`
	ClinicalReason  string            `gorm:"type:varchar(20);not null" json:"clinical_reason"`
	Source          string            `gorm:"type:varchar(20);not null;index" json:"source"`
	PatientName     string            `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientPhone    string            `gorm:"type:varchar(20)" json:"patient_phone,omitempty"`
	PatientEmail    string            `gorm:"type:varchar(255)" json:"patient_email,omitempty"`
	PatientDOB      *time.Time        `gorm:"type:date" json:"patient_dob,omitempty"`
	PatientAge      string            `gorm:"type:varchar(20)" json:"patient_age,omitempty"`
	ReferralName    string            `gorm:"type:varchar(255)" json:"referral_name,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is awaiting approval
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Approve moves a pending appointment to approved
func (a *Appointment) Approve() {
	a.Status = AppointmentStatusApproved
}

// Cancel marks the appointment as cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
