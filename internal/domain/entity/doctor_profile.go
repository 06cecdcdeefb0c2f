package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data. Buffer days bound
// how far ahead of today the doctor accepts bookings.
type DoctorProfile struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization  string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography       string    `gorm:"type:text" json:"biography,omitempty"`
	StartBufferDays int       `gorm:"not null;default:0" json:"start_buffer_days"`
	EndBufferDays   int       `gorm:"not null;default:365" json:"end_buffer_days"`

	// Relationships
	User         User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availability []DoctorAvailability `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
	Appointments []Appointment        `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
