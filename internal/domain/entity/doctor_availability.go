package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorAvailability is one weekly template window for a doctor. A doctor may
// carry several rows for the same weekday, e.g. a morning clinic window and an
// afternoon video window.
type DoctorAvailability struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Day          string    `gorm:"type:varchar(10);not null;index" json:"day"`
	Closed       bool      `gorm:"not null;default:false" json:"closed"`
	StartTime    string    `gorm:"type:time;not null" json:"start_time"`
	EndTime      string    `gorm:"type:time;not null" json:"end_time"`
	SlotDuration int       `gorm:"not null" json:"slot_duration"`
	Persons      int       `gorm:"not null;default:1" json:"persons"`
	IsClinicTime bool      `gorm:"not null;default:true" json:"is_clinic_time"`
	IsVideoTime  bool      `gorm:"not null;default:false" json:"is_video_time"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availabilities"
}

// Weekday names stored in the Day column.
var WeekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}
