package scheduling

import (
	"time"
)

// Mode selects which kind of appointment a slot serves.
type Mode string

const (
	ModeClinic Mode = "clinic"
	ModeVideo  Mode = "video"
)

// Appointment statuses that are visible to slot generation.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Default booking window applied when a doctor has no explicit end buffer.
const DefaultEndBufferDays = 365

// Sentinel generation parameters for the "no doctor" roster entry.
const (
	sentinelStartMinute  = 8 * 60  // 08:00
	sentinelEndMinute    = 20 * 60 // 20:00
	sentinelSlotDuration = 30
)

// DateFormat is the canonical calendar-date encoding used when matching
// existing appointments against generated slots.
const DateFormat = "2006-01-02"

// LabelFormat renders slot labels on a 12-hour clock.
const LabelFormat = "03:04 PM"

// Availability is one weekly template window for a doctor. A doctor may have
// several windows on the same weekday, e.g. a morning clinic window and an
// afternoon video window.
type Availability struct {
	Day          time.Weekday
	Closed       bool
	StartTime    string // HH:MM, local time of day
	EndTime      string // HH:MM, exclusive
	SlotDuration int    // minutes between slot starts
	Persons      int    // bookings allowed at one slot start
	ClinicTime   bool
	VideoTime    bool
}

// Doctor is the canonical roster entry slot generation works against.
// Storage shapes are normalized into this type before they get here.
type Doctor struct {
	ID              string
	Name            string
	Specialty       string
	Availability    []Availability
	StartBufferDays int
	EndBufferDays   int

	// Sentinel marks the "no doctor" roster entry: generic 08:00-20:00
	// half-hour slots, no capacity limit, buffers ignored.
	Sentinel bool
}

// BookedAppointment is an existing appointment as seen by slot generation.
type BookedAppointment struct {
	DoctorID  string
	Date      string // yyyy-MM-dd
	TimeLabel string
	Status    string
	Mode      Mode
}

// TimeSlot is one bookable instant for a doctor/date/mode.
type TimeSlot struct {
	Time     time.Time `json:"time"`
	Label    string    `json:"label"`
	Disabled bool      `json:"disabled"`
}

// CountsTowardCapacity reports whether an appointment status consumes a seat.
// Cancelled, completed and any other status leave the seat free.
func CountsTowardCapacity(status string) bool {
	return status == StatusApproved || status == StatusPending
}

// truncateToDay zeroes the time of day, keeping the location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// atMinute places a minute-of-day offset onto a calendar date.
func atMinute(date time.Time, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, date.Location())
}

// sameDay reports whether two instants fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
