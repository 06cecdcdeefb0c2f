package entity

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	DoctorID string
	StartAt  string // yyyy-MM-dd inclusive
	EndAt    string // yyyy-MM-dd inclusive
	Status   string
	Source   string
}
