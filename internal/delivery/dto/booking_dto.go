package dto

// Request DTOs

// BookingPatientInput carries manually entered patient details for the final
// wizard step. Validation happens in the booking flow, which reports one
// message per invalid field.
type BookingPatientInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // Format: YYYY-MM-DD
	Age         int    `json:"age"`
	AgeUnit     string `json:"age_unit"` // days|months|years
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// SubmitBookingRequest replays a completed booking wizard on the server.
// Structural requirements are tagged here; the step/compatibility rules
// (follow-up availability, treatment vs video, buffer windows, slot
// capacity) are enforced by the booking flow itself.
type SubmitBookingRequest struct {
	Source          string               `json:"source" validate:"omitempty,oneof=online walk-in campaign-ads referral"`
	AppointmentType string               `json:"appointment_type" validate:"required,oneof=new follow-up"`
	ClinicalReason  string               `json:"clinical_reason" validate:"required,oneof=consultation treatment"`
	DoctorID        string               `json:"doctor_id" validate:"omitempty,uuid"` // empty selects the generic "no doctor" roster entry
	Date            string               `json:"date" validate:"required"`            // Format: YYYY-MM-DD
	TimeLabel       string               `json:"time_label" validate:"required"`
	Mode            string               `json:"mode" validate:"required,oneof=clinic video"`
	PatientID       string               `json:"patient_id" validate:"omitempty,uuid"`
	Patient         *BookingPatientInput `json:"patient" validate:"omitempty"`
	ReferralName    string               `json:"referral_name" validate:"omitempty"`
	Notes           string               `json:"notes" validate:"omitempty"`
}
