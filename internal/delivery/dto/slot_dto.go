package dto

import "time"

// Response DTOs

type SlotResponse struct {
	Time     time.Time `json:"time"`
	Label    string    `json:"label"`
	Disabled bool      `json:"disabled"`
}

type SlotListResponse struct {
	DoctorID string         `json:"doctor_id,omitempty"`
	Date     string         `json:"date"`
	Mode     string         `json:"mode"`
	Slots    []SlotResponse `json:"slots"`
	Total    int            `json:"total"`
}

// BookableDatesResponse enables/disables calendar cells for a month.
type BookableDatesResponse struct {
	DoctorID string   `json:"doctor_id,omitempty"`
	Dates    []string `json:"dates"`
	Total    int      `json:"total"`
}
