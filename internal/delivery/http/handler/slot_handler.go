package handler

import (
	"net/http"
	"strconv"

	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase) *SlotHandler {
	return &SlotHandler{slotUsecase: slotUsecase}
}

// GetSlots serves the time grid for one day. Query parameters: date
// (required, YYYY-MM-DD), mode (required, clinic|video) and doctor_id
// (optional; empty means the generic "no doctor" entry).
func (h *SlotHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	slots, err := h.slotUsecase.GetAvailableSlots(r.Context(), query.Get("doctor_id"), query.Get("date"), query.Get("mode"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidAppointmentMode, usecase.ErrInvalidDoctorID:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to load slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

// GetBookableDates serves the calendar's enabled cells. Query parameters:
// doctor_id (optional), from (optional, defaults to today) and days
// (optional window length, defaults to 31).
func (h *SlotHandler) GetBookableDates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	days := 31
	if raw := query.Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(w, http.StatusBadRequest, "days must be a positive integer", nil)
			return
		}
		days = parsed
	}

	dates, err := h.slotUsecase.GetBookableDates(r.Context(), query.Get("doctor_id"), query.Get("from"), days)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDoctorID:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to load bookable dates")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookable dates retrieved successfully", dates)
}
