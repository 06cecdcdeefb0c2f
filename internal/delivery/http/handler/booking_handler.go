package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"clinic-booking-service/internal/bookingflow"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// SubmitBooking handles the staff-facing wizard submission.
func (h *BookingHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.bookingUsecase.SubmitInternal)
}

// SubmitPublicBooking handles the unauthenticated website iframe variant.
func (h *BookingHandler) SubmitPublicBooking(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.bookingUsecase.SubmitPublic)
}

func (h *BookingHandler) submit(w http.ResponseWriter, r *http.Request, submit func(ctx context.Context, req *dto.SubmitBookingRequest) (*dto.AppointmentResponse, bookingflow.FieldErrors, error)) {
	var req dto.SubmitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, fieldErrs, err := submit(r.Context(), &req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.ValidationError(w, fieldErrs)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *BookingHandler) writeSubmitError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDoctorID,
		bookingflow.ErrInvalidSource, bookingflow.ErrInvalidType, bookingflow.ErrInvalidReason,
		bookingflow.ErrInvalidMode, bookingflow.ErrFollowUpUnavailable, bookingflow.ErrVideoNotAllowed,
		bookingflow.ErrDateNotBookable, bookingflow.ErrExistingPatientOnly, bookingflow.ErrDoctorLocked:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case usecase.ErrSlotNotFound, bookingflow.ErrSlotDisabled, bookingflow.ErrSlotInPast:
		response.Error(w, http.StatusConflict, err.Error(), nil)
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	default:
		response.InternalServerError(w, "Failed to book appointment")
	}
}
