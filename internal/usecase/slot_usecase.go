package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/scheduling"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDoctorID        = errors.New("doctor id is not a valid uuid")
	ErrInvalidAppointmentMode = errors.New("appointment mode must be clinic or video")
)

type SlotUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID, dateStr, modeStr string) (*dto.SlotListResponse, error)
	GetBookableDates(ctx context.Context, doctorID, fromStr string, days int) (*dto.BookableDatesResponse, error)
}

type slotUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	directory       *service.DirectorySnapshotService
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	directory *service.DirectorySnapshotService,
) SlotUsecase {
	return &slotUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		directory:       directory,
	}
}

// GetAvailableSlots generates the slot grid for one doctor, date and mode.
// An empty doctor id selects the generic "No Doctor" roster entry used by
// bookings that do not need a specific physician.
func (u *slotUsecase) GetAvailableSlots(ctx context.Context, doctorID, dateStr, modeStr string) (*dto.SlotListResponse, error) {
	mode := scheduling.Mode(modeStr)
	if mode != scheduling.ModeClinic && mode != scheduling.ModeVideo {
		return nil, ErrInvalidAppointmentMode
	}

	date, err := time.Parse(scheduling.DateFormat, dateStr)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	doctor, doctorUUID, err := resolveSchedulingDoctor(ctx, u.directory, doctorID)
	if err != nil {
		return nil, err
	}

	booked, err := loadBookedAppointments(ctx, u.db, u.log, u.appointmentRepo, doctorUUID, date)
	if err != nil {
		return nil, err
	}

	slots := scheduling.GenerateSlots(doctor, date, booked, mode, time.Now())

	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			Time:     slot.Time,
			Label:    slot.Label,
			Disabled: slot.Disabled,
		}
	}

	return &dto.SlotListResponse{
		DoctorID: doctorID,
		Date:     dateStr,
		Mode:     modeStr,
		Slots:    responses,
		Total:    len(responses),
	}, nil
}

// GetBookableDates lists the dates inside the doctor's booking window,
// driving the calendar's enabled cells.
func (u *slotUsecase) GetBookableDates(ctx context.Context, doctorID, fromStr string, days int) (*dto.BookableDatesResponse, error) {
	from := time.Now()
	if fromStr != "" {
		parsed, err := time.Parse(scheduling.DateFormat, fromStr)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		from = parsed
	}

	doctor, _, err := resolveSchedulingDoctor(ctx, u.directory, doctorID)
	if err != nil {
		return nil, err
	}

	dates := scheduling.BookableDates(doctor, from, days, time.Now())

	formatted := make([]string, len(dates))
	for i, date := range dates {
		formatted[i] = date.Format(scheduling.DateFormat)
	}

	return &dto.BookableDatesResponse{
		DoctorID: doctorID,
		Dates:    formatted,
		Total:    len(formatted),
	}, nil
}

// resolveSchedulingDoctor maps a request's doctor id onto the normalized
// scheduling model via the directory snapshot. Empty id means the sentinel
// entry.
func resolveSchedulingDoctor(ctx context.Context, directory *service.DirectorySnapshotService, doctorID string) (*scheduling.Doctor, *uuid.UUID, error) {
	if doctorID == "" {
		return converter.SentinelDoctor(), nil, nil
	}

	parsed, err := uuid.Parse(doctorID)
	if err != nil {
		return nil, nil, ErrInvalidDoctorID
	}

	doctors, err := directory.GetDoctors(ctx)
	if err != nil {
		return nil, nil, err
	}

	for i := range doctors {
		if doctors[i].UserID == parsed {
			return converter.DoctorToScheduling(&doctors[i]), &parsed, nil
		}
	}

	return nil, nil, ErrDoctorNotFound
}

// loadBookedAppointments loads the appointments that count against slot
// capacity. The sentinel doctor has no capacity tracking, so it never loads
// any.
func loadBookedAppointments(ctx context.Context, db *gorm.DB, log *logrus.Logger, appointmentRepo repository.AppointmentRepository, doctorUUID *uuid.UUID, date time.Time) ([]scheduling.BookedAppointment, error) {
	if doctorUUID == nil {
		return nil, nil
	}

	appointments, err := appointmentRepo.FindByDoctorAndDate(db.WithContext(ctx), *doctorUUID, date)
	if err != nil {
		log.Warnf("Failed to load appointments for doctor %s: %+v", doctorUUID, err)
		return nil, err
	}

	return converter.AppointmentsToScheduling(appointments), nil
}
