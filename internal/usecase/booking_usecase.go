package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-service/internal/bookingflow"
	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/delivery/http/middleware"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/scheduling"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrSlotNotFound = errors.New("time slot not found for that date and mode")

type BookingUsecase interface {
	// SubmitInternal replays a wizard session driven by front-desk staff or
	// a doctor. Doctor operators book into their own calendar only.
	SubmitInternal(ctx context.Context, req *dto.SubmitBookingRequest) (*dto.AppointmentResponse, bookingflow.FieldErrors, error)

	// SubmitPublic replays the website iframe variant: no authentication,
	// fixed source and a pending status seed awaiting front-desk approval.
	SubmitPublic(ctx context.Context, req *dto.SubmitBookingRequest) (*dto.AppointmentResponse, bookingflow.FieldErrors, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
	directory       *service.DirectorySnapshotService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	directory *service.DirectorySnapshotService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
		directory:       directory,
	}
}

func (u *bookingUsecase) SubmitInternal(ctx context.Context, req *dto.SubmitBookingRequest) (*dto.AppointmentResponse, bookingflow.FieldErrors, error) {
	opts := bookingflow.Options{}

	// A doctor operator is locked to their own calendar.
	if roleID, ok := middleware.GetRoleIDFromContext(ctx); ok && roleID == entity.RoleIDDoctor {
		userID, ok := middleware.GetUserIDFromContext(ctx)
		if !ok {
			return nil, nil, ErrUserNotFound
		}
		fixed, _, err := resolveSchedulingDoctor(ctx, u.directory, userID.String())
		if err != nil {
			return nil, nil, err
		}
		opts.FixedDoctor = fixed
	}

	return u.submit(ctx, req, opts)
}

func (u *bookingUsecase) SubmitPublic(ctx context.Context, req *dto.SubmitBookingRequest) (*dto.AppointmentResponse, bookingflow.FieldErrors, error) {
	return u.submit(ctx, req, bookingflow.Options{Public: true})
}

// submit replays the whole wizard against the request so every step rule is
// enforced server side, then persists the resulting payload.
func (u *bookingUsecase) submit(ctx context.Context, req *dto.SubmitBookingRequest, opts bookingflow.Options) (*dto.AppointmentResponse, bookingflow.FieldErrors, error) {
	date, err := time.Parse(scheduling.DateFormat, req.Date)
	if err != nil {
		return nil, nil, ErrInvalidDateFormat
	}

	doctor := opts.FixedDoctor
	var doctorUUID *uuid.UUID
	if doctor != nil {
		if parsed, err := uuid.Parse(doctor.ID); err == nil {
			doctorUUID = &parsed
		}
	} else {
		doctor, doctorUUID, err = resolveSchedulingDoctor(ctx, u.directory, req.DoctorID)
		if err != nil {
			return nil, nil, err
		}
	}

	flow := bookingflow.New(opts)

	if !opts.Public {
		if err := flow.SelectSource(bookingflow.Source(req.Source)); err != nil {
			return nil, nil, err
		}
	}
	if err := flow.SelectAppointmentType(bookingflow.AppointmentType(req.AppointmentType)); err != nil {
		return nil, nil, err
	}
	if err := flow.SelectClinicalReason(bookingflow.ClinicalReason(req.ClinicalReason)); err != nil {
		return nil, nil, err
	}
	if flow.Step() == bookingflow.StepDoctor {
		if err := flow.SelectDoctor(doctor); err != nil {
			return nil, nil, err
		}
	}
	if err := flow.SelectDate(date); err != nil {
		return nil, nil, err
	}
	if err := flow.SelectMode(scheduling.Mode(req.Mode)); err != nil {
		return nil, nil, err
	}

	booked, err := loadBookedAppointments(ctx, u.db, u.log, u.appointmentRepo, doctorUUID, date)
	if err != nil {
		return nil, nil, err
	}

	slots := scheduling.GenerateSlots(doctor, date, booked, scheduling.Mode(req.Mode), time.Now())
	slot, found := findSlot(slots, req.TimeLabel)
	if !found {
		return nil, nil, ErrSlotNotFound
	}
	if err := flow.SelectTimeSlot(slot); err != nil {
		return nil, nil, err
	}

	if req.PatientID != "" {
		patientUUID, err := uuid.Parse(req.PatientID)
		if err != nil {
			return nil, nil, ErrPatientNotFound
		}
		patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientUUID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, nil, err
		}
		if patient == nil {
			return nil, nil, ErrPatientNotFound
		}
		if err := flow.UseExistingPatient(converter.PatientToExisting(patient)); err != nil {
			return nil, nil, err
		}
	} else {
		if err := flow.SetPatientDetails(detailsFromRequest(req)); err != nil {
			return nil, nil, err
		}
	}

	payload, fieldErrs, err := flow.Submit()
	if err != nil {
		return nil, nil, err
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	response, err := u.persist(ctx, flow.Draft(), payload, doctorUUID, opts.Public)
	if err != nil {
		return nil, nil, err
	}
	return response, nil, nil
}

// persist writes the appointment, creating a patient record first when an
// internal booking captured a new patient. Public bookings only store the
// snapshot fields; a record is made once the front desk approves them.
func (u *bookingUsecase) persist(ctx context.Context, draft bookingflow.Draft, payload *bookingflow.Payload, doctorUUID *uuid.UUID, public bool) (*dto.AppointmentResponse, error) {
	date, err := time.Parse(scheduling.DateFormat, payload.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	dob, err := time.Parse(scheduling.DateFormat, payload.DOB)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var patientID *uuid.UUID
	if payload.PatientID != "" {
		parsed, err := uuid.Parse(payload.PatientID)
		if err != nil {
			return nil, ErrPatientNotFound
		}
		patientID = &parsed
	} else if !public {
		patient := &entity.Patient{
			FirstName:   payload.FirstName,
			LastName:    payload.LastName,
			DateOfBirth: dob,
			Age:         payload.Age,
			PhoneNumber: payload.Phone,
			Email:       payload.Email,
		}
		if draft.Patient != nil {
			patient.Address = draft.Patient.Address
			patient.Notes = draft.Patient.Notes
		}

		if err := u.patientRepo.Create(tx, patient); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return nil, err
		}
		if err := u.auditService.LogCreate(ctx, tx, actorFrom(ctx), entity.AuditActionPatientCreate, "patient", patient.ID.String(), patient); err != nil {
			return nil, err
		}
		patientID = &patient.ID
	}

	appointment := &entity.Appointment{
		DoctorID:        doctorUUID,
		PatientID:       patientID,
		Date:            date,
		TimeLabel:       payload.TimeSlotLabel,
		Status:          entity.AppointmentStatus(payload.Status),
		Mode:            string(payload.Mode),
		AppointmentType: string(payload.AppointmentType),
		ClinicalReason:  string(payload.ClinicalReason),
		Source:          string(payload.Source),
		PatientName:     payload.PatientName,
		PatientPhone:    payload.Phone,
		PatientEmail:    payload.Email,
		PatientDOB:      &dob,
		PatientAge:      payload.Age,
		ReferralName:    payload.ReferralName,
		Notes:           payload.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFrom(ctx), entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), payload); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment booked: id=%s, date=%s, slot=%s, source=%s", appointment.ID, payload.Date, payload.TimeSlotLabel, payload.Source)
	return converter.AppointmentToResponse(full), nil
}

// findSlot matches the requested label against the generated grid.
func findSlot(slots []scheduling.TimeSlot, label string) (scheduling.TimeSlot, bool) {
	for _, slot := range slots {
		if slot.Label == label {
			return slot, true
		}
	}
	return scheduling.TimeSlot{}, false
}

// detailsFromRequest maps the request's patient block onto the wizard's
// details step. The age is derived from the date of birth unless the client
// supplied one explicitly.
func detailsFromRequest(req *dto.SubmitBookingRequest) bookingflow.PatientDetails {
	details := bookingflow.PatientDetails{
		ReferralName: req.ReferralName,
		Notes:        req.Notes,
	}

	input := req.Patient
	if input == nil {
		return details
	}

	details.FirstName = input.FirstName
	details.LastName = input.LastName
	details.Phone = input.PhoneNumber
	details.Email = input.Email
	details.Address = input.Address
	if input.Notes != "" {
		details.Notes = input.Notes
	}

	if dob, err := time.Parse(scheduling.DateFormat, input.DateOfBirth); err == nil {
		details.DOB = dob
	}

	unit := bookingflow.AgeUnit(input.AgeUnit)
	switch unit {
	case bookingflow.UnitDays, bookingflow.UnitMonths, bookingflow.UnitYears:
		details.Age = input.Age
		details.AgeUnit = unit
	default:
		if !details.DOB.IsZero() {
			details.Age, details.AgeUnit = bookingflow.AgeFromDOB(details.DOB, time.Now())
		}
	}

	return details
}
