package bookingflow

import (
	"errors"
	"time"

	"clinic-booking-service/internal/scheduling"
)

// Step identifies one stage of the booking wizard. Steps are ordered; moving
// back to an earlier step clears everything captured at or after it.
type Step int

const (
	StepSource Step = iota
	StepAppointmentType
	StepClinicalReason
	StepDoctor
	StepCalendar
	StepPatientDetails
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepSource:
		return "source"
	case StepAppointmentType:
		return "appointment_type"
	case StepClinicalReason:
		return "clinical_reason"
	case StepDoctor:
		return "doctor"
	case StepCalendar:
		return "calendar"
	case StepPatientDetails:
		return "patient_details"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Source of the booking lead.
type Source string

const (
	SourceOnline      Source = "online"
	SourceWalkIn      Source = "walk-in"
	SourceCampaignAds Source = "campaign-ads"
	SourceReferral    Source = "referral"
	SourceWebsite     Source = "website" // fixed source of the public iframe flow
)

// AppointmentType distinguishes a first visit from a follow-up.
type AppointmentType string

const (
	TypeNew      AppointmentType = "new"
	TypeFollowUp AppointmentType = "follow-up"
)

// ClinicalReason for the visit. Treatment appointments cannot happen over
// video, so selecting it pins the mode to clinic.
type ClinicalReason string

const (
	ReasonConsultation ClinicalReason = "consultation"
	ReasonTreatment    ClinicalReason = "treatment"
)

// Appointment status seeds written into the submit payload.
const (
	StatusSeedPublic   = scheduling.StatusPending
	StatusSeedInternal = scheduling.StatusApproved
)

var (
	ErrWrongStep           = errors.New("action not valid for the current step")
	ErrInvalidSource       = errors.New("unknown booking source")
	ErrInvalidType         = errors.New("unknown appointment type")
	ErrInvalidReason       = errors.New("unknown clinical reason")
	ErrFollowUpUnavailable = errors.New("follow-up is not offered for this source")
	ErrDoctorRequired      = errors.New("a doctor must be selected first")
	ErrDoctorLocked        = errors.New("doctor selection is fixed for this session")
	ErrDateNotBookable     = errors.New("date is outside the doctor's booking window")
	ErrDateRequired        = errors.New("a date must be selected first")
	ErrModeRequired        = errors.New("an appointment mode must be selected first")
	ErrInvalidMode         = errors.New("unknown appointment mode")
	ErrVideoNotAllowed     = errors.New("video appointments are not available for treatments")
	ErrSlotDisabled        = errors.New("time slot is fully booked")
	ErrSlotInPast          = errors.New("time slot has already passed")
	ErrExistingPatientOnly = errors.New("existing patients cannot be used in the public flow")
	ErrInvalidBackTarget   = errors.New("cannot navigate back to that step")
)

// Options configure a wizard session.
type Options struct {
	// Public marks the iframe variant: the source step is skipped, the
	// source is fixed to website and the submitted status seeds as pending.
	Public bool

	// FixedDoctor preselects and locks the doctor, used when the operator
	// is a doctor booking into their own calendar.
	FixedDoctor *scheduling.Doctor

	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// Draft is the in-progress, unsubmitted wizard state.
type Draft struct {
	Source          Source
	AppointmentType AppointmentType
	ClinicalReason  ClinicalReason
	Doctor          *scheduling.Doctor
	Date            time.Time
	Mode            scheduling.Mode
	TimeSlot        *scheduling.TimeSlot
	Patient         *PatientDetails
}

// Flow drives the booking wizard. All methods mutate in place; the zero
// value is not usable, construct with New.
type Flow struct {
	opts  Options
	now   func() time.Time
	step  Step
	draft Draft
}

// New creates a wizard session positioned at its first step.
func New(opts Options) *Flow {
	f := &Flow{opts: opts, now: opts.Now}
	if f.now == nil {
		f.now = time.Now
	}
	f.step = StepSource
	if opts.Public {
		f.draft.Source = SourceWebsite
		f.step = StepAppointmentType
	}
	return f
}

// Step returns the step the wizard is currently in.
func (f *Flow) Step() Step {
	return f.step
}

// Draft exposes a copy of the accumulated state for rendering.
func (f *Flow) Draft() Draft {
	return f.draft
}

// firstStep is where Back bottoms out: public sessions never see the
// source step.
func (f *Flow) firstStep() Step {
	if f.opts.Public {
		return StepAppointmentType
	}
	return StepSource
}

// AllowedTypes lists the appointment types offered for the chosen source.
// Follow-up only makes sense for leads that may have visited before.
func (f *Flow) AllowedTypes() []AppointmentType {
	switch f.draft.Source {
	case SourceWalkIn, SourceCampaignAds, SourceReferral:
		return []AppointmentType{TypeNew}
	default:
		return []AppointmentType{TypeNew, TypeFollowUp}
	}
}

// VideoAllowed reports whether the video mode is still selectable.
func (f *Flow) VideoAllowed() bool {
	return f.draft.ClinicalReason != ReasonTreatment
}

func (f *Flow) SelectSource(source Source) error {
	if f.step != StepSource {
		return ErrWrongStep
	}
	switch source {
	case SourceOnline, SourceWalkIn, SourceCampaignAds, SourceReferral:
	default:
		return ErrInvalidSource
	}
	f.draft.Source = source
	f.step = StepAppointmentType
	return nil
}

func (f *Flow) SelectAppointmentType(t AppointmentType) error {
	if f.step != StepAppointmentType {
		return ErrWrongStep
	}
	switch t {
	case TypeNew:
	case TypeFollowUp:
		for _, allowed := range f.AllowedTypes() {
			if allowed == TypeFollowUp {
				f.draft.AppointmentType = t
				f.step = StepClinicalReason
				return nil
			}
		}
		return ErrFollowUpUnavailable
	default:
		return ErrInvalidType
	}
	f.draft.AppointmentType = t
	f.step = StepClinicalReason
	return nil
}

func (f *Flow) SelectClinicalReason(reason ClinicalReason) error {
	if f.step != StepClinicalReason {
		return ErrWrongStep
	}
	switch reason {
	case ReasonConsultation, ReasonTreatment:
	default:
		return ErrInvalidReason
	}
	f.draft.ClinicalReason = reason
	if reason == ReasonTreatment {
		// A treatment cannot be a video appointment.
		f.draft.Mode = scheduling.ModeClinic
	}
	f.step = StepDoctor
	if f.opts.FixedDoctor != nil {
		f.draft.Doctor = f.opts.FixedDoctor
		f.step = StepCalendar
	}
	return nil
}

func (f *Flow) SelectDoctor(doctor *scheduling.Doctor) error {
	if f.step != StepDoctor {
		return ErrWrongStep
	}
	if doctor == nil {
		return ErrDoctorRequired
	}
	if f.opts.FixedDoctor != nil && doctor.ID != f.opts.FixedDoctor.ID {
		return ErrDoctorLocked
	}
	f.draft.Doctor = doctor
	f.step = StepCalendar
	return nil
}

func (f *Flow) SelectDate(date time.Time) error {
	if f.step != StepCalendar {
		return ErrWrongStep
	}
	if f.draft.Doctor == nil {
		return ErrDoctorRequired
	}
	if !scheduling.IsDateBookable(f.draft.Doctor, date, f.now()) {
		return ErrDateNotBookable
	}
	f.draft.Date = date
	// A new date invalidates any slot picked for the old one.
	f.draft.TimeSlot = nil
	return nil
}

func (f *Flow) SelectMode(mode scheduling.Mode) error {
	if f.step != StepCalendar {
		return ErrWrongStep
	}
	if f.draft.Date.IsZero() {
		return ErrDateRequired
	}
	switch mode {
	case scheduling.ModeClinic:
	case scheduling.ModeVideo:
		if !f.VideoAllowed() {
			return ErrVideoNotAllowed
		}
	default:
		return ErrInvalidMode
	}
	f.draft.Mode = mode
	f.draft.TimeSlot = nil
	return nil
}

func (f *Flow) SelectTimeSlot(slot scheduling.TimeSlot) error {
	if f.step != StepCalendar {
		return ErrWrongStep
	}
	if f.draft.Date.IsZero() {
		return ErrDateRequired
	}
	if f.draft.Mode == "" {
		return ErrModeRequired
	}
	if slot.Disabled {
		return ErrSlotDisabled
	}
	if slot.Time.Before(f.now()) {
		return ErrSlotInPast
	}
	f.draft.TimeSlot = &slot
	f.step = StepPatientDetails
	return nil
}

// SetPatientDetails stores manually entered patient details. Validation
// happens at Submit so the UI can keep partial input around.
func (f *Flow) SetPatientDetails(details PatientDetails) error {
	if f.step != StepPatientDetails {
		return ErrWrongStep
	}
	f.draft.Patient = &details
	return nil
}

// UseExistingPatient autofills the details step from a patient record.
// The public iframe flow always captures a new patient.
func (f *Flow) UseExistingPatient(patient ExistingPatient) error {
	if f.step != StepPatientDetails {
		return ErrWrongStep
	}
	if f.opts.Public {
		return ErrExistingPatientOnly
	}
	details := patient.toDetails(f.now())
	f.draft.Patient = &details
	return nil
}

// Back navigates to an earlier step and applies the clear-forward rule:
// every field captured at or after the target step is reset, fields from
// earlier steps are kept. This is what keeps a stale video-mode selection
// from surviving a switch to a treatment reason.
func (f *Flow) Back(target Step) error {
	if f.step == StepSubmitted {
		return ErrWrongStep
	}
	if target >= f.step || target < f.firstStep() {
		return ErrInvalidBackTarget
	}

	if target <= StepPatientDetails {
		f.draft.Patient = nil
	}
	if target <= StepCalendar {
		f.draft.Date = time.Time{}
		f.draft.TimeSlot = nil
		f.clearMode()
	}
	if target <= StepDoctor {
		if f.opts.FixedDoctor == nil {
			f.draft.Doctor = nil
		}
	}
	if target <= StepClinicalReason {
		f.draft.ClinicalReason = ""
		f.draft.Mode = ""
	}
	if target <= StepAppointmentType {
		f.draft.AppointmentType = ""
	}
	if target <= StepSource && !f.opts.Public {
		f.draft.Source = ""
	}

	f.step = target
	return nil
}

// clearMode resets the mode selection unless it is pinned by a treatment
// reason chosen at an earlier step.
func (f *Flow) clearMode() {
	if f.draft.ClinicalReason == ReasonTreatment {
		f.draft.Mode = scheduling.ModeClinic
		return
	}
	f.draft.Mode = ""
}

// Submit validates the patient details and assembles the create-appointment
// payload. On validation failure the field errors are returned and the flow
// stays in the patient-details step so the user can correct and retry.
func (f *Flow) Submit() (*Payload, FieldErrors, error) {
	if f.step != StepPatientDetails {
		return nil, nil, ErrWrongStep
	}

	details := f.draft.Patient
	if details == nil {
		details = &PatientDetails{}
	}
	if fieldErrs := details.Validate(f.draft.Source, f.now()); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	status := StatusSeedInternal
	if f.opts.Public {
		status = StatusSeedPublic
	}

	payload := &Payload{
		PatientName:     details.FullName(),
		FirstName:       details.FirstName,
		LastName:        details.LastName,
		DOB:             details.DOB.Format(scheduling.DateFormat),
		Phone:           details.Phone,
		Email:           details.Email,
		Age:             FormatAge(details.Age, details.AgeUnit),
		Date:            f.draft.Date.Format(scheduling.DateFormat),
		TimeSlotLabel:   f.draft.TimeSlot.Label,
		DoctorID:        f.draft.Doctor.ID,
		Source:          f.draft.Source,
		AppointmentType: f.draft.AppointmentType,
		ClinicalReason:  f.draft.ClinicalReason,
		Mode:            f.draft.Mode,
		ReferralName:    details.ReferralName,
		Notes:           details.Notes,
		Status:          status,
		PatientID:       details.ExistingPatientID,
	}

	f.step = StepSubmitted
	return payload, nil, nil
}

// Payload is the create-appointment request assembled from a completed draft.
type Payload struct {
	PatientName     string            `json:"patient_name"`
	FirstName       string            `json:"first_name"`
	LastName        string            `json:"last_name"`
	DOB             string            `json:"dob"`
	Phone           string            `json:"phone"`
	Email           string            `json:"email"`
	Age             string            `json:"age"`
	Date            string            `json:"date"`
	TimeSlotLabel   string            `json:"time_slot_label"`
	DoctorID        string            `json:"doctor_id"`
	Source          Source            `json:"source"`
	AppointmentType AppointmentType   `json:"appointment_type"`
	ClinicalReason  ClinicalReason    `json:"clinical_reason"`
	Mode            scheduling.Mode   `json:"appointment_mode"`
	ReferralName    string            `json:"referral_name,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Status          string            `json:"status"`
	PatientID       string            `json:"patient_id,omitempty"`
}
