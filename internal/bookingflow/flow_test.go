package bookingflow

import (
	"testing"
	"time"

	"clinic-booking-service/internal/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flowNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return flowNow }

func testDoctor() *scheduling.Doctor {
	return &scheduling.Doctor{
		ID:   "doc-1",
		Name: "Dr. Ayu",
		Availability: []scheduling.Availability{
			{Day: time.Monday, StartTime: "09:00", EndTime: "12:00", SlotDuration: 30, Persons: 2, ClinicTime: true, VideoTime: true},
		},
	}
}

func validDetails() PatientDetails {
	return PatientDetails{
		FirstName: "Siti",
		LastName:  "Rahma",
		DOB:       time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC),
		Age:       26,
		AgeUnit:   UnitYears,
		Phone:     "0812345678",
		Email:     "siti@example.com",
	}
}

// advanceToCalendar walks a fresh internal flow up to the calendar step.
func advanceToCalendar(t *testing.T, f *Flow, reason ClinicalReason) {
	t.Helper()
	require.NoError(t, f.SelectSource(SourceOnline))
	require.NoError(t, f.SelectAppointmentType(TypeNew))
	require.NoError(t, f.SelectClinicalReason(reason))
	require.NoError(t, f.SelectDoctor(testDoctor()))
}

func pickSlot(t *testing.T, f *Flow, mode scheduling.Mode) {
	t.Helper()
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.SelectDate(monday))
	require.NoError(t, f.SelectMode(mode))
	require.NoError(t, f.SelectTimeSlot(scheduling.TimeSlot{
		Time:  time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		Label: "09:00 AM",
	}))
}

func TestHappyPathInternal(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonConsultation)
	pickSlot(t, f, scheduling.ModeClinic)
	require.NoError(t, f.SetPatientDetails(validDetails()))

	payload, fieldErrs, err := f.Submit()
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, payload)

	assert.Equal(t, StepSubmitted, f.Step())
	assert.Equal(t, "Siti Rahma", payload.PatientName)
	assert.Equal(t, "2026-09-07", payload.Date)
	assert.Equal(t, "09:00 AM", payload.TimeSlotLabel)
	assert.Equal(t, "doc-1", payload.DoctorID)
	assert.Equal(t, "26 years", payload.Age)
	assert.Equal(t, StatusSeedInternal, payload.Status)
}

func TestPublicFlowSkipsSourceAndSeedsPending(t *testing.T) {
	f := New(Options{Public: true, Now: fixedNow})

	assert.Equal(t, StepAppointmentType, f.Step())
	assert.Equal(t, SourceWebsite, f.Draft().Source)
	assert.Equal(t, ErrWrongStep, f.SelectSource(SourceOnline))

	require.NoError(t, f.SelectAppointmentType(TypeNew))
	require.NoError(t, f.SelectClinicalReason(ReasonConsultation))
	require.NoError(t, f.SelectDoctor(testDoctor()))
	pickSlot(t, f, scheduling.ModeVideo)
	require.NoError(t, f.SetPatientDetails(validDetails()))

	payload, fieldErrs, err := f.Submit()
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, StatusSeedPublic, payload.Status)
	assert.Equal(t, SourceWebsite, payload.Source)
}

func TestFollowUpHiddenForWalkInLikeSources(t *testing.T) {
	for _, source := range []Source{SourceWalkIn, SourceCampaignAds, SourceReferral} {
		f := New(Options{Now: fixedNow})
		require.NoError(t, f.SelectSource(source))

		assert.Equal(t, []AppointmentType{TypeNew}, f.AllowedTypes())
		assert.Equal(t, ErrFollowUpUnavailable, f.SelectAppointmentType(TypeFollowUp))
		assert.NoError(t, f.SelectAppointmentType(TypeNew))
	}
}

func TestTreatmentForcesClinicMode(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonTreatment)

	assert.Equal(t, scheduling.ModeClinic, f.Draft().Mode)
	assert.False(t, f.VideoAllowed())

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.SelectDate(monday))
	assert.Equal(t, ErrVideoNotAllowed, f.SelectMode(scheduling.ModeVideo))

	// The only way to a submitted treatment booking is through clinic mode.
	require.NoError(t, f.SelectMode(scheduling.ModeClinic))
	require.NoError(t, f.SelectTimeSlot(scheduling.TimeSlot{
		Time:  time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC),
		Label: "09:30 AM",
	}))
	require.NoError(t, f.SetPatientDetails(validDetails()))

	payload, fieldErrs, err := f.Submit()
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, scheduling.ModeClinic, payload.Mode)
}

func TestStepPrerequisites(t *testing.T) {
	f := New(Options{Now: fixedNow})

	assert.Equal(t, ErrWrongStep, f.SelectAppointmentType(TypeNew))
	assert.Equal(t, ErrWrongStep, f.SelectClinicalReason(ReasonConsultation))
	assert.Equal(t, ErrWrongStep, f.SelectDoctor(testDoctor()))
	assert.Equal(t, ErrWrongStep, f.SelectDate(flowNow))
	_, _, err := f.Submit()
	assert.Equal(t, ErrWrongStep, err)
}

func TestCalendarOrderingWithinStep(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonConsultation)

	assert.Equal(t, ErrDateRequired, f.SelectMode(scheduling.ModeClinic))
	assert.Equal(t, ErrDateRequired, f.SelectTimeSlot(scheduling.TimeSlot{}))

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.SelectDate(monday))
	assert.Equal(t, ErrModeRequired, f.SelectTimeSlot(scheduling.TimeSlot{}))
}

func TestSelectDateOutsideBufferRejected(t *testing.T) {
	doctor := testDoctor()
	doctor.StartBufferDays = 2
	doctor.EndBufferDays = 10

	f := New(Options{Now: fixedNow})
	require.NoError(t, f.SelectSource(SourceOnline))
	require.NoError(t, f.SelectAppointmentType(TypeNew))
	require.NoError(t, f.SelectClinicalReason(ReasonConsultation))
	require.NoError(t, f.SelectDoctor(doctor))

	assert.Equal(t, ErrDateNotBookable, f.SelectDate(flowNow))
	assert.NoError(t, f.SelectDate(flowNow.AddDate(0, 0, 2)))
}

func TestSelectTimeSlotRejectsDisabledAndPast(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonConsultation)

	require.NoError(t, f.SelectDate(flowNow))
	require.NoError(t, f.SelectMode(scheduling.ModeClinic))

	disabled := scheduling.TimeSlot{Time: flowNow.Add(time.Hour), Label: "10:00 AM", Disabled: true}
	assert.Equal(t, ErrSlotDisabled, f.SelectTimeSlot(disabled))

	past := scheduling.TimeSlot{Time: flowNow.Add(-time.Hour), Label: "08:00 AM"}
	assert.Equal(t, ErrSlotInPast, f.SelectTimeSlot(past))
}

func TestBackClearsForwardOnly(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonConsultation)
	pickSlot(t, f, scheduling.ModeVideo)
	require.NoError(t, f.SetPatientDetails(validDetails()))

	require.NoError(t, f.Back(StepDoctor))

	draft := f.Draft()
	assert.Equal(t, StepDoctor, f.Step())
	assert.Nil(t, draft.Doctor)
	assert.True(t, draft.Date.IsZero())
	assert.Nil(t, draft.TimeSlot)
	assert.Nil(t, draft.Patient)
	assert.Empty(t, draft.Mode)

	// Earlier selections survive.
	assert.Equal(t, SourceOnline, draft.Source)
	assert.Equal(t, TypeNew, draft.AppointmentType)
	assert.Equal(t, ReasonConsultation, draft.ClinicalReason)
}

func TestBackKeepsForcedClinicModeForTreatment(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonTreatment)
	pickSlot(t, f, scheduling.ModeClinic)

	require.NoError(t, f.Back(StepCalendar))

	draft := f.Draft()
	assert.Equal(t, ReasonTreatment, draft.ClinicalReason)
	assert.Equal(t, scheduling.ModeClinic, draft.Mode)
	assert.True(t, draft.Date.IsZero())
}

func TestBackToReasonClearsModePin(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonTreatment)

	require.NoError(t, f.Back(StepClinicalReason))

	draft := f.Draft()
	assert.Empty(t, draft.ClinicalReason)
	assert.Empty(t, draft.Mode)
}

func TestBackTargetValidation(t *testing.T) {
	f := New(Options{Now: fixedNow})
	require.NoError(t, f.SelectSource(SourceOnline))

	assert.Equal(t, ErrInvalidBackTarget, f.Back(StepAppointmentType))
	assert.Equal(t, ErrInvalidBackTarget, f.Back(StepCalendar))

	public := New(Options{Public: true, Now: fixedNow})
	require.NoError(t, public.SelectAppointmentType(TypeNew))
	assert.Equal(t, ErrInvalidBackTarget, public.Back(StepSource))
}

func TestFixedDoctorPreselectedAndLocked(t *testing.T) {
	doctor := testDoctor()
	f := New(Options{FixedDoctor: doctor, Now: fixedNow})

	require.NoError(t, f.SelectSource(SourceOnline))
	require.NoError(t, f.SelectAppointmentType(TypeNew))
	require.NoError(t, f.SelectClinicalReason(ReasonConsultation))

	// Doctor step is skipped, the fixed doctor is already in the draft.
	assert.Equal(t, StepCalendar, f.Step())
	assert.Equal(t, doctor.ID, f.Draft().Doctor.ID)

	// Going back keeps the fixed doctor in place.
	require.NoError(t, f.Back(StepDoctor))
	assert.Equal(t, doctor.ID, f.Draft().Doctor.ID)
	assert.Equal(t, ErrDoctorLocked, f.SelectDoctor(&scheduling.Doctor{ID: "doc-2"}))
}

func TestSubmitValidationFailureStaysInDetails(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonConsultation)
	pickSlot(t, f, scheduling.ModeClinic)

	bad := validDetails()
	bad.Phone = "12345"
	bad.Email = "not-an-email"
	require.NoError(t, f.SetPatientDetails(bad))

	payload, fieldErrs, err := f.Submit()
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Contains(t, fieldErrs, "phone")
	assert.Contains(t, fieldErrs, "email")
	assert.Equal(t, StepPatientDetails, f.Step())

	// Correcting the fields allows the retry to succeed; earlier draft
	// state was preserved throughout.
	require.NoError(t, f.SetPatientDetails(validDetails()))
	payload, fieldErrs, err = f.Submit()
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, payload)
}

func TestReferralRequiresReferralName(t *testing.T) {
	f := New(Options{Now: fixedNow})
	require.NoError(t, f.SelectSource(SourceReferral))
	require.NoError(t, f.SelectAppointmentType(TypeNew))
	require.NoError(t, f.SelectClinicalReason(ReasonConsultation))
	require.NoError(t, f.SelectDoctor(testDoctor()))
	pickSlot(t, f, scheduling.ModeClinic)
	require.NoError(t, f.SetPatientDetails(validDetails()))

	_, fieldErrs, err := f.Submit()
	require.NoError(t, err)
	assert.Contains(t, fieldErrs, "referral_name")

	withReferrer := validDetails()
	withReferrer.ReferralName = "Dr. Budi"
	require.NoError(t, f.SetPatientDetails(withReferrer))
	payload, fieldErrs, err := f.Submit()
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, "Dr. Budi", payload.ReferralName)
}

func TestUseExistingPatientAutofill(t *testing.T) {
	f := New(Options{Now: fixedNow})
	advanceToCalendar(t, f, ReasonConsultation)
	pickSlot(t, f, scheduling.ModeClinic)

	require.NoError(t, f.UseExistingPatient(ExistingPatient{
		ID:        "pat-9",
		FirstName: "Budi",
		LastName:  "Santoso",
		DOB:       time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC),
		Phone:     "0812345678",
		Email:     "budi@example.com",
		Age:       "26 years",
	}))

	details := f.Draft().Patient
	require.NotNil(t, details)
	assert.Equal(t, 26, details.Age)
	assert.Equal(t, UnitYears, details.AgeUnit)
	assert.Equal(t, "pat-9", details.ExistingPatientID)

	payload, fieldErrs, err := f.Submit()
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, "pat-9", payload.PatientID)
}

func TestUseExistingPatientRejectedInPublicFlow(t *testing.T) {
	f := New(Options{Public: true, Now: fixedNow})
	require.NoError(t, f.SelectAppointmentType(TypeNew))
	require.NoError(t, f.SelectClinicalReason(ReasonConsultation))
	require.NoError(t, f.SelectDoctor(testDoctor()))
	pickSlot(t, f, scheduling.ModeClinic)

	err := f.UseExistingPatient(ExistingPatient{ID: "pat-9"})
	assert.Equal(t, ErrExistingPatientOnly, err)
}
