package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-09-07 is a Monday.
var (
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow    = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
)

func clinicDoctor(windows ...Availability) *Doctor {
	return &Doctor{ID: "doc-1", Name: "Dr. Ayu", Specialty: "General", Availability: windows}
}

func mondayWindow(start, end string, duration, persons int) Availability {
	return Availability{
		Day:          time.Monday,
		StartTime:    start,
		EndTime:      end,
		SlotDuration: duration,
		Persons:      persons,
		ClinicTime:   true,
	}
}

func TestGenerateSlotsNilDoctor(t *testing.T) {
	slots := GenerateSlots(nil, testMonday, nil, ModeClinic, testNow)
	assert.Empty(t, slots)
}

func TestGenerateSlotsWindowStepping(t *testing.T) {
	doctor := clinicDoctor(mondayWindow("09:00", "09:30", 15, 1))

	slots := GenerateSlots(doctor, testMonday, nil, ModeClinic, testNow)

	require.Len(t, slots, 2)
	assert.Equal(t, "09:00 AM", slots[0].Label)
	assert.Equal(t, "09:15 AM", slots[1].Label)
	assert.False(t, slots[0].Disabled)
	assert.False(t, slots[1].Disabled)
}

func TestGenerateSlotsPartialLastStep(t *testing.T) {
	// 09:00-10:00 with 25-minute steps: 09:00, 09:25, 09:50 all start < 10:00.
	doctor := clinicDoctor(mondayWindow("09:00", "10:00", 25, 1))

	slots := GenerateSlots(doctor, testMonday, nil, ModeClinic, testNow)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:50 AM", slots[2].Label)
}

func TestGenerateSlotsEmptyWindow(t *testing.T) {
	doctor := clinicDoctor(mondayWindow("09:00", "09:00", 15, 1))
	assert.Empty(t, GenerateSlots(doctor, testMonday, nil, ModeClinic, testNow))
}

func TestGenerateSlotsWrongWeekday(t *testing.T) {
	doctor := clinicDoctor(mondayWindow("09:00", "12:00", 30, 1))
	tuesday := testMonday.AddDate(0, 0, 1)
	assert.Empty(t, GenerateSlots(doctor, tuesday, nil, ModeClinic, testNow))
}

func TestGenerateSlotsClosedDay(t *testing.T) {
	window := mondayWindow("09:00", "12:00", 30, 1)
	window.Closed = true
	assert.Empty(t, GenerateSlots(clinicDoctor(window), testMonday, nil, ModeClinic, testNow))
}

func TestGenerateSlotsModeFilter(t *testing.T) {
	morning := mondayWindow("09:00", "12:00", 60, 1)
	afternoon := Availability{
		Day: time.Monday, StartTime: "14:00", EndTime: "16:00",
		SlotDuration: 60, Persons: 1, VideoTime: true,
	}
	doctor := clinicDoctor(morning, afternoon)

	clinic := GenerateSlots(doctor, testMonday, nil, ModeClinic, testNow)
	require.Len(t, clinic, 3)
	assert.Equal(t, "09:00 AM", clinic[0].Label)

	video := GenerateSlots(doctor, testMonday, nil, ModeVideo, testNow)
	require.Len(t, video, 2)
	assert.Equal(t, "02:00 PM", video[0].Label)
	assert.Equal(t, "03:00 PM", video[1].Label)
}

func TestGenerateSlotsCapacityCounting(t *testing.T) {
	doctor := clinicDoctor(mondayWindow("10:00", "11:00", 30, 2))
	date := testMonday.Format(DateFormat)

	existing := []BookedAppointment{
		{DoctorID: "doc-1", Date: date, TimeLabel: "10:00 AM", Status: StatusApproved, Mode: ModeClinic},
		{DoctorID: "doc-1", Date: date, TimeLabel: "10:00 AM", Status: StatusCancelled, Mode: ModeClinic},
	}

	slots := GenerateSlots(doctor, testMonday, existing, ModeClinic, testNow)
	require.Len(t, slots, 2)
	// One approved + one cancelled: only the approved one counts, persons=2 not reached.
	assert.False(t, slots[0].Disabled)

	existing = append(existing, BookedAppointment{
		DoctorID: "doc-1", Date: date, TimeLabel: "10:00 AM", Status: StatusPending, Mode: ModeClinic,
	})
	slots = GenerateSlots(doctor, testMonday, existing, ModeClinic, testNow)
	assert.True(t, slots[0].Disabled)
	assert.False(t, slots[1].Disabled)
}

func TestGenerateSlotsCapacityMatchesInstantNotLabelText(t *testing.T) {
	doctor := clinicDoctor(mondayWindow("10:00", "10:30", 30, 1))
	// 24-hour label from another client counts against the 10:00 AM slot.
	existing := []BookedAppointment{
		{DoctorID: "doc-1", Date: testMonday.Format(DateFormat), TimeLabel: "10:00", Status: StatusApproved},
	}

	slots := GenerateSlots(doctor, testMonday, existing, ModeClinic, testNow)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Disabled)
}

func TestGenerateSlotsIgnoresOtherDoctorsAndDates(t *testing.T) {
	doctor := clinicDoctor(mondayWindow("10:00", "10:30", 30, 1))
	existing := []BookedAppointment{
		{DoctorID: "doc-2", Date: testMonday.Format(DateFormat), TimeLabel: "10:00 AM", Status: StatusApproved},
		{DoctorID: "doc-1", Date: "2026-09-14", TimeLabel: "10:00 AM", Status: StatusApproved},
	}

	slots := GenerateSlots(doctor, testMonday, existing, ModeClinic, testNow)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].Disabled)
}

func TestGenerateSlotsOverlappingWindowsSortedAndDeduped(t *testing.T) {
	late := mondayWindow("10:00", "11:00", 30, 1)
	early := mondayWindow("09:30", "10:30", 30, 1)
	doctor := clinicDoctor(late, early)

	slots := GenerateSlots(doctor, testMonday, nil, ModeClinic, testNow)

	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = slot.Label
	}
	assert.Equal(t, []string{"09:30 AM", "10:00 AM", "10:30 AM"}, labels)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Time.Before(slots[i].Time))
	}
}

func TestSentinelFutureDate(t *testing.T) {
	sentinel := &Doctor{Sentinel: true, Name: "No Doctor"}

	slots := GenerateSlots(sentinel, testMonday, nil, ModeClinic, testNow)

	require.Len(t, slots, 24)
	assert.Equal(t, "08:00 AM", slots[0].Label)
	assert.Equal(t, "07:30 PM", slots[23].Label)
	for _, slot := range slots {
		assert.False(t, slot.Disabled)
	}
}

func TestSentinelTodayDropsPastSlots(t *testing.T) {
	sentinel := &Doctor{Sentinel: true}
	now := time.Date(2026, 9, 7, 12, 10, 0, 0, time.UTC)

	slots := GenerateSlots(sentinel, testMonday, nil, ModeVideo, now)

	require.NotEmpty(t, slots)
	assert.Equal(t, "12:30 PM", slots[0].Label)
	for _, slot := range slots {
		assert.True(t, slot.Time.After(now))
	}
}

func TestSentinelIgnoresCapacity(t *testing.T) {
	sentinel := &Doctor{Sentinel: true}
	existing := []BookedAppointment{
		{DoctorID: "", Date: testMonday.Format(DateFormat), TimeLabel: "08:00 AM", Status: StatusApproved},
	}

	slots := GenerateSlots(sentinel, testMonday, existing, ModeClinic, testNow)
	require.Len(t, slots, 24)
	assert.False(t, slots[0].Disabled)
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:05", 545},
		{"23:59", 1439},
		{"12:00 AM", 0},
		{"12:30 PM", 750},
		{"01:15 pm", 795},
		{"11:45 AM", 705},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "9", "25:00", "09:60", "13:00 PM", "0:0:0 AM"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}
