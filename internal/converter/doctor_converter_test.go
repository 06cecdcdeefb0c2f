package converter

import (
	"testing"
	"time"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/scheduling"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorToSchedulingFlattensProfile(t *testing.T) {
	userID := uuid.New()
	profile := &entity.DoctorProfile{
		UserID:          userID,
		Specialization:  "Dermatology",
		StartBufferDays: 1,
		EndBufferDays:   60,
		User:            entity.User{FullName: "Dr. Sari"},
		Availability: []entity.DoctorAvailability{
			{
				Day:          "Monday",
				StartTime:    "09:00",
				EndTime:      "12:00",
				SlotDuration: 30,
				Persons:      2,
				IsClinicTime: true,
			},
			{
				Day:         "Monday",
				StartTime:   "14:00",
				EndTime:     "16:00",
				IsVideoTime: true,
			},
		},
	}

	doctor := DoctorToScheduling(profile)
	require.NotNil(t, doctor)

	assert.Equal(t, userID.String(), doctor.ID)
	assert.Equal(t, "Dr. Sari", doctor.Name)
	assert.Equal(t, "Dermatology", doctor.Specialty)
	assert.Equal(t, 1, doctor.StartBufferDays)
	assert.Equal(t, 60, doctor.EndBufferDays)
	assert.False(t, doctor.Sentinel)

	require.Len(t, doctor.Availability, 2)
	assert.Equal(t, scheduling.Availability{
		Day:          time.Monday,
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
		Persons:      2,
		ClinicTime:   true,
	}, doctor.Availability[0])
	assert.True(t, doctor.Availability[1].VideoTime)
}

func TestDoctorToSchedulingSkipsUnknownDays(t *testing.T) {
	profile := &entity.DoctorProfile{
		UserID: uuid.New(),
		Availability: []entity.DoctorAvailability{
			{Day: "Funday", StartTime: "09:00", EndTime: "10:00"},
			{Day: "Friday", StartTime: "09:00", EndTime: "10:00"},
		},
	}

	doctor := DoctorToScheduling(profile)
	require.NotNil(t, doctor)
	require.Len(t, doctor.Availability, 1)
	assert.Equal(t, "Friday", doctor.Availability[0].Day.String())
}

func TestDoctorToSchedulingNil(t *testing.T) {
	assert.Nil(t, DoctorToScheduling(nil))
}

func TestSentinelDoctor(t *testing.T) {
	doctor := SentinelDoctor()
	require.NotNil(t, doctor)
	assert.True(t, doctor.Sentinel)
	assert.Equal(t, "No Doctor", doctor.Name)
	assert.Empty(t, doctor.ID)
}
