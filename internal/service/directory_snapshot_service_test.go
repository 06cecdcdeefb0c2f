package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"clinic-booking-service/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSnapshotService(t *testing.T) (*DirectorySnapshotService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	// Built by hand so the refresh goroutine stays off; these tests only
	// exercise the Redis paths.
	svc := &DirectorySnapshotService{
		redisClient: client,
		log:         log,
		ttl:         time.Minute,
		stopChan:    make(chan struct{}),
	}

	return svc, mr
}

func TestGetDoctorsServesSnapshot(t *testing.T) {
	svc, mr := newTestSnapshotService(t)

	doctorID := uuid.New()
	roster := []entity.DoctorProfile{
		{
			UserID:         doctorID,
			Specialization: "Dermatology",
			EndBufferDays:  365,
			User:           entity.User{ID: doctorID, FullName: "Dr. Ayu Lestari"},
			Availability: []entity.DoctorAvailability{
				{DoctorID: doctorID, Day: "Monday", StartTime: "09:00", EndTime: "12:00", SlotDuration: 30, Persons: 1, IsClinicTime: true},
			},
		},
	}

	raw, err := json.Marshal(roster)
	require.NoError(t, err)
	require.NoError(t, mr.Set(DirectoryKey, string(raw)))

	got, err := svc.GetDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, doctorID, got[0].UserID)
	assert.Equal(t, "Dr. Ayu Lestari", got[0].User.FullName)
	require.Len(t, got[0].Availability, 1)
	assert.Equal(t, "Monday", got[0].Availability[0].Day)
}

func TestInvalidateDropsSnapshot(t *testing.T) {
	svc, mr := newTestSnapshotService(t)

	require.NoError(t, mr.Set(DirectoryKey, "[]"))
	svc.Invalidate(context.Background())

	assert.False(t, mr.Exists(DirectoryKey))
}
