package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsDateBookableWindow(t *testing.T) {
	doctor := &Doctor{ID: "doc-1", StartBufferDays: 1, EndBufferDays: 5}
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	assert.False(t, IsDateBookable(doctor, day(0), now))
	assert.True(t, IsDateBookable(doctor, day(1), now))
	assert.True(t, IsDateBookable(doctor, day(3), now))
	assert.True(t, IsDateBookable(doctor, day(5), now))
	assert.False(t, IsDateBookable(doctor, day(6), now))
}

func TestIsDateBookableDayGranularity(t *testing.T) {
	doctor := &Doctor{ID: "doc-1", StartBufferDays: 1, EndBufferDays: 5}
	now := time.Date(2026, 9, 1, 23, 45, 0, 0, time.UTC)

	// Tomorrow at 00:01 is still inside the window even though less than
	// 24 hours away.
	tomorrow := time.Date(2026, 9, 2, 0, 1, 0, 0, time.UTC)
	assert.True(t, IsDateBookable(doctor, tomorrow, now))
}

func TestIsDateBookableDefaultEndBuffer(t *testing.T) {
	doctor := &Doctor{ID: "doc-1"}
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	assert.True(t, IsDateBookable(doctor, now, now))
	assert.True(t, IsDateBookable(doctor, now.AddDate(0, 0, 365), now))
	assert.False(t, IsDateBookable(doctor, now.AddDate(0, 0, 366), now))
}

func TestIsDateBookableSentinel(t *testing.T) {
	sentinel := &Doctor{Sentinel: true, StartBufferDays: 10, EndBufferDays: 20}
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	// Buffers are ignored: today and any later date are bookable.
	assert.True(t, IsDateBookable(sentinel, now, now))
	assert.True(t, IsDateBookable(sentinel, now.AddDate(2, 0, 0), now))
	assert.False(t, IsDateBookable(sentinel, now.AddDate(0, 0, -1), now))
}

func TestIsDateBookableNilDoctor(t *testing.T) {
	assert.False(t, IsDateBookable(nil, time.Now(), time.Now()))
}

func TestBookableDates(t *testing.T) {
	doctor := &Doctor{ID: "doc-1", StartBufferDays: 2, EndBufferDays: 4}
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	dates := BookableDates(doctor, now, 7, now)

	assert.Len(t, dates, 3)
	for i, offset := range []int{2, 3, 4} {
		assert.Equal(t, now.AddDate(0, 0, offset).Day(), dates[i].Day())
	}
}
