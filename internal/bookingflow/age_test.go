package bookingflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ageNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

func TestAgeFromDOBDays(t *testing.T) {
	dob := ageNow.AddDate(0, 0, -10)
	value, unit := AgeFromDOB(dob, ageNow)
	assert.Equal(t, 10, value)
	assert.Equal(t, UnitDays, unit)

	value, unit = AgeFromDOB(ageNow, ageNow)
	assert.Equal(t, 0, value)
	assert.Equal(t, UnitDays, unit)

	value, unit = AgeFromDOB(ageNow.AddDate(0, 0, -30), ageNow)
	assert.Equal(t, 30, value)
	assert.Equal(t, UnitDays, unit)
}

func TestAgeFromDOBMonths(t *testing.T) {
	value, unit := AgeFromDOB(ageNow.AddDate(0, -13, 0), ageNow)
	assert.Equal(t, 13, value)
	assert.Equal(t, UnitMonths, unit)

	// Day of month not reached yet: one month is still incomplete.
	dob := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	value, unit = AgeFromDOB(dob, ageNow)
	assert.Equal(t, 14, value)
	assert.Equal(t, UnitMonths, unit)

	// 23 whole months stays in months, 24 rolls over to years.
	value, unit = AgeFromDOB(ageNow.AddDate(0, -23, 0), ageNow)
	assert.Equal(t, 23, value)
	assert.Equal(t, UnitMonths, unit)

	value, unit = AgeFromDOB(ageNow.AddDate(0, -24, 0), ageNow)
	assert.Equal(t, 2, value)
	assert.Equal(t, UnitYears, unit)
}

func TestAgeFromDOBSameMonthFallsBackToDays(t *testing.T) {
	// Born on the 1st of the current month, 31-day window would exceed 30
	// days by month arithmetic; the same-month case stays in days.
	now := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	value, unit := AgeFromDOB(dob, now)
	assert.Equal(t, UnitDays, unit)
	assert.Equal(t, 30, value)
}

func TestAgeFromDOBYears(t *testing.T) {
	value, unit := AgeFromDOB(ageNow.AddDate(-25, -2, 0), ageNow)
	assert.Equal(t, 25, value)
	assert.Equal(t, UnitYears, unit)

	// Birthday later this year: still the previous whole year.
	dob := time.Date(2000, 12, 1, 0, 0, 0, 0, time.UTC)
	value, unit = AgeFromDOB(dob, ageNow)
	assert.Equal(t, 25, value)
	assert.Equal(t, UnitYears, unit)

	dob = time.Date(2000, 9, 16, 0, 0, 0, 0, time.UTC)
	value, unit = AgeFromDOB(dob, ageNow)
	assert.Equal(t, 25, value)
	assert.Equal(t, UnitYears, unit)

	dob = time.Date(2000, 9, 15, 0, 0, 0, 0, time.UTC)
	value, unit = AgeFromDOB(dob, ageNow)
	assert.Equal(t, 26, value)
	assert.Equal(t, UnitYears, unit)
}

func TestParseAge(t *testing.T) {
	value, unit, err := ParseAge("26 years")
	require.NoError(t, err)
	assert.Equal(t, 26, value)
	assert.Equal(t, UnitYears, unit)

	value, unit, err = ParseAge("1 month")
	require.NoError(t, err)
	assert.Equal(t, 1, value)
	assert.Equal(t, UnitMonths, unit)

	value, unit, err = ParseAge("  10 Days ")
	require.NoError(t, err)
	assert.Equal(t, 10, value)
	assert.Equal(t, UnitDays, unit)

	for _, bad := range []string{"", "years", "26", "-1 years", "26 decades", "26 years old"} {
		_, _, err := ParseAge(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatAgeRoundTrip(t *testing.T) {
	s := FormatAge(13, UnitMonths)
	assert.Equal(t, "13 months", s)

	value, unit, err := ParseAge(s)
	require.NoError(t, err)
	assert.Equal(t, 13, value)
	assert.Equal(t, UnitMonths, unit)
}
