package bookingflow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AgeUnit qualifies a numeric age value.
type AgeUnit string

const (
	UnitDays   AgeUnit = "days"
	UnitMonths AgeUnit = "months"
	UnitYears  AgeUnit = "years"
)

var ErrBadAgeString = errors.New(`age must look like "26 years"`)

// AgeFromDOB derives a display age from a birth date. Infants up to 30 days
// are reported in days, children under 24 months in months, everyone else in
// whole years. A birth in the current calendar month stays in days so a
// just-born infant is never shown as "0 months".
func AgeFromDOB(dob, now time.Time) (int, AgeUnit) {
	dobDay := time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	days := int(nowDay.Sub(dobDay).Hours() / 24)
	if days <= 30 {
		if days < 0 {
			days = 0
		}
		return days, UnitDays
	}

	months := (now.Year()-dob.Year())*12 + int(now.Month()) - int(dob.Month())
	if months < 24 {
		if dob.Year() == now.Year() && dob.Month() == now.Month() {
			return days, UnitDays
		}
		if now.Day() < dob.Day() {
			months--
		}
		return months, UnitMonths
	}

	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years, UnitYears
}

// ParseAge splits a display age like "26 years" into value and unit.
// Singular unit forms are accepted.
func ParseAge(s string) (int, AgeUnit, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("%w: %q", ErrBadAgeString, s)
	}

	value, err := strconv.Atoi(parts[0])
	if err != nil || value < 0 {
		return 0, "", fmt.Errorf("%w: %q", ErrBadAgeString, s)
	}

	switch strings.ToLower(parts[1]) {
	case "day", "days":
		return value, UnitDays, nil
	case "month", "months":
		return value, UnitMonths, nil
	case "year", "years":
		return value, UnitYears, nil
	default:
		return 0, "", fmt.Errorf("%w: %q", ErrBadAgeString, s)
	}
}

// FormatAge renders the payload's age string, e.g. "26 years".
func FormatAge(value int, unit AgeUnit) string {
	return fmt.Sprintf("%d %s", value, unit)
}
