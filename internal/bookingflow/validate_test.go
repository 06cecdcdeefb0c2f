package bookingflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var validateNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func TestValidateAcceptsGoodDetails(t *testing.T) {
	details := validDetails()
	assert.Empty(t, details.Validate(SourceOnline, validateNow))
}

func TestValidateRequiredNames(t *testing.T) {
	details := validDetails()
	details.FirstName = ""
	details.LastName = ""

	fieldErrs := details.Validate(SourceOnline, validateNow)
	assert.Contains(t, fieldErrs, "first_name")
	assert.Contains(t, fieldErrs, "last_name")
}

func TestValidatePhone(t *testing.T) {
	for _, bad := range []string{"", "12345", "081234567890", "08123456ab"} {
		details := validDetails()
		details.Phone = bad
		assert.Contains(t, details.Validate(SourceOnline, validateNow), "phone", bad)
	}
}

func TestValidateEmail(t *testing.T) {
	for _, bad := range []string{"", "not-an-email", "a@b", "a b@c.com", "@x.com"} {
		details := validDetails()
		details.Email = bad
		assert.Contains(t, details.Validate(SourceOnline, validateNow), "email", bad)
	}

	details := validDetails()
	details.Email = "first.last+tag@clinic.example.org"
	assert.NotContains(t, details.Validate(SourceOnline, validateNow), "email")
}

func TestValidateDOB(t *testing.T) {
	details := validDetails()
	details.DOB = time.Time{}
	assert.Contains(t, details.Validate(SourceOnline, validateNow), "dob")

	details = validDetails()
	details.DOB = validateNow.AddDate(0, 0, 1)
	assert.Contains(t, details.Validate(SourceOnline, validateNow), "dob")
}

func TestValidateAgeBounds(t *testing.T) {
	cases := []struct {
		age  int
		unit AgeUnit
		ok   bool
	}{
		{365, UnitDays, true},
		{366, UnitDays, false},
		{240, UnitMonths, true},
		{241, UnitMonths, false},
		{120, UnitYears, true},
		{400, UnitYears, false},
		{-1, UnitYears, false},
		{5, AgeUnit("weeks"), false},
	}

	for _, tc := range cases {
		details := validDetails()
		details.Age = tc.age
		details.AgeUnit = tc.unit

		fieldErrs := details.Validate(SourceOnline, validateNow)
		if tc.ok {
			assert.NotContains(t, fieldErrs, "age", "%d %s", tc.age, tc.unit)
		} else {
			assert.Contains(t, fieldErrs, "age", "%d %s", tc.age, tc.unit)
		}
	}
}

func TestValidateReferralNameOnlyForReferrals(t *testing.T) {
	details := validDetails()
	assert.Contains(t, details.Validate(SourceReferral, validateNow), "referral_name")
	assert.NotContains(t, details.Validate(SourceOnline, validateNow), "referral_name")

	details.ReferralName = "Dr. Budi"
	assert.NotContains(t, details.Validate(SourceReferral, validateNow), "referral_name")
}

func TestValidateOneMessagePerField(t *testing.T) {
	details := PatientDetails{}
	fieldErrs := details.Validate(SourceReferral, validateNow)

	for _, field := range []string{"first_name", "last_name", "dob", "age", "phone", "email", "referral_name"} {
		assert.Contains(t, fieldErrs, field)
	}
	assert.Len(t, fieldErrs, 7)
}
