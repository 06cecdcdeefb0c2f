package bookingflow

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to a single human-readable message. The
// details step surfaces one message per invalid field rather than one
// aggregate failure.
type FieldErrors map[string]string

// Age bounds per unit. An age past these is taken as a data-entry mistake.
const (
	MaxAgeDays   = 365
	MaxAgeMonths = 240
	MaxAgeYears  = 120
)

// emailPattern is deliberately loose: one @, something before it, a dot in
// the domain part. Full RFC validation belongs to the mail provider.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

var detailsValidator = validator.New()

// PatientDetails is the final wizard step's input: either typed in for a new
// patient or autofilled from an existing record.
type PatientDetails struct {
	FirstName    string  `validate:"required"`
	LastName     string  `validate:"required"`
	DOB          time.Time
	Age          int
	AgeUnit      AgeUnit
	Phone        string
	Email        string
	Address      string
	Notes        string
	ReferralName string

	// ExistingPatientID is set when the details were autofilled from the
	// patient directory; empty for a new patient.
	ExistingPatientID string
}

// FullName joins the name parts for the payload's display field.
func (d *PatientDetails) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Validate checks the details against the booking rules and returns one
// message per invalid field. An empty map means the details are acceptable.
func (d *PatientDetails) Validate(source Source, now time.Time) FieldErrors {
	fieldErrs := FieldErrors{}

	if err := detailsValidator.Struct(d); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				switch verr.Field() {
				case "FirstName":
					fieldErrs["first_name"] = "first name is required"
				case "LastName":
					fieldErrs["last_name"] = "last name is required"
				}
			}
		}
	}

	if d.DOB.IsZero() {
		fieldErrs["dob"] = "date of birth is required"
	} else if d.DOB.After(now) {
		fieldErrs["dob"] = "date of birth cannot be in the future"
	}

	switch d.AgeUnit {
	case UnitDays:
		if d.Age < 0 || d.Age > MaxAgeDays {
			fieldErrs["age"] = "age in days must be between 0 and 365"
		}
	case UnitMonths:
		if d.Age < 0 || d.Age > MaxAgeMonths {
			fieldErrs["age"] = "age in months must be between 0 and 240"
		}
	case UnitYears:
		if d.Age < 0 || d.Age > MaxAgeYears {
			fieldErrs["age"] = "age in years must be between 0 and 120"
		}
	default:
		fieldErrs["age"] = "age unit must be days, months or years"
	}

	if !phonePattern.MatchString(d.Phone) {
		fieldErrs["phone"] = "phone must be exactly 10 digits"
	}

	if !emailPattern.MatchString(d.Email) {
		fieldErrs["email"] = "email address is not valid"
	}

	if source == SourceReferral && strings.TrimSpace(d.ReferralName) == "" {
		fieldErrs["referral_name"] = "referral name is required"
	}

	return fieldErrs
}

// ExistingPatient is a normalized patient-directory record used to autofill
// the details step.
type ExistingPatient struct {
	ID        string
	FirstName string
	LastName  string
	DOB       time.Time
	Phone     string
	Email     string
	Address   string
	Age       string // display form, e.g. "26 years"
}

// toDetails autofills PatientDetails from the record. The stored age string
// is parsed when present; otherwise the age is derived from the DOB.
func (p ExistingPatient) toDetails(now time.Time) PatientDetails {
	details := PatientDetails{
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		DOB:               p.DOB,
		Phone:             p.Phone,
		Email:             p.Email,
		Address:           p.Address,
		ExistingPatientID: p.ID,
	}

	if age, unit, err := ParseAge(p.Age); err == nil {
		details.Age, details.AgeUnit = age, unit
	} else if !p.DOB.IsZero() {
		details.Age, details.AgeUnit = AgeFromDOB(p.DOB, now)
	}

	return details
}
