package domain

import (
	"fmt"
	"strings"
	"time"
)

// FormInput holds the raw field values of the trip form. Zero dates mean the
// field is unset.
type FormInput struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   InterestSet
}

// FieldError describes one failed form rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every failed rule of a form submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid trip form: " + strings.Join(parts, "; ")
}

// Has reports whether the named field failed.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

const (
	FieldDestination = "destination"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldInterests   = "interests"
)

// Validate checks the form against the submission rules. It returns a
// *ValidationError listing all failures, or nil.
func Validate(in FormInput, today time.Time) error {
	var errs []FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(in.Destination) == "" {
		add(FieldDestination, "destination is required")
	}

	day := DateOf(today)
	switch {
	case in.StartDate.IsZero():
		add(FieldStartDate, "start date is required")
	case DateOf(in.StartDate).Before(day):
		add(FieldStartDate, "start date %s is in the past", DateOf(in.StartDate).Format(DateLayout))
	}

	switch {
	case in.EndDate.IsZero():
		add(FieldEndDate, "end date is required")
	case !in.StartDate.IsZero() && DateOf(in.EndDate).Before(DateOf(in.StartDate)):
		add(FieldEndDate, "end date must not be before start date")
	}

	if in.Interests.Len() == 0 {
		add(FieldInterests, "select at least one interest")
	}
	for _, i := range in.Interests.Sorted() {
		if !ValidInterest(i) {
			add(FieldInterests, "unknown interest %q", string(i))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Valid reports whether the form may be submitted.
func (in FormInput) Valid(today time.Time) bool {
	return Validate(in, today) == nil
}
