package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 5, 20, 15, 30, 0, 0, time.UTC)

func validForm() FormInput {
	return FormInput{
		Destination: "Lisbon",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Interests:   NewInterestSet(InterestFood),
	}
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
	return ve
}

func TestValidate_AcceptsValidForm(t *testing.T) {
	assert.NoError(t, Validate(validForm(), testToday))
	assert.True(t, validForm().Valid(testToday))
}

func TestValidate_BlankDestination(t *testing.T) {
	in := validForm()
	in.Destination = "   \t"
	ve := requireValidationError(t, Validate(in, testToday))
	assert.True(t, ve.Has(FieldDestination))
	assert.Len(t, ve.Fields, 1)
}

func TestValidate_MissingDates(t *testing.T) {
	in := validForm()
	in.StartDate = time.Time{}
	in.EndDate = time.Time{}
	ve := requireValidationError(t, Validate(in, testToday))
	assert.True(t, ve.Has(FieldStartDate))
	assert.True(t, ve.Has(FieldEndDate))
}

func TestValidate_StartInPast(t *testing.T) {
	in := validForm()
	in.StartDate = testToday.AddDate(0, 0, -1)
	ve := requireValidationError(t, Validate(in, testToday))
	assert.True(t, ve.Has(FieldStartDate))
}

func TestValidate_StartTodayAllowedRegardlessOfClock(t *testing.T) {
	in := validForm()
	in.StartDate = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	in.EndDate = in.StartDate
	assert.NoError(t, Validate(in, testToday))
}

func TestValidate_EndBeforeStart(t *testing.T) {
	in := validForm()
	in.EndDate = in.StartDate.AddDate(0, 0, -1)
	ve := requireValidationError(t, Validate(in, testToday))
	assert.True(t, ve.Has(FieldEndDate))
	assert.False(t, ve.Has(FieldStartDate))
}

func TestValidate_NoInterests(t *testing.T) {
	in := validForm()
	in.Interests = InterestSet{}
	ve := requireValidationError(t, Validate(in, testToday))
	assert.True(t, ve.Has(FieldInterests))
	assert.Contains(t, ve.Error(), "at least one interest")
}

func TestValidate_UnknownInterest(t *testing.T) {
	in := validForm()
	in.Interests = NewInterestSet(InterestFood, Interest("skydiving"))
	ve := requireValidationError(t, Validate(in, testToday))
	assert.True(t, ve.Has(FieldInterests))
	assert.Contains(t, ve.Error(), "skydiving")
}

func TestValidate_ReportsEveryFailure(t *testing.T) {
	ve := requireValidationError(t, Validate(FormInput{}, testToday))
	assert.Len(t, ve.Fields, 4)
}

func TestInterestSet_Toggle(t *testing.T) {
	s := NewInterestSet()
	s.Toggle(InterestNature)
	assert.True(t, s.Has(InterestNature))
	s.Toggle(InterestFood)
	assert.Equal(t, []Interest{InterestFood, InterestNature}, s.Sorted())
	s.Toggle(InterestNature)
	assert.False(t, s.Has(InterestNature))
	assert.Equal(t, 1, s.Len())
}

func TestInterestSet_ToggleOnZeroFormInput(t *testing.T) {
	var in FormInput
	require.NotPanics(t, func() { in.Interests.Toggle(InterestFood) })
	assert.True(t, in.Interests.Has(InterestFood))

	ve := requireValidationError(t, Validate(in, testToday))
	assert.False(t, ve.Has(FieldInterests))
	assert.Len(t, ve.Fields, 3)

	in.Interests.Toggle(InterestFood)
	assert.Zero(t, in.Interests.Len())
}

func TestParseInterest(t *testing.T) {
	cases := map[string]Interest{
		"food":        InterestFood,
		"Food":        InterestFood,
		" NIGHTLIFE ": InterestNightlife,
		"history":     InterestHistory,
	}
	for in, want := range cases {
		got, err := ParseInterest(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseInterest("opera")
	assert.Error(t, err)
}

func TestCatalog_IdentifiersAreDistinct(t *testing.T) {
	seen := map[Interest]bool{}
	for _, info := range Catalog() {
		assert.False(t, seen[info.ID], "duplicate %s", info.ID)
		seen[info.ID] = true
		assert.NotEmpty(t, info.Label)
		assert.Equal(t, info.Label, info.ID.Label())
	}
	assert.Len(t, seen, 8)
}
