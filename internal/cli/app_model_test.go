package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/testutil"
	"github.com/alexanderramin/wanderplan/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewFor(t *testing.T) {
	assert.Equal(t, ViewForm, viewFor(workflow.PhaseIdle))
	assert.Equal(t, ViewForm, viewFor(workflow.PhaseCollecting))
	assert.Equal(t, ViewGenerating, viewFor(workflow.PhaseGenerating))
	assert.Equal(t, ViewItinerary, viewFor(workflow.PhaseReady))
}

func TestShortHelp_PerView(t *testing.T) {
	keys := newItineraryKeyMap()

	var itin []string
	for _, b := range shortHelp(ViewItinerary, keys) {
		itin = append(itin, b.Help().Key)
	}
	assert.Equal(t, []string{"r", "n", "↑↓", "q"}, itin)
	assert.Len(t, shortHelp(ViewGenerating, keys), 1)
	assert.Len(t, shortHelp(ViewForm, keys), 3)
}

func TestTripFormValues_Input(t *testing.T) {
	v := &tripFormValues{
		Destination: "Lisbon",
		Start:       "2025-06-01",
		End:         "not a date",
		Interests:   []domain.Interest{domain.InterestFood, domain.InterestFood, domain.InterestHistory},
	}

	in := v.input()

	assert.Equal(t, "Lisbon", in.Destination)
	assert.Equal(t, "2025-06-01", in.StartDate.Format(domain.DateLayout))
	assert.True(t, in.EndDate.IsZero())
	assert.Equal(t, 2, in.Interests.Len())

	err := domain.Validate(in, testutil.Today)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has(domain.FieldEndDate))
}

func TestNoticeText(t *testing.T) {
	ve := &domain.ValidationError{Fields: []domain.FieldError{
		{Field: domain.FieldDestination, Message: "destination is required"},
		{Field: domain.FieldInterests, Message: "select at least one interest"},
	}}
	assert.Equal(t, "destination is required; select at least one interest", noticeText(ve))

	timeout := &workflow.GenerationError{Kind: workflow.KindTimeout}
	assert.Contains(t, noticeText(timeout), "took too long")

	failed := &workflow.GenerationError{Kind: workflow.KindServiceFailure, Err: errors.New("502")}
	assert.Contains(t, noticeText(fmt.Errorf("wrapped: %w", failed)), "could not build")

	assert.Equal(t, "boom", noticeText(errors.New("boom")))
}

func TestValidateDateAndRequired(t *testing.T) {
	assert.NoError(t, validateDate("2025-06-01"))
	assert.EqualError(t, validateDate("06/01/2025"), "use YYYY-MM-DD format")
	assert.NoError(t, validateRequired("destination")("Kyoto"))
	assert.EqualError(t, validateRequired("destination")("   "), "destination is required")
}

func TestCommitted_WithoutHistorySkipsSave(t *testing.T) {
	app := testApp(t, taggedGenerator())
	app.Trips = nil
	d := NewTestDriver(t, app)

	d.Submit(testutil.NewTestForm())

	assert.Equal(t, ViewItinerary, d.ActiveViewID())
	assert.Empty(t, d.TripID())
	assert.NotContains(t, d.View(), "Saved as")
}

func TestAwaitStageCmd_ReleasedAttemptYieldsNoMessage(t *testing.T) {
	app := testApp(t, taggedGenerator())
	rt := app.newRuntime()
	defer rt.Close()

	rt.Release(1)
	assert.Nil(t, awaitStageCmd(rt, 1, 0)())
}

func TestGenerateCmd_CarriesAttemptKind(t *testing.T) {
	app := testApp(t, taggedGenerator())
	rt := app.newRuntime()
	defer rt.Close()

	a := workflow.Attempt{ID: 3, Kind: workflow.AttemptRegenerate, Request: testutil.NewTestRequest("Porto", "2025-06-01", "2025-06-01")}
	msg, ok := generateCmd(rt, a)().(generationResultMsg)
	require.True(t, ok)
	assert.Equal(t, workflow.AttemptRegenerate, msg.kind)
	assert.Equal(t, workflow.AttemptID(3), msg.result.Attempt)
	require.NoError(t, msg.result.Err)
	assert.Equal(t, "first morning walk 1", msg.result.Itinerary[0].Activities[0].Name)
}
