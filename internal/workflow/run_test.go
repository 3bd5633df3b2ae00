package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(tag string) Generator {
	return GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		for i := 0; i < 4 && progress != nil; i++ {
			progress(i)
		}
		return testutil.NewTestItinerary(req, tag), nil
	})
}

func TestRun_DwellReachesReadyAfterAllStages(t *testing.T) {
	c, obs := newTestController(t)
	rt := NewRuntime(fixedGenerator("run"), DwellStages{Dwell: time.Millisecond}, time.Second)
	defer rt.Close()

	var stages []int
	final, err := Run(context.Background(), c, rt, testutil.NewTestForm(), func(s State) {
		if g, ok := s.(Generating); ok {
			stages = append(stages, g.Stage)
		}
	})
	require.NoError(t, err)

	r, ok := final.(Ready)
	require.True(t, ok)
	assert.Len(t, r.Itinerary, 1)
	assert.Equal(t, PhaseReady, c.Phase())

	// Stage indices never go backwards and reach the final stage.
	for i := 1; i < len(stages); i++ {
		assert.GreaterOrEqual(t, stages[i], stages[i-1])
	}
	require.NotEmpty(t, stages)
	assert.Equal(t, len(c.Stages())-1, stages[len(stages)-1])

	last := obs.events[len(obs.events)-1]
	assert.Equal(t, OutcomeCommitted, last.Outcome)
}

func TestRun_MilestoneStagesFollowGenerator(t *testing.T) {
	c, _ := newTestController(t)
	rt := NewRuntime(fixedGenerator("ms"), NewMilestoneStages(), time.Second)
	defer rt.Close()

	final, err := Run(context.Background(), c, rt, testutil.NewTestForm(), nil)
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, final.Phase())
}

func TestRun_ValidationErrorSkipsGenerator(t *testing.T) {
	c, _ := newTestController(t)
	called := false
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		called = true
		return nil, nil
	})
	rt := NewRuntime(gen, DwellStages{}, time.Second)
	defer rt.Close()

	_, err := Run(context.Background(), c, rt, testutil.NewTestForm(testutil.WithInterests()), nil)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has(domain.FieldInterests))
	assert.False(t, called)
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestRun_FailureSurfacesServiceError(t *testing.T) {
	c, _ := newTestController(t)
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		return nil, errors.New("bad gateway")
	})
	rt := NewRuntime(gen, DwellStages{Dwell: time.Millisecond}, time.Second)
	defer rt.Close()

	final, err := Run(context.Background(), c, rt, testutil.NewTestForm(), nil)
	assert.ErrorIs(t, err, ErrServiceFailure)
	assert.Equal(t, PhaseIdle, final.Phase())
}

func TestRun_TimeoutSurfacesTimeoutError(t *testing.T) {
	c, _ := newTestController(t)
	block := make(chan struct{})
	defer close(block)
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		<-block
		return nil, nil
	})
	rt := NewRuntime(gen, DwellStages{}, 20*time.Millisecond)
	defer rt.Close()

	final, err := Run(context.Background(), c, rt, testutil.NewTestForm(), nil)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, PhaseIdle, final.Phase())
}

func TestDrive_RegenerateReplacesItinerary(t *testing.T) {
	c, _ := newTestController(t)
	calls := 0
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		calls++
		if calls == 1 {
			return testutil.NewTestItinerary(req, "first"), nil
		}
		return testutil.NewTestItinerary(req, "second"), nil
	})
	rt := NewRuntime(gen, DwellStages{Dwell: time.Millisecond}, time.Second)
	defer rt.Close()

	_, err := Run(context.Background(), c, rt, testutil.NewTestForm(), nil)
	require.NoError(t, err)

	a, err := c.Regenerate()
	require.NoError(t, err)
	final, err := Drive(context.Background(), c, rt, a, nil)
	require.NoError(t, err)

	r := final.(Ready)
	assert.False(t, r.Regenerating)
	assert.Equal(t, "second morning walk 1", r.Itinerary[0].Activities[0].Name)
}

func TestDrive_ContextCancelReleasesAttempt(t *testing.T) {
	c, _ := newTestController(t)
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	rt := NewRuntime(gen, DwellStages{Dwell: time.Hour}, time.Hour)
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	final, err := Run(ctx, c, rt, testutil.NewTestForm(), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, PhaseGenerating, final.Phase())
}
