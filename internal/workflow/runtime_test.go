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

func testAttempt(id AttemptID, kind AttemptKind) Attempt {
	return Attempt{ID: id, Kind: kind, Request: testutil.NewTestRequest("Lisbon", "2025-06-01", "2025-06-02")}
}

func TestDwellStages_ZeroDwellCompletesImmediately(t *testing.T) {
	d := DwellStages{}
	assert.NoError(t, d.AwaitStage(context.Background(), 1, 0))
}

func TestDwellStages_WaitsForDwell(t *testing.T) {
	d := DwellStages{Dwell: 20 * time.Millisecond}
	start := time.Now()
	require.NoError(t, d.AwaitStage(context.Background(), 1, 0))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDwellStages_CancelledContext(t *testing.T) {
	d := DwellStages{Dwell: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.AwaitStage(ctx, 1, 0), context.Canceled)
}

func TestMilestoneStages_ReportUnblocksWaiters(t *testing.T) {
	m := NewMilestoneStages()
	report := m.Reporter(1)

	done := make(chan error, 1)
	go func() { done <- m.AwaitStage(context.Background(), 1, 1) }()

	report(0)
	select {
	case <-done:
		t.Fatal("stage 1 completed after only stage 0 was reported")
	case <-time.After(20 * time.Millisecond):
	}

	report(1)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("stage 1 never completed")
	}
}

func TestMilestoneStages_ReportBeforeAwait(t *testing.T) {
	m := NewMilestoneStages()
	m.Reporter(3)(2)

	for stage := 0; stage <= 2; stage++ {
		assert.NoError(t, m.AwaitStage(context.Background(), 3, stage))
	}
}

func TestMilestoneStages_CompleteFinishesAllStages(t *testing.T) {
	m := NewMilestoneStages()
	m.Complete(1)
	assert.NoError(t, m.AwaitStage(context.Background(), 1, 3))
}

func TestMilestoneStages_ForgetRetiresEarlierAttempts(t *testing.T) {
	m := NewMilestoneStages()

	done := make(chan error, 1)
	go func() { done <- m.AwaitStage(context.Background(), 1, 0) }()
	time.Sleep(5 * time.Millisecond)

	m.Forget(2)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("waiter was not released")
	}

	// Late reports for retired attempts are dropped.
	m.Reporter(1)(0)
	assert.ErrorIs(t, m.AwaitStage(context.Background(), 1, 0), context.Canceled)

	// Later attempts still work.
	m.Reporter(3)(0)
	assert.NoError(t, m.AwaitStage(context.Background(), 3, 0))
}

func TestRuntime_GenerateReturnsItinerary(t *testing.T) {
	a := testAttempt(1, AttemptInitial)
	want := testutil.NewTestItinerary(a.Request, "ok")
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		assert.Equal(t, a.Request, req)
		assert.Nil(t, progress, "dwell stages do not hand out a reporter")
		return want, nil
	})
	rt := NewRuntime(gen, DwellStages{}, time.Second)
	defer rt.Close()

	res := rt.Generate(a)
	require.NoError(t, res.Err)
	assert.Equal(t, a.ID, res.Attempt)
	assert.Equal(t, want, res.Itinerary)
}

func TestRuntime_GenerateTimesOutHungGenerator(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		<-release // ignores ctx on purpose
		return nil, nil
	})
	rt := NewRuntime(gen, DwellStages{}, 20*time.Millisecond)
	defer rt.Close()

	res := rt.Generate(testAttempt(1, AttemptInitial))

	var ge *GenerationError
	require.True(t, errors.As(res.Err, &ge))
	assert.Equal(t, KindTimeout, ge.Kind)
	assert.ErrorIs(t, res.Err, ErrTimeout)
}

func TestRuntime_GeneratorHonouringDeadlineIsTimeout(t *testing.T) {
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		<-ctx.Done()
		return nil, errors.New("upstream gave up")
	})
	rt := NewRuntime(gen, DwellStages{}, 20*time.Millisecond)
	defer rt.Close()

	res := rt.Generate(testAttempt(1, AttemptInitial))
	assert.ErrorIs(t, res.Err, ErrTimeout)
}

func TestRuntime_GeneratorErrorPassesThrough(t *testing.T) {
	cause := errors.New("503")
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		return nil, cause
	})
	rt := NewRuntime(gen, DwellStages{}, time.Second)
	defer rt.Close()

	res := rt.Generate(testAttempt(1, AttemptInitial))
	assert.ErrorIs(t, res.Err, cause)
	assert.Equal(t, KindServiceFailure, asGenerationError(res.Err).Kind)
}

func TestRuntime_MilestoneReporterOnlyForInitialAttempts(t *testing.T) {
	var gotReporter []bool
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		gotReporter = append(gotReporter, progress != nil)
		if progress != nil {
			progress(0)
		}
		return testutil.NewTestItinerary(req, "m"), nil
	})
	rt := NewRuntime(gen, NewMilestoneStages(), time.Second)
	defer rt.Close()

	require.NoError(t, rt.Generate(testAttempt(1, AttemptInitial)).Err)
	require.NoError(t, rt.Generate(testAttempt(2, AttemptRegenerate)).Err)
	assert.Equal(t, []bool{true, false}, gotReporter)

	// Success marks every stage of the initial attempt complete.
	assert.NoError(t, rt.AwaitStage(1, 3))
}

func TestRuntime_ReleaseCancelsInFlightWork(t *testing.T) {
	started := make(chan struct{})
	gen := GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	rt := NewRuntime(gen, DwellStages{Dwell: time.Hour}, time.Hour)
	defer rt.Close()

	resCh := make(chan Result, 1)
	go func() { resCh <- rt.Generate(testAttempt(1, AttemptInitial)) }()
	<-started

	rt.Release(1)

	select {
	case res := <-resCh:
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.NotErrorIs(t, res.Err, ErrTimeout)
	case <-time.After(time.Second):
		t.Fatal("release did not cancel the generator")
	}

	assert.Error(t, rt.AwaitStage(1, 0), "released attempts cannot wait on stages")
}
