package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// ProgressFunc reports that the given stage index has completed. Generators
// may call it from any goroutine; nil means nobody is listening.
type ProgressFunc func(stage int)

// Generator produces an itinerary for a request. Implementations own their
// retries; the controller never retries.
type Generator interface {
	Generate(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error)

func (f GeneratorFunc) Generate(ctx context.Context, req domain.TripRequest, progress ProgressFunc) (domain.Itinerary, error) {
	return f(ctx, req, progress)
}

// DefaultTimeout bounds an attempt when the caller supplies none.
const DefaultTimeout = 3 * time.Minute

// Runtime executes the blocking side of attempts: generator calls and stage
// waits. Its methods block and are meant to run off the control loop, with
// their results fed back into the Controller.
type Runtime struct {
	gen     Generator
	stages  StageSource
	timeout time.Duration

	mu       sync.Mutex
	attempts map[AttemptID]attemptCtx
	retired  AttemptID
}

type attemptCtx struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRuntime binds gen and stages. A non-positive timeout uses DefaultTimeout.
func NewRuntime(gen Generator, stages StageSource, timeout time.Duration) *Runtime {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if stages == nil {
		stages = DwellStages{}
	}
	return &Runtime{
		gen:      gen,
		stages:   stages,
		timeout:  timeout,
		attempts: make(map[AttemptID]attemptCtx),
	}
}

// Generate invokes the generator for a and always returns, even when the
// generator never does: past the timeout the result is a KindTimeout error.
func (r *Runtime) Generate(a Attempt) Result {
	base := r.context(a.ID)
	ctx, cancel := context.WithTimeout(base, r.timeout)
	defer cancel()

	sink, milestones := r.stages.(MilestoneSink)
	var progress ProgressFunc
	if milestones && a.Kind == AttemptInitial {
		progress = sink.Reporter(a.ID)
	}

	done := make(chan Result, 1)
	go func() {
		itin, err := r.gen.Generate(ctx, a.Request, progress)
		done <- Result{Attempt: a.ID, Itinerary: itin, Err: err}
	}()

	var res Result
	select {
	case res = <-done:
		if res.Err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			res.Err = &GenerationError{Kind: KindTimeout, Err: res.Err}
		}
	case <-ctx.Done():
		res = Result{Attempt: a.ID, Err: ctx.Err()}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			res.Err = &GenerationError{Kind: KindTimeout, Err: ctx.Err()}
		}
	}

	if res.Err == nil && milestones && a.Kind == AttemptInitial {
		sink.Complete(a.ID)
	}
	return res
}

// AwaitStage blocks until the stage source completes stage of attempt id.
// It fails once the attempt is released.
func (r *Runtime) AwaitStage(id AttemptID, stage int) error {
	return r.stages.AwaitStage(r.context(id), id, stage)
}

// Release cancels every wait and generator call of id and earlier attempts.
// Call it once an attempt is terminal or superseded.
func (r *Runtime) Release(id AttemptID) {
	if id == 0 {
		return
	}
	r.mu.Lock()
	if id > r.retired {
		r.retired = id
	}
	for k, ac := range r.attempts {
		if k <= r.retired {
			ac.cancel()
			delete(r.attempts, k)
		}
	}
	r.mu.Unlock()

	if sink, ok := r.stages.(MilestoneSink); ok {
		sink.Forget(id)
	}
}

// Close releases every outstanding attempt.
func (r *Runtime) Close() {
	r.mu.Lock()
	for k, ac := range r.attempts {
		ac.cancel()
		delete(r.attempts, k)
	}
	r.mu.Unlock()
}

func (r *Runtime) context(id AttemptID) context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id <= r.retired {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	ac, ok := r.attempts[id]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		ac = attemptCtx{ctx: ctx, cancel: cancel}
		r.attempts[id] = ac
	}
	return ac.ctx
}
