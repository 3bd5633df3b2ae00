package workflow

import (
	"context"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// stageEvent and resultEvent are the notifications serialized into Drive's
// control loop.
type stageEvent struct {
	attempt AttemptID
}

type resultEvent struct {
	result Result
}

// Run submits the form and drives the resulting attempt to completion on the
// calling goroutine. notify, if non-nil, sees the state after every applied
// event. A validation error is returned before any generator call.
func Run(ctx context.Context, c *Controller, rt *Runtime, in domain.FormInput, notify func(State)) (State, error) {
	a, err := c.Submit(in)
	if err != nil {
		return c.State(), err
	}
	if notify != nil {
		notify(c.State())
	}
	return Drive(ctx, c, rt, a, notify)
}

// Drive runs attempt a: the generator call and, for initial attempts, the
// stage sequence. Both deliver into one loop so the controller only ever sees
// one event at a time. Drive returns when the attempt is terminal, with the
// surfaced GenerationError if it failed.
func Drive(ctx context.Context, c *Controller, rt *Runtime, a Attempt, notify func(State)) (State, error) {
	stages := 0
	if a.Kind == AttemptInitial {
		stages = len(c.stages)
	}
	events := make(chan any, stages+1)

	go func() {
		events <- resultEvent{result: rt.Generate(a)}
	}()
	if stages > 0 {
		go func() {
			for i := 0; i < stages; i++ {
				if err := rt.AwaitStage(a.ID, i); err != nil {
					return
				}
				events <- stageEvent{attempt: a.ID}
			}
		}()
	}

	for {
		var outcome Outcome
		select {
		case <-ctx.Done():
			rt.Release(a.ID)
			return c.State(), ctx.Err()
		case ev := <-events:
			switch e := ev.(type) {
			case stageEvent:
				outcome = c.AdvanceStage(e.attempt)
			case resultEvent:
				outcome = c.Resolve(e.result)
			}
		}

		if outcome == OutcomeStale || outcome == OutcomeIgnored {
			continue
		}
		if notify != nil {
			notify(c.State())
		}
		if outcome.Terminal() {
			rt.Release(a.ID)
			return c.State(), surfaced(c.State())
		}
	}
}

func surfaced(s State) error {
	switch st := s.(type) {
	case Idle:
		return st.Err
	case Ready:
		return st.Notice
	}
	return nil
}
