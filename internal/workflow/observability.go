package workflow

import (
	"context"
	"io"
	"log/slog"
)

// TransitionEvent records one event applied to the controller, including
// events that were ignored as stale.
type TransitionEvent struct {
	From    Phase
	To      Phase
	Attempt AttemptID
	Stage   int // -1 outside Generating
	Outcome Outcome
	Err     error
}

// Observer receives controller events for logging and tests.
type Observer interface {
	OnTransition(event TransitionEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnTransition(TransitionEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes transition events to w as slog text records.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

func (o *logObserver) OnTransition(event TransitionEvent) {
	attrs := []any{
		"from", string(event.From),
		"to", string(event.To),
		"attempt", uint64(event.Attempt),
		"outcome", string(event.Outcome),
	}
	if event.Stage >= 0 {
		attrs = append(attrs, "stage", event.Stage)
	}

	ctx := context.Background()
	switch {
	case event.Err != nil:
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.WarnContext(ctx, "workflow_transition", attrs...)
	case event.Outcome == OutcomeStale || event.Outcome == OutcomeIgnored:
		o.logger.DebugContext(ctx, "workflow_transition", attrs...)
	default:
		o.logger.InfoContext(ctx, "workflow_transition", attrs...)
	}
}
