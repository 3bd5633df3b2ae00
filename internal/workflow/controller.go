package workflow

import (
	"fmt"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// Outcome reports what an event did to the controller.
type Outcome string

const (
	OutcomeIgnored        Outcome = "ignored"
	OutcomeStale          Outcome = "stale"
	OutcomeAdvanced       Outcome = "advanced"
	OutcomeStagesComplete Outcome = "stages_complete"
	OutcomeBuffered       Outcome = "buffered"
	OutcomeCommitted      Outcome = "committed"
	OutcomeFailed         Outcome = "failed"
)

// Terminal reports whether the attempt that produced this outcome is over.
func (o Outcome) Terminal() bool {
	return o == OutcomeCommitted || o == OutcomeFailed
}

// Controller owns the itinerary workflow state machine. It is not safe for
// concurrent use: every method must be called from the single control loop
// that also receives stage and result notifications.
type Controller struct {
	stages   []Stage
	state    State
	lastID   AttemptID
	observer Observer
	now      func() time.Time
}

type Option func(*Controller)

// WithObserver attaches a transition observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithClock overrides the clock used to decide "today" during validation.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a controller in Idle. An empty stage list falls back
// to DefaultStages.
func NewController(stages []Stage, opts ...Option) *Controller {
	if len(stages) == 0 {
		stages = DefaultStages()
	}
	c := &Controller{
		stages:   append([]Stage(nil), stages...),
		state:    Idle{},
		observer: NoopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state. A Ready itinerary is handed out as a copy;
// only the controller changes the committed result.
func (c *Controller) State() State {
	if r, ok := c.state.(Ready); ok {
		r.Itinerary = r.Itinerary.Clone()
		return r
	}
	return c.state
}

func (c *Controller) Phase() Phase { return c.state.Phase() }

// Stages returns a copy of the stage catalog.
func (c *Controller) Stages() []Stage {
	return append([]Stage(nil), c.stages...)
}

// InFlight returns the attempt awaiting a result, or zero.
func (c *Controller) InFlight() AttemptID { return inflight(c.state) }

// Progress returns the stage display while Generating.
func (c *Controller) Progress() (Progress, bool) {
	g, ok := c.state.(Generating)
	if !ok {
		return Progress{}, false
	}
	return Progress{Stage: g.Stage, Total: len(c.stages), Label: c.stages[g.Stage].Label}, true
}

// Itinerary returns a copy of the committed itinerary while Ready.
func (c *Controller) Itinerary() (domain.Itinerary, bool) {
	r, ok := c.state.(Ready)
	if !ok {
		return nil, false
	}
	return r.Itinerary.Clone(), true
}

// Open moves Idle to Collecting, carrying any previous error as a notice.
func (c *Controller) Open() bool {
	idle, ok := c.state.(Idle)
	if !ok {
		return false
	}
	c.transition(Collecting{Notice: idle.Err}, 0, OutcomeAdvanced, nil)
	return true
}

// Submit validates the form and starts an initial attempt at stage 0.
// Invalid input returns *domain.ValidationError and leaves the state alone.
// Submitting outside Idle or Collecting returns ErrBusy, including while a
// buffered result waits for the remaining stages.
func (c *Controller) Submit(in domain.FormInput) (Attempt, error) {
	switch c.state.(type) {
	case Idle, Collecting:
	default:
		return Attempt{}, fmt.Errorf("submit in %s: %w", c.Phase(), ErrBusy)
	}

	req, err := domain.NewTripRequest(in, c.now())
	if err != nil {
		return Attempt{}, err
	}

	a := Attempt{ID: c.nextAttempt(), Kind: AttemptInitial, Request: req}
	c.transition(Generating{Request: req, Attempt: a.ID}, a.ID, OutcomeAdvanced, nil)
	return a, nil
}

// AdvanceStage records that the current stage of attempt id finished. Stages
// advance by exactly one; completing the final stage commits a buffered
// success.
func (c *Controller) AdvanceStage(id AttemptID) Outcome {
	g, ok := c.state.(Generating)
	if !ok || g.Attempt != id {
		c.ignored(id, OutcomeStale)
		return OutcomeStale
	}
	if g.stagesDone {
		c.ignored(id, OutcomeIgnored)
		return OutcomeIgnored
	}

	if g.Stage < len(c.stages)-1 {
		g.Stage++
		c.transition(g, id, OutcomeAdvanced, nil)
		return OutcomeAdvanced
	}

	g.stagesDone = true
	if g.resolved {
		return c.commitInitial(g)
	}
	c.transition(g, id, OutcomeStagesComplete, nil)
	return OutcomeStagesComplete
}

// Resolve applies the generator's answer. Results for any attempt other than
// the one in flight are dropped as stale.
func (c *Controller) Resolve(res Result) Outcome {
	if res.Attempt == 0 || res.Attempt != c.InFlight() {
		c.ignored(res.Attempt, OutcomeStale)
		return OutcomeStale
	}

	switch st := c.state.(type) {
	case Generating:
		if res.Err != nil {
			genErr := asGenerationError(res.Err)
			c.transition(Idle{Err: genErr}, res.Attempt, OutcomeFailed, genErr)
			return OutcomeFailed
		}
		st.resolved = true
		st.pending = res.Itinerary.Clone()
		if st.stagesDone {
			return c.commitInitial(st)
		}
		c.transition(st, res.Attempt, OutcomeBuffered, nil)
		return OutcomeBuffered

	case Ready:
		next := Ready{Request: st.Request, Itinerary: st.Itinerary}
		if res.Err != nil {
			genErr := asGenerationError(res.Err)
			next.Notice = genErr
			c.transition(next, res.Attempt, OutcomeFailed, genErr)
			return OutcomeFailed
		}
		next.Itinerary = res.Itinerary.Clone()
		c.transition(next, res.Attempt, OutcomeCommitted, nil)
		return OutcomeCommitted
	}

	c.ignored(res.Attempt, OutcomeStale)
	return OutcomeStale
}

// Regenerate starts a fresh attempt for the displayed request. The current
// itinerary stays visible until the new result commits.
func (c *Controller) Regenerate() (Attempt, error) {
	r, ok := c.state.(Ready)
	if !ok {
		if _, generating := c.state.(Generating); generating {
			return Attempt{}, ErrBusy
		}
		return Attempt{}, fmt.Errorf("regenerate in %s: %w", c.Phase(), ErrInvalidTransition)
	}
	if r.Regenerating {
		return Attempt{}, ErrBusy
	}

	a := Attempt{ID: c.nextAttempt(), Kind: AttemptRegenerate, Request: r.Request}
	r.Regenerating = true
	r.Attempt = a.ID
	r.Notice = nil
	c.transition(r, a.ID, OutcomeAdvanced, nil)
	return a, nil
}

// DismissNotice clears the transient regeneration error shown in Ready.
func (c *Controller) DismissNotice() {
	if r, ok := c.state.(Ready); ok && r.Notice != nil {
		r.Notice = nil
		c.state = r
	}
}

// PlanAnother discards the itinerary and request and returns to Idle. Any
// regeneration still in flight is superseded and its id returned so the
// caller can release it.
func (c *Controller) PlanAnother() (AttemptID, bool) {
	r, ok := c.state.(Ready)
	if !ok {
		return 0, false
	}
	superseded := AttemptID(0)
	if r.Regenerating {
		superseded = r.Attempt
	}
	c.transition(Idle{}, superseded, OutcomeAdvanced, nil)
	return superseded, true
}

func (c *Controller) commitInitial(g Generating) Outcome {
	c.transition(Ready{Request: g.Request, Itinerary: g.pending}, g.Attempt, OutcomeCommitted, nil)
	return OutcomeCommitted
}

func (c *Controller) nextAttempt() AttemptID {
	c.lastID++
	return c.lastID
}

func (c *Controller) transition(next State, id AttemptID, outcome Outcome, err error) {
	from := c.state.Phase()
	c.state = next
	stage := -1
	if g, ok := next.(Generating); ok {
		stage = g.Stage
	}
	c.observer.OnTransition(TransitionEvent{
		From:    from,
		To:      next.Phase(),
		Attempt: id,
		Stage:   stage,
		Outcome: outcome,
		Err:     err,
	})
}

func (c *Controller) ignored(id AttemptID, outcome Outcome) {
	phase := c.state.Phase()
	c.observer.OnTransition(TransitionEvent{
		From:    phase,
		To:      phase,
		Attempt: id,
		Stage:   -1,
		Outcome: outcome,
	})
}
