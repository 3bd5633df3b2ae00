package workflow

import "github.com/alexanderramin/wanderplan/internal/domain"

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseCollecting Phase = "collecting"
	PhaseGenerating Phase = "generating"
	PhaseReady      Phase = "ready"
)

// AttemptID identifies one invocation of the generator. IDs increase
// monotonically for the lifetime of a Controller; zero means "none".
type AttemptID uint64

type AttemptKind string

const (
	AttemptInitial    AttemptKind = "initial"
	AttemptRegenerate AttemptKind = "regenerate"
)

// Attempt is issued by the Controller when it wants the generator invoked.
type Attempt struct {
	ID      AttemptID
	Kind    AttemptKind
	Request domain.TripRequest
}

// Result is the generator's answer for one attempt.
type Result struct {
	Attempt   AttemptID
	Itinerary domain.Itinerary
	Err       error
}

// State is the controller's current phase. It is a closed set: Idle,
// Collecting, Generating and Ready are the only implementations.
type State interface {
	Phase() Phase
	isState()
}

// Idle is the resting phase. Err holds the failure of the previous initial
// attempt, if any.
type Idle struct {
	Err error
}

// Collecting means the trip form is open. Notice carries the error that sent
// the controller back to Idle, so the form can show it.
type Collecting struct {
	Notice error
}

// Generating tracks one initial attempt. A successful result that arrives
// before the final stage completes is held privately and never exposed.
type Generating struct {
	Request domain.TripRequest
	Attempt AttemptID
	Stage   int

	stagesDone bool
	resolved   bool
	pending    domain.Itinerary
}

// Ready shows a committed itinerary. While Regenerating, Attempt is the
// in-flight regeneration and Itinerary stays the previous result.
type Ready struct {
	Request      domain.TripRequest
	Itinerary    domain.Itinerary
	Regenerating bool
	Attempt      AttemptID
	Notice       error
}

func (Idle) Phase() Phase       { return PhaseIdle }
func (Collecting) Phase() Phase { return PhaseCollecting }
func (Generating) Phase() Phase { return PhaseGenerating }
func (Ready) Phase() Phase      { return PhaseReady }

func (Idle) isState()       {}
func (Collecting) isState() {}
func (Generating) isState() {}
func (Ready) isState()      {}

// inflight returns the attempt currently awaiting a result, or zero.
func inflight(s State) AttemptID {
	switch st := s.(type) {
	case Generating:
		if !st.resolved {
			return st.Attempt
		}
	case Ready:
		if st.Regenerating {
			return st.Attempt
		}
	}
	return 0
}
