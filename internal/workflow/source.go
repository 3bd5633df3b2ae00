package workflow

import (
	"context"
	"math"
	"sync"
	"time"
)

// StageSource decides when a stage of an attempt is complete. Swapping the
// source changes pacing without touching the state machine.
type StageSource interface {
	// AwaitStage blocks until the given stage of attempt id has completed, or
	// ctx is done.
	AwaitStage(ctx context.Context, id AttemptID, stage int) error
}

// MilestoneSink is implemented by stage sources that advance on milestones
// reported by the generator itself.
type MilestoneSink interface {
	Reporter(id AttemptID) ProgressFunc
	// Complete marks every stage of id finished.
	Complete(id AttemptID)
	Forget(id AttemptID)
}

// DwellStages completes each stage after a fixed minimum dwell so the user
// can tell the phases apart.
type DwellStages struct {
	Dwell time.Duration
}

func (d DwellStages) AwaitStage(ctx context.Context, _ AttemptID, _ int) error {
	if d.Dwell <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.Dwell)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MilestoneStages completes stages when the generator reports them through
// the ProgressFunc handed out by Reporter.
type MilestoneStages struct {
	mu       sync.Mutex
	attempts map[AttemptID]*milestone
	retired  AttemptID
}

type milestone struct {
	completed int
	changed   chan struct{}
}

func NewMilestoneStages() *MilestoneStages {
	return &MilestoneStages{attempts: make(map[AttemptID]*milestone)}
}

func (m *MilestoneStages) Reporter(id AttemptID) ProgressFunc {
	return func(stage int) { m.report(id, stage) }
}

func (m *MilestoneStages) Complete(id AttemptID) {
	m.report(id, math.MaxInt)
}

// Forget drops bookkeeping for id and every earlier attempt. Late reports for
// them are ignored.
func (m *MilestoneStages) Forget(id AttemptID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id > m.retired {
		m.retired = id
	}
	for k, st := range m.attempts {
		if k <= m.retired {
			close(st.changed)
			delete(m.attempts, k)
		}
	}
}

func (m *MilestoneStages) AwaitStage(ctx context.Context, id AttemptID, stage int) error {
	for {
		m.mu.Lock()
		if id <= m.retired {
			m.mu.Unlock()
			return context.Canceled
		}
		st := m.entry(id)
		if st.completed >= stage {
			m.mu.Unlock()
			return nil
		}
		changed := st.changed
		m.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (m *MilestoneStages) report(id AttemptID, stage int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id <= m.retired {
		return
	}
	st := m.entry(id)
	if stage <= st.completed {
		return
	}
	st.completed = stage
	close(st.changed)
	st.changed = make(chan struct{})
}

// entry must be called with m.mu held.
func (m *MilestoneStages) entry(id AttemptID) *milestone {
	st, ok := m.attempts[id]
	if !ok {
		st = &milestone{completed: -1, changed: make(chan struct{})}
		m.attempts[id] = st
	}
	return st
}
