// Package teatest drives a bubbletea model synchronously in tests.
//
// The Driver stands in for tea.Program: it calls Update directly and runs
// every returned Cmd inline, feeding the resulting messages back in. Cmds
// that block past the driver's timeout, such as cursor blinks or stage
// dwell timers, are dropped and counted in Skipped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many Cmd generations one Send may trigger.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates Cmds that answer immediately (database writes,
// buffered generation results) from timer-driven ones.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver holds a model and the messages it has processed.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg comes out of a Cmd. The real
	// runtime swallows that message, so models rarely track it themselves.
	Quitting bool

	// Skipped counts Cmds abandoned because they outlived the timeout.
	Skipped int

	delivered  []tea.Msg
	cmdTimeout time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// New returns a Driver for model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout lets Cmds with simulated latency finish instead of being
// skipped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.cmdTimeout = timeout
	}
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains the resulting Cmds. After a quit it does
// nothing.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

func (d *Driver) press(k tea.KeyMsg) {
	d.T.Helper()
	d.Send(k)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) { d.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}) }

func (d *Driver) PressEsc()   { d.press(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressCtrlC() { d.press(tea.KeyMsg{Type: tea.KeyCtrlC}) }
func (d *Driver) PressDown()  { d.press(tea.KeyMsg{Type: tea.KeyDown}) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

// Delivered returns the messages produced by Cmds and fed into Update, in
// order. Messages passed to Send are not included.
func (d *Driver) Delivered() []tea.Msg {
	return d.delivered
}

// Received returns the delivered messages of type M.
func Received[M any](d *Driver) []M {
	var out []M
	for _, msg := range d.delivered {
		if m, ok := msg.(M); ok {
			out = append(out, m)
		}
	}
	return out
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped draining at depth %d", depth)
		return
	}

	msg, ok := d.run(cmd)
	if !ok || msg == nil || isBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		d.delivered = append(d.delivered, msg)
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.drain(next, depth+1)
	}
}

// run executes cmd on its own goroutine. The goroutine of a skipped Cmd is
// left to finish on its own.
func (d *Driver) run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	timer := time.NewTimer(d.cmdTimeout)
	defer timer.Stop()
	select {
	case msg := <-ch:
		return msg, true
	case <-timer.C:
		d.Skipped++
		return nil, false
	}
}

// isBlink matches the cursor package's blink messages, which are unexported
// and chain into further timer Cmds.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
