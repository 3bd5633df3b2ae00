package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/repository"
	"github.com/alexanderramin/wanderplan/internal/service"
	"github.com/alexanderramin/wanderplan/internal/teatest"
	"github.com/alexanderramin/wanderplan/internal/testutil"
	"github.com/alexanderramin/wanderplan/internal/workflow"
)

// testApp wires an App backed by an in-memory DB and the given generator.
func testApp(t *testing.T, gen workflow.Generator) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	trips := service.NewTripService(repository.NewSQLiteTripRepo(database), testutil.NewTestUoW(database))
	return &App{
		Trips:         trips,
		Generator:     gen,
		GeneratorName: "sample",
		Timeout:       time.Second,
		Now:           testutil.FixedClock(),
	}
}

// taggedGenerator returns itineraries tagged "first", "second", ... on
// successive calls. Calls listed in failOn return an error instead.
func taggedGenerator(failOn ...int) workflow.Generator {
	tags := []string{"first", "second", "third", "fourth"}
	calls := 0
	return workflow.GeneratorFunc(func(ctx context.Context, req domain.TripRequest, progress workflow.ProgressFunc) (domain.Itinerary, error) {
		calls++
		for _, n := range failOn {
			if n == calls {
				return nil, errors.New("upstream unavailable")
			}
		}
		return testutil.NewTestItinerary(req, tags[(calls-1)%len(tags)]), nil
	})
}

// TestDriver wraps teatest.Driver with inspection of appModel internals.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel with its own runtime, sets the terminal
// size and drains Init().
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	rt := app.newRuntime()
	t.Cleanup(rt.Close)

	d := teatest.New(t, newAppModel(app, rt), teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Submit delivers a completed form, as the huh form does on its last field.
func (d *TestDriver) Submit(in domain.FormInput) {
	d.T.Helper()
	d.Send(formSubmittedMsg{input: in})
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) ActiveViewID() ViewID {
	return d.appModel().activeView()
}

func (d *TestDriver) Phase() workflow.Phase {
	return d.appModel().ctrl.Phase()
}

func (d *TestDriver) Controller() *workflow.Controller {
	return d.appModel().ctrl
}

func (d *TestDriver) TripID() string {
	return d.appModel().tripID
}

func (d *TestDriver) Notice() error {
	return d.appModel().notice
}

// IsQuitting checks the model flag and the driver's tea.QuitMsg detection.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
