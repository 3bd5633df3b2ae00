package cli

import (
	"time"

	"github.com/alexanderramin/wanderplan/internal/service"
	"github.com/alexanderramin/wanderplan/internal/workflow"
	"github.com/spf13/cobra"
)

// App holds the collaborators used by CLI commands and the TUI.
type App struct {
	Trips service.TripService

	// Generator produces itineraries. GeneratorName is recorded on saved trips.
	Generator     workflow.Generator
	GeneratorName string

	// StageSource builds the stage source for one runtime. Nil means
	// DwellStages with no dwell.
	StageSource func() workflow.StageSource
	Timeout     time.Duration
	Observer    workflow.Observer

	Now           func() time.Time
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) newController() *workflow.Controller {
	return workflow.NewController(nil, workflow.WithObserver(a.Observer), workflow.WithClock(a.Now))
}

func (a *App) newRuntime() *workflow.Runtime {
	var stages workflow.StageSource = workflow.DwellStages{}
	if a.StageSource != nil {
		stages = a.StageSource()
	}
	return workflow.NewRuntime(a.Generator, stages, a.Timeout)
}

// NewRootCmd creates the top-level "wanderplan" command. With no subcommand
// it opens the interactive planner on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "wanderplan",
		Short:         "Plan day-by-day travel itineraries",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newPlanCmd(app),
		newHistoryCmd(app),
		newShowCmd(app),
		newDeleteCmd(app),
		newInterestsCmd(),
	)

	return root
}
