package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/wanderplan/internal/cli/formatter"
	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/workflow"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		destination string
		start, end  time.Time
		noSave      bool
	)
	interests := &interestsValue{set: domain.NewInterestSet()}
	format := formatText

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate an itinerary from flags",
		Example: `  wanderplan plan --destination "Lisbon, Portugal" --start 2025-06-01 --end 2025-06-03 \
    --interest food --interest history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := domain.FormInput{
				Destination: destination,
				StartDate:   start,
				EndDate:     end,
				Interests:   interests.set,
			}

			ctrl := app.newController()
			rt := app.newRuntime()
			defer rt.Close()

			progress := newStageReporter(cmd.ErrOrStderr(), ctrl)
			final, err := workflow.Run(ctx, ctrl, rt, in, progress.notify)
			progress.stop()
			if err != nil {
				return err
			}

			ready, ok := final.(workflow.Ready)
			if !ok {
				return fmt.Errorf("generation ended in %s", final.Phase())
			}

			text := formatter.FormatItinerary(ready.Request, ready.Itinerary)
			exp := exportItinerary(ready.Request, ready.Itinerary)
			if !noSave && app.Trips != nil {
				trip, err := app.Trips.Save(ctx, ready.Request, ready.Itinerary, app.GeneratorName)
				if err != nil {
					return err
				}
				text = formatter.FormatTrip(trip, app.now())
				exp = exportTrip(trip)
			}
			return writeTrip(cmd.OutOrStdout(), format, text, exp)
		},
	}

	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Where to go, e.g. \"Kyoto, Japan\"")
	cmd.Flags().Var(newDateValue(&start), "start", "First day of the trip (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "Last day of the trip (YYYY-MM-DD)")
	cmd.Flags().VarP(interests, "interest", "i", "Interest to plan around; repeat or comma-separate")
	cmd.Flags().VarP(&format, "format", "f", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the trip in history")

	return cmd
}

// stageReporter prints generation stages for headless runs: a spinner on a
// terminal, one line per stage otherwise.
type stageReporter struct {
	out     io.Writer
	ctrl    *workflow.Controller
	spinner *formatter.Spinner
	last    int
}

func newStageReporter(out io.Writer, ctrl *workflow.Controller) *stageReporter {
	r := &stageReporter{out: out, ctrl: ctrl, last: -1}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		r.spinner = formatter.NewSpinner(out, "")
		r.spinner.Start()
	}
	return r
}

func (r *stageReporter) notify(workflow.State) {
	p, ok := r.ctrl.Progress()
	if !ok || p.Stage == r.last {
		return
	}
	r.last = p.Stage
	if r.spinner != nil {
		r.spinner.SetMessage(formatter.StageLine(p))
		return
	}
	fmt.Fprintln(r.out, formatter.StageLine(p))
}

func (r *stageReporter) stop() {
	if r.spinner != nil {
		r.spinner.Stop()
	}
}
