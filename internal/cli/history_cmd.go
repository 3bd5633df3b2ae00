package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/wanderplan/internal/cli/formatter"
	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/spf13/cobra"
)

var errNoHistory = errors.New("trip history is not configured")

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"ls"},
		Short:   "List saved trips, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Trips == nil {
				return errNoHistory
			}
			trips, err := app.Trips.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(trips, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of trips to show (0 for all)")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	format := formatText

	cmd := &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Print a saved itinerary",
		Long:  "Print a saved itinerary. The id may be shortened to any unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Trips == nil {
				return errNoHistory
			}
			trip, err := app.Trips.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("trip %q: %w", args[0], err)
			}
			return writeTrip(cmd.OutOrStdout(), format, formatter.FormatTrip(trip, app.now()), exportTrip(trip))
		},
	}

	cmd.Flags().VarP(&format, "format", "f", "Output format: text, json or yaml")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <trip-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved trip",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Trips == nil {
				return errNoHistory
			}
			if err := app.Trips.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("trip %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted trip %s\n", args[0])
			return nil
		},
	}
}

func newInterestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interests",
		Short: "List the interests itineraries can be planned around",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInterests(domain.Catalog()))
			return nil
		},
	}
}
