package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// FormatHistory renders saved trips as a table, most recent first.
func FormatHistory(trips []domain.TripSummary, now time.Time) string {
	if len(trips) == 0 {
		return Dim("No saved trips yet. Run `wanderplan plan` to create one.") + "\n"
	}

	rows := make([][]string, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Destination),
			DateRange(t.StartDate, t.EndDate),
			RelativeDateFrom(t.StartDate, now),
			fmt.Sprintf("%d", t.DayCount),
			InterestList(t.Interests),
			fmt.Sprintf("%d", t.Revision),
			Dim(HumanTimestampFrom(t.UpdatedAt, now)),
		})
	}
	return RenderTable([]string{"ID", "DESTINATION", "DATES", "STARTS", "DAYS", "INTERESTS", "REV", "UPDATED"}, rows, AlignRight(4, 6))
}

// FormatInterests renders the interest catalog.
func FormatInterests(catalog []domain.InterestInfo) string {
	rows := make([][]string, 0, len(catalog))
	for _, info := range catalog {
		rows = append(rows, []string{string(info.ID), StylePurple.Render(info.Label)})
	}
	return RenderTable([]string{"ID", "LABEL"}, rows)
}
