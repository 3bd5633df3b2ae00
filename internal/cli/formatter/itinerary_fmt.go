package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// DayHeading renders "Day 1 - Sunday, June 1".
func DayHeading(n int, date time.Time) string {
	return fmt.Sprintf("Day %d - %s", n, date.Format("Monday, January 2"))
}

// WeatherLine renders the forecast summary for one day.
func WeatherLine(w domain.WeatherSnapshot) string {
	cat := w.Category()
	style := WeatherStyle(cat)
	parts := []string{
		style.Render(WeatherGlyph(cat) + " " + WeatherLabel(cat)),
		fmt.Sprintf("%.0f°-%.0f°C", w.TemperatureMin, w.TemperatureMax),
	}
	if !w.Sunrise.IsZero() && !w.Sunset.IsZero() {
		parts = append(parts, Dim(fmt.Sprintf("sunrise %s · sunset %s", w.Sunrise.Format("15:04"), w.Sunset.Format("15:04"))))
	}
	return strings.Join(parts, "  ")
}

// ActivityLine renders one activity on a single line.
func ActivityLine(a domain.Activity) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		StyleBlue.Render(a.StartTime.String()),
		Bold(a.Name),
		Dim(FormatMinutes(int(a.Duration.Minutes()))),
		InterestBadge(a.Category),
		OpenBadge(a.IsOpen),
	)
}

// FormatDay renders one day: heading, weather and activities with their
// descriptions.
func FormatDay(n int, day domain.DayItinerary) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(DayHeading(n, day.Date)))
	b.WriteString("\n  ")
	b.WriteString(WeatherLine(day.Weather))
	b.WriteString("\n")
	if len(day.Activities) == 0 {
		b.WriteString("  " + Dim("Nothing planned.") + "\n")
		return b.String()
	}
	for _, a := range day.Activities {
		b.WriteString("  ")
		b.WriteString(ActivityLine(a))
		b.WriteString("\n")
		if a.Description != "" {
			b.WriteString("         " + Dim(a.Description) + "\n")
		}
	}
	return b.String()
}

// FormatItinerary renders the request summary followed by every day in order.
func FormatItinerary(req domain.TripRequest, itin domain.Itinerary) string {
	var b strings.Builder
	b.WriteString(Header(req.Destination()))
	b.WriteString("\n")

	days := "1 day"
	if n := req.DayCount(); n != 1 {
		days = fmt.Sprintf("%d days", n)
	}
	b.WriteString(Dim(fmt.Sprintf("%s · %s · %s", DateRange(req.StartDate(), req.EndDate()), days, InterestList(req.Interests()))))
	b.WriteString("\n")

	for i, day := range itin {
		b.WriteString("\n")
		b.WriteString(FormatDay(i+1, day))
	}
	return b.String()
}

// FormatTrip renders a saved trip: its itinerary plus a provenance footer.
func FormatTrip(trip *domain.Trip, now time.Time) string {
	footer := fmt.Sprintf("trip %s · revision %d · %s · updated %s",
		trip.ID, trip.Revision, trip.Generator, HumanTimestampFrom(trip.UpdatedAt, now))
	return FormatItinerary(trip.Request, trip.Itinerary) + "\n" + Dim(footer) + "\n"
}
