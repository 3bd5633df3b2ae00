package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// tripExport is the machine-readable shape of an itinerary for --format
// json and yaml.
type tripExport struct {
	ID          string            `json:"id,omitempty" yaml:"id,omitempty"`
	Revision    int               `json:"revision,omitempty" yaml:"revision,omitempty"`
	Generator   string            `json:"generator,omitempty" yaml:"generator,omitempty"`
	Destination string            `json:"destination" yaml:"destination"`
	StartDate   string            `json:"start_date" yaml:"start_date"`
	EndDate     string            `json:"end_date" yaml:"end_date"`
	Interests   []domain.Interest `json:"interests" yaml:"interests"`
	Days        []dayExport       `json:"days" yaml:"days"`
}

type dayExport struct {
	Date       string           `json:"date" yaml:"date"`
	Weather    weatherExport    `json:"weather" yaml:"weather"`
	Activities []activityExport `json:"activities" yaml:"activities"`
}

type weatherExport struct {
	Code     int                    `json:"code" yaml:"code"`
	Category domain.WeatherCategory `json:"category" yaml:"category"`
	MaxC     float64                `json:"max_c" yaml:"max_c"`
	MinC     float64                `json:"min_c" yaml:"min_c"`
	Sunrise  string                 `json:"sunrise,omitempty" yaml:"sunrise,omitempty"`
	Sunset   string                 `json:"sunset,omitempty" yaml:"sunset,omitempty"`
}

type activityExport struct {
	Time            string          `json:"time" yaml:"time"`
	Name            string          `json:"name" yaml:"name"`
	Description     string          `json:"description,omitempty" yaml:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes" yaml:"duration_minutes"`
	Category        domain.Interest `json:"category" yaml:"category"`
	Open            bool            `json:"open" yaml:"open"`
}

func exportItinerary(req domain.TripRequest, itin domain.Itinerary) tripExport {
	out := tripExport{
		Destination: req.Destination(),
		StartDate:   req.StartDate().Format(domain.DateLayout),
		EndDate:     req.EndDate().Format(domain.DateLayout),
		Interests:   req.Interests(),
		Days:        make([]dayExport, 0, len(itin)),
	}
	for _, day := range itin {
		d := dayExport{
			Date: day.Date.Format(domain.DateLayout),
			Weather: weatherExport{
				Code:     day.Weather.WeatherCode,
				Category: day.Weather.Category(),
				MaxC:     day.Weather.TemperatureMax,
				MinC:     day.Weather.TemperatureMin,
				Sunrise:  clockString(day.Weather.Sunrise),
				Sunset:   clockString(day.Weather.Sunset),
			},
			Activities: make([]activityExport, 0, len(day.Activities)),
		}
		for _, a := range day.Activities {
			d.Activities = append(d.Activities, activityExport{
				Time:            a.StartTime.String(),
				Name:            a.Name,
				Description:     a.Description,
				DurationMinutes: int(a.Duration.Minutes()),
				Category:        a.Category,
				Open:            a.IsOpen,
			})
		}
		out.Days = append(out.Days, d)
	}
	return out
}

func exportTrip(trip *domain.Trip) tripExport {
	out := exportItinerary(trip.Request, trip.Itinerary)
	out.ID = trip.ID
	out.Revision = trip.Revision
	out.Generator = trip.Generator
	return out
}

func clockString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

// writeTrip prints text for the text format and the encoded export otherwise.
func writeTrip(w io.Writer, format outputFormat, text string, exp tripExport) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exp)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exp); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := fmt.Fprint(w, text)
		return err
	}
}
