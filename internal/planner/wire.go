package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/llm"
)

// Output schemas sent with each call, inferred from the structs below.
var (
	placeSchema     = llm.SchemaFor[resolvedPlace]()
	forecastSchema  = llm.SchemaFor[forecastResponse]()
	recommendSchema = llm.SchemaFor[recommendResponse]()
)

// resolvedPlace is the model's answer to destination resolution.
type resolvedPlace struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty" jsonschema:"IANA time zone name"`
}

func (p resolvedPlace) String() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

func validatePlace(p resolvedPlace) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", p.Longitude)
	}
	return nil
}

type forecastResponse struct {
	Days []forecastDay `json:"days"`
}

type forecastDay struct {
	Date           string  `json:"date" jsonschema:"YYYY-MM-DD"`
	WeatherCode    int     `json:"weather_code" jsonschema:"WMO weather code 0-99"`
	TemperatureMax float64 `json:"temperature_max"`
	TemperatureMin float64 `json:"temperature_min"`
	Sunrise        string  `json:"sunrise" jsonschema:"local time HH:MM"`
	Sunset         string  `json:"sunset" jsonschema:"local time HH:MM"`
}

type recommendResponse struct {
	Days []recommendDay `json:"days"`
}

type recommendDay struct {
	Date       string         `json:"date" jsonschema:"YYYY-MM-DD"`
	Activities []wireActivity `json:"activities"`
}

type wireActivity struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Time        string `json:"time" jsonschema:"start time HH:MM, 24-hour"`
	Duration    string `json:"duration" jsonschema:"length such as 1h30m"`
	Category    string `json:"category" jsonschema:"one of the traveller's interests"`
	IsOpen      *bool  `json:"is_open,omitempty"`
}

// matchDates checks that got lists exactly the requested days in order.
func matchDates(want []time.Time, got []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected %d days, got %d", len(want), len(got))
	}
	for i, d := range want {
		if strings.TrimSpace(got[i]) != d.Format(domain.DateLayout) {
			return fmt.Errorf("day %d: expected date %s, got %q", i+1, d.Format(domain.DateLayout), got[i])
		}
	}
	return nil
}

func forecastValidator(days []time.Time) func(forecastResponse) error {
	return func(r forecastResponse) error {
		dates := make([]string, len(r.Days))
		for i, d := range r.Days {
			dates[i] = d.Date
		}
		if err := matchDates(days, dates); err != nil {
			return err
		}
		for i, d := range r.Days {
			if d.WeatherCode < 0 || d.WeatherCode > 99 {
				return fmt.Errorf("day %d: weather_code %d out of range", i+1, d.WeatherCode)
			}
			if d.TemperatureMin > d.TemperatureMax {
				return fmt.Errorf("day %d: temperature_min above temperature_max", i+1)
			}
			if _, err := domain.ParseTimeOfDay(d.Sunrise); err != nil {
				return fmt.Errorf("day %d: sunrise: %w", i+1, err)
			}
			if _, err := domain.ParseTimeOfDay(d.Sunset); err != nil {
				return fmt.Errorf("day %d: sunset: %w", i+1, err)
			}
		}
		return nil
	}
}

func recommendValidator(days []time.Time) func(recommendResponse) error {
	return func(r recommendResponse) error {
		dates := make([]string, len(r.Days))
		for i, d := range r.Days {
			dates[i] = d.Date
		}
		if err := matchDates(days, dates); err != nil {
			return err
		}
		for i, d := range r.Days {
			if len(d.Activities) == 0 {
				return fmt.Errorf("day %d: no activities", i+1)
			}
			for j, a := range d.Activities {
				if _, err := a.toDomain(); err != nil {
					return fmt.Errorf("day %d activity %d: %w", i+1, j+1, err)
				}
			}
		}
		return nil
	}
}

func (w wireActivity) toDomain() (domain.Activity, error) {
	name := strings.TrimSpace(w.Name)
	if name == "" {
		return domain.Activity{}, errors.New("name is required")
	}
	at, err := domain.ParseTimeOfDay(strings.TrimSpace(w.Time))
	if err != nil {
		return domain.Activity{}, err
	}
	dur, err := parseDuration(w.Duration)
	if err != nil {
		return domain.Activity{}, err
	}
	category, err := domain.ParseInterest(w.Category)
	if err != nil {
		return domain.Activity{}, err
	}
	open := true
	if w.IsOpen != nil {
		open = *w.IsOpen
	}
	return domain.Activity{
		Name:        name,
		Description: strings.TrimSpace(w.Description),
		StartTime:   at,
		Duration:    dur,
		Category:    category,
		IsOpen:      open,
	}, nil
}

// parseDuration accepts Go durations ("1h30m", "1.5h", "45m") and bare
// numbers of hours.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "ours"), "our")
	s = strings.TrimSuffix(strings.TrimSuffix(s, "ins"), "in")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, errors.New("duration is required")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		d, err = time.ParseDuration(s + "h")
	}
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}

func (d forecastDay) toDomain(date time.Time) domain.WeatherSnapshot {
	sunrise, _ := domain.ParseTimeOfDay(d.Sunrise)
	sunset, _ := domain.ParseTimeOfDay(d.Sunset)
	return domain.WeatherSnapshot{
		Date:           date,
		WeatherCode:    d.WeatherCode,
		TemperatureMax: d.TemperatureMax,
		TemperatureMin: d.TemperatureMin,
		Sunrise:        date.Add(time.Duration(sunrise.Minutes()) * time.Minute),
		Sunset:         date.Add(time.Duration(sunset.Minutes()) * time.Minute),
	}
}
