package domain

import (
	"fmt"
	"time"
)

// WeatherSnapshot is the forecast for one day of the trip.
type WeatherSnapshot struct {
	Date           time.Time `json:"date"`
	WeatherCode    int       `json:"weather_code"`
	TemperatureMax float64   `json:"temperature_max"`
	TemperatureMin float64   `json:"temperature_min"`
	Sunrise        time.Time `json:"sunrise"`
	Sunset         time.Time `json:"sunset"`
}

// Category buckets the weather code for display. Codes 0-3 are clear sky,
// up to 48 covers cloud and fog, anything above is precipitation.
func (w WeatherSnapshot) Category() WeatherCategory {
	switch {
	case w.WeatherCode <= 3:
		return WeatherClear
	case w.WeatherCode <= 48:
		return WeatherCloudy
	default:
		return WeatherPrecipitation
	}
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parsing time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Activity is one planned stop. IsOpen records venue availability at
// generation time and is never refreshed.
type Activity struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartTime   TimeOfDay     `json:"time"`
	Duration    time.Duration `json:"duration"`
	Category    Interest      `json:"category"`
	IsOpen      bool          `json:"is_open"`
}

// DayItinerary is one day of the plan. Activities are in chronological order
// as produced by the generator.
type DayItinerary struct {
	Date       time.Time       `json:"date"`
	Weather    WeatherSnapshot `json:"weather"`
	Activities []Activity      `json:"activities"`
}

// Itinerary is the full plan, one entry per requested day in day order.
type Itinerary []DayItinerary

// Clone returns a deep copy so callers cannot mutate a committed itinerary.
func (it Itinerary) Clone() Itinerary {
	if it == nil {
		return nil
	}
	out := make(Itinerary, len(it))
	for i, day := range it {
		out[i] = day
		out[i].Activities = append([]Activity(nil), day.Activities...)
	}
	return out
}

// ActivityCount totals activities across all days.
func (it Itinerary) ActivityCount() int {
	n := 0
	for _, day := range it {
		n += len(day.Activities)
	}
	return n
}
