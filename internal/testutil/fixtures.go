package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// Today is the fixed "today" used by fixtures and controller clocks in tests.
var Today = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

// FixedClock returns a clock that always reports Today.
func FixedClock() func() time.Time {
	return func() time.Time { return Today }
}

// Form options
type FormOption func(*domain.FormInput)

func WithDestination(d string) FormOption {
	return func(f *domain.FormInput) {
		f.Destination = d
	}
}

func WithDates(start, end string) FormOption {
	return func(f *domain.FormInput) {
		f.StartDate = mustDate(start)
		f.EndDate = mustDate(end)
	}
}

func WithInterests(interests ...domain.Interest) FormOption {
	return func(f *domain.FormInput) {
		f.Interests = domain.NewInterestSet(interests...)
	}
}

// NewTestForm returns a valid single-day Lisbon food trip unless overridden.
func NewTestForm(opts ...FormOption) domain.FormInput {
	f := domain.FormInput{
		Destination: "Lisbon",
		StartDate:   mustDate("2025-06-01"),
		EndDate:     mustDate("2025-06-01"),
		Interests:   domain.NewInterestSet(domain.InterestFood),
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// NewTestRequest builds a request without the "today" check.
func NewTestRequest(destination, start, end string, interests ...domain.Interest) domain.TripRequest {
	if len(interests) == 0 {
		interests = []domain.Interest{domain.InterestFood}
	}
	return domain.RestoreTripRequest(destination, mustDate(start), mustDate(end), interests)
}

// NewTestItinerary returns one day per requested date. Each day gets two
// activities whose names carry tag, so tests can tell results apart.
func NewTestItinerary(req domain.TripRequest, tag string) domain.Itinerary {
	days := req.Days()
	it := make(domain.Itinerary, 0, len(days))
	for i, d := range days {
		it = append(it, domain.DayItinerary{
			Date: d,
			Weather: domain.WeatherSnapshot{
				Date:           d,
				WeatherCode:    i * 30,
				TemperatureMax: 28,
				TemperatureMin: 19,
				Sunrise:        d.Add(6*time.Hour + 30*time.Minute),
				Sunset:         d.Add(20*time.Hour + 15*time.Minute),
			},
			Activities: []domain.Activity{
				{
					Name:      fmt.Sprintf("%s morning walk %d", tag, i+1),
					StartTime: domain.TimeOfDay{Hour: 8},
					Duration:  time.Hour,
					Category:  domain.InterestNature,
					IsOpen:    true,
				},
				{
					Name:      fmt.Sprintf("%s tasting %d", tag, i+1),
					StartTime: domain.TimeOfDay{Hour: 13, Minute: 30},
					Duration:  90 * time.Minute,
					Category:  domain.InterestFood,
					IsOpen:    i%2 == 0,
				},
			},
		})
	}
	return it
}

// Trip options
type TripOption func(*domain.Trip)

func WithTripRequest(req domain.TripRequest) TripOption {
	return func(t *domain.Trip) {
		t.Request = req
		t.Itinerary = NewTestItinerary(req, "trip")
	}
}

func WithItinerary(it domain.Itinerary) TripOption {
	return func(t *domain.Trip) {
		t.Itinerary = it
	}
}

func WithUpdatedAt(ts time.Time) TripOption {
	return func(t *domain.Trip) {
		t.UpdatedAt = ts
	}
}

// NewTestTrip returns an unsaved two-day Lisbon trip with a fresh id.
func NewTestTrip(opts ...TripOption) *domain.Trip {
	req := NewTestRequest("Lisbon", "2025-06-01", "2025-06-02", domain.InterestFood, domain.InterestHistory)
	t := &domain.Trip{
		ID:        uuid.New().String(),
		Request:   req,
		Itinerary: NewTestItinerary(req, "trip"),
		Revision:  1,
		Generator: "sample",
		CreatedAt: Today,
		UpdatedAt: Today,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
