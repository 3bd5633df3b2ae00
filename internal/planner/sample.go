package planner

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/workflow"
)

// stageCount is the number of progress milestones a generator reports.
const stageCount = 4

type activityTemplate struct {
	name        string
	description string
	duration    time.Duration
}

var sampleActivities = map[domain.Interest][]activityTemplate{
	domain.InterestCulture: {
		{"%s Museum of Contemporary Art", "Rotating exhibitions from local and visiting artists.", 2 * time.Hour},
		{"%s Opera House tour", "Guided walk through the stage, wings and royal box.", 90 * time.Minute},
		{"Street art walk in %s", "Murals and galleries in the creative quarter.", 90 * time.Minute},
	},
	domain.InterestNature: {
		{"%s Botanical Garden", "Shaded paths through native and tropical collections.", 90 * time.Minute},
		{"Riverside trail outside %s", "Easy loop with viewpoints over the water.", 2 * time.Hour},
		{"%s city park picnic", "Pick up supplies and find a spot on the lawn.", time.Hour},
	},
	domain.InterestFood: {
		{"%s central market tasting", "Sample cheese, cured meats and pastries from market stalls.", 90 * time.Minute},
		{"Cooking class in %s", "Learn two regional dishes and eat the results.", 3 * time.Hour},
		{"Neighbourhood bistro in %s", "Set lunch menu at a family-run spot.", time.Hour},
	},
	domain.InterestAdventure: {
		{"Kayak tour from %s harbour", "Paddle along the coast with a local guide.", 3 * time.Hour},
		{"%s climbing gym session", "Bouldering walls for every level.", 2 * time.Hour},
		{"E-bike ride around %s", "Hilly loop covering the main viewpoints.", 150 * time.Minute},
	},
	domain.InterestRelaxation: {
		{"%s thermal baths", "Hot pools, sauna and a quiet lounge.", 2 * time.Hour},
		{"Sunset viewpoint in %s", "Grab a drink and watch the light change.", time.Hour},
		{"Café afternoon in %s old town", "Coffee and a slow read on a terrace.", 90 * time.Minute},
	},
	domain.InterestShopping: {
		{"%s design district", "Independent boutiques and local makers.", 2 * time.Hour},
		{"%s flea market", "Vintage finds, records and ceramics.", 90 * time.Minute},
	},
	domain.InterestHistory: {
		{"%s old fortress", "Ramparts and a small museum on the city's past.", 2 * time.Hour},
		{"Cathedral of %s", "Romanesque nave and a climb to the bell tower.", time.Hour},
		{"Walking tour of historic %s", "Two thousand years of history in two hours.", 2 * time.Hour},
	},
	domain.InterestNightlife: {
		{"Live music bar in %s", "Local bands from ten until late.", 2 * time.Hour},
		{"%s rooftop bar", "Cocktails with a view over the centre.", 90 * time.Minute},
	},
}

var daySlots = []domain.TimeOfDay{{Hour: 9}, {Hour: 12, Minute: 30}, {Hour: 16}}

var nightSlot = domain.TimeOfDay{Hour: 21}

var sampleWeatherCodes = []int{0, 1, 2, 3, 45, 61, 80}

// SampleGenerator builds a plausible itinerary offline. Output depends only on
// the request and how many times the generator has been called, so repeated
// generations for the same trip differ while tests stay reproducible.
type SampleGenerator struct {
	Latency time.Duration

	calls atomic.Uint64
}

var _ workflow.Generator = (*SampleGenerator)(nil)

func NewSampleGenerator(latency time.Duration) *SampleGenerator {
	return &SampleGenerator{Latency: latency}
}

func (g *SampleGenerator) Generate(ctx context.Context, req domain.TripRequest, progress workflow.ProgressFunc) (domain.Itinerary, error) {
	variant := g.calls.Add(1) - 1
	step := g.Latency / stageCount
	for stage := 0; stage < stageCount; stage++ {
		if err := sleep(ctx, step); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(stage)
		}
	}
	return buildSample(req, variant), nil
}

func buildSample(req domain.TripRequest, variant uint64) domain.Itinerary {
	interests := req.Interests()
	days := req.Days()
	it := make(domain.Itinerary, 0, len(days))
	for d, date := range days {
		seed := hashOf(req.Destination(), date.Format(domain.DateLayout), variant)
		day := domain.DayItinerary{Date: date, Weather: sampleWeather(date, seed)}

		for s, slot := range daySlots {
			interest := interests[(d+s+int(variant))%len(interests)]
			if interest == domain.InterestNightlife {
				interest = interests[(d+s+int(variant)+1)%len(interests)]
			}
			if interest == domain.InterestNightlife {
				continue
			}
			day.Activities = append(day.Activities, sampleActivity(req.Destination(), interest, slot, seed+uint64(s)))
		}
		if req.HasInterest(domain.InterestNightlife) {
			day.Activities = append(day.Activities, sampleActivity(req.Destination(), domain.InterestNightlife, nightSlot, seed+uint64(len(daySlots))))
		}
		it = append(it, day)
	}
	return it
}

func sampleActivity(destination string, interest domain.Interest, at domain.TimeOfDay, seed uint64) domain.Activity {
	options := sampleActivities[interest]
	tpl := options[seed%uint64(len(options))]
	return domain.Activity{
		Name:        fmt.Sprintf(tpl.name, destination),
		Description: tpl.description,
		StartTime:   at,
		Duration:    tpl.duration,
		Category:    interest,
		IsOpen:      seed%7 != 0,
	}
}

func sampleWeather(date time.Time, seed uint64) domain.WeatherSnapshot {
	code := sampleWeatherCodes[seed%uint64(len(sampleWeatherCodes))]
	maxTemp := 18 + float64(seed%12)
	return domain.WeatherSnapshot{
		Date:           date,
		WeatherCode:    code,
		TemperatureMax: maxTemp,
		TemperatureMin: maxTemp - 6 - float64(seed%4),
		Sunrise:        date.Add(6*time.Hour + time.Duration(10+seed%40)*time.Minute),
		Sunset:         date.Add(20*time.Hour + time.Duration(seed%45)*time.Minute),
	}
}

func hashOf(destination, date string, variant uint64) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d", destination, date, variant)
	return h.Sum64()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
