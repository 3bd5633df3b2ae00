package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/llm"
	"github.com/alexanderramin/wanderplan/internal/workflow"
)

// LLMGenerator plans trips with a language model in three calls: resolve the
// destination, estimate the forecast, recommend activities. A local pass then
// puts each day in chronological order. Each step completes one stage.
type LLMGenerator struct {
	client llm.LLMClient
}

var _ workflow.Generator = (*LLMGenerator)(nil)

func NewLLMGenerator(client llm.LLMClient) *LLMGenerator {
	return &LLMGenerator{client: client}
}

func (g *LLMGenerator) Generate(ctx context.Context, req domain.TripRequest, progress workflow.ProgressFunc) (domain.Itinerary, error) {
	report := func(stage int) {
		if progress != nil {
			progress(stage)
		}
	}

	place, err := g.resolveDestination(ctx, req)
	if err != nil {
		return nil, err
	}
	report(0)

	weather, err := g.forecast(ctx, req, place)
	if err != nil {
		return nil, err
	}
	report(1)

	itin, err := g.recommend(ctx, req, place, weather)
	if err != nil {
		return nil, err
	}
	report(2)

	verifyAvailability(itin)
	report(3)
	return itin, nil
}

func (g *LLMGenerator) resolveDestination(ctx context.Context, req domain.TripRequest) (resolvedPlace, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskResolveDestination,
		SystemPrompt: destinationSystemPrompt,
		UserPrompt:   fmt.Sprintf("Destination: %s", req.Destination()),
		Schema:       placeSchema,
	})
	if err != nil {
		return resolvedPlace{}, fmt.Errorf("resolving destination: %w", err)
	}
	place, err := llm.ExtractJSON[resolvedPlace](resp.Text, validatePlace)
	if err != nil {
		return resolvedPlace{}, fmt.Errorf("resolving destination: %w", err)
	}
	return place, nil
}

func (g *LLMGenerator) forecast(ctx context.Context, req domain.TripRequest, place resolvedPlace) ([]domain.WeatherSnapshot, error) {
	days := req.Days()
	var b strings.Builder
	fmt.Fprintf(&b, "Place: %s (lat %.2f, lon %.2f, timezone %s)\n", place, place.Latitude, place.Longitude, place.Timezone)
	b.WriteString("Dates:\n")
	for _, d := range days {
		fmt.Fprintf(&b, "- %s\n", d.Format(domain.DateLayout))
	}

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskForecast,
		SystemPrompt: forecastSystemPrompt,
		UserPrompt:   b.String(),
		Schema:       forecastSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("estimating forecast: %w", err)
	}
	parsed, err := llm.ExtractJSON(resp.Text, forecastValidator(days))
	if err != nil {
		return nil, fmt.Errorf("estimating forecast: %w", err)
	}

	out := make([]domain.WeatherSnapshot, len(days))
	for i, d := range days {
		out[i] = parsed.Days[i].toDomain(d)
	}
	return out, nil
}

func (g *LLMGenerator) recommend(ctx context.Context, req domain.TripRequest, place resolvedPlace, weather []domain.WeatherSnapshot) (domain.Itinerary, error) {
	days := req.Days()
	labels := make([]string, 0, len(req.Interests()))
	for _, i := range req.Interests() {
		labels = append(labels, string(i))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Destination: %s\n", place)
	fmt.Fprintf(&b, "Interests: %s\n", strings.Join(labels, ", "))
	b.WriteString("Days:\n")
	for i, d := range days {
		w := weather[i]
		fmt.Fprintf(&b, "- %s (%s): %s, %.0f-%.0f°C, daylight %s-%s\n",
			d.Format(domain.DateLayout), d.Weekday(), w.Category(),
			w.TemperatureMin, w.TemperatureMax,
			w.Sunrise.Format("15:04"), w.Sunset.Format("15:04"))
	}

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRecommend,
		SystemPrompt: recommendSystemPrompt,
		UserPrompt:   b.String(),
		Schema:       recommendSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generating recommendations: %w", err)
	}
	parsed, err := llm.ExtractJSON(resp.Text, recommendValidator(days))
	if err != nil {
		return nil, fmt.Errorf("generating recommendations: %w", err)
	}

	itin := make(domain.Itinerary, len(days))
	for i, d := range days {
		activities := make([]domain.Activity, 0, len(parsed.Days[i].Activities))
		for _, a := range parsed.Days[i].Activities {
			act, _ := a.toDomain() // validated above
			activities = append(activities, act)
		}
		itin[i] = domain.DayItinerary{Date: d, Weather: weather[i], Activities: activities}
	}
	return itin, nil
}

// verifyAvailability puts each day's activities in start-time order and marks
// outdoor activities that start after sunset as unavailable.
func verifyAvailability(itin domain.Itinerary) {
	for i := range itin {
		day := &itin[i]
		acts := day.Activities
		sort.SliceStable(acts, func(a, b int) bool {
			return acts[a].StartTime.Minutes() < acts[b].StartTime.Minutes()
		})
		if day.Weather.Sunset.IsZero() {
			continue
		}
		dark := day.Weather.Sunset.Hour()*60 + day.Weather.Sunset.Minute()
		for j := range acts {
			if outdoor(acts[j].Category) && acts[j].StartTime.Minutes() >= dark {
				acts[j].IsOpen = false
			}
		}
	}
}

func outdoor(i domain.Interest) bool {
	return i == domain.InterestNature || i == domain.InterestAdventure
}
