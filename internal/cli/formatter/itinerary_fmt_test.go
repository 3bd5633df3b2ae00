package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDayHeading(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Day 1 - Sunday, June 1", DayHeading(1, date))
}

func TestWeatherLine(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		code int
		want string
	}{
		{0, "☀ Clear"},
		{3, "☀ Clear"},
		{45, "☁ Cloudy"},
		{61, "☂ Rain"},
	}
	for _, tt := range tests {
		w := domain.WeatherSnapshot{
			Date:           date,
			WeatherCode:    tt.code,
			TemperatureMax: 28,
			TemperatureMin: 19,
			Sunrise:        date.Add(6*time.Hour + 30*time.Minute),
			Sunset:         date.Add(20*time.Hour + 15*time.Minute),
		}
		got := stripANSI(WeatherLine(w))
		assert.Contains(t, got, tt.want)
		assert.Contains(t, got, "19°-28°C")
		assert.Contains(t, got, "sunrise 06:30 · sunset 20:15")
	}
}

func TestWeatherLine_OmitsMissingSunTimes(t *testing.T) {
	got := stripANSI(WeatherLine(domain.WeatherSnapshot{WeatherCode: 2, TemperatureMax: 10, TemperatureMin: 4}))
	assert.Equal(t, "☀ Clear  4°-10°C", got)
}

func TestActivityLine(t *testing.T) {
	a := domain.Activity{
		Name:      "Time Out Market",
		StartTime: domain.TimeOfDay{Hour: 13, Minute: 30},
		Duration:  90 * time.Minute,
		Category:  domain.InterestFood,
		IsOpen:    false,
	}
	assert.Equal(t, "13:30  Time Out Market  1h 30m  Food  ✖ Closed", stripANSI(ActivityLine(a)))
}

func TestFormatItinerary_DaysInOrder(t *testing.T) {
	req := testutil.NewTestRequest("Lisbon", "2025-06-01", "2025-06-02", domain.InterestFood, domain.InterestHistory)
	itin := testutil.NewTestItinerary(req, "Lisbon")

	got := stripANSI(FormatItinerary(req, itin))

	assert.True(t, strings.HasPrefix(got, "LISBON\n"))
	assert.Contains(t, got, "Jun 1 - Jun 2, 2025 · 2 days · Food, History")
	day1 := strings.Index(got, "Day 1 - Sunday, June 1")
	day2 := strings.Index(got, "Day 2 - Monday, June 2")
	assert.Greater(t, day1, 0)
	assert.Greater(t, day2, day1)

	walk := strings.Index(got, "Lisbon morning walk 1")
	tasting := strings.Index(got, "Lisbon tasting 1")
	assert.Greater(t, tasting, walk, "activities keep generator order")
}

func TestFormatItinerary_SingleDay(t *testing.T) {
	req := testutil.NewTestRequest("Lisbon", "2025-06-01", "2025-06-01")
	got := stripANSI(FormatItinerary(req, testutil.NewTestItinerary(req, "x")))
	assert.Contains(t, got, "Jun 1, 2025 · 1 day · Food")
}

func TestFormatDay_Empty(t *testing.T) {
	got := stripANSI(FormatDay(3, domain.DayItinerary{Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)}))
	assert.Contains(t, got, "Day 3 - Tuesday, June 3")
	assert.Contains(t, got, "Nothing planned.")
}

func TestFormatTrip_Footer(t *testing.T) {
	trip := testutil.NewTestTrip()
	trip.Revision = 2
	got := stripANSI(FormatTrip(trip, testutil.Today.Add(3*time.Hour)))
	assert.Contains(t, got, "trip "+trip.ID+" · revision 2 · sample · updated 3h ago")
}
