package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTripRequest_CapturesNormalizedFields(t *testing.T) {
	in := validForm()
	in.Destination = "  Lisbon  "
	in.StartDate = time.Date(2025, 6, 1, 18, 45, 0, 0, time.UTC)
	in.Interests = NewInterestSet(InterestNature, InterestCulture)

	req, err := NewTripRequest(in, testToday)
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", req.Destination())
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), req.StartDate())
	assert.Equal(t, []Interest{InterestCulture, InterestNature}, req.Interests())
	assert.Equal(t, 3, req.DayCount())
}

func TestNewTripRequest_IsolatedFromFormMutation(t *testing.T) {
	in := validForm()
	req, err := NewTripRequest(in, testToday)
	require.NoError(t, err)

	in.Interests.Toggle(InterestShopping)
	got := req.Interests()
	got[0] = InterestNightlife

	assert.Equal(t, []Interest{InterestFood}, req.Interests())
}

func TestNewTripRequest_Invalid(t *testing.T) {
	in := validForm()
	in.Interests = nil
	req, err := NewTripRequest(in, testToday)
	require.Error(t, err)
	assert.True(t, req.IsZero())
}

func TestTripRequest_Days(t *testing.T) {
	req := RestoreTripRequest("Porto",
		time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		[]Interest{InterestFood})

	days := req.Days()
	require.Len(t, days, 4)
	assert.Equal(t, "2025-02-27", days[0].Format(DateLayout))
	assert.Equal(t, "2025-02-28", days[1].Format(DateLayout))
	assert.Equal(t, "2025-03-01", days[2].Format(DateLayout))
	assert.Equal(t, "2025-03-02", days[3].Format(DateLayout))
}

func TestTripRequest_SingleDay(t *testing.T) {
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	req := RestoreTripRequest("Lisbon", d, d, []Interest{InterestFood})
	assert.Equal(t, 1, req.DayCount())
	assert.Equal(t, []time.Time{d}, req.Days())
}

func TestWeatherSnapshot_Category(t *testing.T) {
	cases := []struct {
		code int
		want WeatherCategory
	}{
		{0, WeatherClear},
		{3, WeatherClear},
		{4, WeatherCloudy},
		{45, WeatherCloudy},
		{48, WeatherCloudy},
		{51, WeatherPrecipitation},
		{95, WeatherPrecipitation},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeatherSnapshot{WeatherCode: tc.code}.Category(), "code=%d", tc.code)
	}
}

func TestTimeOfDay_TextRoundTrip(t *testing.T) {
	a := Activity{Name: "Market", StartTime: TimeOfDay{Hour: 9, Minute: 30}, Duration: 2 * time.Hour}
	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"time":"09:30"`)

	var back Activity
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a, back)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestItinerary_CloneIsDeep(t *testing.T) {
	orig := Itinerary{{Activities: []Activity{{Name: "A"}, {Name: "B"}}}}
	cp := orig.Clone()
	cp[0].Activities[0].Name = "changed"

	assert.Equal(t, "A", orig[0].Activities[0].Name)
	assert.Equal(t, 2, orig.ActivityCount())
	assert.Nil(t, Itinerary(nil).Clone())
}
