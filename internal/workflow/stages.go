package workflow

// Stage is one named phase of generation, shown in the progress display.
type Stage struct {
	Key   string
	Label string
}

// DefaultStages is the stage catalog used unless a caller supplies its own.
func DefaultStages() []Stage {
	return []Stage{
		{Key: "resolve_destination", Label: "Resolving destination"},
		{Key: "fetch_forecast", Label: "Fetching weather forecast"},
		{Key: "recommend", Label: "Generating recommendations"},
		{Key: "verify_availability", Label: "Verifying place availability"},
	}
}

// Progress is the display snapshot of a Generating attempt.
type Progress struct {
	Stage int
	Total int
	Label string
}

// Percent is (Stage+1)/Total*100. It reaches 100 only on the final stage.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Stage+1) / float64(p.Total) * 100
}

// Fraction is Percent scaled to [0,1].
func (p Progress) Fraction() float64 {
	return p.Percent() / 100
}
