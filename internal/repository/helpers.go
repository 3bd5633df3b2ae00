package repository

import (
	"strings"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

const clockLayout = "15:04"

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time truncated to the second, the precision
// RFC3339 storage keeps.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// joinInterests stores interests as a comma-separated list.
func joinInterests(in []domain.Interest) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func splitInterests(s string) []domain.Interest {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]domain.Interest, 0, len(parts))
	for _, p := range parts {
		out = append(out, domain.Interest(p))
	}
	return out
}

// clockOf formats the wall-clock part of t, or "" for the zero time.
func clockOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(clockLayout)
}

// atClock places an "HH:MM" string on date. Unparseable values yield the zero
// time.
func atClock(date time.Time, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	tod, err := domain.ParseTimeOfDay(s)
	if err != nil {
		return time.Time{}
	}
	return date.Add(time.Duration(tod.Minutes()) * time.Minute)
}
