package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used for input, storage and output.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// TripRequest is the validated, immutable input of one generation attempt.
// Construct it with NewTripRequest or RestoreTripRequest.
type TripRequest struct {
	destination string
	startDate   time.Time
	endDate     time.Time
	interests   []Interest
}

// NewTripRequest validates the form against today and captures it.
func NewTripRequest(in FormInput, today time.Time) (TripRequest, error) {
	if err := Validate(in, today); err != nil {
		return TripRequest{}, err
	}
	return TripRequest{
		destination: strings.TrimSpace(in.Destination),
		startDate:   DateOf(in.StartDate),
		endDate:     DateOf(in.EndDate),
		interests:   in.Interests.Sorted(),
	}, nil
}

// RestoreTripRequest rebuilds a request from persisted values. It skips the
// "not in the past" rule, since saved trips age.
func RestoreTripRequest(destination string, start, end time.Time, interests []Interest) TripRequest {
	cp := make([]Interest, len(interests))
	copy(cp, interests)
	return TripRequest{
		destination: strings.TrimSpace(destination),
		startDate:   DateOf(start),
		endDate:     DateOf(end),
		interests:   NewInterestSet(cp...).Sorted(),
	}
}

func (r TripRequest) Destination() string  { return r.destination }
func (r TripRequest) StartDate() time.Time { return r.startDate }
func (r TripRequest) EndDate() time.Time   { return r.endDate }

// Interests returns a copy of the selected interests in lexical order.
func (r TripRequest) Interests() []Interest {
	out := make([]Interest, len(r.interests))
	copy(out, r.interests)
	return out
}

func (r TripRequest) HasInterest(i Interest) bool {
	for _, have := range r.interests {
		if have == i {
			return true
		}
	}
	return false
}

// IsZero reports whether r was never captured.
func (r TripRequest) IsZero() bool {
	return r.destination == "" && r.startDate.IsZero()
}

// DayCount is the number of calendar days in the range, inclusive.
func (r TripRequest) DayCount() int {
	if r.endDate.Before(r.startDate) {
		return 0
	}
	return int(r.endDate.Sub(r.startDate).Hours()/24) + 1
}

// Days lists every calendar date from start to end inclusive.
func (r TripRequest) Days() []time.Time {
	n := r.DayCount()
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, r.startDate.AddDate(0, 0, i))
	}
	return days
}
