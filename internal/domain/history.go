package domain

import "time"

// Trip is a saved plan: the request it was generated for and the latest
// committed itinerary. Revision counts regenerations, starting at 1.
type Trip struct {
	ID        string
	Request   TripRequest
	Itinerary Itinerary
	Revision  int
	Generator string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TripSummary is the list view of a saved trip.
type TripSummary struct {
	ID          string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   []Interest
	DayCount    int
	Revision    int
	UpdatedAt   time.Time
}
