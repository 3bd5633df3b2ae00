package service

import (
	"context"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// TripService keeps the history of generated trips.
type TripService interface {
	// Save stores a newly committed itinerary as revision 1 of a new trip.
	Save(ctx context.Context, req domain.TripRequest, itin domain.Itinerary, generator string) (*domain.Trip, error)
	// SaveRevision replaces the itinerary of an existing trip after a
	// regeneration and bumps its revision.
	SaveRevision(ctx context.Context, id string, itin domain.Itinerary, generator string) (*domain.Trip, error)
	// Get resolves a full id or a unique id prefix.
	Get(ctx context.Context, idOrPrefix string) (*domain.Trip, error)
	List(ctx context.Context, limit int) ([]domain.TripSummary, error)
	Delete(ctx context.Context, idOrPrefix string) error
}
