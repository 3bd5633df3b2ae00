package repository

import (
	"context"

	"github.com/alexanderramin/wanderplan/internal/domain"
)

// TripRepo stores trips and their day-by-day itineraries.
type TripRepo interface {
	Create(ctx context.Context, t *domain.Trip) error
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	// FindByPrefix resolves a unique id prefix, as typed on the command line.
	FindByPrefix(ctx context.Context, prefix string) (*domain.Trip, error)
	List(ctx context.Context, limit int) ([]domain.TripSummary, error)
	// ReplaceItinerary swaps the stored days and bumps the revision.
	ReplaceItinerary(ctx context.Context, id string, itin domain.Itinerary, generator string) error
	Delete(ctx context.Context, id string) error
}
