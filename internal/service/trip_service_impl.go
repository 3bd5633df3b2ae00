package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/wanderplan/internal/db"
	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/alexanderramin/wanderplan/internal/repository"
)

// ErrEmptyItinerary rejects saving a trip with no days.
var ErrEmptyItinerary = errors.New("itinerary has no days")

type tripService struct {
	trips    repository.TripRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewTripService(trips repository.TripRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TripService {
	return &tripService{
		trips:    trips,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func (s *tripService) Save(ctx context.Context, req domain.TripRequest, itin domain.Itinerary, generator string) (_ *domain.Trip, err error) {
	start := time.Now()
	trip := &domain.Trip{
		ID:        uuid.New().String(),
		Request:   req,
		Itinerary: itin.Clone(),
		Revision:  1,
		Generator: generator,
		CreatedAt: s.now(),
	}
	trip.UpdatedAt = trip.CreatedAt
	defer func() {
		observe(ctx, s.observer, "trip.save", start, err, map[string]any{
			"trip_id":     trip.ID,
			"destination": req.Destination(),
			"days":        len(itin),
		})
	}()

	if len(itin) == 0 {
		return nil, ErrEmptyItinerary
	}
	if len(itin) != req.DayCount() {
		return nil, fmt.Errorf("itinerary has %d days, trip spans %d", len(itin), req.DayCount())
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTripRepo(tx).Create(ctx, trip)
	})
	if err != nil {
		return nil, fmt.Errorf("saving trip: %w", err)
	}
	return trip, nil
}

func (s *tripService) SaveRevision(ctx context.Context, id string, itin domain.Itinerary, generator string) (_ *domain.Trip, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "trip.save_revision", start, err, map[string]any{
			"trip_id": id,
			"days":    len(itin),
		})
	}()

	if len(itin) == 0 {
		return nil, ErrEmptyItinerary
	}

	var saved *domain.Trip
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		trips := repository.NewSQLiteTripRepo(tx)
		existing, err := trips.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if len(itin) != existing.Request.DayCount() {
			return fmt.Errorf("itinerary has %d days, trip spans %d", len(itin), existing.Request.DayCount())
		}
		if err := trips.ReplaceItinerary(ctx, id, itin, generator); err != nil {
			return err
		}
		saved, err = trips.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("saving trip revision: %w", err)
	}
	return saved, nil
}

func (s *tripService) Get(ctx context.Context, idOrPrefix string) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, idOrPrefix)
	if errors.Is(err, repository.ErrNotFound) {
		return s.trips.FindByPrefix(ctx, idOrPrefix)
	}
	return trip, err
}

func (s *tripService) List(ctx context.Context, limit int) ([]domain.TripSummary, error) {
	return s.trips.List(ctx, limit)
}

func (s *tripService) Delete(ctx context.Context, idOrPrefix string) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "trip.delete", start, err, map[string]any{"trip": idOrPrefix})
	}()

	trip, err := s.Get(ctx, idOrPrefix)
	if err != nil {
		return err
	}
	return s.trips.Delete(ctx, trip.ID)
}
