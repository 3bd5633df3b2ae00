package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wanderplan/internal/db"
	"github.com/alexanderramin/wanderplan/internal/domain"
)

// SQLiteTripRepo implements TripRepo on a *sql.DB or a transaction.
// Writes that touch several tables should run inside db.UnitOfWork.
type SQLiteTripRepo struct {
	db db.DBTX
}

// NewSQLiteTripRepo creates a new SQLiteTripRepo.
func NewSQLiteTripRepo(conn db.DBTX) *SQLiteTripRepo {
	return &SQLiteTripRepo{db: conn}
}

const tripColumns = `id, destination, start_date, end_date, interests, revision, generator, created_at, updated_at`

func (r *SQLiteTripRepo) Create(ctx context.Context, t *domain.Trip) error {
	req := t.Request
	query := `INSERT INTO trips (id, destination, start_date, end_date, interests, revision, generator, day_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		req.Destination(),
		req.StartDate().Format(domain.DateLayout),
		req.EndDate().Format(domain.DateLayout),
		joinInterests(req.Interests()),
		t.Revision,
		t.Generator,
		len(t.Itinerary),
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting trip: %w", err)
	}
	return r.insertDays(ctx, t.ID, t.Itinerary)
}

func (r *SQLiteTripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if err != nil {
		return nil, err
	}
	if t.Itinerary, err = r.loadItinerary(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTripRepo) FindByPrefix(ctx context.Context, prefix string) (*domain.Trip, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("trip: %w", ErrNotFound)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM trips WHERE id LIKE ? || '%' ESCAPE '\' LIMIT 2`, escapeLike(prefix))
	if err != nil {
		return nil, fmt.Errorf("finding trip by prefix: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning trip id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trip ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("trip %q: %w", prefix, ErrNotFound)
	case 1:
		return r.GetByID(ctx, ids[0])
	default:
		return nil, fmt.Errorf("trip id prefix %q is ambiguous", prefix)
	}
}

func (r *SQLiteTripRepo) List(ctx context.Context, limit int) ([]domain.TripSummary, error) {
	query := `SELECT id, destination, start_date, end_date, interests, day_count, revision, updated_at
		FROM trips ORDER BY updated_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	defer rows.Close()

	var out []domain.TripSummary
	for rows.Next() {
		var s domain.TripSummary
		var start, end, interests, updated string
		if err := rows.Scan(&s.ID, &s.Destination, &start, &end, &interests, &s.DayCount, &s.Revision, &updated); err != nil {
			return nil, fmt.Errorf("scanning trip row: %w", err)
		}
		if s.StartDate, err = time.Parse(domain.DateLayout, start); err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		if s.EndDate, err = time.Parse(domain.DateLayout, end); err != nil {
			return nil, fmt.Errorf("parsing end_date: %w", err)
		}
		if s.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		s.Interests = splitInterests(interests)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trips: %w", err)
	}
	return out, nil
}

func (r *SQLiteTripRepo) ReplaceItinerary(ctx context.Context, id string, itin domain.Itinerary, generator string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trips SET revision = revision + 1, generator = ?, day_count = ?, updated_at = ? WHERE id = ?`,
		generator, len(itin), nowUTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating trip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}
	// Activities cascade from their day.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trip_days WHERE trip_id = ?`, id); err != nil {
		return fmt.Errorf("clearing trip days: %w", err)
	}
	return r.insertDays(ctx, id, itin)
}

func (r *SQLiteTripRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTripRepo) insertDays(ctx context.Context, tripID string, itin domain.Itinerary) error {
	for i, day := range itin {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO trip_days (trip_id, day_index, date, weather_code, temperature_max, temperature_min, sunrise, sunset)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			tripID, i,
			day.Date.Format(domain.DateLayout),
			day.Weather.WeatherCode,
			day.Weather.TemperatureMax,
			day.Weather.TemperatureMin,
			clockOf(day.Weather.Sunrise),
			clockOf(day.Weather.Sunset),
		)
		if err != nil {
			return fmt.Errorf("inserting trip day %d: %w", i+1, err)
		}
		for pos, a := range day.Activities {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO trip_activities (trip_id, day_index, position, name, description, start_time, duration_sec, category, is_open)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				tripID, i, pos,
				a.Name,
				a.Description,
				a.StartTime.String(),
				int64(a.Duration/time.Second),
				string(a.Category),
				boolToInt(a.IsOpen),
			)
			if err != nil {
				return fmt.Errorf("inserting activity %d of day %d: %w", pos+1, i+1, err)
			}
		}
	}
	return nil
}

func (r *SQLiteTripRepo) loadItinerary(ctx context.Context, tripID string) (domain.Itinerary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, weather_code, temperature_max, temperature_min, sunrise, sunset
		FROM trip_days WHERE trip_id = ? ORDER BY day_index`, tripID)
	if err != nil {
		return nil, fmt.Errorf("loading trip days: %w", err)
	}
	var itin domain.Itinerary
	for rows.Next() {
		var day domain.DayItinerary
		var date, sunrise, sunset string
		w := &day.Weather
		if err := rows.Scan(&date, &w.WeatherCode, &w.TemperatureMax, &w.TemperatureMin, &sunrise, &sunset); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning trip day: %w", err)
		}
		if day.Date, err = time.Parse(domain.DateLayout, date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parsing day date: %w", err)
		}
		w.Date = day.Date
		w.Sunrise = atClock(day.Date, sunrise)
		w.Sunset = atClock(day.Date, sunset)
		itin = append(itin, day)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trip days: %w", err)
	}

	acts, err := r.db.QueryContext(ctx,
		`SELECT day_index, name, description, start_time, duration_sec, category, is_open
		FROM trip_activities WHERE trip_id = ? ORDER BY day_index, position`, tripID)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	defer acts.Close()
	for acts.Next() {
		var a domain.Activity
		var dayIndex, isOpen int
		var start, category string
		var seconds int64
		if err := acts.Scan(&dayIndex, &a.Name, &a.Description, &start, &seconds, &category, &isOpen); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		if dayIndex < 0 || dayIndex >= len(itin) {
			return nil, fmt.Errorf("activity references missing day %d", dayIndex)
		}
		if a.StartTime, err = domain.ParseTimeOfDay(start); err != nil {
			return nil, err
		}
		a.Duration = time.Duration(seconds) * time.Second
		a.Category = domain.Interest(category)
		a.IsOpen = intToBool(isOpen)
		itin[dayIndex].Activities = append(itin[dayIndex].Activities, a)
	}
	if err := acts.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return itin, nil
}

func scanTrip(row *sql.Row) (*domain.Trip, error) {
	var t domain.Trip
	var dest, start, end, interests, created, updated string
	err := row.Scan(&t.ID, &dest, &start, &end, &interests, &t.Revision, &t.Generator, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trip: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning trip: %w", err)
	}

	startDate, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	endDate, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	t.Request = domain.RestoreTripRequest(dest, startDate, endDate, splitInterests(interests))
	return &t, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
