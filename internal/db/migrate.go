package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillDayCount(db); err != nil {
		return fmt.Errorf("backfilling trip day counts: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id          TEXT PRIMARY KEY,
		destination TEXT NOT NULL CHECK(length(trim(destination)) > 0),
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL CHECK(end_date >= start_date),
		interests   TEXT NOT NULL CHECK(length(interests) > 0),
		revision    INTEGER NOT NULL DEFAULT 1 CHECK(revision >= 1),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_updated ON trips(updated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_destination ON trips(destination COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS trip_days (
		trip_id         TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		day_index       INTEGER NOT NULL CHECK(day_index >= 0),
		date            TEXT NOT NULL,
		weather_code    INTEGER NOT NULL DEFAULT 0,
		temperature_max REAL NOT NULL DEFAULT 0,
		temperature_min REAL NOT NULL DEFAULT 0,
		sunrise         TEXT NOT NULL DEFAULT '',
		sunset          TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (trip_id, day_index)
	)`,

	`CREATE TABLE IF NOT EXISTS trip_activities (
		trip_id      TEXT NOT NULL,
		day_index    INTEGER NOT NULL,
		position     INTEGER NOT NULL CHECK(position >= 0),
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		start_time   TEXT NOT NULL,
		duration_sec INTEGER NOT NULL CHECK(duration_sec >= 0),
		category     TEXT NOT NULL
		             CHECK(category IN ('culture','nature','food','adventure','relaxation','shopping','history','nightlife')),
		is_open      INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (trip_id, day_index, position),
		FOREIGN KEY (trip_id, day_index) REFERENCES trip_days(trip_id, day_index) ON DELETE CASCADE
	)`,

	// Added after the first release.
	`ALTER TABLE trips ADD COLUMN generator TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE trips ADD COLUMN day_count INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillDayCount fills day_count for trips saved before the column
// existed.
func migrateBackfillDayCount(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `
		UPDATE trips
		SET day_count = (SELECT COUNT(*) FROM trip_days d WHERE d.trip_id = trips.id)
		WHERE day_count = 0`)
	if err != nil {
		return fmt.Errorf("updating day_count: %w", err)
	}
	return nil
}
