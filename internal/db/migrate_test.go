package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"trips", "trip_days", "trip_activities"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_trips_updated", "idx_trips_destination"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileDatabaseUsesWAL(t *testing.T) {
	path := t.TempDir() + "/nested/trips.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

const insertTripSQL = `INSERT INTO trips (id, destination, start_date, end_date, interests, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, '2025-05-20T09:00:00Z', '2025-05-20T09:00:00Z')`

func TestMigrate_TripsCheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(insertTripSQL, "blank", "   ", "2025-06-01", "2025-06-01", "food")
	assert.Error(t, err, "blank destination should be rejected")

	_, err = db.Exec(insertTripSQL, "backwards", "Lisbon", "2025-06-03", "2025-06-01", "food")
	assert.Error(t, err, "end before start should be rejected")

	_, err = db.Exec(insertTripSQL, "nointerest", "Lisbon", "2025-06-01", "2025-06-01", "")
	assert.Error(t, err, "empty interests should be rejected")

	_, err = db.Exec(insertTripSQL, "ok", "Lisbon", "2025-06-01", "2025-06-01", "food")
	assert.NoError(t, err)
}

func TestMigrate_TripDefaults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(insertTripSQL, "t1", "Lisbon", "2025-06-01", "2025-06-01", "food")
	require.NoError(t, err)

	var revision, dayCount int
	var generator string
	require.NoError(t, db.QueryRow(`SELECT revision, generator, day_count FROM trips WHERE id='t1'`).Scan(&revision, &generator, &dayCount))
	assert.Equal(t, 1, revision)
	assert.Equal(t, "", generator)
	assert.Equal(t, 0, dayCount)
}

func TestMigrate_ActivityCategoryConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(insertTripSQL, "t1", "Lisbon", "2025-06-01", "2025-06-01", "food")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO trip_days (trip_id, day_index, date) VALUES ('t1', 0, '2025-06-01')`)
	require.NoError(t, err)

	insertAct := `INSERT INTO trip_activities (trip_id, day_index, position, name, start_time, duration_sec, category)
		VALUES ('t1', 0, ?, 'Market', '13:00', 5400, ?)`
	_, err = db.Exec(insertAct, 0, "food")
	assert.NoError(t, err)
	_, err = db.Exec(insertAct, 1, "gambling")
	assert.Error(t, err)
}

func TestMigrate_DeleteTripCascades(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(insertTripSQL, "t1", "Lisbon", "2025-06-01", "2025-06-01", "food")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO trip_days (trip_id, day_index, date) VALUES ('t1', 0, '2025-06-01')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO trip_activities (trip_id, day_index, position, name, start_time, duration_sec, category)
		VALUES ('t1', 0, 0, 'Market', '13:00', 5400, 'food')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM trips WHERE id='t1'`)
	require.NoError(t, err)

	var days, acts int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM trip_days`).Scan(&days))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM trip_activities`).Scan(&acts))
	assert.Zero(t, days)
	assert.Zero(t, acts)
}
