package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/codr1/Courtside/internal/db"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// InsertCourt adds an active court and returns its id.
func InsertCourt(t *testing.T, database *db.DB, name, courtType string, basePriceCents int64) int64 {
	t.Helper()
	return insert(t, database,
		"INSERT INTO courts (name, type, base_price_cents) VALUES (?, ?, ?)",
		name, courtType, basePriceCents,
	)
}

// InsertCoach adds an active coach and returns its id.
func InsertCoach(t *testing.T, database *db.DB, name string, hourlyRateCents int64) int64 {
	t.Helper()
	return insert(t, database,
		"INSERT INTO coaches (name, specialization, hourly_rate_cents) VALUES (?, 'general', ?)",
		name, hourlyRateCents,
	)
}

// InsertCoachWindow adds a weekly availability window for a coach.
// Times are "HH:MM" in the facility timezone.
func InsertCoachWindow(t *testing.T, database *db.DB, coachID int64, dayOfWeek int, start, end string) int64 {
	t.Helper()
	return insert(t, database,
		"INSERT INTO coach_availability (coach_id, day_of_week, start_time, end_time) VALUES (?, ?, ?, ?)",
		coachID, dayOfWeek, start, end,
	)
}

// InsertEquipment adds equipment with available_quantity equal to total.
func InsertEquipment(t *testing.T, database *db.DB, name, category string, priceCents, total int64) int64 {
	t.Helper()
	return insert(t, database,
		`INSERT INTO equipment (name, category, price_per_session_cents, total_quantity, available_quantity)
		 VALUES (?, ?, ?, ?, ?)`,
		name, category, priceCents, total, total,
	)
}

// Deactivate marks a court or coach row inactive. table must be "courts" or "coaches".
func Deactivate(t *testing.T, database *db.DB, table string, id int64) {
	t.Helper()
	if table != "courts" && table != "coaches" {
		t.Fatalf("deactivate: unsupported table %q", table)
	}
	if _, err := database.ExecContext(context.Background(),
		"UPDATE "+table+" SET is_active = 0 WHERE id = ?", id,
	); err != nil {
		t.Fatalf("deactivate %s %d: %v", table, id, err)
	}
}

// QueryInt runs a single-value integer query, failing the test on error.
func QueryInt(t *testing.T, database *db.DB, query string, args ...any) int64 {
	t.Helper()
	var value int64
	if err := database.QueryRowContext(context.Background(), query, args...).Scan(&value); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return value
}

func insert(t *testing.T, database *db.DB, query string, args ...any) int64 {
	t.Helper()
	res, err := database.ExecContext(context.Background(), query, args...)
	if err != nil {
		t.Fatalf("insert fixture: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("fixture id: %v", err)
	}
	return id
}
