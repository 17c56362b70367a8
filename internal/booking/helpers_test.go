package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/codr1/Courtside/internal/db"
	"github.com/codr1/Courtside/internal/events"
	"github.com/codr1/Courtside/internal/testutil"
)

// 2026-03-02 is a Monday and 2026-03-07 a Saturday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, time.UTC)
}

func int64Ptr(v int64) *int64 { return &v }

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testEnv struct {
	db        *db.DB
	svc       *Service
	recorder  *events.Recorder
	clock     *testClock
	courtID   int64
	court2ID  int64
	outdoorID int64
	coachID   int64
	racketID  int64
	shoesID   int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:       database,
		recorder: events.NewRecorder(),
		clock:    &testClock{now: at(1, 8, 0)},
	}
	env.courtID = testutil.InsertCourt(t, database, "Centre Court", "indoor", 1500)
	env.court2ID = testutil.InsertCourt(t, database, "Court 2", "indoor", 1500)
	env.outdoorID = testutil.InsertCourt(t, database, "Garden Court", "outdoor", 1000)
	env.coachID = testutil.InsertCoach(t, database, "Sam Coach", 2000)
	env.racketID = testutil.InsertEquipment(t, database, "Racket", "racket", 500, 4)
	env.shoesID = testutil.InsertEquipment(t, database, "Shoes", "shoes", 300, 1)

	env.svc = NewService(database, Options{
		Location:    time.UTC,
		OpeningHour: 9,
		ClosingHour: 22,
		OfferExpiry: 30 * time.Minute,
		Publisher:   env.recorder,
		Now:         env.clock.Now,
	})
	return env
}

func customer(id string) Customer {
	return Customer{UserID: id, UserName: "Player " + id, UserEmail: id + "@example.com"}
}

func (e *testEnv) bookingRequest(userID string, courtID int64, start, end time.Time) CreateBookingRequest {
	return CreateBookingRequest{
		Customer: customer(userID),
		Selection: Selection{
			CourtID:   courtID,
			StartTime: start,
			EndTime:   end,
		},
	}
}

func (e *testEnv) count(t *testing.T, query string, args ...any) int64 {
	t.Helper()
	return testutil.QueryInt(t, e.db, query, args...)
}

func (e *testEnv) available(t *testing.T, equipmentID int64) int64 {
	t.Helper()
	return e.count(t, "SELECT available_quantity FROM equipment WHERE id = ?", equipmentID)
}

func requireKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s: %v", want, got, err)
	}
}
