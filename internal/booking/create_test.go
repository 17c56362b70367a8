package booking

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/codr1/Courtside/internal/events"
)

func TestCreateBookingWithCoachAndEquipment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := env.bookingRequest("u1", env.courtID, at(2, 18, 30), at(2, 19, 30))
	req.CoachID = int64Ptr(env.coachID)
	req.Equipment = []EquipmentItem{{EquipmentID: env.racketID, Quantity: 2}}

	created, err := env.svc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if created.BookingReference != Reference(created.BookingID) {
		t.Fatalf("unexpected reference %q for id %d", created.BookingReference, created.BookingID)
	}
	if created.Pricing.CourtPrice != 2700 || created.Pricing.CoachPrice != 2000 || created.Pricing.EquipmentTotal != 1000 {
		t.Fatalf("unexpected pricing %+v", created.Pricing)
	}
	if created.TotalPrice != 5700 {
		t.Fatalf("expected total 57.00, got %s", created.TotalPrice)
	}
	if created.Status != StatusConfirmed || created.PaymentStatus != PaymentPending {
		t.Fatalf("unexpected status %s/%s", created.Status, created.PaymentStatus)
	}
	if !created.StartTime.Equal(at(2, 18, 30)) || !created.EndTime.Equal(at(2, 19, 30)) {
		t.Fatalf("unexpected interval %s - %s", created.StartTime, created.EndTime)
	}

	if got := env.count(t, "SELECT quantity FROM booking_equipment WHERE booking_id = ? AND equipment_id = ?", created.BookingID, env.racketID); got != 2 {
		t.Fatalf("expected 2 rackets allocated, got %d", got)
	}
	if got := env.available(t, env.racketID); got != 2 {
		t.Fatalf("expected available rackets 2, got %d", got)
	}

	confirmed := env.recorder.Events(events.TypeBookingConfirmed)
	if len(confirmed) != 1 {
		t.Fatalf("expected 1 confirmed event, got %d", len(confirmed))
	}
	if confirmed[0].Key != courtKey(env.courtID) {
		t.Fatalf("unexpected event key %q", confirmed[0].Key)
	}
}

func TestCreateBookingHalfOpenIntervals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateBooking(ctx, env.bookingRequest("u1", env.courtID, at(2, 17, 0), at(2, 18, 0))); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := env.svc.CreateBooking(ctx, env.bookingRequest("u2", env.courtID, at(2, 18, 0), at(2, 19, 0))); err != nil {
		t.Fatalf("back-to-back booking should succeed: %v", err)
	}
	if _, err := env.svc.CreateBooking(ctx, env.bookingRequest("u3", env.courtID, at(2, 16, 0), at(2, 17, 0))); err != nil {
		t.Fatalf("booking ending at start should succeed: %v", err)
	}

	_, err := env.svc.CreateBooking(ctx, env.bookingRequest("u4", env.courtID, at(2, 17, 30), at(2, 18, 30)))
	requireKind(t, err, KindConflict)
	if !strings.Contains(err.Error(), "Court already booked") {
		t.Fatalf("expected court conflict, got %v", err)
	}

	_, err = env.svc.CreateBooking(ctx, env.bookingRequest("u5", env.courtID, at(2, 15, 0), at(2, 20, 0)))
	requireKind(t, err, KindConflict)

	if got := env.count(t, "SELECT COUNT(*) FROM bookings WHERE court_id = ? AND status = 'confirmed'", env.courtID); got != 3 {
		t.Fatalf("expected 3 confirmed bookings, got %d", got)
	}
}

func TestCreateBookingCoachConflictAcrossCourts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.bookingRequest("u1", env.courtID, at(3, 10, 0), at(3, 11, 0))
	first.CoachID = int64Ptr(env.coachID)
	if _, err := env.svc.CreateBooking(ctx, first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second := env.bookingRequest("u2", env.court2ID, at(3, 10, 30), at(3, 11, 30))
	second.CoachID = int64Ptr(env.coachID)
	_, err := env.svc.CreateBooking(ctx, second)
	requireKind(t, err, KindConflict)
	if !strings.Contains(err.Error(), "Coach already booked") {
		t.Fatalf("expected coach conflict, got %v", err)
	}

	second.CoachID = nil
	if _, err := env.svc.CreateBooking(ctx, second); err != nil {
		t.Fatalf("booking without coach should succeed: %v", err)
	}
}

func TestCreateBookingEquipmentCapacity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book := func(user string, courtID int64, startHour, endHour int, qty int64) error {
		req := env.bookingRequest(user, courtID, at(4, startHour, 0), at(4, endHour, 0))
		req.Equipment = []EquipmentItem{{EquipmentID: env.racketID, Quantity: qty}}
		_, err := env.svc.CreateBooking(ctx, req)
		return err
	}

	if err := book("a", env.courtID, 10, 12, 3); err != nil {
		t.Fatalf("booking a: %v", err)
	}
	err := book("b", env.court2ID, 11, 13, 2)
	requireKind(t, err, KindConflict)
	if !strings.Contains(err.Error(), "Not enough Racket available") {
		t.Fatalf("expected equipment conflict, got %v", err)
	}
	if err := book("c", env.court2ID, 11, 13, 1); err != nil {
		t.Fatalf("booking c: %v", err)
	}
	// a has ended by 12:00, only c's racket is out.
	if err := book("d", env.outdoorID, 12, 13, 3); err != nil {
		t.Fatalf("booking d: %v", err)
	}

	var maxInUse int64
	for hour := 10; hour < 13; hour++ {
		inUse := env.count(t, `SELECT COALESCE(SUM(be.quantity), 0) FROM booking_equipment be
			JOIN bookings b ON b.id = be.booking_id
			WHERE be.equipment_id = ? AND b.status = 'confirmed' AND b.start_time <= ? AND b.end_time > ?`,
			env.racketID, at(4, hour, 0), at(4, hour, 0))
		maxInUse = max(maxInUse, inUse)
	}
	if maxInUse > 4 {
		t.Fatalf("rackets over-allocated: %d in use", maxInUse)
	}
}

func TestCreateBookingAggregatesRepeatedEquipment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := env.bookingRequest("u1", env.courtID, at(4, 10, 0), at(4, 11, 0))
	req.Equipment = []EquipmentItem{
		{EquipmentID: env.racketID, Quantity: 2},
		{EquipmentID: env.racketID, Quantity: 3},
	}
	_, err := env.svc.CreateBooking(ctx, req)
	requireKind(t, err, KindConflict)

	req.Equipment = []EquipmentItem{
		{EquipmentID: env.racketID, Quantity: 2},
		{EquipmentID: env.racketID},
	}
	created, err := env.svc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if got := env.count(t, "SELECT COUNT(*) FROM booking_equipment WHERE booking_id = ?", created.BookingID); got != 1 {
		t.Fatalf("expected one junction row, got %d", got)
	}
	if got := env.count(t, "SELECT quantity FROM booking_equipment WHERE booking_id = ?", created.BookingID); got != 3 {
		t.Fatalf("expected quantity 3, got %d", got)
	}
}

func TestCreateBookingFailuresLeaveNoTrace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateBooking(ctx, env.bookingRequest("seed", env.courtID, at(5, 10, 0), at(5, 11, 0))); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		want   Kind
		msg    string
	}{
		{
			name:   "missing email",
			mutate: func(r *CreateBookingRequest) { r.UserEmail = "" },
			want:   KindValidation,
			msg:    "user_email is required",
		},
		{
			name:   "malformed email",
			mutate: func(r *CreateBookingRequest) { r.UserEmail = "not-an-email" },
			want:   KindValidation,
		},
		{
			name:   "end before start",
			mutate: func(r *CreateBookingRequest) { r.StartTime, r.EndTime = r.EndTime, r.StartTime },
			want:   KindValidation,
		},
		{
			name:   "negative quantity",
			mutate: func(r *CreateBookingRequest) { r.Equipment[0].Quantity = -1 },
			want:   KindValidation,
		},
		{
			name:   "unknown court",
			mutate: func(r *CreateBookingRequest) { r.CourtID = 999 },
			want:   KindNotFound,
			msg:    "court 999 not found",
		},
		{
			name:   "unknown coach",
			mutate: func(r *CreateBookingRequest) { r.CoachID = int64Ptr(999) },
			want:   KindNotFound,
			msg:    "coach 999 not found",
		},
		{
			name: "unknown equipment",
			mutate: func(r *CreateBookingRequest) {
				r.Equipment = append(r.Equipment, EquipmentItem{EquipmentID: 999, Quantity: 1})
			},
			want: KindNotFound,
			msg:  "equipment 999 not found",
		},
		{
			name: "court taken",
			mutate: func(r *CreateBookingRequest) {
				r.StartTime, r.EndTime = at(5, 10, 30), at(5, 11, 30)
			},
			want: KindConflict,
		},
		{
			name: "equipment exhausted",
			mutate: func(r *CreateBookingRequest) {
				r.Equipment = append(r.Equipment, EquipmentItem{EquipmentID: env.shoesID, Quantity: 2})
			},
			want: KindConflict,
		},
	}

	bookingsBefore := env.count(t, "SELECT COUNT(*) FROM bookings")
	junctionBefore := env.count(t, "SELECT COUNT(*) FROM booking_equipment")
	racketsBefore := env.available(t, env.racketID)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := env.bookingRequest("u1", env.courtID, at(5, 12, 0), at(5, 13, 0))
			req.Equipment = []EquipmentItem{{EquipmentID: env.racketID, Quantity: 1}}
			tt.mutate(&req)

			_, err := env.svc.CreateBooking(ctx, req)
			requireKind(t, err, tt.want)
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("expected error containing %q, got %v", tt.msg, err)
			}

			if got := env.count(t, "SELECT COUNT(*) FROM bookings"); got != bookingsBefore {
				t.Fatalf("bookings changed: %d -> %d", bookingsBefore, got)
			}
			if got := env.count(t, "SELECT COUNT(*) FROM booking_equipment"); got != junctionBefore {
				t.Fatalf("booking equipment changed: %d -> %d", junctionBefore, got)
			}
			if got := env.available(t, env.racketID); got != racketsBefore {
				t.Fatalf("racket inventory changed: %d -> %d", racketsBefore, got)
			}
		})
	}
}

func TestCreateBookingConcurrentSameCourt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const attempts = 8
	results := make([]error, attempts)
	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			_, err := env.svc.CreateBooking(ctx, env.bookingRequest("racer", env.courtID, at(6, 19, 0), at(6, 20, 0)))
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case KindOf(err) == KindConflict:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicted != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", attempts-1, succeeded, conflicted)
	}
	if got := env.count(t, "SELECT COUNT(*) FROM bookings WHERE court_id = ? AND status = 'confirmed'", env.courtID); got != 1 {
		t.Fatalf("expected exactly one confirmed booking, got %d", got)
	}
}

func TestCreateBookingConcurrentLastUnitOfEquipment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	courts := []int64{env.courtID, env.court2ID}
	results := make([]error, len(courts))
	var g errgroup.Group
	for i, courtID := range courts {
		g.Go(func() error {
			req := env.bookingRequest("racer", courtID, at(6, 10, 0), at(6, 11, 0))
			req.Equipment = []EquipmentItem{{EquipmentID: env.shoesID, Quantity: 1}}
			_, err := env.svc.CreateBooking(ctx, req)
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		requireKind(t, err, KindConflict)
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one booking to get the shoes, got %d", succeeded)
	}
	if got := env.available(t, env.shoesID); got != 0 {
		t.Fatalf("expected shoes counter at 0, got %d", got)
	}
}
