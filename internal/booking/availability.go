package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbgen "github.com/codr1/Courtside/internal/db/generated"
)

const (
	reasonCourtInactive  = "Court is not active"
	reasonCourtBooked    = "Court already booked for this slot"
	reasonCoachInactive  = "Coach is not active"
	reasonCoachOffDuty   = "Coach is not available at this time"
	reasonCoachBooked    = "Coach already booked for this slot"
	clockLayout          = "15:04:05"
	endOfDayClock        = "24:00:00"
	windowClockMinLength = len("15:04")
)

// Availability is the outcome of a check. Unavailability is a result, not
// an error; Reason names the first resource that failed.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func available() Availability {
	return Availability{Available: true}
}

func unavailable(reason string) Availability {
	return Availability{Reason: reason}
}

type resourceSet struct {
	court     dbgen.Court
	coach     *dbgen.Coach
	equipment []equipmentDemand
}

// CheckAvailability reports whether the selection is free. Unknown
// equipment makes the selection unavailable rather than failing.
func (s *Service) CheckAvailability(ctx context.Context, req AvailabilityRequest) (Availability, error) {
	if err := s.validateStruct(req); err != nil {
		return Availability{}, err
	}
	iv, err := newInterval(req.StartTime, req.EndTime)
	if err != nil {
		return Availability{}, err
	}

	q := s.db.Queries
	court, err := resolveCourt(ctx, q, req.CourtID)
	if err != nil {
		return Availability{}, err
	}
	coach, err := resolveCoach(ctx, q, req.CoachID)
	if err != nil {
		return Availability{}, err
	}
	demands := aggregateEquipment(req.Equipment)
	if err := resolveEquipment(ctx, q, demands, false); err != nil {
		return Availability{}, err
	}

	return s.checkResources(ctx, q, resourceSet{court: court, coach: coach, equipment: demands}, iv)
}

// checkResources runs every rule against q, which may be bound to a
// transaction. Only confirmed bookings occupy resources.
func (s *Service) checkResources(ctx context.Context, q *dbgen.Queries, rs resourceSet, iv interval) (Availability, error) {
	if !rs.court.IsActive {
		return unavailable(reasonCourtInactive), nil
	}
	free, err := courtFree(ctx, q, rs.court.ID, iv)
	if err != nil {
		return Availability{}, err
	}
	if !free {
		return unavailable(reasonCourtBooked), nil
	}

	if rs.coach != nil {
		if !rs.coach.IsActive {
			return unavailable(reasonCoachInactive), nil
		}
		onDuty, err := s.coachOnDuty(ctx, q, rs.coach.ID, iv)
		if err != nil {
			return Availability{}, err
		}
		if !onDuty {
			return unavailable(reasonCoachOffDuty), nil
		}
		_, err = q.FindCoachConflict(ctx, dbgen.FindCoachConflictParams{
			CoachID:   rs.coach.ID,
			EndTime:   iv.end,
			StartTime: iv.start,
		})
		switch {
		case err == nil:
			return unavailable(reasonCoachBooked), nil
		case !errors.Is(err, sql.ErrNoRows):
			return Availability{}, internal("check coach availability", err)
		}
	}

	for _, d := range rs.equipment {
		if d.equipment == nil {
			return unavailable(fmt.Sprintf("Equipment %d not found", d.id)), nil
		}
		booked, err := q.SumBookedEquipment(ctx, dbgen.SumBookedEquipmentParams{
			EquipmentID: d.id,
			EndTime:     iv.end,
			StartTime:   iv.start,
		})
		if err != nil {
			return Availability{}, internal("check equipment availability", err)
		}
		if d.quantity > d.equipment.TotalQuantity-booked {
			return unavailable(fmt.Sprintf("Not enough %s available", d.equipment.Name)), nil
		}
	}

	return available(), nil
}

func courtFree(ctx context.Context, q *dbgen.Queries, courtID int64, iv interval) (bool, error) {
	_, err := q.FindCourtConflict(ctx, dbgen.FindCourtConflictParams{
		CourtID:   courtID,
		EndTime:   iv.end,
		StartTime: iv.start,
	})
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, sql.ErrNoRows):
		return true, nil
	default:
		return false, internal("check court availability", err)
	}
}

// coachOnDuty reports whether iv fits inside one of the coach's weekly
// windows. A coach without windows is bookable at any time.
func (s *Service) coachOnDuty(ctx context.Context, q *dbgen.Queries, coachID int64, iv interval) (bool, error) {
	windows, err := q.ListCoachAvailability(ctx, coachID)
	if err != nil {
		return false, internal("load coach availability", err)
	}
	return fitsWindows(windows, iv, s.location), nil
}

func fitsWindows(windows []dbgen.CoachAvailability, iv interval, loc *time.Location) bool {
	if len(windows) == 0 {
		return true
	}

	localStart := iv.start.In(loc)
	localEnd := iv.end.In(loc)
	startClock := localStart.Format(clockLayout)
	var endClock string
	switch {
	case sameDate(localStart, localEnd):
		endClock = localEnd.Format(clockLayout)
	case sameDate(localStart.AddDate(0, 0, 1), localEnd) && localEnd.Format(clockLayout) == "00:00:00":
		endClock = endOfDayClock
	default:
		return false
	}

	day := int64(localStart.Weekday())
	for _, w := range windows {
		if w.DayOfWeek != day {
			continue
		}
		if windowClock(w.StartTime) <= startClock && endClock <= windowClock(w.EndTime) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// windowClock pads stored "HH:MM" values to "HH:MM:SS" for comparison.
func windowClock(v string) string {
	if len(v) == windowClockMinLength {
		return v + ":00"
	}
	return v
}
