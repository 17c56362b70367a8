package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/db"
	dbgen "github.com/codr1/Courtside/internal/db/generated"
	"github.com/codr1/Courtside/internal/events"
)

const (
	WaitlistActive    = "active"
	WaitlistNotified  = "notified"
	WaitlistCancelled = "cancelled"
	WaitlistBooked    = "booked"

	maxPositionAttempts = 3
)

// Target is the exact resource and interval a waitlist entry queues for.
type Target struct {
	CourtID   int64
	CoachID   *int64
	StartTime time.Time
	EndTime   time.Time
}

type WaitlistEntry struct {
	ID         int64      `json:"waitlist_id"`
	UserID     string     `json:"user_id"`
	CourtID    int64      `json:"court_id"`
	CoachID    *int64     `json:"coach_id,omitempty"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Position   int64      `json:"position"`
	Status     string     `json:"status"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
}

func toWaitlistEntry(w dbgen.Waitlist) WaitlistEntry {
	entry := WaitlistEntry{
		ID:        w.ID,
		UserID:    w.UserID,
		CourtID:   w.CourtID,
		CoachID:   idPointer(w.CoachID),
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Position:  w.Position,
		Status:    w.Status,
	}
	if w.NotifiedAt.Valid {
		at := w.NotifiedAt.Time
		entry.NotifiedAt = &at
	}
	return entry
}

// JoinWaitlist queues the customer for a slot that is currently booked.
// Positions are assigned inside a write transaction; a unique index on
// active positions backs that up and collisions are retried.
func (s *Service) JoinWaitlist(ctx context.Context, req JoinWaitlistRequest) (WaitlistEntry, error) {
	if err := s.validateStruct(req); err != nil {
		return WaitlistEntry{}, err
	}
	iv, err := newInterval(req.StartTime, req.EndTime)
	if err != nil {
		return WaitlistEntry{}, err
	}

	logger := log.Ctx(ctx)
	coachID := nullableID(req.CoachID)

	var entry dbgen.Waitlist
	for attempt := 1; attempt <= maxPositionAttempts; attempt++ {
		err = s.db.RunInTx(ctx, func(txdb *db.DB) error {
			q := txdb.Queries

			if _, err := resolveCourt(ctx, q, req.CourtID); err != nil {
				return err
			}
			if _, err := resolveCoach(ctx, q, req.CoachID); err != nil {
				return err
			}

			_, err := q.FindConfirmedBookingForSlot(ctx, dbgen.FindConfirmedBookingForSlotParams{
				CourtID:   req.CourtID,
				StartTime: iv.start,
				EndTime:   iv.end,
			})
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return conflict("slot is not booked, book directly")
				}
				return internal("check slot booking", err)
			}

			_, err = q.FindOpenWaitlistEntryForUser(ctx, dbgen.FindOpenWaitlistEntryForUserParams{
				UserID:    req.UserID,
				CourtID:   req.CourtID,
				CoachID:   coachID,
				StartTime: iv.start,
				EndTime:   iv.end,
			})
			switch {
			case err == nil:
				return conflict("already on waitlist for this slot")
			case !errors.Is(err, sql.ErrNoRows):
				return internal("check existing waitlist entry", err)
			}

			position, err := q.NextWaitlistPosition(ctx, dbgen.NextWaitlistPositionParams{
				CourtID:   req.CourtID,
				CoachID:   coachID,
				StartTime: iv.start,
				EndTime:   iv.end,
			})
			if err != nil {
				return internal("assign waitlist position", err)
			}

			entry, err = q.CreateWaitlistEntry(ctx, dbgen.CreateWaitlistEntryParams{
				UserID:    req.UserID,
				UserName:  req.UserName,
				UserEmail: req.UserEmail,
				CourtID:   req.CourtID,
				CoachID:   coachID,
				StartTime: iv.start,
				EndTime:   iv.end,
				Position:  position,
			})
			if err != nil {
				return internal("insert waitlist entry", err)
			}
			return nil
		})
		if err == nil || !db.IsUniqueViolation(err) {
			break
		}
		logger.Debug().Err(err).Int("attempt", attempt).Msg("Retrying waitlist position assignment")
	}
	if err != nil {
		err = asError("join waitlist", err)
		if KindOf(err) == KindInternal {
			logger.Error().Err(err).Int64("court_id", req.CourtID).Msg("Failed to join waitlist")
		}
		return WaitlistEntry{}, err
	}

	logger.Info().
		Int64("waitlist_id", entry.ID).
		Int64("court_id", entry.CourtID).
		Int64("position", entry.Position).
		Msg("Joined waitlist")
	return toWaitlistEntry(entry), nil
}

// PromoteWaitlist notifies the lowest-positioned active entry for target.
// It returns nil when nobody is waiting. It never books on the entry's
// behalf.
func (s *Service) PromoteWaitlist(ctx context.Context, target Target) (*WaitlistEntry, error) {
	iv, err := newInterval(target.StartTime, target.EndTime)
	if err != nil {
		return nil, err
	}

	var promoted *dbgen.Waitlist
	err = s.db.RunInTx(ctx, func(txdb *db.DB) error {
		var err error
		promoted, err = promoteNext(ctx, txdb.Queries, target.CourtID, nullableID(target.CoachID), iv, s.currentTime())
		return err
	})
	if err != nil {
		return nil, asError("promote waitlist", err)
	}
	if promoted == nil {
		return nil, nil
	}

	s.notifyPromoted(ctx, *promoted)
	entry := toWaitlistEntry(*promoted)
	return &entry, nil
}

// promoteNext marks the first active entry for the tuple as notified.
func promoteNext(ctx context.Context, q *dbgen.Queries, courtID int64, coachID sql.NullInt64, iv interval, now time.Time) (*dbgen.Waitlist, error) {
	next, err := q.FirstActiveWaitlistEntry(ctx, dbgen.FirstActiveWaitlistEntryParams{
		CourtID:   courtID,
		CoachID:   coachID,
		StartTime: iv.start,
		EndTime:   iv.end,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, internal("load waitlist entry", err)
	}

	notifiedAt := sql.NullTime{Time: now, Valid: true}
	rows, err := q.MarkWaitlistNotified(ctx, dbgen.MarkWaitlistNotifiedParams{
		NotifiedAt: notifiedAt,
		ID:         next.ID,
	})
	if err != nil {
		return nil, internal("mark waitlist entry notified", err)
	}
	if rows == 0 {
		return nil, nil
	}
	next.Status = WaitlistNotified
	next.NotifiedAt = notifiedAt
	return &next, nil
}

func (s *Service) notifyPromoted(ctx context.Context, w dbgen.Waitlist) {
	log.Ctx(ctx).Info().
		Int64("waitlist_id", w.ID).
		Int64("court_id", w.CourtID).
		Str("user_id", w.UserID).
		Msg("Waitlist entry notified")

	s.publish(ctx, events.TypeWaitlistNotified, courtKey(w.CourtID), events.WaitlistPayload{
		WaitlistID: w.ID,
		UserID:     w.UserID,
		UserName:   w.UserName,
		UserEmail:  w.UserEmail,
		CourtID:    w.CourtID,
		CoachID:    idPointer(w.CoachID),
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
		Position:   w.Position,
		NotifiedAt: w.NotifiedAt.Time,
	})
}
