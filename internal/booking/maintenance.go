package booking

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/db"
	dbgen "github.com/codr1/Courtside/internal/db/generated"
)

// CompletePastBookings moves confirmed bookings whose end has passed to
// completed. It returns the number of bookings updated.
func (s *Service) CompletePastBookings(ctx context.Context) (int64, error) {
	count, err := s.db.Queries.CompletePastBookings(ctx, s.currentTime())
	if err != nil {
		return 0, internal("complete past bookings", err)
	}
	if count > 0 {
		log.Ctx(ctx).Info().Int64("completed_bookings", count).Msg("Completed past bookings")
	}
	return count, nil
}

// ExpireNotifiedWaitlist cancels notified entries whose offer window has
// lapsed and offers each freed slot to the next active entry, provided the
// slot is still free.
func (s *Service) ExpireNotifiedWaitlist(ctx context.Context) (int64, error) {
	now := s.currentTime()
	cutoff := sql.NullTime{Time: now.Add(-s.offerExpiry), Valid: true}

	expired, err := s.db.Queries.ListExpiredWaitlistOffers(ctx, cutoff)
	if err != nil {
		return 0, internal("list expired waitlist offers", err)
	}

	logger := log.Ctx(ctx)
	var count int64
	for _, entry := range expired {
		var (
			next    *dbgen.Waitlist
			changed bool
		)
		err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
			next, changed = nil, false
			q := txdb.Queries
			rows, err := q.ExpireWaitlistEntry(ctx, entry.ID)
			if err != nil {
				return internal("expire waitlist entry", err)
			}
			if rows == 0 {
				return nil
			}
			changed = true

			iv := interval{start: entry.StartTime, end: entry.EndTime}
			free, err := courtFree(ctx, q, entry.CourtID, iv)
			if err != nil || !free {
				return err
			}
			next, err = promoteNext(ctx, q, entry.CourtID, entry.CoachID, iv, now)
			return err
		})
		if err != nil {
			logger.Error().Err(err).Int64("waitlist_id", entry.ID).Msg("Failed to expire waitlist offer")
			continue
		}
		if !changed {
			continue
		}
		count++

		event := logger.Info().Int64("waitlist_id", entry.ID)
		if next != nil {
			event.Int64("next_waitlist_id", next.ID)
		}
		event.Msg("Expired waitlist offer")
		if next != nil {
			s.notifyPromoted(ctx, *next)
		}
	}
	return count, nil
}

// CancelStaleWaitlist cancels active entries whose slot has already begun.
func (s *Service) CancelStaleWaitlist(ctx context.Context) (int64, error) {
	count, err := s.db.Queries.CancelStaleWaitlist(ctx, s.currentTime())
	if err != nil {
		return 0, internal("cancel stale waitlist entries", err)
	}
	if count > 0 {
		log.Ctx(ctx).Debug().Int64("cancelled_waitlists", count).Msg("Cleaned up past waitlists")
	}
	return count, nil
}
