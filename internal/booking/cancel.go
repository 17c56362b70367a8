package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/db"
	dbgen "github.com/codr1/Courtside/internal/db/generated"
	"github.com/codr1/Courtside/internal/events"
)

// CancelBooking cancels a confirmed booking, refunds it and returns its
// equipment to inventory. The freed slot is then offered to the waitlist.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64) error {
	if bookingID <= 0 {
		return validationError("booking_id must be greater than 0")
	}

	logger := log.Ctx(ctx)
	var cancelled dbgen.Booking
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		booking, err := q.GetBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound("booking %d not found", bookingID)
			}
			return internal("load booking", err)
		}
		switch booking.Status {
		case StatusCancelled:
			return conflict("booking %d is already cancelled", bookingID)
		case StatusCompleted:
			return conflict("booking %d is already completed", bookingID)
		}

		rows, err := q.CancelBooking(ctx, bookingID)
		if err != nil {
			return internal("cancel booking", err)
		}
		if rows == 0 {
			return conflict("booking %d is already cancelled", bookingID)
		}

		items, err := q.ListBookingEquipment(ctx, bookingID)
		if err != nil {
			return internal("load booking equipment", err)
		}
		for _, item := range items {
			if _, err := q.IncrementEquipmentAvailable(ctx, dbgen.IncrementEquipmentAvailableParams{
				Quantity: item.Quantity,
				ID:       item.EquipmentID,
			}); err != nil {
				return internal("restore equipment inventory", err)
			}
		}

		booking.Status = StatusCancelled
		booking.PaymentStatus = PaymentRefunded
		cancelled = booking
		return nil
	})
	if err != nil {
		err = asError("cancel booking", err)
		if KindOf(err) == KindInternal {
			logger.Error().Err(err).Int64("booking_id", bookingID).Msg("Failed to cancel booking")
		}
		return err
	}

	logger.Info().
		Int64("booking_id", bookingID).
		Int64("court_id", cancelled.CourtID).
		Msg("Booking cancelled")

	s.publish(ctx, events.TypeBookingCancelled, courtKey(cancelled.CourtID), bookingPayload(cancelled))

	if _, err := s.PromoteWaitlist(ctx, Target{
		CourtID:   cancelled.CourtID,
		CoachID:   idPointer(cancelled.CoachID),
		StartTime: cancelled.StartTime,
		EndTime:   cancelled.EndTime,
	}); err != nil {
		logger.Error().Err(err).Int64("booking_id", bookingID).Msg("Failed to promote waitlist after cancellation")
	}

	return nil
}
