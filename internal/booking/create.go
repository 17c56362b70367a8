package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/db"
	dbgen "github.com/codr1/Courtside/internal/db/generated"
	"github.com/codr1/Courtside/internal/events"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type CreatedBooking struct {
	BookingID        int64     `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	TotalPrice       Cents     `json:"total_price"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	Pricing          Quote     `json:"pricing"`
}

// CreateBooking allocates the selection and records a confirmed booking.
// Either the booking, its equipment rows and the inventory decrements are
// all committed, or nothing is.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (CreatedBooking, error) {
	if err := s.validateStruct(req); err != nil {
		return CreatedBooking{}, err
	}
	iv, err := newInterval(req.StartTime, req.EndTime)
	if err != nil {
		return CreatedBooking{}, err
	}

	logger := log.Ctx(ctx)
	demands := aggregateEquipment(req.Equipment)

	var (
		created dbgen.Booking
		quote   Quote
	)
	err = s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		court, err := resolveCourt(ctx, q, req.CourtID)
		if err != nil {
			return err
		}
		coach, err := resolveCoach(ctx, q, req.CoachID)
		if err != nil {
			return err
		}
		if err := resolveEquipment(ctx, q, demands, true); err != nil {
			return err
		}

		result, err := s.checkResources(ctx, q, resourceSet{court: court, coach: coach, equipment: demands}, iv)
		if err != nil {
			return err
		}
		if !result.Available {
			return conflict("%s", result.Reason)
		}

		quote, err = Price(QuoteInput{
			Court:     court,
			Coach:     coach,
			Equipment: equipmentLines(demands),
			Start:     iv.start,
			End:       iv.end,
			Location:  s.location,
		})
		if err != nil {
			return err
		}

		created, err = q.CreateBooking(ctx, dbgen.CreateBookingParams{
			UserID:              req.UserID,
			UserName:            req.UserName,
			UserEmail:           req.UserEmail,
			CourtID:             court.ID,
			CoachID:             nullableID(req.CoachID),
			StartTime:           iv.start,
			EndTime:             iv.end,
			DurationHours:       quote.DurationHours,
			CourtPriceCents:     int64(quote.CourtPrice),
			CoachPriceCents:     int64(quote.CoachPrice),
			EquipmentPriceCents: int64(quote.EquipmentTotal),
			TotalPriceCents:     int64(quote.TotalPrice),
		})
		if err != nil {
			return internal("insert booking", err)
		}

		for _, d := range demands {
			if _, err := q.AddBookingEquipment(ctx, dbgen.AddBookingEquipmentParams{
				BookingID:   created.ID,
				EquipmentID: d.id,
				Quantity:    d.quantity,
			}); err != nil {
				return internal("insert booking equipment", err)
			}
			if _, err := q.DecrementEquipmentAvailable(ctx, dbgen.DecrementEquipmentAvailableParams{
				Quantity: d.quantity,
				ID:       d.id,
			}); err != nil {
				return internal("decrement equipment inventory", err)
			}
		}

		// A waitlisted user who books their slot leaves the queue.
		if _, err := q.MarkWaitlistBooked(ctx, dbgen.MarkWaitlistBookedParams{
			UserID:    req.UserID,
			CourtID:   court.ID,
			CoachID:   nullableID(req.CoachID),
			StartTime: iv.start,
			EndTime:   iv.end,
		}); err != nil {
			return internal("update waitlist entry", err)
		}
		return nil
	})
	if err != nil {
		err = asError("create booking", err)
		if KindOf(err) == KindInternal {
			logger.Error().Err(err).Int64("court_id", req.CourtID).Msg("Failed to create booking")
		} else {
			logger.Debug().Err(err).Int64("court_id", req.CourtID).Str("kind", KindOf(err).String()).Msg("Booking rejected")
		}
		return CreatedBooking{}, err
	}

	ref := Reference(created.ID)
	logger.Info().
		Int64("booking_id", created.ID).
		Str("booking_reference", ref).
		Int64("court_id", created.CourtID).
		Int64("total_price_cents", created.TotalPriceCents).
		Msg("Booking created")

	s.publish(ctx, events.TypeBookingConfirmed, courtKey(created.CourtID), bookingPayload(created))

	return CreatedBooking{
		BookingID:        created.ID,
		BookingReference: ref,
		TotalPrice:       Cents(created.TotalPriceCents),
		StartTime:        created.StartTime,
		EndTime:          created.EndTime,
		Status:           created.Status,
		PaymentStatus:    created.PaymentStatus,
		Pricing:          quote,
	}, nil
}

func bookingPayload(b dbgen.Booking) events.BookingPayload {
	return events.BookingPayload{
		BookingID:        b.ID,
		BookingReference: Reference(b.ID),
		UserID:           b.UserID,
		UserName:         b.UserName,
		UserEmail:        b.UserEmail,
		CourtID:          b.CourtID,
		CoachID:          idPointer(b.CoachID),
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		TotalPriceCents:  b.TotalPriceCents,
	}
}
