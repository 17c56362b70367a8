// Package booking allocates courts, coaches and equipment for time slots,
// prices them, and runs cancellation and waitlist promotion.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/db"
	dbgen "github.com/codr1/Courtside/internal/db/generated"
	"github.com/codr1/Courtside/internal/events"
)

const (
	publishTimeout     = 5 * time.Second
	defaultOpeningHour = 9
	defaultClosingHour = 22
	defaultOfferExpiry = 30 * time.Minute
)

type Options struct {
	// Location is the facility timezone used for surcharges and the daily
	// slot grid. Nil means UTC.
	Location    *time.Location
	OpeningHour int
	ClosingHour int
	// OfferExpiry is how long a notified waitlist entry holds its place.
	OfferExpiry time.Duration
	Publisher   events.Publisher
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// Service is safe for concurrent use. All mutual exclusion between
// concurrent bookings comes from the database's write transactions.
type Service struct {
	db          *db.DB
	publisher   events.Publisher
	location    *time.Location
	openingHour int
	closingHour int
	offerExpiry time.Duration
	now         func() time.Time
	validate    *validator.Validate
}

func NewService(database *db.DB, opts Options) *Service {
	s := &Service{
		db:          database,
		publisher:   opts.Publisher,
		location:    opts.Location,
		openingHour: opts.OpeningHour,
		closingHour: opts.ClosingHour,
		offerExpiry: opts.OfferExpiry,
		now:         opts.Now,
		validate:    newValidator(),
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.openingHour == 0 && s.closingHour == 0 {
		s.openingHour, s.closingHour = defaultOpeningHour, defaultClosingHour
	}
	if s.offerExpiry <= 0 {
		s.offerExpiry = defaultOfferExpiry
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Location is the facility timezone the service prices in.
func (s *Service) Location() *time.Location {
	return s.location
}

func (s *Service) currentTime() time.Time {
	return normalizeTime(s.now())
}

// publish delivers event best effort. A failure is logged, never returned:
// by the time events are published the state change has committed.
func (s *Service) publish(ctx context.Context, eventType, key string, payload any) {
	if s.publisher == nil {
		return
	}
	logger := log.Ctx(ctx)
	event, err := events.New(eventType, key, s.currentTime(), payload)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to build event")
		return
	}

	pubCtx, cancel := events.NewContext(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		logger.Error().Err(err).
			Str("event_id", event.ID).
			Str("event_type", eventType).
			Msg("Failed to publish event")
	}
}

func courtKey(courtID int64) string {
	return "court-" + strconv.FormatInt(courtID, 10)
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func idPointer(id sql.NullInt64) *int64 {
	if !id.Valid {
		return nil
	}
	v := id.Int64
	return &v
}

// resolveCourt loads a court or returns a not-found error.
func resolveCourt(ctx context.Context, q *dbgen.Queries, courtID int64) (dbgen.Court, error) {
	court, err := q.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Court{}, notFound("court %d not found", courtID)
		}
		return dbgen.Court{}, internal("load court", err)
	}
	return court, nil
}

// resolveCoach loads the optional coach. A nil id yields a nil coach.
func resolveCoach(ctx context.Context, q *dbgen.Queries, coachID *int64) (*dbgen.Coach, error) {
	if coachID == nil {
		return nil, nil
	}
	coach, err := q.GetCoach(ctx, *coachID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("coach %d not found", *coachID)
		}
		return nil, internal("load coach", err)
	}
	return &coach, nil
}

// resolveEquipment attaches catalog rows to demands. With strict set, an
// unknown id is a not-found error; otherwise its equipment stays nil.
func resolveEquipment(ctx context.Context, q *dbgen.Queries, demands []equipmentDemand, strict bool) error {
	for i := range demands {
		item, err := q.GetEquipment(ctx, demands[i].id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if strict {
					return notFound("equipment %d not found", demands[i].id)
				}
				continue
			}
			return internal("load equipment", err)
		}
		demands[i].equipment = &item
	}
	return nil
}
