// cmd/server/server.go
package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/api"
	"github.com/codr1/Courtside/internal/booking"
	"github.com/codr1/Courtside/internal/config"
	"github.com/codr1/Courtside/internal/db"
	"github.com/codr1/Courtside/internal/events"
	"github.com/codr1/Courtside/internal/ratelimit"
	"github.com/codr1/Courtside/internal/scheduler"
)

const schedulerJobTimeout = 2 * time.Minute

type app struct {
	server    *http.Server
	database  *db.DB
	publisher events.Publisher
	scheduler *scheduler.Service
	limiter   *ratelimit.Limiter
}

func newApp(cfg *config.Config) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a := &app{database: database}

	a.publisher, err = newPublisher(cfg.Events)
	if err != nil {
		a.Close()
		return nil, err
	}

	svc := booking.NewService(database, booking.Options{
		Location:    loc,
		OpeningHour: cfg.Booking.OpeningHour,
		ClosingHour: cfg.Booking.ClosingHour,
		OfferExpiry: cfg.OfferExpiry(),
		Publisher:   a.publisher,
	})

	if cfg.Scheduler.Enabled {
		a.scheduler, err = scheduler.New(loc, schedulerJobTimeout)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create scheduler: %w", err)
		}
		if err := scheduler.RegisterBookingJobs(a.scheduler, svc, cfg.Scheduler); err != nil {
			a.Close()
			return nil, err
		}
	} else {
		log.Info().Msg("Scheduler disabled")
	}

	var extra []api.Middleware
	if cfg.RateLimit.Enabled {
		a.limiter = ratelimit.New(&ratelimit.Config{
			Window:           time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			MaxWritesPerIP:   cfg.RateLimit.MaxWritesPerIP,
			MaxWritesPerUser: cfg.RateLimit.MaxWritesPerUser,
		})
		extra = append(extra, api.WithWriteRateLimit(a.limiter, cfg.RateLimit.TrustProxy))
	}

	a.server = newServer(cfg, svc, extra...)
	return a, nil
}

const (
	eventQueueSize       = 256
	eventDeliveryTimeout = 5 * time.Second
)

func newPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Driver {
	case "kafka":
		pub, err := events.NewKafkaPublisher(cfg.Brokers, cfg.Topic, log.Logger)
		if err != nil {
			return nil, fmt.Errorf("create kafka publisher: %w", err)
		}
		log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("Publishing booking events to Kafka")
		// Delivery runs off the request path.
		return events.NewAsyncPublisher(pub, eventQueueSize, eventDeliveryTimeout), nil
	default:
		return events.NewLogPublisher(log.Logger), nil
	}
}

func newServer(cfg *config.Config, svc *booking.Service, extra ...api.Middleware) *http.Server {
	router := http.NewServeMux()

	api.InitHandlers(svc)
	api.RegisterRoutes(router)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      api.NewHandler(router, extra...),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Close releases the publisher and database. Call it after the server and
// scheduler have stopped.
func (a *app) Close() error {
	var errs []error
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.database != nil {
		errs = append(errs, a.database.Close())
	}
	return errors.Join(errs...)
}
