package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/config"
)

const (
	JobBookingCompletion = "booking_completion"
	JobWaitlistExpiry    = "waitlist_notified_expiry"
	JobWaitlistCleanup   = "waitlist_stale_cleanup"
)

// Maintenance is the booking work the scheduler drives. booking.Service
// implements it.
type Maintenance interface {
	CompletePastBookings(ctx context.Context) (int64, error)
	ExpireNotifiedWaitlist(ctx context.Context) (int64, error)
	CancelStaleWaitlist(ctx context.Context) (int64, error)
}

// RegisterBookingJobs registers the maintenance jobs under the configured
// cron expressions.
func RegisterBookingJobs(s *Service, m Maintenance, cfg config.SchedulerConfig) error {
	if m == nil {
		return fmt.Errorf("booking jobs require a maintenance service")
	}

	jobs := []struct {
		name string
		cron string
		run  func(context.Context) (int64, error)
	}{
		{name: JobBookingCompletion, cron: cfg.BookingCompletionCron, run: m.CompletePastBookings},
		{name: JobWaitlistExpiry, cron: cfg.WaitlistExpiryCron, run: m.ExpireNotifiedWaitlist},
		{name: JobWaitlistCleanup, cron: cfg.WaitlistCleanupCron, run: m.CancelStaleWaitlist},
	}
	for _, job := range jobs {
		if _, err := s.AddJob(job.name, job.cron, countingTask(job.name, job.run)); err != nil {
			return fmt.Errorf("register %s: %w", job.name, err)
		}
	}
	return nil
}

func countingTask(name string, run func(context.Context) (int64, error)) Task {
	return func(ctx context.Context) error {
		count, err := run(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			log.Ctx(ctx).Info().Int64("affected", count).Msgf("%s job updated rows", name)
		}
		return nil
	}
}
