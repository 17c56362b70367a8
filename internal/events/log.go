package events

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogPublisher writes events to the logger found in the publish context,
// falling back to its own logger.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	logger := log.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &p.logger
	}
	logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Str("event_key", event.Key).
		Time("occurred_at", event.OccurredAt).
		RawJSON("payload", event.Payload).
		Msg("Published event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
