// Package events carries booking lifecycle notifications to external
// collaborators such as mailers or analytics consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
	TypeWaitlistNotified = "waitlist.notified"
)

// Event is one lifecycle notification. Key groups events that must stay
// ordered relative to each other (the court id for booking events).
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// New builds an event with a fresh id, encoding payload as JSON.
func New(eventType, key string, occurredAt time.Time, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Key:        key,
		Payload:    body,
	}, nil
}

// NewContext returns a context for publishing after the caller's request has
// finished. Cancellation of parent is ignored; the timeout is not.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(context.WithoutCancel(parent), timeout)
}

// BookingPayload is the body of booking.confirmed and booking.cancelled.
type BookingPayload struct {
	BookingID        int64     `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	UserID           string    `json:"user_id"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	CourtID          int64     `json:"court_id"`
	CoachID          *int64    `json:"coach_id,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	TotalPriceCents  int64     `json:"total_price_cents"`
}

// WaitlistPayload is the body of waitlist.notified.
type WaitlistPayload struct {
	WaitlistID int64     `json:"waitlist_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	CourtID    int64     `json:"court_id"`
	CoachID    *int64    `json:"coach_id,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Position   int64     `json:"position"`
	NotifiedAt time.Time `json:"notified_at"`
}
