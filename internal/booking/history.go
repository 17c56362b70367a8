package booking

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	dbgen "github.com/codr1/Courtside/internal/db/generated"
)

type CourtSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	BasePrice Cents  `json:"base_price"`
}

type CoachSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	HourlyRate     Cents  `json:"hourly_rate"`
}

type BookedEquipment struct {
	EquipmentID int64  `json:"equipment_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   Cents  `json:"unit_price"`
}

type BookingDetails struct {
	ID               int64             `json:"id"`
	BookingReference string            `json:"booking_reference"`
	UserID           string            `json:"user_id"`
	UserName         string            `json:"user_name"`
	UserEmail        string            `json:"user_email"`
	Court            CourtSummary      `json:"court"`
	Coach            *CoachSummary     `json:"coach,omitempty"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	DurationHours    float64           `json:"duration_hours"`
	CourtPrice       Cents             `json:"court_price"`
	CoachPrice       Cents             `json:"coach_price"`
	EquipmentPrice   Cents             `json:"equipment_price"`
	TotalPrice       Cents             `json:"total_price"`
	Status           string            `json:"status"`
	PaymentStatus    string            `json:"payment_status"`
	Equipment        []BookedEquipment `json:"equipment"`
	CreatedAt        time.Time         `json:"created_at"`
}

// GetBooking returns one booking with its court, coach and equipment.
func (s *Service) GetBooking(ctx context.Context, bookingID int64) (BookingDetails, error) {
	if bookingID <= 0 {
		return BookingDetails{}, validationError("booking_id must be greater than 0")
	}
	q := s.db.Queries

	b, err := q.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingDetails{}, notFound("booking %d not found", bookingID)
		}
		return BookingDetails{}, internal("load booking", err)
	}
	court, err := resolveCourt(ctx, q, b.CourtID)
	if err != nil {
		return BookingDetails{}, err
	}
	coach, err := resolveCoach(ctx, q, idPointer(b.CoachID))
	if err != nil {
		return BookingDetails{}, err
	}
	equipment, err := bookedEquipment(ctx, q, b.ID)
	if err != nil {
		return BookingDetails{}, err
	}

	details := bookingDetails(b)
	details.Court = CourtSummary{ID: court.ID, Name: court.Name, Type: court.Type, BasePrice: Cents(court.BasePriceCents)}
	if coach != nil {
		details.Coach = &CoachSummary{
			ID:             coach.ID,
			Name:           coach.Name,
			Specialization: coach.Specialization,
			HourlyRate:     Cents(coach.HourlyRateCents),
		}
	}
	details.Equipment = equipment
	return details, nil
}

// ListUserBookings returns the user's bookings, latest start first.
func (s *Service) ListUserBookings(ctx context.Context, userID string) ([]BookingDetails, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, validationError("user_id is required")
	}
	q := s.db.Queries

	rows, err := q.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, internal("list user bookings", err)
	}

	out := make([]BookingDetails, 0, len(rows))
	for _, row := range rows {
		details := bookingDetails(dbgen.Booking{
			ID:                  row.ID,
			UserID:              row.UserID,
			UserName:            row.UserName,
			UserEmail:           row.UserEmail,
			CourtID:             row.CourtID,
			CoachID:             row.CoachID,
			StartTime:           row.StartTime,
			EndTime:             row.EndTime,
			DurationHours:       row.DurationHours,
			CourtPriceCents:     row.CourtPriceCents,
			CoachPriceCents:     row.CoachPriceCents,
			EquipmentPriceCents: row.EquipmentPriceCents,
			TotalPriceCents:     row.TotalPriceCents,
			Status:              row.Status,
			PaymentStatus:       row.PaymentStatus,
			CreatedAt:           row.CreatedAt,
			UpdatedAt:           row.UpdatedAt,
		})
		details.Court = CourtSummary{
			ID:        row.CourtID,
			Name:      row.CourtName,
			Type:      row.CourtType,
			BasePrice: Cents(row.CourtBasePriceCents),
		}
		if row.CoachID.Valid {
			details.Coach = &CoachSummary{
				ID:             row.CoachID.Int64,
				Name:           row.CoachName.String,
				Specialization: row.CoachSpecialization.String,
				HourlyRate:     Cents(row.CoachHourlyRateCents.Int64),
			}
		}
		details.Equipment, err = bookedEquipment(ctx, q, row.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

func bookingDetails(b dbgen.Booking) BookingDetails {
	return BookingDetails{
		ID:               b.ID,
		BookingReference: Reference(b.ID),
		UserID:           b.UserID,
		UserName:         b.UserName,
		UserEmail:        b.UserEmail,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		DurationHours:    b.DurationHours,
		CourtPrice:       Cents(b.CourtPriceCents),
		CoachPrice:       Cents(b.CoachPriceCents),
		EquipmentPrice:   Cents(b.EquipmentPriceCents),
		TotalPrice:       Cents(b.TotalPriceCents),
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		CreatedAt:        b.CreatedAt,
	}
}

func bookedEquipment(ctx context.Context, q *dbgen.Queries, bookingID int64) ([]BookedEquipment, error) {
	rows, err := q.ListBookingEquipment(ctx, bookingID)
	if err != nil {
		return nil, internal("load booking equipment", err)
	}
	out := make([]BookedEquipment, 0, len(rows))
	for _, row := range rows {
		out = append(out, BookedEquipment{
			EquipmentID: row.EquipmentID,
			Name:        row.EquipmentName,
			Category:    row.EquipmentCategory,
			Quantity:    row.Quantity,
			UnitPrice:   Cents(row.PricePerSessionCents),
		})
	}
	return out, nil
}
