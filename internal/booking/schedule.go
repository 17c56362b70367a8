package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbgen "github.com/codr1/Courtside/internal/db/generated"
)

const dateLayout = "2006-01-02"

type Slot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Hour      int       `json:"hour"`
	Label     string    `json:"formatted_time"`
	Available bool      `json:"is_available"`
}

type CourtSlots struct {
	CourtID   int64  `json:"court_id"`
	CourtName string `json:"court_name"`
	CourtType string `json:"court_type"`
	BasePrice Cents  `json:"base_price"`
	Slots     []Slot `json:"slots"`
}

type DaySlots struct {
	Date   string       `json:"date"`
	Courts []CourtSlots `json:"court_availability"`
}

type SlotsRequest struct {
	// Date is a calendar day in the facility timezone, YYYY-MM-DD.
	Date      string
	CourtType string
	CoachID   *int64
}

// DailySlots lays out hourly slots between opening and closing hour for
// every active court, marking which are free.
func (s *Service) DailySlots(ctx context.Context, req SlotsRequest) (DaySlots, error) {
	day, err := s.parseDate(req.Date)
	if err != nil {
		return DaySlots{}, err
	}
	courtType := sql.NullString{}
	switch req.CourtType {
	case "":
	case "indoor", "outdoor":
		courtType = sql.NullString{String: req.CourtType, Valid: true}
	default:
		return DaySlots{}, validationError("court_type must be indoor or outdoor")
	}

	q := s.db.Queries
	coach, err := resolveCoach(ctx, q, req.CoachID)
	if err != nil {
		return DaySlots{}, err
	}
	var coachWindows []dbgen.CoachAvailability
	if coach != nil {
		coachWindows, err = q.ListCoachAvailability(ctx, coach.ID)
		if err != nil {
			return DaySlots{}, internal("load coach availability", err)
		}
	}

	courts, err := q.ListActiveCourts(ctx, courtType)
	if err != nil {
		return DaySlots{}, internal("list courts", err)
	}

	grid := s.slotGrid(day)
	result := DaySlots{Date: day.Format(dateLayout), Courts: make([]CourtSlots, 0, len(courts))}
	if len(grid) == 0 {
		return result, nil
	}
	booked, err := q.ListConfirmedBookingsInRange(ctx, dbgen.ListConfirmedBookingsInRangeParams{
		EndTime:   grid[len(grid)-1].iv.end,
		StartTime: grid[0].iv.start,
	})
	if err != nil {
		return DaySlots{}, internal("list bookings", err)
	}

	for _, court := range courts {
		cs := CourtSlots{
			CourtID:   court.ID,
			CourtName: court.Name,
			CourtType: court.Type,
			BasePrice: Cents(court.BasePriceCents),
			Slots:     make([]Slot, 0, len(grid)),
		}
		for _, slot := range grid {
			iv := slot.iv
			free := true
			for _, b := range booked {
				bi := interval{start: b.StartTime, end: b.EndTime}
				if !bi.overlaps(iv) {
					continue
				}
				if b.CourtID == court.ID || (coach != nil && b.CoachID.Valid && b.CoachID.Int64 == coach.ID) {
					free = false
					break
				}
			}
			if free && coach != nil {
				free = coach.IsActive && fitsWindows(coachWindows, iv, s.location)
			}
			cs.Slots = append(cs.Slots, Slot{
				StartTime: iv.start,
				EndTime:   iv.end,
				Hour:      slot.hour,
				Label:     fmt.Sprintf("%d:00 - %d:00", slot.hour, slot.hour+1),
				Available: free,
			})
		}
		result.Courts = append(result.Courts, cs)
	}
	return result, nil
}

type gridSlot struct {
	hour int
	iv   interval
}

// slotGrid returns the day's hourly slots. Hours that do not exist on the
// day (DST gaps) are skipped.
func (s *Service) slotGrid(day time.Time) []gridSlot {
	y, m, d := day.Date()
	grid := make([]gridSlot, 0, s.closingHour-s.openingHour)
	for hour := s.openingHour; hour < s.closingHour; hour++ {
		start := time.Date(y, m, d, hour, 0, 0, 0, s.location)
		end := time.Date(y, m, d, hour+1, 0, 0, 0, s.location)
		if !end.After(start) {
			continue
		}
		grid = append(grid, gridSlot{hour: hour, iv: interval{start: normalizeTime(start), end: normalizeTime(end)}})
	}
	return grid
}

func (s *Service) parseDate(value string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, value, s.location)
	if err != nil {
		return time.Time{}, validationError("date must be formatted as YYYY-MM-DD")
	}
	return day, nil
}

type EquipmentStock struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	PricePerSession Cents  `json:"price_per_session"`
	TotalQuantity   int64  `json:"total_quantity"`
	BookedQuantity  int64  `json:"booked_quantity"`
	Available       int64  `json:"available_quantity"`
}

type EquipmentReport struct {
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Equipment []EquipmentStock `json:"equipment"`
}

// EquipmentAvailability reports live stock for every equipment type over
// the interval, computed from confirmed bookings.
func (s *Service) EquipmentAvailability(ctx context.Context, start, end time.Time) (EquipmentReport, error) {
	iv, err := newInterval(start, end)
	if err != nil {
		return EquipmentReport{}, err
	}

	q := s.db.Queries
	items, err := q.ListEquipment(ctx)
	if err != nil {
		return EquipmentReport{}, internal("list equipment", err)
	}

	result := EquipmentReport{
		StartTime: iv.start,
		EndTime:   iv.end,
		Equipment: make([]EquipmentStock, 0, len(items)),
	}
	for _, item := range items {
		booked, err := q.SumBookedEquipment(ctx, dbgen.SumBookedEquipmentParams{
			EquipmentID: item.ID,
			EndTime:     iv.end,
			StartTime:   iv.start,
		})
		if err != nil {
			return EquipmentReport{}, internal("sum booked equipment", err)
		}
		result.Equipment = append(result.Equipment, EquipmentStock{
			ID:              item.ID,
			Name:            item.Name,
			Category:        item.Category,
			PricePerSession: Cents(item.PricePerSessionCents),
			TotalQuantity:   item.TotalQuantity,
			BookedQuantity:  booked,
			Available:       max(0, item.TotalQuantity-booked),
		})
	}
	return result, nil
}

type CoachWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CoachDay struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Specialization string        `json:"specialization"`
	HourlyRate     Cents         `json:"hourly_rate"`
	AvailableToday bool          `json:"is_available_today"`
	Windows        []CoachWindow `json:"availability"`
}

type CoachRoster struct {
	Date      string     `json:"date"`
	DayOfWeek int        `json:"day_of_week"`
	Coaches   []CoachDay `json:"coaches"`
}

// CoachSchedule lists active coaches with their windows for the date's
// weekday.
func (s *Service) CoachSchedule(ctx context.Context, date string) (CoachRoster, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return CoachRoster{}, err
	}
	weekday := int(day.Weekday())

	q := s.db.Queries
	coaches, err := q.ListActiveCoaches(ctx)
	if err != nil {
		return CoachRoster{}, internal("list coaches", err)
	}
	windows, err := q.ListCoachAvailabilityForDay(ctx, int64(weekday))
	if err != nil {
		return CoachRoster{}, internal("list coach availability", err)
	}
	byCoach := make(map[int64][]CoachWindow, len(coaches))
	for _, w := range windows {
		byCoach[w.CoachID] = append(byCoach[w.CoachID], CoachWindow{StartTime: w.StartTime, EndTime: w.EndTime})
	}

	result := CoachRoster{
		Date:      day.Format(dateLayout),
		DayOfWeek: weekday,
		Coaches:   make([]CoachDay, 0, len(coaches)),
	}
	for _, c := range coaches {
		cw := byCoach[c.ID]
		if cw == nil {
			cw = []CoachWindow{}
		}
		result.Coaches = append(result.Coaches, CoachDay{
			ID:             c.ID,
			Name:           c.Name,
			Specialization: c.Specialization,
			HourlyRate:     Cents(c.HourlyRateCents),
			AvailableToday: len(cw) > 0,
			Windows:        cw,
		})
	}
	return result, nil
}
