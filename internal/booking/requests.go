package booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	dbgen "github.com/codr1/Courtside/internal/db/generated"
)

// EquipmentItem requests quantity units of one equipment type. A zero
// quantity means one unit.
type EquipmentItem struct {
	EquipmentID int64 `json:"equipment_id" validate:"required,gt=0"`
	Quantity    int64 `json:"quantity" validate:"gte=0,max=100"`
}

// Selection is the set of resources a request wants for an interval.
type Selection struct {
	CourtID   int64           `json:"court_id" validate:"required,gt=0"`
	CoachID   *int64          `json:"coach_id,omitempty" validate:"omitempty,gt=0"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Equipment []EquipmentItem `json:"equipment_items,omitempty" validate:"omitempty,max=20,dive"`
}

// Customer identifies who is booking or queueing.
type Customer struct {
	UserID    string `json:"user_id" validate:"required,max=128"`
	UserName  string `json:"user_name" validate:"required,max=200"`
	UserEmail string `json:"user_email" validate:"required,email"`
}

type AvailabilityRequest struct {
	Selection
}

type PriceRequest struct {
	Selection
}

type CreateBookingRequest struct {
	Customer
	Selection
}

type JoinWaitlistRequest struct {
	Customer
	CourtID   int64     `json:"court_id" validate:"required,gt=0"`
	CoachID   *int64    `json:"coach_id,omitempty" validate:"omitempty,gt=0"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func (s *Service) validateStruct(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return internal("validate request", err)
	}
	return validationError("%s", translateValidationError(validationErrs[0]))
}

func translateValidationError(err validator.FieldError) string {
	field := err.Field()
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "max":
		switch err.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
		case reflect.Slice:
			return fmt.Sprintf("%s must have at most %s entries", field, err.Param())
		default:
			return fmt.Sprintf("%s must be at most %s", field, err.Param())
		}
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// interval is a half-open [start, end) span normalized to UTC seconds.
type interval struct {
	start time.Time
	end   time.Time
}

func newInterval(start, end time.Time) (interval, error) {
	if start.IsZero() {
		return interval{}, validationError("start_time is required")
	}
	if end.IsZero() {
		return interval{}, validationError("end_time is required")
	}
	iv := interval{start: normalizeTime(start), end: normalizeTime(end)}
	if !iv.end.After(iv.start) {
		return interval{}, validationError("end_time must be after start_time")
	}
	return iv, nil
}

func (iv interval) overlaps(other interval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

// normalizeTime drops sub-second precision and the zone so that stored
// timestamps compare as instants.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// equipmentDemand is the aggregated request for one equipment id.
type equipmentDemand struct {
	id        int64
	quantity  int64
	equipment *dbgen.Equipment
}

// aggregateEquipment merges repeated ids, keeping first-seen order.
func aggregateEquipment(items []EquipmentItem) []equipmentDemand {
	if len(items) == 0 {
		return nil
	}
	index := make(map[int64]int, len(items))
	demands := make([]equipmentDemand, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		if i, ok := index[item.EquipmentID]; ok {
			demands[i].quantity += qty
			continue
		}
		index[item.EquipmentID] = len(demands)
		demands = append(demands, equipmentDemand{id: item.EquipmentID, quantity: qty})
	}
	return demands
}

func equipmentLines(demands []equipmentDemand) []EquipmentLine {
	lines := make([]EquipmentLine, 0, len(demands))
	for _, d := range demands {
		lines = append(lines, EquipmentLine{EquipmentID: d.id, Quantity: d.quantity, Equipment: d.equipment})
	}
	return lines
}
