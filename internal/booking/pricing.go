package booking

import (
	"math/big"
	"time"

	dbgen "github.com/codr1/Courtside/internal/db/generated"
)

const (
	RuleIndoor  = "indoor"
	RulePeak    = "peak"
	RuleWeekend = "weekend"

	peakStartHour = 18
	peakEndHour   = 21
)

// surcharge is a multiplier num/den applied to the court price. Keeping the
// factors rational makes the price exact before the final rounding.
type surcharge struct {
	rule string
	num  int64
	den  int64
}

var (
	indoorSurcharge  = surcharge{rule: RuleIndoor, num: 6, den: 5}
	peakSurcharge    = surcharge{rule: RulePeak, num: 3, den: 2}
	weekendSurcharge = surcharge{rule: RuleWeekend, num: 13, den: 10}
)

// EquipmentLine is one equipment selection handed to Price. Equipment is nil
// when the id did not resolve; such lines are priced at zero.
type EquipmentLine struct {
	EquipmentID int64
	Quantity    int64
	Equipment   *dbgen.Equipment
}

type QuoteInput struct {
	Court     dbgen.Court
	Coach     *dbgen.Coach
	Equipment []EquipmentLine
	Start     time.Time
	End       time.Time
	// Location is where peak hours and weekends are evaluated. Nil means UTC.
	Location *time.Location
}

type QuoteLine struct {
	EquipmentID int64  `json:"equipment_id"`
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   Cents  `json:"unit_price"`
	Subtotal    Cents  `json:"subtotal"`
}

// Quote is a price breakdown. TotalPrice is always the sum of the three
// rounded components.
type Quote struct {
	CourtPrice     Cents       `json:"court_price"`
	CoachPrice     Cents       `json:"coach_price"`
	EquipmentTotal Cents       `json:"equipment_total"`
	TotalPrice     Cents       `json:"total_price"`
	DurationHours  float64     `json:"duration_hours"`
	AppliedRules   []string    `json:"applied_rules"`
	Equipment      []QuoteLine `json:"equipment,omitempty"`
}

// Price computes the quote for in. It performs no I/O and reads no clock.
func Price(in QuoteInput) (Quote, error) {
	duration := in.End.Sub(in.Start)
	if duration <= 0 {
		return Quote{}, validationError("end_time must be after start_time")
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	localStart := in.Start.In(loc)

	applied := make([]surcharge, 0, 3)
	if in.Court.Type == "indoor" {
		applied = append(applied, indoorSurcharge)
	}
	if hour := localStart.Hour(); hour >= peakStartHour && hour < peakEndHour {
		applied = append(applied, peakSurcharge)
	}
	if day := localStart.Weekday(); day == time.Saturday || day == time.Sunday {
		applied = append(applied, weekendSurcharge)
	}

	hour := big.NewInt(int64(time.Hour))
	nanos := big.NewInt(int64(duration))

	// base × hours × Πnum / Πden
	num := new(big.Int).Mul(big.NewInt(in.Court.BasePriceCents), nanos)
	den := new(big.Int).Set(hour)
	rules := make([]string, 0, len(applied))
	for _, s := range applied {
		num.Mul(num, big.NewInt(s.num))
		den.Mul(den, big.NewInt(s.den))
		rules = append(rules, s.rule)
	}

	courtPrice, ok := roundRatio(num, den)
	if !ok {
		return Quote{}, validationError("court price is out of range")
	}
	q := Quote{
		CourtPrice:    Cents(courtPrice),
		DurationHours: duration.Hours(),
		AppliedRules:  rules,
	}

	if in.Coach != nil {
		coachNum := new(big.Int).Mul(big.NewInt(in.Coach.HourlyRateCents), nanos)
		coachPrice, ok := roundRatio(coachNum, hour)
		if !ok {
			return Quote{}, validationError("coach price is out of range")
		}
		q.CoachPrice = Cents(coachPrice)
	}

	for _, line := range in.Equipment {
		if line.Equipment == nil {
			continue
		}
		if line.Quantity <= 0 {
			return Quote{}, validationError("equipment %d quantity must be at least 1", line.EquipmentID)
		}
		product := new(big.Int).Mul(big.NewInt(line.Equipment.PricePerSessionCents), big.NewInt(line.Quantity))
		if !product.IsInt64() {
			return Quote{}, validationError("equipment %d price is out of range", line.EquipmentID)
		}
		subtotal := Cents(product.Int64())
		if q.EquipmentTotal, ok = addCents(q.EquipmentTotal, subtotal); !ok {
			return Quote{}, validationError("equipment total is out of range")
		}
		q.Equipment = append(q.Equipment, QuoteLine{
			EquipmentID: line.Equipment.ID,
			Name:        line.Equipment.Name,
			Quantity:    line.Quantity,
			UnitPrice:   Cents(line.Equipment.PricePerSessionCents),
			Subtotal:    subtotal,
		})
	}

	if q.TotalPrice, ok = addCents(q.CourtPrice, q.CoachPrice, q.EquipmentTotal); !ok {
		return Quote{}, validationError("total price is out of range")
	}
	return q, nil
}
