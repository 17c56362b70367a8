package booking

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	dbgen "github.com/codr1/Courtside/internal/db/generated"
)

func indoorCourt(basePriceCents int64) dbgen.Court {
	return dbgen.Court{ID: 1, Name: "Court 1", Type: "indoor", BasePriceCents: basePriceCents, IsActive: true}
}

func TestPriceScenarios(t *testing.T) {
	coach := &dbgen.Coach{ID: 1, Name: "Sam", HourlyRateCents: 2000, IsActive: true}
	racket := &dbgen.Equipment{ID: 3, Name: "Racket", PricePerSessionCents: 500, TotalQuantity: 10}

	tests := []struct {
		name      string
		in        QuoteInput
		wantCourt Cents
		wantCoach Cents
		wantEquip Cents
		wantRules []string
	}{
		{
			name: "indoor weekday peak",
			in: QuoteInput{
				Court: indoorCourt(1500),
				Start: time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC),
			},
			wantCourt: 2700,
			wantRules: []string{RuleIndoor, RulePeak},
		},
		{
			name: "indoor saturday morning",
			in: QuoteInput{
				Court: indoorCourt(1500),
				Start: time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 7, 11, 0, 0, 0, time.UTC),
			},
			wantCourt: 2340,
			wantRules: []string{RuleIndoor, RuleWeekend},
		},
		{
			name: "every surcharge",
			in: QuoteInput{
				Court: indoorCourt(1500),
				Start: time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC),
			},
			wantCourt: 3510,
			wantRules: []string{RuleIndoor, RulePeak, RuleWeekend},
		},
		{
			name: "outdoor off peak with coach and equipment",
			in: QuoteInput{
				Court: dbgen.Court{ID: 2, Type: "outdoor", BasePriceCents: 1000},
				Coach: coach,
				Equipment: []EquipmentLine{
					{EquipmentID: 3, Quantity: 2, Equipment: racket},
					{EquipmentID: 99, Quantity: 5},
				},
				Start: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 3, 11, 30, 0, 0, time.UTC),
			},
			wantCourt: 1500,
			wantCoach: 3000,
			wantEquip: 1000,
			wantRules: []string{},
		},
		{
			name: "peak ends at nine",
			in: QuoteInput{
				Court: dbgen.Court{Type: "outdoor", BasePriceCents: 1000},
				Start: time.Date(2026, 3, 3, 21, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 3, 22, 0, 0, 0, time.UTC),
			},
			wantCourt: 1000,
			wantRules: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Price(tt.in)
			if err != nil {
				t.Fatalf("price: %v", err)
			}
			if q.CourtPrice != tt.wantCourt {
				t.Fatalf("court price = %s, want %s", q.CourtPrice, tt.wantCourt)
			}
			if q.CoachPrice != tt.wantCoach {
				t.Fatalf("coach price = %s, want %s", q.CoachPrice, tt.wantCoach)
			}
			if q.EquipmentTotal != tt.wantEquip {
				t.Fatalf("equipment total = %s, want %s", q.EquipmentTotal, tt.wantEquip)
			}
			if q.TotalPrice != tt.wantCourt+tt.wantCoach+tt.wantEquip {
				t.Fatalf("total = %s, want sum of components", q.TotalPrice)
			}
			if !reflect.DeepEqual(q.AppliedRules, tt.wantRules) {
				t.Fatalf("rules = %v, want %v", q.AppliedRules, tt.wantRules)
			}
		})
	}
}

func TestPriceUsesFacilityTimezone(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	// 23:30 UTC Friday is 18:30 Friday in EST.
	in := QuoteInput{
		Court:    dbgen.Court{Type: "outdoor", BasePriceCents: 1000},
		Start:    time.Date(2026, 3, 6, 23, 30, 0, 0, time.UTC),
		End:      time.Date(2026, 3, 7, 0, 30, 0, 0, time.UTC),
		Location: est,
	}

	q, err := Price(in)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if q.CourtPrice != 1500 {
		t.Fatalf("expected peak price 15.00, got %s", q.CourtPrice)
	}

	in.Location = nil
	utc, err := Price(in)
	if err != nil {
		t.Fatalf("price utc: %v", err)
	}
	if utc.CourtPrice != 1000 {
		t.Fatalf("expected off-peak price 10.00 in UTC, got %s", utc.CourtPrice)
	}
}

func TestPriceRoundsToCents(t *testing.T) {
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		base     int64
		duration time.Duration
		want     Cents
	}{
		{name: "third of an hour", base: 1000, duration: 20 * time.Minute, want: 333},
		{name: "half cent rounds up", base: 1, duration: 30 * time.Minute, want: 1},
		{name: "one and a half cents", base: 3, duration: 30 * time.Minute, want: 2},
		{name: "two thirds", base: 1000, duration: 40 * time.Minute, want: 667},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Price(QuoteInput{
				Court: dbgen.Court{Type: "outdoor", BasePriceCents: tt.base},
				Start: start,
				End:   start.Add(tt.duration),
			})
			if err != nil {
				t.Fatalf("price: %v", err)
			}
			if q.CourtPrice != tt.want {
				t.Fatalf("court price = %d, want %d", q.CourtPrice, tt.want)
			}
		})
	}
}

func TestPriceIsDeterministic(t *testing.T) {
	in := QuoteInput{
		Court: indoorCourt(1575),
		Coach: &dbgen.Coach{HourlyRateCents: 3333},
		Equipment: []EquipmentLine{
			{EquipmentID: 1, Quantity: 3, Equipment: &dbgen.Equipment{ID: 1, Name: "Shoes", PricePerSessionCents: 250}},
		},
		Start: time.Date(2026, 3, 7, 18, 15, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 7, 19, 40, 0, 0, time.UTC),
	}

	first, err := Price(in)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Price(in)
		if err != nil {
			t.Fatalf("price again: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("price not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestPriceRejectsEmptyInterval(t *testing.T) {
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	for _, end := range []time.Time{start, start.Add(-time.Hour)} {
		_, err := Price(QuoteInput{Court: indoorCourt(1500), Start: start, End: end})
		if KindOf(err) != KindValidation {
			t.Fatalf("expected validation error for end %s, got %v", end, err)
		}
	}
}

func TestPriceRejectsOutOfRangeAmounts(t *testing.T) {
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	racket := &dbgen.Equipment{ID: 1, Name: "Racket", PricePerSessionCents: 500, TotalQuantity: 10}
	grip := &dbgen.Equipment{ID: 2, Name: "Grip", PricePerSessionCents: 4, TotalQuantity: 10}

	tests := []struct {
		name string
		in   QuoteInput
	}{
		{
			name: "equipment subtotal",
			in: QuoteInput{
				Court:     indoorCourt(1500),
				Equipment: []EquipmentLine{{EquipmentID: 1, Quantity: 1 << 62, Equipment: racket}},
				Start:     start,
				End:       end,
			},
		},
		{
			name: "equipment total",
			in: QuoteInput{
				Court: indoorCourt(1500),
				Equipment: []EquipmentLine{
					{EquipmentID: 2, Quantity: 1 << 60, Equipment: grip},
					{EquipmentID: 2, Quantity: 1 << 60, Equipment: grip},
				},
				Start: start,
				End:   end,
			},
		},
		{
			name: "court price",
			in: QuoteInput{
				Court: dbgen.Court{Type: "indoor", BasePriceCents: 1 << 62},
				Start: start,
				End:   start.Add(10 * time.Hour),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Price(tt.in)
			if KindOf(err) != KindValidation {
				t.Fatalf("expected validation error, got quote %+v err %v", q, err)
			}
		})
	}
}

func TestCentsJSON(t *testing.T) {
	tests := map[Cents]string{
		2700: "27.00",
		2340: "23.40",
		5:    "0.05",
		0:    "0.00",
		-150: "-1.50",
	}
	for amount, want := range tests {
		body, err := json.Marshal(amount)
		if err != nil {
			t.Fatalf("marshal %d: %v", amount, err)
		}
		if string(body) != want {
			t.Fatalf("marshal %d = %s, want %s", amount, body, want)
		}
	}
}

func TestReference(t *testing.T) {
	if got := Reference(7); got != "BK000007" {
		t.Fatalf("Reference(7) = %q", got)
	}
	if got := Reference(1234567); got != "BK1234567" {
		t.Fatalf("Reference(1234567) = %q", got)
	}
	id, ok := ParseReference("bk000042")
	if !ok || id != 42 {
		t.Fatalf("ParseReference = %d, %v", id, ok)
	}
	for _, bad := range []string{"", "BK", "BK12", "XX000001", "BK000000", "BKabcdef"} {
		if _, ok := ParseReference(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestCentsUnmarshalJSON(t *testing.T) {
	var got struct {
		Price Cents `json:"price"`
	}
	if err := json.Unmarshal([]byte(`{"price": 23.40}`), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Price != 2340 {
		t.Fatalf("price = %d, want 2340", got.Price)
	}
	if err := json.Unmarshal([]byte(`{"price": 1.005}`), &got); err == nil {
		t.Fatal("expected sub-cent amount to be rejected")
	}
}
