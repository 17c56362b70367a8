package booking

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Cents is a monetary amount in the smallest currency unit. It encodes to
// JSON as a decimal number with two places, e.g. 2700 -> 27.00.
type Cents int64

func (c Cents) String() string {
	n := int64(c)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	frac := strconv.FormatInt(n%100, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}
	return sign + strconv.FormatInt(n/100, 10) + "." + frac
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a decimal number with at most two places.
func (c *Cents) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	amount, ok := new(big.Rat).SetString(raw)
	if !ok {
		return fmt.Errorf("invalid amount %q", raw)
	}
	amount.Mul(amount, big.NewRat(100, 1))
	if !amount.IsInt() {
		return fmt.Errorf("amount %q has more than two decimal places", raw)
	}
	*c = Cents(amount.Num().Int64())
	return nil
}

// Float returns the amount in whole currency units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// roundRatio returns num/den rounded to the nearest integer, halves away
// from zero. den must be positive. ok is false when the result does not fit
// in an int64.
func roundRatio(num, den *big.Int) (int64, bool) {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	twice := new(big.Int).Abs(r)
	twice.Lsh(twice, 1)
	if twice.Cmp(den) >= 0 {
		if num.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	if !q.IsInt64() {
		return 0, false
	}
	return q.Int64(), true
}

// addCents sums amounts, reporting false on int64 overflow.
func addCents(amounts ...Cents) (Cents, bool) {
	sum := new(big.Int)
	for _, a := range amounts {
		sum.Add(sum, big.NewInt(int64(a)))
	}
	if !sum.IsInt64() {
		return 0, false
	}
	return Cents(sum.Int64()), true
}
