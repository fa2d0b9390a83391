package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents.
//
// Prices are summed and multiplied as integers so 25.99 * 2 is exactly 51.98.
// String renders the amount with two decimals and no currency symbol.
type Money int64

// Cents builds a Money value from an integer number of cents.
func Cents(c int64) Money { return Money(c) }

// MoneyFromFloat converts a decimal amount to the nearest cent.
func MoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// ParseMoney parses a decimal string such as "25.99", "$7" or "-0.5".
// At most two fractional digits are accepted.
func ParseMoney(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	negative := false
	if raw[0] == '-' || raw[0] == '+' {
		negative = raw[0] == '-'
		raw = raw[1:]
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}

	var units int64
	if whole != "" {
		v, err := strconv.ParseUint(whole, 10, 62)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		units = int64(v)
	}

	var cents int64
	if frac != "" {
		v, err := strconv.ParseUint(frac, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		cents = int64(v)
		if len(frac) == 1 {
			cents *= 10
		}
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return Money(total), nil
}

// Mul returns the amount multiplied by a quantity.
func (m Money) Mul(qty int) Money { return m * Money(qty) }

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money { return m + o }

// Float64 returns the amount in currency units. Use only for display or export.
func (m Money) Float64() float64 { return float64(m) / 100 }

// String formats the amount with exactly two decimals, e.g. "51.98".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		// Numbers such as 1e2 or long fractions are rounded to the nearest cent.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return err
		}
		v = MoneyFromFloat(f)
	}
	*m = v
	return nil
}
