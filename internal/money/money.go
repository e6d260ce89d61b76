// Package money provides the fixed-point amount type used for every balance
// and transfer in the ledger.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits a Money value keeps.
const Scale = 4

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrOverflow      = errors.New("amount overflow")
)

var (
	maxUnits = decimal.NewFromInt(math.MaxInt64)
	minUnits = decimal.NewFromInt(math.MinInt64)
)

// Money is a signed amount stored as an int64 count of 1/10000 units.
// All arithmetic is integer-only.
//
// Examples:
//   - New(1, 0)     = 1.0000
//   - New(25, 2)    = 0.2500
//   - FromUnits(15) = 0.0015
type Money struct {
	units int64
}

// Zero is the zero amount.
var Zero = Money{}

// FromUnits builds a Money from a raw count of 1/10000 units.
func FromUnits(units int64) Money { return Money{units: units} }

// New builds value * 10^-exp. Digits beyond Scale are rounded half-even.
func New(value int64, exp int32) Money {
	m, err := FromDecimal(decimal.New(value, -exp))
	if err != nil {
		panic(fmt.Sprintf("money: %v", err))
	}
	return m
}

// Parse reads a decimal string such as "1.0", "  2.5 " or "-0.0001".
// More than Scale fractional digits are rounded half-even.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return FromDecimal(d)
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal converts a decimal, rounding half-even to Scale digits.
func FromDecimal(d decimal.Decimal) (Money, error) {
	scaled := d.Shift(Scale).RoundBank(0)
	if scaled.GreaterThan(maxUnits) || scaled.LessThan(minUnits) {
		return Zero, fmt.Errorf("%w: %s", ErrOverflow, d.String())
	}
	return Money{units: scaled.IntPart()}, nil
}

// Units returns the raw count of 1/10000 units.
func (m Money) Units() int64 { return m.units }

// Decimal returns the value as a decimal.Decimal.
func (m Money) Decimal() decimal.Decimal { return decimal.New(m.units, -Scale) }

// Add returns m + other, or ErrOverflow.
func (m Money) Add(other Money) (Money, error) {
	sum := m.units + other.units
	if (other.units > 0 && sum < m.units) || (other.units < 0 && sum > m.units) {
		return Zero, fmt.Errorf("%w: %s + %s", ErrOverflow, m, other)
	}
	return Money{units: sum}, nil
}

// Sub returns m - other, or ErrOverflow.
func (m Money) Sub(other Money) (Money, error) {
	diff := m.units - other.units
	if (other.units > 0 && diff > m.units) || (other.units < 0 && diff < m.units) {
		return Zero, fmt.Errorf("%w: %s - %s", ErrOverflow, m, other)
	}
	return Money{units: diff}, nil
}

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	switch {
	case m.units < other.units:
		return -1
	case m.units > other.units:
		return 1
	default:
		return 0
	}
}

func (m Money) Equal(other Money) bool       { return m.units == other.units }
func (m Money) LessThan(other Money) bool    { return m.units < other.units }
func (m Money) GreaterThan(other Money) bool { return m.units > other.units }
func (m Money) IsZero() bool                 { return m.units == 0 }
func (m Money) IsNegative() bool             { return m.units < 0 }

// String formats with exactly Scale fractional digits, e.g. "3.0000".
func (m Money) String() string {
	return m.Decimal().StringFixed(Scale)
}

// Value implements driver.Valuer. Amounts are persisted as integer units.
func (m Money) Value() (driver.Value, error) {
	return m.units, nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		m.units = v
	case int32:
		m.units = int64(v)
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	case nil:
		m.units = 0
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
	return nil
}

func (m *Money) scanString(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("money: cannot scan %q: %w", s, err)
	}
	if !d.IsInteger() {
		return fmt.Errorf("money: stored units must be integral, got %q", s)
	}
	m.units = d.IntPart()
	return nil
}

// MarshalText renders the fixed decimal form.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts anything Parse accepts.
func (m *Money) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
