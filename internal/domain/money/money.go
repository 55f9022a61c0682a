package money

import (
	"errors"
	"fmt"
	"math"
)

// unitsPerMillion is the scale between base units and the millions operators type in.
const unitsPerMillion = 1_000_000

// MaxMillions is the largest whole number of millions an Amount can hold.
const MaxMillions = math.MaxInt64 / unitsPerMillion

// ErrOutOfRange is returned for millions outside [0, MaxMillions].
var ErrOutOfRange = errors.New("amount out of range")

// Amount is a monetary value (market value, release clause) in base units.
type Amount int64

// FromMillions converts a whole number of millions into base units. It does
// not check for overflow; use ParseMillions for operator input.
func FromMillions(m int64) Amount {
	return Amount(m * unitsPerMillion)
}

// ParseMillions converts operator-entered millions into base units, rejecting
// negative values and values that would overflow.
func ParseMillions(m int64) (Amount, error) {
	if m < 0 || m > MaxMillions {
		return 0, fmt.Errorf("%d millions: %w", m, ErrOutOfRange)
	}
	return Amount(m * unitsPerMillion), nil
}

// Millions converts base units into whole millions, truncating any remainder.
func (a Amount) Millions() int64 {
	return int64(a) / unitsPerMillion
}

// String renders the amount the way list views show it, e.g. "€12.5M".
func (a Amount) String() string {
	return fmt.Sprintf("€%.1fM", float64(a)/unitsPerMillion)
}
