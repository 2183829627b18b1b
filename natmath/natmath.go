// Package natmath provides the integer rounding helpers used when placing
// regions on a device: rounding sectors to grain sizes, greatest common
// divisors and rounded division.
//
// All functions are pure. Invalid input is reported as an error, never as
// a silently wrong result.
package natmath

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument is returned for a non-positive grain size, negative GCD operands or gcd(0, 0)
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDivisionByZero is returned when a divisor is zero
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is returned when the result does not fit in an int64
	ErrOverflow = errors.New("integer overflow")
)

func checkGrain(grain int64) error {
	if grain <= 0 {
		return fmt.Errorf("grain size %d must be positive: %w", grain, ErrInvalidArgument)
	}
	return nil
}

// absMod returns sector mod grain in the range [0, grain)
func absMod(sector, grain int64) int64 {
	r := sector % grain
	if r < 0 {
		r += grain
	}
	return r
}

// RoundDownTo rounds sector down to the closest multiple of grain
func RoundDownTo(sector, grain int64) (int64, error) {
	if err := checkGrain(grain); err != nil {
		return 0, err
	}
	return down(sector, grain, absMod(sector, grain))
}

// down returns the multiple of grain at or below sector, which is r past it
func down(sector, grain, r int64) (int64, error) {
	if sector < math.MinInt64+r {
		return 0, fmt.Errorf("rounding %d down to a multiple of %d: %w", sector, grain, ErrOverflow)
	}
	return sector - r, nil
}

// up returns the next multiple of grain above sector, which is r past a multiple
func up(sector, grain, r int64) (int64, error) {
	if sector > math.MaxInt64-(grain-r) {
		return 0, fmt.Errorf("rounding %d up to a multiple of %d: %w", sector, grain, ErrOverflow)
	}
	return sector + (grain - r), nil
}

// RoundUpTo rounds sector up to the closest multiple of grain
func RoundUpTo(sector, grain int64) (int64, error) {
	if err := checkGrain(grain); err != nil {
		return 0, err
	}
	r := absMod(sector, grain)
	if r == 0 {
		return sector, nil
	}
	return up(sector, grain, r)
}

// RoundToNearest rounds sector to the closest multiple of grain. When sector
// is exactly between two multiples, the larger one wins.
func RoundToNearest(sector, grain int64) (int64, error) {
	if err := checkGrain(grain); err != nil {
		return 0, err
	}
	r := absMod(sector, grain)
	if r >= grain-r {
		return up(sector, grain, r)
	}
	return down(sector, grain, r)
}

// GreatestCommonDivisor returns the largest divisor of both a and b.
// gcd(a, 0) is a and gcd(0, b) is b. Both operands must be non-negative and
// at least one of them non-zero.
func GreatestCommonDivisor(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("gcd(%d, %d) of negative operand: %w", a, b, ErrInvalidArgument)
	}
	if a == 0 && b == 0 {
		return 0, fmt.Errorf("gcd(0, 0) is undefined: %w", ErrInvalidArgument)
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a, nil
}

func checkDivision(a, b int64) error {
	switch {
	case b == 0:
		return fmt.Errorf("%d / 0: %w", a, ErrDivisionByZero)
	case a == math.MinInt64 && b == -1:
		return fmt.Errorf("%d / -1: %w", a, ErrOverflow)
	}
	return nil
}

// DivRoundUp returns the ceiling of a / b
func DivRoundUp(a, b int64) (int64, error) {
	if err := checkDivision(a, b); err != nil {
		return 0, err
	}
	q := a / b
	// Go truncates toward zero, so only a positive exact quotient needs bumping
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q, nil
}

// DivRoundToNearest returns a / b rounded to the nearest integer, halves
// rounding away from zero.
func DivRoundToNearest(a, b int64) (int64, error) {
	if err := checkDivision(a, b); err != nil {
		return 0, err
	}
	q, r := a/b, a%b
	if r == 0 {
		return q, nil
	}
	ar, ab := abs(r), abs(b)
	if ar >= ab-ar {
		if (a < 0) == (b < 0) {
			q++
		} else {
			q--
		}
	}
	return q, nil
}

// abs works in uint64 so that math.MinInt64 does not overflow
func abs(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}
