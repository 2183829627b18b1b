package natmath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/diskfs/go-diskgeom/natmath"
)

func TestRounding(t *testing.T) {
	tests := []struct {
		sector, grain     int64
		down, up, nearest int64
	}{
		{17, 8, 16, 24, 16},
		{20, 8, 16, 24, 24},
		{21, 8, 16, 24, 24},
		{16, 8, 16, 16, 16},
		{0, 8, 0, 0, 0},
		{1, 1, 1, 1, 1},
		{2047, 2048, 0, 2048, 2048},
		{1023, 2048, 0, 2048, 0},
		{1024, 2048, 0, 2048, 2048},
		{-1, 8, -8, 0, 0},
		{-4, 8, -8, 0, 0},
		{-5, 8, -8, 0, -8},
		{-16, 8, -16, -16, -16},
		{math.MaxInt64 - 7, 8, math.MaxInt64 - 7, math.MaxInt64 - 7, math.MaxInt64 - 7},
		{math.MaxInt64 - 8, 8, math.MaxInt64 - 15, math.MaxInt64 - 7, math.MaxInt64 - 7},
		{math.MinInt64, 8, math.MinInt64, math.MinInt64, math.MinInt64},
	}
	for _, tt := range tests {
		down, err := natmath.RoundDownTo(tt.sector, tt.grain)
		if err != nil {
			t.Fatalf("RoundDownTo(%d, %d): unexpected error %v", tt.sector, tt.grain, err)
		}
		if down != tt.down {
			t.Errorf("RoundDownTo(%d, %d) = %d, expected %d", tt.sector, tt.grain, down, tt.down)
		}
		up, err := natmath.RoundUpTo(tt.sector, tt.grain)
		if err != nil {
			t.Fatalf("RoundUpTo(%d, %d): unexpected error %v", tt.sector, tt.grain, err)
		}
		if up != tt.up {
			t.Errorf("RoundUpTo(%d, %d) = %d, expected %d", tt.sector, tt.grain, up, tt.up)
		}
		nearest, err := natmath.RoundToNearest(tt.sector, tt.grain)
		if err != nil {
			t.Fatalf("RoundToNearest(%d, %d): unexpected error %v", tt.sector, tt.grain, err)
		}
		if nearest != tt.nearest {
			t.Errorf("RoundToNearest(%d, %d) = %d, expected %d", tt.sector, tt.grain, nearest, tt.nearest)
		}
	}
}

func TestRoundingOverflow(t *testing.T) {
	tests := []struct {
		name          string
		fn            func(int64, int64) (int64, error)
		sector, grain int64
	}{
		{"RoundUpTo", natmath.RoundUpTo, math.MaxInt64, 8},
		{"RoundUpTo", natmath.RoundUpTo, math.MaxInt64 - 1, 2048},
		{"RoundToNearest", natmath.RoundToNearest, math.MaxInt64 - 1, 8},
		{"RoundDownTo", natmath.RoundDownTo, math.MinInt64, 3},
		{"RoundToNearest", natmath.RoundToNearest, math.MinInt64, 3},
	}
	for _, tt := range tests {
		v, err := tt.fn(tt.sector, tt.grain)
		if !errors.Is(err, natmath.ErrOverflow) {
			t.Errorf("%s(%d, %d) = %d, %v; expected ErrOverflow", tt.name, tt.sector, tt.grain, v, err)
		}
	}
	// the largest multiple still fits
	if v, err := natmath.RoundDownTo(math.MaxInt64, 8); err != nil || v != math.MaxInt64-7 {
		t.Errorf("RoundDownTo(max, 8) = %d, %v", v, err)
	}
}

func TestRoundingInvalidGrain(t *testing.T) {
	funcs := map[string]func(int64, int64) (int64, error){
		"RoundUpTo":      natmath.RoundUpTo,
		"RoundDownTo":    natmath.RoundDownTo,
		"RoundToNearest": natmath.RoundToNearest,
	}
	for name, fn := range funcs {
		for _, grain := range []int64{0, -1, -8} {
			if _, err := fn(17, grain); !errors.Is(err, natmath.ErrInvalidArgument) {
				t.Errorf("%s(17, %d): expected ErrInvalidArgument, got %v", name, grain, err)
			}
		}
	}
}

func TestRoundingBounds(t *testing.T) {
	for g := int64(1); g <= 64; g++ {
		for x := int64(0); x <= 300; x++ {
			up, _ := natmath.RoundUpTo(x, g)
			down, _ := natmath.RoundDownTo(x, g)
			if up < x {
				t.Fatalf("RoundUpTo(%d, %d) = %d is below input", x, g, up)
			}
			if down > x {
				t.Fatalf("RoundDownTo(%d, %d) = %d is above input", x, g, down)
			}
			if d := up - down; d != 0 && d != g {
				t.Fatalf("RoundUpTo - RoundDownTo for (%d, %d) = %d, expected 0 or %d", x, g, d, g)
			}
			if up%g != 0 || down%g != 0 {
				t.Fatalf("results for (%d, %d) are not multiples: %d %d", x, g, up, down)
			}
		}
	}
}

func TestGreatestCommonDivisor(t *testing.T) {
	tests := []struct {
		a, b     int64
		expected int64
		err      error
	}{
		{48, 18, 6, nil},
		{18, 48, 6, nil},
		{0, 5, 5, nil},
		{5, 0, 5, nil},
		{7, 13, 1, nil},
		{2048, 4096, 2048, nil},
		{0, 0, 0, natmath.ErrInvalidArgument},
		{-4, 2, 0, natmath.ErrInvalidArgument},
		{4, -2, 0, natmath.ErrInvalidArgument},
	}
	for _, tt := range tests {
		gcd, err := natmath.GreatestCommonDivisor(tt.a, tt.b)
		switch {
		case tt.err != nil && !errors.Is(err, tt.err):
			t.Errorf("gcd(%d, %d): expected error %v, got %v", tt.a, tt.b, tt.err, err)
		case tt.err == nil && err != nil:
			t.Errorf("gcd(%d, %d): unexpected error %v", tt.a, tt.b, err)
		case gcd != tt.expected:
			t.Errorf("gcd(%d, %d) = %d, expected %d", tt.a, tt.b, gcd, tt.expected)
		}
	}
}

func TestDivRoundUp(t *testing.T) {
	for a := int64(-50); a <= 50; a++ {
		for b := int64(-9); b <= 9; b++ {
			if b == 0 {
				continue
			}
			q, err := natmath.DivRoundUp(a, b)
			if err != nil {
				t.Fatalf("DivRoundUp(%d, %d): unexpected error %v", a, b, err)
			}
			expected := int64(math.Ceil(float64(a) / float64(b)))
			if q != expected {
				t.Errorf("DivRoundUp(%d, %d) = %d, expected %d", a, b, q, expected)
			}
		}
	}
	if _, err := natmath.DivRoundUp(10, 0); !errors.Is(err, natmath.ErrDivisionByZero) {
		t.Errorf("DivRoundUp(10, 0): expected ErrDivisionByZero, got %v", err)
	}
	extremes := []struct {
		a, b, expected int64
	}{
		{math.MaxInt64, 2, 1 << 62},
		{math.MaxInt64, 1, math.MaxInt64},
		{math.MaxInt64, -1, -math.MaxInt64},
		{math.MinInt64, 1, math.MinInt64},
		{math.MinInt64, 2, -(1 << 62)},
	}
	for _, tt := range extremes {
		if q, err := natmath.DivRoundUp(tt.a, tt.b); err != nil || q != tt.expected {
			t.Errorf("DivRoundUp(%d, %d) = %d, %v; expected %d", tt.a, tt.b, q, err, tt.expected)
		}
	}
	if q, err := natmath.DivRoundUp(math.MinInt64, -1); !errors.Is(err, natmath.ErrOverflow) {
		t.Errorf("DivRoundUp(min, -1) = %d, %v; expected ErrOverflow", q, err)
	}
}

func TestDivRoundToNearest(t *testing.T) {
	tests := []struct {
		a, b, expected int64
	}{
		{10, 4, 3},
		{9, 4, 2},
		{11, 4, 3},
		{6, 4, 2},
		{-10, 4, -3},
		{-9, 4, -2},
		{10, -4, -3},
		{-10, -4, 3},
		{12, 4, 3},
		{1, 3, 0},
		{2, 3, 1},
		{0, 7, 0},
		{math.MaxInt64, 2, 1 << 62},
		{math.MaxInt64, math.MaxInt64, 1},
		{math.MaxInt64, -1, -math.MaxInt64},
		{math.MinInt64, 2, -(1 << 62)},
	}
	for _, tt := range tests {
		q, err := natmath.DivRoundToNearest(tt.a, tt.b)
		if err != nil {
			t.Fatalf("DivRoundToNearest(%d, %d): unexpected error %v", tt.a, tt.b, err)
		}
		if q != tt.expected {
			t.Errorf("DivRoundToNearest(%d, %d) = %d, expected %d", tt.a, tt.b, q, tt.expected)
		}
	}
	if _, err := natmath.DivRoundToNearest(10, 0); !errors.Is(err, natmath.ErrDivisionByZero) {
		t.Errorf("DivRoundToNearest(10, 0): expected ErrDivisionByZero, got %v", err)
	}
	// must not overflow on the extremes
	if q, err := natmath.DivRoundToNearest(math.MinInt64, math.MinInt64); err != nil || q != 1 {
		t.Errorf("DivRoundToNearest(min, min) = %d, %v; expected 1", q, err)
	}
	if q, err := natmath.DivRoundToNearest(math.MinInt64, -1); !errors.Is(err, natmath.ErrOverflow) {
		t.Errorf("DivRoundToNearest(min, -1) = %d, %v; expected ErrOverflow", q, err)
	}
}
