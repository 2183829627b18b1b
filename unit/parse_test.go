package unit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diskfs/go-diskgeom/geom"
	"github.com/diskfs/go-diskgeom/natmath"
	"github.com/diskfs/go-diskgeom/testhelper"
	"github.com/diskfs/go-diskgeom/unit"
)

func TestParseCustom(t *testing.T) {
	dev := chsDevice()
	const length = 100 * 16 * 63
	tests := []struct {
		input      string
		unit       unit.Unit
		sector     int64
		start, end int64
	}{
		{"2048s", unit.Sector, 2048, 2048, 2048},
		{"2048", unit.Sector, 2048, 2048, 2048},
		{" 2048s ", unit.Megabyte, 2048, 2048, 2048},
		{"1MiB", unit.Sector, 2048, 2048, 2048},
		{"1mib", unit.Sector, 2048, 2048, 2048},
		{"1MB", unit.Sector, 1953, 0, 3906},
		{"10MB", unit.Sector, 19531, 17578, 21484},
		{"10m", unit.Sector, 19531, 17578, 21484},
		{"10 MB", unit.Sector, 19531, 17578, 21484},
		{"5 kib", unit.Sector, 10, 10, 10},
		{"10", unit.Kibibyte, 20, 20, 20},
		{"5", unit.CHS, 5, 5, 5},
		{"-1s", unit.Sector, length - 1, length - 1, length - 1},
		{"-10MB", unit.Sector, length - 19531, length - 19531 - 1953, length - 19531 + 1953},
		{"50%", unit.Sector, 50400, 50400 - 1007, 50400 + 1007},
		{"100%", unit.Sector, length - 1, length - 1007, length - 1},
		{"0%", unit.Sector, 0, 0, 1007},
		{"10cyl", unit.Sector, 10080, 10080 - 1007, 10080 + 1007},
		{"1,2,3", unit.Sector, 1137, 1137, 1137},
		{" 0 , 0 , 0 ", unit.Sector, 0, 0, 0},
		{"99,15,62", unit.Sector, length - 1, length - 1, length - 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			loc, err := unit.ParseCustom(tt.input, dev, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.sector, loc.Sector, "sector")
			require.NotNil(t, loc.Range)
			assert.Equal(t, tt.start, loc.Range.Start(), "range start")
			assert.Equal(t, tt.end, loc.Range.End(), "range end")
			assert.True(t, loc.Range.Device() == geom.Device(dev), "range on another device")
		})
	}
}

func TestParseDefaultUnit(t *testing.T) {
	dev := chsDevice()
	ctx := unit.NewContext()

	// compact default falls back to megabytes
	loc, err := ctx.Parse("10", dev)
	require.NoError(t, err)
	assert.Equal(t, int64(19531), loc.Sector)

	require.NoError(t, ctx.SetDefault(unit.Sector))
	loc, err = ctx.Parse("10", dev)
	require.NoError(t, err)
	assert.Equal(t, int64(10), loc.Sector)

	// an explicit compact unit follows the context default
	loc, err = ctx.ParseCustom("10", dev, unit.Compact)
	require.NoError(t, err)
	assert.Equal(t, int64(10), loc.Sector)

	// a suffix beats the default
	loc, err = ctx.Parse("1KiB", dev)
	require.NoError(t, err)
	assert.Equal(t, int64(2), loc.Sector)
}

func TestParseErrors(t *testing.T) {
	dev := chsDevice()
	tests := []struct {
		input string
		cause error
	}{
		{"", nil},
		{"   ", nil},
		{"abc", unit.ErrInvalidUnit},
		{"10MBx", unit.ErrInvalidUnit},
		{"10compact", unit.ErrInvalidUnit},
		{"10chs", unit.ErrInvalidUnit},
		{"1,5MB", nil},
		{"1..5MB", nil},
		{"0.5MB", nil},
		{"200000s", geom.ErrOutOfBounds},
		{"1,16,0", nil},
		{"1,0,63", nil},
		{"100,0,0", geom.ErrInvalidGeometry},
		{"a,b,c", nil},
		{"1,-2,3", nil},
		{"99999999999999999999TB", natmath.ErrOverflow},
		{"-99999999999999999999TB", natmath.ErrOverflow},
		{"9223372036854775807,0,0", geom.ErrInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := unit.ParseCustom(tt.input, dev, unit.Sector)
			require.Error(t, err)
			assert.ErrorIs(t, err, unit.ErrParse)
			var perr *unit.ParseError
			assert.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}

	// a huge location on a one sector device must not wrap around to sector 0
	tiny := &testhelper.SizeOnly{Sectors: 1, Sectorsize: 512}
	_, err := unit.ParseCustom("99999999999999999999TB", tiny, unit.Megabyte)
	assert.ErrorIs(t, err, natmath.ErrOverflow)
	loc, err := unit.ParseCustom("0", tiny, unit.Megabyte)
	require.NoError(t, err)
	assert.Equal(t, int64(0), loc.Sector)

	plain := &testhelper.SizeOnly{Sectors: 1000, Sectorsize: 512}
	_, err = unit.ParseCustom("10cyl", plain, unit.Sector)
	assert.ErrorIs(t, err, unit.ErrNoCHSGeometry)
	_, err = unit.ParseCustom("1,2,3", plain, unit.Sector)
	assert.ErrorIs(t, err, unit.ErrNoCHSGeometry)
}
