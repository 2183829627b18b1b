package unit

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/diskfs/go-diskgeom/geom"
	"github.com/diskfs/go-diskgeom/natmath"
)

// ErrParse is matched by every *ParseError
var ErrParse = errors.New("invalid location")

// ParseError describes a location string that does not name a place on the device
type ParseError struct {
	input  string
	reason string
	err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid location %q: %s", e.input, e.reason)
}

// Is makes the error match ErrParse
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.err
}

func NewParseError(input, reason string, err error) *ParseError {
	return &ParseError{
		input:  input,
		reason: reason,
		err:    err,
	}
}

// Location is a parsed position on a device
type Location struct {
	// Sector is the described sector, clipped to the device
	Sector int64
	// Range covers the sectors the description could mean: two units wide,
	// centred on the exact position and cut to the device
	Range *geom.Region
}

// maxLocation bounds the sectors a location may name, leaving room for
// counting back from the device end and for the radius
const maxLocation = 1 << 62

// suffixAliases are accepted in addition to the unit names themselves
var suffixAliases = map[string]Unit{
	"s":       Sector,
	"sector":  Sector,
	"sectors": Sector,
	"b":       Byte,
	"byte":    Byte,
	"bytes":   Byte,
	"k":       Kilobyte,
	"m":       Megabyte,
	"g":       Gigabyte,
	"t":       Terabyte,
	"c":       Cylinder,
	"ki":      Kibibyte,
	"mi":      Mebibyte,
	"gi":      Gibibyte,
	"ti":      Tebibyte,
}

// ParseCustom reads a location on dev. A bare number is taken in unit u; when
// u is Compact the context default is used instead, or megabytes if that is
// Compact too.
//
// Accepted forms are "<number>[unit]" where a leading '-' counts back from
// the end of the device, and "cylinder,head,sector".
func (c *Context) ParseCustom(str string, dev geom.Device, u Unit) (Location, error) {
	s := strings.TrimSpace(str)
	if s == "" {
		return Location{}, NewParseError(str, "empty location", nil)
	}
	if strings.Count(s, ",") == 2 {
		return parseCHS(str, s, dev)
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-')
	})
	if split < 0 {
		split = len(s)
	}
	number, suffix := s[:split], strings.TrimSpace(s[split:])

	unit, err := c.suffixUnit(suffix, u)
	if err != nil {
		return Location{}, NewParseError(str, err.Error(), err)
	}
	num, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Location{}, NewParseError(str, "invalid number", err)
	}
	if num > 0 && num < 1 {
		return Location{}, NewParseError(str, "use a smaller unit instead of a value < 1", nil)
	}

	unitSize, err := Size(dev, unit)
	if err != nil {
		return Location{}, NewParseError(str, err.Error(), err)
	}
	sectorSize := dev.SectorSize()
	radius, err := natmath.DivRoundUp(unitSize, sectorSize)
	if err != nil {
		return Location{}, NewParseError(str, "device has no sector size", err)
	}
	radius--
	// a power of two unit names an exact boundary, e.g. 4MiB, not a fuzzy range
	if radius < 0 || isPowerOfTwo(unitSize) {
		radius = 0
	}

	exact := num * float64(unitSize) / float64(sectorSize)
	if math.IsNaN(exact) || math.Abs(exact) >= maxLocation {
		return Location{}, NewParseError(str, "location is outside of any device", fmt.Errorf("%g sectors: %w", exact, natmath.ErrOverflow))
	}
	sector := int64(exact)
	if strings.HasPrefix(number, "-") {
		sector += dev.Length()
	}
	rng, err := around(dev, sector, radius)
	if err != nil {
		return Location{}, NewParseError(str, "location is outside of the device", err)
	}
	return Location{Sector: clip(dev, sector), Range: rng}, nil
}

func (c *Context) suffixUnit(suffix string, suggested Unit) (Unit, error) {
	if suffix == "" {
		if suggested != Compact {
			return suggested, nil
		}
		if def := c.Default(); def != Compact {
			return def, nil
		}
		return Megabyte, nil
	}
	if u, ok := ByName(suffix); ok && u != Compact && u != CHS {
		return u, nil
	}
	if u, ok := suffixAliases[strings.ToLower(suffix)]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("unknown unit %q: %w", suffix, ErrInvalidUnit)
}

func parseCHS(str, s string, dev geom.Device) (Location, error) {
	chs, err := biosGeometry(dev)
	if err != nil {
		return Location{}, NewParseError(str, err.Error(), err)
	}
	var vals [3]int64
	for i, part := range strings.Split(s, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || v < 0 {
			return Location{}, NewParseError(str, "invalid syntax for a cylinder,head,sector location", err)
		}
		vals[i] = v
	}
	cyl, head, sect := vals[0], vals[1], vals[2]
	if cyl > dev.Length()/chs.CylinderSize() {
		return Location{}, NewParseError(str, "location is outside of the device", fmt.Errorf("cylinder %d: %w", cyl, geom.ErrInvalidGeometry))
	}
	if head >= chs.Heads {
		return Location{}, NewParseError(str, fmt.Sprintf("the maximum head value is %d", chs.Heads-1), nil)
	}
	if sect >= chs.Sectors {
		return Location{}, NewParseError(str, fmt.Sprintf("the maximum sector value is %d", chs.Sectors-1), nil)
	}
	sector := cyl*chs.CylinderSize() + head*chs.Sectors + sect
	rng, err := geom.New(dev, sector, 1)
	if err != nil {
		return Location{}, NewParseError(str, "location is outside of the device", err)
	}
	return Location{Sector: sector, Range: rng}, nil
}

// around returns the region within radius of sector, cut to the device. It
// fails when sector is more than radius outside the device.
func around(dev geom.Device, sector, radius int64) (*geom.Region, error) {
	start := clip(dev, sector-radius)
	end := clip(dev, sector+radius)
	if sector-end > radius || start-sector > radius {
		return nil, fmt.Errorf("sector %d beyond device of %d sectors: %w", sector, dev.Length(), geom.ErrOutOfBounds)
	}
	return geom.New(dev, start, end-start+1)
}

func clip(dev geom.Device, sector int64) int64 {
	if sector < 0 {
		return 0
	}
	if sector > dev.Length()-1 {
		return dev.Length() - 1
	}
	return sector
}

func isPowerOfTwo(n int64) bool {
	return n > 0 && n&(n-1) == 0
}
