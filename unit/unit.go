// Package unit converts sector and byte offsets on a device to and from
// human readable locations such as "1.50GB", "35%" or "12,4,1".
//
// Formatting and parsing without an explicit unit use a default unit. The
// package-level functions share one process-wide Context, which is safe for
// concurrent use; callers wanting isolated defaults create their own with
// NewContext.
package unit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/diskfs/go-diskgeom/geom"
	"github.com/diskfs/go-diskgeom/natmath"
)

// Unit is a scale for presenting locations on a device
type Unit int

const (
	Sector Unit = iota
	Byte
	Kilobyte
	Megabyte
	Gigabyte
	Terabyte
	// Compact picks a decimal unit that keeps the number short
	Compact
	Cylinder
	// CHS presents cylinder,head,sector triples
	CHS
	Percent
	Kibibyte
	Mebibyte
	Gibibyte
	Tebibyte
)

const (
	first = Sector
	last  = Tebibyte
)

const (
	KilobyteSize int64 = 1000
	MegabyteSize       = KilobyteSize * 1000
	GigabyteSize       = MegabyteSize * 1000
	TerabyteSize       = GigabyteSize * 1000
	KibibyteSize int64 = 1 << 10
	MebibyteSize       = KibibyteSize << 10
	GibibyteSize       = MebibyteSize << 10
	TebibyteSize       = GibibyteSize << 10
)

var (
	ErrInvalidUnit   = errors.New("invalid unit")
	ErrCompactSize   = errors.New("cannot get unit size for special unit 'compact'")
	ErrNoCHSGeometry = errors.New("device has no CHS geometry")
	ErrTooSmall      = errors.New("device too small for percent unit")
)

var names = [...]string{
	Sector:   "s",
	Byte:     "B",
	Kilobyte: "kB",
	Megabyte: "MB",
	Gigabyte: "GB",
	Terabyte: "TB",
	Compact:  "compact",
	Cylinder: "cyl",
	CHS:      "chs",
	Percent:  "%",
	Kibibyte: "KiB",
	Mebibyte: "MiB",
	Gibibyte: "GiB",
	Tebibyte: "TiB",
}

// Valid reports whether u is one of the defined units
func (u Unit) Valid() bool {
	return u >= first && u <= last
}

// Name returns the short name of the unit, as used in formatted output, or
// the empty string for an undefined unit
func (u Unit) Name() string {
	if !u.Valid() {
		return ""
	}
	return names[u]
}

func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return names[u]
}

// ByName finds a unit by name, ignoring case. The second return value is
// false when no unit has that name.
func ByName(name string) (Unit, bool) {
	for u := first; u <= last; u++ {
		if strings.EqualFold(names[u], name) {
			return u, true
		}
	}
	return 0, false
}

// Units returns every unit in ordinal order
func Units() []Unit {
	all := make([]Unit, 0, last-first+1)
	for u := first; u <= last; u++ {
		all = append(all, u)
	}
	return all
}

func biosGeometry(dev geom.Device) (geom.CHS, error) {
	if d, ok := dev.(geom.CHSDevice); ok {
		if chs := d.BIOSGeometry(); chs.Valid() {
			return chs, nil
		}
	}
	return geom.CHS{}, ErrNoCHSGeometry
}

// Size returns the number of bytes one u represents on dev.
//
// Percent is length*sectorSize/100 rounded down. Cylinder needs a device with
// a BIOS geometry. Compact has no size.
func Size(dev geom.Device, u Unit) (int64, error) {
	switch u {
	case Sector, CHS:
		return dev.SectorSize(), nil
	case Byte:
		return 1, nil
	case Kilobyte:
		return KilobyteSize, nil
	case Megabyte:
		return MegabyteSize, nil
	case Gigabyte:
		return GigabyteSize, nil
	case Terabyte:
		return TerabyteSize, nil
	case Kibibyte:
		return KibibyteSize, nil
	case Mebibyte:
		return MebibyteSize, nil
	case Gibibyte:
		return GibibyteSize, nil
	case Tebibyte:
		return TebibyteSize, nil
	case Cylinder:
		chs, err := biosGeometry(dev)
		if err != nil {
			return 0, err
		}
		return chs.CylinderSize() * dev.SectorSize(), nil
	case Percent:
		if ss := dev.SectorSize(); ss > 0 && dev.Length() > math.MaxInt64/ss {
			return 0, fmt.Errorf("device of %d sectors of %d bytes: %w", dev.Length(), ss, natmath.ErrOverflow)
		}
		size := dev.Length() * dev.SectorSize() / 100
		if size == 0 {
			return 0, ErrTooSmall
		}
		return size, nil
	case Compact:
		return 0, ErrCompactSize
	}
	return 0, fmt.Errorf("%v: %w", u, ErrInvalidUnit)
}
