// Package geom implements regions: contiguous, inclusive ranges of sectors on
// a device, and the algebra over them.
//
// A Region is always valid against its Device. Every constructor and
// mutator validates start >= 0, length >= 1 and end < device length, and a
// failing mutator leaves the Region exactly as it was.
//
// Regions compare their devices with ==, so a Device must be a pointer or
// another comparable type. New rejects devices that are not.
package geom

import (
	"fmt"
	"reflect"
)

// Region is a contiguous range of sectors on a Device. The zero value is not
// usable; build regions with New.
type Region struct {
	dev    Device
	start  int64
	length int64
}

// New creates a region of length sectors beginning at start on dev
func New(dev Device, start, length int64) (*Region, error) {
	if err := validate(dev, start, length); err != nil {
		return nil, err
	}
	return &Region{dev: dev, start: start, length: length}, nil
}

func validate(dev Device, start, length int64) error {
	if dev == nil {
		return NewGeometryError(start, length, 0, "region requires a device")
	}
	if !reflect.TypeOf(dev).Comparable() {
		return NewGeometryError(start, length, 0, fmt.Sprintf("device of type %T cannot be compared", dev))
	}
	devLength := dev.Length()
	switch {
	case length < 1:
		return NewGeometryError(start, length, devLength, "can't have the end before the start")
	case start < 0:
		return NewGeometryError(start, length, devLength, "can't have a region before the start of the device")
	case start > devLength-length:
		// written to avoid overflowing start+length
		return NewGeometryError(start, length, devLength, "can't have a region outside the device")
	}
	return nil
}

// Device returns the device whose sectors the region indexes
func (r *Region) Device() Device {
	return r.dev
}

// Start returns the first sector of the region
func (r *Region) Start() int64 {
	return r.start
}

// Length returns the number of sectors in the region
func (r *Region) Length() int64 {
	return r.length
}

// End returns the last sector of the region, inclusive
func (r *Region) End() int64 {
	return r.start + r.length - 1
}

func (r *Region) String() string {
	return fmt.Sprintf("%d-%d (%d)", r.start, r.End(), r.length)
}

// Duplicate returns an independent copy of the region
func (r *Region) Duplicate() *Region {
	c := *r
	return &c
}

// Set moves the region to start and resizes it to length sectors
func (r *Region) Set(start, length int64) error {
	if err := validate(r.dev, start, length); err != nil {
		return err
	}
	r.start = start
	r.length = length
	return nil
}

// SetStart moves the first sector of the region, keeping the end fixed
func (r *Region) SetStart(start int64) error {
	switch {
	case start < 0:
		return NewGeometryError(start, 0, r.dev.Length(), "can't have a region before the start of the device")
	case start > r.End():
		return NewGeometryError(start, 0, r.dev.Length(), "can't have the end before the start")
	}
	return r.Set(start, r.End()-start+1)
}

// SetEnd moves the last sector of the region, keeping the start fixed
func (r *Region) SetEnd(end int64) error {
	devLength := r.dev.Length()
	switch {
	case end < r.start:
		return NewGeometryError(r.start, 0, devLength, "can't have the end before the start")
	case end >= devLength:
		return NewGeometryError(r.start, 0, devLength, "can't have a region outside the device")
	}
	return r.Set(r.start, end-r.start+1)
}

// TestSectorInside reports whether sector lies within the region
func (r *Region) TestSectorInside(sector int64) bool {
	return r.start <= sector && sector <= r.End()
}

// Intersect returns the region covered by both a and b. The second return
// value is false when the regions do not overlap or live on different
// devices, in which case the region is nil.
func Intersect(a, b *Region) (*Region, bool) {
	if !TestOverlap(a, b) {
		return nil, false
	}
	start := max(a.start, b.start)
	end := min(a.End(), b.End())
	return &Region{dev: a.dev, start: start, length: end - start + 1}, true
}

// TestOverlap reports whether a and b share at least one sector
func TestOverlap(a, b *Region) bool {
	if a.dev != b.dev {
		return false
	}
	return a.start <= b.End() && b.start <= a.End()
}

// TestInside reports whether b lies entirely within a
func TestInside(a, b *Region) bool {
	if a.dev != b.dev {
		return false
	}
	return b.start >= a.start && b.End() <= a.End()
}

// TestEqual reports whether a and b cover exactly the same sectors
func TestEqual(a, b *Region) bool {
	return a.dev == b.dev && a.start == b.start && a.length == b.length
}

// Map translates sector, which must lie inside src, to the sector at the
// same distance from the start of dst.
func Map(dst, src *Region, sector int64) (int64, error) {
	if dst.dev != src.dev {
		return 0, fmt.Errorf("cannot map between regions on different devices: %w", ErrInvalidGeometry)
	}
	if !src.TestSectorInside(sector) {
		return 0, fmt.Errorf("sector %d not inside source region %s: %w", sector, src, ErrOutOfBounds)
	}
	result := dst.start + (sector - src.start)
	if !dst.TestSectorInside(result) {
		return 0, fmt.Errorf("mapped sector %d not inside destination region %s: %w", result, dst, ErrOutOfBounds)
	}
	return result, nil
}
