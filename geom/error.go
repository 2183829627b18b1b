package geom

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is matched by every error produced when a region would break its invariant
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrOutOfBounds is matched when a sector or I/O window falls outside a region
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrInvalidArgument is returned for unusable buffers or granularity
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotSuitable is returned when the device cannot perform the requested I/O
	ErrNotSuitable = errors.New("device does not support the operation")
)

// GeometryError describes a start/length pair that cannot form a region on a device
type GeometryError struct {
	start        int64
	length       int64
	deviceLength int64
	reason       string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s (start sector=%d length=%d device length=%d)", e.reason, e.start, e.length, e.deviceLength)
}

// Is makes the error match ErrInvalidGeometry
func (e *GeometryError) Is(target error) bool {
	return target == ErrInvalidGeometry
}

func NewGeometryError(start, length, deviceLength int64, reason string) *GeometryError {
	return &GeometryError{
		start:        start,
		length:       length,
		deviceLength: deviceLength,
		reason:       reason,
	}
}

// BoundsError describes a sector window that does not fit in a region
type BoundsError struct {
	offset int64
	count  int64
	length int64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("sectors %d..%d outside region of length %d", e.offset, e.offset+e.count, e.length)
}

// Is makes the error match ErrOutOfBounds
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

func NewBoundsError(offset, count, length int64) *BoundsError {
	return &BoundsError{
		offset: offset,
		count:  count,
		length: length,
	}
}
