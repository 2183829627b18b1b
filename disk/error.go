package disk

import (
	"errors"
	"fmt"
)

// ErrNoBackend is returned for I/O on a Disk without storage behind it
var ErrNoBackend = errors.New("disk has no backend storage")

// IncompleteIOError is a transfer that moved fewer bytes than asked without
// the storage reporting an error
type IncompleteIOError struct {
	op       string
	offset   int64
	done     int
	expected int
}

func (e *IncompleteIOError) Error() string {
	return fmt.Sprintf("incomplete %s at offset %d, %d of %d bytes", e.op, e.offset, e.done, e.expected)
}

func NewIncompleteIOError(op string, offset int64, done, expected int) *IncompleteIOError {
	return &IncompleteIOError{
		op:       op,
		offset:   offset,
		done:     done,
		expected: expected,
	}
}

// InvalidSectorSizeError is a logical or physical sector size that cannot be used
type InvalidSectorSizeError struct {
	kind string
	size int64
}

func (e *InvalidSectorSizeError) Error() string {
	return fmt.Sprintf("invalid %s sector size %d, must be a power of two of at least 512", e.kind, e.size)
}

func NewInvalidSectorSizeError(kind string, size int64) *InvalidSectorSizeError {
	return &InvalidSectorSizeError{
		kind: kind,
		size: size,
	}
}
