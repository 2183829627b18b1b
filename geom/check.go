package geom

import (
	"fmt"
	"io"
)

// Progress is called by Check with the number of sectors verified so far and
// the total being checked. Returning false stops the check at the current
// buffer boundary.
type Progress func(done, total int64) bool

// CheckResult is the outcome of Check
type CheckResult struct {
	// Bad is set when an unreadable sector was found
	Bad bool
	// Sector is the offset into the region of the first unreadable chunk. Only meaningful when Bad is set.
	Sector int64
	// Verified is the number of sectors, counted from the requested offset, known to be readable
	Verified int64
	// Cancelled is set when progress asked to stop
	Cancelled bool
}

// Check verifies that count sectors beginning offset sectors into the region
// can be read. Sectors are read a buffer at a time; when a buffer read fails
// the buffer is read again in chunks of granularity sectors to locate the
// first bad chunk. buf sets the buffer size and must hold at least one
// sector. progress may be nil.
//
// I/O failures are reported in the result, not as an error. An error is only
// returned for invalid arguments or a device that cannot be read at all.
func (r *Region) Check(buf []byte, offset, granularity, count int64, progress Progress) (CheckResult, error) {
	var result CheckResult
	sectorSize := r.dev.SectorSize()
	bufSectors := int64(len(buf)) / sectorSize
	switch {
	case bufSectors < 1:
		return result, fmt.Errorf("check buffer of %d bytes is smaller than a sector: %w", len(buf), ErrInvalidArgument)
	case granularity < 1:
		return result, fmt.Errorf("check granularity %d must be positive: %w", granularity, ErrInvalidArgument)
	}
	if err := r.checkWindow(offset, count); err != nil {
		return result, err
	}
	if _, ok := r.dev.(io.ReaderAt); !ok {
		return result, fmt.Errorf("check region %s: %w", r, ErrNotSuitable)
	}

	end := offset + count
	for group := offset; group < end; group += bufSectors {
		if progress != nil && !progress(group-offset, count) {
			result.Cancelled = true
			result.Verified = group - offset
			return result, nil
		}
		readLen := min(bufSectors, end-group)
		if err := r.Read(buf, group, readLen); err == nil {
			continue
		}
		for i := group; i < group+readLen; i += granularity {
			n := min(granularity, group+readLen-i)
			if err := r.Read(buf, i, n); err != nil {
				result.Bad = true
				result.Sector = i
				result.Verified = i - offset
				return result, nil
			}
		}
		// the buffer failed as a whole but every chunk read back, so accept it
	}
	result.Verified = count
	if progress != nil {
		progress(count, count)
	}
	return result, nil
}
