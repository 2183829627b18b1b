package geom

import (
	"fmt"
	"io"
)

// checkWindow validates a window of count sectors beginning offset sectors into the region
func (r *Region) checkWindow(offset, count int64) error {
	if offset < 0 || count < 0 || offset > r.length-count {
		return NewBoundsError(offset, count, r.length)
	}
	return nil
}

// window returns the byte offset and length on the device of a validated sector window
func (r *Region) window(buf []byte, offset, count int64) (int64, int64, error) {
	if err := r.checkWindow(offset, count); err != nil {
		return 0, 0, err
	}
	sectorSize := r.dev.SectorSize()
	size := count * sectorSize
	if int64(len(buf)) < size {
		return 0, 0, fmt.Errorf("buffer of %d bytes cannot hold %d sectors of %d bytes: %w", len(buf), count, sectorSize, ErrInvalidArgument)
	}
	return (r.start + offset) * sectorSize, size, nil
}

// Read reads count sectors, beginning offset sectors into the region, into buf.
// buf must hold at least count sectors.
func (r *Region) Read(buf []byte, offset, count int64) error {
	pos, size, err := r.window(buf, offset, count)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	reader, ok := r.dev.(io.ReaderAt)
	if !ok {
		return fmt.Errorf("read from region %s: %w", r, ErrNotSuitable)
	}
	n, err := reader.ReadAt(buf[:size], pos)
	if err != nil && !(err == io.EOF && int64(n) == size) {
		return fmt.Errorf("error reading %d sectors at sector %d: %w", count, r.start+offset, err)
	}
	if int64(n) != size {
		return fmt.Errorf("read %d bytes instead of %d at sector %d", n, size, r.start+offset)
	}
	return nil
}

// Write writes count sectors from buf, beginning offset sectors into the region
func (r *Region) Write(buf []byte, offset, count int64) error {
	pos, size, err := r.window(buf, offset, count)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	writer, ok := r.dev.(io.WriterAt)
	if !ok {
		return fmt.Errorf("write to region %s: %w", r, ErrNotSuitable)
	}
	n, err := writer.WriteAt(buf[:size], pos)
	if err != nil {
		return fmt.Errorf("error writing %d sectors at sector %d: %w", count, r.start+offset, err)
	}
	if int64(n) != size {
		return fmt.Errorf("wrote %d bytes instead of %d at sector %d", n, size, r.start+offset)
	}
	return nil
}

// Sync flushes the underlying device, if it supports flushing
func (r *Region) Sync() error {
	if s, ok := r.dev.(Syncer); ok {
		return s.Sync()
	}
	return nil
}

// SyncFast flushes the underlying device without waiting for lower caches
func (r *Region) SyncFast() error {
	if s, ok := r.dev.(Syncer); ok {
		return s.SyncFast()
	}
	return nil
}
