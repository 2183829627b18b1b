// Package disk provides a geom.Device over a disk image or block device.
//
// A Disk reports its size in logical sectors, a BIOS cylinder/head/sector
// geometry and the raw I/O and sync primitives geom.Region builds on. Regions
// of a Disk are created with Region or geom.New.
package disk

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/diskfs/go-diskgeom/backend"
	"github.com/diskfs/go-diskgeom/geom"
)

// Disk is a reference to a single disk block device or image that has been Create() or Open()
type Disk struct {
	Backend           backend.Storage
	Type              Type
	Size              int64
	LogicalBlocksize  int64
	PhysicalBlocksize int64
	// Geometry overrides the BIOS geometry derived from the disk size
	Geometry geom.CHS
	Logger   logrus.FieldLogger
}

// Type represents the type of disk this is
type Type int

const (
	// Unknown is a backend that is neither a regular file nor a device
	Unknown Type = iota
	// File is a file-based disk image
	File
	// Device is an OS-managed block device
	Device
)

func (t Type) String() string {
	switch t {
	case File:
		return "file"
	case Device:
		return "device"
	}
	return "unknown"
}

const (
	// fallback BIOS geometry when the disk does not report one
	defaultHeads   = 255
	defaultSectors = 63
)

var (
	_ geom.CHSDevice = (*Disk)(nil)
	_ geom.Syncer    = (*Disk)(nil)
	_ io.ReaderAt    = (*Disk)(nil)
	_ io.WriterAt    = (*Disk)(nil)
)

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

func (d *Disk) log() logrus.FieldLogger {
	if d.Logger != nil {
		return d.Logger
	}
	return discard
}

// Length is the number of logical sectors on the disk
func (d *Disk) Length() int64 {
	if d.LogicalBlocksize <= 0 {
		return 0
	}
	return d.Size / d.LogicalBlocksize
}

// SectorSize is the logical sector size in bytes
func (d *Disk) SectorSize() int64 {
	return d.LogicalBlocksize
}

// BIOSGeometry returns Geometry when it is set. Otherwise it is the usual
// 255 heads of 63 sectors, with as many whole cylinders as fit and at least one.
func (d *Disk) BIOSGeometry() geom.CHS {
	if d.Geometry.Valid() {
		return d.Geometry
	}
	chs := geom.CHS{Heads: defaultHeads, Sectors: defaultSectors}
	chs.Cylinders = max(d.Length()/chs.CylinderSize(), 1)
	return chs
}

// Region returns the region covering the whole disk
func (d *Disk) Region() (*geom.Region, error) {
	return geom.New(d, 0, d.Length())
}

// ReadAt reads len(p) bytes from byte offset off
func (d *Disk) ReadAt(p []byte, off int64) (int, error) {
	if d.Backend == nil {
		return 0, ErrNoBackend
	}
	n, err := d.Backend.ReadAt(p, off)
	if err != nil && !(err == io.EOF && n == len(p)) {
		d.log().WithFields(logrus.Fields{"offset": off, "count": len(p), "read": n}).WithError(err).Debug("read failed")
	}
	return n, err
}

// WriteAt writes p at byte offset off. It fails if the disk was opened read-only.
func (d *Disk) WriteAt(p []byte, off int64) (int, error) {
	if d.Backend == nil {
		return 0, ErrNoBackend
	}
	w, err := d.Backend.Writable()
	if err != nil {
		return 0, err
	}
	n, err := w.WriteAt(p, off)
	if err != nil {
		d.log().WithFields(logrus.Fields{"offset": off, "count": len(p), "written": n}).WithError(err).Debug("write failed")
		return n, err
	}
	if n != len(p) {
		return n, NewIncompleteIOError("write", off, n, len(p))
	}
	return n, nil
}

// Sync flushes written data and metadata to stable storage
func (d *Disk) Sync() error {
	f, err := d.osFile()
	if err != nil || f == nil {
		return err
	}
	d.log().Debug("syncing disk")
	if err := f.Sync(); err != nil {
		return fmt.Errorf("could not sync disk: %w", err)
	}
	return nil
}

// SyncFast flushes written data without waiting for metadata where the
// platform allows it
func (d *Disk) SyncFast() error {
	f, err := d.osFile()
	if err != nil || f == nil {
		return err
	}
	d.log().Debug("syncing disk data")
	if err := syncData(f); err != nil {
		return fmt.Errorf("could not sync disk data: %w", err)
	}
	return nil
}

// osFile returns nil without an error for a read-only disk, which has nothing
// to sync, and for backends that are not OS files
func (d *Disk) osFile() (*os.File, error) {
	if d.Backend == nil {
		return nil, ErrNoBackend
	}
	if d.Backend.ReadOnly() {
		return nil, nil
	}
	f, err := d.Backend.Sys()
	if errors.Is(err, backend.ErrNotSuitable) {
		return nil, nil
	}
	return f, err
}

// Close the underlying storage
func (d *Disk) Close() error {
	if d.Backend == nil {
		return nil
	}
	if err := d.Backend.Close(); err != nil {
		return fmt.Errorf("could not close backend: %w", err)
	}
	return nil
}
