// Package diskgeom opens block devices and disk images as devices that
// regions, units and locations can be worked out on.
//
// A disk is opened with Open or created with Create. The whole disk, or any
// region of it, is then a geom.Region:
//
//	d, err := diskgeom.Open("/dev/sda", diskgeom.WithOpenMode(diskgeom.ReadOnly))
//	whole, err := d.Region()
//	loc, err := unit.Parse("50%", d)
//	s, err := unit.Format(d, whole.End())
//
// This does **not** read partition tables or filesystems. It works on the
// sectors of the disk directly.
package diskgeom

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/diskfs/go-diskgeom/backend"
	"github.com/diskfs/go-diskgeom/backend/file"
	"github.com/diskfs/go-diskgeom/disk"
	"github.com/diskfs/go-diskgeom/geom"
)

// OpenModeOption represents file open modes
type OpenModeOption int

const (
	// ReadOnly open file in read only mode
	ReadOnly OpenModeOption = iota
	// ReadWriteExclusive open file in read-write exclusive mode
	ReadWriteExclusive
)

func (m OpenModeOption) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWriteExclusive:
		return "read-write exclusive"
	}
	return "unknown"
}

// SectorSize represents the logical sector size of a disk image
type SectorSize int

const (
	// SectorSizeDefault lets the disk say. Images without a way to tell get 512 bytes.
	SectorSizeDefault SectorSize = 0
	// SectorSize512 override sector size to 512
	SectorSize512 SectorSize = 512
	// SectorSize4k override sector size to 4k
	SectorSize4k SectorSize = 4096

	defaultBlocksize = 512
)

type openOpts struct {
	mode       OpenModeOption
	sectorSize SectorSize
	geometry   geom.CHS
	logger     logrus.FieldLogger
}

// OpenOpt is an option for Open and OpenBackend
type OpenOpt func(o *openOpts) error

// WithOpenMode sets the opening mode to the requested mode of type OpenModeOption.
// Default is ReadWriteExclusive, i.e. os.O_RDWR | os.O_EXCL
func WithOpenMode(mode OpenModeOption) OpenOpt {
	return func(o *openOpts) error {
		if mode != ReadOnly && mode != ReadWriteExclusive {
			return fmt.Errorf("unknown open mode %d", mode)
		}
		o.mode = mode
		return nil
	}
}

// WithSectorSize opens the disk with the given logical sector size. Block
// devices reject a size that differs from what the kernel reports.
func WithSectorSize(sectorSize SectorSize) OpenOpt {
	return func(o *openOpts) error {
		if sectorSize != SectorSizeDefault && !disk.ValidSectorSize(int64(sectorSize)) {
			return disk.NewInvalidSectorSizeError("logical", int64(sectorSize))
		}
		o.sectorSize = sectorSize
		return nil
	}
}

// WithGeometry sets the BIOS geometry used for cylinder and CHS units
func WithGeometry(chs geom.CHS) OpenOpt {
	return func(o *openOpts) error {
		if !chs.Valid() {
			return fmt.Errorf("invalid geometry %d,%d,%d: %w", chs.Cylinders, chs.Heads, chs.Sectors, geom.ErrInvalidArgument)
		}
		o.geometry = chs
		return nil
	}
}

// WithLogger logs disk operations to logger
func WithLogger(logger logrus.FieldLogger) OpenOpt {
	return func(o *openOpts) error {
		o.logger = logger
		return nil
	}
}

func applyOpts(opts []OpenOpt) (*openOpts, error) {
	o := &openOpts{mode: ReadWriteExclusive}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func initDisk(b backend.Storage, o *openOpts) (*disk.Disk, error) {
	var (
		lblksize = int64(defaultBlocksize)
		pblksize = int64(defaultBlocksize)
	)

	diskType, err := disk.DetermineType(b)
	if err != nil {
		return nil, err
	}
	size, err := backend.Size(b)
	if err != nil {
		return nil, fmt.Errorf("could not get size of disk: %w", err)
	}
	if size <= 0 {
		return nil, errors.New("disk has no size")
	}

	if diskType == disk.Device {
		osFile, err := b.Sys()
		if err != nil {
			return nil, fmt.Errorf("block device is not an OS file: %w", err)
		}
		lblksize, pblksize, err = getSectorSizes(osFile)
		if err != nil {
			return nil, fmt.Errorf("unable to get block sizes for device %s: %w", osFile.Name(), err)
		}
		if o.sectorSize != SectorSizeDefault && int64(o.sectorSize) != lblksize {
			return nil, fmt.Errorf("requested sector size %d but device %s has %d", o.sectorSize, osFile.Name(), lblksize)
		}
	} else if o.sectorSize != SectorSizeDefault {
		lblksize = int64(o.sectorSize)
		pblksize = lblksize
	}
	if !disk.ValidSectorSize(lblksize) {
		return nil, disk.NewInvalidSectorSizeError("logical", lblksize)
	}
	if size < lblksize {
		return nil, fmt.Errorf("disk of %d bytes is smaller than one %d byte sector", size, lblksize)
	}

	d := &disk.Disk{
		Backend:           b,
		Type:              diskType,
		Size:              size,
		LogicalBlocksize:  lblksize,
		PhysicalBlocksize: pblksize,
		Geometry:          o.geometry,
		Logger:            o.logger,
	}
	if o.logger != nil {
		o.logger.WithFields(logrus.Fields{
			"type":        diskType,
			"size":        size,
			"sector-size": lblksize,
			"read-only":   b.ReadOnly(),
		}).Debug("opened disk")
	}
	return d, nil
}

// OpenBackend opens a disk over an already opened backend
func OpenBackend(b backend.Storage, opts ...OpenOpt) (*disk.Disk, error) {
	o, err := applyOpts(opts)
	if err != nil {
		return nil, err
	}
	return initDisk(b, o)
}

// Open a Disk from a path to a device in read-write exclusive mode
// Should pass a path to a block device e.g. /dev/sda or a path to a file /tmp/foo.img
// The provided device must exist at the time you call Open().
// Use OpenOpt to control options, such as sector size or open mode.
func Open(device string, opts ...OpenOpt) (*disk.Disk, error) {
	o, err := applyOpts(opts)
	if err != nil {
		return nil, err
	}
	b, err := file.OpenFromPath(device, o.mode == ReadOnly)
	if err != nil {
		return nil, err
	}
	d, err := initDisk(b, o)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return d, nil
}

// Create a Disk from a path to an image file of size bytes.
// The provided file must not exist at the time you call Create()
func Create(device string, size int64, sectorSize SectorSize, opts ...OpenOpt) (*disk.Disk, error) {
	o, err := applyOpts(append([]OpenOpt{WithSectorSize(sectorSize)}, opts...))
	if err != nil {
		return nil, err
	}
	b, err := file.CreateFromPath(device, size)
	if err != nil {
		return nil, err
	}
	d, err := initDisk(b, o)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return d, nil
}
