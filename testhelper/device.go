// Package testhelper provides stub devices for tests
package testhelper

import (
	"fmt"

	"github.com/diskfs/go-diskgeom/geom"
)

type reader func(b []byte, offset int64) (int, error)
type writer func(b []byte, offset int64) (int, error)

// DeviceImpl implements geom.Device, io.ReaderAt, io.WriterAt and geom.Syncer
// with stubbed I/O, so tests can inject failures at chosen offsets
type DeviceImpl struct {
	Sectors    int64
	Sectorsize int64
	Reader     reader
	Writer     writer
	Syncs      int
	FastSyncs  int
}

func (d *DeviceImpl) Length() int64 {
	return d.Sectors
}

func (d *DeviceImpl) SectorSize() int64 {
	return d.Sectorsize
}

// ReadAt read at a particular offset
func (d *DeviceImpl) ReadAt(b []byte, offset int64) (int, error) {
	if d.Reader == nil {
		return 0, fmt.Errorf("DeviceImpl has no Reader")
	}
	return d.Reader(b, offset)
}

// WriteAt write at a particular offset
func (d *DeviceImpl) WriteAt(b []byte, offset int64) (int, error) {
	if d.Writer == nil {
		return 0, fmt.Errorf("DeviceImpl has no Writer")
	}
	return d.Writer(b, offset)
}

func (d *DeviceImpl) Sync() error {
	d.Syncs++
	return nil
}

func (d *DeviceImpl) SyncFast() error {
	d.FastSyncs++
	return nil
}

// CHSDeviceImpl is a DeviceImpl with a BIOS geometry
type CHSDeviceImpl struct {
	DeviceImpl
	Geometry geom.CHS
}

func (d *CHSDeviceImpl) BIOSGeometry() geom.CHS {
	return d.Geometry
}

// NewMemDevice returns a DeviceImpl backed by an in-memory buffer of sectors*sectorSize bytes
func NewMemDevice(sectors, sectorSize int64) (*DeviceImpl, []byte) {
	data := make([]byte, sectors*sectorSize)
	d := &DeviceImpl{
		Sectors:    sectors,
		Sectorsize: sectorSize,
		Reader: func(b []byte, offset int64) (int, error) {
			if offset < 0 || offset+int64(len(b)) > int64(len(data)) {
				return 0, fmt.Errorf("read of %d bytes at %d past end of device", len(b), offset)
			}
			return copy(b, data[offset:]), nil
		},
		Writer: func(b []byte, offset int64) (int, error) {
			if offset < 0 || offset+int64(len(b)) > int64(len(data)) {
				return 0, fmt.Errorf("write of %d bytes at %d past end of device", len(b), offset)
			}
			return copy(data[offset:], b), nil
		},
	}
	return d, data
}

// SizeOnly is a Device that can neither be read nor written
type SizeOnly struct {
	Sectors    int64
	Sectorsize int64
}

func (d *SizeOnly) Length() int64 {
	return d.Sectors
}

func (d *SizeOnly) SectorSize() int64 {
	return d.Sectorsize
}
