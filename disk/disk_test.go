package disk_test

/*
 These tests the exported functions
 We want to do full-in tests with files
*/

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/diskfs/go-diskgeom/backend"
	"github.com/diskfs/go-diskgeom/backend/file"
	"github.com/diskfs/go-diskgeom/disk"
	"github.com/diskfs/go-diskgeom/geom"
)

// tmpDisk returns a writable Disk over a fresh 10MB image
func tmpDisk(t *testing.T) *disk.Disk {
	t.Helper()
	size := int64(10 * 1024 * 1024)
	s, err := file.CreateFromPath(filepath.Join(t.TempDir(), "disk.img"), size)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	d := &disk.Disk{
		Backend:           s,
		Type:              disk.File,
		Size:              size,
		LogicalBlocksize:  512,
		PhysicalBlocksize: 512,
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestLength(t *testing.T) {
	d := tmpDisk(t)
	if d.Length() != 20480 {
		t.Errorf("length %d instead of 20480", d.Length())
	}
	if d.SectorSize() != 512 {
		t.Errorf("sector size %d instead of 512", d.SectorSize())
	}
	if (&disk.Disk{Size: 1024}).Length() != 0 {
		t.Error("disk without sector size has sectors")
	}
}

func TestBIOSGeometry(t *testing.T) {
	tests := []struct {
		size     int64
		geometry geom.CHS
		expected geom.CHS
	}{
		{10 * 1024 * 1024, geom.CHS{}, geom.CHS{Cylinders: 1, Heads: 255, Sectors: 63}},
		{1 << 30, geom.CHS{}, geom.CHS{Cylinders: 130, Heads: 255, Sectors: 63}},
		{1 << 30, geom.CHS{Cylinders: 2080, Heads: 16, Sectors: 63}, geom.CHS{Cylinders: 2080, Heads: 16, Sectors: 63}},
		// an incomplete override is ignored
		{1 << 30, geom.CHS{Heads: 16}, geom.CHS{Cylinders: 130, Heads: 255, Sectors: 63}},
	}
	for _, tt := range tests {
		d := &disk.Disk{Size: tt.size, LogicalBlocksize: 512, Geometry: tt.geometry}
		if diff := cmp.Diff(tt.expected, d.BIOSGeometry()); diff != "" {
			t.Errorf("BIOSGeometry() for size %d mismatch (-want +got):\n%s", tt.size, diff)
		}
	}
}

func TestRegion(t *testing.T) {
	d := tmpDisk(t)
	r, err := d.Region()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Start() != 0 || r.End() != d.Length()-1 {
		t.Errorf("region %s does not cover the disk", r)
	}

	buf := bytes.Repeat([]byte{0xa5}, 4*512)
	if err := r.Write(buf, 100, 4); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := r.Sync(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if err := r.SyncFast(); err != nil {
		t.Fatalf("fast sync failed: %v", err)
	}
	out := make([]byte, 4*512)
	if err := r.Read(out, 100, 4); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(buf, out) {
		t.Error("read back different data")
	}

	// the last sector of an image reads without error
	if err := r.Read(out, r.Length()-1, 1); err != nil {
		t.Errorf("reading last sector: %v", err)
	}
	res, err := r.Check(make([]byte, 64*512), 0, 1, r.Length(), nil)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if res.Bad {
		t.Errorf("clean image has bad sector %d", res.Sector)
	}
}

func TestReadOnly(t *testing.T) {
	p := filepath.Join(t.TempDir(), "disk.img")
	if err := os.WriteFile(p, make([]byte, 4096), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := file.OpenFromPath(p, true)
	if err != nil {
		t.Fatal(err)
	}
	d := &disk.Disk{Backend: s, Size: 4096, LogicalBlocksize: 512}
	defer d.Close()

	_, err = d.WriteAt([]byte{1}, 0)
	if !errors.Is(err, backend.ErrIncorrectOpenMode) {
		t.Errorf("mismatched error, actual %v, expected %v", err, backend.ErrIncorrectOpenMode)
	}
	// nothing to flush on a read-only disk
	if err := d.Sync(); err != nil {
		t.Errorf("unexpected sync error: %v", err)
	}
}

func TestNoBackend(t *testing.T) {
	d := &disk.Disk{Size: 4096, LogicalBlocksize: 512}
	if _, err := d.ReadAt(make([]byte, 1), 0); !errors.Is(err, disk.ErrNoBackend) {
		t.Errorf("mismatched read error %v", err)
	}
	if _, err := d.WriteAt(make([]byte, 1), 0); !errors.Is(err, disk.ErrNoBackend) {
		t.Errorf("mismatched write error %v", err)
	}
	if err := d.Sync(); !errors.Is(err, disk.ErrNoBackend) {
		t.Errorf("mismatched sync error %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("unexpected close error %v", err)
	}
}

func TestReadErrorLogged(t *testing.T) {
	d := tmpDisk(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	d.Logger = logger

	// past the end of the image
	if _, err := d.ReadAt(make([]byte, 512), d.Size); err == nil {
		t.Fatal("expected error reading past the end")
	}
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("read error was not logged")
	}
	if entry.Data["offset"] != d.Size {
		t.Errorf("logged offset %v instead of %d", entry.Data["offset"], d.Size)
	}
}

func TestDetermineType(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "disk_test")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dt, err := disk.DetermineType(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dt != disk.File {
		t.Errorf("type %v instead of %v", dt, disk.File)
	}

	dir, err := os.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer dir.Close()
	if _, err := disk.DetermineType(dir); err == nil {
		t.Error("directory accepted as a disk")
	}
}

func TestValidSectorSize(t *testing.T) {
	for size, valid := range map[int64]bool{512: true, 4096: true, 0: false, 256: false, 520: false, -512: false} {
		if disk.ValidSectorSize(size) != valid {
			t.Errorf("ValidSectorSize(%d) = %v", size, !valid)
		}
	}
}
