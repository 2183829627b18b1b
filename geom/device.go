package geom

// Device is the sector space a Region indexes. A Region never opens, probes
// or changes its Device; it only asks for its size.
type Device interface {
	// Length returns the number of sectors on the device
	Length() int64
	// SectorSize returns the logical sector size in bytes
	SectorSize() int64
}

// CHS is a cylinder/head/sector translation of a device
type CHS struct {
	Cylinders int64
	Heads     int64
	Sectors   int64
}

// CylinderSize returns the number of sectors in one cylinder
func (c CHS) CylinderSize() int64 {
	return c.Heads * c.Sectors
}

// Valid reports whether every component of the geometry is positive
func (c CHS) Valid() bool {
	return c.Cylinders > 0 && c.Heads > 0 && c.Sectors > 0
}

// CHSDevice is a Device that knows its BIOS geometry
type CHSDevice interface {
	Device
	BIOSGeometry() CHS
}

// Syncer is a Device that can flush written data to stable storage
type Syncer interface {
	Sync() error
	// SyncFast flushes without waiting for caches below the device
	SyncFast() error
}
