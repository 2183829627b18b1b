package unit

import (
	"fmt"
	"math"
	"strconv"

	"github.com/diskfs/go-diskgeom/geom"
	"github.com/diskfs/go-diskgeom/natmath"
)

// dblEpsilon nudges values that sit just below a decimal boundary after division
const dblEpsilon = 0x1p-52

// compactUnit picks the largest decimal unit of which there are at least ten
func compactUnit(byteOffset int64) Unit {
	switch {
	case byteOffset >= 10*TerabyteSize:
		return Terabyte
	case byteOffset >= 10*GigabyteSize:
		return Gigabyte
	case byteOffset >= 10*MegabyteSize:
		return Megabyte
	case byteOffset >= 10*KilobyteSize:
		return Kilobyte
	}
	return Byte
}

// FormatCustomByte describes the byte offset on dev in unit u.
//
// Sectors, bytes and cylinders are whole numbers rounded down, "2048s". CHS is
// "cylinder,head,sector". Every other unit is printed with two decimals below
// 10, one below 100 and none above, "1.50GB", "15.0%", "512kB".
func FormatCustomByte(dev geom.Device, byteOffset int64, u Unit) (string, error) {
	switch u {
	case CHS:
		chs, err := biosGeometry(dev)
		if err != nil {
			return "", err
		}
		sector := byteOffset / dev.SectorSize()
		return fmt.Sprintf("%d,%d,%d", sector/chs.Sectors/chs.Heads, (sector/chs.Sectors)%chs.Heads, sector%chs.Sectors), nil
	case Sector, Byte, Cylinder:
		size, err := Size(dev, u)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(byteOffset/size, 10) + u.Name(), nil
	case Compact:
		u = compactUnit(byteOffset)
	}

	size, err := Size(dev, u)
	if err != nil {
		return "", err
	}
	d := float64(byteOffset) / float64(size) * (1 + dblEpsilon)
	var w float64
	switch {
	case d < 10:
		w = d + 0.005
	case d < 100:
		w = d + 0.05
	default:
		w = d + 0.5
	}
	precision := 0
	switch {
	case w < 10:
		precision = 2
	case w < 100:
		precision = 1
	}
	return strconv.FormatFloat(d, 'f', precision, 64) + u.Name(), nil
}

// FormatCustom describes sector on dev in unit u
func FormatCustom(dev geom.Device, sector int64, u Unit) (string, error) {
	ss := dev.SectorSize()
	if ss > 0 && (sector > math.MaxInt64/ss || sector < math.MinInt64/ss) {
		return "", fmt.Errorf("sector %d of %d bytes has no byte offset: %w", sector, ss, natmath.ErrOverflow)
	}
	return FormatCustomByte(dev, sector*ss, u)
}
