package disk

import (
	"fmt"
	iofs "io/fs"
	"os"
)

// DetermineType tells regular image files from block devices
func DetermineType(f iofs.File) (Type, error) {
	info, err := f.Stat()
	if err != nil {
		return Unknown, fmt.Errorf("could not stat file: %w", err)
	}
	mode := info.Mode()
	switch {
	case mode.IsRegular():
		return File, nil
	case mode&os.ModeDevice != 0:
		return Device, nil
	}
	return Unknown, fmt.Errorf("device %s is neither a block device nor a regular file", info.Name())
}

// ValidSectorSize reports whether size is usable as a sector size
func ValidSectorSize(size int64) bool {
	return size >= 512 && size&(size-1) == 0
}
