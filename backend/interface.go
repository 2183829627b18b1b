// Package backend abstracts the storage underneath a Disk: a disk image file
// or an OS block device.
package backend

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

var (
	ErrIncorrectOpenMode = errors.New("disk file or device not open for write")
	ErrNotSuitable       = errors.New("backing file is not suitable")
)

// File is the read side of a storage
type File interface {
	fs.File
	io.ReaderAt
	io.Seeker
}

// WritableFile is a File that can also be written at arbitrary offsets
type WritableFile interface {
	File
	io.WriterAt
}

// Storage is everything a Disk needs from its backing file
type Storage interface {
	File
	// Sys returns the OS file for ioctl and sync calls
	Sys() (*os.File, error)
	// Writable returns the file for write operations, failing if the storage was opened read-only
	Writable() (WritableFile, error)
	// ReadOnly reports whether the storage was opened without write access
	ReadOnly() bool
}

// Size returns the size of the storage in bytes. Block devices report a zero
// size through Stat, so the end is found by seeking.
func Size(s Storage) (int64, error) {
	info, err := s.Stat()
	if err != nil {
		return 0, err
	}
	if info.Mode().IsRegular() {
		return info.Size(), nil
	}
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}
