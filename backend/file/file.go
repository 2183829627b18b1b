// Package file implements backend.Storage over an image file or a block device node
package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/diskfs/go-diskgeom/backend"
)

type rawBackend struct {
	storage  fs.File
	readOnly bool
}

// backend.Storage interface guard
var _ backend.Storage = (*rawBackend)(nil)

// New wraps an already open file. Reads and seeks need the file to implement
// io.ReaderAt and io.Seeker, writes need io.WriterAt.
func New(f fs.File, readOnly bool) backend.Storage {
	return &rawBackend{
		storage:  f,
		readOnly: readOnly,
	}
}

// OpenFromPath opens an existing block device, e.g. /dev/sda, or image file.
// Without readOnly the device is opened exclusively.
func OpenFromPath(pathName string, readOnly bool) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass device or file name")
	}
	if _, err := os.Stat(pathName); err != nil {
		return nil, fmt.Errorf("provided device/file %s: %w", pathName, err)
	}

	openMode := os.O_RDONLY
	if !readOnly {
		openMode = os.O_RDWR | os.O_EXCL
	}
	f, err := os.OpenFile(pathName, openMode, 0o600)
	if err != nil {
		return nil, fmt.Errorf("could not open device %s with mode %v: %w", pathName, openMode, err)
	}
	return New(f, readOnly), nil
}

// CreateFromPath creates a sparse image file of size bytes. The file must not
// exist yet.
func CreateFromPath(pathName string, size int64) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass image file name")
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid image size %d", size)
	}
	f, err := os.OpenFile(pathName, os.O_RDWR|os.O_EXCL|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("could not create image %s: %w", pathName, err)
	}
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("could not expand image %s to size %d: %w", pathName, size, err)
	}
	return New(f, false), nil
}

func (f *rawBackend) Sys() (*os.File, error) {
	if osFile, ok := f.storage.(*os.File); ok {
		return osFile, nil
	}
	return nil, backend.ErrNotSuitable
}

func (f *rawBackend) Writable() (backend.WritableFile, error) {
	if f.readOnly {
		return nil, backend.ErrIncorrectOpenMode
	}
	if rwFile, ok := f.storage.(backend.WritableFile); ok {
		return rwFile, nil
	}
	return nil, backend.ErrNotSuitable
}

func (f *rawBackend) ReadOnly() bool {
	return f.readOnly
}

func (f *rawBackend) Stat() (fs.FileInfo, error) {
	return f.storage.Stat()
}

func (f *rawBackend) Read(b []byte) (int, error) {
	return f.storage.Read(b)
}

func (f *rawBackend) Close() error {
	return f.storage.Close()
}

func (f *rawBackend) ReadAt(p []byte, off int64) (int, error) {
	if readerAt, ok := f.storage.(io.ReaderAt); ok {
		return readerAt.ReadAt(p, off)
	}
	return 0, backend.ErrNotSuitable
}

func (f *rawBackend) Seek(offset int64, whence int) (int64, error) {
	if seeker, ok := f.storage.(io.Seeker); ok {
		return seeker.Seek(offset, whence)
	}
	return 0, backend.ErrNotSuitable
}
