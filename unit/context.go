package unit

import (
	"fmt"
	"sync"

	"github.com/diskfs/go-diskgeom/geom"
)

// Context holds a default unit for formatting and parsing. It is safe for
// concurrent use.
type Context struct {
	mu  sync.RWMutex
	def Unit
}

// NewContext returns a Context whose default unit is Compact
func NewContext() *Context {
	return &Context{def: Compact}
}

// Default returns the default unit
func (c *Context) Default() Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.def
}

// SetDefault changes the default unit
func (c *Context) SetDefault(u Unit) error {
	if !u.Valid() {
		return fmt.Errorf("%v: %w", u, ErrInvalidUnit)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.def = u
	return nil
}

// Format describes sector on dev in the default unit
func (c *Context) Format(dev geom.Device, sector int64) (string, error) {
	return FormatCustom(dev, sector, c.Default())
}

// FormatByte describes the byte offset on dev in the default unit
func (c *Context) FormatByte(dev geom.Device, byteOffset int64) (string, error) {
	return FormatCustomByte(dev, byteOffset, c.Default())
}

// Parse reads a location on dev, using the default unit for bare numbers
func (c *Context) Parse(str string, dev geom.Device) (Location, error) {
	return c.ParseCustom(str, dev, c.Default())
}

// std is the process-wide context behind the package-level functions
var std = NewContext()

// Default returns the process-wide default unit
func Default() Unit {
	return std.Default()
}

// SetDefault changes the process-wide default unit
func SetDefault(u Unit) error {
	return std.SetDefault(u)
}

// Format describes sector on dev in the process-wide default unit
func Format(dev geom.Device, sector int64) (string, error) {
	return std.Format(dev, sector)
}

// FormatByte describes the byte offset on dev in the process-wide default unit
func FormatByte(dev geom.Device, byteOffset int64) (string, error) {
	return std.FormatByte(dev, byteOffset)
}

// Parse reads a location on dev, using the process-wide default unit for bare numbers
func Parse(str string, dev geom.Device) (Location, error) {
	return std.Parse(str, dev)
}

// ParseCustom reads a location on dev, using u for bare numbers
func ParseCustom(str string, dev geom.Device, u Unit) (Location, error) {
	return std.ParseCustom(str, dev, u)
}
