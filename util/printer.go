// Package util holds small helpers for showing raw disk contents
package util

import (
	"fmt"
	"io"
	"strings"
)

// DumpByteSlice writes b in hex and ASCII, bytesPerRow bytes to a row, like
// xxd. Each row starts with the position of its first byte, counted from
// base, in hex and decimal. Rows that are all zero after the first one are
// collapsed into a single "*".
func DumpByteSlice(w io.Writer, b []byte, base int64, bytesPerRow int) error {
	if bytesPerRow <= 0 {
		return fmt.Errorf("invalid row width %d", bytesPerRow)
	}
	var (
		row     strings.Builder
		skipped bool
	)
	for first := 0; first < len(b); first += bytesPerRow {
		last := min(first+bytesPerRow, len(b))
		if first > 0 && allZero(b[first:last]) && allZero(b[first-bytesPerRow:first]) {
			if !skipped {
				if _, err := io.WriteString(w, "*\n"); err != nil {
					return err
				}
				skipped = true
			}
			continue
		}
		skipped = false

		row.Reset()
		pos := base + int64(first)
		fmt.Fprintf(&row, "%08x %10d :", pos, pos)
		for j := first; j < first+bytesPerRow; j++ {
			// extra spacing every 8 bytes
			if (j-first)%8 == 0 {
				row.WriteByte(' ')
			}
			if j < last {
				fmt.Fprintf(&row, " %02x", b[j])
			} else {
				row.WriteString("   ")
			}
		}
		row.WriteString("  ")
		for _, c := range b[first:last] {
			if c < 32 || c > 126 {
				c = '.'
			}
			row.WriteByte(c)
		}
		row.WriteByte('\n')
		if _, err := io.WriteString(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
