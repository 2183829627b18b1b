package diskgeom

import "golang.org/x/sys/unix"

const (
	logicalSectorSizeReq  = unix.BLKSSZGET
	physicalSectorSizeReq = unix.BLKPBSZGET
)
