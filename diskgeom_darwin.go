package diskgeom

// DKIOCGETBLOCKSIZE and DKIOCGETPHYSICALBLOCKSIZE from <sys/disk.h>, not
// exported by x/sys/unix
const (
	logicalSectorSizeReq  = 0x40046418
	physicalSectorSizeReq = 0x4004644D
)
