package zipstore

const (
	fileHeaderSignature      = 0x04034b50
	directoryHeaderSignature = 0x02014b50
	directoryEndSignature    = 0x06054b50
	fileHeaderLen            = 30 // + filename
	directoryHeaderLen       = 46 // + filename
	directoryEndLen          = 22

	zipVersion10   = 10   // 1.0, stored entries only
	creatorVersion = 0x3f // 6.3, MS-DOS host
	methodStore    = 0
	flagUTF8       = 0x800
	attrArchive    = 0x20

	// Limits for non zip64 archives.
	uint16max = (1 << 16) - 1
	uint32max = (1 << 32) - 1
)

// entryHeader holds the fields shared by an entry's local file header and
// its central directory record.
type entryHeader struct {
	name    []byte
	flags   uint16
	modTime uint16
	modDate uint16
	crc32   uint32
	size    uint32
	offset  uint32 // of the local file header
}

func (h *entryHeader) localHeader() []byte {
	w := newFieldWriter(fileHeaderLen)
	w.putUint32(0, fileHeaderSignature)
	w.putUint16(4, zipVersion10)
	w.putUint16(6, h.flags)
	w.putUint16(8, methodStore)
	w.putUint16(10, h.modTime)
	w.putUint16(12, h.modDate)
	w.putUint32(14, h.crc32)
	w.putUint32(18, h.size) // compressed
	w.putUint32(22, h.size) // uncompressed
	w.putUint16(26, uint16(len(h.name)))
	w.putUint16(28, 0) // extra field length
	return w
}

func (h *entryHeader) directoryHeader() []byte {
	w := newFieldWriter(directoryHeaderLen)
	w.putUint32(0, directoryHeaderSignature)
	w.putUint16(4, creatorVersion)
	w.putUint16(6, zipVersion10)
	w.putUint16(8, h.flags)
	w.putUint16(10, methodStore)
	w.putUint16(12, h.modTime)
	w.putUint16(14, h.modDate)
	w.putUint32(16, h.crc32)
	w.putUint32(20, h.size)
	w.putUint32(24, h.size)
	w.putUint16(28, uint16(len(h.name)))
	w.putUint16(30, 0) // extra field length
	w.putUint16(32, 0) // comment length
	w.putUint16(34, 0) // disk number start
	w.putUint16(36, 0) // internal attributes
	w.putUint32(38, attrArchive)
	w.putUint32(42, h.offset)
	return w
}

type directoryEnd struct {
	records uint16
	size    uint32
	offset  uint32
}

func (d *directoryEnd) encode() []byte {
	w := newFieldWriter(directoryEndLen)
	w.putUint32(0, directoryEndSignature)
	w.putUint16(4, 0) // number of this disk
	w.putUint16(6, 0) // disk where the directory starts
	w.putUint16(8, d.records)
	w.putUint16(10, d.records)
	w.putUint32(12, d.size)
	w.putUint32(16, d.offset)
	w.putUint16(20, 0) // comment length
	return w
}
