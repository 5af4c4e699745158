package zipstore

import "encoding/binary"

// fieldWriter fills a fixed-size record with little-endian integers at
// absolute byte offsets.
type fieldWriter []byte

func newFieldWriter(size int) fieldWriter {
	return make(fieldWriter, size)
}

func (w fieldWriter) putUint16(offset int, v uint16) {
	binary.LittleEndian.PutUint16(w[offset:], v)
}

func (w fieldWriter) putUint32(offset int, v uint32) {
	binary.LittleEndian.PutUint32(w[offset:], v)
}
