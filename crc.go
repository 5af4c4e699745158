package zipstore

// crc32Poly is the reversed IEEE 802.3 polynomial used by ZIP and PNG.
const crc32Poly = 0xedb88320

// Checksum returns the CRC-32 of data as stored in ZIP headers.
// The result is identical to hash/crc32.ChecksumIEEE.
func Checksum(data []byte) uint32 {
	crc := ^uint32(0)
	for _, b := range data {
		crc ^= uint32(b)
		for i := 0; i < 8; i++ {
			crc = (crc >> 1) ^ (crc32Poly & -(crc & 1))
		}
	}
	return ^crc
}
