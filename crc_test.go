package zipstore

import (
	"hash/crc32"
	"math/rand"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestChecksum(t *testing.T) {
	t.Run("is zero for empty input", func(t *testing.T) {
		assert.Equal(t, uint32(0), Checksum(nil))
		assert.Equal(t, uint32(0), Checksum([]byte{}))
	})

	t.Run("matches the standard check value", func(t *testing.T) {
		assert.Equal(t, uint32(0xcbf43926), Checksum([]byte("123456789")))
	})

	t.Run("matches the IEEE table implementation", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for _, size := range []int{1, 2, 7, 64, 1000, 1 << 16} {
			data := make([]byte, size)
			rng.Read(data)

			assert.Equal(t, crc32.ChecksumIEEE(data), Checksum(data), "size %d", size)
		}
	})
}

func BenchmarkChecksum(b *testing.B) {
	data := make([]byte, 1<<20)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Checksum(data)
	}
}
