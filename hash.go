package microbloom

import (
	"unsafe"

	"github.com/pierrec/xxHash/xxHash32"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// HashFunc is a seeded, non-cryptographic 32-bit hash. Different seeds must
// give low correlation for the same input, since each probe index is used as
// a seed to derive an independent bit position.
type HashFunc func(data []byte, seed uint32) uint32

// HashFamily names the hash a filter was built with.
type HashFamily uint8

const (
	HashXXH3 HashFamily = iota
	HashXXH32
	HashMurmur3
	HashCustom
)

func (h HashFamily) String() string {
	switch h {
	case HashXXH3:
		return "xxh3"
	case HashXXH32:
		return "xxh32"
	case HashMurmur3:
		return "murmur3"
	default:
		return "custom"
	}
}

// XXH3 is the default hash. The 64-bit seeded xxh3 value is folded to 32
// bits so that both halves contribute to the bit position.
func XXH3(data []byte, seed uint32) uint32 {
	h := xxh3.HashSeed(data, uint64(seed))
	return uint32(h ^ (h >> 32))
}

// XXH32 is the 32-bit xxHash.
func XXH32(data []byte, seed uint32) uint32 {
	return xxHash32.Checksum(data, seed)
}

// Murmur3 is the 32-bit MurmurHash3 (x86_32).
func Murmur3(data []byte, seed uint32) uint32 {
	return murmur3.Sum32WithSeed(data, seed)
}

// ParseHashFamily maps a family name back to its hash function.
func ParseHashFamily(name string) (HashFamily, HashFunc, bool) {
	switch name {
	case "xxh3":
		return HashXXH3, XXH3, true
	case "xxh32":
		return HashXXH32, XXH32, true
	case "murmur3":
		return HashMurmur3, Murmur3, true
	}
	return HashCustom, nil, false
}

// stringBytes views s as a byte slice without copying. The result must not
// be modified.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
