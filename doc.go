// Package microbloom provides a small, fixed-capacity bloom filter for Go.
//
// A bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set. False positive matches are possible,
// but false negatives are not – if the filter says an element is not present,
// it definitely is not. If it says an element might be present, it could be a
// false positive.
//
// # Layout
//
// A [Filter] is a flat array of M 32-bit words, giving M*32 bits, plus a probe
// count k. Both are fixed when the filter is created and the backing array is
// allocated exactly once; Insert and Check never allocate.
//
// For every item, each probe i in [0, k) hashes the item's bytes with i as the
// seed, reduces the 32-bit result modulo M*32, and splits that into a word
// index (value / 32) and a bit offset (value % 32). Insert sets those k bits,
// Check reports true only if all of them are set. Bits are never cleared.
//
// # Keys
//
// The byte slice methods ([Filter.Insert], [Filter.Check]) are the canonical
// entry points. [Filter.InsertString], [Filter.InsertUint32] and
// [Filter.InsertUint64] (and their Check counterparts) are thin wrappers:
// integers are encoded little-endian, strings are hashed in place. Because
// of this, InsertUint32(7) and Insert([]byte{7, 0, 0, 0}) denote the same
// member. Prefix keys yourself if different key shapes must not collide.
//
// # Hashing
//
// Any seeded 32-bit non-cryptographic hash works. Three are built in:
//
//   - [XXH3] (default): xxh3 with the 64-bit output folded to 32 bits
//   - [XXH32]: the 32-bit xxHash
//   - [Murmur3]: 32-bit MurmurHash3
//
// Select one with [WithHashFamily], or plug in your own with [WithHash].
//
// # Choosing Parameters
//
// Use [New] when the dimensions are known, [MustNew] when they are
// constants, or [NewWithEstimates] with your expected number of items and
// desired false positive rate:
//
//	// 256 words (8192 bits), 3 probes
//	f := microbloom.MustNew(256, 3)
//
// The false positive rate after n insertions is approximately
//
//	(1 - e^(-k*n/m))^k
//
// where m = M*32. [Filter.EstimatedFalsePositiveRate] reports it for the
// current load.
//
// # Thread Safety
//
// [Filter] is NOT thread-safe. Confine it to one goroutine or guard it with
// external synchronization, e.g. a sync.RWMutex with a single writer.
package microbloom
