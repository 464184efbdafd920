package microbloom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrZeroCapacity is returned when a filter is sized with zero words.
	ErrZeroCapacity = errors.New("microbloom: capacity must be at least one word")

	// ErrInvalidK is returned when the probe count is zero.
	ErrInvalidK = errors.New("microbloom: k must be at least 1")

	// ErrCapacityOverflow is returned when words*32 does not fit in 32 bits.
	ErrCapacityOverflow = errors.New("microbloom: bit capacity overflows 32 bits")

	// ErrDimensionMismatch is returned by Union when the filters do not map
	// items to the same coordinates.
	ErrDimensionMismatch = errors.New("microbloom: filter dimensions do not match")
)

// Filter is a fixed-capacity, non-thread-safe bloom filter backed by a flat
// array of 32-bit words.
//
// Each of the k probes hashes the item with the probe index as seed, reduces
// the hash modulo the total bit capacity, and splits the result into a word
// index and a bit offset. Bits are only ever set, never cleared.
type Filter struct {
	body   []uint32   // words * 32 bits, allocated once
	words  uint32     // M, number of 32-bit words
	bits   uint32     // M * 32
	k      uint8      // K, number of probes
	hash   HashFunc   // seeded 32-bit hash
	family HashFamily // identifies hash for Union
	count  uint64     // Number of insert calls (approximate)
}

// New creates a filter with words 32-bit words and k probes per item.
// All bits start cleared.
func New(words uint32, k uint8, opts ...Option) (*Filter, error) {
	if words == 0 {
		return nil, ErrZeroCapacity
	}
	if words > MaxWords {
		return nil, fmt.Errorf("%w: %d words (max %d)", ErrCapacityOverflow, words, MaxWords)
	}
	if k == 0 {
		return nil, ErrInvalidK
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Filter{
		body:   make([]uint32, words),
		words:  words,
		bits:   words * WordBits,
		k:      k,
		hash:   o.hash,
		family: o.family,
	}, nil
}

// MustNew is like New but panics on a sizing error. It is meant for filters
// whose dimensions are constants.
func MustNew(words uint32, k uint8, opts ...Option) *Filter {
	f, err := New(words, k, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// NewWithEstimates creates a filter sized for the expected number of items
// and desired false positive rate.
func NewWithEstimates(expectedItems uint64, fpRate float64, opts ...Option) *Filter {
	words, k, _ := OptimalParams(expectedItems, fpRate)
	return MustNew(words, k, opts...)
}

// coordinates maps probe seed of data to a word index and bit offset. The
// hash is reduced modulo the full bit capacity before it is split, so every
// result addresses a bit inside body.
func (f *Filter) coordinates(data []byte, seed uint32) (word uint32, offset uint32) {
	v := f.hash(data, seed) % f.bits
	return v / WordBits, v % WordBits
}

// Insert adds data to the filter.
func (f *Filter) Insert(data []byte) {
	for i := uint32(0); i < uint32(f.k); i++ {
		word, offset := f.coordinates(data, i)
		f.body[word] |= 1 << offset
	}
	f.count++
}

// Check reports whether data might be in the filter. False means data was
// definitely never inserted.
func (f *Filter) Check(data []byte) bool {
	for i := uint32(0); i < uint32(f.k); i++ {
		word, offset := f.coordinates(data, i)
		if f.body[word]&(1<<offset) == 0 {
			return false
		}
	}
	return true
}

// CheckAndInsert reports whether data might already have been present and
// inserts it.
func (f *Filter) CheckAndInsert(data []byte) bool {
	present := true
	for i := uint32(0); i < uint32(f.k); i++ {
		word, offset := f.coordinates(data, i)
		mask := uint32(1) << offset
		if f.body[word]&mask == 0 {
			present = false
			f.body[word] |= mask
		}
	}
	f.count++
	return present
}

// InsertString adds a string to the filter without allocating.
func (f *Filter) InsertString(s string) {
	f.Insert(stringBytes(s))
}

// CheckString checks a string without allocating.
func (f *Filter) CheckString(s string) bool {
	return f.Check(stringBytes(s))
}

// InsertUint32 adds x using its 4-byte little-endian encoding.
func (f *Filter) InsertUint32(x uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], x)
	f.Insert(buf[:])
}

// CheckUint32 checks x using its 4-byte little-endian encoding.
func (f *Filter) CheckUint32(x uint32) bool {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], x)
	return f.Check(buf[:])
}

// InsertUint64 adds x using its 8-byte little-endian encoding.
func (f *Filter) InsertUint64(x uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], x)
	f.Insert(buf[:])
}

// CheckUint64 checks x using its 8-byte little-endian encoding.
func (f *Filter) CheckUint64(x uint64) bool {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], x)
	return f.Check(buf[:])
}

// Union sets every bit of other in f. Both filters must have the same word
// count, probe count and built-in hash family.
func (f *Filter) Union(other *Filter) error {
	if f.words != other.words || f.k != other.k {
		return fmt.Errorf("%w: %dx%d vs %dx%d (words x k)", ErrDimensionMismatch, f.words, f.k, other.words, other.k)
	}
	if f.family == HashCustom || f.family != other.family {
		return fmt.Errorf("%w: hash %s vs %s", ErrDimensionMismatch, f.family, other.family)
	}
	for i, w := range other.body {
		f.body[i] |= w
	}
	f.count += other.count
	return nil
}

// Words returns the number of 32-bit words backing the filter.
func (f *Filter) Words() uint32 {
	return f.words
}

// Cap returns the capacity of the filter in bits.
func (f *Filter) Cap() uint32 {
	return f.bits
}

// K returns the number of probes per item.
func (f *Filter) K() uint8 {
	return f.k
}

// HashFamily returns the hash the filter was built with.
func (f *Filter) HashFamily() HashFamily {
	return f.family
}

// Count returns the approximate number of items added to the filter.
func (f *Filter) Count() uint64 {
	return f.count
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Filter) EstimatedFillRatio() float64 {
	var setBits uint64
	for _, word := range f.body {
		setBits += uint64(bits.OnesCount32(word))
	}
	return float64(setBits) / float64(f.bits)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.words, f.k, f.count)
}
