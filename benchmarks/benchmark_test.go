package benchmarks

import (
	"fmt"
	"testing"

	bab "github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	atomicbloom "github.com/ericvolp12/atomic-bloom"
	"github.com/greatroar/blobloom"
	"github.com/jcalabro/microbloom"
)

const (
	benchItems  = 1_000_000
	benchFPRate = 0.01
)

// Pre-generate test data to avoid measuring string generation
var testKeys [][]byte
var testKeysStr []string

func init() {
	testKeys = make([][]byte, benchItems)
	testKeysStr = make([]string, benchItems)
	for i := range benchItems {
		s := fmt.Sprintf("key-%d", i)
		testKeys[i] = []byte(s)
		testKeysStr[i] = s
	}
}

func newMicrobloom(b *testing.B, opts ...microbloom.Option) *microbloom.Filter {
	b.Helper()
	return microbloom.NewWithEstimates(benchItems, benchFPRate, opts...)
}

// ============================================================================
// Sequential Insert Benchmarks
// ============================================================================

func BenchmarkAddSequential_Microbloom(b *testing.B) {
	f := newMicrobloom(b)
	b.ResetTimer()
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_MicrobloomString(b *testing.B) {
	f := newMicrobloom(b)
	b.ResetTimer()
	for i := range b.N {
		f.InsertString(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddSequential_MicrobloomXXH32(b *testing.B) {
	f := newMicrobloom(b, microbloom.WithHashFamily(microbloom.HashXXH32))
	b.ResetTimer()
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_MicrobloomMurmur3(b *testing.B) {
	f := newMicrobloom(b, microbloom.WithHashFamily(microbloom.HashMurmur3))
	b.ResetTimer()
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	b.ResetTimer()
	for i := range b.N {
		// blobloom requires pre-hashing
		h := xxhash.Sum64(testKeys[i%benchItems])
		f.Add(h)
	}
}

// ============================================================================
// Sequential Check Benchmarks
// ============================================================================

func BenchmarkTestSequential_Microbloom(b *testing.B) {
	f := newMicrobloom(b)
	for i := range benchItems {
		f.Insert(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Check(testKeys[i%benchItems])
	}
}

func BenchmarkTestSequential_MicrobloomString(b *testing.B) {
	f := newMicrobloom(b)
	for i := range benchItems {
		f.Insert(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.CheckString(testKeysStr[i%benchItems])
	}
}

func BenchmarkTestSequential_MicrobloomUint32(b *testing.B) {
	f := newMicrobloom(b)
	for i := range uint32(benchItems) {
		f.InsertUint32(i)
	}
	b.ResetTimer()
	for i := range b.N {
		f.CheckUint32(uint32(i % benchItems))
	}
}

func BenchmarkTestSequential_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Test(testKeys[i%benchItems])
	}
}

func BenchmarkTestSequential_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Test(testKeys[i%benchItems])
	}
}

func BenchmarkTestSequential_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	// Pre-hash keys for fair comparison
	hashes := make([]uint64, benchItems)
	for i := range benchItems {
		hashes[i] = xxhash.Sum64(testKeys[i])
		f.Add(hashes[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Has(hashes[i%benchItems])
	}
}

// ============================================================================
// Memory Allocation Benchmarks
// ============================================================================

func BenchmarkAddAlloc_Microbloom(b *testing.B) {
	f := newMicrobloom(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
	}
}

func BenchmarkAddAlloc_MicrobloomString(b *testing.B) {
	f := newMicrobloom(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.InsertString(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddAlloc_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

// ============================================================================
// False Positive Comparison
// ============================================================================

func BenchmarkFalsePositives_Microbloom(b *testing.B) {
	f := newMicrobloom(b)
	for i := range benchItems {
		f.Insert(testKeys[i])
	}
	var fp int
	b.ResetTimer()
	for i := range b.N {
		if f.Check(fmt.Appendf(nil, "absent-%d", i)) {
			fp++
		}
	}
	b.ReportMetric(float64(fp)/float64(b.N), "fp/op")
}

func BenchmarkFalsePositives_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	var fp int
	b.ResetTimer()
	for i := range b.N {
		if f.Test(fmt.Appendf(nil, "absent-%d", i)) {
			fp++
		}
	}
	b.ReportMetric(float64(fp)/float64(b.N), "fp/op")
}
