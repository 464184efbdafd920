package microbloom

import "math"

const (
	// WordBits is the number of bits per storage word.
	WordBits = 32
	// MaxWords is the largest word count whose bit capacity still fits in
	// the 32-bit hash reduction.
	MaxWords = math.MaxUint32 / WordBits
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// OptimalParams calculates the filter dimensions for the expected number of
// items and false positive rate. Returns the number of 32-bit words, the
// number of probes (k), and the ideal bits per item.
func OptimalParams(expectedItems uint64, fpRate float64) (words uint32, k uint8, bitsPerItem float64) {
	if expectedItems == 0 {
		expectedItems = 1
	}
	if fpRate <= 0 {
		fpRate = 0.0001 // default to 0.01%
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}

	// Optimal bits per item: -ln(fpRate) / ln(2)^2
	bitsPerItem = -math.Log(fpRate) / ln2Squared

	totalBits := float64(expectedItems) * bitsPerItem
	totalWords := math.Ceil(totalBits / WordBits)
	totalWords = max(totalWords, 1)
	totalWords = min(totalWords, MaxWords)
	words = uint32(totalWords)

	// Optimal k: (m/n) * ln(2), using the bits actually allocated
	actualBitsPerItem := float64(uint64(words)*WordBits) / float64(expectedItems)
	kFloat := math.Round(actualBitsPerItem * ln2)
	kFloat = max(kFloat, 1)
	kFloat = min(kFloat, math.MaxUint8)

	return words, uint8(kFloat), bitsPerItem
}

// EstimateFalsePositiveRate estimates the false positive rate for given parameters.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(words uint32, k uint8, itemsAdded uint64) float64 {
	m := float64(uint64(words) * WordBits)
	n := float64(itemsAdded)
	kf := float64(k)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-kf*n/m), kf)
}
