// Command analysis measures the empirical false positive rate of a
// microbloom filter as it fills, and compares it with the theoretical
// estimate (1 - e^(-kn/m))^k.
//
// Usage:
//
//	analysis -words 256 -k 3 -items 3000,16000 -samples 1000 -hash all
package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jcalabro/microbloom"
)

type config struct {
	words   uint
	k       uint
	loads   []uint64
	samples int
	hashes  []string
	seed    uint64
	json    bool
}

type result struct {
	hash      string
	items     uint64
	fill      float64
	empirical float64
	estimate  float64
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(cfg.json)

	var results []result
	for _, name := range cfg.hashes {
		rs, err := run(cfg, name, logger)
		if err != nil {
			logger.Error("analysis failed", "hash", name, "error", err)
			os.Exit(1)
		}
		results = append(results, rs...)
	}

	printResults(os.Stdout, cfg, results)
}

func newLogger(json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseFlags(args []string) (config, error) {
	fs := flag.NewFlagSet("analysis", flag.ContinueOnError)

	var (
		cfg   config
		items string
		hash  string
	)
	fs.UintVar(&cfg.words, "words", 256, "number of 32-bit words (M)")
	fs.UintVar(&cfg.k, "k", 3, "number of probes per item (K)")
	fs.StringVar(&items, "items", "3000,16000", "comma separated cumulative load points")
	fs.IntVar(&cfg.samples, "samples", 1000, "fresh values checked at each load point")
	fs.StringVar(&hash, "hash", "all", "hash family: xxh3, xxh32, murmur3 or all")
	fs.Uint64Var(&cfg.seed, "seed", 1, "random seed")
	fs.BoolVar(&cfg.json, "json", false, "log as JSON")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.k == 0 || cfg.k > 255 {
		return config{}, fmt.Errorf("-k must be in [1, 255], got %d", cfg.k)
	}
	if cfg.samples <= 0 {
		return config{}, errors.New("-samples must be positive")
	}

	var last uint64
	for _, field := range strings.Split(items, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return config{}, fmt.Errorf("-items: %w", err)
		}
		if n < last {
			return config{}, fmt.Errorf("-items must be ascending, %d follows %d", n, last)
		}
		cfg.loads = append(cfg.loads, n)
		last = n
	}

	if hash == "all" {
		cfg.hashes = []string{"xxh3", "xxh32", "murmur3"}
	} else {
		if _, _, ok := microbloom.ParseHashFamily(hash); !ok {
			return config{}, fmt.Errorf("-hash: unknown family %q", hash)
		}
		cfg.hashes = []string{hash}
	}

	return cfg, nil
}

// run fills one filter through every load point and samples its false
// positive rate with values that were never inserted.
func run(cfg config, hashName string, logger *slog.Logger) ([]result, error) {
	if cfg.words > microbloom.MaxWords {
		return nil, fmt.Errorf("%w: %d words", microbloom.ErrCapacityOverflow, cfg.words)
	}
	family, _, _ := microbloom.ParseHashFamily(hashName)
	f, err := microbloom.New(uint32(cfg.words), uint8(cfg.k), microbloom.WithHashFamily(family))
	if err != nil {
		return nil, err
	}

	log := logger.With("hash", hashName, "words", f.Words(), "k", f.K())
	r := rand.New(rand.NewPCG(cfg.seed, uint64(family)))

	var (
		results  []result
		inserted uint64
		item     [12]byte
	)
	for _, load := range cfg.loads {
		for ; inserted < load; inserted++ {
			randomItem(r, item[:])
			f.Insert(item[:])
		}

		var positives int
		for range cfg.samples {
			randomItem(r, item[:])
			if f.Check(item[:]) {
				positives++
			}
		}

		res := result{
			hash:      hashName,
			items:     load,
			fill:      f.EstimatedFillRatio(),
			empirical: float64(positives) / float64(cfg.samples),
			estimate:  f.EstimatedFalsePositiveRate(),
		}
		log.Info("load point sampled",
			"items", res.items,
			"fill", res.fill,
			"fp_rate", res.empirical,
			"estimate", res.estimate,
		)
		results = append(results, res)
	}

	return results, nil
}

func randomItem(r *rand.Rand, buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], r.Uint64())
	binary.LittleEndian.PutUint32(buf[8:12], r.Uint32())
}

func printResults(w io.Writer, cfg config, results []result) {
	fmt.Fprintf(w, "M=%d words (%d bits), K=%d, %d samples per point\n\n",
		cfg.words, cfg.words*microbloom.WordBits, cfg.k, cfg.samples)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "hash\titems\tfill\tfp rate\testimate\tdelta\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%+.4f\t\n",
			r.hash, r.items, r.fill, r.empirical, r.estimate, r.empirical-r.estimate)
	}
	tw.Flush()
}
