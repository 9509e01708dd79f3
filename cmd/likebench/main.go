// Command likebench loads a small synthetic or on-disk corpus, cross-checks
// every available search kernel for agreement, and reports throughput for
// each kernel and for the dataset driver's FM-index, trigram, and row-wise
// scan strategies. It is not part of the core matching engine; it exists to
// exercise and benchmark it, mirroring the original system's
// algos/src/compare.rs and algos/src/main.rs comparison harness.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/corelike/corelike"
	"github.com/corelike/corelike/fmindex"
	"github.com/corelike/corelike/kernel"
	"github.com/dustin/go-humanize"
)

func main() {
	var (
		dataDir     = flag.String("data-dir", "", "directory of text files to load as corpus rows, one row per file (default: synthetic corpus)")
		patternsArg = flag.String("patterns", "", "comma-separated LIKE patterns to benchmark (default: built-in set)")
		skipFM      = flag.Bool("skip-fm", false, "do not build or use the FM-index")
		skipTrigram = flag.Bool("skip-trigram", false, "do not build or use the trigram index")
		skipKernels = flag.String("skip-kernels", "", "comma-separated kernel kinds to exclude from the cross-check (e.g. short-lut,naive-simd)")
		workers     = flag.Int("workers", 4, "worker count for the parallel driver scan")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	rows, err := loadRows(*dataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "likebench:", err)
		os.Exit(1)
	}

	patterns := defaultPatterns()
	if *patternsArg != "" {
		patterns = strings.Split(*patternsArg, ",")
	}

	skip := splitSet(*skipKernels)

	ok := true
	if !runKernelCrossCheck(rows, skip) {
		ok = false
	}
	if !runDriverBenchmark(rows, patterns, *skipFM, *skipTrigram, *workers) {
		ok = false
	}

	if !ok {
		os.Exit(1)
	}
}

// defaultPatterns is the fixed pattern set exercised when --patterns is
// omitted, spanning every anchor mode and both wildcard kinds.
func defaultPatterns() []string {
	return []string{
		"data%",
		"%data",
		"%data%",
		"data_set",
		"%",
		"the_quick_%_fox",
	}
}

func splitSet(csv string) map[string]bool {
	out := make(map[string]bool)
	if csv == "" {
		return out
	}
	for _, s := range strings.Split(csv, ",") {
		out[strings.TrimSpace(s)] = true
	}
	return out
}

// loadRows reads one row per file in dir (sorted by name for determinism),
// or falls back to a synthetic corpus when dir is empty.
func loadRows(dir string) ([][]byte, error) {
	if dir == "" {
		return syntheticCorpus(), nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	rows := make([][]byte, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		rows = append(rows, b)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("data dir %s contains no files", dir)
	}
	return rows, nil
}

// syntheticCorpus generates a deterministic pseudo-text corpus of 2000 rows
// over a small alphabet, large enough to show a meaningful throughput
// difference between the row-wise scan and the accelerated index paths.
func syntheticCorpus() [][]byte {
	rng := rand.New(rand.NewSource(1))
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "data", "set", "banana", "apple"}

	rows := make([][]byte, 2000)
	for i := range rows {
		n := 4 + rng.Intn(8)
		parts := make([]string, n)
		for j := range parts {
			parts[j] = words[rng.Intn(len(words))]
		}
		rows[i] = []byte(strings.Join(parts, " "))
	}
	return rows
}

func buildCorpus(rows [][]byte) *corelike.Corpus {
	var buf []byte
	offsets := make([]int, len(rows))
	for i, r := range rows {
		offsets[i] = len(buf)
		buf = append(buf, r...)
	}
	return corelike.NewCorpus(buf, offsets)
}

// runKernelCrossCheck verifies every available kernel kind agrees with the
// std-find baseline on find-all results for a representative needle drawn
// from the corpus, and reports each kernel's scan throughput. ShortLUT is
// skipped when the needle is longer than its 8-byte limit.
func runKernelCrossCheck(rows [][]byte, skip map[string]bool) bool {
	haystack := concatRows(rows)
	needle := representativeNeedle(rows)
	if len(needle) == 0 {
		fmt.Println("likebench: corpus too small for a kernel cross-check, skipping")
		return true
	}

	baseline := kernel.NewStdFind(needle)
	want := baseline.FindAll(haystack)

	fmt.Printf("kernel cross-check: needle=%q haystack=%s\n", needle, humanize.Bytes(uint64(len(haystack))))

	ok := true
	for k := kernel.Naive; k <= kernel.StdFind; k++ {
		name := k.String()
		if skip[name] {
			fmt.Printf("  %-12s SKIPPED\n", name)
			continue
		}
		if !kernel.Available(k) {
			fmt.Printf("  %-12s ABSENT (build-time feature unavailable)\n", name)
			continue
		}
		if k == kernel.ShortLUT && len(needle) > 8 {
			fmt.Printf("  %-12s SKIPPED (needle longer than 8 bytes)\n", name)
			continue
		}

		kn := kernel.New(k, needle)
		start := time.Now()
		got := kn.FindAll(haystack)
		elapsed := time.Since(start)

		agree := equalInts(want, got)
		if !agree {
			ok = false
		}
		throughput := humanize.Bytes(uint64(float64(len(haystack)) / elapsed.Seconds()))
		fmt.Printf("  %-12s matches=%-6d agree=%-5v elapsed=%10s %s/s\n",
			name, len(got), agree, elapsed, throughput)
	}

	return ok
}

// runDriverBenchmark builds the requested indexes over a Corpus, scans the
// pattern set with each available strategy, verifies they agree with a
// plain row-wise scan, and reports elapsed time and row-per-second
// throughput for each pattern.
func runDriverBenchmark(rows [][]byte, patterns []string, skipFM, skipTrigram bool, workers int) bool {
	corpus := buildCorpus(rows)
	opts := corelike.DefaultOptions()
	opts.SkipFM = skipFM
	opts.SkipTrigram = skipTrigram

	d := corelike.NewDriver(corpus, opts)
	if !skipFM {
		if err := d.BuildFMIndex(fmindex.Config{}); err != nil {
			slog.Warn("likebench: fm-index build failed", "err", err)
		}
	}
	if !skipTrigram {
		if err := d.BuildTrigramIndex(); err != nil {
			slog.Warn("likebench: trigram-index build failed", "err", err)
		}
	}

	baseline := corelike.NewDriver(corpus, corelike.Options{SkipFM: true, SkipTrigram: true})

	fmt.Printf("driver scan: rows=%d corpus=%s workers=%d\n", corpus.NumRows(), humanize.Bytes(uint64(len(corpus.Bytes()))), workers)

	ok := true
	for _, pat := range patterns {
		plan := corelike.Compile([]byte(pat))

		want := baseline.Scan(plan)

		start := time.Now()
		got := d.Scan(plan)
		elapsed := time.Since(start)

		parStart := time.Now()
		parGot := d.ScanParallel(plan, workers)
		parElapsed := time.Since(parStart)
		sort.Ints(parGot)

		agree := equalInts(want, got) && equalInts(want, parGot)
		if !agree {
			ok = false
		}

		rowsPerSec := float64(corpus.NumRows()) / elapsed.Seconds()
		fmt.Printf("  %-24q rows=%-5d agree=%-5v scan=%10s parallel=%10s %s rows/s\n",
			pat, len(got), agree, elapsed, parElapsed, humanize.Comma(int64(rowsPerSec)))
	}
	return ok
}

func concatRows(rows [][]byte) []byte {
	var buf []byte
	for _, r := range rows {
		buf = append(buf, r...)
	}
	return buf
}

// representativeNeedle picks the first whitespace-delimited word at least 4
// bytes long out of the first non-empty row, a literal guaranteed to occur
// at least once in the corpus.
func representativeNeedle(rows [][]byte) []byte {
	for _, r := range rows {
		for _, w := range strings.Fields(string(r)) {
			if len(w) >= 4 {
				return []byte(w)
			}
		}
	}
	return nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
