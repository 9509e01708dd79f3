package corelike

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/corelike/corelike/fmindex"
	"github.com/corelike/corelike/trigram"
)

// Options collects the driver's tuning knobs and kernel/index skip flags —
// the "tuning knobs... not prescribed" of spec.md §9 — in the same
// flat-struct-with-defaults style fmindex.Config uses, so a benchmark CLI
// can populate it straight from a flag.FlagSet.
type Options struct {
	// FMThreshold is the minimum length of a plan's longest literal
	// required to prefer FM-index search over trigram or row-wise.
	FMThreshold int
	// TrigramMinLiteral is the minimum literal length (always >= 3;
	// shorter literals have no trigrams) required to prefer trigram
	// search over row-wise.
	TrigramMinLiteral int

	SkipFM      bool
	SkipTrigram bool
}

// DefaultOptions returns the driver's default tuning knobs.
func DefaultOptions() Options {
	return Options{FMThreshold: 6, TrigramMinLiteral: 3}
}

// IndexConfig collects the build-time tuning knobs passed through to the
// FM-index and trigram index builders.
type IndexConfig struct {
	FM      fmindex.Config
	Trigram struct{} // trigram.Build takes no tuning knobs today; kept for symmetry
}

// Driver answers Scan queries against one Corpus, optionally accelerated
// by a prebuilt FM-index and/or trigram index over the same corpus.
type Driver struct {
	corpus  *Corpus
	fm      *fmindex.Index
	tri     *trigram.Index
	options Options
}

// NewDriver builds a Driver with no accelerating indexes; it always falls
// back to row-wise scanning.
func NewDriver(corpus *Corpus, opts Options) *Driver {
	return &Driver{corpus: corpus, options: opts}
}

// BuildFMIndex attempts to build an FM-index over d's corpus and attach it.
// A build failure is returned as a *BuildError but does not poison the
// driver: it keeps scanning row-wise until a caller retries.
func (d *Driver) BuildFMIndex(cfg fmindex.Config) error {
	idx, err := fmindex.Build(d.corpus.Bytes(), d.corpus.RowOffsets(), d.corpus.Fingerprint(), cfg)
	if err != nil {
		var be *fmindex.BuildError
		kind := CorruptIndex
		if errors.As(err, &be) {
			kind = Kind(be.Kind)
		}
		slog.Warn("corelike: fm-index build failed, falling back to row-wise scan", "err", err)
		return &BuildError{Kind: kind, Index: "fmindex", Cause: err}
	}
	d.fm = idx
	return nil
}

// BuildTrigramIndex attempts to build a trigram index over d's corpus and
// attach it.
func (d *Driver) BuildTrigramIndex() error {
	rows := make([][]byte, d.corpus.NumRows())
	for i := range rows {
		rows[i] = d.corpus.Row(i)
	}
	d.tri = trigram.Build(rows, d.corpus.Fingerprint())
	return nil
}

// Scan returns every row ID in d's corpus matching plan, ascending. It
// selects FM-index search, then trigram search, then row-wise scanning,
// per spec.md §4.4's strategy order, honoring d.options' skip flags and
// thresholds.
func (d *Driver) Scan(plan *Pattern) []int {
	if !d.options.SkipFM && d.fm != nil && d.fm.Fingerprint() == d.corpus.Fingerprint() {
		if lit := longestLiteral(plan); len(lit) >= max(d.options.FMThreshold, 1) {
			return d.scanFM(plan, lit)
		}
	}
	if !d.options.SkipTrigram && d.tri != nil && d.tri.Fingerprint() == d.corpus.Fingerprint() {
		if lit := longestLiteral(plan); len(lit) >= 3 && len(lit) >= d.options.TrigramMinLiteral {
			if rows, ok := d.scanTrigram(plan, lit); ok {
				return rows
			}
		}
	}
	return d.scanRowWise(plan, 0, d.corpus.NumRows())
}

// ScanParallel partitions the row range into workers contiguous chunks,
// scans each independently (row evaluation is a pure function of (plan,
// row bytes), so this needs no shared mutable state), and merges the
// already-sorted per-chunk row IDs. It supplements Scan; it never touches
// the FM/trigram index paths, since those already operate corpus-wide.
func (d *Driver) ScanParallel(plan *Pattern, workers int) []int {
	n := d.corpus.NumRows()
	if workers <= 1 || n == 0 {
		return d.scanRowWise(plan, 0, n)
	}
	if workers > n {
		workers = n
	}

	chunks := make([][]int, workers)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			chunks[w] = d.scanRowWise(plan, start, end)
		}(w, start, end)
	}
	wg.Wait()

	var total int
	for _, c := range chunks {
		total += len(c)
	}
	out := make([]int, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func (d *Driver) scanRowWise(plan *Pattern, from, to int) []int {
	var out []int
	for i := from; i < to; i++ {
		if MatchRow(plan, d.corpus.Row(i)) {
			out = append(out, i)
		}
	}
	return out
}

func (d *Driver) scanFM(plan *Pattern, literal []byte) []int {
	offsets := d.fm.Search(literalToFMPattern(plan, literal))
	seen := make(map[int]struct{}, len(offsets))
	var rows []int
	for _, off := range offsets {
		row := d.fm.RowForOffset(off)
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		if MatchRow(plan, d.corpus.Row(row)) {
			rows = append(rows, row)
		}
	}
	sort.Ints(rows)
	return rows
}

func (d *Driver) scanTrigram(plan *Pattern, literal []byte) ([]int, bool) {
	candidates, ok := d.tri.SearchLiteral(literal)
	if !ok {
		return nil, false
	}
	var rows []int
	for _, rowID := range candidates {
		if MatchRow(plan, d.corpus.Row(int(rowID))) {
			rows = append(rows, int(rowID))
		}
	}
	sort.Ints(rows)
	return rows, true
}

// literalToFMPattern returns the raw bytes to search the FM-index for: the
// longest literal itself, since spec.md §4.2 specifies "searching the
// longest literal and post-verifying" rather than encoding the full plan
// into the backward search.
func literalToFMPattern(_ *Pattern, literal []byte) []byte { return literal }

// longestLiteral returns the bytes of plan's primary (longest) Literal
// token, or nil if the plan has none.
func longestLiteral(plan *Pattern) []byte {
	if plan.primaryLiteral < 0 {
		return nil
	}
	return plan.Tokens[plan.primaryLiteral].Literal
}
