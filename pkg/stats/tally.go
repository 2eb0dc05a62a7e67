// Package stats accumulates per-package file counts and selects the
// highest-ranked packages.
//
// A Tally is built once per run by folding parsed index lines into it,
// then read once to produce the top-N rows. It is not safe for concurrent
// mutation; a single goroutine owns it for the duration of a run. Because
// Add is commutative across lines, partial tallies produced by independent
// workers can be combined with Merge.
package stats

import "sort"

// Tally maps package names to the number of indexed files they own.
type Tally map[string]int

// New returns an empty tally.
func New() Tally {
	return make(Tally)
}

// Add increments the count of every given name by one.
// A name appearing twice in the same call is incremented twice; callers
// that want per-line deduplication must dedupe before calling.
func (t Tally) Add(names ...string) {
	for _, name := range names {
		t[name]++
	}
}

// Merge folds other into t by summing per-key counts.
func (t Tally) Merge(other Tally) {
	for name, n := range other {
		t[name] += n
	}
}

// Len returns the number of distinct packages seen.
func (t Tally) Len() int {
	return len(t)
}

// Count returns the file count for name, or zero if unseen.
func (t Tally) Count(name string) int {
	return t[name]
}

// Row is a ranked (package, file count) pair. It is a view derived from
// a Tally at the reporting boundary, not a long-lived entity.
type Row struct {
	Name  string
	Count int
}

// Top returns the n packages with the highest counts, ordered by count
// descending and name ascending within equal counts. The ordering is
// deterministic because the name tie-break is total.
//
// n <= 0 yields an empty slice; n larger than the tally yields all
// entries, fully sorted.
func (t Tally) Top(n int) []Row {
	if n < 0 {
		n = 0
	}
	rows := make([]Row, 0, len(t))
	for name, count := range t {
		rows = append(rows, Row{Name: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows
}
