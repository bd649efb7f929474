// Package selection picks a globally non-overlapping, net-beneficial subset
// of discovered candidate occurrences under one of four strategies.
package selection

import (
	"sort"

	"github.com/corrolabs/tokcompress/internal/discovery"
)

// Mode names a selection strategy. Values are ordered to match the root
// package's SelectionMode so callers can pass the underlying int directly.
type Mode int

const (
	Greedy Mode = iota
	Optimal
	Beam
	ILP
)

// Options configures Select.
type Options struct {
	Mode      Mode
	BeamWidth int
	AlphaF    float64
	Overhead  int
}

// Selected is one candidate's final, post-conflict-resolution occurrence
// subset. A candidate that loses every occurrence to higher-priority
// conflicts is omitted from Result entirely.
type Selected struct {
	Candidate   discovery.Candidate
	Occurrences []discovery.Occurrence
}

// Result is the outcome of Select: the candidates retained for dictionary
// emission, in final canonical order.
type Result struct {
	Selected []Selected
}

type item struct {
	candidateIdx int
	occ          discovery.Occurrence
	weight       float64
}

// Select dispatches to one of the four strategies and then imposes one
// final canonical ordering over the result, regardless of which strategy
// produced it, so that meta-token allocation is deterministic uniformly
// across modes.
func Select(candidates []discovery.Candidate, opts Options) Result {
	if len(candidates) == 0 {
		return Result{}
	}

	var raw map[int][]discovery.Occurrence
	switch opts.Mode {
	case Optimal, ILP:
		raw = selectOptimal(candidates, opts)
	case Beam:
		raw = selectBeam(candidates, opts)
	default:
		raw = selectGreedy(candidates, opts)
	}

	result := finalize(candidates, raw, opts.Overhead)
	sort.SliceStable(result.Selected, func(i, j int) bool {
		return lessForOrdering(result.Selected[i], result.Selected[j])
	})
	return result
}

// lessForOrdering is the single comparator used to break ties across all
// four selection strategies: longer pattern first, then higher occurrence
// count, then lexicographically smaller pattern, then smaller first
// occurrence position.
func lessForOrdering(a, b Selected) bool {
	if a.Candidate.Length != b.Candidate.Length {
		return a.Candidate.Length > b.Candidate.Length
	}
	if len(a.Occurrences) != len(b.Occurrences) {
		return len(a.Occurrences) > len(b.Occurrences)
	}
	if cmp := lexCompare(a.Candidate.Pattern, b.Candidate.Pattern); cmp != 0 {
		return cmp < 0
	}
	return firstStart(a.Occurrences) < firstStart(b.Occurrences)
}

func firstStart(occ []discovery.Occurrence) int {
	best := -1
	for _, o := range occ {
		if best == -1 || o.Start < best {
			best = o.Start
		}
	}
	return best
}

func lexCompare(a, b []uint32) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func flatten(candidates []discovery.Candidate, alpha float64) []item {
	items := make([]item, 0)
	for ci, c := range candidates {
		w := float64(c.Length-1) * (1 + alpha*c.Priority)
		for _, o := range c.Occurrences {
			items = append(items, item{candidateIdx: ci, occ: o, weight: w})
		}
	}
	return items
}

// finalize groups the accepted occurrences back by candidate and drops any
// candidate whose surviving occurrence count no longer satisfies the
// compressibility constraint.
func finalize(candidates []discovery.Candidate, raw map[int][]discovery.Occurrence, overhead int) Result {
	var result Result
	for ci, occs := range raw {
		if len(occs) == 0 {
			continue
		}
		c := candidates[ci]
		count := len(occs)
		savings := c.Length*count - (c.Length + count + overhead)
		if savings <= 0 {
			continue
		}
		sort.Slice(occs, func(i, j int) bool { return occs[i].Start < occs[j].Start })
		updated := c
		updated.Occurrences = occs
		updated.Count = count
		updated.RawSavings = savings
		result.Selected = append(result.Selected, Selected{Candidate: updated, Occurrences: occs})
	}
	return result
}

// intervalSet tracks accepted, mutually non-overlapping [start,end) spans in
// sorted order, supporting O(log k) overlap tests via binary search.
type intervalSet struct {
	starts []int
	ends   []int
}

func (s *intervalSet) overlaps(start, end int) bool {
	i := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] >= start })
	if i < len(s.starts) && s.starts[i] < end {
		return true
	}
	if i > 0 && s.ends[i-1] > start {
		return true
	}
	return false
}

func (s *intervalSet) insert(start, end int) {
	i := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] >= start })
	s.starts = append(s.starts, 0)
	copy(s.starts[i+1:], s.starts[i:])
	s.starts[i] = start
	s.ends = append(s.ends, 0)
	copy(s.ends[i+1:], s.ends[i:])
	s.ends[i] = end
}

// density is the savings-per-token ordering key: (length-1)*count over the
// dictionary cost of storing and referencing the pattern.
func density(c discovery.Candidate, overhead int) float64 {
	denom := float64(c.Length + c.Count + overhead)
	if denom <= 0 {
		return 0
	}
	return float64(c.Length-1) * float64(c.Count) / denom
}

// selectGreedy orders whole candidates by savings density scaled by
// (1 + alpha*priority), highest first, and for each candidate in that order
// accepts every occurrence not already covered by a higher-ranked
// candidate's accepted spans.
func selectGreedy(candidates []discovery.Candidate, opts Options) map[int][]discovery.Occurrence {
	order := make([]int, len(candidates))
	for i := range candidates {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := candidates[order[i]], candidates[order[j]]
		da := density(a, opts.Overhead) * (1 + opts.AlphaF*a.Priority)
		db := density(b, opts.Overhead) * (1 + opts.AlphaF*b.Priority)
		if da != db {
			return da > db
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if cmp := lexCompare(a.Pattern, b.Pattern); cmp != 0 {
			return cmp < 0
		}
		return firstStart(a.Occurrences) < firstStart(b.Occurrences)
	})

	accepted := make(map[int][]discovery.Occurrence)
	var set intervalSet
	for _, ci := range order {
		c := candidates[ci]
		occs := append([]discovery.Occurrence(nil), c.Occurrences...)
		sort.Slice(occs, func(i, j int) bool { return occs[i].Start < occs[j].Start })
		for _, o := range occs {
			start, end := o.Start, o.Start+o.Length
			if set.overlaps(start, end) {
				continue
			}
			set.insert(start, end)
			accepted[ci] = append(accepted[ci], o)
		}
	}
	return accepted
}

// selectOptimal runs classic weighted interval scheduling: items sorted by
// end position, dp[i] = max(skip, take + dp[predecessor]), predecessor found
// by binary search for the rightmost item whose end <= this item's start.
func selectOptimal(candidates []discovery.Candidate, opts Options) map[int][]discovery.Occurrence {
	items := flatten(candidates, opts.AlphaF)
	occEnd := func(o discovery.Occurrence) int { return o.Start + o.Length }
	sort.Slice(items, func(i, j int) bool {
		ei, ej := occEnd(items[i].occ), occEnd(items[j].occ)
		if ei != ej {
			return ei < ej
		}
		return items[i].occ.Start < items[j].occ.Start
	})
	n := len(items)
	if n == 0 {
		return nil
	}
	ends := make([]int, n)
	for i, it := range items {
		ends[i] = occEnd(it.occ)
	}
	pred := make([]int, n)
	for i, it := range items {
		j := sort.Search(n, func(j int) bool { return ends[j] > it.occ.Start }) - 1
		pred[i] = j
	}

	dp := make([]float64, n+1)
	take := make([]bool, n)
	dp[0] = 0
	for i := 1; i <= n; i++ {
		it := items[i-1]
		withIt := it.weight
		if pred[i-1] >= 0 {
			withIt += dp[pred[i-1]+1]
		}
		if withIt > dp[i-1] {
			dp[i] = withIt
			take[i-1] = true
		} else {
			dp[i] = dp[i-1]
		}
	}

	accepted := make(map[int][]discovery.Occurrence)
	i := n
	for i > 0 {
		if take[i-1] {
			it := items[i-1]
			accepted[it.candidateIdx] = append(accepted[it.candidateIdx], it.occ)
			if pred[i-1] >= 0 {
				i = pred[i-1] + 1
			} else {
				i = 0
			}
		} else {
			i--
		}
	}
	return accepted
}

// selectBeam keeps the BeamWidth highest-weight partial selections as it
// scans items in descending-weight order, branching into an include and an
// exclude successor at each step and pruning back to BeamWidth candidates.
func selectBeam(candidates []discovery.Candidate, opts Options) map[int][]discovery.Occurrence {
	width := opts.BeamWidth
	if width < 1 {
		width = 1
	}
	items := flatten(candidates, opts.AlphaF)
	sort.SliceStable(items, func(i, j int) bool { return items[i].weight > items[j].weight })

	type state struct {
		set    intervalSet
		chosen []int
		weight float64
	}
	beam := []state{{}}

	for idx, it := range items {
		start, end := it.occ.Start, it.occ.Start+it.occ.Length
		var next []state
		for _, st := range beam {
			next = append(next, st) // exclude branch
			if !st.set.overlaps(start, end) {
				var ns intervalSet
				ns.starts = append(append([]int{}, st.set.starts...))
				ns.ends = append(append([]int{}, st.set.ends...))
				ns.insert(start, end)
				chosen := append(append([]int{}, st.chosen...), idx)
				next = append(next, state{set: ns, chosen: chosen, weight: st.weight + it.weight})
			}
		}
		sort.SliceStable(next, func(i, j int) bool { return next[i].weight > next[j].weight })
		if len(next) > width {
			next = next[:width]
		}
		beam = next
	}

	var best state
	for _, st := range beam {
		if st.weight > best.weight {
			best = st
		}
	}

	accepted := make(map[int][]discovery.Occurrence)
	for _, idx := range best.chosen {
		it := items[idx]
		accepted[it.candidateIdx] = append(accepted[it.candidateIdx], it.occ)
	}
	return accepted
}
