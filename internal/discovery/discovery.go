// Package discovery turns a suffix array and LCP array into a canonical,
// deduplicated list of compressible repeated-subsequence candidates.
package discovery

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Occurrence is a (start, length) span within the token sequence passed to Discover.
type Occurrence struct {
	Start  int
	Length int
}

// Candidate is a repeated pattern together with its non-overlapping
// occurrence list and savings metrics.
type Candidate struct {
	Pattern     []uint32
	Occurrences []Occurrence
	Length      int
	Count       int
	RawSavings  int
	Priority    float64
}

// Scorer assigns an external priority in [0,1] to a candidate.
type Scorer func(c Candidate, t []uint32) float64

// Filter rejects candidates whose occurrences fall in a protected region.
type Filter func(c Candidate) bool

// Options configures Discover.
type Options struct {
	MinLen   int
	MaxLen   int
	Overhead int
	Scorer   Scorer
	Filter   Filter
	Parallel bool
}

// Discover walks the LCP array once per candidate length in [MinLen, MaxLen],
// collapsing maximal LCP runs into shared-prefix groups, greedily filtering
// each group's occurrences to a non-overlapping subset, and keeping only
// candidates that satisfy length*count > length+count+overhead.
//
// Lengths are processed from MaxLen down to MinLen. A cross-length dedup map
// keyed by pattern content hash then retains, for any pattern whose bytes
// were already seen at a longer length, the longer candidate unless the
// shorter one offers strictly greater count*length savings.
func Discover(t []uint32, sa, lcp []int, opts Options) []Candidate {
	n := len(t)
	if n == 0 || opts.MaxLen < opts.MinLen {
		return nil
	}

	seen := make(map[uint64]int) // pattern hash -> index into result
	var result []Candidate

	lengths := make([]int, 0, opts.MaxLen-opts.MinLen+1)
	for l := opts.MaxLen; l >= opts.MinLen; l-- {
		lengths = append(lengths, l)
	}

	if opts.Parallel && len(lengths) > 1 {
		perLength := make([][]Candidate, len(lengths))
		var wg sync.WaitGroup
		for idx, l := range lengths {
			wg.Add(1)
			go func(idx, l int) {
				defer wg.Done()
				perLength[idx] = candidatesForLength(t, sa, lcp, l, opts)
			}(idx, l)
		}
		wg.Wait()
		for _, cands := range perLength {
			mergeCandidates(&result, seen, cands)
		}
	} else {
		for _, l := range lengths {
			cands := candidatesForLength(t, sa, lcp, l, opts)
			mergeCandidates(&result, seen, cands)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return lexLess(a.Pattern, b.Pattern)
	})
	return result
}

func mergeCandidates(result *[]Candidate, seen map[uint64]int, cands []Candidate) {
	for _, c := range cands {
		key := hashPattern(c.Pattern)
		if prevIdx, ok := seen[key]; ok {
			prev := (*result)[prevIdx]
			if c.Count*c.Length > prev.Count*prev.Length {
				(*result)[prevIdx] = c
			}
			continue
		}
		seen[key] = len(*result)
		*result = append(*result, c)
	}
}

func candidatesForLength(t []uint32, sa, lcp []int, l int, opts Options) []Candidate {
	n := len(sa)
	var out []Candidate

	i := 1
	for i < n {
		if lcp[i] < l {
			i++
			continue
		}
		// Extend the run [start, end) of consecutive suffixes sharing at
		// least an l-token prefix with their neighbor.
		start := i - 1
		end := i
		for end < n && lcp[end] >= l {
			end++
		}
		positions := make([]int, 0, end-start)
		for _, s := range sa[start:end] {
			if s+l <= len(t) {
				positions = append(positions, s)
			}
		}
		if len(positions) >= 2 {
			sort.Ints(positions)
			occ := greedyNonOverlap(positions, l)
			if len(occ) >= 2 {
				count := len(occ)
				savings := l*count - (l + count + opts.Overhead)
				if savings > 0 {
					pattern := make([]uint32, l)
					copy(pattern, t[positions[0]:positions[0]+l])
					c := Candidate{
						Pattern:     pattern,
						Occurrences: occ,
						Length:      l,
						Count:       count,
						RawSavings:  savings,
					}
					if opts.Filter != nil && !opts.Filter(c) {
						i = end
						continue
					}
					if opts.Scorer != nil {
						c.Priority = opts.Scorer(c, t)
					}
					out = append(out, c)
				}
			}
		}
		i = end
	}
	return out
}

// greedyNonOverlap accepts positions (already sorted ascending) left to
// right, keeping a position only if it starts at or after the end of the
// previously accepted occurrence.
func greedyNonOverlap(positions []int, length int) []Occurrence {
	occ := make([]Occurrence, 0, len(positions))
	lastEnd := -1
	for _, p := range positions {
		if p >= lastEnd {
			occ = append(occ, Occurrence{Start: p, Length: length})
			lastEnd = p + length
		}
	}
	return occ
}

func hashPattern(pattern []uint32) uint64 {
	buf := make([]byte, len(pattern)*4)
	for i, v := range pattern {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return xxhash.Sum64(buf)
}

func lexLess(a, b []uint32) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
