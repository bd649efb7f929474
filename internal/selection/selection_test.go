package selection

import (
	"testing"

	"github.com/corrolabs/tokcompress/internal/discovery"
)

func makeCandidate(pattern []uint32, starts []int) discovery.Candidate {
	occ := make([]discovery.Occurrence, len(starts))
	for i, s := range starts {
		occ[i] = discovery.Occurrence{Start: s, Length: len(pattern)}
	}
	count := len(occ)
	length := len(pattern)
	savings := length*count - (length + count + 1)
	return discovery.Candidate{
		Pattern:     pattern,
		Occurrences: occ,
		Length:      length,
		Count:       count,
		RawSavings:  savings,
	}
}

func overlapping(occs []discovery.Occurrence) bool {
	for i := 0; i < len(occs); i++ {
		for j := i + 1; j < len(occs); j++ {
			a, b := occs[i], occs[j]
			if a.Start < b.Start+b.Length && b.Start < a.Start+a.Length {
				return true
			}
		}
	}
	return false
}

func TestSelectGreedyNoOverlap(t *testing.T) {
	candidates := []discovery.Candidate{
		makeCandidate([]uint32{1, 2}, []int{0, 10, 20}),
		makeCandidate([]uint32{2, 3}, []int{1, 11, 21}), // overlaps the above by one token
	}
	res := Select(candidates, Options{Mode: Greedy, Overhead: 1})
	var all []discovery.Occurrence
	for _, s := range res.Selected {
		all = append(all, s.Occurrences...)
	}
	if overlapping(all) {
		t.Fatalf("greedy selection produced overlapping occurrences: %+v", all)
	}
}

func TestSelectOptimalNoOverlap(t *testing.T) {
	candidates := []discovery.Candidate{
		makeCandidate([]uint32{1, 2}, []int{0, 10, 20}),
		makeCandidate([]uint32{2, 3}, []int{1, 11, 21}),
	}
	res := Select(candidates, Options{Mode: Optimal, Overhead: 1})
	var all []discovery.Occurrence
	for _, s := range res.Selected {
		all = append(all, s.Occurrences...)
	}
	if overlapping(all) {
		t.Fatalf("optimal selection produced overlapping occurrences: %+v", all)
	}
}

func TestSelectBeamNoOverlap(t *testing.T) {
	candidates := []discovery.Candidate{
		makeCandidate([]uint32{1, 2}, []int{0, 10, 20}),
		makeCandidate([]uint32{2, 3}, []int{1, 11, 21}),
	}
	res := Select(candidates, Options{Mode: Beam, BeamWidth: 4, Overhead: 1})
	var all []discovery.Occurrence
	for _, s := range res.Selected {
		all = append(all, s.Occurrences...)
	}
	if overlapping(all) {
		t.Fatalf("beam selection produced overlapping occurrences: %+v", all)
	}
}

func TestSelectILPDegradesToOptimal(t *testing.T) {
	candidates := []discovery.Candidate{
		makeCandidate([]uint32{1, 2}, []int{0, 10, 20}),
	}
	ilp := Select(candidates, Options{Mode: ILP, Overhead: 1})
	opt := Select(candidates, Options{Mode: Optimal, Overhead: 1})
	if len(ilp.Selected) != len(opt.Selected) {
		t.Fatalf("ilp selected %d candidates, optimal selected %d", len(ilp.Selected), len(opt.Selected))
	}
}

func TestSelectNoOverlapInNonConflictingInput(t *testing.T) {
	candidates := []discovery.Candidate{
		// Four occurrences each: length 2, count 4, overhead 1 saves
		// 2*4 - (2+4+1) = 1 > 0, so both candidates stay compressible.
		makeCandidate([]uint32{1, 2}, []int{0, 4, 8, 12}),
		makeCandidate([]uint32{9, 9}, []int{2, 6, 10, 14}),
	}
	res := Select(candidates, Options{Mode: Greedy, Overhead: 1})
	if len(res.Selected) != 2 {
		t.Fatalf("expected both disjoint candidates selected, got %d", len(res.Selected))
	}
}

func TestSelectGreedyOrdersByCandidateDensityNotOccurrenceLength(t *testing.T) {
	// short has density (2-1)*5/(2+5+1) = 0.625; long has (4-1)*1/(4+1+1) = 0.5.
	// short must win the conflict even though a single long occurrence is
	// longer than any single short occurrence.
	short := makeCandidate([]uint32{1, 2}, []int{0, 10, 20, 30, 40})
	long := makeCandidate([]uint32{1, 2, 3, 4}, []int{0})

	res := Select([]discovery.Candidate{short, long}, Options{Mode: Greedy, Overhead: 1})
	if len(res.Selected) != 1 {
		t.Fatalf("expected only the higher-density candidate to survive, got %d: %+v", len(res.Selected), res.Selected)
	}
	got := res.Selected[0]
	if got.Candidate.Length != 2 || len(got.Occurrences) != 5 {
		t.Fatalf("expected the length-2 candidate with all 5 occurrences, got length=%d occurrences=%d", got.Candidate.Length, len(got.Occurrences))
	}
}

func TestDeterministicOrdering(t *testing.T) {
	candidates := []discovery.Candidate{
		makeCandidate([]uint32{5, 6}, []int{0, 10, 20}),
		makeCandidate([]uint32{1, 2, 3}, []int{30, 40, 50}),
	}
	first := Select(candidates, Options{Mode: Greedy, Overhead: 1})
	second := Select(candidates, Options{Mode: Greedy, Overhead: 1})
	if len(first.Selected) != len(second.Selected) {
		t.Fatalf("non-deterministic selection count")
	}
	for i := range first.Selected {
		if first.Selected[i].Candidate.Length != second.Selected[i].Candidate.Length {
			t.Fatalf("non-deterministic ordering at index %d", i)
		}
	}
	// Longer pattern must sort before shorter pattern per the tie-break rules.
	if len(first.Selected) == 2 && first.Selected[0].Candidate.Length < first.Selected[1].Candidate.Length {
		t.Fatalf("expected longer pattern first, got order %+v", first.Selected)
	}
}
