package discovery

import (
	"testing"

	"github.com/corrolabs/tokcompress/internal/suffixarray"
)

func discoverAll(t []uint32, minLen, maxLen, overhead int) []Candidate {
	sa, lcp := suffixarray.Build(t)
	return Discover(t, sa, lcp, Options{MinLen: minLen, MaxLen: maxLen, Overhead: overhead})
}

func TestDiscoverFindsRepeatedPattern(t *testing.T) {
	tok := []uint32{1, 2, 3, 9, 9, 1, 2, 3, 9, 9, 1, 2, 3}
	cands := discoverAll(tok, 2, 8, 1)
	if len(cands) == 0 {
		t.Fatalf("expected at least one candidate")
	}
	found := false
	for _, c := range cands {
		if len(c.Pattern) == 3 && c.Pattern[0] == 1 && c.Pattern[1] == 2 && c.Pattern[2] == 3 {
			found = true
			if c.Count != 3 {
				t.Errorf("pattern [1 2 3] count = %d, want 3", c.Count)
			}
		}
	}
	if !found {
		t.Fatalf("did not find pattern [1 2 3] among %d candidates", len(cands))
	}
}

func TestDiscoverNonOverlapping(t *testing.T) {
	tok := []uint32{1, 1, 1, 1, 1}
	cands := discoverAll(tok, 2, 3, 0)
	for _, c := range cands {
		for i := 1; i < len(c.Occurrences); i++ {
			prevEnd := c.Occurrences[i-1].Start + c.Occurrences[i-1].Length
			if c.Occurrences[i].Start < prevEnd {
				t.Fatalf("candidate %v has overlapping occurrences: %v", c.Pattern, c.Occurrences)
			}
		}
	}
}

func TestDiscoverEmptyInput(t *testing.T) {
	if cands := discoverAll(nil, 2, 8, 1); cands != nil {
		t.Fatalf("expected nil for empty input, got %v", cands)
	}
}

func TestDiscoverRespectsOverheadThreshold(t *testing.T) {
	// A pattern occurring twice with length 2 saves 2*2 - (2+2+overhead).
	// With a large overhead the net is non-positive and it must be dropped.
	tok := []uint32{5, 6, 0, 0, 0, 5, 6}
	cands := discoverAll(tok, 2, 2, 100)
	for _, c := range cands {
		if !c.compressible() {
			t.Fatalf("non-compressible candidate leaked into result: %+v", c)
		}
	}
}

func (c Candidate) compressible() bool { return c.RawSavings > 0 }

func TestDiscoverParallelMatchesSequential(t *testing.T) {
	tok := make([]uint32, 0, 200)
	for i := 0; i < 40; i++ {
		tok = append(tok, 1, 2, 3, 4, 5)
	}
	sa, lcp := suffixarray.Build(tok)
	seq := Discover(tok, sa, lcp, Options{MinLen: 2, MaxLen: 5, Overhead: 1})
	par := Discover(tok, sa, lcp, Options{MinLen: 2, MaxLen: 5, Overhead: 1, Parallel: true})
	if len(seq) != len(par) {
		t.Fatalf("parallel discovery found %d candidates, sequential found %d", len(par), len(seq))
	}
	for i := range seq {
		if seq[i].Length != par[i].Length || seq[i].Count != par[i].Count {
			t.Fatalf("candidate %d differs: seq=%+v par=%+v", i, seq[i], par[i])
		}
	}
}
