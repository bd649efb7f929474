package tokcompress

import (
	"github.com/corrolabs/tokcompress/internal/discovery"
	"github.com/corrolabs/tokcompress/internal/suffixarray"
)

// Discover finds every compressible repeated subsequence of t with length
// in [minLen, maxLen], without selecting a non-overlapping subset or
// emitting a dictionary. It is the read-only half of Compress, exposed for
// callers that want to inspect candidates before deciding anything.
func Discover(t Sequence, minLen, maxLen int) ([]Candidate, error) {
	cfg := NewConfig(WithMinSubsequenceLength(minLen), WithMaxSubsequenceLength(maxLen))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateOrdinary(t, cfg); err != nil {
		return nil, err
	}
	scorer, filter, _ := cfg.hooks()
	return discoverCandidates(t, cfg, scorer, filter)
}

func discoverCandidates(t Sequence, cfg Config, scorer PriorityScorer, filter RegionFilter) ([]Candidate, error) {
	sa, lcp := suffixarray.Build(t)
	opts := discovery.Options{
		MinLen:   cfg.MinSubsequenceLength,
		MaxLen:   cfg.MaxSubsequenceLength,
		Overhead: cfg.Overhead,
		Parallel: cfg.ParallelDiscovery,
		Scorer: func(c discovery.Candidate, seq []uint32) float64 {
			return scorer.Score(bridgeCandidate(c), seq)
		},
		Filter: func(c discovery.Candidate) bool {
			return filter.Allows(bridgeCandidate(c))
		},
	}
	raw := discovery.Discover(t, sa, lcp, opts)
	out := make([]Candidate, len(raw))
	for i, c := range raw {
		out[i] = bridgeCandidate(c)
	}
	return out, nil
}

func bridgeCandidate(c discovery.Candidate) Candidate {
	occ := make([]Occurrence, len(c.Occurrences))
	for i, o := range c.Occurrences {
		occ[i] = Occurrence{Start: o.Start, Length: o.Length}
	}
	return Candidate{
		Pattern:     Sequence(c.Pattern),
		Occurrences: occ,
		Length:      c.Length,
		Count:       c.Count,
		RawSavings:  c.RawSavings,
		Priority:    c.Priority,
	}
}

func unbridgeCandidate(c Candidate) discovery.Candidate {
	occ := make([]discovery.Occurrence, len(c.Occurrences))
	for i, o := range c.Occurrences {
		occ[i] = discovery.Occurrence{Start: o.Start, Length: o.Length}
	}
	return discovery.Candidate{
		Pattern:     []uint32(c.Pattern),
		Occurrences: occ,
		Length:      c.Length,
		Count:       c.Count,
		RawSavings:  c.RawSavings,
		Priority:    c.Priority,
	}
}
