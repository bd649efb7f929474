package tokcompress

import (
	"github.com/corrolabs/tokcompress/internal/discovery"
	"github.com/corrolabs/tokcompress/internal/selection"
)

type selectedCandidate struct {
	pattern     Sequence
	occurrences []Occurrence
	token       Token
}

// Compress discovers repeated subsequences, selects a non-overlapping
// net-beneficial subset, assigns meta-tokens in selection order, and emits
// the dictionary+body wire stream. When cfg.HierarchicalEnabled is set,
// additional passes run over the previous pass's full output.
func Compress(t Sequence, cfg Config) (CompressionResult, error) {
	if err := cfg.Validate(); err != nil {
		return CompressionResult{}, err
	}
	if err := validateOrdinary(t, cfg); err != nil {
		return CompressionResult{}, err
	}
	if err := checkMemoryBudget(len(t), cfg); err != nil {
		return CompressionResult{}, err
	}

	_, _, metrics := cfg.hooks()

	if cfg.HierarchicalEnabled {
		return compressHierarchical(t, cfg)
	}

	res, err := compressOnePass(t, cfg)
	if err != nil {
		return CompressionResult{}, err
	}
	res.Metrics.PassesRun = 1
	res.Ratio = res.computeRatio()
	metrics.ObserveRatio(res.Ratio)
	metrics.IncPasses()

	if cfg.Verify {
		if err := verifyRoundTrip(t, res, cfg); err != nil {
			return CompressionResult{}, err
		}
	}
	return res, nil
}

// compressOnePass runs a single discovery -> selection -> serialize cycle
// with no hierarchical looping.
func compressOnePass(t Sequence, cfg Config) (CompressionResult, error) {
	staticEntries, nextMeta := cfg.resolveStaticTokens()
	working, staticDict := applyStaticDictionary(t, staticEntries)

	scorer, filter, _ := cfg.hooks()
	rawCandidates, err := discoverCandidates(working, withNextMeta(cfg, nextMeta), scorer, filter)
	if err != nil {
		return CompressionResult{}, err
	}

	sel := selectCandidates(rawCandidates, cfg)

	assigned := assignMetaTokens(sel, nextMeta)
	body, entries := substituteOccurrences(working, assigned)
	entries = append(staticDict, entries...)
	stream := emitStream(body, entries, cfg)

	return CompressionResult{
		OriginalLength:   len(t),
		CompressedLength: len(stream),
		Stream:           stream,
		Dictionary:       entries,
		Body:             body,
		Metrics: Metrics{
			CandidatesFound:     len(rawCandidates),
			OccurrencesSelected: countOccurrences(assigned),
		},
	}, nil
}

// checkMemoryBudget estimates the peak buffer size of a single compression
// pass: the input array, the suffix array, the LCP array, and their rank
// scratch buffers, each one machine word per token. It rejects the call
// before any work starts if that estimate exceeds cfg.MaxMemoryBytes. A
// budget of 0 disables the check.
func checkMemoryBudget(n int, cfg Config) error {
	if cfg.MaxMemoryBytes <= 0 {
		return nil
	}
	const wordsPerToken = 5 // token + sa + lcp + rank + tmp, int-sized
	estimate := int64(n) * wordsPerToken * 8
	if estimate > cfg.MaxMemoryBytes {
		return newError(KindMemoryExceeded, -1, "estimated peak memory %d bytes exceeds cap %d bytes for %d tokens", estimate, cfg.MaxMemoryBytes, n)
	}
	return nil
}

func withNextMeta(cfg Config, next Token) Config {
	cfg.NextMetaToken = next
	return cfg
}

// applyStaticDictionary substitutes any statically bound patterns before
// dynamic discovery runs. The input is scanned left to right; at each
// position the entries are tried in the order they were declared, and the
// first one that matches is substituted. Only entries that matched at least
// once are returned as dictionary entries.
func applyStaticDictionary(t Sequence, entries []StaticEntry) (Sequence, []DictionaryEntry) {
	if len(entries) == 0 {
		return t, nil
	}
	out := make(Sequence, 0, len(t))
	dictEntries := make([]DictionaryEntry, 0, len(entries))
	used := make(map[Token]bool)
	i := 0
	for i < len(t) {
		matched := false
		for _, e := range entries {
			n := len(e.Pattern)
			if n == 0 || i+n > len(t) {
				continue
			}
			if sequenceEqual(t[i:i+n], e.Pattern) {
				out = append(out, e.Token)
				if !used[e.Token] {
					used[e.Token] = true
					dictEntries = append(dictEntries, DictionaryEntry{MetaToken: e.Token, Definition: e.Pattern})
				}
				i += n
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, t[i])
			i++
		}
	}
	return out, dictEntries
}

func selectCandidates(candidates []Candidate, cfg Config) selection.Result {
	conv := make([]discovery.Candidate, len(candidates))
	for i, c := range candidates {
		conv[i] = unbridgeCandidate(c)
	}
	return selection.Select(conv, selection.Options{
		Mode:      selection.Mode(cfg.SelectionMode),
		BeamWidth: cfg.BeamWidth,
		AlphaF:    cfg.PriorityAlpha,
		Overhead:  cfg.Overhead,
	})
}

func assignMetaTokens(result selection.Result, nextMeta Token) []selectedCandidate {
	out := make([]selectedCandidate, len(result.Selected))
	for i, sc := range result.Selected {
		occ := make([]Occurrence, len(sc.Occurrences))
		for j, o := range sc.Occurrences {
			occ[j] = Occurrence{Start: o.Start, Length: o.Length}
		}
		out[i] = selectedCandidate{
			pattern:     Sequence(sc.Candidate.Pattern),
			occurrences: occ,
			token:       nextMeta + Token(i),
		}
	}
	return out
}

func countOccurrences(selected []selectedCandidate) int {
	n := 0
	for _, s := range selected {
		n += len(s.occurrences)
	}
	return n
}

func verifyRoundTrip(original Sequence, res CompressionResult, cfg Config) error {
	got, err := Decompress(res.Stream, cfg)
	if err != nil {
		return newError(KindVerificationFailure, -1, "round-trip decompress failed: %v", err)
	}
	if !sequenceEqual(original, got) {
		d := firstDiff(original, got)
		return newError(KindVerificationFailure, d, "round-trip mismatch at offset %d", d)
	}
	return nil
}
