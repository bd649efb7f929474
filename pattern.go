package tokcompress

// Occurrence is a (start, length) pair identifying a slice T[Start:Start+Length]
// of the input sequence.
type Occurrence struct {
	Start  int
	Length int
}

// Candidate is a pattern together with its filtered occurrence list and
// savings metrics, as produced by Discover.
type Candidate struct {
	// Pattern is the token contents of the candidate, not its position.
	Pattern Sequence
	// Occurrences is the canonical, non-overlapping occurrence list
	// computed by discovery's greedy filter.
	Occurrences []Occurrence
	// Length is len(Pattern).
	Length int
	// Count is len(Occurrences).
	Count int
	// RawSavings is length*count - (length+count+overhead).
	RawSavings int
	// Priority is an external importance score in [0,1], zero unless a
	// PriorityScorer hook is configured.
	Priority float64
}

// Compressible reports whether the candidate satisfies the compressibility
// constraint length*count > length+count+overhead.
func (c Candidate) Compressible() bool { return c.RawSavings > 0 }

// DictionaryEntry is a single (meta_token, definition) pair in the emitted
// dictionary section. Definitions may themselves contain meta-tokens,
// provided the reference graph across all entries is acyclic.
type DictionaryEntry struct {
	MetaToken  Token
	Definition Sequence
}
