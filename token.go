package tokcompress

import "fmt"

// Token is a single token ID. Values are partitioned into three disjoint
// ranges: ordinary (application tokens, below Config.NextMetaToken),
// meta (assigned to discovered patterns), and control (the two fixed
// dictionary-framing values).
type Token = uint32

// Sequence is an immutable, finite sequence of tokens. A nil Sequence and
// an empty Sequence both represent zero tokens.
type Sequence = []Token

// rangeKind classifies a token against a configuration's reserved ranges.
type rangeKind int

const (
	rangeOrdinary rangeKind = iota
	rangeMeta
	rangeControl
)

func classify(t Token, cfg Config) rangeKind {
	switch {
	case t == cfg.DictStartToken || t == cfg.DictEndToken:
		return rangeControl
	case t >= cfg.NextMetaToken:
		return rangeMeta
	default:
		return rangeOrdinary
	}
}

// validateOrdinary scans seq for any token that collides with the meta or
// control ranges of cfg. Any token value at or above cfg.NextMetaToken
// (including the control tokens, which always lie above it) is a
// collision, even if that particular value is never actually allocated
// during this call; see SPEC_FULL.md for the rejected narrower reading.
func validateOrdinary(seq Sequence, cfg Config) error {
	for i, t := range seq {
		if classify(t, cfg) != rangeOrdinary {
			return newError(KindTokenRangeCollision, i, "input token %d at offset %d falls in the reserved meta/control range", t, i)
		}
	}
	return nil
}

func sequenceEqual(a, b Sequence) bool {
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

// firstDiff returns the index of the first position at which a and b
// differ, or the length of the shorter sequence if one is a prefix of the
// other.
func firstDiff(a, b Sequence) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func lexCompare(a, b Sequence) int {
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

func (k rangeKind) String() string {
	switch k {
	case rangeOrdinary:
		return "ordinary"
	case rangeMeta:
		return "meta"
	case rangeControl:
		return "control"
	default:
		return fmt.Sprintf("rangeKind(%d)", int(k))
	}
}
