package tokcompress

import (
	"errors"
	"testing"
)

func TestDecompressPassthroughWithoutDictStart(t *testing.T) {
	cfg := DefaultConfig()
	input := Sequence{1, 2, 3, 4}
	got, err := Decompress(input, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sequenceEqual(got, input) {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

func TestDecompressTruncatedDictionary(t *testing.T) {
	cfg := DefaultConfig()
	// DICT_START with no DICT_END.
	w := Sequence{cfg.DictStartToken, cfg.NextMetaToken, 2, 1, 2}
	_, err := Decompress(w, cfg)
	if err == nil {
		t.Fatalf("expected Truncated error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindTruncated {
		t.Fatalf("expected KindTruncated, got %v", err)
	}
}

func TestDecompressUndefinedMetaTokenReference(t *testing.T) {
	cfg := DefaultConfig()
	meta := cfg.NextMetaToken
	w := Sequence{cfg.DictStartToken, cfg.DictEndToken, meta, 9, 9}
	_, err := Decompress(w, cfg)
	if err == nil {
		t.Fatalf("expected UndefinedMetaToken error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindUndefinedMetaToken {
		t.Fatalf("expected KindUndefinedMetaToken, got %v", err)
	}
}

func TestDecompressCycleDetection(t *testing.T) {
	cfg := DefaultConfig()
	a := cfg.NextMetaToken
	b := cfg.NextMetaToken + 1
	// a's definition references b, b's definition references a: a cycle.
	w := Sequence{
		cfg.DictStartToken,
		a, 1, b,
		b, 1, a,
		cfg.DictEndToken,
		a,
	}
	_, err := Decompress(w, cfg)
	if err == nil {
		t.Fatalf("expected Cycle error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindCycle {
		t.Fatalf("expected KindCycle, got %v", err)
	}
}

func TestDecompressTruncatedDefinitionOffsetIsWhereDefectIsDetected(t *testing.T) {
	cfg := DefaultConfig()
	m := cfg.NextMetaToken
	// Declared length 5 but only 2 data tokens before the real DICT_END:
	// the defect is detected where DICT_END is hit mid-definition, index 5.
	w := Sequence{cfg.DictStartToken, m, 5, 1, 2, cfg.DictEndToken, m}
	_, err := parseDictionary(w, cfg, 0)
	if err == nil {
		t.Fatalf("expected Truncated error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindTruncated {
		t.Fatalf("expected KindTruncated, got %v", err)
	}
	var tcErr *Error
	if !errors.As(err, &tcErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if tcErr.Offset != 5 {
		t.Fatalf("expected offset 5, got %d", tcErr.Offset)
	}
}

// TestDecompressPeelsEmbeddedInnerDictionaryFraming reproduces a genuine
// two-layer hierarchical stream: an outer dictionary wraps a body that
// itself still contains an inner pass's literal, un-absorbed dictionary
// framing (including a bare reference to the inner pass's own meta-token).
// Peeling the outer layer must not mistake that inner meta-token for an
// undefined reference in the outer dictionary.
func TestDecompressPeelsEmbeddedInnerDictionaryFraming(t *testing.T) {
	cfg := DefaultConfig()
	innerMeta := cfg.NextMetaToken
	outerMeta := cfg.NextMetaToken + 100

	w := Sequence{
		cfg.DictStartToken, outerMeta, 2, 9, 9, cfg.DictEndToken, // outer dictionary: outerMeta -> [9,9]
		cfg.DictStartToken, innerMeta, 2, 7, 8, cfg.DictEndToken, // embedded inner framing, not absorbed by the outer pass
		innerMeta, // bare leftover reference to the inner pass's own meta-token
		outerMeta,
	}

	got, err := Decompress(w, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Sequence{7, 8, 9, 9}
	if !sequenceEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDecompressExpandsNestedDefinitions(t *testing.T) {
	cfg := DefaultConfig()
	inner := cfg.NextMetaToken
	outer := cfg.NextMetaToken + 1
	w := Sequence{
		cfg.DictStartToken,
		inner, 2, 7, 8,
		outer, 3, inner, inner, 9,
		cfg.DictEndToken,
		outer, 1,
	}
	got, err := Decompress(w, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Sequence{7, 8, 7, 8, 9, 1}
	if !sequenceEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
