package tokcompress

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsBadBounds(t *testing.T) {
	cfg := NewConfig(WithMinSubsequenceLength(8), WithMaxSubsequenceLength(2))
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error for max < min")
	}
	if kind, ok := KindOf(err); !ok || kind != KindConfigInvalid {
		t.Fatalf("expected KindConfigInvalid, got %v", err)
	}
}

func TestValidateRejectsOverlappingMetaAndControl(t *testing.T) {
	cfg := NewConfig(WithDictionaryTokens(100, 100))
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when dict_start_token == dict_end_token")
	}
}

func TestValidateRejectsBeamWithoutWidth(t *testing.T) {
	cfg := NewConfig(WithSelectionMode(SelectionBeam), WithBeamWidth(0))
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for beam mode with zero width")
	}
}

func TestResolveStaticTokensAdvancesCounter(t *testing.T) {
	cfg := NewConfig(WithNextMetaToken(1000), WithStaticDictionary(
		StaticEntry{Pattern: Sequence{1, 2}},
		StaticEntry{Pattern: Sequence{3, 4}},
	))
	resolved, next := cfg.resolveStaticTokens()
	if resolved[0].Token != 1000 || resolved[1].Token != 1001 {
		t.Fatalf("unexpected token assignment: %+v", resolved)
	}
	if next != 1002 {
		t.Fatalf("next = %d, want 1002", next)
	}
}

func TestResolveStaticTokensRespectsExplicitToken(t *testing.T) {
	cfg := NewConfig(WithNextMetaToken(1000), WithStaticDictionary(
		StaticEntry{Pattern: Sequence{1, 2}, Token: 5000},
	))
	resolved, next := cfg.resolveStaticTokens()
	if resolved[0].Token != 5000 {
		t.Fatalf("explicit token not respected: %+v", resolved)
	}
	if next != 5001 {
		t.Fatalf("next should advance past the explicitly supplied static token, got %d, want 5001", next)
	}
}
