package tokcompress

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// parseDictionary reads the [meta_token][length][definition...] entries
// between DICT_START and DICT_END, returning the map of definitions and the
// offset of the first body token. It reports Truncated if the stream ends
// before DICT_END or a length field runs past the end of the stream.
func parseDictionary(w Sequence, cfg Config, dictStart int) (map[Token]Sequence, int, error) {
	defs := make(map[Token]Sequence)
	i := dictStart + 1
	for {
		if i >= len(w) {
			return nil, 0, newError(KindTruncated, len(w), "stream ends before DICT_END")
		}
		if w[i] == cfg.DictEndToken {
			return defs, i + 1, nil
		}
		if i+1 >= len(w) {
			return nil, 0, newError(KindTruncated, len(w), "dictionary entry truncated before length field")
		}
		metaTok := w[i]
		length := int(w[i+1])
		defStart := i + 2
		def := make(Sequence, 0, length)
		j := defStart
		for len(def) < length {
			if j >= len(w) || w[j] == cfg.DictEndToken {
				return nil, 0, newError(KindTruncated, j, "definition of meta-token %d runs past end of stream", metaTok)
			}
			def = append(def, w[j])
			j++
		}
		defs[metaTok] = def
		i = j
	}
}

// layerFloor returns the lowest meta-token actually defined in defs, or
// cfg.NextMetaToken when defs is empty. A hierarchical stream's outer
// dictionary only ever defines the meta-tokens its own pass allocated;
// anything below that floor belongs to an inner pass whose dictionary has
// not been peeled yet. A single-layer stream's one dictionary has no inner
// layer to defer to, so the empty-defs fallback keeps it strict.
func layerFloor(defs map[Token]Sequence, cfg Config) Token {
	floor := cfg.NextMetaToken
	first := true
	for tok := range defs {
		if first || tok < floor {
			floor = tok
			first = false
		}
	}
	return floor
}

// expandBody walks body, emitting each ordinary token as-is and recursively
// expanding each meta-token reference via defs. Expansion is memoized per
// meta-token (via an LRU cache, bounded so a pathological stream with a huge
// number of distinct meta-tokens cannot grow memory unboundedly) and guarded
// against cycles with three-color marking. A meta-classified token below
// this layer's floor (see layerFloor) is not this dictionary's to resolve:
// it is left untouched for a later decompression pass to peel.
func expandBody(body Sequence, defs map[Token]Sequence, cfg Config) (Sequence, error) {
	cache, _ := lru.New[Token, Sequence](4096)
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[Token]int, len(defs))
	floor := layerFloor(defs, cfg)

	var expand func(tok Token, offset int) (Sequence, error)
	expand = func(tok Token, offset int) (Sequence, error) {
		if cached, ok := cache.Get(tok); ok {
			return cached, nil
		}
		def, ok := defs[tok]
		if !ok {
			return nil, newError(KindUndefinedMetaToken, offset, "meta-token %d has no dictionary entry", tok)
		}
		if color[tok] == gray {
			return nil, newError(KindCycle, offset, "meta-token %d is part of a definition cycle", tok)
		}
		color[tok] = gray
		out := make(Sequence, 0, len(def))
		for _, t := range def {
			if classify(t, cfg) == rangeMeta && t >= floor {
				sub, err := expand(t, offset)
				if err != nil {
					return nil, err
				}
				out = append(out, sub...)
			} else {
				out = append(out, t)
			}
		}
		color[tok] = black
		cache.Add(tok, out)
		return out, nil
	}

	result := make(Sequence, 0, len(body))
	for i, t := range body {
		if classify(t, cfg) == rangeMeta && t >= floor {
			expanded, err := expand(t, i)
			if err != nil {
				return nil, err
			}
			result = append(result, expanded...)
		} else {
			result = append(result, t)
		}
	}
	return result, nil
}

// decompressOnePass locates the first DICT_START, returning w unchanged if
// absent, otherwise parses the dictionary and expands the body against it.
func decompressOnePass(w Sequence, cfg Config) (Sequence, error) {
	dictStart := -1
	for i, t := range w {
		if t == cfg.DictStartToken {
			dictStart = i
			break
		}
	}
	if dictStart == -1 {
		return w, nil
	}
	defs, bodyStart, err := parseDictionary(w, cfg, dictStart)
	if err != nil {
		return nil, err
	}
	body := w[bodyStart:]
	return expandBody(body, defs, cfg)
}
