package tokcompress

import "sort"

type replacement struct {
	start, length int
	token         Token
}

// substituteOccurrences builds the body stream by replacing every selected
// occurrence of every selected candidate with its assigned meta-token, and
// returns the dictionary entries in the topological order they must be
// emitted in (see topoSortEntries), starting from meta-token assignment
// order (selection order after tie-breaking).
func substituteOccurrences(t Sequence, selected []selectedCandidate) (body Sequence, entries []DictionaryEntry) {
	var repls []replacement
	entries = make([]DictionaryEntry, len(selected))
	for i, sc := range selected {
		entries[i] = DictionaryEntry{MetaToken: sc.token, Definition: sc.pattern}
		for _, occ := range sc.occurrences {
			repls = append(repls, replacement{start: occ.Start, length: occ.Length, token: sc.token})
		}
	}
	sort.Slice(repls, func(i, j int) bool { return repls[i].start < repls[j].start })

	body = make(Sequence, 0, len(t))
	pos := 0
	for _, r := range repls {
		body = append(body, t[pos:r.start]...)
		body = append(body, r.token)
		pos = r.start + r.length
	}
	body = append(body, t[pos:]...)
	return body, topoSortEntries(entries)
}

// topoSortEntries orders dictionary entries so that any meta-token
// referenced by another entry's definition is defined earlier in the list,
// using a DFS with three-color marking. Entries are acyclic by
// construction, but the sort itself does not assume that.
func topoSortEntries(entries []DictionaryEntry) []DictionaryEntry {
	byToken := make(map[Token]int, len(entries))
	for i, e := range entries {
		byToken[e.MetaToken] = i
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(entries))
	order := make([]DictionaryEntry, 0, len(entries))

	var visit func(i int) error
	visit = func(i int) error {
		if color[i] == black {
			return nil
		}
		color[i] = gray
		for _, tok := range entries[i].Definition {
			if j, ok := byToken[tok]; ok {
				if color[j] == gray {
					continue // defensive: construction never produces cycles here
				}
				if err := visit(j); err != nil {
					return err
				}
			}
		}
		color[i] = black
		order = append(order, entries[i])
		return nil
	}
	for i := range entries {
		_ = visit(i)
	}
	return order
}

// emitStream assembles the final wire-format stream: DICT_START, each
// dictionary entry as [meta_token][length][definition...], DICT_END, then
// the body. An empty selection produces a stream identical to the body.
func emitStream(body Sequence, entries []DictionaryEntry, cfg Config) Sequence {
	if len(entries) == 0 {
		return body
	}
	out := make(Sequence, 0, len(body)+4*len(entries)+2)
	out = append(out, cfg.DictStartToken)
	for _, e := range entries {
		out = append(out, e.MetaToken, Token(len(e.Definition)))
		out = append(out, e.Definition...)
	}
	out = append(out, cfg.DictEndToken)
	out = append(out, body...)
	return out
}
