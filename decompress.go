package tokcompress

// Decompress reconstructs the original token sequence from w. If w was
// produced by the hierarchical driver, each layer is peeled with repeated
// single-pass decompression until no DICT_START token remains or
// cfg.HierarchicalMaxDepth passes have run, matching the order the driver
// applied them (outermost layer was emitted last, so it is peeled first).
func Decompress(w Sequence, cfg Config) (Sequence, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	depth := cfg.HierarchicalMaxDepth
	if !cfg.HierarchicalEnabled || depth < 1 {
		depth = 1
	}

	cur := w
	for i := 0; i < depth; i++ {
		next, err := decompressOnePass(cur, cfg)
		if err != nil {
			return nil, err
		}
		if sequenceEqual(next, cur) {
			return next, nil
		}
		cur = next
	}
	return cur, nil
}
