package tokcompress

// compressHierarchical runs repeated single-pass compression over the
// previous pass's full output, up to
// cfg.HierarchicalMaxDepth times or until a pass selects nothing. Each
// pass's meta-tokens live in a disjoint sub-range of the meta range so that
// outer and inner dictionaries never collide; the driver is sequential.
func compressHierarchical(t Sequence, cfg Config) (CompressionResult, error) {
	_, _, metrics := cfg.hooks()

	depth := cfg.HierarchicalMaxDepth
	block := (int64(cfg.DictStartToken) - int64(cfg.NextMetaToken)) / int64(depth)
	if block < 1 {
		block = 1
	}

	cur := t
	var passDicts [][]DictionaryEntry
	var lastBody Sequence
	candidatesFound := 0
	occurrencesSelected := 0

	for k := 0; k < depth; k++ {
		passCfg := cfg
		passCfg.HierarchicalEnabled = false
		passCfg.NextMetaToken = cfg.NextMetaToken + Token(int64(k)*block)
		if k > 0 {
			// The static dictionary binds patterns in the original input's
			// domain; later passes operate over the previous pass's
			// already-framed output and do not re-apply it.
			passCfg.StaticDictionary = nil
		}

		res, err := compressOnePass(cur, passCfg)
		if err != nil {
			return CompressionResult{}, err
		}
		metrics.IncPasses()

		if len(res.Dictionary) == 0 {
			break
		}

		passDicts = append(passDicts, res.Dictionary)
		lastBody = res.Body
		candidatesFound += res.Metrics.CandidatesFound
		occurrencesSelected += res.Metrics.OccurrencesSelected
		cur = res.Stream
	}

	allEntries := make([]DictionaryEntry, 0)
	for i := len(passDicts) - 1; i >= 0; i-- {
		allEntries = append(allEntries, passDicts[i]...)
	}

	result := CompressionResult{
		OriginalLength:   len(t),
		CompressedLength: len(cur),
		Stream:           cur,
		Dictionary:       allEntries,
		Body:             lastBody,
		Metrics: Metrics{
			PassesRun:           len(passDicts),
			CandidatesFound:     candidatesFound,
			OccurrencesSelected: occurrencesSelected,
		},
	}
	if result.Metrics.PassesRun == 0 {
		result.Metrics.PassesRun = 1
		result.Body = cur
	}
	result.Ratio = result.computeRatio()
	metrics.ObserveRatio(result.Ratio)

	if cfg.Verify {
		if err := verifyRoundTrip(t, result, cfg); err != nil {
			return CompressionResult{}, err
		}
	}
	return result, nil
}
