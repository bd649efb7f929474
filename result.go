package tokcompress

// Metrics summarizes what happened during a Compress call, independent of
// any MetricsRecorder hook.
type Metrics struct {
	// PassesRun is the number of hierarchical passes that produced a
	// dictionary, or 1 when none did (always 1 when hierarchical compression
	// is disabled). A final hierarchical pass that selects nothing is not
	// counted.
	PassesRun int
	// CandidatesFound is the total number of compressible candidates
	// discovery produced before selection, summed over the passes counted
	// in PassesRun that produced a dictionary (or the single pass when
	// hierarchical compression is disabled).
	CandidatesFound int
	// OccurrencesSelected is the total number of occurrences selection
	// accepted across all passes.
	OccurrencesSelected int
}

// CompressionResult is the output of Compress: a self-describing token
// stream plus the pieces it was assembled from.
type CompressionResult struct {
	OriginalLength   int
	CompressedLength int
	// Ratio is OriginalLength / CompressedLength, or 0 when CompressedLength is 0.
	Ratio float64

	// Stream is the full wire-format output: dictionary section followed
	// by body, exactly as Decompress expects to receive it.
	Stream Sequence
	// Dictionary is the ordered list of entries emitted in Stream's
	// dictionary section.
	Dictionary []DictionaryEntry
	// Body is Stream with the dictionary section stripped.
	Body Sequence

	// StaticDictionaryID optionally names the static dictionary applied
	// before dynamic discovery; empty when none was configured or the
	// caller did not set one.
	StaticDictionaryID string

	Metrics Metrics
}

func (r CompressionResult) computeRatio() float64 {
	if r.CompressedLength == 0 {
		return 0
	}
	return float64(r.OriginalLength) / float64(r.CompressedLength)
}
