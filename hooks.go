package tokcompress

// PriorityScorer assigns an external importance score in [0,1] to a
// candidate. Selection multiplies its ordering savings by (1 + alpha*p);
// it never relaxes the non-overlap or net-savings invariants.
type PriorityScorer interface {
	Score(c Candidate, t Sequence) float64
}

// PriorityScorerFunc adapts a plain function to a PriorityScorer.
type PriorityScorerFunc func(c Candidate, t Sequence) float64

// Score implements PriorityScorer.
func (f PriorityScorerFunc) Score(c Candidate, t Sequence) float64 { return f(c, t) }

type identityScorer struct{}

func (identityScorer) Score(Candidate, Sequence) float64 { return 0 }

// DefaultPriorityScorer assigns every candidate priority zero, leaving
// ordering untouched by the priority hook.
var DefaultPriorityScorer PriorityScorer = identityScorer{}

// RegionFilter may reject a candidate whose occurrences fall in a
// protected span of the input. Rejected candidates are dropped entirely
// from discovery's output.
type RegionFilter interface {
	Allows(c Candidate) bool
}

// RegionFilterFunc adapts a plain function to a RegionFilter.
type RegionFilterFunc func(c Candidate) bool

// Allows implements RegionFilter.
func (f RegionFilterFunc) Allows(c Candidate) bool { return f(c) }

type allowAllFilter struct{}

func (allowAllFilter) Allows(Candidate) bool { return true }

// DefaultRegionFilter allows every candidate through.
var DefaultRegionFilter RegionFilter = allowAllFilter{}

// MetricsRecorder observes compression outcomes. The default recorder is
// a no-op, keeping Compress a pure function unless a caller opts in.
type MetricsRecorder interface {
	// ObserveRatio records the original/compressed length ratio of a
	// completed compression (hierarchical or single-pass).
	ObserveRatio(ratio float64)
	// IncPasses records that one hierarchical pass ran.
	IncPasses()
}

type noopMetrics struct{}

func (noopMetrics) ObserveRatio(float64) {}
func (noopMetrics) IncPasses()           {}

// DefaultMetricsRecorder discards every observation.
var DefaultMetricsRecorder MetricsRecorder = noopMetrics{}

// StaticEntry binds a pattern to a reserved meta-token, applied to the
// input before dynamic discovery runs. Token is the meta-token this
// pattern is bound to; entries are numbered in the order they appear in
// Config.StaticDictionary, and Config.resolveStaticTokens assigns a
// meta-token to every entry with Token == 0 by advancing the dynamic
// counter past them. The counter is also advanced past any explicit Token
// at or above Config.NextMetaToken.
type StaticEntry struct {
	Pattern Sequence
	Token   Token
}
