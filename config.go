package tokcompress

import "fmt"

// SelectionMode names one of the four candidate-selection strategies.
type SelectionMode int

const (
	// SelectionGreedy sorts candidates by savings density and accepts
	// every uncovered occurrence in order.
	SelectionGreedy SelectionMode = iota
	// SelectionOptimal runs weighted interval scheduling over occurrences.
	SelectionOptimal
	// SelectionBeam keeps the top BeamWidth partial selections at each step.
	SelectionBeam
	// SelectionILP formulates selection as a 0/1 program; degrades to
	// SelectionOptimal when no solver is linked.
	SelectionILP
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionGreedy:
		return "greedy"
	case SelectionOptimal:
		return "optimal"
	case SelectionBeam:
		return "beam"
	case SelectionILP:
		return "ilp"
	default:
		return fmt.Sprintf("SelectionMode(%d)", int(m))
	}
}

// Config holds every knob recognized by Compress, Decompress, and Discover.
// Build one with DefaultConfig and zero or more Options, or NewConfig(opts...).
type Config struct {
	MinSubsequenceLength int
	MaxSubsequenceLength int

	SelectionMode SelectionMode
	BeamWidth     int

	HierarchicalEnabled   bool
	HierarchicalMaxDepth  int

	Verify bool

	DictStartToken Token
	DictEndToken   Token
	NextMetaToken  Token

	// Overhead is the fixed per-pattern dictionary cost (in tokens) used by
	// the compressibility constraint and the savings density formula.
	Overhead int

	// PriorityAlpha is the alpha constant in (1 + alpha*priority).
	PriorityAlpha float64

	// MaxMemoryBytes bounds the estimated peak buffer size; 0 means
	// unlimited. Exceeding it produces MemoryExceeded.
	MaxMemoryBytes int64

	// ParallelDiscovery enables the optional parallel-over-lengths
	// discovery mode, running one goroutine per candidate length.
	ParallelDiscovery bool

	// StaticDictionary is applied to the input before dynamic discovery
	// runs; its meta-tokens are reserved before the dynamic counter
	// begins allocating.
	StaticDictionary []StaticEntry

	Scorer  PriorityScorer
	Filter  RegionFilter
	Metrics MetricsRecorder
}

// Option configures a Config.
type Option func(*Config)

// WithMinSubsequenceLength sets the lower bound on candidate pattern length.
func WithMinSubsequenceLength(n int) Option {
	return func(c *Config) { c.MinSubsequenceLength = n }
}

// WithMaxSubsequenceLength sets the upper bound on candidate pattern length.
func WithMaxSubsequenceLength(n int) Option {
	return func(c *Config) { c.MaxSubsequenceLength = n }
}

// WithSelectionMode chooses one of the four selection strategies.
func WithSelectionMode(m SelectionMode) Option {
	return func(c *Config) { c.SelectionMode = m }
}

// WithBeamWidth sets the beam width used by SelectionBeam.
func WithBeamWidth(n int) Option {
	return func(c *Config) { c.BeamWidth = n }
}

// WithHierarchical toggles multi-pass compression.
func WithHierarchical(enabled bool) Option {
	return func(c *Config) { c.HierarchicalEnabled = enabled }
}

// WithHierarchicalMaxDepth sets the maximum number of hierarchical passes.
func WithHierarchicalMaxDepth(n int) Option {
	return func(c *Config) { c.HierarchicalMaxDepth = n }
}

// WithVerify enables a post-emit decompress-and-compare safety check.
func WithVerify(v bool) Option {
	return func(c *Config) { c.Verify = v }
}

// WithDictionaryTokens sets the two reserved control tokens.
func WithDictionaryTokens(start, end Token) Option {
	return func(c *Config) {
		c.DictStartToken = start
		c.DictEndToken = end
	}
}

// WithNextMetaToken sets the first token value the dynamic allocator draws
// from.
func WithNextMetaToken(t Token) Option {
	return func(c *Config) { c.NextMetaToken = t }
}

// WithOverhead sets the fixed per-pattern dictionary cost used by the
// compressibility constraint.
func WithOverhead(n int) Option {
	return func(c *Config) { c.Overhead = n }
}

// WithPriorityAlpha sets the alpha constant in the priority-weighted
// savings formula (1 + alpha*priority).
func WithPriorityAlpha(a float64) Option {
	return func(c *Config) { c.PriorityAlpha = a }
}

// WithMaxMemoryBytes caps the estimated peak buffer size; 0 disables the cap.
func WithMaxMemoryBytes(n int64) Option {
	return func(c *Config) { c.MaxMemoryBytes = n }
}

// WithParallelDiscovery enables the parallel-over-lengths discovery mode.
func WithParallelDiscovery(v bool) Option {
	return func(c *Config) { c.ParallelDiscovery = v }
}

// WithStaticDictionary installs a pre-populated set of pattern bindings,
// applied before dynamic discovery.
func WithStaticDictionary(entries ...StaticEntry) Option {
	return func(c *Config) { c.StaticDictionary = entries }
}

// WithPriorityScorer installs an external candidate scorer.
func WithPriorityScorer(s PriorityScorer) Option {
	return func(c *Config) { c.Scorer = s }
}

// WithRegionFilter installs a protected-span filter.
func WithRegionFilter(f RegionFilter) Option {
	return func(c *Config) { c.Filter = f }
}

// WithMetricsRecorder installs a MetricsRecorder; nil restores the no-op default.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(c *Config) { c.Metrics = m }
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		MinSubsequenceLength: 2,
		MaxSubsequenceLength: 8,
		SelectionMode:        SelectionGreedy,
		BeamWidth:            8,
		HierarchicalEnabled:  true,
		HierarchicalMaxDepth: 3,
		Verify:               false,
		DictStartToken:       0xFFFFFFF0,
		DictEndToken:         0xFFFFFFF1,
		NextMetaToken:        0xFFFF0000,
		Overhead:             2,
		PriorityAlpha:        0.5,
		MaxMemoryBytes:       0,
		ParallelDiscovery:    false,
		Scorer:               DefaultPriorityScorer,
		Filter:               DefaultRegionFilter,
		Metrics:              DefaultMetricsRecorder,
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate rejects contradictory configuration before any work begins.
func (c Config) Validate() error {
	if c.MinSubsequenceLength < 2 {
		return newError(KindConfigInvalid, -1, "min_subsequence_length must be >= 2, got %d", c.MinSubsequenceLength)
	}
	if c.MaxSubsequenceLength < c.MinSubsequenceLength {
		return newError(KindConfigInvalid, -1, "max_subsequence_length (%d) must be >= min_subsequence_length (%d)", c.MaxSubsequenceLength, c.MinSubsequenceLength)
	}
	if c.Overhead < 0 {
		return newError(KindConfigInvalid, -1, "overhead must be >= 0, got %d", c.Overhead)
	}
	if c.DictStartToken == c.DictEndToken {
		return newError(KindConfigInvalid, -1, "dict_start_token and dict_end_token must differ")
	}
	if c.NextMetaToken >= c.DictStartToken || c.NextMetaToken >= c.DictEndToken {
		return newError(KindConfigInvalid, -1, "next_meta_token (%d) must be strictly below both control tokens", c.NextMetaToken)
	}
	if c.SelectionMode == SelectionBeam && c.BeamWidth < 1 {
		return newError(KindConfigInvalid, -1, "beam_width must be >= 1 in beam mode, got %d", c.BeamWidth)
	}
	if c.HierarchicalEnabled && c.HierarchicalMaxDepth < 1 {
		return newError(KindConfigInvalid, -1, "hierarchical_max_depth must be >= 1, got %d", c.HierarchicalMaxDepth)
	}
	if c.SelectionMode < SelectionGreedy || c.SelectionMode > SelectionILP {
		return newError(KindConfigInvalid, -1, "unrecognized selection_mode %d", int(c.SelectionMode))
	}
	for i, e := range c.StaticDictionary {
		if len(e.Pattern) == 0 {
			return newError(KindConfigInvalid, -1, "static dictionary entry %d has an empty pattern", i)
		}
	}
	return nil
}

// resolveStaticTokens first advances the dynamic counter past every explicit
// (non-zero) static Token at or above NextMetaToken, then assigns a
// meta-token to every StaticDictionary entry whose Token field is zero,
// drawing from the counter and advancing it past them. It returns the
// resolved entries together with the next free meta-token for dynamic
// discovery to allocate from.
func (c Config) resolveStaticTokens() ([]StaticEntry, Token) {
	next := c.NextMetaToken
	for _, e := range c.StaticDictionary {
		if e.Token != 0 && e.Token >= next {
			next = e.Token + 1
		}
	}
	resolved := make([]StaticEntry, len(c.StaticDictionary))
	for i, e := range c.StaticDictionary {
		if e.Token == 0 {
			e.Token = next
			next++
		}
		resolved[i] = e
	}
	return resolved, next
}

func (c Config) hooks() (PriorityScorer, RegionFilter, MetricsRecorder) {
	scorer, filter, metrics := c.Scorer, c.Filter, c.Metrics
	if scorer == nil {
		scorer = DefaultPriorityScorer
	}
	if filter == nil {
		filter = DefaultRegionFilter
	}
	if metrics == nil {
		metrics = DefaultMetricsRecorder
	}
	return scorer, filter, metrics
}
