package diff

// Level selects how hard the generator works to shrink the operation list.
type Level uint8

const (
	// LevelNone emits one SetCell per differing cell.
	LevelNone Level = iota
	// LevelBasic merges contiguous runs of differing cells into spans.
	LevelBasic
	// LevelBalanced adds vertical scroll recognition on top of span merging.
	LevelBalanced
	// LevelAggressive aliases LevelBalanced. It is reserved for a future
	// cost-minimizing search over block moves and scrolls.
	LevelAggressive
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelBasic:
		return "basic"
	case LevelBalanced:
		return "balanced"
	case LevelAggressive:
		return "aggressive"
	}
	return "unknown"
}

// ParseLevel maps a configuration string to a Level.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "none":
		return LevelNone, true
	case "basic":
		return LevelBasic, true
	case "balanced":
		return LevelBalanced, true
	case "aggressive":
		return LevelAggressive, true
	}
	return LevelNone, false
}

// DefaultMergeThreshold is the span cutoff used when Options leaves the
// threshold unset.
const DefaultMergeThreshold = 4

// Options tune diff generation. The zero value is a valid configuration
// (LevelNone, no scroll detection); most callers start from DefaultOptions.
type Options struct {
	Level Level
	// DetectScrolling enables scroll recognition at LevelBalanced and above.
	DetectScrolling bool
	// MergeThreshold is the minimum run length emitted as one SetSpan
	// instead of individual SetCell ops. Zero or negative selects
	// DefaultMergeThreshold.
	MergeThreshold int
}

// DefaultOptions returns the configuration suited to most frame loops.
func DefaultOptions() Options {
	return Options{
		Level:           LevelBalanced,
		DetectScrolling: true,
		MergeThreshold:  DefaultMergeThreshold,
	}
}

func (o Options) normalized() Options {
	if o.MergeThreshold <= 0 {
		o.MergeThreshold = DefaultMergeThreshold
	}
	return o
}
