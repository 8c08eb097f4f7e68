package planner

// Defaults for Options fields left at zero
const (
	DefaultDetourMargin     = 15.0
	DefaultMaxDepth         = 6
	DefaultMaxDetourRetries = 32
	DefaultLengthTolerance  = 1e-9
)

// Options tunes a Planner
type Options struct {
	// DetourMargin is added to the obstacle diameter to get the waypoint offset.
	// Zero is kept as is; a negative value selects DefaultDetourMargin.
	DetourMargin float64
	// MaxDepth bounds the recursion; deeper collisions are left in place and
	// the route is marked unsafe.
	MaxDepth int
	// MaxDetourRetries bounds how often a blocked waypoint is pushed further out
	MaxDetourRetries int
	// Detector finds collisions; nil means a SampledDetector with default steps
	Detector Detector
	// LengthTolerance is the absolute and relative epsilon used when comparing
	// route lengths.
	LengthTolerance float64
	// FailOnDepthExceeded turns unsafe routes into errors
	FailOnDepthExceeded bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		DetourMargin:     DefaultDetourMargin,
		MaxDepth:         DefaultMaxDepth,
		MaxDetourRetries: DefaultMaxDetourRetries,
		Detector:         SampledDetector{Steps: DefaultSampleSteps},
		LengthTolerance:  DefaultLengthTolerance,
	}
}

func (o Options) withDefaults() Options {
	if o.DetourMargin < 0 {
		o.DetourMargin = DefaultDetourMargin
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxDetourRetries <= 0 {
		o.MaxDetourRetries = DefaultMaxDetourRetries
	}
	if o.Detector == nil {
		o.Detector = SampledDetector{Steps: DefaultSampleSteps}
	}
	if o.LengthTolerance <= 0 {
		o.LengthTolerance = DefaultLengthTolerance
	}
	return o
}
