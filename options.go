package dwg

// Option configures a resolution pass.
// Use functional options to customize Resolve behavior.
//
// Example:
//
//	// Default resolution
//	res := dwg.Resolve(doc)
//
//	// Denser curves, parallel top-level resolution
//	res := dwg.Resolve(doc, dwg.WithArcSegments(96), dwg.WithWorkers(4))
type Option func(*options)

type options struct {
	arcSegments    int
	splineSamples  int
	applyBasePoint bool
	unitScale      float64
	monochrome     bool
	defaultColor   RGB
	workers        int
	cleanEpsilon   float64
}

func defaultResolveOptions() options {
	return options{
		arcSegments:   DefaultArcSegments,
		splineSamples: DefaultSplineSamples,
		unitScale:     1,
		defaultColor:  DefaultColor,
		workers:       1,
	}
}

// WithArcSegments sets the sample count for full arcs, circles, and
// ellipses. Values below 2 keep the default.
func WithArcSegments(n int) Option {
	return func(o *options) {
		if n >= 2 {
			o.arcSegments = n
		}
	}
}

// WithSplineSamples sets the segment count for B-spline sampling; sampled
// curves carry one more point than segments.
func WithSplineSamples(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.splineSamples = n
		}
	}
}

// WithBasePointOffset controls whether a block's base point is subtracted
// from child coordinates when composing insert transforms. Decoders that
// already rebase child coordinates — the common case, and the default here —
// leave this off; enable it for decoders that emit absolute block-local
// coordinates.
func WithBasePointOffset(enabled bool) Option {
	return func(o *options) {
		o.applyBasePoint = enabled
	}
}

// WithUnitScale applies a uniform drawing-unit conversion factor to insert
// transforms. Zero or negative keeps the default of 1.
func WithUnitScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.unitScale = s
		}
	}
}

// WithMonochrome forces every record to the default color, discarding the
// resolved per-entity colors. This is an explicit per-pass setting, not a
// process-wide switch.
func WithMonochrome(enabled bool) Option {
	return func(o *options) {
		o.monochrome = enabled
	}
}

// WithDefaultColor overrides the fallback color used when no color source
// resolves, and the output color of monochrome passes.
func WithDefaultColor(c RGB) Option {
	return func(o *options) {
		o.defaultColor = c
	}
}

// WithWorkers resolves independent top-level entities on n goroutines.
// Output ordering is unaffected: workers write into index-addressed slots.
// Values below 2 keep resolution single-threaded.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithCleanEpsilon sets the vertex-merge distance used when cleaning hatch
// boundary loops. Zero or negative keeps the internal default.
func WithCleanEpsilon(eps float64) Option {
	return func(o *options) {
		o.cleanEpsilon = eps
	}
}
