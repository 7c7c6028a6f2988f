package track

// Options configures a Catalog at construction time.
type Options struct {
	// classSize is N, the number of tracks/residents the catalog serves.
	// Defaults to len(base) when zero.
	classSize int
}

// DefaultOptions returns the zero-value Options, letting NewCatalog infer
// classSize from the base sequence length.
func DefaultOptions() Options { return Options{} }

// Option mutates Options during NewCatalog construction.
type Option func(*Options)

// WithClassSize fixes N explicitly, for the L != N duplicate/missed-rotation
// cases. Panics if size is not positive: an invalid class size is a
// programmer error at construction time, not a runtime condition to
// recover from.
func WithClassSize(size int) Option {
	if size <= 0 {
		panic("track: WithClassSize requires a positive size")
	}
	return func(o *Options) { o.classSize = size }
}
