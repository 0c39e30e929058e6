package render

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the chart size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithGroupBy sets how scatter points are split into colored series.
func WithGroupBy(fn GroupFunc) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.groupBy = fn
		}
	}
}
