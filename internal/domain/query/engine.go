package query

import (
	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/types"
)

// Engine binds the view functions to one dataset.
type Engine struct {
	src  Source
	step float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithStep sets the payload slider step.
func WithStep(step float64) Option {
	return func(e *Engine) {
		if step > 0 {
			e.step = step
		}
	}
}

// NewEngine creates an Engine over src.
func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{src: src, step: DefaultStep}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Known reports whether site is the AllSites sentinel or a site in the dataset.
func (e *Engine) Known(site string) bool {
	return site == model.AllSites || e.src.HasSite(site)
}

// Bounds returns the global payload bounds.
func (e *Engine) Bounds() model.Bounds { return e.src.Bounds() }

// Controls describes both dashboard controls.
func (e *Engine) Controls() types.ControlSet { return Controls(e.src, e.step) }

// Distribution is CategoryDistribution over the bound dataset.
func (e *Engine) Distribution(site string) []types.Slice {
	return CategoryDistribution(e.src, site)
}

// Correlation is PayloadCorrelation over the bound dataset.
func (e *Engine) Correlation(site string, lo, hi float64) []model.Launch {
	return PayloadCorrelation(e.src, site, lo, hi)
}
