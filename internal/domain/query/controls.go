package query

import (
	"math"
	"strconv"

	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/types"
)

// DefaultStep is the payload slider step in kilograms.
const DefaultStep = 1000.0

// maxMarks bounds the number of slider ticks for very small steps.
const maxMarks = 50

// Controls describes the site selector and the payload range slider for src.
// A step that is not positive, or so small that the tick count overflows,
// falls back to DefaultStep.
func Controls(src Source, step float64) types.ControlSet {
	b := src.Bounds()
	if !usableStep(b, step) {
		step = DefaultStep
	}

	sites := src.Sites()
	opts := make([]types.Option, 0, len(sites)+1)
	opts = append(opts, types.Option{Label: model.AllSitesLabel, Value: model.AllSites})
	for _, s := range sites {
		opts = append(opts, types.Option{Label: s, Value: s})
	}

	return types.ControlSet{
		Sites:       opts,
		DefaultSite: model.AllSites,
		Payload: types.RangeControl{
			Min:     b.Min,
			Max:     b.Max,
			Step:    step,
			Default: [2]float64{b.Min, b.Max},
			Marks:   marks(b, step),
		},
	}
}

// usableStep reports whether step yields a finite tick count over b.
func usableStep(b model.Bounds, step float64) bool {
	if step <= 0 || !finite(step) {
		return false
	}
	first := math.Floor(b.Min/step) * step
	return finite(first) && finite((b.Max-first)/step)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// marks places a tick at every multiple of step from floor(min/step)*step
// up to max.
func marks(b model.Bounds, step float64) []types.Mark {
	first := math.Floor(b.Min/step) * step
	for (b.Max-first)/step+1 > maxMarks {
		step *= 2
		first = math.Floor(b.Min/step) * step
	}

	out := make([]types.Mark, 0, int((b.Max-first)/step)+1)
	for v := first; v <= b.Max; v += step {
		out = append(out, types.Mark{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return out
}
