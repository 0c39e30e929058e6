// Package render draws the dashboard charts with go-chart.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/types"
)

// Chart size defaults in pixels.
const (
	defaultWidth  = 900
	defaultHeight = 480
)

// Format is an output image encoding.
type Format string

// Supported formats.
const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat maps a file extension or name to a Format. Empty means SVG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType is the HTTP media type for f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == PNG {
		return chart.PNG
	}
	return chart.SVG
}

// GroupFunc picks the scatter series a launch belongs to.
type GroupFunc func(model.Launch) string

// ByBoosterVersion groups scatter points by booster version.
func ByBoosterVersion(l model.Launch) string { return l.BoosterVersion }

// ByBoosterCategory groups scatter points by booster category, falling back
// to the version when the category column was absent.
func ByBoosterCategory(l model.Launch) string {
	if l.BoosterCategory == "" {
		return l.BoosterVersion
	}
	return l.BoosterCategory
}

// Renderer draws the distribution and correlation charts.
type Renderer struct {
	width   int
	height  int
	groupBy GroupFunc
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:   defaultWidth,
		height:  defaultHeight,
		groupBy: ByBoosterVersion,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Distribution draws slices as a pie chart. It returns ErrNoData when there
// is nothing to draw: no slices or a zero total.
func (r *Renderer) Distribution(w io.Writer, title string, slices []types.Slice, f Format) error {
	if types.Total(slices) <= 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Value < 0 {
			return fmt.Errorf("%w: negative value for %q", ErrRender, s.Label)
		}
		values = append(values, chart.Value{
			Label: s.Label + " (" + strconv.FormatFloat(s.Value, 'f', -1, 64) + ")",
			Value: s.Value,
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
	if err := pie.Render(f.provider(), w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// Correlation draws payload mass against outcome, one dot series per group,
// over the payload window. It returns ErrNoData for an empty view.
func (r *Renderer) Correlation(w io.Writer, title string, launches []model.Launch, window model.Bounds, f Format) error {
	if len(launches) == 0 {
		return ErrNoData
	}
	if !window.Valid() {
		return fmt.Errorf("%w: invalid payload window", ErrRender)
	}

	xr := &chart.ContinuousRange{Min: window.Min, Max: window.Max}
	if xr.Min == xr.Max {
		xr.Min--
		xr.Max++
	}

	c := chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "Payload Mass (kg)",
			Range: xr,
		},
		YAxis: chart.YAxis{
			Name:  "class",
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: r.scatterSeries(launches),
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	if err := c.Render(f.provider(), w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// scatterSeries splits launches into dot-only series in first-appearance order.
func (r *Renderer) scatterSeries(launches []model.Launch) []chart.Series {
	var order []string
	byKey := make(map[string]*chart.ContinuousSeries)
	for _, l := range launches {
		key := r.groupBy(l)
		s, ok := byKey[key]
		if !ok {
			s = &chart.ContinuousSeries{
				Name: key,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColor:    chart.GetDefaultColor(len(order)),
				},
			}
			byKey[key] = s
			order = append(order, key)
		}
		s.XValues = append(s.XValues, l.PayloadMass)
		s.YValues = append(s.YValues, float64(l.Class))
	}

	out := make([]chart.Series, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}
