// Package types contains read shapes shared by the query engine and the HTTP layer.
package types

// Slice is one entry of a distribution view: a label and its count or sum.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Option is one choice of the site selector.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Mark is a labelled tick on the payload range control.
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// RangeControl describes the dual-ended payload mass selector.
type RangeControl struct {
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Step    float64    `json:"step"`
	Default [2]float64 `json:"default"`
	Marks   []Mark     `json:"marks"`
}

// ControlSet describes both dashboard controls.
type ControlSet struct {
	Sites       []Option     `json:"sites"`
	DefaultSite string       `json:"default_site"`
	Payload     RangeControl `json:"payload"`
}

// Total sums the values of a distribution view.
func Total(slices []Slice) float64 {
	var sum float64
	for _, s := range slices {
		sum += s.Value
	}
	return sum
}

// DistributionView is the distribution chart's data for one site selection.
type DistributionView struct {
	Site   string  `json:"site"`
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}
