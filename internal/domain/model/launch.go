// Package model contains domain models passed between layers.
package model

// AllSites is the site selector value that matches every launch site.
const AllSites = "ALL"

// AllSitesLabel is the human label shown for AllSites.
const AllSitesLabel = "All Sites"

// Launch is one row of the launch records table.
type Launch struct {
	FlightNumber    int     `json:"flight_number,omitempty"`
	Site            string  `json:"site"`             // launch site, the category
	PayloadMass     float64 `json:"payload_mass_kg"`  // kilograms
	Class           int     `json:"class"`            // 1 = success, 0 = failure
	BoosterVersion  string  `json:"booster_version"`  // variant used for scatter coloring
	BoosterCategory string  `json:"booster_category,omitempty"`
}

// Succeeded reports whether the launch outcome is a success.
func (l Launch) Succeeded() bool { return l.Class == 1 }

// Bounds is a closed payload mass interval.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within [Min, Max].
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Valid reports whether Min <= Max. NaN bounds are never valid.
func (b Bounds) Valid() bool {
	return b.Min <= b.Max
}
