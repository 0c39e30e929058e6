package repository

import (
	"context"
	"slices"

	"github.com/okian/launchboard/internal/domain/model"
)

// Dataset is the immutable in-memory launch table.
//
// Sites and bounds are derived once at construction; nothing mutates the
// table afterwards, so reads need no locking.
type Dataset struct {
	launches []model.Launch
	sites    []string
	siteSet  map[string]struct{}
	bounds   model.Bounds
}

var _ Store = (*Dataset)(nil)

// NewDataset builds a Dataset from launches. The slice is copied.
func NewDataset(launches []model.Launch) *Dataset {
	d := &Dataset{
		launches: slices.Clone(launches),
		siteSet:  make(map[string]struct{}),
	}
	if d.launches == nil {
		d.launches = []model.Launch{}
	}

	for i, l := range d.launches {
		if _, ok := d.siteSet[l.Site]; !ok {
			d.siteSet[l.Site] = struct{}{}
			d.sites = append(d.sites, l.Site)
		}
		if i == 0 {
			d.bounds = model.Bounds{Min: l.PayloadMass, Max: l.PayloadMass}
			continue
		}
		d.bounds.Min = min(d.bounds.Min, l.PayloadMass)
		d.bounds.Max = max(d.bounds.Max, l.PayloadMass)
	}
	return d
}

// Launches returns every record in file order.
func (d *Dataset) Launches() []model.Launch { return d.launches }

// Sites returns the distinct launch sites in first-appearance order.
func (d *Dataset) Sites() []string { return d.sites }

// Bounds returns the global payload mass bounds. An empty table yields {0, 0}.
func (d *Dataset) Bounds() model.Bounds { return d.bounds }

// HasSite reports whether site occurs in the table.
func (d *Dataset) HasSite(site string) bool {
	_, ok := d.siteSet[site]
	return ok
}

// Count returns the number of records.
func (d *Dataset) Count(_ context.Context) int { return len(d.launches) }
