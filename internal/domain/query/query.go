// Package query computes the dashboard views from the launch table.
//
// Every function here is a pure function of the dataset and the current
// control values. Unknown sites and inverted payload ranges produce empty
// views rather than errors.
package query

import (
	"strconv"

	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/types"
)

// Source is the read-only dataset the views are computed from.
type Source interface {
	Launches() []model.Launch
	Sites() []string
	Bounds() model.Bounds
	HasSite(site string) bool
}

// CategoryDistribution returns the success distribution for site.
//
// For model.AllSites it sums Class per site, one slice per distinct site in
// first-appearance order. For a single site it counts launches per outcome
// ("0", "1"), at most two slices. An unknown site yields an empty view.
func CategoryDistribution(src Source, site string) []types.Slice {
	if site == model.AllSites {
		return successesBySite(src)
	}
	if !src.HasSite(site) {
		return []types.Slice{}
	}
	return outcomesForSite(src, site)
}

func successesBySite(src Source) []types.Slice {
	sites := src.Sites()
	out := make([]types.Slice, len(sites))
	pos := make(map[string]int, len(sites))
	for i, s := range sites {
		out[i] = types.Slice{Label: s}
		pos[s] = i
	}
	for _, l := range src.Launches() {
		out[pos[l.Site]].Value += float64(l.Class)
	}
	return out
}

func outcomesForSite(src Source, site string) []types.Slice {
	out := make([]types.Slice, 0, 2)
	pos := make(map[int]int, 2)
	for _, l := range src.Launches() {
		if l.Site != site {
			continue
		}
		i, ok := pos[l.Class]
		if !ok {
			i = len(out)
			pos[l.Class] = i
			out = append(out, types.Slice{Label: strconv.Itoa(l.Class)})
		}
		out[i].Value++
	}
	return out
}

// PayloadCorrelation returns the launches with lo <= PayloadMass <= hi,
// restricted to site unless it is model.AllSites. Dataset order is kept.
// An inverted range or an unknown site yields an empty view.
func PayloadCorrelation(src Source, site string, lo, hi float64) []model.Launch {
	r := model.Bounds{Min: lo, Max: hi}
	if !r.Valid() {
		return []model.Launch{}
	}
	all := site == model.AllSites
	if !all && !src.HasSite(site) {
		return []model.Launch{}
	}

	out := make([]model.Launch, 0)
	for _, l := range src.Launches() {
		if !r.Contains(l.PayloadMass) {
			continue
		}
		if !all && l.Site != site {
			continue
		}
		out = append(out, l)
	}
	return out
}

// DistributionTitle is the chart title for the distribution view of site.
func DistributionTitle(site string) string {
	if site == model.AllSites {
		return "Total Successful Launches by Sites"
	}
	return "Total Success Launches for " + site
}

// CorrelationTitle is the chart title for the correlation view of site.
func CorrelationTitle(site string) string {
	if site == model.AllSites {
		return "Correlation between Payload and Success for all Sites"
	}
	return "Correlation between Payload and Success for " + site
}
