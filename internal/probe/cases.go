package probe

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/types"
	"github.com/okian/launchboard/pkg/logger"
)

// checkKind selects which view a job exercises.
type checkKind int

const (
	checkDistribution checkKind = iota
	checkCorrelation
)

func (k checkKind) String() string {
	if k == checkDistribution {
		return "distribution"
	}
	return "correlation"
}

// job is one view request with its control setting.
type job struct {
	kind checkKind
	tc   Case
}

// siteValues returns the selectable site values without the ALL sentinel.
func siteValues(cs types.ControlSet) []string {
	out := make([]string, 0, len(cs.Sites))
	for _, opt := range cs.Sites {
		if opt.Value != model.AllSites {
			out = append(out, opt.Value)
		}
	}
	return out
}

// windows returns the full payload range followed by every window between
// adjacent slider marks.
func windows(rc types.RangeControl) [][2]float64 {
	out := [][2]float64{{rc.Min, rc.Max}}
	for i := 1; i < len(rc.Marks); i++ {
		out = append(out, [2]float64{rc.Marks[i-1].Value, rc.Marks[i].Value})
	}
	return out
}

// generateJobs expands the controls into every site and window combination,
// plus inverted windows and an unknown site.
func generateJobs(ctx context.Context, cs types.ControlSet) ([]job, error) {
	if len(cs.Sites) == 0 || cs.Sites[0].Value != model.AllSites {
		return nil, fmt.Errorf("%w: first site option must be %q", ErrBadControl, model.AllSites)
	}
	if cs.Payload.Min > cs.Payload.Max {
		return nil, fmt.Errorf("%w: payload range [%g, %g] is inverted", ErrBadControl, cs.Payload.Min, cs.Payload.Max)
	}

	unknown := unknownSitePrefix + uuid.NewString()
	sites := append([]string{model.AllSites}, siteValues(cs)...)
	wins := windows(cs.Payload)

	jobs := make([]job, 0, len(sites)*(len(wins)+2)+2)
	for _, site := range append(slices.Clone(sites), unknown) {
		jobs = append(jobs, job{kind: checkDistribution, tc: Case{Site: site}})
		for _, w := range wins {
			jobs = append(jobs, job{kind: checkCorrelation, tc: Case{Site: site, Min: w[0], Max: w[1]}})
		}
		if cs.Payload.Max > cs.Payload.Min {
			jobs = append(jobs, job{kind: checkCorrelation, tc: Case{Site: site, Min: cs.Payload.Max, Max: cs.Payload.Min}})
		}
	}

	logger.Get().Info(ctx, "generated probe cases",
		logger.Int("sites", len(sites)),
		logger.Int("windows", len(wins)),
		logger.Int("jobs", len(jobs)))
	return jobs, nil
}

// newBaseline indexes the full-range ALL correlation view.
func newBaseline(view types.CorrelationView) *Baseline {
	b := &Baseline{
		Launches:    view.Launches,
		SiteCounts:  make(map[string]int),
		SiteOutcome: make(map[string]int),
	}
	for _, l := range view.Launches {
		if _, ok := b.SiteCounts[l.Site]; !ok {
			b.Sites = append(b.Sites, l.Site)
		}
		b.SiteCounts[l.Site]++
		b.SiteOutcome[l.Site] += l.Class
		b.OutcomeSum += l.Class
	}
	return b
}

// expectedCorrelation filters the baseline the way the service should.
func (b *Baseline) expectedCorrelation(tc Case) []model.Launch {
	out := []model.Launch{}
	window := model.Bounds{Min: tc.Min, Max: tc.Max}
	for _, l := range b.Launches {
		if tc.Site != model.AllSites && l.Site != tc.Site {
			continue
		}
		if window.Contains(l.PayloadMass) {
			out = append(out, l)
		}
	}
	return out
}
