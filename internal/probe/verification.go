package probe

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/types"
)

// verifyControls checks the control description against the baseline.
func verifyControls(cs types.ControlSet, b *Baseline) []Violation {
	var out []Violation
	add := func(check, format string, args ...any) {
		out = append(out, Violation{Check: check, Case: Case{Site: model.AllSites, Min: cs.Payload.Min, Max: cs.Payload.Max}, Detail: fmt.Sprintf(format, args...)})
	}

	if cs.DefaultSite != model.AllSites {
		add("controls.default_site", "got %q, want %q", cs.DefaultSite, model.AllSites)
	}
	if cs.Payload.Default != [2]float64{cs.Payload.Min, cs.Payload.Max} {
		add("controls.default_range", "got %v, want [%g %g]", cs.Payload.Default, cs.Payload.Min, cs.Payload.Max)
	}
	if got := siteValues(cs); !slices.Equal(got, b.Sites) {
		add("controls.sites", "options %v do not match table sites %v", got, b.Sites)
	}
	for _, l := range b.Launches {
		if l.PayloadMass < cs.Payload.Min || l.PayloadMass > cs.Payload.Max {
			add("controls.bounds", "payload %g outside [%g, %g]", l.PayloadMass, cs.Payload.Min, cs.Payload.Max)
			break
		}
	}
	return out
}

// verifyDistribution checks one distribution view.
func verifyDistribution(tc Case, view types.DistributionView, b *Baseline) []Violation {
	var out []Violation
	add := func(check, format string, args ...any) {
		out = append(out, Violation{Check: check, Case: tc, Detail: fmt.Sprintf(format, args...)})
	}

	total := types.Total(view.Slices)
	switch {
	case tc.Site == model.AllSites:
		labels := make([]string, len(view.Slices))
		for i, s := range view.Slices {
			labels[i] = s.Label
			if want := float64(b.SiteOutcome[s.Label]); s.Value != want {
				add("distribution.site_successes", "%s: got %g, want %g", s.Label, s.Value, want)
			}
		}
		if !slices.Equal(labels, b.Sites) {
			add("distribution.one_slice_per_site", "got %v, want %v", labels, b.Sites)
		}
		if total != float64(b.OutcomeSum) {
			add("distribution.sum", "got %g, want outcome total %d", total, b.OutcomeSum)
		}
	case b.SiteCounts[tc.Site] == 0:
		if len(view.Slices) != 0 {
			add("distribution.unknown_site", "got %d slices, want none", len(view.Slices))
		}
	default:
		if len(view.Slices) > 2 {
			add("distribution.outcomes", "got %d slices, want at most 2", len(view.Slices))
		}
		for _, s := range view.Slices {
			if s.Label != "0" && s.Label != "1" {
				add("distribution.outcomes", "unexpected outcome label %q", s.Label)
			}
		}
		if total != float64(b.SiteCounts[tc.Site]) {
			add("distribution.sum", "got %g, want %d launches", total, b.SiteCounts[tc.Site])
		}
	}
	return out
}

// verifyCorrelation checks one correlation view.
func verifyCorrelation(tc Case, view types.CorrelationView, b *Baseline) []Violation {
	var out []Violation
	add := func(check, format string, args ...any) {
		out = append(out, Violation{Check: check, Case: tc, Detail: fmt.Sprintf(format, args...)})
	}

	if tc.Min > tc.Max && len(view.Launches) != 0 {
		add("correlation.inverted_window", "got %d launches, want none", len(view.Launches))
		return out
	}
	for i, l := range view.Launches {
		if l.PayloadMass < tc.Min || l.PayloadMass > tc.Max {
			add("correlation.window", "launch %d payload %g outside [%g, %g]", i, l.PayloadMass, tc.Min, tc.Max)
		}
		if tc.Site != model.AllSites && l.Site != tc.Site {
			add("correlation.site", "launch %d site %q", i, l.Site)
		}
	}
	want := b.expectedCorrelation(tc)
	if !slices.Equal(view.Launches, want) {
		add("correlation.subset", "got %d launches, want %d in table order", len(view.Launches), len(want))
	}
	return out
}

// describe renders a violation for logs.
func (v Violation) describe() string {
	return v.Check + " site=" + strconv.Quote(v.Case.Site) +
		" window=[" + strconv.FormatFloat(v.Case.Min, 'f', -1, 64) + ", " + strconv.FormatFloat(v.Case.Max, 'f', -1, 64) + "]: " + v.Detail
}
