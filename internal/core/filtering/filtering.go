// Package filtering narrows ranked candidates by user supplied criteria
package filtering

import (
	"time"

	"github.com/predator4hack/gitscout/internal/core/scoring"
	"github.com/predator4hack/gitscout/internal/core/textfold"
)

// Filters selects candidates; zero fields are ignored
type Filters struct {
	Location         string `json:"location,omitempty" validate:"omitempty,max=100"`
	FollowersMin     *int   `json:"followers_min,omitempty" validate:"omitempty,min=0"`
	FollowersMax     *int   `json:"followers_max,omitempty" validate:"omitempty,min=0"`
	HasEmail         bool   `json:"has_email,omitempty"`
	HasAnyContact    bool   `json:"has_any_contact,omitempty"`
	LastContribution string `json:"last_contribution,omitempty" validate:"omitempty,oneof=30d 3m 6m 1y"`
}

// Step records one filter pass
type Step struct {
	Name   string
	Before int
	After  int
}

var periods = map[string]time.Duration{
	"30d": 30 * 24 * time.Hour,
	"3m":  90 * 24 * time.Hour,
	"6m":  180 * 24 * time.Hour,
	"1y":  365 * 24 * time.Hour,
}

// Since returns the cutoff for a last contribution period
// unknown periods mean one year
func Since(period string, now time.Time) time.Time {
	d, ok := periods[period]
	if !ok {
		d = periods["1y"]
	}
	return now.Add(-d)
}

// Apply runs the filters in order and returns the survivors with a step log
// nil filters return the input as is
func Apply(in []scoring.ScoredCandidate, f *Filters, now time.Time) ([]scoring.ScoredCandidate, []Step) {
	if f == nil {
		return in, nil
	}
	out := in
	var steps []Step
	run := func(name string, keep func(scoring.ScoredCandidate) bool) {
		before := len(out)
		next := make([]scoring.ScoredCandidate, 0, before)
		for _, c := range out {
			if keep(c) {
				next = append(next, c)
			}
		}
		out = next
		steps = append(steps, Step{Name: name, Before: before, After: len(out)})
	}

	if f.Location != "" {
		needle := textfold.Fold(f.Location)
		run("location", func(c scoring.ScoredCandidate) bool {
			loc := c.Profile.Location
			return loc != "" && textfold.Contains(loc, needle)
		})
	}
	if f.FollowersMin != nil {
		lo := *f.FollowersMin
		run("followers_min", func(c scoring.ScoredCandidate) bool { return c.Profile.Followers >= lo })
	}
	if f.FollowersMax != nil {
		hi := *f.FollowersMax
		run("followers_max", func(c scoring.ScoredCandidate) bool { return c.Profile.Followers <= hi })
	}
	if f.HasEmail {
		run("has_email", func(c scoring.ScoredCandidate) bool { return c.Profile.Email != "" })
	}
	if f.HasAnyContact {
		run("has_any_contact", func(c scoring.ScoredCandidate) bool { return c.Profile.HasContact() })
	}
	if f.LastContribution != "" {
		cutoff := Since(f.LastContribution, now)
		run("last_contribution", func(c scoring.ScoredCandidate) bool {
			at := c.Profile.LastContributionAt
			return at != nil && !at.Before(cutoff)
		})
	}
	return out, steps
}

// IsZero reports whether f selects everything
func (f *Filters) IsZero() bool {
	return f == nil || *f == Filters{}
}
