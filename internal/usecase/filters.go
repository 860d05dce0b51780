package usecase

import (
	"sort"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
)

// FilterInput is the grid filter bar. Every predicate is applied
// client-side over the merged collection — nothing is pushed down to
// the store.
type FilterInput struct {
	Search   string
	City     string
	Alloc    string
	Platform string
	Status   string
}

// Filter returns the merged rows matching every set predicate.
func (p *Pipeline) Filter(input FilterInput) []MergedLead {
	var out []MergedLead
	for _, row := range p.Snapshot() {
		if !row.MatchesSearch(input.Search) {
			continue
		}
		if input.City != "" && row.TargetCity != input.City {
			continue
		}
		if input.Alloc != "" && row.Assignee() != input.Alloc {
			continue
		}
		if input.Platform != "" && row.Platform != input.Platform {
			continue
		}
		if input.Status != "" && row.Status != input.Status {
			continue
		}
		out = append(out, row)
	}
	return out
}

// FilterOptions are the distinct values the filter dropdowns offer.
type FilterOptions struct {
	Cities    []string `json:"cities"`
	Allocs    []string `json:"allocs"`
	Platforms []string `json:"platforms"`
	Statuses  []string `json:"statuses"`
}

// Options collects the distinct categorical values present in the
// roster, sorted, empty values dropped.
func (p *Pipeline) Options() FilterOptions {
	cities := make(map[string]bool)
	allocs := make(map[string]bool)
	platforms := make(map[string]bool)

	for _, row := range p.Snapshot() {
		if row.TargetCity != "" {
			cities[row.TargetCity] = true
		}
		if row.LeadAlloc != "" {
			allocs[row.LeadAlloc] = true
		}
		if row.Platform != "" {
			platforms[row.Platform] = true
		}
	}

	return FilterOptions{
		Cities:    sortedKeys(cities),
		Allocs:    sortedKeys(allocs),
		Platforms: sortedKeys(platforms),
		Statuses: []string{
			entity.StatusOpen, entity.StatusFastTrack, entity.StatusNurture,
			entity.StatusAutoReject, entity.StatusNotSuitable, entity.StatusDrop,
			entity.StatusInfoRequested, entity.StatusCallback,
		},
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
