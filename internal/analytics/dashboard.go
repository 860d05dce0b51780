// Package analytics computes the dashboard numbers. Everything here is
// a pure function over the merged snapshot — no state, no side
// effects, recomputed from scratch on every render trigger.
package analytics

import (
	"sort"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
	"github.com/vruddhi2107/on2cookXUP/internal/usecase"
)

// KPIs is the dashboard headline strip.
type KPIs struct {
	TotalPipeline  int     `json:"total_pipeline"`
	Processed      int     `json:"processed"`
	ProcessedRate  float64 `json:"processed_rate"`
	FastTrack      int     `json:"fast_track"`
	ConversionRate float64 `json:"conversion_rate"`
	Nurture        int     `json:"nurture"`
	Open           int     `json:"open"`
	AvgScore       float64 `json:"avg_score"`
	TotalFlags     int     `json:"total_flags"`
	Callbacks      int     `json:"callbacks"`
}

func ComputeKPIs(rows []usecase.MergedLead) KPIs {
	k := KPIs{TotalPipeline: len(rows)}
	scoredTotal := 0
	for _, r := range rows {
		if r.Scored {
			k.Processed++
			scoredTotal += r.Total
		}
		k.TotalFlags += r.FlagCount
		switch r.Status {
		case entity.StatusFastTrack:
			k.FastTrack++
		case entity.StatusNurture:
			k.Nurture++
		case entity.StatusOpen:
			k.Open++
		case entity.StatusCallback:
			k.Callbacks++
		}
	}
	if k.TotalPipeline > 0 {
		k.ProcessedRate = float64(k.Processed) / float64(k.TotalPipeline) * 100
		k.ConversionRate = float64(k.FastTrack) / float64(k.TotalPipeline) * 100
	}
	if k.Processed > 0 {
		k.AvgScore = float64(scoredTotal) / float64(k.Processed)
	}
	return k
}

// StatusCount is one bar of the status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// StatusDistribution counts leads per displayed status, including the
// synthetic buckets for dropped, info-requested, callback and open.
// The rejected bucket folds the whole rejection family together.
func StatusDistribution(rows []usecase.MergedLead) []StatusCount {
	counts := map[string]int{}
	for _, r := range rows {
		switch {
		case entity.IsRejection(r.Status):
			counts["rejected"]++
		case r.Status == "":
			counts[entity.StatusOpen]++
		default:
			counts[r.Status]++
		}
	}

	order := []string{
		entity.StatusFastTrack, entity.StatusNurture, entity.StatusOpen,
		entity.StatusInfoRequested, entity.StatusCallback, entity.StatusDrop,
		"rejected",
	}
	out := make([]StatusCount, 0, len(order))
	for _, s := range order {
		out = append(out, StatusCount{Status: s, Label: entity.StatusLabel(s), Count: counts[s]})
	}
	return out
}

// TeamRow is the per-assignee breakdown line.
type TeamRow struct {
	Member        string `json:"member"`
	Total         int    `json:"total"`
	FastTrack     int    `json:"fast_track"`
	Nurture       int    `json:"nurture"`
	Rejected      int    `json:"rejected"`
	Dropped       int    `json:"dropped"`
	InfoRequested int    `json:"info_requested"`
	Callback      int    `json:"callback"`
	Open          int    `json:"open"`
}

// TeamBreakdown groups the pipeline by assignee, leads without an
// allocation landing in the Unassigned bucket. Rows come back sorted
// by total descending; re-sort with SortTeamRows.
func TeamBreakdown(rows []usecase.MergedLead) []TeamRow {
	byMember := map[string]*TeamRow{}
	var order []string

	for _, r := range rows {
		member := r.Assignee()
		row, ok := byMember[member]
		if !ok {
			row = &TeamRow{Member: member}
			byMember[member] = row
			order = append(order, member)
		}
		row.Total++
		switch {
		case r.Status == entity.StatusFastTrack:
			row.FastTrack++
		case r.Status == entity.StatusNurture:
			row.Nurture++
		case entity.IsRejection(r.Status):
			row.Rejected++
		case r.Status == entity.StatusDrop:
			row.Dropped++
		case r.Status == entity.StatusInfoRequested:
			row.InfoRequested++
		case r.Status == entity.StatusCallback:
			row.Callback++
		default:
			row.Open++
		}
	}

	sort.Strings(order)
	out := make([]TeamRow, 0, len(order))
	for _, m := range order {
		out = append(out, *byMember[m])
	}
	SortTeamRows(out, "total", false)
	return out
}

// SortTeamRows orders the breakdown by one column. The sort is stable,
// so ties keep the order of the previously active column.
func SortTeamRows(rows []TeamRow, column string, ascending bool) {
	value := func(r TeamRow) int {
		switch column {
		case "fast_track":
			return r.FastTrack
		case "nurture":
			return r.Nurture
		case "rejected":
			return r.Rejected
		case "dropped":
			return r.Dropped
		case "info_requested":
			return r.InfoRequested
		case "callback":
			return r.Callback
		case "open":
			return r.Open
		default:
			return r.Total
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if column == "member" {
			if ascending {
				return rows[i].Member < rows[j].Member
			}
			return rows[i].Member > rows[j].Member
		}
		if ascending {
			return value(rows[i]) < value(rows[j])
		}
		return value(rows[i]) > value(rows[j])
	})
}

// SectionAverage is the mean of the present scores for one section.
type SectionAverage struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// SectionAverages averages only sections that were explicitly scored
// (>0). A section no one has scored reports 0, never a division by
// zero.
func SectionAverages(rows []usecase.MergedLead) []SectionAverage {
	out := make([]SectionAverage, 0, len(entity.Sections()))
	for _, sec := range entity.Sections() {
		sum, count := 0, 0
		for _, r := range rows {
			if v := r.Scores[sec.ID]; v > 0 {
				sum += v
				count++
			}
		}
		avg := 0.0
		if count > 0 {
			avg = float64(sum) / float64(count)
		}
		out = append(out, SectionAverage{ID: sec.ID, Title: sec.Title, Average: avg, Count: count})
	}
	return out
}

// Bucket is one group-by-count entry.
type Bucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TopN groups the pipeline by a categorical key, sorted by count
// descending (value ascending on ties, so output is deterministic) and
// truncated to n. Empty values bucket under "Unknown". n <= 0 means
// unlimited.
func TopN(rows []usecase.MergedLead, key func(usecase.MergedLead) string, n int) []Bucket {
	counts := map[string]int{}
	for _, r := range rows {
		v := key(r)
		if v == "" {
			v = "Unknown"
		}
		counts[v]++
	}

	out := make([]Bucket, 0, len(counts))
	for v, c := range counts {
		out = append(out, Bucket{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FlagBreakdown partitions scored leads by risk.
type FlagBreakdown struct {
	Clean     int `json:"clean"`
	OneFlag   int `json:"one_flag"`
	MultiFlag int `json:"multi_flag"`
}

func ComputeFlagBreakdown(rows []usecase.MergedLead) FlagBreakdown {
	var fb FlagBreakdown
	for _, r := range rows {
		if !r.Scored {
			continue
		}
		switch {
		case r.FlagCount == 0:
			fb.Clean++
		case r.FlagCount == 1:
			fb.OneFlag++
		default:
			fb.MultiFlag++
		}
	}
	return fb
}

// Dashboard is the full payload the dashboard endpoint returns.
type Dashboard struct {
	KPIs       KPIs             `json:"kpis"`
	ByStatus   []StatusCount    `json:"by_status"`
	Team       []TeamRow        `json:"team"`
	Sections   []SectionAverage `json:"sections"`
	Cities     []Bucket         `json:"cities"`
	Platforms  []Bucket         `json:"platforms"`
	Genders    []Bucket         `json:"genders"`
	Education  []Bucket         `json:"education"`
	FlagRisk   FlagBreakdown    `json:"flag_risk"`
	TotalLeads int              `json:"total_leads"`
}

// BuildDashboard recomputes every widget from the snapshot.
func BuildDashboard(rows []usecase.MergedLead) Dashboard {
	return Dashboard{
		KPIs:       ComputeKPIs(rows),
		ByStatus:   StatusDistribution(rows),
		Team:       TeamBreakdown(rows),
		Sections:   SectionAverages(rows),
		Cities:     TopN(rows, func(r usecase.MergedLead) string { return r.TargetCity }, 8),
		Platforms:  TopN(rows, func(r usecase.MergedLead) string { return r.Platform }, 0),
		Genders:    TopN(rows, func(r usecase.MergedLead) string { return r.Gender }, 0),
		Education:  TopN(rows, func(r usecase.MergedLead) string { return r.EducationLevel }, 6),
		FlagRisk:   ComputeFlagBreakdown(rows),
		TotalLeads: len(rows),
	}
}
