package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
	"github.com/vruddhi2107/on2cookXUP/internal/usecase"
)

func row(status, alloc string, total, flagCount int, scores map[string]int) usecase.MergedLead {
	return usecase.MergedLead{
		Lead:      entity.Lead{LeadID: alloc + status, LeadAlloc: alloc},
		Scores:    scores,
		Total:     total,
		FlagCount: flagCount,
		Status:    status,
		Scored:    len(scores) > 0,
	}
}

func TestComputeKPIs(t *testing.T) {
	rows := []usecase.MergedLead{
		row(entity.StatusFastTrack, "Anil", 18, 0, map[string]int{"motivation": 5, "ops": 5, "finance": 5, "mindset": 3}),
		row(entity.StatusNurture, "Anil", 12, 0, map[string]int{"motivation": 3, "ops": 3, "finance": 3, "mindset": 3}),
		row(entity.StatusAutoReject, "Neha", 14, 2, map[string]int{"motivation": 5, "ops": 3, "finance": 3, "mindset": 3}),
		row(entity.StatusOpen, "Neha", 0, 0, nil),
	}

	k := ComputeKPIs(rows)
	assert.Equal(t, 4, k.TotalPipeline)
	assert.Equal(t, 3, k.Processed)
	assert.Equal(t, 75.0, k.ProcessedRate)
	assert.Equal(t, 1, k.FastTrack)
	assert.Equal(t, 25.0, k.ConversionRate)
	assert.Equal(t, 1, k.Open)
	assert.Equal(t, 2, k.TotalFlags)
	assert.InDelta(t, 14.666, k.AvgScore, 0.01)
}

func TestComputeKPIsEmptyPipeline(t *testing.T) {
	k := ComputeKPIs(nil)
	assert.Zero(t, k.TotalPipeline)
	assert.Zero(t, k.ProcessedRate)
	assert.Zero(t, k.AvgScore)
}

func TestStatusDistributionFoldsRejectionFamily(t *testing.T) {
	rows := []usecase.MergedLead{
		row(entity.StatusAutoReject, "Anil", 0, 1, map[string]int{"motivation": 1}),
		row(entity.StatusNotSuitable, "Anil", 4, 0, map[string]int{"motivation": 1, "ops": 1, "finance": 1, "mindset": 1}),
		row("rejected", "Neha", 0, 0, nil),
		row(entity.StatusDrop, "Neha", 0, 0, nil),
		row("", "Neha", 0, 0, nil),
	}

	dist := StatusDistribution(rows)
	byStatus := map[string]int{}
	for _, d := range dist {
		byStatus[d.Status] = d.Count
	}

	assert.Equal(t, 3, byStatus["rejected"])
	assert.Equal(t, 1, byStatus[entity.StatusDrop])
	// Blank status counts as Open.
	assert.Equal(t, 1, byStatus[entity.StatusOpen])
	assert.Zero(t, byStatus[entity.StatusFastTrack])
}

func TestTeamBreakdownBucketsUnassigned(t *testing.T) {
	rows := []usecase.MergedLead{
		row(entity.StatusFastTrack, "Anil", 18, 0, map[string]int{"motivation": 5}),
		row(entity.StatusOpen, "Anil", 0, 0, nil),
		row(entity.StatusNurture, "", 12, 0, map[string]int{"motivation": 3}),
	}

	team := TeamBreakdown(rows)
	require.Len(t, team, 2)

	byMember := map[string]TeamRow{}
	for _, tr := range team {
		byMember[tr.Member] = tr
	}
	assert.Equal(t, 2, byMember["Anil"].Total)
	assert.Equal(t, 1, byMember["Anil"].FastTrack)
	assert.Equal(t, 1, byMember["Anil"].Open)
	assert.Equal(t, 1, byMember[entity.Unassigned].Nurture)
}

func TestSortTeamRowsStableOnTies(t *testing.T) {
	rows := []TeamRow{
		{Member: "Anil", Total: 10, FastTrack: 3},
		{Member: "Neha", Total: 10, FastTrack: 1},
		{Member: "Ravi", Total: 5, FastTrack: 1},
	}

	// Primary sort by fast_track descending...
	SortTeamRows(rows, "fast_track", false)
	// ...then by total: Neha and Ravi tie on fast_track and must keep
	// their relative order from the previous sort.
	SortTeamRows(rows, "total", false)

	assert.Equal(t, "Anil", rows[0].Member)
	assert.Equal(t, "Neha", rows[1].Member)
	assert.Equal(t, "Ravi", rows[2].Member)

	SortTeamRows(rows, "member", true)
	assert.Equal(t, "Anil", rows[0].Member)
	assert.Equal(t, "Ravi", rows[2].Member)
}

func TestSectionAveragesSkipAbsentScores(t *testing.T) {
	rows := []usecase.MergedLead{
		row("x", "Anil", 0, 0, map[string]int{"motivation": 3, "ops": 5}),
		row("y", "Neha", 0, 0, map[string]int{"motivation": 5}),
		row("z", "Ravi", 0, 0, nil),
	}

	avgs := SectionAverages(rows)
	byID := map[string]SectionAverage{}
	for _, a := range avgs {
		byID[a.ID] = a
	}

	// motivation: (3+5)/2, the unscored lead does not drag it down.
	assert.Equal(t, 4.0, byID["motivation"].Average)
	assert.Equal(t, 2, byID["motivation"].Count)
	assert.Equal(t, 5.0, byID["ops"].Average)
	// No one scored finance: average is 0, not NaN.
	assert.Equal(t, 0.0, byID["finance"].Average)
	assert.Zero(t, byID["finance"].Count)
}

func TestTopNTruncatesAndBucketsUnknown(t *testing.T) {
	rows := []usecase.MergedLead{
		{Lead: entity.Lead{TargetCity: "Kanpur"}},
		{Lead: entity.Lead{TargetCity: "Kanpur"}},
		{Lead: entity.Lead{TargetCity: "Lucknow"}},
		{Lead: entity.Lead{TargetCity: ""}},
		{Lead: entity.Lead{TargetCity: "Agra"}},
	}

	key := func(r usecase.MergedLead) string { return r.TargetCity }

	top := TopN(rows, key, 2)
	require.Len(t, top, 2)
	assert.Equal(t, Bucket{Value: "Kanpur", Count: 2}, top[0])
	// Ties on count order by value: Agra before Lucknow and Unknown.
	assert.Equal(t, Bucket{Value: "Agra", Count: 1}, top[1])

	all := TopN(rows, key, 0)
	assert.Len(t, all, 4)
	assert.Contains(t, all, Bucket{Value: "Unknown", Count: 1})
}

func TestFlagBreakdownPartitionsScoredOnly(t *testing.T) {
	rows := []usecase.MergedLead{
		row("a", "Anil", 0, 0, map[string]int{"motivation": 5}),
		row("b", "Anil", 0, 1, map[string]int{"motivation": 5}),
		row("c", "Anil", 0, 3, map[string]int{"motivation": 5}),
		row("d", "Anil", 0, 2, nil), // unscored, excluded
	}

	fb := ComputeFlagBreakdown(rows)
	assert.Equal(t, 1, fb.Clean)
	assert.Equal(t, 1, fb.OneFlag)
	assert.Equal(t, 1, fb.MultiFlag)
}

func TestBuildDashboardAssemblesAllWidgets(t *testing.T) {
	rows := []usecase.MergedLead{
		row(entity.StatusFastTrack, "Anil", 18, 0, map[string]int{"motivation": 5, "ops": 5, "finance": 5, "mindset": 3}),
		row(entity.StatusOpen, "Neha", 0, 0, nil),
	}

	d := BuildDashboard(rows)
	assert.Equal(t, 2, d.TotalLeads)
	assert.Equal(t, 1, d.KPIs.FastTrack)
	assert.Len(t, d.Sections, 4)
	assert.NotEmpty(t, d.ByStatus)
	assert.Len(t, d.Team, 2)
}
