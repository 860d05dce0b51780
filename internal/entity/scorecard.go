package entity

import (
	"time"
)

// ScoreCard is the mutable scoring overlay for one lead, keyed by the
// same LeadID as the roster. Absence of a card means "not yet reviewed".
//
// Scores is keyed by section id, Flags by red-flag index (string keys
// to match the JSON the front end has always written). Total, FlagCount
// and Status are derived — they are recomputed on every mutation and
// never trusted as stored.
type ScoreCard struct {
	LeadID    string          `json:"lead_id"`
	Scores    map[string]int  `json:"scores"`
	Flags     map[string]bool `json:"flags"`
	Notes     string          `json:"notes"`
	Total     int             `json:"total"`
	FlagCount int             `json:"flag_count"`
	Status    string          `json:"status"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CalcTotal sums the sections that were explicitly scored. Unset
// sections contribute nothing; insertion order is irrelevant.
func CalcTotal(scores map[string]int) int {
	total := 0
	for _, sec := range Sections() {
		total += scores[sec.ID]
	}
	return total
}

// CalcFlagCount counts flags set true. Unset flags are false.
func CalcFlagCount(flags map[string]bool) int {
	n := 0
	for _, raised := range flags {
		if raised {
			n++
		}
	}
	return n
}

// AllSectionsScored reports whether every catalog section holds a score.
func AllSectionsScored(scores map[string]int) bool {
	for _, sec := range Sections() {
		if scores[sec.ID] == 0 {
			return false
		}
	}
	return true
}

// ScoredSections counts how many catalog sections hold a score.
func ScoredSections(scores map[string]int) int {
	n := 0
	for _, sec := range Sections() {
		if scores[sec.ID] != 0 {
			n++
		}
	}
	return n
}

// Recompute refreshes the derived fields from Scores and Flags. The
// stored status is only kept when a disposition overlays it.
func (c *ScoreCard) Recompute(t Thresholds) {
	c.Total = CalcTotal(c.Scores)
	c.FlagCount = CalcFlagCount(c.Flags)
	if !ParseDisposition(c.Status).Overlays() {
		c.Status = t.Classify(c.Total, c.FlagCount)
	}
}
