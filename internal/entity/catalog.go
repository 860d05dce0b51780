package entity

// Section is one scripted interview topic. Each carries a 1/3/5 score
// and one canonical red-flag statement the caller listens for.
type Section struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Ask   []string `json:"ask"`
	Flag  string   `json:"flag"`
}

// Sections returns the interview catalog in display order. This is
// configuration, not user data — the section ids are the keys of every
// persisted scores map.
func Sections() []Section {
	return []Section{
		{
			ID:    "motivation",
			Title: "Motivation & Ownership",
			Ask: []string{
				"What made you apply?",
				"Working, studying, or full-time?",
				"Who will run this business? You or Someone else?",
			},
			Flag: "I applied because someone told me to try",
		},
		{
			ID:    "ops",
			Title: "Food & Ops Readiness",
			Ask: []string{
				"Experience in cooking/handling?",
				"Where will you operate? (house/rental space/owned space)",
				"Past experience of running any business",
			},
			Flag: "Wants income but no daily involvement",
		},
		{
			ID:    "finance",
			Title: "Financial & Bank Readiness",
			Ask: []string{
				"Comfortable with Interest free CM Yuva loan?",
				"Aadhaar/PAN ready?",
				"Can arrange 5-10% margin?",
			},
			Flag: "Wants machine without loan process",
		},
		{
			ID:    "mindset",
			Title: "Business and Learning Mindset",
			Ask: []string{
				"Will come for training to the skilling centre",
				"Ready to do the paper work with CM Yuva Support",
				"Income aim for Year 1?",
				"Open to learning hygiene/costing?",
				"Interested in scaling up?",
			},
			Flag: "Fixed expectations, resistant to training",
		},
	}
}

// RedFlags returns the disqualifier catalog, indexed by position.
// Any flag set true forces auto-reject regardless of total score.
func RedFlags() []string {
	return []string{
		"I applied because someone told me to try",
		"Wants income but no daily involvement",
		"Wants machine without loan process",
		"Fixed expectations, resistant to training",
	}
}

// ValidScores are the only admissible per-section values.
func ValidScore(v int) bool {
	return v == 1 || v == 3 || v == 5
}
