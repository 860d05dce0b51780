package entity

// Status tags as persisted in the scored_leads table. The lowercase
// keys are historical — the front end has them hardcoded.
const (
	StatusOpen        = "Open"
	StatusFastTrack   = "fast-track"
	StatusNurture     = "nurture"
	StatusNotSuitable = "not-suitable"
	StatusAutoReject  = "auto-reject"

	// Disposition tags double as persisted status labels.
	StatusDrop          = "drop"
	StatusInfoRequested = "info-requested"
	StatusCallback      = "callback"
)

// Thresholds are the score cut-offs for classification. They are
// product configuration, not law — earlier sheet revisions ran 20/14.
type Thresholds struct {
	FastTrack int
	Nurture   int
}

func DefaultThresholds() Thresholds {
	return Thresholds{FastTrack: 17, Nurture: 12}
}

// Classify maps a score total and flag count to a status tag.
// Precedence is fixed: any red flag wins over any total; a zero total
// means no section has been scored yet.
func (t Thresholds) Classify(total, flagCount int) string {
	if flagCount > 0 {
		return StatusAutoReject
	}
	if total == 0 {
		return StatusOpen
	}
	if total >= t.FastTrack {
		return StatusFastTrack
	}
	if total >= t.Nurture {
		return StatusNurture
	}
	return StatusNotSuitable
}

// IsRejection groups the rejected family for reporting.
func IsRejection(status string) bool {
	return status == StatusAutoReject || status == StatusNotSuitable || status == "rejected"
}

// StatusLabel is the human label for a status tag.
func StatusLabel(status string) string {
	labels := map[string]string{
		StatusOpen:          "Open",
		StatusFastTrack:     "Fast Track",
		StatusNurture:       "Nurture",
		StatusAutoReject:    "Auto Reject",
		StatusNotSuitable:   "Not Suitable",
		"rejected":          "Rejected",
		StatusDrop:          "Dropped",
		StatusInfoRequested: "Info Requested",
		StatusCallback:      "Call Back",
	}
	if l, ok := labels[status]; ok {
		return l
	}
	return status
}
