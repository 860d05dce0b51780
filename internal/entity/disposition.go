package entity

import "strings"

// Disposition is the operational overlay a caller can put on top of
// scoring. Drop and Callback bypass scoring entirely; InfoRequested
// keeps full scoring mandatory but pins the persisted status label.
type Disposition string

const (
	DispositionNone          Disposition = ""
	DispositionDrop          Disposition = StatusDrop
	DispositionInfoRequested Disposition = StatusInfoRequested
	DispositionCallback      Disposition = StatusCallback
)

// ParseDisposition reads a persisted status tag back into a
// disposition; plain score-derived statuses map to None.
func ParseDisposition(status string) Disposition {
	switch status {
	case StatusDrop, StatusInfoRequested, StatusCallback:
		return Disposition(status)
	}
	return DispositionNone
}

// Overlays reports whether the disposition replaces the score-derived
// status label when persisted.
func (d Disposition) Overlays() bool {
	return d != DispositionNone
}

// RequiresFullScore reports whether every section must be scored
// before the save is admissible.
func (d Disposition) RequiresFullScore() bool {
	return d == DispositionNone || d == DispositionInfoRequested
}

// RequiresNotes reports whether a non-empty note gates the save.
func (d Disposition) RequiresNotes() bool {
	return d.Overlays()
}

// CanSave is the single save-gate used by every surface: it must match
// the enabled state of the save button at all times.
//
//	none:           all sections scored
//	drop/callback:  non-empty note
//	info-requested: all sections scored AND non-empty note
func (d Disposition) CanSave(scores map[string]int, notes string) bool {
	if d.RequiresFullScore() && !AllSectionsScored(scores) {
		return false
	}
	if d.RequiresNotes() && strings.TrimSpace(notes) == "" {
		return false
	}
	return true
}

// PersistedStatus resolves the status tag written on save. Dispositions
// win; otherwise the classifier decides.
func (d Disposition) PersistedStatus(t Thresholds, total, flagCount int) string {
	if d.Overlays() {
		return string(d)
	}
	return t.Classify(total, flagCount)
}
