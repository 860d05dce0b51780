package usecase

import (
	"fmt"
	"strings"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSaveScoreInput checks the save-gate for the active
// disposition plus basic score sanity. Validation failures block the
// save without touching engine state.
func ValidateSaveScoreInput(input SaveScoreInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errors = append(errors, ValidationError{"lead_id", "is required"})
	}

	known := make(map[string]bool)
	for _, sec := range entity.Sections() {
		known[sec.ID] = true
	}
	for id, v := range input.Scores {
		if !known[id] {
			errors = append(errors, ValidationError{"scores." + id, "unknown section"})
			continue
		}
		if !entity.ValidScore(v) {
			errors = append(errors, ValidationError{"scores." + id, "must be 1, 3 or 5"})
		}
	}

	flagMax := len(entity.RedFlags())
	for idx := range input.Flags {
		var i int
		if _, err := fmt.Sscanf(idx, "%d", &i); err != nil || i < 0 || i >= flagMax {
			errors = append(errors, ValidationError{"flags." + idx, "unknown red flag"})
		}
	}

	switch input.Disposition {
	case entity.DispositionNone, entity.DispositionDrop,
		entity.DispositionInfoRequested, entity.DispositionCallback:
	default:
		errors = append(errors, ValidationError{"disposition", "must be drop, info-requested or callback"})
		return errors
	}

	if input.Disposition.RequiresFullScore() && !entity.AllSectionsScored(input.Scores) {
		done := entity.ScoredSections(input.Scores)
		errors = append(errors, ValidationError{
			"scores",
			fmt.Sprintf("all sections must be scored (%d / %d done)", done, len(entity.Sections())),
		})
	}
	if input.Disposition.RequiresNotes() && strings.TrimSpace(input.Notes) == "" {
		errors = append(errors, ValidationError{"notes", "are mandatory for this disposition"})
	}

	return errors
}
