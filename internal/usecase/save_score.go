package usecase

import (
	"context"
	"log"
	"time"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/queue"
)

// SaveScoreUseCase persists one scoring/disposition decision as an
// atomic upsert. On success the in-memory pipeline is patched in
// place; on failure nothing changes and the error carries the store's
// message.
type SaveScoreUseCase struct {
	Pipeline   *Pipeline
	ScoreStore ScoreStoreInterface
	Thresholds entity.Thresholds
	Queue      QueueProducerInterface
	Mail       MailServiceInterface
}

func NewSaveScoreUseCase(
	pipeline *Pipeline,
	scoreStore ScoreStoreInterface,
	thresholds entity.Thresholds,
	producer QueueProducerInterface,
	mail MailServiceInterface,
) *SaveScoreUseCase {
	return &SaveScoreUseCase{
		Pipeline:   pipeline,
		ScoreStore: scoreStore,
		Thresholds: thresholds,
		Queue:      producer,
		Mail:       mail,
	}
}

func (uc *SaveScoreUseCase) Execute(ctx context.Context, input SaveScoreInput) (*SaveScoreOutput, error) {
	validationErrors := ValidateSaveScoreInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	lead, ok := uc.Pipeline.Lead(input.LeadID)
	if !ok {
		return nil, &DomainError{
			Code:    "LEAD_NOT_FOUND",
			Message: "no lead in roster with id " + input.LeadID,
		}
	}

	// Drop/callback keep whatever scores were already held — a
	// disposition save never clears earlier section work.
	scores := input.Scores
	flags := input.Flags
	if !input.Disposition.RequiresFullScore() {
		if prev, held := uc.Pipeline.Card(input.LeadID); held {
			if len(scores) == 0 {
				scores = prev.Scores
			}
			if len(flags) == 0 {
				flags = prev.Flags
			}
		}
	}

	total := entity.CalcTotal(scores)
	flagCount := entity.CalcFlagCount(flags)

	card := entity.ScoreCard{
		LeadID:    lead.LeadID,
		Scores:    scores,
		Flags:     flags,
		Notes:     input.Notes,
		Total:     total,
		FlagCount: flagCount,
		Status:    input.Disposition.PersistedStatus(uc.Thresholds, total, flagCount),
		UpdatedAt: time.Now().UTC(),
	}

	if err := uc.ScoreStore.Upsert(ctx, &card); err != nil {
		return nil, &TechnicalError{
			Code:    "SAVE_FAILED",
			Message: "failed to persist score card: " + err.Error(),
		}
	}

	uc.Pipeline.applySave(card)

	// Side effects ride behind the persist and never fail the save.
	go func() {
		if uc.Queue != nil {
			payload := queue.LeadScoredPayload{
				LeadID:    card.LeadID,
				LeadName:  lead.FullName,
				Assignee:  lead.Assignee(),
				Status:    card.Status,
				Total:     card.Total,
				FlagCount: card.FlagCount,
			}
			if err := uc.Queue.PublishLeadScored(context.Background(), payload); err != nil {
				log.Printf("⚠️ lead.scored publish failed for %s: %v", card.LeadID, err)
			}
		}

		if uc.Mail != nil && card.Status == entity.StatusFastTrack {
			if err := uc.Mail.SendFastTrackAlert(lead.Assignee(), lead.FullName, lead.PhoneNumber, lead.TargetCity); err != nil {
				log.Printf("⚠️ fast-track alert failed for %s: %v", card.LeadID, err)
			}
		}
	}()

	return &SaveScoreOutput{
		LeadID:    card.LeadID,
		Status:    card.Status,
		Total:     card.Total,
		FlagCount: card.FlagCount,
		Msg:       "Saved: " + entity.StatusLabel(card.Status),
	}, nil
}
