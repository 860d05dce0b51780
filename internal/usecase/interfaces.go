package usecase

import (
	"context"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/queue"
)

// LeadStoreInterface is the roster side of the store: ranged select
// and bulk upsert keyed by lead_id. Any backend exposing these two
// primitives works (Postgres direct or Supabase PostgREST).
type LeadStoreInterface interface {
	SelectRange(ctx context.Context, offset, limit int) ([]entity.Lead, error)
	UpsertBatch(ctx context.Context, leads []entity.Lead) error
}

// ScoreStoreInterface is the overlay side: full select, upsert by
// lead_id (insert-or-replace), delete by lead_id.
type ScoreStoreInterface interface {
	SelectAll(ctx context.Context) ([]entity.ScoreCard, error)
	Upsert(ctx context.Context, card *entity.ScoreCard) error
	Delete(ctx context.Context, leadID string) error
}

type QueueProducerInterface interface {
	PublishLeadScored(ctx context.Context, payload queue.LeadScoredPayload) error
}

type MailServiceInterface interface {
	SendFastTrackAlert(assignee, leadName, phone, city string) error
}

type SaveScoreInput struct {
	LeadID      string             `json:"lead_id"`
	Scores      map[string]int     `json:"scores"`
	Flags       map[string]bool    `json:"flags"`
	Notes       string             `json:"notes"`
	Disposition entity.Disposition `json:"disposition"`
}

type SaveScoreOutput struct {
	LeadID    string `json:"lead_id"`
	Status    string `json:"status"`
	Total     int    `json:"total"`
	FlagCount int    `json:"flag_count"`
	Msg       string `json:"msg"`
}

// ImportRow is one spreadsheet row as exported: raw column name →
// cell text. Canonical fields are resolved through the alias table in
// import_leads.go, never by ad-hoc fallbacks downstream.
type ImportRow map[string]string

type ImportLeadsOutput struct {
	BatchID  string `json:"batch_id"`
	Received int    `json:"received"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}
