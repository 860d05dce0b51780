package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
)

type ScoreRepository struct {
	DB *sql.DB
}

func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// SelectAll loads the whole scoring overlay. The table is one row per
// lead at most, so no pagination here.
func (r *ScoreRepository) SelectAll(ctx context.Context) ([]entity.ScoreCard, error) {
	query := `SELECT lead_id, scores, flags, notes, total, flag_count, status, updated_at
		FROM scored_leads`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scored_leads select failed: %w", err)
	}
	defer rows.Close()

	var cards []entity.ScoreCard
	for rows.Next() {
		var c entity.ScoreCard
		var scoresJSON, flagsJSON []byte
		err := rows.Scan(&c.LeadID, &scoresJSON, &flagsJSON, &c.Notes, &c.Total,
			&c.FlagCount, &c.Status, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scored_leads scan failed: %w", err)
		}
		if len(scoresJSON) > 0 {
			if err := json.Unmarshal(scoresJSON, &c.Scores); err != nil {
				return nil, fmt.Errorf("bad scores json for %s: %w", c.LeadID, err)
			}
		}
		if len(flagsJSON) > 0 {
			if err := json.Unmarshal(flagsJSON, &c.Flags); err != nil {
				return nil, fmt.Errorf("bad flags json for %s: %w", c.LeadID, err)
			}
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// Upsert is insert-or-replace on lead_id. The whole card is written in
// one statement — a failed write changes nothing.
func (r *ScoreRepository) Upsert(ctx context.Context, card *entity.ScoreCard) error {
	scoresJSON, err := json.Marshal(card.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	flagsJSON, err := json.Marshal(card.Flags)
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}

	query := `
		INSERT INTO scored_leads (lead_id, scores, flags, notes, total, flag_count, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (lead_id)
		DO UPDATE SET
			scores = EXCLUDED.scores,
			flags = EXCLUDED.flags,
			notes = EXCLUDED.notes,
			total = EXCLUDED.total,
			flag_count = EXCLUDED.flag_count,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.DB.ExecContext(ctx, query,
		card.LeadID, scoresJSON, flagsJSON, card.Notes,
		card.Total, card.FlagCount, card.Status, card.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("scored_leads upsert failed: %w", err)
	}
	return nil
}

// Delete removes one card by key. Missing rows are not an error.
func (r *ScoreRepository) Delete(ctx context.Context, leadID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM scored_leads WHERE lead_id = $1`, leadID)
	if err != nil {
		return fmt.Errorf("scored_leads delete failed: %w", err)
	}
	return nil
}
