package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `lead_id, full_name, phone_number, city, email, gender, dob,
	education_level, age, ad_name, platform, intent_purpose, time_commitment,
	target_city, lead_alloc, updated_at`

// SelectRange fetches one roster page by offset. Ordered by lead_id so
// the cursor stays stable across pages.
func (r *LeadRepository) SelectRange(ctx context.Context, offset, limit int) ([]entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads ORDER BY lead_id LIMIT $1 OFFSET $2`, leadColumns)

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("leads select failed: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		var l entity.Lead
		err := rows.Scan(
			&l.LeadID, &l.FullName, &l.PhoneNumber, &l.City, &l.Email, &l.Gender,
			&l.DOB, &l.EducationLevel, &l.Age, &l.AdName, &l.Platform,
			&l.IntentPurpose, &l.TimeCommitment, &l.TargetCity, &l.LeadAlloc,
			&l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("leads scan failed: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// UpsertBatch writes an import batch in one transaction. Conflict
// target is the lead_id column; only roster fields are updated —
// score cards for the same ids are a different table and stay intact.
func (r *LeadRepository) UpsertBatch(ctx context.Context, leads []entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO leads (lead_id, full_name, phone_number, city, email, gender, dob,
			education_level, age, ad_name, platform, intent_purpose, time_commitment,
			target_city, lead_alloc, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (lead_id)
		DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone_number = EXCLUDED.phone_number,
			city = EXCLUDED.city,
			email = EXCLUDED.email,
			gender = EXCLUDED.gender,
			dob = EXCLUDED.dob,
			education_level = EXCLUDED.education_level,
			age = EXCLUDED.age,
			ad_name = EXCLUDED.ad_name,
			platform = EXCLUDED.platform,
			intent_purpose = EXCLUDED.intent_purpose,
			time_commitment = EXCLUDED.time_commitment,
			target_city = EXCLUDED.target_city,
			lead_alloc = EXCLUDED.lead_alloc,
			updated_at = EXCLUDED.updated_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare import upsert: %w", err)
	}
	defer stmt.Close()

	for _, l := range leads {
		_, err := stmt.ExecContext(ctx,
			l.LeadID, l.FullName, l.PhoneNumber, l.City, l.Email, l.Gender, l.DOB,
			l.EducationLevel, l.Age, l.AdName, l.Platform, l.IntentPurpose,
			l.TimeCommitment, l.TargetCity, l.LeadAlloc, l.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert lead %s: %w", l.LeadID, err)
		}
	}

	return tx.Commit()
}
