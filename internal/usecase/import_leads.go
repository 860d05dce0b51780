package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
)

// fieldAliases maps every column name the sheet exports have ever used
// to its canonical roster field. Declared once, consulted once at
// import time — nothing downstream falls back across column names.
var fieldAliases = map[string][]string{
	"lead_id":         {"phone_number", "Phone", "ID"},
	"full_name":       {"full_name", "Name"},
	"phone_number":    {"phone_number", "Phone"},
	"city":            {"city", "City"},
	"email":           {"email", "Email"},
	"gender":          {"Lead_Gender", "gender"},
	"dob":             {"date_of_birth", "Formatted_Date"},
	"education_level": {"education_level"},
	"age":             {"Age", "age"},
	"ad_name":         {"ad_name"},
	"platform":        {"platform"},
	"intent_purpose":  {"आप_किसके_लिए_जानकारी_ले_रहे_हैं?"},
	"time_commitment": {"क्या_आप_अपने_फूड_बिज़नेस_को_समय_देने_के_लिए_तैयार_हैं?"},
	"target_city":     {"Target_City"},
	"lead_alloc":      {"Lead_Allocation"},
}

// resolve returns the first alias present in the row, trimmed. Missing
// fields resolve to the typed empty sentinel "".
func resolve(row ImportRow, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := row[alias]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ImportLeadsUseCase turns a sheet export batch into a roster bulk
// upsert. Rows without a derivable lead_id are silently skipped (a
// filter, not an error); duplicate ids within the batch collapse to
// the last occurrence. Score cards for the same ids are never touched.
type ImportLeadsUseCase struct {
	Pipeline  *Pipeline
	LeadStore LeadStoreInterface
}

func NewImportLeadsUseCase(pipeline *Pipeline, leadStore LeadStoreInterface) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Pipeline: pipeline, LeadStore: leadStore}
}

func (uc *ImportLeadsUseCase) Execute(ctx context.Context, rows []ImportRow) (*ImportLeadsOutput, error) {
	out := &ImportLeadsOutput{
		BatchID:  uuid.New().String(),
		Received: len(rows),
	}

	now := time.Now().UTC()
	byID := make(map[string]entity.Lead)
	var order []string

	for _, row := range rows {
		id := resolve(row, "lead_id")
		if id == "" {
			out.Skipped++
			continue
		}

		name := resolve(row, "full_name")
		if name == "" {
			name = "Unknown"
		}
		alloc := resolve(row, "lead_alloc")
		if alloc == "" {
			alloc = entity.Unassigned
		}

		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = entity.Lead{
			LeadID:         id,
			FullName:       name,
			PhoneNumber:    resolve(row, "phone_number"),
			City:           resolve(row, "city"),
			Email:          resolve(row, "email"),
			Gender:         resolve(row, "gender"),
			DOB:            resolve(row, "dob"),
			EducationLevel: resolve(row, "education_level"),
			Age:            resolve(row, "age"),
			AdName:         resolve(row, "ad_name"),
			Platform:       resolve(row, "platform"),
			IntentPurpose:  resolve(row, "intent_purpose"),
			TimeCommitment: resolve(row, "time_commitment"),
			TargetCity:     resolve(row, "target_city"),
			LeadAlloc:      alloc,
			UpdatedAt:      now,
		}
	}

	batch := make([]entity.Lead, 0, len(byID))
	for _, id := range order {
		batch = append(batch, byID[id])
	}
	out.Imported = len(batch)

	if len(batch) == 0 {
		return out, nil
	}

	if err := uc.LeadStore.UpsertBatch(ctx, batch); err != nil {
		return nil, &TechnicalError{
			Code:    "IMPORT_FAILED",
			Message: "failed to upsert roster batch: " + err.Error(),
		}
	}

	uc.Pipeline.applyImport(batch)
	return out, nil
}
