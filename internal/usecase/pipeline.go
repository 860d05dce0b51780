package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
)

// DefaultPageSize matches the store's hard row cap — Supabase tops out
// at 1000 rows per select, so the roster must be fetched in pages.
const DefaultPageSize = 1000

// MergedLead is one grid row: roster fields plus whatever the scoring
// overlay holds for that lead. Unscored leads read as status Open.
type MergedLead struct {
	entity.Lead
	Scores    map[string]int  `json:"scores,omitempty"`
	Flags     map[string]bool `json:"flags,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Total     int             `json:"total"`
	FlagCount int             `json:"flag_count"`
	Status    string          `json:"status"`
	Scored    bool            `json:"scored"`
}

// Pipeline owns the in-memory merged collection: the roster array and
// the overlay map, loaded independently and joined by lead_id. It is
// the single source every view and aggregation reads from.
type Pipeline struct {
	LeadStore  LeadStoreInterface
	ScoreStore ScoreStoreInterface
	Thresholds entity.Thresholds
	PageSize   int

	mu     sync.RWMutex
	leads  []entity.Lead
	scored map[string]entity.ScoreCard
}

func NewPipeline(leadStore LeadStoreInterface, scoreStore ScoreStoreInterface, thresholds entity.Thresholds) *Pipeline {
	return &Pipeline{
		LeadStore:  leadStore,
		ScoreStore: scoreStore,
		Thresholds: thresholds,
		PageSize:   DefaultPageSize,
		scored:     make(map[string]entity.ScoreCard),
	}
}

// LoadAll fetches roster and overlay from the store and replaces the
// in-memory collection. Any page failure aborts the whole load and
// leaves the previous collection untouched — partial success is never
// reported as success.
func (p *Pipeline) LoadAll(ctx context.Context) error {
	leads, err := p.loadRoster(ctx)
	if err != nil {
		return &TechnicalError{Code: "ROSTER_LOAD_FAILED", Message: err.Error()}
	}

	scored, err := p.loadOverlay(ctx)
	if err != nil {
		return &TechnicalError{Code: "OVERLAY_LOAD_FAILED", Message: err.Error()}
	}

	p.mu.Lock()
	p.leads = leads
	p.scored = scored
	p.mu.Unlock()

	log.Printf("🔄 Synced · %d leads · %d scored", len(leads), len(scored))
	return nil
}

// loadRoster pages through the full table by offset. Pages are fetched
// strictly sequentially: page N+1 is only requested once page N is in,
// keeping the offset cursor stable.
func (p *Pipeline) loadRoster(ctx context.Context) ([]entity.Lead, error) {
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []entity.Lead
	offset := 0
	for {
		page, err := p.LeadStore.SelectRange(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
		offset += pageSize
	}
}

// loadOverlay fetches every score card and indexes it by lead_id.
// Derived fields are recomputed on read — stored totals are not
// trusted.
func (p *Pipeline) loadOverlay(ctx context.Context) (map[string]entity.ScoreCard, error) {
	cards, err := p.ScoreStore.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	scored := make(map[string]entity.ScoreCard, len(cards))
	for _, card := range cards {
		card.Recompute(p.Thresholds)
		scored[card.LeadID] = card
	}
	return scored, nil
}

// Snapshot returns the merged collection: a left join from every
// roster lead to its score card. Safe to aggregate over — the rows are
// copies.
func (p *Pipeline) Snapshot() []MergedLead {
	p.mu.RLock()
	defer p.mu.RUnlock()

	merged := make([]MergedLead, 0, len(p.leads))
	for _, lead := range p.leads {
		row := MergedLead{Lead: lead, Status: entity.StatusOpen}
		if card, ok := p.scored[lead.LeadID]; ok {
			row.Scores = card.Scores
			row.Flags = card.Flags
			row.Notes = card.Notes
			row.Total = card.Total
			row.FlagCount = card.FlagCount
			row.Status = card.Status
			row.Scored = len(card.Scores) > 0
		}
		merged = append(merged, row)
	}
	return merged
}

// Lead looks a roster record up by id.
func (p *Pipeline) Lead(leadID string) (entity.Lead, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, l := range p.leads {
		if l.LeadID == leadID {
			return l, true
		}
	}
	return entity.Lead{}, false
}

// Card looks the overlay up by lead id.
func (p *Pipeline) Card(leadID string) (entity.ScoreCard, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	card, ok := p.scored[leadID]
	return card, ok
}

// applySave patches the in-memory collection after a successful store
// upsert so the caller sees its own write without a full reload.
// Concurrent saves to the same lead are last-write-wins, same as the
// backing store.
func (p *Pipeline) applySave(card entity.ScoreCard) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scored[card.LeadID] = card
	for i := range p.leads {
		if p.leads[i].LeadID == card.LeadID {
			p.leads[i].UpdatedAt = card.UpdatedAt
			break
		}
	}
}

// applyImport upserts roster rows in memory. Overlay entries for the
// same ids are deliberately left untouched — import only ever touches
// roster fields.
func (p *Pipeline) applyImport(batch []entity.Lead) {
	p.mu.Lock()
	defer p.mu.Unlock()

	index := make(map[string]int, len(p.leads))
	for i, l := range p.leads {
		index[l.LeadID] = i
	}
	for _, lead := range batch {
		if i, ok := index[lead.LeadID]; ok {
			p.leads[i] = lead
		} else {
			index[lead.LeadID] = len(p.leads)
			p.leads = append(p.leads, lead)
		}
	}
}
