// Package supabase is a thin PostgREST client covering the four store
// primitives the engine needs: ranged select, full select, upsert by
// lead_id and delete by lead_id. The anon key is a public credential —
// row security lives (or doesn't) on the Supabase side.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
)

const (
	leadsTable  = "leads"
	scoresTable = "scored_leads"
)

type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Content-Type", "application/json")
}

// do runs one request and decodes the body into out (when out != nil).
// Non-2xx responses come back as an error carrying the PostgREST
// message — callers surface it unmodified.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var perr errorResponse
		if json.Unmarshal(body, &perr) == nil && perr.String() != "" {
			return fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, perr.String())
		}
		return fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase decode failed: %w", err)
	}
	return nil
}

func (c *Client) tableURL(table string, query url.Values) string {
	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// SelectRange fetches one roster page. PostgREST caps responses at
// 1000 rows, which is exactly why the sync layer pages at all.
func (c *Client) SelectRange(ctx context.Context, offset, limit int) ([]entity.Lead, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "lead_id.asc")
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("limit", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(leadsTable, q), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	leads := []entity.Lead{}
	if err := c.do(req, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// UpsertBatch bulk-upserts roster rows, conflict target lead_id.
func (c *Client) UpsertBatch(ctx context.Context, leads []entity.Lead) error {
	q := url.Values{}
	q.Set("on_conflict", "lead_id")

	body, err := json.Marshal(leads)
	if err != nil {
		return fmt.Errorf("marshal lead batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(leadsTable, q), bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	return c.do(req, nil)
}

// SelectAll fetches the whole scoring overlay.
func (c *Client) SelectAll(ctx context.Context) ([]entity.ScoreCard, error) {
	q := url.Values{}
	q.Set("select", "*")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(scoresTable, q), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	cards := []entity.ScoreCard{}
	if err := c.do(req, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Upsert writes one score card, insert-or-replace on lead_id.
func (c *Client) Upsert(ctx context.Context, card *entity.ScoreCard) error {
	q := url.Values{}
	q.Set("on_conflict", "lead_id")

	body, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("marshal score card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(scoresTable, q), bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	return c.do(req, nil)
}

// Delete removes one score card by key.
func (c *Client) Delete(ctx context.Context, leadID string) error {
	q := url.Values{}
	q.Set("lead_id", "eq."+leadID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.tableURL(scoresTable, q), nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	return c.do(req, nil)
}
