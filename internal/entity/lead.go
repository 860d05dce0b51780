package entity

import (
	"strings"
	"time"
)

// Lead is one roster row imported from the ad-platform sheet.
// The stable key is LeadID (phone number or external row id) — the
// scoring overlay is joined on it.
type Lead struct {
	LeadID         string `json:"lead_id"`
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	City           string `json:"city"`
	Email          string `json:"email"`
	Gender         string `json:"gender"`
	DOB            string `json:"dob"`
	EducationLevel string `json:"education_level"`
	Age            string `json:"age"`
	AdName         string `json:"ad_name"`
	Platform       string `json:"platform"`
	IntentPurpose  string `json:"intent_purpose"`
	TimeCommitment string `json:"time_commitment"`
	TargetCity     string `json:"target_city"`
	LeadAlloc      string `json:"lead_alloc"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Unassigned is the fallback bucket for leads without an allocation.
const Unassigned = "Unassigned"

// Assignee returns the allocated team member, never empty.
func (l *Lead) Assignee() string {
	if strings.TrimSpace(l.LeadAlloc) == "" {
		return Unassigned
	}
	return l.LeadAlloc
}

// MatchesSearch does the grid free-text search over name and phone.
func (l *Lead) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.FullName), term) ||
		strings.Contains(l.PhoneNumber, term)
}
