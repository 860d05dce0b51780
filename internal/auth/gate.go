// Package auth implements the team-filter password gate. Secrets are
// static shared strings by design — there is no identity provider, the
// gate only decides which caller may open which allocation view.
package auth

import (
	"sync"
)

// MasterIdentity is the sentinel scope: once unlocked it satisfies
// every identity check for the rest of the session.
const MasterIdentity = "master"

// Gate validates unlock attempts against a static secret map. A gate
// is process-local and owns exactly one Session.
type Gate struct {
	secrets map[string]string
	session *Session
}

// Session holds the per-run unlock state. Unlocks are monotonic: an
// identity never re-locks except through Reset.
type Session struct {
	mu        sync.Mutex
	unlocked  map[string]bool
	lastGood  string
	everGood  bool
	challenge *Challenge
}

// Challenge is the single pending unlock slot. Issuing a new
// RequestAccess replaces any outstanding challenge silently.
type Challenge struct {
	Identity  string
	onGranted func()
	onDenied  func()
}

func NewGate(secrets map[string]string) *Gate {
	return &Gate{
		secrets: secrets,
		session: &Session{unlocked: make(map[string]bool)},
	}
}

// Session exposes the gate's session for read-side helpers.
func (g *Gate) Session() *Session { return g.session }

// RequestAccess runs onGranted immediately when identity (or master)
// is already unlocked; otherwise it parks a challenge for identity,
// discarding any prior pending challenge and its continuations.
func (g *Gate) RequestAccess(identity string, onGranted, onDenied func()) {
	s := g.session
	s.mu.Lock()
	if s.unlocked[MasterIdentity] || (identity != "" && s.unlocked[identity]) {
		s.lastGood = identity
		s.everGood = true
		s.mu.Unlock()
		if onGranted != nil {
			onGranted()
		}
		return
	}
	s.challenge = &Challenge{Identity: identity, onGranted: onGranted, onDenied: onDenied}
	s.mu.Unlock()
}

// Submit answers the pending challenge. Exactly two secrets are ever
// admissible: the identity's own, and the master secret. The empty
// identity ("all team members") and identities missing from the map
// accept only the master secret. A mismatch keeps the challenge open —
// retries are unlimited.
func (g *Gate) Submit(secret string) bool {
	s := g.session
	s.mu.Lock()
	ch := s.challenge
	if ch == nil {
		s.mu.Unlock()
		return false
	}

	isMaster := secret != "" && secret == g.secrets[MasterIdentity]
	own, hasOwn := g.secrets[ch.Identity]
	isOwn := ch.Identity != "" && hasOwn && secret == own

	if !isMaster && !isOwn {
		s.mu.Unlock()
		return false
	}

	if isMaster {
		s.unlocked[MasterIdentity] = true
	} else {
		s.unlocked[ch.Identity] = true
	}
	s.lastGood = ch.Identity
	s.everGood = true
	s.challenge = nil
	granted := ch.onGranted
	s.mu.Unlock()

	if granted != nil {
		granted()
	}
	return true
}

// Cancel abandons the pending challenge and runs its onDenied, if any.
func (g *Gate) Cancel() {
	s := g.session
	s.mu.Lock()
	ch := s.challenge
	s.challenge = nil
	s.mu.Unlock()

	if ch != nil && ch.onDenied != nil {
		ch.onDenied()
	}
}

// Pending returns the identity of the open challenge, if one exists.
func (s *Session) Pending() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.challenge == nil {
		return "", false
	}
	return s.challenge.Identity, true
}

// IsUnlocked reports whether identity's view may be shown. Master
// unlocks everything.
func (s *Session) IsUnlocked(identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked[MasterIdentity] || (identity != "" && s.unlocked[identity])
}

// Selection is the caller-visible identity after a cancel: the last
// successfully authenticated identity, or "none selected" when the
// session has never seen a success.
func (s *Session) Selection() (identity string, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastGood, s.everGood
}

// Reset drops all unlock state. Equivalent to a full page reload.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocked = make(map[string]bool)
	s.lastGood = ""
	s.everGood = false
	s.challenge = nil
}
