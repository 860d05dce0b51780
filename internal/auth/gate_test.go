package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSecrets() map[string]string {
	return map[string]string{
		MasterIdentity: "BlueSky2026",
		"Anil":         "GreenLeaf123",
		"Neha":         "CalmRiver123",
	}
}

func TestUnlockWithOwnOrMasterSecret(t *testing.T) {
	for _, secret := range []string{"GreenLeaf123", "BlueSky2026"} {
		gate := NewGate(testSecrets())

		granted := false
		gate.RequestAccess("Anil", func() { granted = true }, nil)
		assert.False(t, granted, "challenge must not grant before a secret")

		assert.True(t, gate.Submit(secret))
		assert.True(t, granted)
		assert.True(t, gate.Session().IsUnlocked("Anil"))
	}
}

func TestWrongSecretKeepsChallengeOpen(t *testing.T) {
	gate := NewGate(testSecrets())
	gate.RequestAccess("Anil", nil, nil)

	// Unlimited retries: a mismatch never consumes the challenge.
	assert.False(t, gate.Submit("CalmRiver123")) // someone else's secret
	assert.False(t, gate.Submit("nope"))
	_, pending := gate.Session().Pending()
	assert.True(t, pending)

	assert.True(t, gate.Submit("GreenLeaf123"))
}

func TestMasterUnlocksEveryIdentity(t *testing.T) {
	gate := NewGate(testSecrets())

	gate.RequestAccess("Anil", nil, nil)
	assert.True(t, gate.Submit("BlueSky2026"))

	// No new challenge for anyone else this session.
	granted := false
	gate.RequestAccess("Neha", func() { granted = true }, nil)
	assert.True(t, granted)

	_, pending := gate.Session().Pending()
	assert.False(t, pending)
}

func TestOwnUnlockDoesNotLeakToOthers(t *testing.T) {
	gate := NewGate(testSecrets())

	gate.RequestAccess("Anil", nil, nil)
	assert.True(t, gate.Submit("GreenLeaf123"))

	granted := false
	gate.RequestAccess("Neha", func() { granted = true }, nil)
	assert.False(t, granted)
	assert.False(t, gate.Session().IsUnlocked("Neha"))
}

func TestAllMembersViewAcceptsOnlyMaster(t *testing.T) {
	gate := NewGate(testSecrets())

	gate.RequestAccess("", nil, nil)
	assert.False(t, gate.Submit("GreenLeaf123"))
	assert.True(t, gate.Submit("BlueSky2026"))
	assert.True(t, gate.Session().IsUnlocked(""))
}

func TestUnknownIdentityRequiresMaster(t *testing.T) {
	gate := NewGate(testSecrets())

	gate.RequestAccess("Nobody", nil, nil)
	assert.False(t, gate.Submit("GreenLeaf123"))
	assert.False(t, gate.Submit("Nobody"))
	assert.True(t, gate.Submit("BlueSky2026"))
}

func TestCancelRevertsSelection(t *testing.T) {
	gate := NewGate(testSecrets())

	// Cancel before any success: selection reverts to "none selected".
	denied := false
	gate.RequestAccess("Anil", nil, func() { denied = true })
	gate.Cancel()
	assert.True(t, denied)
	_, selected := gate.Session().Selection()
	assert.False(t, selected)

	// After a success for Neha, a cancelled challenge for Anil reverts
	// the visible selection to Neha.
	gate.RequestAccess("Neha", nil, nil)
	assert.True(t, gate.Submit("CalmRiver123"))

	gate.RequestAccess("Anil", nil, nil)
	gate.Cancel()
	selection, selected := gate.Session().Selection()
	assert.True(t, selected)
	assert.Equal(t, "Neha", selection)
}

func TestNewChallengeReplacesPendingOne(t *testing.T) {
	gate := NewGate(testSecrets())

	firstGranted := false
	gate.RequestAccess("Anil", func() { firstGranted = true }, nil)
	gate.RequestAccess("Neha", nil, nil)

	// Anil's secret no longer matches: the open challenge is Neha's.
	assert.False(t, gate.Submit("GreenLeaf123"))
	assert.True(t, gate.Submit("CalmRiver123"))
	assert.False(t, firstGranted, "replaced continuations must never fire")
	assert.False(t, gate.Session().IsUnlocked("Anil"))
	assert.True(t, gate.Session().IsUnlocked("Neha"))
}

func TestUnlockIsMonotonicUntilReset(t *testing.T) {
	gate := NewGate(testSecrets())

	gate.RequestAccess("Anil", nil, nil)
	assert.True(t, gate.Submit("GreenLeaf123"))

	// Cancelling later challenges never re-locks Anil.
	gate.RequestAccess("Neha", nil, nil)
	gate.Cancel()
	assert.True(t, gate.Session().IsUnlocked("Anil"))

	gate.Session().Reset()
	assert.False(t, gate.Session().IsUnlocked("Anil"))
}
