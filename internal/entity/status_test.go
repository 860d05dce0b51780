package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFlagsAlwaysWin(t *testing.T) {
	th := DefaultThresholds()

	// Any raised flag forces auto-reject, no matter the total.
	for _, total := range []int{0, 5, 12, 17, 20} {
		assert.Equal(t, StatusAutoReject, th.Classify(total, 1), "total=%d", total)
		assert.Equal(t, StatusAutoReject, th.Classify(total, 3), "total=%d", total)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, StatusOpen, th.Classify(0, 0))
	assert.Equal(t, StatusNotSuitable, th.Classify(4, 0))
	assert.Equal(t, StatusNotSuitable, th.Classify(11, 0))
	assert.Equal(t, StatusNurture, th.Classify(12, 0))
	assert.Equal(t, StatusNurture, th.Classify(16, 0))
	assert.Equal(t, StatusFastTrack, th.Classify(17, 0))
	assert.Equal(t, StatusFastTrack, th.Classify(20, 0))
}

func TestClassifyConfigurableThresholds(t *testing.T) {
	// Earlier sheet revisions ran 20/14 — the classifier must follow
	// whatever it is handed.
	th := Thresholds{FastTrack: 20, Nurture: 14}

	scores := map[string]int{"motivation": 5, "ops": 5, "finance": 5, "mindset": 5}
	total := CalcTotal(scores)
	assert.Equal(t, 20, total)
	assert.Equal(t, StatusFastTrack, th.Classify(total, 0))
	assert.Equal(t, StatusAutoReject, th.Classify(total, 1))
	assert.Equal(t, StatusNurture, th.Classify(14, 0))
	assert.Equal(t, StatusNotSuitable, th.Classify(13, 0))
}

func TestIsRejectionFamily(t *testing.T) {
	assert.True(t, IsRejection(StatusAutoReject))
	assert.True(t, IsRejection(StatusNotSuitable))
	assert.True(t, IsRejection("rejected"))
	assert.False(t, IsRejection(StatusDrop))
	assert.False(t, IsRejection(StatusOpen))
}

func TestStatusLabelFallsBackToTag(t *testing.T) {
	assert.Equal(t, "Fast Track", StatusLabel(StatusFastTrack))
	assert.Equal(t, "Info Requested", StatusLabel(StatusInfoRequested))
	assert.Equal(t, "age-disqualified", StatusLabel("age-disqualified"))
}
