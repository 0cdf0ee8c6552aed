package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleForSeverity_KnownLevels(t *testing.T) {
	critical := StyleForSeverity(SeverityCritical)
	assert.Equal(t, "red-600", critical.Color)
	assert.Equal(t, 0, critical.SortRank)

	warning := StyleForSeverity(SeverityWarning)
	assert.Equal(t, "amber-500", warning.Color)
	assert.Equal(t, 1, warning.SortRank)

	info := StyleForSeverity(SeverityInfo)
	assert.Equal(t, "sky-500", info.Color)
	assert.Equal(t, 2, info.SortRank)
}

func TestStyleForSeverity_UnknownFallsBackToInfo(t *testing.T) {
	assert.Equal(t, StyleForSeverity(SeverityInfo), StyleForSeverity("catastrophic"))
	assert.Equal(t, StyleForSeverity(SeverityInfo), StyleForSeverity(""))
}

func TestIsValidRejectReason(t *testing.T) {
	valid := []string{
		RejectReasonDataIncorrect,
		RejectReasonAlreadyAddressed,
		RejectReasonNotUrgent,
		RejectReasonRequiresReview,
		RejectReasonOther,
	}
	for _, reason := range valid {
		assert.True(t, IsValidRejectReason(reason), reason)
	}

	assert.False(t, IsValidRejectReason(""))
	assert.False(t, IsValidRejectReason("OTHER"))
	assert.False(t, IsValidRejectReason("unknown_reason"))
}

func TestAlertIsTerminal(t *testing.T) {
	assert.False(t, (&Alert{Status: AlertStatusPending}).IsTerminal())
	assert.True(t, (&Alert{Status: AlertStatusApproved}).IsTerminal())
	assert.True(t, (&Alert{Status: AlertStatusRejected}).IsTerminal())
}
