package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConsentRecord_ForcesNecessary(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	record := NewConsentRecord(ConsentPreferences{Analytics: true}, at, "1.0")

	assert.True(t, record.Preferences.Necessary)
	assert.True(t, record.Preferences.Analytics)
	assert.False(t, record.Preferences.Personalization)
	assert.Equal(t, at.UnixMilli(), record.Timestamp)
	assert.Equal(t, "1.0", record.Version)
}

func TestLeadValidationError_UnwrapsToSentinel(t *testing.T) {
	var err error = &LeadValidationError{Fields: map[string]string{"email": "invalid"}}
	assert.ErrorIs(t, err, ErrInvalidLead)
}
