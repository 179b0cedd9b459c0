package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"Proofchain-Backend/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeExpiry(t *testing.T) {
	assert.Equal(t, date(2025, time.March, 15), ComputeExpiry(date(2024, time.March, 15), 1))
	assert.Equal(t, date(2027, time.July, 1), ComputeExpiry(date(2024, time.July, 1), 3))

	// Feb 29 purchase rolls over to Mar 1 in a non-leap year.
	assert.Equal(t, date(2025, time.March, 1), ComputeExpiry(date(2024, time.February, 29), 1))
}

func TestDaysRemaining(t *testing.T) {
	now := date(2026, time.January, 10)

	assert.Equal(t, 5, DaysRemaining(now.AddDate(0, 0, 5), now))
	assert.Equal(t, 0, DaysRemaining(now, now))
	assert.Equal(t, -3, DaysRemaining(now.AddDate(0, 0, -3), now))

	// Partial days round up.
	assert.Equal(t, 1, DaysRemaining(now.Add(6*time.Hour), now))
	assert.Equal(t, 6, DaysRemaining(now.AddDate(0, 0, 5).Add(12*time.Hour), now))

	// Expired earlier the same day still reads as 0, not -1.
	assert.Equal(t, 0, DaysRemaining(now.Add(-6*time.Hour), now))
}

func TestClassifyUrgency(t *testing.T) {
	assert.Equal(t, UrgencyOK, ClassifyUrgency(31))
	assert.Equal(t, UrgencyWarning, ClassifyUrgency(30))
	assert.Equal(t, UrgencyWarning, ClassifyUrgency(1))
	assert.Equal(t, UrgencyCritical, ClassifyUrgency(0))
	assert.Equal(t, UrgencyCritical, ClassifyUrgency(-10))
}

func TestEffectiveStatus(t *testing.T) {
	now := date(2026, time.June, 1)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 30)

	assert.Equal(t, domain.BillStatusExpired, EffectiveStatus(domain.BillStatusPending, past, now))
	assert.Equal(t, domain.BillStatusExpired, EffectiveStatus(domain.BillStatusVerified, past, now))

	assert.Equal(t, domain.BillStatusPending, EffectiveStatus(domain.BillStatusPending, future, now))
	assert.Equal(t, domain.BillStatusVerified, EffectiveStatus(domain.BillStatusVerified, future, now))

	// Manual terminal states are never overridden.
	assert.Equal(t, domain.BillStatusClaimed, EffectiveStatus(domain.BillStatusClaimed, past, now))
	assert.Equal(t, domain.BillStatusArchived, EffectiveStatus(domain.BillStatusArchived, past, now))
	assert.Equal(t, domain.BillStatusExpired, EffectiveStatus(domain.BillStatusExpired, past, now))
}
