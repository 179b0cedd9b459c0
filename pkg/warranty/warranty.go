package warranty

import (
	"time"

	"Proofchain-Backend/domain"
)

// Urgency thresholds are fixed; only the reminder lead time is
// per-bill configurable.
const WarningWindowDays = 30

const (
	UrgencyOK       = "ok"
	UrgencyWarning  = "warning"
	UrgencyCritical = "critical"
)

// ComputeExpiry adds whole calendar years to the purchase date. A Feb 29
// purchase with a non-leap target year rolls over to Mar 1, which is the
// native AddDate behavior and is accepted as-is.
func ComputeExpiry(purchaseDate time.Time, warrantyYears int) time.Time {
	return purchaseDate.AddDate(warrantyYears, 0, 0)
}

// DaysRemaining returns the ceiling of the time until expiry in whole
// days. Negative values mean the warranty expired that many whole days
// ago; a value within the expiry day itself reads as 0.
func DaysRemaining(expiry time.Time, asOf time.Time) int {
	days := expiry.Sub(asOf).Hours() / 24
	whole := int(days)
	if days > 0 && float64(whole) < days {
		whole++
	}
	return whole
}

func ClassifyUrgency(daysRemaining int) string {
	switch {
	case daysRemaining > WarningWindowDays:
		return UrgencyOK
	case daysRemaining > 0:
		return UrgencyWarning
	default:
		return UrgencyCritical
	}
}

// EffectiveStatus is what a bill should display right now. A pending or
// verified bill past its expiry date reads as expired even when the
// persisted row has not been corrected yet. Claimed and archived are
// manual terminal states and are never overridden.
func EffectiveStatus(persistedStatus string, expiry time.Time, asOf time.Time) string {
	switch persistedStatus {
	case domain.BillStatusClaimed, domain.BillStatusArchived, domain.BillStatusExpired:
		return persistedStatus
	}
	if expiry.Before(asOf) {
		return domain.BillStatusExpired
	}
	return persistedStatus
}
