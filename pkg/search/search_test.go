package search

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/entities"
)

func testBill(productName, storeName, brand, status string, expiry time.Time, keywords ...string) *entities.Bill {
	b := &entities.Bill{
		ID:          uuid.New(),
		ProductName: productName,
		StoreName:   storeName,
		Brand:       brand,
		Status:      status,
		ExpiryDate:  expiry,
	}
	b.SetKeywords(keywords)
	return b
}

func TestApplyStatusFilter(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	past := now.AddDate(0, 0, -10)

	bills := []*entities.Bill{
		testBill("Sony WH-1000XM5", "Croma", "Sony", domain.BillStatusVerified, future),
		testBill("Dyson V11", "Amazon", "Dyson", domain.BillStatusVerified, past),
		testBill("iPhone 15", "Apple Store", "Apple", domain.BillStatusClaimed, future),
	}

	all := Apply(bills, "", "all", now)
	assert.Len(t, all, 3)

	verified := Apply(bills, "", domain.BillStatusVerified, now)
	assert.Len(t, verified, 1)
	assert.Equal(t, "Sony WH-1000XM5", verified[0].ProductName)

	// The lapsed Dyson reads as expired even though the row still says
	// verified.
	expired := Apply(bills, "", domain.BillStatusExpired, now)
	assert.Len(t, expired, 1)
	assert.Equal(t, "Dyson V11", expired[0].ProductName)
}

func TestApplyFuzzyQuery(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)

	bills := []*entities.Bill{
		testBill("Sony WH-1000XM5", "Croma", "Sony", domain.BillStatusVerified, future, "headphones", "audio"),
		testBill("Samsung 55 inch TV", "Reliance Digital", "Samsung", domain.BillStatusVerified, future, "television"),
	}

	// Substring containment is an exact match.
	got := Apply(bills, "sony", "all", now)
	assert.Len(t, got, 1)
	assert.Equal(t, "Sony WH-1000XM5", got[0].ProductName)

	// A one-letter typo still lands within the threshold.
	got = Apply(bills, "soni", "all", now)
	assert.Len(t, got, 1)
	assert.Equal(t, "Sony WH-1000XM5", got[0].ProductName)

	// Keywords participate in matching.
	got = Apply(bills, "headphones", "all", now)
	assert.Len(t, got, 1)

	// Unrelated queries match nothing.
	got = Apply(bills, "refrigerator", "all", now)
	assert.Empty(t, got)
}

func TestApplyRanksCloserMatchesFirst(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)

	bills := []*entities.Bill{
		testBill("Sonos Beam", "Croma", "Sonos", domain.BillStatusVerified, future),
		testBill("Sony Bravia", "Croma", "Sony", domain.BillStatusVerified, future),
	}

	got := Apply(bills, "sony", "all", now)
	assert.True(t, len(got) >= 1)
	assert.Equal(t, "Sony Bravia", got[0].ProductName)
}

func TestApplyDoesNotMutateSnapshot(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)

	bills := []*entities.Bill{
		testBill("Dyson V11", "Amazon", "Dyson", domain.BillStatusVerified, past),
	}

	_ = Apply(bills, "", domain.BillStatusExpired, now)
	assert.Equal(t, domain.BillStatusVerified, bills[0].Status)
}

func TestFieldScore(t *testing.T) {
	assert.Equal(t, 0.0, fieldScore("Sony WH-1000XM5", "sony"))
	assert.InDelta(t, 0.25, fieldScore("Sony WH-1000XM5", "soni"), 0.001)
	assert.Greater(t, fieldScore("Samsung TV", "sony"), DefaultThreshold)
}
