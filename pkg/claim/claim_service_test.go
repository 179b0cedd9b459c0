package claim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"Proofchain-Backend/domain"
)

func TestSearchClaimLinksRequiresAPIKey(t *testing.T) {
	service := NewClaimService()

	_, err := service.SearchClaimLinks(context.Background(), "Sony WH-1000XM5", "Sony", "Croma")
	assert.ErrorIs(t, err, domain.ErrClaimSearchNotConfigured)
}

func TestExtractBrandFromProduct(t *testing.T) {
	assert.Equal(t, "Sony", extractBrandFromProduct("Sony WH-1000XM5 Headphones"))
	assert.Equal(t, "Dyson", extractBrandFromProduct("  Dyson V11  "))
	assert.Equal(t, "", extractBrandFromProduct(""))
}

func TestCategorizeLinks(t *testing.T) {
	results := []searchResult{
		{Title: "Sony Support - Warranty", Link: "https://www.sony.com/support", Snippet: "Official warranty support"},
		{Title: "Authorized Service Center Locator", Link: "https://example.com/centers", Snippet: "Find a service center near you"},
		{Title: "Register Your Product", Link: "https://example.com/register", Snippet: "Register your product for coverage"},
		{Title: "How to claim a TV warranty", Link: "https://blog.example.com/guide", Snippet: "Step by step claim guide"},
	}

	got := categorizeLinks(results, "Sony")

	assert.Len(t, got.OfficialSupport, 1)
	assert.Equal(t, "https://www.sony.com/support", got.OfficialSupport[0].URL)
	assert.Len(t, got.ServiceCenters, 1)
	assert.Len(t, got.Registration, 1)
	assert.Len(t, got.Guides, 1)
}

func TestCategorizeLinksCapsEachBucket(t *testing.T) {
	var results []searchResult
	for i := 0; i < 10; i++ {
		results = append(results, searchResult{
			Title:   "Random article",
			Link:    "https://example.com/a",
			Snippet: "unrelated",
		})
	}

	got := categorizeLinks(results, "Sony")
	assert.Len(t, got.Guides, 4)
}
