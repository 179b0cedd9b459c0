package claim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/internal/utils"
)

const defaultSearchURL = "https://google.serper.dev/search"

type (
	// ClaimService finds categorized warranty-claim resources for a
	// product. Search failures are surfaced directly: this is an explicit
	// user action with no sensible fallback.
	ClaimService interface {
		SearchClaimLinks(ctx context.Context, productName, brand, storeName string) (domain.ClaimLinksResponse, error)
	}

	claimService struct {
		httpClient *http.Client
		searchURL  string
	}

	searchResult struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	}
)

func NewClaimService() ClaimService {
	return &claimService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		searchURL:  defaultSearchURL,
	}
}

func (s *claimService) SearchClaimLinks(ctx context.Context, productName, brand, storeName string) (domain.ClaimLinksResponse, error) {
	apiKey := utils.GetConfig("SERPER_API_KEY")
	if apiKey == "" {
		return domain.ClaimLinksResponse{}, domain.ErrClaimSearchNotConfigured
	}

	brandName := brand
	if brandName == "" || brandName == "Unknown Brand" || brandName == "Unknown" {
		brandName = extractBrandFromProduct(productName)
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"q":   fmt.Sprintf("%s warranty claim process", brandName),
		"num": 10,
	})
	if err != nil {
		return domain.ClaimLinksResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.searchURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return domain.ClaimLinksResponse{}, err
	}
	req.Header.Set("X-API-KEY", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.ClaimLinksResponse{}, domain.ErrClaimSearchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.ClaimLinksResponse{}, domain.ErrClaimSearchFailed
	}

	var payload struct {
		Organic []searchResult `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.ClaimLinksResponse{}, domain.ErrClaimSearchFailed
	}

	return categorizeLinks(payload.Organic, brandName), nil
}

// extractBrandFromProduct falls back to the first word of the product
// name, the common "Brand Model Description" pattern.
func extractBrandFromProduct(productName string) string {
	words := strings.Fields(strings.TrimSpace(productName))
	if len(words) == 0 {
		return productName
	}
	return words[0]
}

func categorizeLinks(results []searchResult, brandName string) domain.ClaimLinksResponse {
	var categorized domain.ClaimLinksResponse
	brandLower := strings.ToLower(brandName)

	for _, result := range results {
		linkLower := strings.ToLower(result.Link)
		titleLower := strings.ToLower(result.Title)
		snippetLower := strings.ToLower(result.Snippet)

		link := domain.ClaimLink{
			Title:       result.Title,
			URL:         result.Link,
			Description: result.Snippet,
		}

		switch {
		case strings.Contains(linkLower, brandLower) &&
			(strings.Contains(linkLower, ".com") || strings.Contains(linkLower, ".in")) &&
			(strings.Contains(titleLower, "support") ||
				strings.Contains(titleLower, "warranty") ||
				strings.Contains(titleLower, "customer care")):
			categorized.OfficialSupport = append(categorized.OfficialSupport, link)

		case strings.Contains(titleLower, "service center") ||
			strings.Contains(titleLower, "repair") ||
			strings.Contains(titleLower, "locate") ||
			strings.Contains(snippetLower, "service center"):
			categorized.ServiceCenters = append(categorized.ServiceCenters, link)

		case strings.Contains(titleLower, "register") ||
			strings.Contains(titleLower, "registration") ||
			strings.Contains(snippetLower, "register your product"):
			categorized.Registration = append(categorized.Registration, link)

		default:
			categorized.Guides = append(categorized.Guides, link)
		}
	}

	categorized.OfficialSupport = capLinks(categorized.OfficialSupport, 3)
	categorized.ServiceCenters = capLinks(categorized.ServiceCenters, 3)
	categorized.Registration = capLinks(categorized.Registration, 2)
	categorized.Guides = capLinks(categorized.Guides, 4)
	return categorized
}

func capLinks(links []domain.ClaimLink, max int) []domain.ClaimLink {
	if len(links) > max {
		return links[:max]
	}
	return links
}
