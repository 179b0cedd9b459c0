package domain

import (
	"errors"
)

var (
	MessageSuccessSearchClaimLinks = "claim links retrieved successfully"
	MessageFailedSearchClaimLinks  = "failed to search claim links"

	ErrClaimSearchNotConfigured = errors.New("claim link search is not configured")
	ErrClaimSearchFailed        = errors.New("failed to search for warranty claim links")
)

type (
	ClaimLink struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
	}

	ClaimLinksResponse struct {
		OfficialSupport []ClaimLink `json:"official_support"`
		ServiceCenters  []ClaimLink `json:"service_centers"`
		Registration    []ClaimLink `json:"registration"`
		Guides          []ClaimLink `json:"guides"`
	}
)
