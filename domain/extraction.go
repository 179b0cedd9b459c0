package domain

import (
	"strings"
)

// Extraction results carry explicit defaults so callers never mistake a
// failed upstream call for valid empty data.

type (
	ProductInfo struct {
		ProductName string  `json:"productName"`
		Price       float64 `json:"price"`
		Store       string  `json:"store"`
	}

	ClaimDetails struct {
		Brand               string `json:"brand"`
		StoreEmail          string `json:"storeEmail"`
		StorePhone          string `json:"storePhone"`
		WarrantyDetailsText string `json:"warrantyDetailsText"`
	}
)

func DefaultProductInfo() ProductInfo {
	return ProductInfo{ProductName: "Unidentified Item", Price: 0, Store: "Unknown"}
}

func DefaultClaimDetails() ClaimDetails {
	return ClaimDetails{Brand: "Unknown Brand"}
}

func DefaultKeywords(productName string) []string {
	if productName == "" {
		return []string{}
	}
	return []string{strings.ToLower(productName)}
}
