package search

import (
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"Proofchain-Backend/entities"
	"Proofchain-Backend/pkg/warranty"
)

// DefaultThreshold matches the permissive typo tolerance of the dashboard
// search: 0.0 is an exact match, 1.0 matches anything.
const DefaultThreshold = 0.4

// Apply is a pure projection over a snapshot of a user's bills. It never
// mutates the snapshot and keeps no state between calls: the result is
// fully determined by the bills, the query, the status filter and asOf.
//
// Bills whose expiry date has passed are presented as expired regardless
// of the persisted status; persisting that correction is the caller's
// (optional, lazy) concern.
func Apply(bills []*entities.Bill, query string, status string, asOf time.Time) []*entities.Bill {
	result := make([]*entities.Bill, 0, len(bills))

	for _, bill := range bills {
		effective := warranty.EffectiveStatus(bill.Status, bill.ExpiryDate, asOf)
		if status != "" && status != "all" && effective != status {
			continue
		}
		result = append(result, bill)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return result
	}

	type ranked struct {
		bill  *entities.Bill
		score float64
	}

	matches := make([]ranked, 0, len(result))
	for _, bill := range result {
		score := billScore(bill, query)
		if score <= DefaultThreshold {
			matches = append(matches, ranked{bill: bill, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	out := make([]*entities.Bill, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.bill)
	}
	return out
}

// EffectiveBills returns the snapshot with the lazy expiry correction
// applied to the in-memory copies, without filtering.
func EffectiveBills(bills []*entities.Bill, asOf time.Time) []*entities.Bill {
	for _, bill := range bills {
		bill.Status = warranty.EffectiveStatus(bill.Status, bill.ExpiryDate, asOf)
	}
	return bills
}

func billScore(bill *entities.Bill, query string) float64 {
	fields := []string{bill.ProductName, bill.StoreName, bill.Brand}
	fields = append(fields, bill.KeywordList()...)

	best := 1.0
	for _, field := range fields {
		if field == "" {
			continue
		}
		if s := fieldScore(field, query); s < best {
			best = s
		}
	}
	return best
}

// fieldScore measures how well query approximates the field, token by
// token, as a normalized edit distance in [0, 1]. Substring containment
// counts as exact.
func fieldScore(field, query string) float64 {
	field = strings.ToLower(field)
	query = strings.ToLower(query)

	if strings.Contains(field, query) {
		return 0
	}

	best := 1.0
	for _, token := range strings.FieldsFunc(field, isSeparator) {
		dist := fuzzy.LevenshteinDistance(query, token)
		longest := len(query)
		if len(token) > longest {
			longest = len(token)
		}
		if longest == 0 {
			continue
		}
		score := float64(dist) / float64(longest)
		if score < best {
			best = score
		}
	}
	return best
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '_' || r == '/' || r == ','
}
