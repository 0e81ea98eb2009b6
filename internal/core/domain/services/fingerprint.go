package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"ordercart/internal/core/domain/model/order"
)

// Fingerprinter derives the stable duplicate-detection key for a candidate
// order. Two candidates with identical normalized customer email, identical
// item/quantity sets, and identical rounded total always produce the same
// fingerprint; any difference in those inputs produces a different one.
//
// The fingerprint is a hex-encoded SHA-256 over:
//   - the customer email, lowercased and trimmed
//   - the sku:quantity pairs, quantities summed per SKU and sorted by SKU
//   - the total, rounded to cents
//
// Item order and email casing therefore never affect the result.
type Fingerprinter struct{}

// NewFingerprinter creates a Fingerprinter instance.
func NewFingerprinter() Fingerprinter {
	return Fingerprinter{}
}

// Fingerprint computes the derived key for a candidate order.
func (f Fingerprinter) Fingerprint(c order.Candidate) string {
	email := strings.ToLower(strings.TrimSpace(c.CustomerEmail))

	quantities := make(map[string]int, len(c.Items))
	for _, item := range c.Items {
		quantities[item.SKU] += item.Quantity
	}
	skus := make([]string, 0, len(quantities))
	for sku := range quantities {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	pairs := make([]string, 0, len(skus))
	for _, sku := range skus {
		pairs = append(pairs, fmt.Sprintf("%s:%d", sku, quantities[sku]))
	}

	cents := int64(math.Round(c.Total * 100))
	payload := fmt.Sprintf("%s|%s|%d", email, strings.Join(pairs, ","), cents)

	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
