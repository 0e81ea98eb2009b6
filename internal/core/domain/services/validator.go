package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"ordercart/internal/core/domain/model/order"
)

// Validation rule constants. The tolerance absorbs float rounding when
// comparing the payment total against the sum of line totals.
const (
	totalTolerance = 0.01
	highValueLimit = 10000.0
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	zipPattern      = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneSeparators = regexp.MustCompile(`[\s\-().]`)
)

// knownPaymentMethods lists the payment methods the pipeline recognizes.
// Unrecognized methods are a warning, not an error.
func knownPaymentMethods() map[string]bool {
	return map[string]bool{
		"card":          true,
		"credit_card":   true,
		"debit_card":    true,
		"paypal":        true,
		"bank_transfer": true,
		"cash":          true,
	}
}

// Validator is a pure rule engine checking field-level correctness of a
// candidate order. Rules run fail-open: every rule is evaluated even after one
// fails, so the caller always receives the complete error list. A candidate is
// admissible only when the error list is empty; warnings never block admission.
//
// Validator never mutates external state and holds no state of its own, making
// it safe for concurrent use.
type Validator struct{}

// NewValidator creates a Validator instance.
func NewValidator() Validator {
	return Validator{}
}

// Validate applies every rule to the candidate and returns the collected
// outcome.
func (v Validator) Validate(c order.Candidate) order.ValidationResult {
	var errors, warnings []string

	errors, warnings = v.checkCustomer(c, errors, warnings)
	errors, warnings = v.checkAddress(c, errors, warnings)
	errors = v.checkItems(c, errors)
	errors, warnings = v.checkPayment(c, errors, warnings)

	return order.NewValidationResult(errors, warnings)
}

func (v Validator) checkCustomer(c order.Candidate, errors, warnings []string) ([]string, []string) {
	switch {
	case c.CustomerName == "":
		errors = append(errors, "customer name is required")
	case len(c.CustomerName) < 2:
		errors = append(errors, "customer name is too short")
	}

	switch {
	case c.CustomerEmail == "":
		errors = append(errors, "customer email is required")
	case !emailPattern.MatchString(c.CustomerEmail):
		errors = append(errors, fmt.Sprintf("invalid email format: %s", c.CustomerEmail))
	}

	if c.CustomerPhone == "" {
		warnings = append(warnings, "phone number is missing")
	} else {
		digits := phoneSeparators.ReplaceAllString(c.CustomerPhone, "")
		digits = strings.TrimPrefix(digits, "+")
		if !isAllDigits(digits) || len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
			errors = append(errors, fmt.Sprintf("invalid phone number: %s", c.CustomerPhone))
		}
	}

	return errors, warnings
}

func (v Validator) checkAddress(c order.Candidate, errors, warnings []string) ([]string, []string) {
	required := []struct {
		name  string
		value string
	}{
		{"street address", c.Street},
		{"city", c.City},
		{"state", c.State},
		{"zip code", c.Zip},
	}
	for _, field := range required {
		if field.value == "" {
			errors = append(errors, fmt.Sprintf("address %s is required", field.name))
		}
	}

	domestic := c.Country == "" || c.Country == "USA"
	if c.Zip != "" && domestic && !zipPattern.MatchString(c.Zip) {
		errors = append(errors, fmt.Sprintf("invalid zip code format: %s", c.Zip))
	}

	if c.Country == "" {
		warnings = append(warnings, "country is missing, assuming domestic")
	}

	return errors, warnings
}

func (v Validator) checkItems(c order.Candidate, errors []string) []string {
	if len(c.Items) == 0 {
		return append(errors, "order must contain at least one item")
	}

	for idx, item := range c.Items {
		// 1-based index so error messages name items the way people count them.
		n := idx + 1
		if item.SKU == "" {
			errors = append(errors, fmt.Sprintf("item %d: sku is required", n))
		}
		if item.Name == "" {
			errors = append(errors, fmt.Sprintf("item %d: product name is required", n))
		}
		if item.Quantity <= 0 {
			errors = append(errors, fmt.Sprintf("item %d: invalid quantity", n))
		}
		if item.UnitPrice < 0 {
			errors = append(errors, fmt.Sprintf("item %d: invalid unit price", n))
		}
	}

	return errors
}

func (v Validator) checkPayment(c order.Candidate, errors, warnings []string) ([]string, []string) {
	var lineSum float64
	for _, item := range c.Items {
		lineSum += float64(item.Quantity) * item.UnitPrice
	}

	if len(c.Items) > 0 && math.Abs(c.Total-lineSum) > totalTolerance {
		errors = append(errors, fmt.Sprintf("payment total %.2f does not match line total %.2f", c.Total, lineSum))
	}

	if c.Total < 0 {
		errors = append(errors, fmt.Sprintf("order total is negative: %.2f", c.Total))
	}
	if c.Total > highValueLimit {
		warnings = append(warnings, fmt.Sprintf("high-value order: %.2f requires review", c.Total))
	}

	if c.PaymentMethod != "" && !knownPaymentMethods()[c.PaymentMethod] {
		warnings = append(warnings, fmt.Sprintf("unrecognized payment method: %s", c.PaymentMethod))
	}

	return errors, warnings
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
