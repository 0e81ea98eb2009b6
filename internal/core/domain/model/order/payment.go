package order

import (
	"fmt"

	"ordercart/internal/pkg/errs"
)

// Payment records the payment method and the computed order total.
// The Validator checks at intake that the total matches the sum of line
// totals within the rounding tolerance.
type Payment struct {
	method string
	total  float64
}

// NewPayment creates a Payment value object. Total must be non-negative;
// an empty method defaults to "card", matching the intake normalization default.
func NewPayment(method string, total float64) (Payment, error) {
	if total < 0 {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("payment total",
			fmt.Errorf("%f is negative", total))
	}
	if method == "" {
		method = "card"
	}
	return Payment{method: method, total: total}, nil
}

// Method returns the payment method.
func (p Payment) Method() string { return p.method }

// Total returns the computed order total.
func (p Payment) Total() float64 { return p.total }
