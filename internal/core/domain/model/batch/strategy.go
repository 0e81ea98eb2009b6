package batch

import (
	"fmt"

	"ordercart/internal/pkg/errs"
)

// Strategy identifies how eligible orders are grouped into batches.
// It is a closed enumeration with exhaustive matching; free-form strategy
// strings from the wire are parsed through StrategyFromString.
type Strategy int

const (
	// StrategyUnknown represents an invalid or undefined strategy.
	StrategyUnknown Strategy = iota

	// StrategyRegion groups orders by destination (state, city).
	StrategyRegion

	// StrategyUrgency groups orders by age bucket, oldest first.
	StrategyUrgency

	// StrategyProduct groups orders by their most common SKU.
	StrategyProduct
)

func getStrategyStrings() map[Strategy]string {
	return map[Strategy]string{
		StrategyRegion:  "region",
		StrategyUrgency: "urgency",
		StrategyProduct: "product",
	}
}

// StrategyFromString parses the wire representation of a strategy.
func StrategyFromString(s string) (Strategy, error) {
	for strategy, str := range getStrategyStrings() {
		if str == s {
			return strategy, nil
		}
	}
	return StrategyUnknown, errs.NewValueIsInvalidErrorWithCause("strategy",
		fmt.Errorf("%q is not a valid strategy", s))
}

// Validate checks if the Strategy value is valid.
func (s Strategy) Validate() error {
	if _, ok := getStrategyStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("strategy",
			fmt.Errorf("%d is not a valid strategy", s))
	}
	return nil
}

// String returns the wire representation of the strategy.
func (s Strategy) String() string {
	if str, ok := getStrategyStrings()[s]; ok {
		return str
	}
	return "unknown"
}
