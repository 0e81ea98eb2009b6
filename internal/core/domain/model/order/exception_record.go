package order

import (
	"fmt"
	"time"

	"ordercart/internal/pkg/errs"
)

// Category classifies the root problem behind an order exception.
// It is a closed enumeration; free-form category strings from external
// collaborators are mapped onto it (unrecognized values become CategoryOther).
type Category int

const (
	// CategoryUnknown represents an invalid or undefined category.
	CategoryUnknown Category = iota

	// CategoryPayment covers failed or suspect payment processing.
	CategoryPayment

	// CategoryAddress covers incomplete or undeliverable shipping addresses.
	CategoryAddress

	// CategoryInventory covers stock shortages and fulfillment blockers.
	CategoryInventory

	// CategoryData covers malformed or missing order data.
	CategoryData

	// CategoryOther covers everything else, including classifier fallbacks.
	CategoryOther
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryPayment:   "payment",
		CategoryAddress:   "address",
		CategoryInventory: "inventory",
		CategoryData:      "data",
		CategoryOther:     "other",
	}
}

// CategoryFromString parses the wire representation of a category.
func CategoryFromString(s string) (Category, error) {
	for c, str := range getCategoryStrings() {
		if str == s {
			return c, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("category",
		fmt.Errorf("%q is not a valid category", s))
}

// Validate checks if the Category value is valid.
func (c Category) Validate() error {
	if _, ok := getCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category",
			fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

// String returns the wire representation of the category.
func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// ExceptionRecord holds everything known about an order exception: why it was
// raised, the attached analysis, and how it was resolved. An order in exception
// status carries exactly one live record; on resolution the record is closed
// and retained for audit.
type ExceptionRecord struct {
	Category        Category
	Reasons         []string
	RootCause       string
	SuggestedAction string
	Priority        string
	Notes           string
	RaisedAt        time.Time
	ResolvedAt      *time.Time
	ResolvedBy      string
}

// NewExceptionRecord creates a live (unresolved) exception record.
func NewExceptionRecord(category Category, reasons []string, raisedAt time.Time) (ExceptionRecord, error) {
	if err := category.Validate(); err != nil {
		return ExceptionRecord{}, err
	}
	return ExceptionRecord{
		Category: category,
		Reasons:  append([]string(nil), reasons...),
		RaisedAt: raisedAt,
	}, nil
}

// IsResolved reports whether the record has been closed.
func (r ExceptionRecord) IsResolved() bool {
	return r.ResolvedAt != nil
}
