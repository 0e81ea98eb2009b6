package order

import (
	"fmt"

	"ordercart/internal/pkg/errs"
)

// Item is one line of an order: a product reference with quantity and unit price.
type Item struct {
	sku       string
	name      string
	quantity  int
	unitPrice float64
}

// NewItem creates an Item value object.
// SKU and name must be non-empty, quantity must be positive and unit price
// non-negative.
func NewItem(sku, name string, quantity int, unitPrice float64) (Item, error) {
	if sku == "" {
		return Item{}, errs.NewValueIsRequiredError("item sku")
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item unit price",
			fmt.Errorf("%f is negative", unitPrice))
	}
	return Item{sku: sku, name: name, quantity: quantity, unitPrice: unitPrice}, nil
}

// SKU returns the product identifier.
func (i Item) SKU() string { return i.sku }

// Name returns the product name.
func (i Item) Name() string { return i.name }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the price per unit.
func (i Item) UnitPrice() float64 { return i.unitPrice }

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() float64 {
	return float64(i.quantity) * i.unitPrice
}
