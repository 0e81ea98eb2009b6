package order

import (
	"ordercart/internal/pkg/errs"
)

// Address holds the shipping destination for an order.
// Field-level correctness (zip format, completeness) is the Validator's
// concern at intake; the value object only requires construction through
// NewAddress so persistence round-trips stay explicit.
type Address struct {
	street  string
	city    string
	state   string
	zip     string
	country string
}

// NewAddress creates an Address value object. An empty country defaults to "USA",
// matching the intake normalization default.
func NewAddress(street, city, state, zip, country string) Address {
	if country == "" {
		country = "USA"
	}
	return Address{street: street, city: city, state: state, zip: zip, country: country}
}

// Street returns the street line of the address.
func (a Address) Street() string { return a.street }

// City returns the city of the address.
func (a Address) City() string { return a.city }

// State returns the state or region code of the address.
func (a Address) State() string { return a.state }

// Zip returns the postal code of the address.
func (a Address) Zip() string { return a.zip }

// Country returns the country of the address.
func (a Address) Country() string { return a.country }

// Customer identifies the person who placed an order, with the contact
// fields duplicate detection and notification depend on.
type Customer struct {
	name    string
	email   string
	phone   string
	address Address
}

// NewCustomer creates a Customer value object.
// Name and email are required; admission-level syntax checks are performed
// by the Validator before construction.
func NewCustomer(name, email, phone string, address Address) (Customer, error) {
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if email == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer email")
	}
	return Customer{name: name, email: email, phone: phone, address: address}, nil
}

// Name returns the customer's full name.
func (c Customer) Name() string { return c.name }

// Email returns the customer's email address.
func (c Customer) Email() string { return c.email }

// Phone returns the customer's phone number as provided.
func (c Customer) Phone() string { return c.phone }

// Address returns the customer's shipping address.
func (c Customer) Address() Address { return c.address }
