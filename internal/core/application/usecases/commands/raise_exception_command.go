package commands

import (
	"errors"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/pkg/guard"
)

var (
	ErrRaiseExceptionCommandIsNotConstructed = errors.New(
		"RaiseExceptionCommand must be created via NewRaiseExceptionCommand constructor",
	)
	ErrReasonsAreRequired = errors.New("at least one reason is required")
)

// RaiseExceptionCommand represents a request to move an order into the
// exception state with a categorized record of what went wrong.
type RaiseExceptionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	category order.Category
	reasons  []string
	actor    string

	guard guard.ConstructorGuard
}

// NewRaiseExceptionCommand creates a command to raise an exception on an order.
func NewRaiseExceptionCommand(
	orderID kernel.UUID,
	category order.Category,
	reasons []string,
	actor string,
) (RaiseExceptionCommand, error) {
	exceptionCommand := RaiseExceptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		exceptionCommand.setOrderID(orderID),
		exceptionCommand.setCategory(category),
		exceptionCommand.setReasons(reasons),
		exceptionCommand.setActor(actor),
	); err != nil {
		return RaiseExceptionCommand{}, err
	}

	return exceptionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRaiseExceptionCommandIsNotConstructed if validation fails.
func (c RaiseExceptionCommand) Validate() error {
	return c.guard.Validate(ErrRaiseExceptionCommandIsNotConstructed)
}

// OrderID returns the identifier of the affected order.
func (c RaiseExceptionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Category returns the exception category.
func (c RaiseExceptionCommand) Category() order.Category {
	return c.category
}

// Reasons returns the human-readable failure reasons.
func (c RaiseExceptionCommand) Reasons() []string {
	return c.reasons
}

// Actor returns the principal raising the exception.
func (c RaiseExceptionCommand) Actor() string {
	return c.actor
}

func (c *RaiseExceptionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RaiseExceptionCommand) setCategory(category order.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	c.category = category
	return nil
}

func (c *RaiseExceptionCommand) setReasons(reasons []string) error {
	if len(reasons) == 0 {
		return ErrReasonsAreRequired
	}

	c.reasons = append([]string(nil), reasons...)
	return nil
}

func (c *RaiseExceptionCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
