package commands

import (
	"errors"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/guard"
)

var ErrResolveExceptionCommandIsNotConstructed = errors.New(
	"ResolveExceptionCommand must be created via NewResolveExceptionCommand constructor",
)

// ResolveExceptionCommand represents a request to resolve an order's active
// exception and return the order to processing.
type ResolveExceptionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	notes   string
	actor   string

	guard guard.ConstructorGuard
}

// NewResolveExceptionCommand creates a command to resolve an exception.
// Notes are optional.
func NewResolveExceptionCommand(orderID kernel.UUID, notes, actor string) (ResolveExceptionCommand, error) {
	resolveCommand := ResolveExceptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		resolveCommand.setOrderID(orderID),
		resolveCommand.setActor(actor),
	); err != nil {
		return ResolveExceptionCommand{}, err
	}

	resolveCommand.notes = notes
	return resolveCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrResolveExceptionCommandIsNotConstructed if validation fails.
func (c ResolveExceptionCommand) Validate() error {
	return c.guard.Validate(ErrResolveExceptionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to resolve.
func (c ResolveExceptionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Notes returns the resolution notes.
func (c ResolveExceptionCommand) Notes() string {
	return c.notes
}

// Actor returns the principal resolving the exception.
func (c ResolveExceptionCommand) Actor() string {
	return c.actor
}

func (c *ResolveExceptionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveExceptionCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
