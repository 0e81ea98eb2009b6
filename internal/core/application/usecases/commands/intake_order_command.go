package commands

import (
	"errors"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/guard"
)

var (
	ErrIntakeOrderCommandIsNotConstructed = errors.New(
		"IntakeOrderCommand must be created via NewIntakeOrderCommand constructor",
	)
	ErrPayloadIsRequired = errors.New("payload is required")
	ErrActorIsRequired   = errors.New("actor is required")
)

// IntakeOrderCommand represents a request to admit an incoming order into the
// pipeline. Carries the raw intake payload before normalization.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewIntakeOrderCommand(orderID, payload, "api")
//	if err != nil {
//	    return fmt.Errorf("invalid intake data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to admit order: %w", err)
//	}
//	fmt.Printf("Order %s admitted as %s", result.OrderID, result.Status)
type IntakeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	payload map[string]any
	actor   string

	guard guard.ConstructorGuard
}

// NewIntakeOrderCommand creates a command to admit a new order.
// Validates that order ID is valid, the payload is present, and the acting
// principal is named. Returns an error if any validation fails.
func NewIntakeOrderCommand(orderID kernel.UUID, payload map[string]any, actor string) (IntakeOrderCommand, error) {
	intakeCommand := IntakeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		intakeCommand.setOrderID(orderID),
		intakeCommand.setPayload(payload),
		intakeCommand.setActor(actor),
	); err != nil {
		return IntakeOrderCommand{}, err
	}

	return intakeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIntakeOrderCommandIsNotConstructed if validation fails.
func (c IntakeOrderCommand) Validate() error {
	return c.guard.Validate(ErrIntakeOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier assigned to the new order.
func (c IntakeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Payload returns the raw intake payload fields.
func (c IntakeOrderCommand) Payload() map[string]any {
	return c.payload
}

// Actor returns the principal performing the admission.
func (c IntakeOrderCommand) Actor() string {
	return c.actor
}

func (c *IntakeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *IntakeOrderCommand) setPayload(payload map[string]any) error {
	if len(payload) == 0 {
		return ErrPayloadIsRequired
	}

	c.payload = payload
	return nil
}

func (c *IntakeOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
