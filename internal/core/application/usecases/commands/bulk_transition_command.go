package commands

import (
	"errors"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/pkg/guard"
)

var ErrBulkTransitionCommandIsNotConstructed = errors.New(
	"BulkTransitionCommand must be created via NewBulkTransitionCommand constructor",
)

// BulkTransitionCommand represents a request to transition every member of a
// batch to a new lifecycle status.
type BulkTransitionCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID
	target  order.Status
	actor   string

	guard guard.ConstructorGuard
}

// NewBulkTransitionCommand creates a command to transition a batch's members.
func NewBulkTransitionCommand(batchID kernel.UUID, target order.Status, actor string) (BulkTransitionCommand, error) {
	bulkCommand := BulkTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bulkCommand.setBatchID(batchID),
		bulkCommand.setTarget(target),
		bulkCommand.setActor(actor),
	); err != nil {
		return BulkTransitionCommand{}, err
	}

	return bulkCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBulkTransitionCommandIsNotConstructed if validation fails.
func (c BulkTransitionCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionCommandIsNotConstructed)
}

// BatchID returns the identifier of the batch to transition.
func (c BulkTransitionCommand) BatchID() kernel.UUID {
	return c.batchID
}

// Target returns the requested lifecycle status.
func (c BulkTransitionCommand) Target() order.Status {
	return c.target
}

// Actor returns the principal performing the bulk transition.
func (c BulkTransitionCommand) Actor() string {
	return c.actor
}

func (c *BulkTransitionCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *BulkTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *BulkTransitionCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
