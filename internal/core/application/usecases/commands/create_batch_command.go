package commands

import (
	"errors"

	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/guard"
)

var (
	ErrCreateBatchCommandIsNotConstructed = errors.New(
		"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
	)
	ErrBatchNameIsRequired = errors.New("batch name is required")
	ErrMembersAreRequired  = errors.New("at least one member order is required")
)

// CreateBatchCommand represents a request to materialize a batch from a
// planner proposal.
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID     kernel.UUID
	name        string
	description string
	strategy    batch.Strategy
	memberIDs   []kernel.UUID
	actor       string

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand creates a command to create a batch.
// Validates that the batch ID is valid, a name and strategy are given, and
// at least one member order is named. Member eligibility is re-verified by
// the handler against current state.
func NewCreateBatchCommand(
	batchID kernel.UUID,
	name, description string,
	strategy batch.Strategy,
	memberIDs []kernel.UUID,
	actor string,
) (CreateBatchCommand, error) {
	batchCommand := CreateBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		batchCommand.setBatchID(batchID),
		batchCommand.setName(name),
		batchCommand.setStrategy(strategy),
		batchCommand.setMemberIDs(memberIDs),
		batchCommand.setActor(actor),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	batchCommand.description = description
	return batchCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateBatchCommandIsNotConstructed if validation fails.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

// BatchID returns the identifier assigned to the new batch.
func (c CreateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// Name returns the batch's display name.
func (c CreateBatchCommand) Name() string {
	return c.name
}

// Description returns the batch's description.
func (c CreateBatchCommand) Description() string {
	return c.description
}

// Strategy returns the grouping strategy the batch was proposed under.
func (c CreateBatchCommand) Strategy() batch.Strategy {
	return c.strategy
}

// MemberIDs returns the proposed member order identifiers.
func (c CreateBatchCommand) MemberIDs() []kernel.UUID {
	return c.memberIDs
}

// Actor returns the principal creating the batch.
func (c CreateBatchCommand) Actor() string {
	return c.actor
}

func (c *CreateBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *CreateBatchCommand) setName(name string) error {
	if name == "" {
		return ErrBatchNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateBatchCommand) setStrategy(strategy batch.Strategy) error {
	if err := strategy.Validate(); err != nil {
		return err
	}

	c.strategy = strategy
	return nil
}

func (c *CreateBatchCommand) setMemberIDs(memberIDs []kernel.UUID) error {
	if len(memberIDs) == 0 {
		return ErrMembersAreRequired
	}

	for _, id := range memberIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.memberIDs = append([]kernel.UUID(nil), memberIDs...)
	return nil
}

func (c *CreateBatchCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
