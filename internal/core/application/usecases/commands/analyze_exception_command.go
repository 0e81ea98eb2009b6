package commands

import (
	"errors"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/guard"
)

var ErrAnalyzeExceptionCommandIsNotConstructed = errors.New(
	"AnalyzeExceptionCommand must be created via NewAnalyzeExceptionCommand constructor",
)

// AnalyzeExceptionCommand represents a request to diagnose an order's active
// exception and attach the analysis to its record.
type AnalyzeExceptionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewAnalyzeExceptionCommand creates a command to analyze an exception.
func NewAnalyzeExceptionCommand(orderID kernel.UUID, actor string) (AnalyzeExceptionCommand, error) {
	analyzeCommand := AnalyzeExceptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		analyzeCommand.setOrderID(orderID),
		analyzeCommand.setActor(actor),
	); err != nil {
		return AnalyzeExceptionCommand{}, err
	}

	return analyzeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAnalyzeExceptionCommandIsNotConstructed if validation fails.
func (c AnalyzeExceptionCommand) Validate() error {
	return c.guard.Validate(ErrAnalyzeExceptionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to analyze.
func (c AnalyzeExceptionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the principal requesting the analysis.
func (c AnalyzeExceptionCommand) Actor() string {
	return c.actor
}

func (c *AnalyzeExceptionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AnalyzeExceptionCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
