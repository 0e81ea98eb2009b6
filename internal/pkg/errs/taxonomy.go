package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the order lifecycle taxonomy.
// Validation and duplicate failures are expected traffic and are reported with
// full detail; the rest signal caller bugs or races. ConcurrentModification is
// the only retryable member.
var (
	ErrValidationFailed       = errors.New("validation failed")
	ErrDuplicateOrder         = errors.New("duplicate order")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrEmptyBatch             = errors.New("empty batch")
	ErrNotInException         = errors.New("order is not in exception")
)

// ValidationFailedError carries the complete list of rule violations for a
// candidate order that was refused admission. Warnings are informational and
// never block admission on their own.
type ValidationFailedError struct {
	Errors   []string
	Warnings []string
}

// NewValidationFailedError creates a ValidationFailedError from collected rule results.
func NewValidationFailedError(validationErrors, warnings []string) ValidationFailedError {
	return ValidationFailedError{Errors: validationErrors, Warnings: warnings}
}

func (e ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(e.Errors, "; "))
}

func (e ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// DuplicateOrderError indicates that a candidate order's fingerprint is already
// reserved by a previously admitted order.
type DuplicateOrderError struct {
	Fingerprint  string
	PriorOrderID string
}

// NewDuplicateOrderError creates a DuplicateOrderError naming the prior order.
func NewDuplicateOrderError(fingerprint, priorOrderID string) DuplicateOrderError {
	return DuplicateOrderError{Fingerprint: fingerprint, PriorOrderID: priorOrderID}
}

func (e DuplicateOrderError) Error() string {
	return fmt.Sprintf("%s: prior order is: %s", ErrDuplicateOrder, e.PriorOrderID)
}

func (e DuplicateOrderError) Unwrap() error {
	return ErrDuplicateOrder
}

// InvalidTransitionError indicates an attempted status change outside the
// allowed-target set of the order's current status.
type InvalidTransitionError struct {
	Current string
	Target  string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the attempted edge.
func NewInvalidTransitionError(current, target string) InvalidTransitionError {
	return InvalidTransitionError{Current: current, Target: target}
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.Current, e.Target)
}

func (e InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConcurrentModificationError indicates that a conditional write lost a race:
// the record's version or status no longer matched the caller's precondition.
// Callers retry by re-reading and re-evaluating.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

// NewConcurrentModificationError creates a ConcurrentModificationError for the contested record.
func NewConcurrentModificationError(paramName string, id any) ConcurrentModificationError {
	return ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrConcurrentModification, e.ParamName, e.ID)
}

func (e ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// EmptyBatchError indicates that a batch proposal had no members left in the
// eligible status at creation time.
type EmptyBatchError struct {
	Strategy string
}

// NewEmptyBatchError creates an EmptyBatchError for the given strategy.
func NewEmptyBatchError(strategy string) EmptyBatchError {
	return EmptyBatchError{Strategy: strategy}
}

func (e EmptyBatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmptyBatch, e.Strategy)
}

func (e EmptyBatchError) Unwrap() error {
	return ErrEmptyBatch
}

// NotInExceptionError indicates a resolution attempt on an order whose current
// status is not Exception.
type NotInExceptionError struct {
	OrderID string
	Current string
}

// NewNotInExceptionError creates a NotInExceptionError for the order and its actual status.
func NewNotInExceptionError(orderID, current string) NotInExceptionError {
	return NotInExceptionError{OrderID: orderID, Current: current}
}

func (e NotInExceptionError) Error() string {
	return fmt.Sprintf("%s: %s, current status is: %s", ErrNotInException, e.OrderID, e.Current)
}

func (e NotInExceptionError) Unwrap() error {
	return ErrNotInException
}
