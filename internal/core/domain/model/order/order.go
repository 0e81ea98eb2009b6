package order

import (
	"errors"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when an order is constructed without any items.
	ErrItemsAreRequired = errors.New("order must contain at least one item")
)

// Order represents a customer order in the fulfillment pipeline. It is the
// aggregate root that owns the order's authoritative status and enforces the
// lifecycle rules from admission through delivery or abandonment.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty fingerprint
//   - Must contain at least one item
//   - Status transitions follow the Status state machine; no external write
//     to status bypasses it
//   - Holds a live exception record if and only if status is exception
//   - updated_at is monotonic non-decreasing
//   - Can only be created through NewOrder / RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id          kernel.UUID
	fingerprint string

	// reorderOf records the prior terminal order when the reorder-after-closed
	// policy admitted this order despite a seen fingerprint.
	reorderOf *kernel.UUID

	customer Customer
	items    []Item
	payment  Payment

	status     Status
	validation ValidationResult

	// exception is non-nil exactly while status == Exception.
	exception *ExceptionRecord

	// lastException retains the most recently resolved record for audit.
	lastException *ExceptionRecord

	createdAt time.Time
	updatedAt time.Time
	updatedBy string

	// version backs optimistic concurrency; bumped by the repository on
	// every conditional write.
	version int64

	isConstructed bool
}

// NewOrder creates a new Order in the new status. This is the only way to
// create an order at intake; all admission invariants are checked here.
//
// Parameters:
//   - id: unique identifier assigned at admission
//   - fingerprint: derived duplicate-detection key, immutable once assigned
//   - customer, items, payment: validated order content
//   - validation: the intake rule-engine outcome
//   - now: admission timestamp
func NewOrder(
	id kernel.UUID,
	fingerprint string,
	customer Customer,
	items []Item,
	payment Payment,
	validation ValidationResult,
	now time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if fingerprint == "" {
		return nil, errs.NewValueIsRequiredError("fingerprint")
	}
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}

	return &Order{
		id:            id,
		fingerprint:   fingerprint,
		customer:      customer,
		items:         append([]Item(nil), items...),
		payment:       payment,
		status:        New,
		validation:    validation,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}, nil
}

// NewOrderFromCandidate assembles the order's value objects from a normalized
// candidate and creates the order. Used by the intake sequence after the
// candidate passed validation.
func NewOrderFromCandidate(
	id kernel.UUID,
	fingerprint string,
	candidate Candidate,
	validation ValidationResult,
	now time.Time,
) (*Order, error) {
	customer, err := NewCustomer(
		candidate.CustomerName,
		candidate.CustomerEmail,
		candidate.CustomerPhone,
		NewAddress(candidate.Street, candidate.City, candidate.State, candidate.Zip, candidate.Country),
	)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(candidate.Items))
	for _, ci := range candidate.Items {
		item, itemErr := NewItem(ci.SKU, ci.Name, ci.Quantity, ci.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	payment, err := NewPayment(candidate.PaymentMethod, candidate.Total)
	if err != nil {
		return nil, err
	}

	return NewOrder(id, fingerprint, customer, items, payment, validation, now)
}

// RestoreOrder reconstructs an order from persistence without re-running
// admission checks, while still verifying structural invariants (valid status,
// exception record consistency).
func RestoreOrder(
	id kernel.UUID,
	fingerprint string,
	reorderOf *kernel.UUID,
	customer Customer,
	items []Item,
	payment Payment,
	status Status,
	validation ValidationResult,
	exception *ExceptionRecord,
	lastException *ExceptionRecord,
	createdAt, updatedAt time.Time,
	updatedBy string,
	version int64,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if fingerprint == "" {
		return nil, errs.NewValueIsRequiredError("fingerprint")
	}
	if (status == Exception) != (exception != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("exception record",
			errors.New("exception record must be present exactly while status is exception"))
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("order version")
	}

	return &Order{
		id:            id,
		fingerprint:   fingerprint,
		reorderOf:     reorderOf,
		customer:      customer,
		items:         append([]Item(nil), items...),
		payment:       payment,
		status:        status,
		validation:    validation,
		exception:     exception,
		lastException: lastException,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		updatedBy:     updatedBy,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. Call when reconstructing orders from persistence
// to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Fingerprint returns the duplicate-detection key assigned at admission.
func (o *Order) Fingerprint() string {
	return o.fingerprint
}

// ReorderOf returns the prior terminal order this order repeats, or nil.
func (o *Order) ReorderOf() *kernel.UUID {
	return o.reorderOf
}

// Customer returns the ordering customer.
func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Payment returns the payment details.
func (o *Order) Payment() Payment {
	return o.payment
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Validation returns the intake rule-engine outcome.
func (o *Order) Validation() ValidationResult {
	return o.validation
}

// Exception returns the live exception record, or nil when the order is not
// in exception status.
func (o *Order) Exception() *ExceptionRecord {
	if o.exception == nil {
		return nil
	}
	record := *o.exception
	return &record
}

// LastException returns the most recently resolved exception record for
// audit, or nil if the order never left exception status.
func (o *Order) LastException() *ExceptionRecord {
	if o.lastException == nil {
		return nil
	}
	record := *o.lastException
	return &record
}

// CreatedAt returns the admission timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// UpdatedBy returns the actor of the last mutation.
func (o *Order) UpdatedBy() string {
	return o.updatedBy
}

// Version returns the optimistic-concurrency version the order was read at.
func (o *Order) Version() int64 {
	return o.version
}

// MarkReorder records the prior terminal order this order repeats. Set only by
// the intake sequence when the reorder-after-closed policy applies; the note
// is an explicit audit trail, never silent.
func (o *Order) MarkReorder(prior kernel.UUID) error {
	if err := prior.Validate(); err != nil {
		return err
	}
	o.reorderOf = &prior
	return nil
}

// IncrementVersion advances the optimistic concurrency counter. Called by the
// repository after the version-conditioned write succeeds, so the in-memory
// aggregate matches the stored row.
func (o *Order) IncrementVersion() {
	o.version++
}

// TransitionTo moves the order to target if the edge is legal, stamps
// updated_at, and returns the previous status for downstream notification.
//
// Leaving exception closes the live record into the audit slot. Transitioning
// to exception through this method attaches a minimal record in the other
// category; RaiseException is the intended entry point for real exceptions.
func (o *Order) TransitionTo(target Status, actor string, now time.Time) (Status, error) {
	newStatus, err := o.status.Transition(target)
	if err != nil {
		return 0, err
	}

	if o.status == Exception && newStatus != Exception {
		o.archiveException(actor, now)
	}

	if newStatus == Exception && o.exception == nil {
		record, recErr := NewExceptionRecord(CategoryOther, nil, now)
		if recErr != nil {
			return 0, recErr
		}
		o.exception = &record
	}

	previous := o.status
	o.status = newStatus
	o.touch(actor, now)
	return previous, nil
}

// RaiseException moves the order to exception status with a categorized
// record. Legal only from validated through packed.
func (o *Order) RaiseException(category Category, reasons []string, actor string, now time.Time) (Status, error) {
	record, err := NewExceptionRecord(category, reasons, now)
	if err != nil {
		return 0, err
	}

	newStatus, err := o.status.Transition(Exception)
	if err != nil {
		return 0, err
	}

	previous := o.status
	o.status = newStatus
	o.exception = &record
	o.touch(actor, now)
	return previous, nil
}

// AttachAnalysis stores classifier output on the live exception record without
// changing status. Idempotent: re-analysis overwrites the prior analysis.
func (o *Order) AttachAnalysis(rootCause, suggestedAction, priority, actor string, now time.Time) error {
	if o.status != Exception || o.exception == nil {
		return errs.NewNotInExceptionError(o.id.String(), o.status.String())
	}

	o.exception.RootCause = rootCause
	o.exception.SuggestedAction = suggestedAction
	o.exception.Priority = priority
	o.touch(actor, now)
	return nil
}

// ResolveException closes the live exception record and rejoins the main chain
// at processing. Returns the resolved record for audit and notification.
//
// Fails with NotInException when the order is not in exception status.
func (o *Order) ResolveException(notes, actor string, now time.Time) (ExceptionRecord, error) {
	if o.status != Exception || o.exception == nil {
		return ExceptionRecord{}, errs.NewNotInExceptionError(o.id.String(), o.status.String())
	}

	o.exception.Notes = notes
	if _, err := o.TransitionTo(Processing, actor, now); err != nil {
		return ExceptionRecord{}, err
	}
	return *o.lastException, nil
}

// Close abandons an open order. Legal from any non-terminal status.
func (o *Order) Close(actor string, now time.Time) (Status, error) {
	return o.TransitionTo(Closed, actor, now)
}

// archiveException stamps resolution metadata on the live record and moves it
// to the audit slot, restoring the exception-record invariant.
func (o *Order) archiveException(actor string, now time.Time) {
	record := *o.exception
	resolvedAt := now
	record.ResolvedAt = &resolvedAt
	record.ResolvedBy = actor
	o.lastException = &record
	o.exception = nil
}

// touch advances updated_at keeping it monotonic non-decreasing.
func (o *Order) touch(actor string, now time.Time) {
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
	o.updatedBy = actor
}
