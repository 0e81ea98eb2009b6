package batch

import (
	"errors"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/pkg/errs"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch instance was not created
	// through the NewBatch factory method.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

	// ErrBatchAlreadyRetired is returned when retiring a batch twice.
	ErrBatchAlreadyRetired = errors.New("batch is already retired")
)

// Batch is an immutable grouping snapshot of orders created for bulk action
// efficiency. Membership is fixed at creation time: a batch is never a live
// query over the order pool. A batch is retired once all its members have
// left the eligible status that produced it.
type Batch struct {
	id             kernel.UUID
	name           string
	description    string
	strategy       Strategy
	eligibleStatus order.Status
	memberIDs      []kernel.UUID
	savingsMinutes float64
	createdAt      time.Time
	retiredAt      *time.Time

	isConstructed bool
}

// NewBatch creates a batch snapshot from a validated proposal.
// Members must be non-empty; the caller has already re-validated each member
// against the eligible status at creation time.
func NewBatch(
	id kernel.UUID,
	name, description string,
	strategy Strategy,
	eligibleStatus order.Status,
	memberIDs []kernel.UUID,
	savingsMinutes float64,
	now time.Time,
) (*Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("batch name")
	}
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	if err := eligibleStatus.Validate(); err != nil {
		return nil, err
	}
	if len(memberIDs) == 0 {
		return nil, errs.NewEmptyBatchError(strategy.String())
	}

	return &Batch{
		id:             id,
		name:           name,
		description:    description,
		strategy:       strategy,
		eligibleStatus: eligibleStatus,
		memberIDs:      append([]kernel.UUID(nil), memberIDs...),
		savingsMinutes: savingsMinutes,
		createdAt:      now,
		isConstructed:  true,
	}, nil
}

// RestoreBatch reconstructs a batch from persistence.
func RestoreBatch(
	id kernel.UUID,
	name, description string,
	strategy Strategy,
	eligibleStatus order.Status,
	memberIDs []kernel.UUID,
	savingsMinutes float64,
	createdAt time.Time,
	retiredAt *time.Time,
) (*Batch, error) {
	b, err := NewBatch(id, name, description, strategy, eligibleStatus, memberIDs, savingsMinutes, createdAt)
	if err != nil {
		return nil, err
	}
	b.retiredAt = retiredAt
	return b, nil
}

// Validate ensures the Batch instance was properly constructed.
func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// Name returns the batch's display name.
func (b *Batch) Name() string {
	return b.name
}

// Description returns the batch's display description.
func (b *Batch) Description() string {
	return b.description
}

// Strategy returns the grouping strategy that produced the batch.
func (b *Batch) Strategy() Strategy {
	return b.strategy
}

// EligibleStatus returns the status members were in at creation time.
func (b *Batch) EligibleStatus() order.Status {
	return b.eligibleStatus
}

// MemberIDs returns a copy of the member order ids.
func (b *Batch) MemberIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), b.memberIDs...)
}

// SavingsMinutes returns the estimated time saving for the batch.
func (b *Batch) SavingsMinutes() float64 {
	return b.savingsMinutes
}

// CreatedAt returns the batch creation timestamp.
func (b *Batch) CreatedAt() time.Time {
	return b.createdAt
}

// RetiredAt returns when the batch was retired, or nil while active.
func (b *Batch) RetiredAt() *time.Time {
	if b.retiredAt == nil {
		return nil
	}
	t := *b.retiredAt
	return &t
}

// IsRetired reports whether the batch has been retired.
func (b *Batch) IsRetired() bool {
	return b.retiredAt != nil
}

// Retire marks the batch as no longer active. Called when all members have
// left the eligible status that produced it.
func (b *Batch) Retire(now time.Time) error {
	if b.retiredAt != nil {
		return ErrBatchAlreadyRetired
	}
	b.retiredAt = &now
	return nil
}
