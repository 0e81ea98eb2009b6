// Package batchrepo provides data transfer objects and mapping functions for
// batch persistence.
package batchrepo

import (
	"time"

	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// BatchDTO represents the database structure for persisting batch aggregates.
// Member order IDs are an immutable snapshot stored as a jsonb array.
type BatchDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string
	Description    string
	Strategy       string     `gorm:"type:varchar(16)"`
	EligibleStatus string     `gorm:"type:varchar(16)"`
	MemberIDs      []string   `gorm:"serializer:json;type:jsonb"`
	SavingsMinutes float64
	CreatedAt      time.Time  `gorm:"autoCreateTime:false"`
	RetiredAt      *time.Time `gorm:"index"`
}

// TableName specifies the database table name for batch entities.
func (BatchDTO) TableName() string {
	return "batches"
}

// fromDomain converts a batch domain aggregate to its database representation.
func fromDomain(aggregate *batch.Batch) BatchDTO {
	memberIDs := make([]string, 0, len(aggregate.MemberIDs()))
	for _, id := range aggregate.MemberIDs() {
		memberIDs = append(memberIDs, id.String())
	}

	return BatchDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Description:    aggregate.Description(),
		Strategy:       aggregate.Strategy().String(),
		EligibleStatus: aggregate.EligibleStatus().String(),
		MemberIDs:      memberIDs,
		SavingsMinutes: aggregate.SavingsMinutes(),
		CreatedAt:      aggregate.CreatedAt(),
		RetiredAt:      aggregate.RetiredAt(),
	}
}

// toDomain converts a database DTO to a batch domain aggregate using RestoreBatch.
func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	strategy, err := batch.StrategyFromString(dto.Strategy)
	if err != nil {
		return nil, err
	}

	eligibleStatus, err := order.StatusFromString(dto.EligibleStatus)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]kernel.UUID, 0, len(dto.MemberIDs))
	for _, raw := range dto.MemberIDs {
		memberID, memberErr := kernel.UUIDFromString(raw)
		if memberErr != nil {
			return nil, memberErr
		}
		memberIDs = append(memberIDs, memberID)
	}

	return batch.RestoreBatch(
		id,
		dto.Name,
		dto.Description,
		strategy,
		eligibleStatus,
		memberIDs,
		dto.SavingsMinutes,
		dto.CreatedAt,
		dto.RetiredAt,
	)
}
