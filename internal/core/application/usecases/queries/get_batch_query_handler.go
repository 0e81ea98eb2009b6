package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBatchQueryHandler reads a single batch row from the database.
type GetBatchQueryHandler struct {
	db *gorm.DB
}

// NewGetBatchQueryHandler creates a handler for single-batch queries.
func NewGetBatchQueryHandler(db *gorm.DB) GetBatchQueryHandler {
	return GetBatchQueryHandler{db: db}
}

// Handle retrieves the batch named by the query. Returns an object-not-found
// error when no batch row exists for the identifier.
func (h GetBatchQueryHandler) Handle(
	ctx context.Context,
	query GetBatchQuery,
) (GetBatchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBatchQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			strategy,
			eligible_status,
			member_ids,
			savings_minutes,
			created_at,
			retired_at
		FROM batches
		WHERE id = ?
	`, query.BatchID().Bytes()).Row()

	var batchResp GetBatchQueryResponse
	var id uuid.UUID
	var rawMembers []byte
	var retiredAt sql.NullTime

	err := row.Scan(
		&id,
		&batchResp.Name,
		&batchResp.Description,
		&batchResp.Strategy,
		&batchResp.EligibleStatus,
		&rawMembers,
		&batchResp.SavingsMinutes,
		&batchResp.CreatedAt,
		&retiredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetBatchQueryResponse{}, errs.NewObjectNotFoundError("batchID", query.BatchID())
		}
		return GetBatchQueryResponse{}, err
	}

	batchID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetBatchQueryResponse{}, err
	}
	batchResp.ID = batchID

	var rawIDs []string
	if len(rawMembers) > 0 {
		if err = json.Unmarshal(rawMembers, &rawIDs); err != nil {
			return GetBatchQueryResponse{}, err
		}
	}
	batchResp.MemberIDs = make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		memberID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return GetBatchQueryResponse{}, idErr
		}
		batchResp.MemberIDs = append(batchResp.MemberIDs, memberID)
	}

	if retiredAt.Valid {
		at := retiredAt.Time
		batchResp.RetiredAt = &at
	}

	return batchResp, nil
}
