package queries

import (
	"context"
	"encoding/json"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// exceptionColumn mirrors the JSON shape of the orders.exception column.
type exceptionColumn struct {
	Category        string    `json:"category"`
	Reasons         []string  `json:"reasons"`
	RootCause       string    `json:"root_cause,omitempty"`
	SuggestedAction string    `json:"suggested_action,omitempty"`
	Priority        string    `json:"priority,omitempty"`
	RaisedAt        time.Time `json:"raised_at"`
}

// GetExceptionsQueryHandler reads the open exception queue from the database.
// Oldest exceptions come first so the longest-waiting orders get attention.
type GetExceptionsQueryHandler struct {
	db *gorm.DB
}

// NewGetExceptionsQueryHandler creates a handler for exception queue queries.
func NewGetExceptionsQueryHandler(db *gorm.DB) GetExceptionsQueryHandler {
	return GetExceptionsQueryHandler{db: db}
}

// Handle retrieves every order in exception status with its open record.
func (h GetExceptionsQueryHandler) Handle(
	ctx context.Context,
	query GetExceptionsQuery,
) ([]GetExceptionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			customer_email,
			exception
		FROM orders
		WHERE status = ?
		ORDER BY created_at, id
	`, order.Exception.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exceptions := make([]GetExceptionsQueryResponse, 0)
	for rows.Next() {
		var excResp GetExceptionsQueryResponse
		var id uuid.UUID
		var rawException []byte

		err = rows.Scan(
			&id,
			&excResp.CustomerName,
			&excResp.CustomerEmail,
			&rawException,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		excResp.OrderID = orderID

		if len(rawException) > 0 {
			var column exceptionColumn
			if unmarshalErr := json.Unmarshal(rawException, &column); unmarshalErr != nil {
				return nil, unmarshalErr
			}
			excResp.Category = column.Category
			excResp.Reasons = column.Reasons
			excResp.RootCause = column.RootCause
			excResp.SuggestedAction = column.SuggestedAction
			excResp.Priority = column.Priority
			excResp.RaisedAt = column.RaisedAt
		}

		exceptions = append(exceptions, excResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}
