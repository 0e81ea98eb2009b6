package queries

import (
	"context"
	"time"

	"ordercart/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads order summaries straight from the database,
// bypassing aggregate reconstruction for listing performance.
//
// Example:
//
//	handler := NewGetOrdersQueryHandler(db)
//	query, _ := NewGetOrdersQuery("", 100)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle retrieves order summaries oldest first. When the query carries a
// status filter only orders in that status are returned.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			customer_name,
			customer_email,
			status,
			payment_total,
			created_at,
			updated_at,
			version
		FROM orders
	`
	args := make([]any, 0, 2)
	if filter := query.StatusFilter(); filter != nil {
		sql += ` WHERE status = ?`
		args = append(args, filter.String())
	}
	sql += ` ORDER BY created_at, id LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var orderResp GetOrdersQueryResponse
		var id uuid.UUID
		var createdAt, updatedAt time.Time

		err = rows.Scan(
			&id,
			&orderResp.CustomerName,
			&orderResp.CustomerEmail,
			&orderResp.Status,
			&orderResp.PaymentTotal,
			&createdAt,
			&updatedAt,
			&orderResp.Version,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.CreatedAt = createdAt
		orderResp.UpdatedAt = updatedAt
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
