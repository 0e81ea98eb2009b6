// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Structured value objects (items, validation result, exception records) are
// stored as jsonb documents; the customer is flattened into prefixed columns
// so listings can read it without decoding documents.
type OrderDTO struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Fingerprint   string              `gorm:"type:varchar(64);index"`
	ReorderOf     *uuid.UUID          `gorm:"type:uuid"`
	Customer      CustomerDTO         `gorm:"embedded;embeddedPrefix:customer_"`
	Items         []ItemDTO           `gorm:"serializer:json;type:jsonb"`
	PaymentMethod string              `gorm:"type:varchar(32)"`
	PaymentTotal  float64
	Status        string              `gorm:"type:varchar(16);index"`
	Validation    ValidationDTO       `gorm:"serializer:json;type:jsonb"`
	Exception     *ExceptionRecordDTO `gorm:"serializer:json;type:jsonb"`
	LastException *ExceptionRecordDTO `gorm:"serializer:json;type:jsonb"`
	CreatedAt     time.Time           `gorm:"autoCreateTime:false;index"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime:false"`
	UpdatedBy     string
	Version       int64
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer columns within the order table.
type CustomerDTO struct {
	Name    string
	Email   string `gorm:"index"`
	Phone   string
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

// ItemDTO represents a single order line inside the items document.
type ItemDTO struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ValidationDTO represents the admission validation result document.
type ValidationDTO struct {
	Passed   bool     `json:"passed"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ExceptionRecordDTO represents an exception record document, live or archived.
type ExceptionRecordDTO struct {
	Category        string     `json:"category"`
	Reasons         []string   `json:"reasons,omitempty"`
	RootCause       string     `json:"root_cause,omitempty"`
	SuggestedAction string     `json:"suggested_action,omitempty"`
	Priority        string     `json:"priority,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	RaisedAt        time.Time  `json:"raised_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy      string     `json:"resolved_by,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var reorderOf *uuid.UUID
	if id := aggregate.ReorderOf(); id != nil {
		raw := id.Bytes()
		reorderOf = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			SKU:       item.SKU(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	customer := aggregate.Customer()
	address := customer.Address()
	validation := aggregate.Validation()

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		Fingerprint: aggregate.Fingerprint(),
		ReorderOf:   reorderOf,
		Customer: CustomerDTO{
			Name:    customer.Name(),
			Email:   customer.Email(),
			Phone:   customer.Phone(),
			Street:  address.Street(),
			City:    address.City(),
			State:   address.State(),
			Zip:     address.Zip(),
			Country: address.Country(),
		},
		Items:         items,
		PaymentMethod: aggregate.Payment().Method(),
		PaymentTotal:  aggregate.Payment().Total(),
		Status:        aggregate.Status().String(),
		Validation: ValidationDTO{
			Passed:   validation.Passed(),
			Errors:   validation.Errors(),
			Warnings: validation.Warnings(),
		},
		Exception:     recordToDTO(aggregate.Exception()),
		LastException: recordToDTO(aggregate.LastException()),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		UpdatedBy:     aggregate.UpdatedBy(),
		Version:       aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var reorderOf *kernel.UUID
	if dto.ReorderOf != nil {
		priorID, priorErr := kernel.UUIDFromBytes((*dto.ReorderOf)[:])
		if priorErr != nil {
			return nil, priorErr
		}
		reorderOf = &priorID
	}

	customer, err := order.NewCustomer(
		dto.Customer.Name,
		dto.Customer.Email,
		dto.Customer.Phone,
		order.NewAddress(
			dto.Customer.Street,
			dto.Customer.City,
			dto.Customer.State,
			dto.Customer.Zip,
			dto.Customer.Country,
		),
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.SKU, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	payment, err := order.NewPayment(dto.PaymentMethod, dto.PaymentTotal)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	exception, err := recordToDomain(dto.Exception)
	if err != nil {
		return nil, err
	}
	lastException, err := recordToDomain(dto.LastException)
	if err != nil {
		return nil, err
	}

	var validationErrors []string
	if !dto.Validation.Passed {
		validationErrors = dto.Validation.Errors
	}

	return order.RestoreOrder(
		id,
		dto.Fingerprint,
		reorderOf,
		customer,
		items,
		payment,
		status,
		order.NewValidationResult(validationErrors, dto.Validation.Warnings),
		exception,
		lastException,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.UpdatedBy,
		dto.Version,
	)
}

func recordToDTO(record *order.ExceptionRecord) *ExceptionRecordDTO {
	if record == nil {
		return nil
	}
	return &ExceptionRecordDTO{
		Category:        record.Category.String(),
		Reasons:         record.Reasons,
		RootCause:       record.RootCause,
		SuggestedAction: record.SuggestedAction,
		Priority:        record.Priority,
		Notes:           record.Notes,
		RaisedAt:        record.RaisedAt,
		ResolvedAt:      record.ResolvedAt,
		ResolvedBy:      record.ResolvedBy,
	}
}

func recordToDomain(dto *ExceptionRecordDTO) (*order.ExceptionRecord, error) {
	if dto == nil {
		return nil, nil
	}

	category, err := order.CategoryFromString(dto.Category)
	if err != nil {
		return nil, err
	}

	return &order.ExceptionRecord{
		Category:        category,
		Reasons:         dto.Reasons,
		RootCause:       dto.RootCause,
		SuggestedAction: dto.SuggestedAction,
		Priority:        dto.Priority,
		Notes:           dto.Notes,
		RaisedAt:        dto.RaisedAt,
		ResolvedAt:      dto.ResolvedAt,
		ResolvedBy:      dto.ResolvedBy,
	}, nil
}
