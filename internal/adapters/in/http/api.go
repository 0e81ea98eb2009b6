package http

import (
	"errors"
	"net/http"
	"time"

	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the uniform error body for every failed request.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// IntakeResponse reports the outcome of one admission attempt.
type IntakeResponse struct {
	OrderID   string   `json:"order_id"`
	Status    string   `json:"status"`
	Warnings  []string `json:"warnings,omitempty"`
	ReorderOf string   `json:"reorder_of,omitempty"`
}

// BatchIntakeItemResponse is one entry in a batch intake result. Exactly one
// of Order and Error is set.
type BatchIntakeItemResponse struct {
	Index int             `json:"index"`
	Order *IntakeResponse `json:"order,omitempty"`
	Error *Error          `json:"error,omitempty"`
}

// OrderSummaryResponse is one row of the orders listing.
type OrderSummaryResponse struct {
	OrderID       string    `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	PaymentTotal  float64   `json:"payment_total"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int64     `json:"version"`
}

// TransitionRequest asks for a lifecycle transition.
type TransitionRequest struct {
	Target string `json:"target"`
	Actor  string `json:"actor"`
}

// TransitionResponse reports a completed transition.
type TransitionResponse struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Version int64  `json:"version"`
}

// BatchProposalResponse is one advisory grouping proposal.
type BatchProposalResponse struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Strategy       string   `json:"strategy"`
	MemberOrderIDs []string `json:"member_order_ids"`
	SavingsMinutes float64  `json:"savings_minutes"`
}

// CreateBatchRequest materializes a proposal as a batch.
type CreateBatchRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Strategy    string   `json:"strategy"`
	MemberIDs   []string `json:"member_ids"`
	Actor       string   `json:"actor"`
}

// CreateBatchResponse reports the created batch and any dropped members.
type CreateBatchResponse struct {
	BatchID        string   `json:"batch_id"`
	MemberIDs      []string `json:"member_ids"`
	Dropped        []string `json:"dropped,omitempty"`
	SavingsMinutes float64  `json:"savings_minutes"`
}

// BatchResponse is one batch with its membership roster.
type BatchResponse struct {
	BatchID        string     `json:"batch_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Strategy       string     `json:"strategy"`
	EligibleStatus string     `json:"eligible_status"`
	MemberIDs      []string   `json:"member_ids"`
	SavingsMinutes float64    `json:"savings_minutes"`
	CreatedAt      time.Time  `json:"created_at"`
	RetiredAt      *time.Time `json:"retired_at,omitempty"`
}

// BulkTransitionResponse reports per-member outcomes of a batch transition.
type BulkTransitionResponse struct {
	BatchID      string            `json:"batch_id"`
	Succeeded    int               `json:"succeeded"`
	Failed       int               `json:"failed"`
	Results      map[string]string `json:"results"`
	BatchRetired bool              `json:"batch_retired"`
}

// RaiseExceptionRequest parks an order in the exception state.
type RaiseExceptionRequest struct {
	Category string   `json:"category"`
	Reasons  []string `json:"reasons"`
	Actor    string   `json:"actor"`
}

// ExceptionResponse is one entry in the open exception queue.
type ExceptionResponse struct {
	OrderID         string    `json:"order_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	Category        string    `json:"category"`
	Reasons         []string  `json:"reasons"`
	RootCause       string    `json:"root_cause,omitempty"`
	SuggestedAction string    `json:"suggested_action,omitempty"`
	Priority        string    `json:"priority,omitempty"`
	RaisedAt        time.Time `json:"raised_at"`
}

// AnalysisResponse is the classifier's triage of an exception.
type AnalysisResponse struct {
	Category        string `json:"category"`
	RootCause       string `json:"root_cause"`
	SuggestedAction string `json:"suggested_action"`
	Priority        string `json:"priority"`
}

// ResolveExceptionRequest closes an exception.
type ResolveExceptionRequest struct {
	Notes string `json:"notes"`
	Actor string `json:"actor"`
}

// ResolvedExceptionResponse is the closed record returned for audit.
type ResolvedExceptionResponse struct {
	Category        string     `json:"category"`
	Reasons         []string   `json:"reasons"`
	RootCause       string     `json:"root_cause,omitempty"`
	SuggestedAction string     `json:"suggested_action,omitempty"`
	Priority        string     `json:"priority,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	RaisedAt        time.Time  `json:"raised_at"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	ResolvedBy      string     `json:"resolved_by"`
}

// domainErrorBody maps the domain error taxonomy onto an HTTP error body.
// Validation refusals are 422, business conflicts 409, unknown objects 404,
// malformed input 400, everything else 500.
func domainErrorBody(err error) Error {
	var validationErr errs.ValidationFailedError
	if errors.As(err, &validationErr) {
		return Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Order failed validation",
			Errors:  validationErr.Errors,
		}
	}

	switch {
	case errors.Is(err, errs.ErrDuplicateOrder),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, errs.ErrNotInException),
		errors.Is(err, errs.ErrEmptyBatch),
		errors.Is(err, batch.ErrBatchAlreadyRetired):
		return Error{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return Error{Code: http.StatusBadRequest, Message: err.Error()}
	default:
		return Error{Code: http.StatusInternalServerError, Message: "Internal server error"}
	}
}

func writeDomainError(ctx echo.Context, err error) error {
	body := domainErrorBody(err)
	return ctx.JSON(body.Code, body)
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
