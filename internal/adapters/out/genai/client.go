// Package genai talks to the generative classification service that
// normalizes raw intake payloads, triages exceptions and drafts customer
// messages. The service is treated as fallible and slow: every call has a
// timeout and every failure degrades to the rule-based engine, so the
// pipeline itself never blocks on it.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/ports"
)

// Client calls the classification service over HTTP. A Client with an empty
// base URL skips the network entirely and serves everything from the
// rule-based engine. Implements ports.Classifier.
type Client struct {
	baseURL  string
	http     *http.Client
	fallback *RuleBased
	logger   *slog.Logger
}

// NewClient creates a classifier backed by the service at baseURL. Pass an
// empty baseURL to run rule-based only.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  baseURL,
		http:     httpClient,
		fallback: NewRuleBased(),
		logger:   logger.With("component", "genai"),
	}
}

// normalizedPayload is the service's response shape for normalization.
type normalizedPayload struct {
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ZipCode       string  `json:"zip_code"`
	Country       string  `json:"country"`
	Items         []struct {
		SKU      string  `json:"sku"`
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	} `json:"items"`
	PaymentMethod string  `json:"payment_method"`
	TotalAmount   float64 `json:"total_amount"`
}

// Normalize asks the service to structure the raw payload, falling back to
// alias-based extraction on any failure.
func (c *Client) Normalize(ctx context.Context, raw map[string]any) (order.Candidate, error) {
	if c.baseURL == "" {
		return c.fallback.Normalize(ctx, raw)
	}

	var payload normalizedPayload
	if err := c.post(ctx, "/normalize", raw, &payload); err != nil {
		c.logger.Warn("normalization service failed, using rule-based fallback", "error", err)
		return c.fallback.Normalize(ctx, raw)
	}

	candidate := order.Candidate{
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: payload.CustomerPhone,
		Street:        payload.StreetAddress,
		City:          payload.City,
		State:         payload.State,
		Zip:           payload.ZipCode,
		Country:       payload.Country,
		PaymentMethod: payload.PaymentMethod,
		Total:         payload.TotalAmount,
	}
	if candidate.PaymentMethod == "" {
		candidate.PaymentMethod = "card"
	}
	for _, item := range payload.Items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		candidate.Items = append(candidate.Items, order.CandidateItem{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  quantity,
			UnitPrice: item.Price,
		})
	}
	return candidate, nil
}

// ClassifyException asks the service to triage the order's exception.
// Unrecognized categories map to CategoryOther; failures degrade to keyword
// triage.
func (c *Client) ClassifyException(ctx context.Context, aggregate *order.Order) (ports.ExceptionAnalysis, error) {
	if c.baseURL == "" {
		return c.fallback.ClassifyException(ctx, aggregate)
	}

	reasons := aggregate.Validation().Errors()
	if record := aggregate.Exception(); record != nil && len(record.Reasons) > 0 {
		reasons = record.Reasons
	}

	request := map[string]any{
		"order_id":      aggregate.ID().String(),
		"customer_name": aggregate.Customer().Name(),
		"errors":        reasons,
		"warnings":      aggregate.Validation().Warnings(),
	}

	var response struct {
		Category        string `json:"category"`
		Priority        string `json:"priority"`
		RootCause       string `json:"root_cause"`
		SuggestedAction string `json:"suggested_action"`
	}
	if err := c.post(ctx, "/classify-exception", request, &response); err != nil {
		c.logger.Warn("exception classification service failed, using rule-based fallback", "error", err)
		return c.fallback.ClassifyException(ctx, aggregate)
	}

	category, err := order.CategoryFromString(response.Category)
	if err != nil {
		category = order.CategoryOther
	}
	return ports.ExceptionAnalysis{
		Category:        category,
		RootCause:       response.RootCause,
		SuggestedAction: response.SuggestedAction,
		Priority:        response.Priority,
	}, nil
}

// DraftMessage asks the service for a customer message, falling back to
// templates.
func (c *Client) DraftMessage(ctx context.Context, aggregate *order.Order, reason string) (ports.Message, error) {
	if c.baseURL == "" {
		return c.fallback.DraftMessage(ctx, aggregate, reason)
	}

	request := map[string]any{
		"event":         reason,
		"order_id":      aggregate.ID().String(),
		"customer_name": aggregate.Customer().Name(),
		"total_amount":  aggregate.Payment().Total(),
	}

	var message ports.Message
	if err := c.post(ctx, "/draft-message", request, &message); err != nil {
		c.logger.Warn("message drafting service failed, using template fallback", "error", err)
		return c.fallback.DraftMessage(ctx, aggregate, reason)
	}
	if message.Subject == "" || message.Body == "" {
		return c.fallback.DraftMessage(ctx, aggregate, reason)
	}
	return message, nil
}

func (c *Client) post(ctx context.Context, path string, request any, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("classification service returned status %d", httpResp.StatusCode)
	}
	return json.NewDecoder(httpResp.Body).Decode(response)
}
