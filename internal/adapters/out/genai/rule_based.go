package genai

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/ports"
)

// RuleBased is the deterministic classifier used when no generative service is
// configured or when it fails. It covers the same three operations with alias
// lookups, keyword triage and message templates. Implements ports.Classifier.
type RuleBased struct{}

// NewRuleBased creates the rule-based classifier.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Normalize maps well-known alias keys onto the candidate shape. Missing
// fields stay zero-valued; admission validation decides what is acceptable.
func (r *RuleBased) Normalize(_ context.Context, raw map[string]any) (order.Candidate, error) {
	candidate := order.Candidate{
		CustomerName:  stringField(raw, "customer_name", "name", "customerName"),
		CustomerEmail: stringField(raw, "email", "customer_email", "customerEmail"),
		CustomerPhone: stringField(raw, "phone", "customer_phone", "tel"),
		Street:        stringField(raw, "address", "street", "street_address"),
		City:          stringField(raw, "city"),
		State:         stringField(raw, "state"),
		Zip:           stringField(raw, "zip", "zip_code", "postal_code"),
		Country:       stringField(raw, "country"),
		PaymentMethod: stringField(raw, "payment_method", "paymentMethod"),
		Total:         floatField(raw, "amount", "total", "total_amount"),
	}
	if candidate.PaymentMethod == "" {
		candidate.PaymentMethod = "card"
	}

	rawItems, ok := raw["items"].([]any)
	if !ok {
		rawItems, _ = raw["products"].([]any)
	}
	for _, entry := range rawItems {
		rawItem, itemOK := entry.(map[string]any)
		if !itemOK {
			continue
		}
		quantity := int(floatField(rawItem, "quantity", "qty"))
		if quantity == 0 {
			quantity = 1
		}
		candidate.Items = append(candidate.Items, order.CandidateItem{
			SKU:       stringField(rawItem, "sku", "id", "product_id"),
			Name:      stringField(rawItem, "name", "product_name", "description"),
			Quantity:  quantity,
			UnitPrice: floatField(rawItem, "price", "unit_price"),
		})
	}

	return candidate, nil
}

// ClassifyException triages the order's exception by keyword. The live
// exception record's reasons drive the match; validation errors are the
// fallback source when the record carries none.
func (r *RuleBased) ClassifyException(_ context.Context, aggregate *order.Order) (ports.ExceptionAnalysis, error) {
	reasons := aggregate.Validation().Errors()
	if record := aggregate.Exception(); record != nil && len(record.Reasons) > 0 {
		reasons = record.Reasons
	}
	reasonText := strings.ToLower(strings.Join(reasons, " "))

	switch {
	case strings.Contains(reasonText, "email") || strings.Contains(reasonText, "phone"):
		return ports.ExceptionAnalysis{
			Category:        order.CategoryData,
			RootCause:       "Customer contact information is invalid or missing",
			SuggestedAction: "Verify email address format",
			Priority:        "medium",
		}, nil
	case strings.Contains(reasonText, "address") || strings.Contains(reasonText, "zip"):
		return ports.ExceptionAnalysis{
			Category:        order.CategoryAddress,
			RootCause:       "Shipping address is incomplete or invalid",
			SuggestedAction: "Contact customer for clarification",
			Priority:        "high",
		}, nil
	case strings.Contains(reasonText, "payment") || strings.Contains(reasonText, "card"):
		return ports.ExceptionAnalysis{
			Category:        order.CategoryPayment,
			RootCause:       "Payment processing failed",
			SuggestedAction: "Contact customer for alternate payment method",
			Priority:        "high",
		}, nil
	case strings.Contains(reasonText, "stock") || strings.Contains(reasonText, "inventory"):
		return ports.ExceptionAnalysis{
			Category:        order.CategoryInventory,
			RootCause:       "Requested items are not available to fulfill",
			SuggestedAction: "Check restock dates and offer substitutes",
			Priority:        "high",
		}, nil
	case strings.Contains(reasonText, "duplicate"):
		return ports.ExceptionAnalysis{
			Category:        order.CategoryOther,
			RootCause:       "Potential duplicate order detected",
			SuggestedAction: "Review order history",
			Priority:        "medium",
		}, nil
	default:
		return ports.ExceptionAnalysis{
			Category:        order.CategoryOther,
			RootCause:       "Order validation failed",
			SuggestedAction: "Review all order details",
			Priority:        "low",
		}, nil
	}
}

// DraftMessage fills the template matching the reason. Unknown reasons get a
// generic update so the caller always has something sendable.
func (r *RuleBased) DraftMessage(_ context.Context, aggregate *order.Order, reason string) (ports.Message, error) {
	orderID := aggregate.ID().String()
	customerName := aggregate.Customer().Name()

	switch reason {
	case "order confirmation":
		return ports.Message{
			Subject: fmt.Sprintf("Order Confirmation - %s", orderID),
			Body: fmt.Sprintf(
				"Dear %s,\n\n"+
					"Thank you for your order! We're pleased to confirm that we've received your order.\n\n"+
					"Order Details:\n"+
					"Order Number: %s\n"+
					"Order Date: %s\n"+
					"Total Amount: $%.2f\n\n"+
					"Items:\n%s\n"+
					"Shipping Address:\n%s\n\n"+
					"We'll notify you once your order ships.\n\n"+
					"Best regards,\nOrderCart Team\n",
				customerName,
				orderID,
				aggregate.CreatedAt().Format("2006-01-02"),
				aggregate.Payment().Total(),
				itemLines(aggregate.Items()),
				shippingAddress(aggregate.Customer().Address()),
			),
		}, nil
	case "shipment notice":
		return ports.Message{
			Subject: fmt.Sprintf("Your Order Has Shipped - %s", orderID),
			Body: fmt.Sprintf(
				"Dear %s,\n\n"+
					"Great news! Your order has been shipped and is on its way to you.\n\n"+
					"Order Number: %s\n"+
					"Shipping Date: %s\n"+
					"Tracking Number: TRK%s\n\n"+
					"Estimated Delivery: Within 3-5 business days\n\n"+
					"You can track your package using the tracking number above.\n\n"+
					"Best regards,\nOrderCart Team\n",
				customerName,
				orderID,
				time.Now().Format("2006-01-02"),
				orderID,
			),
		}, nil
	case "delivery notice":
		return ports.Message{
			Subject: fmt.Sprintf("Order Delivered - %s", orderID),
			Body: fmt.Sprintf(
				"Dear %s,\n\n"+
					"Your order has been successfully delivered!\n\n"+
					"Order Number: %s\n"+
					"Delivery Date: %s\n\n"+
					"We hope you're satisfied with your purchase. If you have any questions or concerns, "+
					"please don't hesitate to contact us.\n\n"+
					"Thank you for choosing OrderCart!\n\n"+
					"Best regards,\nOrderCart Team\n",
				customerName,
				orderID,
				time.Now().Format("2006-01-02"),
			),
		}, nil
	default:
		return ports.Message{
			Subject: fmt.Sprintf("Order Update - %s", orderID),
			Body:    fmt.Sprintf("Your order %s has been updated.\n", orderID),
		}, nil
	}
}

func itemLines(items []order.Item) string {
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s x%d - $%.2f\n", item.Name(), item.Quantity(), item.UnitPrice())
	}
	return sb.String()
}

func shippingAddress(address order.Address) string {
	return fmt.Sprintf("%s\n%s, %s %s",
		address.Street(), address.City(), address.State(), address.Zip())
}

func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func floatField(raw map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch value := raw[key].(type) {
		case float64:
			if value != 0 {
				return value
			}
		case int:
			if value != 0 {
				return float64(value)
			}
		case string:
			if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed != 0 {
				return parsed
			}
		}
	}
	return 0
}
