// Package storage provides the data persistence layer for the bloom application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/bloom/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidID        = errors.New("id must be positive")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrInvalidOrder     = errors.New("invalid order")
	ErrInvalidReview    = errors.New("invalid review")
	ErrInvalidMessage   = errors.New("invalid message")
	ErrInvalidKnowledge = errors.New("invalid knowledge entry")
	ErrInvalidKind      = errors.New("invalid interaction kind")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures an id is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidID, paramName, id)
	}
	return nil
}

func validateCategory(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateString(category.Name, "category name"); err != nil {
		return err
	}
	return validateString(category.Slug, "category slug")
}

func validateProduct(product *model.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product", ErrNilParameter)
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProduct)
	}
	if strings.TrimSpace(product.Slug) == "" {
		return fmt.Errorf("%w: missing slug", ErrInvalidProduct)
	}
	if product.CategoryID <= 0 {
		return fmt.Errorf("%w: missing category", ErrInvalidProduct)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}
	if product.StockQuantity < 0 {
		return fmt.Errorf("%w: negative stock", ErrInvalidProduct)
	}
	return nil
}

func validateOrder(order *model.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order", ErrNilParameter)
	}
	if order.UserID <= 0 {
		return fmt.Errorf("%w: missing user", ErrInvalidOrder)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	switch order.Status {
	case "", model.OrderPending, model.OrderConfirmed, model.OrderShipping,
		model.OrderDelivered, model.OrderCancelled:
	default:
		return fmt.Errorf("%w: status %q", ErrInvalidOrder, order.Status)
	}
	for i, item := range order.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			return fmt.Errorf("%w: item at index %d", ErrInvalidOrder, i)
		}
	}
	return nil
}

func validateReview(review *model.Review) error {
	if review == nil {
		return fmt.Errorf("%w: review", ErrNilParameter)
	}
	if review.ProductID <= 0 || review.UserID <= 0 {
		return fmt.Errorf("%w: missing product or user", ErrInvalidReview)
	}
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidReview)
	}
	return nil
}

func validateMessage(msg *model.Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message", ErrNilParameter)
	}
	if msg.ConversationID <= 0 {
		return fmt.Errorf("%w: missing conversation", ErrInvalidMessage)
	}
	if msg.Sender != model.SenderUser && msg.Sender != model.SenderBot {
		return fmt.Errorf("%w: sender %q", ErrInvalidMessage, msg.Sender)
	}
	if strings.TrimSpace(msg.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidMessage)
	}
	if msg.Confidence != nil && (*msg.Confidence < 0 || *msg.Confidence > 1) {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidMessage)
	}
	return nil
}

func validateKnowledge(entry *model.FlowerKnowledge) error {
	if entry == nil {
		return fmt.Errorf("%w: knowledge", ErrNilParameter)
	}
	if strings.TrimSpace(entry.FlowerName) == "" {
		return fmt.Errorf("%w: missing flower name", ErrInvalidKnowledge)
	}
	return nil
}

func validatePreference(pref *model.UserPreference) error {
	if pref == nil {
		return fmt.Errorf("%w: preference", ErrNilParameter)
	}
	if err := validateID(pref.UserID, "userID"); err != nil {
		return err
	}
	if err := validateString(pref.Type, "preference type"); err != nil {
		return err
	}
	return validateString(pref.Value, "preference value")
}
