package service

import (
	"fmt"

	"yame/internal/domain"
)

// ErrCartNotFound reports a checkout against a missing or empty cart. The
// storefront shows this message verbatim.
func ErrCartNotFound(op string) error {
	return domain.Invalid(op, "Cart is empty or not found")
}

// ErrInsufficientStock names the product so the shopper knows which line to
// fix before retrying checkout.
func ErrInsufficientStock(op, productTitle string) error {
	return domain.Conflict(op, fmt.Sprintf("Insufficient stock for product %s", productTitle))
}

func ErrOrderNotFound(op string, orderID int64) error {
	return domain.NotFound(op, "order", fmt.Sprintf("%d", orderID))
}

func ErrVariantNotFound(op string, variantID int64) error {
	return domain.NotFound(op, "product variant", fmt.Sprintf("%d", variantID))
}

func ErrInvalidQuantity(op string, qty int32) error {
	return domain.Invalid(op, fmt.Sprintf("Quantity must be at least 1, got %d", qty))
}

func ErrEmailTaken(op string) error {
	return domain.Conflict(op, "An account with this email already exists")
}

func ErrInvalidCredentials(op string) error {
	return domain.Unauthorized(op, "Invalid email or password")
}

func ErrInvalidStatus(op string, status domain.OrderStatus) error {
	return domain.Invalid(op, fmt.Sprintf("Unknown order status: %s", status))
}
