package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBookNotFound            = errors.New("book not found")
	ErrSaleNotFound            = errors.New("sale not found")
	ErrOrderContextNotFound    = errors.New("order not found")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidStatusTransition = errors.New("invalid sale status transition")
	ErrInvalidQuantity         = errors.New("quantity must be a positive integer")
	ErrWarehouseNotConfigured  = errors.New("default warehouse is not configured")
)

// StockInsufficientError reports the exact shortfall so callers can tell the
// buyer how many units are actually left.
type StockInsufficientError struct {
	BookID    string
	Title     string
	Requested int
	InCart    int
	Available int
}

func (e *StockInsufficientError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d in cart, %d requested",
		e.Title, e.Available, e.InCart, e.Requested)
}

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
