package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Financing errors
var (
	ErrInvalidFinancingStatus = errors.New("invalid financing status")
	ErrFinancingNotFound      = errors.New("financing proposal not found")
)

// Payment gateway errors
var (
	ErrInvalidBillingType = errors.New("invalid billing type")
	ErrPaymentIDRequired  = errors.New("payment id is required")
	// ErrPaymentNotFound covers both unknown and already-cancelled ids
	// reported by the gateway. It is a domain fault, distinct from a
	// transport failure.
	ErrPaymentNotFound = errors.New("payment not found or already cancelled")
	ErrGatewayRequest  = errors.New("payment gateway request failed")
)

// Messaging errors
var (
	ErrConnectionNotFound = errors.New("whatsapp connection not found")
	ErrDailyLimitReached  = errors.New("daily message limit reached")
	ErrSessionNotPaired   = errors.New("whatsapp session is not connected")
)
