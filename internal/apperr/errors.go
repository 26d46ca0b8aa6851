package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for tenant scoping failures. Storage access with no tenant
// bound fails closed with ErrNoTenant; a service called with a tenant id that
// differs from the one resolved for the request fails with ErrTenantMismatch.
var (
	ErrNoTenant       = errors.New("no tenant bound to the current request")
	ErrTenantMismatch = errors.New("tenant id does not match the resolved tenant")
	ErrTenantInactive = errors.New("tenant is deactivated")
	ErrUnauthorized   = errors.New("invalid credentials")
	ErrUserDisabled   = errors.New("user account is disabled")
)

// NotFoundError reports an absent entity or one outside the current tenant scope.
type NotFoundError struct {
	Entity string
	Field  string
	Value  interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Entity, e.Field, e.Value)
}

// NewNotFound builds a NotFoundError for the given entity and lookup key.
func NewNotFound(entity, field string, value interface{}) error {
	return &NotFoundError{Entity: entity, Field: field, Value: value}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InsufficientStockError carries the exact shortfall so callers can surface
// (productId, requested, available) to the shopper.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// NewInsufficientStock builds an InsufficientStockError.
func NewInsufficientStock(productID uint, requested, available int) error {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

// ConflictError reports a uniqueness violation (subdomain, email, username,
// status name) or a state conflict such as deleting a non-canceled order.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict builds a ConflictError with a formatted message.
func NewConflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IntegrityError reports a deletion blocked by existing references.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return e.Message
}

// NewIntegrity builds an IntegrityError with a formatted message.
func NewIntegrity(format string, args ...interface{}) error {
	return &IntegrityError{Message: fmt.Sprintf(format, args...)}
}

// InvalidRequestError reports malformed input caught at the service boundary.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return e.Message
}

// NewInvalidRequest builds an InvalidRequestError with a formatted message.
func NewInvalidRequest(format string, args ...interface{}) error {
	return &InvalidRequestError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidRequest reports whether err is an InvalidRequestError.
func IsInvalidRequest(err error) bool {
	var ir *InvalidRequestError
	return errors.As(err, &ir)
}
