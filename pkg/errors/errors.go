package errors

import (
	"fmt"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when there's a conflict (e.g., idempotency)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrInvalidStatusTransition is returned when a shipment status change is not
// allowed by the workflow transition table
type ErrInvalidStatusTransition struct {
	From domain.ShipmentStatus
	To   domain.ShipmentStatus
}

func (e *ErrInvalidStatusTransition) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// ErrProtectedRole is returned when a delete is attempted on a protected role
// (Admin, Support, Manager). The veto fires before any persistence call.
type ErrProtectedRole struct {
	Name string
}

func (e *ErrProtectedRole) Error() string {
	return fmt.Sprintf("role %q is protected and cannot be deleted", e.Name)
}

// ErrSchemaViolation is returned when a permission lookup or document touches
// a section or action the permission schema does not declare. This is a
// programmer error, not a user input error.
type ErrSchemaViolation struct {
	Section string
	Action  string
	Message string
}

func (e *ErrSchemaViolation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Action != "" {
		return fmt.Sprintf("permission schema violation: section %q has no action %q", e.Section, e.Action)
	}
	return fmt.Sprintf("permission schema violation: unknown section %q", e.Section)
}

// ErrPersistence is returned when a read or write against the store fails.
// The underlying driver error is preserved for errors.Is/As.
type ErrPersistence struct {
	Op  string
	Err error
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *ErrPersistence) Unwrap() error {
	return e.Err
}
