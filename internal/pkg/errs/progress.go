package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState        = errors.New("invalid state")
	ErrReferentialConflict = errors.New("referential conflict")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrCascade             = errors.New("cascade failed")
)

// InvalidStateError reports a violated operation precondition, e.g. advancing
// an item whose product defines no steps.
type InvalidStateError struct {
	Operation string
	EntityID  any
	Reason    string
}

func NewInvalidStateError(operation string, entityID any, reason string) *InvalidStateError {
	return &InvalidStateError{
		Operation: operation,
		EntityID:  entityID,
		Reason:    reason,
	}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s on %s: %s", ErrInvalidState, e.Operation, sanitize(e.EntityID), e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ReferentialConflictError reports that the store refused a write because
// other records still reference the target (foreign key or policy).
type ReferentialConflictError struct {
	Entity string
	ID     any
	Cause  error
}

func NewReferentialConflictError(entity string, id any) *ReferentialConflictError {
	return &ReferentialConflictError{
		Entity: entity,
		ID:     id,
	}
}

func NewReferentialConflictErrorWithCause(entity string, id any, cause error) *ReferentialConflictError {
	return &ReferentialConflictError{
		Entity: entity,
		ID:     id,
		Cause:  cause,
	}
}

func (e *ReferentialConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s is referenced elsewhere", ErrReferentialConflict, e.Entity, sanitize(e.ID))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ReferentialConflictError) Unwrap() error {
	return ErrReferentialConflict
}

// StoreUnavailableError carries a transport or infrastructure failure of the
// record store verbatim.
type StoreUnavailableError struct {
	Operation string
	Cause     error
}

func NewStoreUnavailableError(operation string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrStoreUnavailable, e.Operation, e.Cause)
}

func (e *StoreUnavailableError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Cause}
}

// CascadeError is returned when the first write of an operation committed but
// the follow-up order status write of the aggregation rule did not. Applied
// describes what is already persisted so that callers can retry only the
// cascade.
type CascadeError struct {
	Operation string
	OrderID   any
	Applied   string
	Cause     error
}

func NewCascadeError(operation string, orderID any, applied string, cause error) *CascadeError {
	return &CascadeError{
		Operation: operation,
		OrderID:   orderID,
		Applied:   applied,
		Cause:     cause,
	}
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("%s: %s on order %s: %s was applied, order status was not (cause: %v)",
		ErrCascade, e.Operation, sanitize(e.OrderID), e.Applied, e.Cause)
}

func (e *CascadeError) Unwrap() []error {
	return []error{ErrCascade, e.Cause}
}
