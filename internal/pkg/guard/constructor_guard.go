// Package guard detects values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands and queries. Its zero value is
// "not constructed", so a struct literal fails Validate while a value produced
// by the New... constructor passes.
//
// Example:
//
//	type AdvanceItemStepCommand struct {
//	    orderID kernel.UUID
//	    itemID  kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c AdvanceItemStepCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceItemStepCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard was not created through NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
