package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the caller
// does not provide its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value object as built by its constructor so that the zero
// value can be told apart from a valid instance.
//
// Embed it as a private field and set it in the constructor:
//
//	type Limits struct {
//	    maxCapacity int
//	    guard       guard.ConstructorGuard
//	}
//
//	func NewLimits(maxCapacity int) (Limits, error) {
//	    return Limits{maxCapacity: maxCapacity, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (l Limits) Validate() error {
//	    return l.guard.Validate(ErrLimitsIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
