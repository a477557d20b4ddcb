package doclet

import "errors"

// Every fatal error returned by a parse run wraps one of these.
var (
	// ErrUnresolvableReference: a type override, response model or default
	// error type names a class that is not among the known classes.
	ErrUnresolvableReference = errors.New("unresolvable reference")

	// ErrConfigurationConflict: an unknown sort mode, an unregistered scope or
	// a malformed option value.
	ErrConfigurationConflict = errors.New("configuration conflict")

	// ErrConstraintViolation: a default value outside its bounds or enum.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrModelCollision: two different model bodies share one id.
	ErrModelCollision = errors.New("model collision")
)
