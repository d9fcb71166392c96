package validator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidationFailed is matched by ValidationErrors returned in throw-on-failure mode.
	ErrValidationFailed = errors.New("validation failed")

	// ErrAsyncInvokedSynchronously is matched by AsyncValidatorInvokedSynchronouslyError.
	ErrAsyncInvokedSynchronously = errors.New("asynchronous validator invoked synchronously")

	// ErrValidationCancelled is joined with ctx.Err() when an asynchronous run is cancelled.
	ErrValidationCancelled = errors.New("validation cancelled")

	// ErrNilInstance is returned when the root instance is nil.
	ErrNilInstance = errors.New("cannot validate a nil instance")

	// ErrNilContext is returned when ValidateContext receives a nil context.
	ErrNilContext = errors.New("validation context is nil")

	// ErrDefaultsFrozen is returned by ConfigureDefaults once a validator has been built.
	ErrDefaultsFrozen = errors.New("validator defaults are frozen after first use")

	// ErrValidatorNotFound is returned by Registry lookups for unregistered types.
	ErrValidatorNotFound = errors.New("no validator registered for type")

	// ErrUnsupportedType is returned by ValidateAny for instances of the wrong type.
	ErrUnsupportedType = errors.New("validator cannot validate instances of this type")

	// ErrInvalidConfiguration wraps declaration mistakes reported by panics.
	ErrInvalidConfiguration = errors.New("invalid validator configuration")

	// ErrLoadingOptions is joined with the loader error when OptionsFromEnv fails.
	ErrLoadingOptions = errors.New("failed to load validator options")

	errNeedsAsync = errors.New("asynchronous evaluation required")
)

// AsyncValidatorInvokedSynchronouslyError is returned by synchronous entry points when a
// selected rule needs asynchronous evaluation. No rule is executed in that case.
type AsyncValidatorInvokedSynchronouslyError struct {
	Validator string
	Component string
}

func (e *AsyncValidatorInvokedSynchronouslyError) Error() string {
	return fmt.Sprintf(
		"validator %q contains asynchronous rules (%s) but was invoked synchronously; use ValidateAsync",
		e.Validator, e.Component,
	)
}

func (e *AsyncValidatorInvokedSynchronouslyError) Is(target error) bool {
	return target == ErrAsyncInvokedSynchronously
}

// ValidationErrors is the error form of a failed Result.
type ValidationErrors []ValidationFailure

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, f := range ve {
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve ValidationErrors) Has(field string) bool {
	return Result{Errors: ve}.Has(field)
}

func (ve ValidationErrors) Get(field string) []string {
	return Result{Errors: ve}.Get(field)
}

func (ve ValidationErrors) Fields() []string {
	return Result{Errors: ve}.Fields()
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
