package validator

import "context"

// CustomContext lets a custom rule report any number of failures.
type CustomContext[T any] struct {
	*PropertyValidatorContext

	vc        *Context[T]
	severity  Severity
	errorCode string
	state     any
	failures  []ValidationFailure
}

// Instance returns the instance owning the property.
func (c *CustomContext[T]) Instance() T { return c.vc.instance }

// Context returns the validation context of the owning instance.
func (c *CustomContext[T]) Context() *Context[T] { return c.vc }

// AddFailure records a failure. An empty propertyName targets the current property;
// otherwise the name is resolved relative to the owning instance. The message may use
// placeholders. The failure carries the error code, severity and state set on the rule
// with WithErrorCode, WithSeverity and WithState.
func (c *CustomContext[T]) AddFailure(propertyName, message string) {
	name := c.PropertyName
	if propertyName != "" {
		name = c.vc.chain.BuildPropertyName(propertyName)
	}
	c.failures = append(c.failures, ValidationFailure{
		PropertyName:                      name,
		ErrorMessage:                      c.MessageFormatter.BuildMessage(message),
		AttemptedValue:                    c.PropertyValue,
		CustomState:                       c.state,
		Severity:                          c.severity,
		ErrorCode:                         c.errorCode,
		FormattedMessagePlaceholderValues: c.MessageFormatter.PlaceholderValues(),
	})
}

// AddMessage records a failure for the current property.
func (c *CustomContext[T]) AddMessage(message string) {
	c.AddFailure("", message)
}

// AddValidationFailure records f as-is, defaulting its property name to the current property.
func (c *CustomContext[T]) AddValidationFailure(f ValidationFailure) {
	if f.PropertyName == "" {
		f.PropertyName = c.PropertyName
	}
	c.failures = append(c.failures, f)
}

type customSource[T, P any] struct {
	owner *Validator[T]
	comp  *component[T, P]
	sync  func(P, *CustomContext[T])
	async func(context.Context, P, *CustomContext[T]) error
}

func (s *customSource[T, P]) Name() string {
	if s.sync == nil {
		return "AsyncCustomValidator"
	}
	return "CustomValidator"
}

func (s *customSource[T, P]) asyncOnly() bool { return s.sync == nil }

func (s *customSource[T, P]) nests() bool { return false }

func (s *customSource[T, P]) requiresAsync(*Context[T], PropertyChain, P, bool, map[any]struct{}) (string, bool) {
	return "", false
}

func (s *customSource[T, P]) collect(ctx context.Context, vc *Context[T], pc *PropertyValidatorContext, value P) ([]ValidationFailure, error) {
	cc := &CustomContext[T]{
		PropertyValidatorContext: pc,
		vc:                       vc,
		severity:                 s.owner.opts.DefaultSeverity,
	}
	if c := s.comp; c != nil {
		cc.severity = c.severityFor(vc, value, cc.severity)
		cc.errorCode = c.errorCode
		if c.stateProvider != nil {
			cc.state = c.stateProvider(vc.instance, value)
		}
	}
	switch {
	case vc.isAsync && s.async != nil:
		if err := s.async(ctx, value, cc); err != nil {
			return nil, err
		}
	case s.sync != nil:
		s.sync(value, cc)
	default:
		return nil, errNeedsAsync
	}
	return cc.failures, nil
}
