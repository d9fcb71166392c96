package validator

import (
	"context"
	"reflect"
)

// PropertyValidator checks one property value.
type PropertyValidator[P any] interface {
	// Name identifies the validator kind. It is the default error code and the
	// message template key.
	Name() string
	IsValid(pc *PropertyValidatorContext, value P) bool
}

// AsyncPropertyValidator checks one property value and may block.
// A validator implementing only this interface can run only through the async entry points.
type AsyncPropertyValidator[P any] interface {
	Name() string
	IsValidAsync(ctx context.Context, pc *PropertyValidatorContext, value P) (bool, error)
}

// ApplyConditionTo selects the validators a builder condition applies to.
type ApplyConditionTo int

const (
	// AllValidators applies the condition to every validator declared so far in the rule.
	AllValidators ApplyConditionTo = iota
	// CurrentValidator applies the condition to the last declared validator only.
	CurrentValidator
)

// Component is the read-only view of a validator attached to a rule.
type Component interface {
	Name() string
	// Validator returns the underlying validator value.
	Validator() any
	ErrorCode() string
	HasCondition() bool
	HasAsyncCondition() bool
	// IsAsync reports whether the component can only run asynchronously.
	IsAsync() bool
	SupportsAsync() bool
}

// failureSource is a component body that produces failures itself.
type failureSource[T, P any] interface {
	Name() string
	collect(ctx context.Context, vc *Context[T], pc *PropertyValidatorContext, value P) ([]ValidationFailure, error)
	asyncOnly() bool
	// nests reports whether the source runs validators against the value.
	nests() bool
	requiresAsync(vc *Context[T], path PropertyChain, value P, collection bool, seen map[any]struct{}) (string, bool)
}

type component[T, P any] struct {
	name      string
	validator any
	sync      PropertyValidator[P]
	async     AsyncPropertyValidator[P]
	source    failureSource[T, P]

	conditions      []func(*Context[T]) bool
	asyncConditions []func(context.Context, *Context[T]) (bool, error)

	message       string
	messageFunc   func(T, P) string
	errorCode     string
	stateProvider func(T, P) any
	severity      *Severity
	severityFunc  func(T, P) Severity
	onFailure     func(T, P, ValidationFailure)
}

func newComponent[T, P any](pv PropertyValidator[P]) *component[T, P] {
	c := &component[T, P]{name: pv.Name(), validator: pv, sync: pv}
	if av, ok := pv.(AsyncPropertyValidator[P]); ok {
		c.async = av
	}
	return c
}

func newAsyncComponent[T, P any](av AsyncPropertyValidator[P]) *component[T, P] {
	c := &component[T, P]{name: av.Name(), validator: av, async: av}
	if pv, ok := av.(PropertyValidator[P]); ok {
		c.sync = pv
	}
	return c
}

func newSourceComponent[T, P any](src failureSource[T, P]) *component[T, P] {
	return &component[T, P]{name: src.Name(), validator: src, source: src}
}

func (c *component[T, P]) Name() string            { return c.name }
func (c *component[T, P]) Validator() any          { return c.validator }
func (c *component[T, P]) ErrorCode() string       { return c.errorCode }
func (c *component[T, P]) HasCondition() bool      { return len(c.conditions) > 0 }
func (c *component[T, P]) HasAsyncCondition() bool { return len(c.asyncConditions) > 0 }

func (c *component[T, P]) IsAsync() bool {
	if c.source != nil {
		return c.source.asyncOnly()
	}
	return c.sync == nil
}

func (c *component[T, P]) SupportsAsync() bool {
	if c.source != nil {
		return true
	}
	return c.async != nil
}

// requiresAsync reports whether the component itself needs asynchronous evaluation.
// Validators nested in a source are scanned by the rule.
func (c *component[T, P]) requiresAsync() (string, bool) {
	if len(c.asyncConditions) > 0 {
		return c.name, true
	}
	if c.source != nil {
		if c.source.asyncOnly() {
			return c.name, true
		}
		return "", false
	}
	if c.sync == nil {
		return c.name, true
	}
	return "", false
}

func (c *component[T, P]) nests() bool { return c.source != nil && c.source.nests() }

func (c *component[T, P]) syncConditionsHold(vc *Context[T]) bool {
	for _, cond := range c.conditions {
		if !cond(vc) {
			return false
		}
	}
	return true
}

// shouldRun evaluates the component conditions. errNeedsAsync is returned for an
// async condition in a synchronous run.
func (c *component[T, P]) shouldRun(ctx context.Context, vc *Context[T]) (bool, error) {
	for _, cond := range c.conditions {
		if !cond(vc) {
			return false, nil
		}
	}
	for _, cond := range c.asyncConditions {
		if !vc.isAsync {
			return false, errNeedsAsync
		}
		ok, err := cond(ctx, vc)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (c *component[T, P]) check(ctx context.Context, vc *Context[T], pc *PropertyValidatorContext, value P) (bool, error) {
	if vc.isAsync && c.async != nil {
		return c.async.IsValidAsync(ctx, pc, value)
	}
	if c.sync != nil {
		return c.sync.IsValid(pc, value), nil
	}
	return false, errNeedsAsync
}

func (c *component[T, P]) template(vc *Context[T], value P, opts Options) string {
	switch {
	case c.messageFunc != nil:
		return c.messageFunc(vc.instance, value)
	case c.message != "":
		return c.message
	}
	culture := vc.culture
	if culture == "" {
		culture = opts.Culture
	}
	return resolveTemplate(opts.LanguageManager, c.errorCode, c.name, culture)
}

func (c *component[T, P]) severityFor(vc *Context[T], value P, fallback Severity) Severity {
	switch {
	case c.severityFunc != nil:
		return c.severityFunc(vc.instance, value)
	case c.severity != nil:
		return *c.severity
	}
	return fallback
}

// isNil reports whether v is nil or a nil pointer, slice, map, channel, func or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
