package validator

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// AnyValidator is the type-erased form of *Validator[T].
type AnyValidator interface {
	Name() string
	ValidateAny(ctx context.Context, instance any, opts ...ValidateOption) (Result, error)
	CanValidateInstancesOfType(t reflect.Type) bool
	CreateDescriptor() *Descriptor
}

// ValidatorFactory looks up validators by type.
type ValidatorFactory interface {
	GetValidator(t reflect.Type) (AnyValidator, bool)
}

// Registry is a concurrency-safe ValidatorFactory.
type Registry struct {
	mu    sync.RWMutex
	byKey map[reflect.Type]AnyValidator
	order []reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{byKey: make(map[reflect.Type]AnyValidator)}
}

// Register adds v under T, replacing an earlier registration for T.
func Register[T any](r *Registry, v *Validator[T]) {
	if r == nil || v == nil {
		panic(configError("Register requires a registry and a validator"))
	}
	t := reflect.TypeFor[T]()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKey[t]; !ok {
		r.order = append(r.order, t)
	}
	r.byKey[t] = v
}

// GetValidator returns the validator registered for t. When none is registered for t
// exactly, the first registered validator accepting t (e.g. one for an interface t
// implements) is returned.
func (r *Registry) GetValidator(t reflect.Type) (AnyValidator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.byKey[t]; ok {
		return v, true
	}
	if t == nil {
		return nil, false
	}
	for _, key := range r.order {
		if v := r.byKey[key]; v.CanValidateInstancesOfType(t) {
			return v, true
		}
	}
	return nil, false
}

// ValidatorFor looks up the validator for T.
func ValidatorFor[T any](f ValidatorFactory) (AnyValidator, bool) {
	return f.GetValidator(reflect.TypeFor[T]())
}

// Validate looks up the validator for instance's dynamic type and runs it asynchronously.
func (r *Registry) Validate(ctx context.Context, instance any, opts ...ValidateOption) (Result, error) {
	t := reflect.TypeOf(instance)
	v, ok := r.GetValidator(t)
	if !ok {
		return Result{}, fmt.Errorf("%w: %v", ErrValidatorNotFound, t)
	}
	return v.ValidateAny(ctx, instance, opts...)
}
