package validator

import "context"

// ChildValidator validates a nested property value in a child context.
// *Validator[T] implements it.
type ChildValidator[T any] interface {
	ValidateContext(vc *Context[T]) (Result, error)
	ValidateContextAsync(ctx context.Context, vc *Context[T]) (Result, error)
}

type asyncRequirer[T any] interface {
	requiresAsync(vc *Context[T], seen map[any]struct{}) (string, bool)
}

// childAdaptor runs a child validator against a property value. Failures carry paths
// prefixed with the property's chain. Nil values produce no failures.
type childAdaptor[T, P any] struct {
	child ChildValidator[P]
}

func (a *childAdaptor[T, P]) Name() string { return "ChildValidatorAdaptor" }

// Child returns the nested validator.
func (a *childAdaptor[T, P]) Child() ChildValidator[P] { return a.child }

func (a *childAdaptor[T, P]) asyncOnly() bool { return false }
func (a *childAdaptor[T, P]) nests() bool     { return true }

func (a *childAdaptor[T, P]) requiresAsync(vc *Context[T], path PropertyChain, value P, collection bool, seen map[any]struct{}) (string, bool) {
	if !a.reaches(vc, path, value) {
		return "", false
	}
	r, ok := a.child.(asyncRequirer[P])
	if !ok {
		return "", false
	}
	return r.requiresAsync(newChildContext(vc, value, path, collection), seen)
}

// reaches reports whether the child validator runs for value at path.
func (a *childAdaptor[T, P]) reaches(vc *Context[T], path PropertyChain, value P) bool {
	return !isNil(value) && !vc.state.skips(path.String()) && !isAncestorInstance(vc, value)
}

func (a *childAdaptor[T, P]) collect(ctx context.Context, vc *Context[T], pc *PropertyValidatorContext, value P) ([]ValidationFailure, error) {
	path := pc.PropertyPath()
	if !a.reaches(vc, path, value) {
		return nil, nil
	}

	_, collection := pc.CollectionIndex()
	child := newChildContext(vc, value, path, collection)

	var (
		res Result
		err error
	)
	if vc.isAsync {
		res, err = a.child.ValidateContextAsync(ctx, child)
	} else {
		res, err = a.child.ValidateContext(child)
	}
	if err != nil {
		return nil, err
	}
	return res.Errors, nil
}
