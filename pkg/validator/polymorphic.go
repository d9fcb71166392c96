package validator

import (
	"context"
	"reflect"
)

// PolymorphicValidator validates an interface-typed property with the child validator
// registered for the value's dynamic type. Nil values and values of unregistered types
// produce no failures.
//
//	pets := validator.Polymorphic[Pet]()
//	validator.AddSubtype[*Dog](pets, dogValidator)
//	validator.AddSubtype[*Cat](pets, catValidator, "Indoor")
//	validator.RuleFor(v, "Pet", func(o Owner) Pet { return o.Pet }).SetValidator(pets)
type PolymorphicValidator[P any] struct {
	subtypes map[reflect.Type]subtypeValidator[P]
}

type subtypeValidator[P any] interface {
	validate(ctx context.Context, vc *Context[P]) (Result, error)
	requiresAsync(vc *Context[P], seen map[any]struct{}) (string, bool)
}

// Polymorphic creates an empty PolymorphicValidator.
func Polymorphic[P any]() *PolymorphicValidator[P] {
	return &PolymorphicValidator[P]{subtypes: make(map[reflect.Type]subtypeValidator[P])}
}

// AddSubtype registers child for values whose dynamic type is S, replacing an earlier
// registration. With ruleSets only the rules of those rulesets run for the subtype.
// It panics when S is not assignable to P.
func AddSubtype[S, P any](pv *PolymorphicValidator[P], child ChildValidator[S], ruleSets ...string) *PolymorphicValidator[P] {
	if pv == nil {
		panic(configError("AddSubtype on a nil polymorphic validator"))
	}
	if child == nil {
		panic(configError("AddSubtype requires a validator"))
	}
	st, pt := reflect.TypeFor[S](), reflect.TypeFor[P]()
	if !st.AssignableTo(pt) {
		panic(configError("AddSubtype: %s is not assignable to %s", st, pt))
	}
	pv.subtypes[st] = &subtype[P, S]{child: child, ruleSets: splitRuleSetNames(ruleSets...)}
	return pv
}

// ValidateContext validates the value in vc with the validator registered for its type.
func (pv *PolymorphicValidator[P]) ValidateContext(vc *Context[P]) (Result, error) {
	if vc == nil {
		return Result{}, ErrNilContext
	}
	vc.isAsync = false
	return pv.run(context.Background(), vc)
}

func (pv *PolymorphicValidator[P]) ValidateContextAsync(ctx context.Context, vc *Context[P]) (Result, error) {
	if vc == nil {
		return Result{}, ErrNilContext
	}
	if ctx == nil {
		ctx = context.Background()
	}
	vc.isAsync = true
	return pv.run(ctx, vc)
}

func (pv *PolymorphicValidator[P]) run(ctx context.Context, vc *Context[P]) (Result, error) {
	s, ok := pv.lookup(vc.instance)
	if !ok {
		return Result{}, nil
	}
	return s.validate(ctx, vc)
}

func (pv *PolymorphicValidator[P]) requiresAsync(vc *Context[P], seen map[any]struct{}) (string, bool) {
	s, ok := pv.lookup(vc.instance)
	if !ok {
		return "", false
	}
	return s.requiresAsync(vc, seen)
}

func (pv *PolymorphicValidator[P]) lookup(value P) (subtypeValidator[P], bool) {
	if isNil(value) {
		return nil, false
	}
	s, ok := pv.subtypes[reflect.TypeOf(any(value))]
	return s, ok
}

type subtype[P, S any] struct {
	child    ChildValidator[S]
	ruleSets []string
}

// narrow re-types vc for the subtype. The run state, chain and parent are shared.
func (s *subtype[P, S]) narrow(vc *Context[P]) *Context[S] {
	value, _ := any(vc.instance).(S)
	out := &Context[S]{
		instance:          value,
		chain:             vc.chain,
		selector:          vc.selector,
		state:             vc.state,
		parent:            vc.parent,
		isChild:           vc.isChild,
		isChildCollection: vc.isChildCollection,
		isAsync:           vc.isAsync,
		throwOnFailures:   vc.throwOnFailures,
		culture:           vc.culture,
	}
	if len(s.ruleSets) > 0 {
		out.selector = NewRuleSetSelector(s.ruleSets...)
	}
	return out
}

func (s *subtype[P, S]) validate(ctx context.Context, vc *Context[P]) (Result, error) {
	if vc.isAsync {
		return s.child.ValidateContextAsync(ctx, s.narrow(vc))
	}
	return s.child.ValidateContext(s.narrow(vc))
}

func (s *subtype[P, S]) requiresAsync(vc *Context[P], seen map[any]struct{}) (string, bool) {
	r, ok := s.child.(asyncRequirer[S])
	if !ok {
		return "", false
	}
	return r.requiresAsync(s.narrow(vc), seen)
}
