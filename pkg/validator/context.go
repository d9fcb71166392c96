package validator

import (
	"maps"
	"reflect"
	"slices"
	"sync"
)

// RuleSetsExecutedKey is the RootContextData key holding the executed ruleset names.
const RuleSetsExecutedKey = "_rulekit_rulesets_executed"

// ValidationContext is the type-erased view of a Context shared by selectors,
// nested validators and property validators.
type ValidationContext interface {
	InstanceToValidate() any
	PropertyChain() PropertyChain
	Selector() Selector
	// RootContextData is shared by every context created during one run.
	RootContextData() map[string]any
	IsChildContext() bool
	IsChildCollectionContext() bool
	ParentContext() ValidationContext
	IsAsync() bool
	Culture() string

	run() *runState
}

// runState is shared by every context of one validation tree.
type runState struct {
	mu       sync.Mutex
	rootData map[string]any
	skip     map[string]struct{}
	ruleSets []string
}

func (s *runState) markRuleSets(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		if !slices.Contains(s.ruleSets, n) {
			s.ruleSets = append(s.ruleSets, n)
		}
	}
	s.rootData[RuleSetsExecutedKey] = slices.Clone(s.ruleSets)
}

func (s *runState) executedRuleSets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ruleSets)
}

func (s *runState) skips(path string) bool {
	_, ok := s.skip[path]
	return ok
}

// Context carries one instance through a validation run.
type Context[T any] struct {
	instance          T
	chain             PropertyChain
	selector          Selector
	state             *runState
	parent            ValidationContext
	isChild           bool
	isChildCollection bool
	isAsync           bool
	throwOnFailures   bool
	culture           string
}

// NewContext builds a root context for instance.
func NewContext[T any](instance T, opts ...ValidateOption) *Context[T] {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	state := &runState{
		rootData: make(map[string]any, len(cfg.rootData)),
		skip:     make(map[string]struct{}, len(cfg.skip)),
	}
	for k, v := range cfg.rootData {
		state.rootData[k] = v
	}
	for _, p := range cfg.skip {
		state.skip[p] = struct{}{}
	}

	return &Context[T]{
		instance:        instance,
		selector:        cfg.selector(),
		state:           state,
		throwOnFailures: cfg.throwOnFailures,
		culture:         cfg.culture,
	}
}

// newChildContext creates a context for a nested instance. The child shares the
// parent's run state, selector, mode and culture.
func newChildContext[C any](parent ValidationContext, instance C, chain PropertyChain, collection bool) *Context[C] {
	return &Context[C]{
		instance:          instance,
		chain:             chain,
		selector:          parent.Selector(),
		state:             parent.run(),
		parent:            parent,
		isChild:           true,
		isChildCollection: collection,
		isAsync:           parent.IsAsync(),
		culture:           parent.Culture(),
	}
}

// Instance returns the typed instance under validation.
func (c *Context[T]) Instance() T { return c.instance }

func (c *Context[T]) InstanceToValidate() any          { return c.instance }
func (c *Context[T]) PropertyChain() PropertyChain     { return c.chain }
func (c *Context[T]) Selector() Selector               { return c.selector }
func (c *Context[T]) RootContextData() map[string]any  { return c.state.rootData }
func (c *Context[T]) IsChildContext() bool             { return c.isChild }
func (c *Context[T]) IsChildCollectionContext() bool   { return c.isChildCollection }
func (c *Context[T]) ParentContext() ValidationContext { return c.parent }
func (c *Context[T]) IsAsync() bool                    { return c.isAsync }
func (c *Context[T]) Culture() string                  { return c.culture }
func (c *Context[T]) ThrowOnFailures() bool            { return c.throwOnFailures }
func (c *Context[T]) run() *runState                   { return c.state }

// dryRun returns a copy of c with private run state, so selectors can be consulted
// without recording executed rulesets.
func (c *Context[T]) dryRun() *Context[T] {
	p := *c
	p.state = &runState{rootData: maps.Clone(c.state.rootData), skip: c.state.skip}
	if p.state.rootData == nil {
		p.state.rootData = make(map[string]any)
	}
	return &p
}

// RuleSetsExecuted returns the rulesets recorded so far in this run.
func (c *Context[T]) RuleSetsExecuted() []string { return c.state.executedRuleSets() }

// isAncestorInstance reports whether value is a pointer already being validated
// by vc or one of its ancestors.
func isAncestorInstance(vc ValidationContext, value any) bool {
	pv := reflect.ValueOf(value)
	if pv.Kind() != reflect.Pointer || pv.IsNil() {
		return false
	}
	for c := vc; c != nil; c = c.ParentContext() {
		av := reflect.ValueOf(c.InstanceToValidate())
		if av.Kind() == reflect.Pointer && av.Type() == pv.Type() && av.Pointer() == pv.Pointer() {
			return true
		}
	}
	return false
}

// PropertyValidatorContext is handed to a property validator for one invocation.
type PropertyValidatorContext struct {
	ValidationContext

	// PropertyName is the full path of the property being validated.
	PropertyName string
	// DisplayName is the human-readable name used for {PropertyName}.
	DisplayName      string
	PropertyValue    any
	MessageFormatter *MessageFormatter

	path            PropertyChain
	rule            Rule
	collectionIndex int
}

// PropertyPath returns the chain of the property being validated.
func (pc *PropertyValidatorContext) PropertyPath() PropertyChain { return pc.path }

// Rule returns the rule owning the validator.
func (pc *PropertyValidatorContext) Rule() Rule { return pc.rule }

// CollectionIndex returns the element index for collection rules and false otherwise.
func (pc *PropertyValidatorContext) CollectionIndex() (int, bool) {
	return pc.collectionIndex, pc.collectionIndex >= 0
}

func instanceOf[T any](pc *PropertyValidatorContext) T {
	t, _ := pc.InstanceToValidate().(T)
	return t
}
