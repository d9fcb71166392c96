// Package validator is a declarative object-validation engine.
//
// A Validator[T] holds rules declared against the properties of T. Each rule reads
// one property value (or each element of a collection) and runs an ordered list of
// property validators against it. A failing validator produces a ValidationFailure
// with the full property path, a formatted message, the attempted value, a severity
// and an error code. A run returns a Result listing every failure in declaration order.
//
// # Declaring rules
//
// Go methods cannot introduce type parameters, so rules are declared with package
// functions that return chainable builders:
//
//	v := validator.New[Person]()
//	validator.RuleFor(v, "Name", func(p Person) string { return p.Name }).
//	    NotEmpty().
//	    Add(validator.MaximumLength(50))
//	validator.RuleFor(v, "Age", func(p Person) int { return p.Age }).
//	    Add(validator.InclusiveBetween(18, 120)).
//	    WithMessage("'{PropertyName}' must be an adult age, got {PropertyValue}")
//	validator.RuleFor(v, "Address", func(p Person) *Address { return p.Address }).
//	    NotNull().
//	    SetValidator(addressValidator)
//	validator.RuleForEach(v, "Orders", func(p Person) []Order { return p.Orders }).
//	    SetValidator(orderValidator)
//
// Failures from nested validators carry prefixed paths such as "Address.City" and
// "Orders[2].Sku". RuleForField resolves a property by reflection instead of a getter.
// Interface-typed properties can be validated per dynamic type with a PolymorphicValidator.
//
// # Running
//
// Validate runs synchronously and refuses, with an *AsyncValidatorInvokedSynchronouslyError,
// validators whose selected rules need asynchronous evaluation (MustAsync, CustomAsync,
// WhenAsync). ValidateAsync runs every rule and honours ctx cancellation. Options select
// rules by property (IncludeProperties), by ruleset (IncludeRuleSets) or by a custom
// Selector, and ThrowOnFailures turns an invalid result into ValidationErrors.
//
// # Cascade
//
// With CascadeStopOnFirstFailure a rule stops after its first failing validator
// (per element for collection rules). The class-level mode stops the whole run after the
// first failing rule.
//
// # Messages
//
// Templates use {Placeholder} and {Placeholder:format} syntax. They are resolved by error
// code, then by validator name, through the configured LanguageManager (see pkg/i18n) and
// finally the built-in English templates.
package validator
