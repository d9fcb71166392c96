package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func personValidator() *validator.Validator[Person] {
	v := validator.New[Person]()
	validator.RuleFor(v, "Name", personName).NotEmpty()
	validator.RuleFor(v, "Age", personAge).Add(validator.GreaterThanOrEqualTo(18))
	return v
}

func TestValidator_Validate(t *testing.T) {
	t.Run("valid instance", func(t *testing.T) {
		res, err := personValidator().Validate(Person{Name: "Ada", Age: 36})
		require.NoError(t, err)
		assert.True(t, res.IsValid())
		assert.Empty(t, res.Errors)
		assert.Equal(t, []string{validator.DefaultRuleSetName}, res.RuleSetsExecuted)
	})

	t.Run("failures in declaration order", func(t *testing.T) {
		res, err := personValidator().Validate(Person{Name: "", Age: 15})
		require.NoError(t, err)
		require.Len(t, res.Errors, 2)

		name := res.Errors[0]
		assert.Equal(t, "Name", name.PropertyName)
		assert.Equal(t, "'Name' must not be empty.", name.ErrorMessage)
		assert.Equal(t, "NotEmptyValidator", name.ErrorCode)
		assert.Equal(t, "", name.AttemptedValue)
		assert.Equal(t, validator.SeverityError, name.Severity)

		age := res.Errors[1]
		assert.Equal(t, "Age", age.PropertyName)
		assert.Equal(t, "'Age' must be greater than or equal to '18'.", age.ErrorMessage)
		assert.Equal(t, "GreaterThanOrEqualValidator", age.ErrorCode)
		assert.Equal(t, 15, age.AttemptedValue)
		assert.Equal(t, 18, age.FormattedMessagePlaceholderValues["ComparisonValue"])
	})

	t.Run("null name and negative age", func(t *testing.T) {
		type applicant struct {
			Name *string
			Age  int
		}
		v := validator.New[applicant]()
		validator.RuleFor(v, "Name", func(a applicant) *string { return a.Name }).NotNull()
		validator.RuleFor(v, "Age", func(a applicant) int { return a.Age }).
			Must(func(age int) bool { return age >= 0 }).
			WithMessage("Age must be non-negative")

		res, err := v.Validate(applicant{Age: -1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Age"}, res.Fields())
		assert.Equal(t, []string{"'Name' must not be empty.", "Age must be non-negative"}, messages(res))

		ann := "Ann"
		res, err = v.Validate(applicant{Name: &ann, Age: 5})
		require.NoError(t, err)
		assert.True(t, res.IsValid())
		assert.Empty(t, res.Errors)
	})

	t.Run("results are deterministic", func(t *testing.T) {
		v := personValidator()
		p := Person{Age: 3}
		first, err := v.Validate(p)
		require.NoError(t, err)
		second, err := v.Validate(p)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(first, second))
	})

	t.Run("result helpers", func(t *testing.T) {
		res, err := personValidator().Validate(Person{})
		require.NoError(t, err)
		assert.True(t, res.Has("Name"))
		assert.False(t, res.Has("Email"))
		assert.Equal(t, []string{"Name", "Age"}, res.Fields())
		assert.Equal(t, []string{"'Name' must not be empty."}, res.Get("Name"))
		assert.Equal(t, "'Name' must not be empty.\n'Age' must be greater than or equal to '18'.", res.String())
		assert.Len(t, res.ToMap(), 2)
		assert.True(t, validator.IsValidationError(res.Err()))
	})

	t.Run("throw on failures returns validation errors", func(t *testing.T) {
		res, err := personValidator().Validate(Person{Age: 20}, validator.ThrowOnFailures())
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Empty(t, res.Errors)

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 1)
		assert.True(t, ve.Has("Name"))
		assert.Equal(t, "validation failed: Name: 'Name' must not be empty.", err.Error())
	})

	t.Run("throw on failures is silent for valid instances", func(t *testing.T) {
		_, err := personValidator().Validate(Person{Name: "Ada", Age: 20}, validator.ThrowOnFailures())
		assert.NoError(t, err)
	})

	t.Run("nil root instance", func(t *testing.T) {
		v := validator.New[*Address]()
		_, err := v.Validate(nil)
		assert.ErrorIs(t, err, validator.ErrNilInstance)
	})

	t.Run("nil context", func(t *testing.T) {
		_, err := personValidator().ValidateContext(nil)
		assert.ErrorIs(t, err, validator.ErrNilContext)
	})
}

func TestValidator_Cascade(t *testing.T) {
	t.Run("continue runs every validator", func(t *testing.T) {
		calls := 0
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).
			NotEmpty().
			Must(func(string) bool { calls++; return false })

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Len(t, res.Errors, 2)
		assert.Equal(t, 1, calls)
	})

	t.Run("stop on first failure skips later validators", func(t *testing.T) {
		calls := 0
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).
			Cascade(validator.CascadeStopOnFirstFailure).
			NotEmpty().
			Must(func(string) bool { calls++; return false })

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "NotEmptyValidator", res.Errors[0].ErrorCode)
		assert.Equal(t, 0, calls)
	})

	t.Run("rule level default from options", func(t *testing.T) {
		v := validator.New[Person](validator.WithCascadeMode(validator.CascadeStopOnFirstFailure))
		validator.RuleFor(v, "Name", personName).NotEmpty().Add(validator.MinimumLength(2))

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Len(t, res.Errors, 1)
	})

	t.Run("explicit rule mode overrides validator default", func(t *testing.T) {
		v := validator.New[Person](validator.WithCascadeMode(validator.CascadeStopOnFirstFailure))
		validator.RuleFor(v, "Name", personName).
			Cascade(validator.CascadeContinue).
			NotEmpty().
			Add(validator.MinimumLength(2))

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Len(t, res.Errors, 2)
	})

	t.Run("class level stop ends the run after the first failing rule", func(t *testing.T) {
		ageChecked := false
		v := validator.New[Person](validator.WithClassLevelCascadeMode(validator.CascadeStopOnFirstFailure))
		validator.RuleFor(v, "Name", personName).NotEmpty().Add(validator.MinimumLength(2))
		validator.RuleFor(v, "Age", personAge).Must(func(int) bool { ageChecked = true; return false })

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Len(t, res.Errors, 2)
		assert.Equal(t, []string{"Name"}, res.Fields())
		assert.False(t, ageChecked)
	})

	t.Run("stop applies per collection element", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleForEach(v, "Tags", personTags).
			Cascade(validator.CascadeStopOnFirstFailure).
			NotEmpty().
			Must(func(string) bool { return false })

		res, err := v.Validate(Person{Tags: []string{"", ""}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Tags[0]", "Tags[1]"}, res.Fields())
		assert.Len(t, res.Errors, 2)
	})
}

func TestValidator_Messages(t *testing.T) {
	t.Run("custom message with placeholders", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Age", personAge).
			Add(validator.GreaterThan(20)).
			WithMessage("{PropertyName} is {PropertyValue:03d}, needs more than {ComparisonValue}")

		res, err := v.Validate(Person{Age: 7})
		require.NoError(t, err)
		assert.Equal(t, []string{"Age is 007, needs more than 20"}, messages(res))
	})

	t.Run("message func sees instance and value", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Email", personEmail).
			NotEmpty().
			WithMessageFunc(func(p Person, _ string) string { return p.Name + " needs an email" })

		res, err := v.Validate(Person{Name: "Ada"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Ada needs an email"}, messages(res))
	})

	t.Run("display name derived from member name", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "FirstName", personName).NotEmpty()

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "FirstName", res.Errors[0].PropertyName)
		assert.Equal(t, "'First Name' must not be empty.", res.Errors[0].ErrorMessage)
	})

	t.Run("with name overrides display name only", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).NotEmpty().WithName("Given name")

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Equal(t, "Name", res.Errors[0].PropertyName)
		assert.Equal(t, "'Given name' must not be empty.", res.Errors[0].ErrorMessage)
	})

	t.Run("override property name changes the path", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).NotEmpty().OverridePropertyName("full_name")

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Equal(t, []string{"full_name"}, res.Fields())
	})

	t.Run("error code state and severity", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).
			NotEmpty().
			WithErrorCode("NAME_REQUIRED").
			WithSeverity(validator.SeverityWarning).
			WithState(func(p Person, _ string) any { return p.Age })

		res, err := v.Validate(Person{Age: 9})
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		f := res.Errors[0]
		assert.Equal(t, "NAME_REQUIRED", f.ErrorCode)
		assert.Equal(t, validator.SeverityWarning, f.Severity)
		assert.Equal(t, 9, f.CustomState)
		assert.Equal(t, "'Name' must not be empty.", f.ErrorMessage)
	})

	t.Run("severity func and default severity", func(t *testing.T) {
		v := validator.New[Person](validator.WithDefaultSeverity(validator.SeverityInfo))
		validator.RuleFor(v, "Name", personName).NotEmpty()
		validator.RuleFor(v, "Age", personAge).
			Add(validator.GreaterThan(0)).
			WithSeverityFunc(func(_ Person, age int) validator.Severity {
				if age < 0 {
					return validator.SeverityError
				}
				return validator.SeverityWarning
			})

		res, err := v.Validate(Person{Age: -1})
		require.NoError(t, err)
		require.Len(t, res.Errors, 2)
		assert.Equal(t, validator.SeverityInfo, res.Errors[0].Severity)
		assert.Equal(t, validator.SeverityError, res.Errors[1].Severity)
	})

	t.Run("language manager by culture", func(t *testing.T) {
		lm := validator.LanguageManagerFunc(func(key, culture string) string {
			if key == "NotEmptyValidator" && culture == "fr" {
				return "'{PropertyName}' ne doit pas être vide."
			}
			return ""
		})
		v := validator.New[Person](validator.WithLanguageManager(lm))
		validator.RuleFor(v, "Name", personName).NotEmpty()

		res, err := v.Validate(Person{}, validator.WithCulture("fr"))
		require.NoError(t, err)
		assert.Equal(t, []string{"'Name' ne doit pas être vide."}, messages(res))

		res, err = v.Validate(Person{})
		require.NoError(t, err)
		assert.Equal(t, []string{"'Name' must not be empty."}, messages(res))
	})

	t.Run("error code is tried before validator name", func(t *testing.T) {
		lm := validator.LanguageManagerFunc(func(key, _ string) string {
			if key == "name_required" {
				return "{PropertyName} is required"
			}
			return ""
		})
		v := validator.New[Person](validator.WithLanguageManager(lm))
		validator.RuleFor(v, "Name", personName).NotEmpty().WithErrorCode("name_required")
		validator.RuleFor(v, "Email", personEmail).NotEmpty().WithErrorCode("unknown_code")

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Name is required", "'Email' must not be empty."}, messages(res))
	})

	t.Run("custom error code resolver", func(t *testing.T) {
		v := validator.New[Person](validator.WithErrorCodeResolver(func(name string) string {
			return "E_" + name
		}))
		validator.RuleFor(v, "Name", personName).NotEmpty()

		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Equal(t, "E_NotEmptyValidator", res.Errors[0].ErrorCode)
		assert.Equal(t, "'Name' must not be empty.", res.Errors[0].ErrorMessage)
	})
}

func TestValidator_Conditions(t *testing.T) {
	adult := func(p Person) bool { return p.Age >= 18 }

	t.Run("when applies to all validators declared so far", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Email", personEmail).
			NotEmpty().
			Add(validator.EmailAddress()).
			When(adult)

		res, err := v.Validate(Person{Age: 10})
		require.NoError(t, err)
		assert.True(t, res.IsValid())

		res, err = v.Validate(Person{Age: 30})
		require.NoError(t, err)
		assert.Len(t, res.Errors, 2)
	})

	t.Run("current validator condition", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).
			NotEmpty().
			Add(validator.MinimumLength(3)).
			When(adult, validator.CurrentValidator)

		res, err := v.Validate(Person{Age: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"NotEmptyValidator"}, errorCodes(res))
	})

	t.Run("unless", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).NotEmpty().Unless(adult)

		res, err := v.Validate(Person{Age: 40})
		require.NoError(t, err)
		assert.True(t, res.IsValid())
	})

	t.Run("rule level when and otherwise", func(t *testing.T) {
		v := validator.New[Person]()
		v.When(adult, func() {
			validator.RuleFor(v, "Email", personEmail).NotEmpty()
		}).Otherwise(func() {
			validator.RuleFor(v, "Email", personEmail).Empty()
		})

		res, err := v.Validate(Person{Age: 30})
		require.NoError(t, err)
		assert.Equal(t, []string{"NotEmptyValidator"}, errorCodes(res))

		res, err = v.Validate(Person{Age: 10, Email: "kid@example.com"})
		require.NoError(t, err)
		assert.Equal(t, []string{"EmptyValidator"}, errorCodes(res))

		res, err = v.Validate(Person{Age: 10})
		require.NoError(t, err)
		assert.True(t, res.IsValid())
	})

	t.Run("validator unless", func(t *testing.T) {
		v := validator.New[Person]()
		v.Unless(adult, func() {
			validator.RuleFor(v, "Name", personName).NotEmpty()
		})

		res, err := v.Validate(Person{Age: 5})
		require.NoError(t, err)
		assert.Len(t, res.Errors, 1)
	})

	t.Run("nested when scopes combine", func(t *testing.T) {
		v := validator.New[Person]()
		v.When(adult, func() {
			v.When(func(p Person) bool { return p.Name == "admin" }, func() {
				validator.RuleFor(v, "Email", personEmail).NotEmpty()
			})
		})

		res, err := v.Validate(Person{Age: 30, Name: "user"})
		require.NoError(t, err)
		assert.True(t, res.IsValid())

		res, err = v.Validate(Person{Age: 30, Name: "admin"})
		require.NoError(t, err)
		assert.False(t, res.IsValid())
	})
}

func TestValidator_DependentRules(t *testing.T) {
	v := validator.New[Person]()
	validator.RuleFor(v, "Name", personName).
		NotEmpty().
		DependentRules(func() {
			validator.RuleFor(v, "Email", personEmail).Add(validator.EmailAddress())
		})

	t.Run("dependents are skipped when the owner fails", func(t *testing.T) {
		res, err := v.Validate(Person{Email: "nope"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Name"}, res.Fields())
	})

	t.Run("dependents run when the owner passes", func(t *testing.T) {
		res, err := v.Validate(Person{Name: "Ada", Email: "nope"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Email"}, res.Fields())
	})

	t.Run("dependents are not top level rules", func(t *testing.T) {
		require.Len(t, v.Rules(), 1)
		assert.Len(t, v.Rules()[0].DependentRules(), 1)
	})
}

func TestValidator_RuleSets(t *testing.T) {
	newValidator := func() *validator.Validator[Person] {
		v := validator.New[Person]()
		v.RuleSet("Names", func() {
			validator.RuleFor(v, "Name", personName).NotEmpty()
		})
		validator.RuleFor(v, "Age", personAge).Add(validator.GreaterThan(0))
		v.RuleSet("Contact; Names", func() {
			validator.RuleFor(v, "Email", personEmail).NotEmpty()
		})
		return v
	}

	tests := []struct {
		name     string
		opts     []validator.ValidateOption
		fields   []string
		executed []string
	}{
		{
			name:     "default runs untagged rules",
			fields:   []string{"Age"},
			executed: []string{"default"},
		},
		{
			name:     "named ruleset",
			opts:     []validator.ValidateOption{validator.IncludeRuleSets("Names")},
			fields:   []string{"Name", "Email"},
			executed: []string{"Names"},
		},
		{
			name:     "case insensitive",
			opts:     []validator.ValidateOption{validator.IncludeRuleSets("contact")},
			fields:   []string{"Email"},
			executed: []string{"Contact"},
		},
		{
			name:     "default plus named",
			opts:     []validator.ValidateOption{validator.IncludeRuleSets("default,Contact")},
			fields:   []string{"Age", "Email"},
			executed: []string{"default", "Contact"},
		},
		{
			name:     "wildcard",
			opts:     []validator.ValidateOption{validator.IncludeAllRuleSets()},
			fields:   []string{"Name", "Age", "Email"},
			executed: []string{"Names", "default", "Contact"},
		},
		{
			name: "unknown ruleset runs nothing",
			opts: []validator.ValidateOption{validator.IncludeRuleSets("Billing")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newValidator().Validate(Person{Age: -1}, tt.opts...)
			require.NoError(t, err)
			if tt.fields == nil {
				assert.Empty(t, res.Errors)
			} else {
				assert.Equal(t, tt.fields, res.Fields())
			}
			assert.ElementsMatch(t, tt.executed, res.RuleSetsExecuted)
		})
	}

	t.Run("executed rulesets are visible in root context data", func(t *testing.T) {
		vc := validator.NewContext(Person{}, validator.IncludeRuleSets("Names"))
		_, err := newValidator().ValidateContext(vc)
		require.NoError(t, err)
		assert.Equal(t, []string{"Names"}, vc.RootContextData()[validator.RuleSetsExecutedKey])
		assert.Equal(t, []string{"Names"}, vc.RuleSetsExecuted())
	})

	t.Run("empty ruleset name panics", func(t *testing.T) {
		v := validator.New[Person]()
		assert.Panics(t, func() { v.RuleSet(" , ", func() {}) })
	})
}

func TestValidator_Include(t *testing.T) {
	base := validator.New[Person]()
	validator.RuleFor(base, "Name", personName).NotEmpty()

	v := validator.New[Person]()
	v.Include(base)
	validator.RuleFor(v, "Age", personAge).Add(validator.GreaterThan(0))

	t.Run("included rules run in place", func(t *testing.T) {
		res, err := v.Validate(Person{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Age"}, res.Fields())
	})

	t.Run("included validator filters its own rules by ruleset", func(t *testing.T) {
		res, err := v.Validate(Person{}, validator.IncludeRuleSets("Other"))
		require.NoError(t, err)
		assert.True(t, res.IsValid())
	})

	t.Run("member selection reaches included rules", func(t *testing.T) {
		res, err := v.Validate(Person{}, validator.IncludeProperties("Name"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Name"}, res.Fields())
	})

	t.Run("including itself panics", func(t *testing.T) {
		assert.Panics(t, func() { v.Include(v) })
		assert.Panics(t, func() { v.Include(nil) })
	})
}

func TestValidator_IncludeProperties(t *testing.T) {
	v := validator.New[Person]()
	validator.RuleFor(v, "Name", personName).NotEmpty()
	validator.RuleFor(v, "Age", personAge).Add(validator.GreaterThan(0))
	validator.RuleFor(v, "Address", personAddress).SetValidator(addressValidator())

	p := Person{Address: &Address{}}

	tests := []struct {
		name   string
		props  []string
		fields []string
	}{
		{name: "single top level property", props: []string{"Name"}, fields: []string{"Name"}},
		{name: "several properties", props: []string{"Age", "Name"}, fields: []string{"Name", "Age"}},
		{name: "whole child", props: []string{"Address"}, fields: []string{"Address.Street", "Address.City"}},
		{name: "nested property", props: []string{"Address.City"}, fields: []string{"Address.City"}},
		{name: "unknown property", props: []string{"Nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.Validate(p, validator.IncludeProperties(tt.props...))
			require.NoError(t, err)
			if tt.fields == nil {
				assert.Empty(t, res.Errors)
				return
			}
			assert.Equal(t, tt.fields, res.Fields())
		})
	}

	t.Run("custom selector", func(t *testing.T) {
		onlyAge := validator.SelectorFunc(func(rule validator.Rule, _ string, _ validator.ValidationContext) bool {
			return rule.PropertyName() == "Age"
		})
		res, err := v.Validate(p, validator.UseSelector(onlyAge))
		require.NoError(t, err)
		assert.Equal(t, []string{"Age"}, res.Fields())
	})
}

func TestValidator_Custom(t *testing.T) {
	self := func(p Person) Person { return p }

	t.Run("custom rule adds failures for other properties", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "", self).Custom(func(p Person, cc *validator.CustomContext[Person]) {
			if p.Name != "" && p.Name == p.Email {
				cc.AddFailure("Email", "email must differ from name")
			}
		})

		res, err := v.Validate(Person{Name: "x", Email: "x"})
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "Email", res.Errors[0].PropertyName)
		assert.Equal(t, "email must differ from name", res.Errors[0].ErrorMessage)
	})

	t.Run("add message targets the current property with placeholders", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Age", personAge).Custom(func(age int, cc *validator.CustomContext[Person]) {
			if age%2 != 0 {
				cc.AddMessage("{PropertyName} must be even, got {PropertyValue}")
			}
			if age > 100 {
				cc.AddMessage("{PropertyName} is too large")
			}
		})

		res, err := v.Validate(Person{Age: 101})
		require.NoError(t, err)
		assert.Equal(t, []string{"Age must be even, got 101", "Age is too large"}, messages(res))
		assert.Equal(t, []string{"Age"}, res.Fields())
	})

	t.Run("add validation failure keeps provided fields", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).Custom(func(_ string, cc *validator.CustomContext[Person]) {
			f := validator.NewValidationFailure("", "blocked", cc.Instance().Name)
			f.ErrorCode = "BLOCKED"
			cc.AddValidationFailure(f)
		})

		res, err := v.Validate(Person{Name: "root"})
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "Name", res.Errors[0].PropertyName)
		assert.Equal(t, "BLOCKED", res.Errors[0].ErrorCode)
		assert.Equal(t, "root", res.Errors[0].AttemptedValue)
	})

	t.Run("component modifiers apply to custom failures", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).
			Custom(func(_ string, cc *validator.CustomContext[Person]) { cc.AddMessage("reserved") }).
			WithErrorCode("RESERVED").
			WithSeverity(validator.SeverityWarning).
			WithState(func(p Person, _ string) any { return p.Age })

		res, err := v.Validate(Person{Name: "admin", Age: 7})
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "RESERVED", res.Errors[0].ErrorCode)
		assert.Equal(t, validator.SeverityWarning, res.Errors[0].Severity)
		assert.Equal(t, 7, res.Errors[0].CustomState)
	})

	t.Run("add failure renders dotted member paths", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Address", personAddress).Custom(func(a *Address, cc *validator.CustomContext[Person]) {
			if a != nil && a.City == "" {
				cc.AddFailure("Address.City", "city is required")
			}
		})

		res, err := v.Validate(Person{Address: &Address{}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Address.City"}, res.Fields())
	})

	t.Run("must with sees the instance", func(t *testing.T) {
		v := validator.New[Person]()
		validator.RuleFor(v, "Email", personEmail).
			MustWith(func(p Person, email string, _ *validator.PropertyValidatorContext) bool {
				return email != p.Name
			})

		res, err := v.Validate(Person{Name: "a", Email: "a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"The specified condition was not met for 'Email'."}, messages(res))
	})
}

func TestValidator_FailureCallbacks(t *testing.T) {
	t.Run("on failure sees each failure of the last validator", func(t *testing.T) {
		var got []string
		v := validator.New[Person]()
		validator.RuleFor(v, "Name", personName).
			NotEmpty().
			Must(func(n string) bool { return len(n) > 2 }).
			OnFailure(func(p Person, name string, f validator.ValidationFailure) {
				got = append(got, fmt.Sprintf("%d:%s:%s", p.Age, name, f.PropertyName))
			})

		_, err := v.Validate(Person{Age: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"3::Name"}, got)

		got = nil
		_, err = v.Validate(Person{Name: "Ada"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("on any failure runs once per rule", func(t *testing.T) {
		var calls int
		var failures []validator.ValidationFailure
		v := validator.New[Person]()
		validator.RuleForEach(v, "Tags", personTags).
			NotEmpty().
			OnAnyFailure(func(_ Person, f []validator.ValidationFailure) {
				calls++
				failures = f
			})

		_, err := v.Validate(Person{Tags: []string{"", "ok", ""}})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		require.Len(t, failures, 2)
		assert.Equal(t, "Tags[0]", failures[0].PropertyName)
		assert.Equal(t, "Tags[2]", failures[1].PropertyName)

		_, err = v.Validate(Person{Tags: []string{"ok"}})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestValidator_Introspection(t *testing.T) {
	v := validator.New[Person](validator.WithCascadeMode(validator.CascadeStopOnFirstFailure))
	v.RuleSet("Contact", func() {
		validator.RuleFor(v, "Email", personEmail).NotEmpty().Add(validator.EmailAddress()).When(func(Person) bool { return true })
	})
	validator.RuleForEach(v, "Tags", personTags).NotEmpty()

	rules := v.Rules()
	require.Len(t, rules, 2)

	email := rules[0]
	assert.Equal(t, "Email", email.PropertyName())
	assert.Equal(t, "Email", email.DisplayName())
	assert.Equal(t, []string{"Contact"}, email.RuleSets())
	assert.Equal(t, validator.CascadeStopOnFirstFailure, email.CascadeMode())
	assert.False(t, email.IsCollection())
	assert.False(t, email.HasCondition())

	components := email.Components()
	require.Len(t, components, 2)
	assert.Equal(t, "NotEmptyValidator", components[0].Name())
	assert.Equal(t, "EmailValidator", components[1].Name())
	assert.True(t, components[1].HasCondition())
	assert.False(t, components[1].IsAsync())

	assert.True(t, rules[1].IsCollection())
	assert.Equal(t, "validator_test.Person", v.Name())
}

func errorCodes(res validator.Result) []string {
	out := make([]string, len(res.Errors))
	for i, f := range res.Errors {
		out[i] = f.ErrorCode
	}
	return out
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	ve := validator.ValidationErrors{
		validator.NewValidationFailure("Name", "required", ""),
		validator.NewValidationFailure("Name", "too short", ""),
		validator.NewValidationFailure("Age", "too young", 3),
	}

	assert.True(t, errors.Is(ve, validator.ErrValidationFailed))
	assert.Equal(t, []string{"Name", "Age"}, ve.Fields())
	assert.Equal(t, []string{"required", "too short"}, ve.Get("Name"))
	assert.False(t, ve.IsEmpty())
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
	assert.False(t, validator.IsValidationError(nil))
}
