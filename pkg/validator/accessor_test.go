package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func TestField(t *testing.T) {
	t.Parallel()

	t.Run("top level field", func(t *testing.T) {
		t.Parallel()
		acc := validator.Field[Person, string]("Name")
		assert.Equal(t, "Name", acc.Name)
		assert.Equal(t, "Ada", acc.Get(Person{Name: "Ada"}))
	})

	t.Run("nested through a pointer", func(t *testing.T) {
		t.Parallel()
		acc := validator.Field[Person, string]("Address.City")
		assert.Equal(t, "Oslo", acc.Get(Person{Address: &Address{City: "Oslo"}}))
		assert.Empty(t, acc.Get(Person{}))
	})

	t.Run("pointer owner", func(t *testing.T) {
		t.Parallel()
		acc := validator.Field[*Person, int]("Age")
		assert.Equal(t, 42, acc.Get(&Person{Age: 42}))
		assert.Zero(t, acc.Get(nil))
	})

	t.Run("usable in rules", func(t *testing.T) {
		t.Parallel()
		v := validator.New[Person]()
		validator.RuleForAccessor(v, validator.Field[Person, string]("Address.City")).NotEmpty()

		res, err := v.Validate(Person{Address: &Address{}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Address.City"}, res.Fields())
	})

	t.Run("dotted field paths are selectable by member name", func(t *testing.T) {
		t.Parallel()
		v := validator.New[Person]()
		validator.RuleForField[string](v, "Address.City").NotEmpty()
		validator.RuleFor(v, "Name", personName).NotEmpty()

		res, err := v.Validate(Person{Address: &Address{}}, validator.IncludeProperties("Address.City"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Address.City"}, res.Fields())

		res, err = v.Validate(Person{Address: &Address{}}, validator.IncludeProperties("Address"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Address.City"}, res.Fields())
	})

	t.Run("invalid paths panic", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { validator.Field[Person, string]("Missing") })
		assert.Panics(t, func() { validator.Field[Person, string]("Age") })
		assert.Panics(t, func() { validator.Field[Person, string]("Name.Length") })
		assert.Panics(t, func() { validator.Field[Person, string]("") })
	})
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"FirstName", "First Name"},
		{"Customer.FirstName", "First Name"},
		{"Items[2]", "Items"},
		{"Orders[1].ShippingAddress", "Shipping Address"},
		{"HTMLParserID", "HTML Parser ID"},
		{"Address2Line", "Address2 Line"},
		{"x", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validator.DisplayName(tt.in))
		})
	}
}
