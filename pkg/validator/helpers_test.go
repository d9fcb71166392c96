package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

type Address struct {
	Street   string
	City     string
	Postcode string
}

type Item struct {
	Name string
	Qty  int
}

type Person struct {
	Name    string
	Age     int
	Email   string
	Address *Address
	Items   []Item
	Tags    []string
	Parent  *Person
}

func personName(p Person) string      { return p.Name }
func personAge(p Person) int          { return p.Age }
func personEmail(p Person) string     { return p.Email }
func personAddress(p Person) *Address { return p.Address }
func personItems(p Person) []Item     { return p.Items }
func personTags(p Person) []string    { return p.Tags }

func addressValidator() *validator.Validator[*Address] {
	v := validator.New[*Address]()
	validator.RuleFor(v, "Street", func(a *Address) string { return a.Street }).NotEmpty()
	validator.RuleFor(v, "City", func(a *Address) string { return a.City }).NotEmpty()
	return v
}

func itemValidator() *validator.Validator[Item] {
	v := validator.New[Item]()
	validator.RuleFor(v, "Name", func(i Item) string { return i.Name }).NotEmpty()
	validator.RuleFor(v, "Qty", func(i Item) int { return i.Qty }).Add(validator.GreaterThan(0))
	return v
}

type box[P any] struct {
	V P
}

// checkValue runs a single property validator against value.
func checkValue[P any](t *testing.T, pv validator.PropertyValidator[P], value P) validator.Result {
	t.Helper()
	v := validator.New[box[P]]()
	validator.RuleFor(v, "Value", func(b box[P]) P { return b.V }).Add(pv)
	res, err := v.Validate(box[P]{V: value})
	require.NoError(t, err)
	return res
}

func messages(res validator.Result) []string {
	out := make([]string, len(res.Errors))
	for i, f := range res.Errors {
		out[i] = f.ErrorMessage
	}
	return out
}
