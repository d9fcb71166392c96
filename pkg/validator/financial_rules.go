package validator

import "strings"

// CreditCardValidator checks a card number with the Luhn algorithm.
// Spaces and dashes are ignored.
type CreditCardValidator struct{}

func CreditCard() CreditCardValidator { return CreditCardValidator{} }

func (CreditCardValidator) Name() string { return "CreditCardValidator" }

func (CreditCardValidator) IsValid(_ *PropertyValidatorContext, value string) bool {
	return luhn(strings.NewReplacer(" ", "", "-", "").Replace(value))
}

func luhn(digits string) bool {
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	// right to left
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
