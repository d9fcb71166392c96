package validator

import (
	"net/mail"
	"strings"
)

// EmailValidationMode selects how strictly email addresses are checked.
type EmailValidationMode int

const (
	// EmailModeSimple accepts any string with a single '@' that is neither first nor last.
	EmailModeSimple EmailValidationMode = iota
	// EmailModeStrict parses the address with net/mail and requires a dotted domain.
	EmailModeStrict
)

// EmailValidator checks that a string looks like an email address.
type EmailValidator struct {
	Mode EmailValidationMode
}

// EmailAddress uses EmailModeSimple unless a mode is given.
func EmailAddress(mode ...EmailValidationMode) *EmailValidator {
	v := &EmailValidator{}
	if len(mode) > 0 {
		v.Mode = mode[0]
	}
	return v
}

func (*EmailValidator) Name() string { return "EmailValidator" }

func (v *EmailValidator) IsValid(_ *PropertyValidatorContext, value string) bool {
	if v.Mode == EmailModeStrict {
		return isStrictEmail(value)
	}
	i := strings.IndexByte(value, '@')
	return i > 0 && i == strings.LastIndexByte(value, '@') && i < len(value)-1
}

func isStrictEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}

	return true
}
