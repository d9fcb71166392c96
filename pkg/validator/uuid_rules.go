package validator

import "github.com/google/uuid"

// UUIDValidator checks that a string is a canonical UUID, optionally of one version.
type UUIDValidator struct {
	// Version restricts accepted UUIDs; zero accepts any version.
	Version uuid.Version
}

// UUID fails unless the string is a hyphenated 36-character UUID.
func UUID(version ...uuid.Version) *UUIDValidator {
	v := &UUIDValidator{}
	if len(version) > 0 {
		v.Version = version[0]
	}
	return v
}

func (*UUIDValidator) Name() string { return "UUIDValidator" }

func (v *UUIDValidator) IsValid(pc *PropertyValidatorContext, value string) bool {
	// Fast rejection: check length and hyphen positions before parsing
	if len(value) != 36 || value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return false
	}
	if v.Version != 0 && id.Version() != v.Version {
		pc.MessageFormatter.AppendArgument("Version", int(v.Version))
		return false
	}
	return true
}

// NonNilUUIDValidator fails for uuid.Nil.
type NonNilUUIDValidator struct{}

func NonNilUUID() NonNilUUIDValidator { return NonNilUUIDValidator{} }

func (NonNilUUIDValidator) Name() string { return "NonNilUUIDValidator" }

func (NonNilUUIDValidator) IsValid(_ *PropertyValidatorContext, value uuid.UUID) bool {
	return value != uuid.Nil
}
