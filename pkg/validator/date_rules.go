package validator

import "time"

// TimeValidator compares a time.Time with fixed bounds or with the current time.
// Zero bounds are not checked.
type TimeValidator struct {
	After  time.Time
	Before time.Time
	// Now returns the current time for InPast/InFuture; time.Now when nil.
	Now func() time.Time

	name     string
	relative int // -1 past, +1 future
}

// TimeAfter fails unless the value is strictly after t.
func TimeAfter(t time.Time) *TimeValidator {
	return &TimeValidator{After: t, name: "TimeAfterValidator"}
}

// TimeBefore fails unless the value is strictly before t.
func TimeBefore(t time.Time) *TimeValidator {
	return &TimeValidator{Before: t, name: "TimeBeforeValidator"}
}

// TimeBetween fails unless from < value < to. It panics when to is not after from.
func TimeBetween(from, to time.Time) *TimeValidator {
	if !to.After(from) {
		panic(configError("TimeBetween: %s is not after %s", to, from))
	}
	return &TimeValidator{After: from, Before: to, name: "TimeBetweenValidator"}
}

// InPast fails unless the value is before the current time.
func InPast() *TimeValidator {
	return &TimeValidator{name: "PastDateValidator", relative: -1}
}

// InFuture fails unless the value is after the current time.
func InFuture() *TimeValidator {
	return &TimeValidator{name: "FutureDateValidator", relative: 1}
}

func (v *TimeValidator) Name() string {
	if v.name == "" {
		return "TimeValidator"
	}
	return v.name
}

func (v *TimeValidator) IsValid(pc *PropertyValidatorContext, value time.Time) bool {
	after, before := v.After, v.Before
	if v.relative != 0 {
		now := time.Now
		if v.Now != nil {
			now = v.Now
		}
		if v.relative < 0 {
			before = now()
		} else {
			after = now()
		}
	}

	ok := (after.IsZero() || value.After(after)) && (before.IsZero() || value.Before(before))
	if !ok {
		if !after.IsZero() {
			pc.MessageFormatter.AppendArgument("After", after)
		}
		if !before.IsZero() {
			pc.MessageFormatter.AppendArgument("Before", before)
		}
	}
	return ok
}
