package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Validator records the validator name under the key "validator".
func Validator(name string) slog.Attr {
	return slog.String("validator", name)
}

// Property records a property path under the key "property".
func Property(path string) slog.Attr {
	return slog.String("property", path)
}

// Component records a property validator name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RuleSets records the executed rule sets under the key "rule_sets".
// An empty list yields an empty Attr.
func RuleSets(names []string) slog.Attr {
	if len(names) == 0 {
		return slog.Attr{}
	}
	return slog.Any("rule_sets", names)
}

// FailureCount records the number of failures under the key "failures".
func FailureCount(n int) slog.Attr {
	return slog.Int("failures", n)
}

// Culture records the message culture under the key "culture".
// An empty culture yields an empty Attr.
func Culture(culture string) slog.Attr {
	if culture == "" {
		return slog.Attr{}
	}
	return slog.String("culture", culture)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// File records a file path under the key "file".
func File(path string) slog.Attr {
	return slog.String("file", path)
}
