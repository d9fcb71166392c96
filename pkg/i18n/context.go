package i18n

import (
	"context"
)

type localeContextKey struct{}

// SetLocale stores a culture on the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the culture stored on the context, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if locale := LocaleFromContext(ctx); locale != "" {
		return locale
	}
	return DefaultLanguage
}

// LocaleFromContext returns the culture stored on the context, or "" when none was set.
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale
}
