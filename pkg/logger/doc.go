// Package logger builds *slog.Logger values from functional options and keeps
// attribute names consistent across the module.
//
// New selects a text or JSON handler, applies static attributes and wraps the
// handler in LogHandlerDecorator, which adds attributes pulled from the context of
// every record through ContextExtractor callbacks:
//
//	log := logger.New(
//		logger.WithDevelopment("catalogcheck"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			c := i18n.LocaleFromContext(ctx)
//			return logger.Culture(c), c != ""
//		}),
//	)
//
// FromEnv reads RULEKIT_LOG_LEVEL and RULEKIT_LOG_FORMAT through pkg/config.
//
// The helpers in attr.go (Validator, Property, Component, RuleSets, FailureCount,
// Culture, Duration, Error) are what the validator uses for its debug records.
// Error and Errors return an empty attribute for nil errors, so they can be passed
// unconditionally.
package logger
