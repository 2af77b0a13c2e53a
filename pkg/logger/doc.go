// Package logger builds *slog.Logger values from functional options and
// provides attribute helpers that keep key names consistent.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler according to the
// configured Format and wraps it with LogHandlerDecorator, which runs the
// registered ContextExtractor callbacks on every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("formcheck"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//
//	log.InfoContext(ctx, "validation finished",
//	    logger.ValidatorID(id),
//	    logger.Mode("burst"),
//	    logger.Duration(time.Since(start)),
//	)
//
// # Configuration
//
//   - WithDevelopment / WithProduction – presets for local and deployed use.
//   - WithFormat / WithTextFormatter / WithJSONFormatter – output format.
//   - WithLevel / WithLevelName – minimum level.
//   - WithAttr – static attributes.
//   - WithContextExtractors / WithContextValue – attributes pulled from context.
//
// Discard returns a logger that drops everything; libraries use it as their
// default so they stay silent unless the host passes a logger in.
//
// # Error Handling
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
