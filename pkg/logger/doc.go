// Package logger builds configured log/slog loggers with context-aware
// attribute injection.
//
// The factory applies environment presets (JSON at info level in
// production, text at debug level in development) and wraps the handler so
// registered ContextExtractors can attach request-scoped attributes, such
// as the organization ID placed in context by the tenant middleware:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "clinicore"),
//	    logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
package logger
