// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The package aims to standardise structured logging across services by
// exposing a single factory, New, that creates a *slog.Logger configured by
// a set of Option functions. These options allow you to:
//
//   • Select an output format (text or json)
//   • Set the minimum log level
//   • Supply default slog.Attr values applied to every record
//   • Register ContextExtractor callbacks that inject attributes pulled from a
//     context value (for example a request id) every time Handle is invoked.
//
// # Architecture
//
// Logger builds a decorated slog.Handler. First, New determines the concrete
// slog.Handler implementation (slog.NewTextHandler or slog.NewJSONHandler)
// based on the configured Format. It then wraps the handler with
// LogHandlerDecorator which is responsible for executing any registered
// ContextExtractor callbacks before delegating to the underlying handler.
//
// Helper constructors such as Group, Error, LeadID or IPHash live in attr.go
// and keep attribute names consistent across the codebase. Personal data is
// only ever logged through the *Hash helpers.
//
// # Usage
//
//	import "github.com/northlight/website/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithEnvironment(environment.Production, "website"),
//	        logger.WithContextExtractors(requestid.LoggerExtractor()),
//	    )
//	    logger.SetAsDefault(log)
//
//	    log.InfoContext(ctx, "lead stored",
//	        logger.LeadID(lead.ID),
//	        logger.EmailHash(hasher.Email(email)),
//	    )
//	}
//
// # Configuration
//
// The behaviour of New can be tuned with a few Option helpers:
//
//   • WithEnvironment: JSON at info level for production and staging, text at
//     debug level otherwise, plus service and env attributes.
//   • WithConfig: LOG_LEVEL and LOG_FORMAT overrides loaded through pkg/config.
//   • WithLevel, WithOutput, WithAttr: direct overrides.
//   • WithContextExtractors: inject attributes from context.
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil allowing calls like:
//
//	log.Info("operation succeeded", logger.Error(err))
//
// without an additional nil check.

package logger
