// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a client supplied "X-Request-ID" header when it is a
// short alphanumeric token and otherwise generates a UUIDv4. The id is stored
// in the request context, echoed in the response header and, through
// LoggerExtractor, added to every log record written with that context.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
