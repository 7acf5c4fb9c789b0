// Package httpserver runs the service's HTTP listener with graceful
// shutdown and provides liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled, the process receives SIGINT or SIGTERM,
// or Shutdown is called. In-flight requests get Config.ShutdownTimeout to
// finish; their contexts keep the values of ctx but not its cancellation.
//
// Readiness takes named checks such as a lead store or Redis ping and reports
// per-check status without exposing error details.
package httpserver
