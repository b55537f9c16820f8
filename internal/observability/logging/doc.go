// Package logging builds the process-wide slog logger and carries
// request-scoped loggers through context.
//
// LOG_FORMAT selects json (default) or text output; LOG_LEVEL selects
// debug, info (default), warn or error.
//
//	logger := logging.NewFromEnv(os.Stdout)
//	slog.SetDefault(logger)
//
//	func render(ctx context.Context) {
//	    log := logging.WithRequestID(ctx, logging.FromContext(ctx))
//	    log.Info("rendering feed")
//	}
package logging
