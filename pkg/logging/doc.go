// Package logging provides structured logging configuration for sessiontrace.
//
// This package wraps log/slog to provide consistent logging across all
// components. It supports configurable log levels and output formats, an
// optional JSON file copy of every record, and per-request correlation
// attributes.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 4380)
//
// # Correlation
//
// Middleware attaches correlation attributes to the request context with
// ContextWithAttrs. Loggers built by New append those attributes to every
// record logged with a *Context method:
//
//	ctx = logging.ContextWithAttrs(ctx, slog.String("request", rid))
//	logger.InfoContext(ctx, "request completed")
//	// ... request=r_7a9f2c3d
//
// Only opaque identifiers (short session id, request id) are attached.
// Nothing that identifies a person belongs in these attributes.
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via an
// option. If no logger is provided, use logging.Nop().
package logging
