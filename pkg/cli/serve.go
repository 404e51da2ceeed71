package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getmockd/sessiontrace/pkg/cli/internal/output"
	"github.com/getmockd/sessiontrace/pkg/cliconfig"
	"github.com/getmockd/sessiontrace/pkg/logging"
	"github.com/getmockd/sessiontrace/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// serveFlags holds the values bound to serve's cobra flags.
type serveFlags struct {
	port          int
	readTimeout   int
	writeTimeout  int
	sessionCookie string
	sessionTTL    int
	sweepInterval int
	cookieSecure  bool
	metrics       bool
	logLevel      string
	logFormat     string
	logFile       string
	verbose       bool
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (foreground)",
		Long: `Start the sessiontrace HTTP server.

Every request gets a fresh X-Request-ID. Browsers receive a session cookie
holding a random session identifier; log lines carry only its short form.

Endpoints:
  GET /         {"session": "<short>", "request": "<request id>"}
  GET /health   {"status": "ok"}
  GET /metrics  Prometheus text format (disable with --metrics=false)`,
		Example: `  # Start with defaults
  sessiontrace serve

  # Custom port, JSON logs also written to a file
  sessiontrace serve --port 3000 --log-format json --log-file trace.log

  # Short-lived sessions behind TLS termination
  sessiontrace serve --session-ttl 300 --cookie-secure`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.LoadAll()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			applyServeFlags(cmd.Flags(), f, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd.ErrOrStderr(), cfg)
		},
	}

	bindServeFlags(cmd.Flags(), f)
	return cmd
}

// bindServeFlags registers serve's flags on fs, storing values in f.
func bindServeFlags(flags *pflag.FlagSet, f *serveFlags) {
	flags.IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "HTTP server port")
	flags.IntVar(&f.readTimeout, "read-timeout", cliconfig.DefaultReadTimeout, "Read timeout in seconds")
	flags.IntVar(&f.writeTimeout, "write-timeout", cliconfig.DefaultWriteTimeout, "Write timeout in seconds")
	flags.StringVar(&f.sessionCookie, "session-cookie", cliconfig.DefaultSessionCookie, "Session cookie name")
	flags.IntVar(&f.sessionTTL, "session-ttl", cliconfig.DefaultSessionTTL, "Idle session lifetime in seconds (0 = no expiry)")
	flags.IntVar(&f.sweepInterval, "sweep-interval", cliconfig.DefaultSweepInterval, "Expired session sweep period in seconds (0 = never)")
	flags.BoolVar(&f.cookieSecure, "cookie-secure", false, "Mark the session cookie Secure")
	flags.BoolVar(&f.metrics, "metrics", cliconfig.DefaultMetrics, "Serve Prometheus metrics on /metrics")
	flags.StringVar(&f.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&f.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	flags.StringVar(&f.logFile, "log-file", "", "Also write JSON logs to this file")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Shorthand for --log-level debug")
}

// applyServeFlags copies explicitly set flags over cfg, marking them as
// flag-sourced. Flags left at their defaults do not override files or env.
func applyServeFlags(fs *pflag.FlagSet, f *serveFlags, cfg *cliconfig.CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}
	set := func(flag, key string, apply func()) {
		if fs.Changed(flag) {
			apply()
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}

	set("port", "port", func() { cfg.Port = f.port })
	set("read-timeout", "readTimeout", func() { cfg.ReadTimeout = f.readTimeout })
	set("write-timeout", "writeTimeout", func() { cfg.WriteTimeout = f.writeTimeout })
	set("session-cookie", "sessionCookie", func() { cfg.SessionCookie = f.sessionCookie })
	set("session-ttl", "sessionTTL", func() { cfg.SessionTTL = f.sessionTTL })
	set("sweep-interval", "sweepInterval", func() { cfg.SweepInterval = f.sweepInterval })
	set("cookie-secure", "cookieSecure", func() { cfg.CookieSecure = f.cookieSecure })
	set("metrics", "metrics", func() { cfg.Metrics = f.metrics })
	set("log-level", "logLevel", func() { cfg.LogLevel = f.logLevel })
	set("log-format", "logFormat", func() { cfg.LogFormat = f.logFormat })
	set("log-file", "logFile", func() { cfg.LogFile = f.logFile })
	set("verbose", "verbose", func() { cfg.Verbose = f.verbose })
}

// serverConfig converts CLI configuration into server settings.
func serverConfig(cfg *cliconfig.CLIConfig) server.Config {
	return server.Config{
		Port:          cfg.Port,
		ReadTimeout:   cfg.ReadTimeout,
		WriteTimeout:  cfg.WriteTimeout,
		SessionCookie: cfg.SessionCookie,
		SessionTTL:    time.Duration(cfg.SessionTTL) * time.Second,
		SweepInterval: time.Duration(cfg.SweepInterval) * time.Second,
		CookieSecure:  cfg.CookieSecure,
		Metrics:       cfg.Metrics,
	}
}

// loggingConfig converts CLI configuration into logger settings.
// Verbose forces debug level.
func loggingConfig(cfg *cliconfig.CLIConfig, out, file io.Writer) logging.Config {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = logging.LevelDebug
	}
	return logging.Config{
		Level:  level,
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: out,
		File:   file,
	}
}

// runServe starts the server and blocks until ctx is done, then shuts down.
func runServe(ctx context.Context, stderr io.Writer, cfg *cliconfig.CLIConfig) error {
	var file *os.File
	if cfg.LogFile != "" {
		var err error
		file, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				output.Warn("failed to close log file: %v", err)
			}
		}()
	}

	var fileWriter io.Writer
	if file != nil {
		fileWriter = file
	}
	log := logging.New(loggingConfig(cfg, stderr, fileWriter))

	srv := server.New(serverConfig(cfg), server.WithLogger(log))
	if err := srv.Start(); err != nil {
		return err
	}
	log.Info("sessiontrace ready", "addr", srv.Addr(), "metrics", cfg.Metrics)

	<-ctx.Done()
	log.Info("shutting down", "timeout", shutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.Any("error", err))
		return err
	}
	return nil
}
