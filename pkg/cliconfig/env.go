package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvPort          = "SESSIONTRACE_PORT"
	EnvReadTimeout   = "SESSIONTRACE_READ_TIMEOUT"
	EnvWriteTimeout  = "SESSIONTRACE_WRITE_TIMEOUT"
	EnvSessionCookie = "SESSIONTRACE_SESSION_COOKIE"
	EnvSessionTTL    = "SESSIONTRACE_SESSION_TTL"
	EnvSweepInterval = "SESSIONTRACE_SWEEP_INTERVAL"
	EnvCookieSecure  = "SESSIONTRACE_COOKIE_SECURE"
	EnvMetrics       = "SESSIONTRACE_METRICS"
	EnvLogLevel      = "SESSIONTRACE_LOG_LEVEL"
	EnvLogFormat     = "SESSIONTRACE_LOG_FORMAT"
	EnvLogFile       = "SESSIONTRACE_LOG_FILE"
	EnvVerbose       = "SESSIONTRACE_VERBOSE"
	EnvJSON          = "SESSIONTRACE_JSON"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment; integers that
// fail to parse are ignored.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	envInt(cfg, &cfg.Port, EnvPort, "port")
	envInt(cfg, &cfg.ReadTimeout, EnvReadTimeout, "readTimeout")
	envInt(cfg, &cfg.WriteTimeout, EnvWriteTimeout, "writeTimeout")
	envInt(cfg, &cfg.SessionTTL, EnvSessionTTL, "sessionTTL")
	envInt(cfg, &cfg.SweepInterval, EnvSweepInterval, "sweepInterval")

	envString(cfg, &cfg.SessionCookie, EnvSessionCookie, "sessionCookie")
	envString(cfg, &cfg.LogLevel, EnvLogLevel, "logLevel")
	envString(cfg, &cfg.LogFormat, EnvLogFormat, "logFormat")
	envString(cfg, &cfg.LogFile, EnvLogFile, "logFile")

	envBool(cfg, &cfg.CookieSecure, EnvCookieSecure, "cookieSecure")
	envBool(cfg, &cfg.Metrics, EnvMetrics, "metrics")
	envBool(cfg, &cfg.Verbose, EnvVerbose, "verbose")
	envBool(cfg, &cfg.JSON, EnvJSON, "json")
}

func envInt(cfg *CLIConfig, dst *int, name, key string) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
			cfg.Sources[key] = SourceEnv
		}
	}
}

func envString(cfg *CLIConfig, dst *string, name, key string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
		cfg.Sources[key] = SourceEnv
	}
}

func envBool(cfg *CLIConfig, dst *bool, name, key string) {
	if v := os.Getenv(name); v != "" {
		*dst = v == "true" || v == "1" || v == "yes"
		cfg.Sources[key] = SourceEnv
	}
}
