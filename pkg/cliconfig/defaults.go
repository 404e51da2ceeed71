package cliconfig

// DefaultPort is the default HTTP server port.
const DefaultPort = 8080

// DefaultReadTimeout is the default read timeout in seconds.
const DefaultReadTimeout = 30

// DefaultWriteTimeout is the default write timeout in seconds.
const DefaultWriteTimeout = 30

// DefaultSessionCookie is the default session cookie name.
const DefaultSessionCookie = "sessiontrace_session"

// DefaultSessionTTL is the default idle session lifetime in seconds.
const DefaultSessionTTL = 1800

// DefaultSweepInterval is the default expired-session sweep period in seconds.
const DefaultSweepInterval = 60

// DefaultMetrics is whether /metrics is served.
const DefaultMetrics = true

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// itoa converts an int to string without importing strconv.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	if i < 0 {
		return "-" + itoa(-i)
	}
	digits := make([]byte, 0, 10)
	for i > 0 {
		digits = append(digits, byte('0'+i%10))
		i /= 10
	}
	for left, right := 0, len(digits)-1; left < right; left, right = left+1, right-1 {
		digits[left], digits[right] = digits[right], digits[left]
	}
	return string(digits)
}

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Port:          DefaultPort,
		ReadTimeout:   DefaultReadTimeout,
		WriteTimeout:  DefaultWriteTimeout,
		SessionCookie: DefaultSessionCookie,
		SessionTTL:    DefaultSessionTTL,
		SweepInterval: DefaultSweepInterval,
		Metrics:       DefaultMetrics,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		Sources:       make(map[string]string),
	}

	// Mark all as default source
	for _, key := range Keys {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
