// Package cliconfig provides configuration types and loading for the sessiontrace CLI.
package cliconfig

// CLIConfig represents the complete configuration for the sessiontrace CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.sessiontracerc.yaml in current directory)
// 4. Global config file (~/.config/sessiontrace/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Server settings
	Port         int `yaml:"port" json:"port"`
	ReadTimeout  int `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout int `yaml:"writeTimeout" json:"writeTimeout"`

	// Session settings
	SessionCookie string `yaml:"sessionCookie" json:"sessionCookie"`
	SessionTTL    int    `yaml:"sessionTTL" json:"sessionTTL"`
	SweepInterval int    `yaml:"sweepInterval" json:"sweepInterval"`
	CookieSecure  bool   `yaml:"cookieSecure" json:"cookieSecure"`

	// Metrics exposes /metrics when true.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Output settings
	Verbose bool `yaml:"verbose" json:"verbose"`
	JSON    bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records the keys present in a loaded file, so an explicit
	// false can be told apart from an absent boolean.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	"port",
	"readTimeout",
	"writeTimeout",
	"sessionCookie",
	"sessionTTL",
	"sweepInterval",
	"cookieSecure",
	"metrics",
	"logLevel",
	"logFormat",
	"logFile",
	"verbose",
	"json",
}

// Value returns the display form of the value stored under key, or "" for
// an unknown key.
func (c *CLIConfig) Value(key string) string {
	switch key {
	case "port":
		return itoa(c.Port)
	case "readTimeout":
		return itoa(c.ReadTimeout)
	case "writeTimeout":
		return itoa(c.WriteTimeout)
	case "sessionCookie":
		return c.SessionCookie
	case "sessionTTL":
		return itoa(c.SessionTTL)
	case "sweepInterval":
		return itoa(c.SweepInterval)
	case "cookieSecure":
		return formatBool(c.CookieSecure)
	case "metrics":
		return formatBool(c.Metrics)
	case "logLevel":
		return c.LogLevel
	case "logFormat":
		return c.LogFormat
	case "logFile":
		return c.LogFile
	case "verbose":
		return formatBool(c.Verbose)
	case "json":
		return formatBool(c.JSON)
	}
	return ""
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
