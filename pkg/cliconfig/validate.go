package cliconfig

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	maxTimeout    = 3600
	maxSessionTTL = 7 * 24 * 3600
)

// Validate range-checks the configuration. Every problem is reported, joined
// into a single error.
func (c *CLIConfig) Validate() error {
	var errs []error

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range (0-65535)", c.Port))
	}
	if c.ReadTimeout < 0 || c.ReadTimeout > maxTimeout {
		errs = append(errs, fmt.Errorf("readTimeout %d is out of range (0-%d)", c.ReadTimeout, maxTimeout))
	}
	if c.WriteTimeout < 0 || c.WriteTimeout > maxTimeout {
		errs = append(errs, fmt.Errorf("writeTimeout %d is out of range (0-%d)", c.WriteTimeout, maxTimeout))
	}
	if c.SessionTTL < 0 || c.SessionTTL > maxSessionTTL {
		errs = append(errs, fmt.Errorf("sessionTTL %d is out of range (0-%d)", c.SessionTTL, maxSessionTTL))
	}
	if c.SweepInterval < 0 || c.SweepInterval > maxTimeout {
		errs = append(errs, fmt.Errorf("sweepInterval %d is out of range (0-%d)", c.SweepInterval, maxTimeout))
	}
	if c.SessionCookie != "" && !validCookieName(c.SessionCookie) {
		errs = append(errs, fmt.Errorf("sessionCookie %q is not a valid cookie name", c.SessionCookie))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat))
	}

	return errors.Join(errs...)
}

// validCookieName reports whether name is an RFC 6265 token.
func validCookieName(name string) bool {
	c := &http.Cookie{Name: name, Value: "x"}
	return c.Valid() == nil
}
