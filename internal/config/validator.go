package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the accepted log level values.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.BufferSize <= 0 {
		errs = append(errs, ValidationError{
			Field:   "buffer_size",
			Value:   c.BufferSize,
			Message: "must be a positive integer",
		})
	}
	if c.RenderIntervalMs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "render_interval_ms",
			Value:   c.RenderIntervalMs,
			Message: "must be a positive integer",
		})
	}
	if c.ShutdownTimeoutMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "shutdown_timeout_ms",
			Value:   c.ShutdownTimeoutMs,
			Message: "must not be negative",
		})
	}
	if c.LogLevel != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.LogLevel)) {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Value:   c.LogLevel,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errs
}
