package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "grid.flash_delay_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of valid theme names.
// This list must match styles.BuiltinThemes (defined separately to avoid
// importing the terminal host).
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// ValidStyleProperties returns the style properties class styles may set.
// This list must match what styles.FromCSS understands.
func ValidStyleProperties() []string {
	return []string{"color", "background", "background-color", "font-weight", "font-style", "text-decoration", "text-align"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateGrid()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateTemplates()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// Upper bound for animation delays; anything longer is a typo.
const maxDelayMs = 60000

// validateGrid validates the GridConfig
func (c *Config) validateGrid() []ValidationError {
	var errors []ValidationError

	delays := []struct {
		field string
		value int
	}{
		{"grid.flash_delay_ms", c.Grid.FlashDelayMs},
		{"grid.fade_delay_ms", c.Grid.FadeDelayMs},
	}
	for _, d := range delays {
		if d.value < 0 {
			errors = append(errors, ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: "must be non-negative",
			})
		}
		if d.value > maxDelayMs {
			errors = append(errors, ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: fmt.Sprintf("exceeds maximum of %dms", maxDelayMs),
			})
		}
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	// Column width validation (0 means use default, which is valid)
	const minColumnWidth = 3
	const maxColumnWidth = 200
	if c.TUI.ColumnWidth != 0 {
		if c.TUI.ColumnWidth < minColumnWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.column_width",
				Value:   c.TUI.ColumnWidth,
				Message: fmt.Sprintf("must be at least %d columns", minColumnWidth),
			})
		}
		if c.TUI.ColumnWidth > maxColumnWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.column_width",
				Value:   c.TUI.ColumnWidth,
				Message: fmt.Sprintf("exceeds maximum of %d columns", maxColumnWidth),
			})
		}
	}

	if c.TUI.DoubleClickMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "tui.double_click_ms",
			Value:   c.TUI.DoubleClickMs,
			Message: "must be positive",
		})
	}

	for command, spec := range c.TUI.Keys {
		if strings.TrimSpace(spec) == "" {
			errors = append(errors, ValidationError{
				Field:   "tui.keys." + command,
				Value:   spec,
				Message: "must not be empty",
			})
		}
	}

	for class, props := range c.TUI.ClassStyles {
		for prop := range props {
			if !slices.Contains(ValidStyleProperties(), strings.ToLower(prop)) {
				errors = append(errors, ValidationError{
					Field:   "tui.class_styles." + class,
					Value:   prop,
					Message: fmt.Sprintf("unsupported property, must be one of: %s", strings.Join(ValidStyleProperties(), ", ")),
				})
			}
		}
	}

	return errors
}

// validateTemplates validates the TemplatesConfig
func (c *Config) validateTemplates() []ValidationError {
	var errors []ValidationError

	if c.Templates.HTTPTimeoutMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "templates.http_timeout_ms",
			Value:   c.Templates.HTTPTimeoutMs,
			Message: "must be positive",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
