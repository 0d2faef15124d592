package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "list.sort")
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

// ValidSortParams returns the list of valid list sort parameters
func ValidSortParams() []string {
	return []string{"priority", "due"}
}

// ValidSortOrders returns the list of valid list sort directions
func ValidSortOrders() []string {
	return []string{"ascending", "descending"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateData()...)
	errors = append(errors, c.validateList()...)
	errors = append(errors, c.validateMail()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateData validates the DataConfig
func (c *Config) validateData() []ValidationError {
	var errors []ValidationError

	if c.Data.StoreFile == "" {
		errors = append(errors, ValidationError{
			Field:   "data.store_file",
			Value:   c.Data.StoreFile,
			Message: "must not be empty",
		})
	}
	if strings.ContainsAny(c.Data.StoreFile, "/\\") {
		errors = append(errors, ValidationError{
			Field:   "data.store_file",
			Value:   c.Data.StoreFile,
			Message: "must be a bare file name, not a path",
		})
	}

	return errors
}

// validateList validates the ListConfig
func (c *Config) validateList() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidSortParams(), c.List.Sort) {
		errors = append(errors, ValidationError{
			Field:   "list.sort",
			Value:   c.List.Sort,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidSortParams(), ", ")),
		})
	}
	if !slices.Contains(ValidSortOrders(), c.List.Order) {
		errors = append(errors, ValidationError{
			Field:   "list.order",
			Value:   c.List.Order,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidSortOrders(), ", ")),
		})
	}

	return errors
}

// validateMail validates the MailConfig
func (c *Config) validateMail() []ValidationError {
	var errors []ValidationError

	if c.Mail.From == "" {
		errors = append(errors, ValidationError{
			Field:   "mail.from",
			Value:   c.Mail.From,
			Message: "must not be empty",
		})
	}
	if c.Mail.InboundMarker == "" {
		errors = append(errors, ValidationError{
			Field:   "mail.inbound_marker",
			Value:   c.Mail.InboundMarker,
			Message: "must not be empty",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
