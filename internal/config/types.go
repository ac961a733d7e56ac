// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrInvalidEndpoint is the sentinel error wrapped by InvalidEndpointError.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Endpoint is the base URL of an Upload API deployment.
	// The zero value ("") is valid and means "use the default endpoint".
	Endpoint string

	// InvalidEndpointError is returned when an Endpoint value is not an
	// absolute http(s) URL. It wraps ErrInvalidEndpoint for errors.Is()
	// compatibility.
	InvalidEndpointError struct {
		Value Endpoint
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// APIKey is the API token sent as X-Api-Token on every request.
		APIKey string `json:"api_key" mapstructure:"api_key"`
		// Endpoint is the Upload API base URL.
		Endpoint Endpoint `json:"endpoint" mapstructure:"endpoint"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidEndpointError.
func (e *InvalidEndpointError) Error() string {
	return fmt.Sprintf("invalid endpoint %q: must be an absolute http(s) URL", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidEndpointError) Unwrap() error { return ErrInvalidEndpoint }

// String returns the string representation of the Endpoint.
func (ep Endpoint) String() string { return string(ep) }

// IsValid returns whether the Endpoint is empty or an absolute http(s) URL,
// and a list of validation errors if it is not.
func (ep Endpoint) IsValid() (bool, []error) {
	if ep == "" {
		return true, nil
	}
	u, err := url.Parse(strings.TrimSpace(string(ep)))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false, []error{&InvalidEndpointError{Value: ep}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap exposes ErrInvalidConfig and every field-level error, so callers
// can match either with errors.Is/As.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid returns whether the Config has valid fields. It delegates to
// Endpoint.IsValid(); APIKey and the UI bool fields need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Endpoint.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIKey:   "",
		Endpoint: "", // Empty means the client's default endpoint
		UI: UIConfig{
			Verbose: false,
		},
	}
}
