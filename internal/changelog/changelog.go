// SPDX-License-Identifier: MPL-2.0

// Package changelog reads changelog files and detects their format from the
// file extension. The Format values use the Upload API's literal strings;
// they are defined locally to avoid coupling this package to the API client.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FormatText is a plain-text changelog.
	FormatText Format = "text"
	// FormatHTML is an HTML changelog.
	FormatHTML Format = "html"
	// FormatMarkdown is a Markdown changelog.
	FormatMarkdown Format = "markdown"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid changelog format")

type (
	// Format identifies how the changelog text is marked up.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	// It wraps ErrInvalidFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value Format
	}
)

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid changelog format %q (valid: text, html, markdown)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the defined formats,
// and a list of validation errors if it is not.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatText, FormatHTML, FormatMarkdown:
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if valid, errs := f.IsValid(); !valid {
		return "", errs[0]
	}
	return f, nil
}

// DetectFormat guesses the changelog format from the file extension:
// .html is HTML, .md is Markdown, everything else is plain text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html":
		return FormatHTML
	case ".md":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// Read returns the full changelog text from the given file.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return string(data), nil
}
