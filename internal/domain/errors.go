// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/janderssonse/appstore/internal/catalog"
)

// Common domain errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrNetworkFailure = errors.New("network failure")
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNoTerminal     = errors.New("not running in a terminal")
)

// Exit codes following Unix conventions.
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // General errors
	ExitUsageError      = 2  // Invalid arguments/usage
	ExitConfigError     = 3  // Configuration issues
	ExitPermissionError = 4  // Rejected credentials
	ExitNotFoundError   = 5  // Application or category not found
	ExitNetworkError    = 11 // Content service unreachable
	ExitSystemError     = 12 // Disk space, filesystem issues
	ExitTimeoutError    = 13 // Request deadline exceeded
	ExitInterruptError  = 14 // User Ctrl+C interrupt
	ExitCatalogError    = 22 // Catalog write rejected
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor picks the exit code that best describes err. fallback is used
// when nothing more specific applies.
func ExitCodeFor(err error, fallback int) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNotFound):
		return ExitNotFoundError
	case errors.Is(err, ErrValidation), errors.Is(err, catalog.ErrMissingField), errors.Is(err, catalog.ErrInvalidPageSize):
		return ExitUsageError
	case errors.Is(err, ErrUnauthorized):
		return ExitPermissionError
	case isTimeout(err):
		return ExitTimeoutError
	case errors.Is(err, ErrNetworkFailure):
		return ExitNetworkError
	default:
		return fallback
	}
}

// isTimeout matches expired contexts and transport timeouts such as
// http.Client.Timeout or a response header timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
	ShowDetails bool     // Whether to show technical details
}

type errorMatcher struct {
	target   error
	patterns []string
	getInfo  func(subject string, verbose bool) ErrorInfo
}

func getErrorMatchers() []errorMatcher {
	return []errorMatcher{
		{
			target:   ErrUnauthorized,
			patterns: []string{"forbidden", "unauthorized"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "The content service rejected the credentials",
					Suggestions: []string{"Set api_token in the config file or APPSTORE_API_TOKEN"},
					ShowDetails: verbose,
				}
			},
		},
		{
			target:   ErrNetworkFailure,
			patterns: []string{"network", "connection", "timeout", "no such host"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Network error - please check your connection",
					Suggestions: []string{"Check that the content service is running", "Check --api-url or APPSTORE_API_URL"},
					ShowDetails: verbose,
				}
			},
		},
		{
			target:   ErrNotFound,
			patterns: []string{"not found"},
			getInfo: func(subject string, verbose bool) ErrorInfo {
				if subject != "" {
					return ErrorInfo{
						Message:     "'" + subject + "' not found",
						Suggestions: []string{"Use 'appstore apps list' to see available applications"},
						ShowDetails: verbose,
					}
				}

				return ErrorInfo{
					Message:     "Not found",
					Suggestions: []string{"Check the id and try again"},
					ShowDetails: verbose,
				}
			},
		},
		{
			target:   ErrValidation,
			patterns: []string{"required field missing", "validation"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "The request was rejected as invalid",
					Suggestions: []string{"Check the required fields and try again"},
					ShowDetails: true,
				}
			},
		},
	}
}

// GetErrorInfo analyzes an error and returns user-friendly information.
// Wrapped sentinels are matched first, then the error text.
func GetErrorInfo(err error, subject string, verbose bool) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	matchers := getErrorMatchers()

	for _, matcher := range matchers {
		if errors.Is(err, matcher.target) {
			return matcher.getInfo(subject, verbose)
		}
	}

	if errors.Is(err, catalog.ErrMissingField) {
		return matchers[len(matchers)-1].getInfo(subject, verbose)
	}

	errStr := strings.ToLower(err.Error())

	for _, matcher := range matchers {
		for _, pattern := range matcher.patterns {
			if strings.Contains(errStr, pattern) {
				return matcher.getInfo(subject, verbose)
			}
		}
	}

	return ErrorInfo{
		Message:     "Operation failed",
		Suggestions: []string{"Run with --verbose for more details"},
		ShowDetails: verbose,
	}
}

// FormatErrorMessage formats an error for display. action describes what was
// attempted, for example "load applications".
func FormatErrorMessage(err error, action, subject string, verbose bool) string {
	info := GetErrorInfo(err, subject, verbose)

	var result strings.Builder

	result.WriteString("✗ ")

	if action != "" {
		result.WriteString("Failed to ")
		result.WriteString(action)
		result.WriteString(": ")
	}

	result.WriteString(info.Message)

	if info.ShowDetails && err != nil {
		result.WriteString("\n  Technical details: ")
		result.WriteString(err.Error())
	}

	switch {
	case len(info.Suggestions) == 0:
	case !verbose:
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	default:
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
