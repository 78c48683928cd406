// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package strapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/janderssonse/appstore/internal/domain"
	"github.com/tidwall/gjson"
)

// NetworkErrorMessage is reported when no response was received.
const NetworkErrorMessage = "Network error - please check your connection"

// APIError is returned for every failed call to the content service.
type APIError struct {
	// Status is the HTTP status, or 0 when no response arrived.
	Status    int
	Message   string
	Details   []byte
	RequestID string

	kind  error
	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.cause)
		}

		return e.Message
	}

	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Unwrap exposes the matching domain sentinel and the transport cause.
func (e *APIError) Unwrap() []error {
	var errs []error
	if e.kind != nil {
		errs = append(errs, e.kind)
	}

	if e.cause != nil {
		errs = append(errs, e.cause)
	}

	return errs
}

// newStatusError builds the error for an HTTP error response. The message is
// the body's error.message, then the reason phrase, then "HTTP <code>".
func newStatusError(resp *http.Response, body []byte, requestID string) *APIError {
	message := gjson.GetBytes(body, "error.message").String()

	if message == "" {
		message = strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	}

	if message == "" {
		message = "HTTP " + strconv.Itoa(resp.StatusCode)
	}

	return &APIError{
		Status:    resp.StatusCode,
		Message:   message,
		Details:   body,
		RequestID: requestID,
		kind:      kindForStatus(resp.StatusCode),
	}
}

func newTransportError(cause error, requestID string) *APIError {
	return &APIError{
		Message:   NetworkErrorMessage,
		RequestID: requestID,
		kind:      domain.ErrNetworkFailure,
		cause:     cause,
	}
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.ErrNetworkFailure
	default:
		return nil
	}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}

	return 0
}
