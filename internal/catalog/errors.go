// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPageSize is returned when a page size below 1 is requested.
	ErrInvalidPageSize = errors.New("page size must be at least 1")
	// ErrMissingField is returned when a required input field is empty.
	ErrMissingField = errors.New("required field missing")
)

// FieldError names the required field that failed validation.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

// Unwrap lets errors.Is match ErrMissingField.
func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
