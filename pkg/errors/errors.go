// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package errors defines common error types used at the engine's outer
// boundaries (the CLI and the C-ABI handle table). Execution failures from
// a running Frame use vm.Failure instead; this package is for the layers
// that sit outside a single EVM run.
package errors

import (
	"errors"
	"fmt"
)

// =====================
// Handle-table Errors
// =====================

var (
	// ErrInvalidHandle is returned when a handle passed across the C-ABI
	// boundary does not refer to a live object.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrHandleNotFound is returned when a handle was never allocated or
	// has already been freed.
	ErrHandleNotFound = errors.New("handle not found")
)

// =====================
// Input Errors
// =====================

var (
	// ErrInvalidHexInput is returned when a caller-supplied byte string is
	// not valid hex.
	ErrInvalidHexInput = errors.New("invalid hex input")

	// ErrMissingArgument is returned when a required CLI flag or argument
	// is absent.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrUnknownCommand is returned when a CLI subcommand does not exist.
	ErrUnknownCommand = errors.New("unknown command")
)

// =====================
// Helper Functions
// =====================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}

