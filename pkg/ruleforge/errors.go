// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import (
	goerrors "github.com/go-errors/errors"
)

// Category names the fatal-diagnostic taxonomy from the error handling design.
type Category int

const (
	// UsageError covers unrecognized flags, malformed arguments, missing
	// script files, missing subcommand targets.
	UsageError Category = iota
	// RuleModelError covers merge conflicts, directory/file redefinition,
	// and accessor calls against rules that don't exist.
	RuleModelError
	// IOError covers failures opening scripts or writing artifacts.
	IOError
	// ScriptError wraps any exception raised by the embedded script.
	ScriptError
)

func (c Category) String() string {
	switch c {
	case UsageError:
		return "usage error"
	case RuleModelError:
		return "rule model error"
	case IOError:
		return "I/O error"
	case ScriptError:
		return "script error"
	default:
		return "error"
	}
}

// Error is a fatal diagnostic carrying a category and a stack trace
// (via go-errors/errors) captured at the point of construction.
type Error struct {
	Category Category
	inner    *goerrors.Error
}

func (e *Error) Error() string {
	return e.Category.String() + ": " + e.inner.Error()
}

// Stack returns the full stack trace captured when the error was created.
// The CLI prints this only when RULEFORGE_DEBUG is set.
func (e *Error) Stack() string {
	return e.inner.ErrorStack()
}

// Unwrap exposes the wrapped go-errors error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.inner
}

func newError(cat Category, format string, args ...interface{}) *Error {
	return &Error{Category: cat, inner: goerrors.Errorf(format, args...)}
}

// Usagef builds a usage Error.
func Usagef(format string, args ...interface{}) *Error { return newError(UsageError, format, args...) }

// RuleModelf builds a rule-model Error.
func RuleModelf(format string, args ...interface{}) *Error {
	return newError(RuleModelError, format, args...)
}

// IOf builds an I/O Error, naming the offending path verbatim.
func IOf(format string, args ...interface{}) *Error { return newError(IOError, format, args...) }

// Scriptf builds a user-script Error, naming the script and original message.
func Scriptf(format string, args ...interface{}) *Error { return newError(ScriptError, format, args...) }

// WrapIO wraps an underlying I/O failure with the offending path.
func WrapIO(path string, err error) *Error {
	return &Error{Category: IOError, inner: goerrors.WrapPrefix(err, path, 0)}
}
