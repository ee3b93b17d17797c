// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package errkind defines the closed error taxonomy surfaced at the
// liquid2 boundary: LexerError, SyntaxError, TypeError, NameError, and
// ExtensionError (reserved for host-provided tag extensions).
package errkind

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Kind is a closed tagged variant identifying the category of a liquid2
// error. It intentionally mirrors a flat enum rather than a class
// hierarchy (spec design note: model errors as a closed tagged variant).
type Kind string

const (
	// Lexer is a raw character-level recognition failure.
	Lexer Kind = "LexerError"
	// Syntax is a grammar violation: invalid literal, out-of-range
	// index/slice, unterminated escape, unclosed block, and so on.
	Syntax Kind = "SyntaxError"
	// Type is a JSONPath filter type-checking failure.
	Type Kind = "TypeError"
	// Name is a reference to an unknown JSONPath function.
	Name Kind = "NameError"
	// Extension is reserved for host-provided tag extensions; the core
	// never produces it.
	Extension Kind = "ExtensionError"
)

// Span is a byte-offset range into the source text being parsed, paired
// with the 1-indexed line/column of its start for human-readable
// diagnostics.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// Error is the error value returned at every liquid2 boundary operation.
// It wraps a samber/oops error so callers get structured context
// (oops.Code, oops.Context) for free, and adds a ULID so a hosting
// application can correlate a parse failure across its own logs.
type Error struct {
	ID   ulid.ULID
	Kind Kind
	Span Span
	err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.err.Error()
}

// Unwrap exposes the underlying oops error for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write `errors.Is(err, errkind.Syntax)`-shaped sentinels indirectly
// via errkind.Kind comparisons: see KindOf.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds an *Error of the given kind at the given span with a
// formatted message.
func New(kind Kind, span Span, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	built := oops.
		Code(string(kind)).
		With("byte_start", span.Start).
		With("byte_end", span.End).
		With("line", span.Line).
		With("column", span.Column).
		Errorf("%s: %s at %d:%d", kind, msg, span.Line, span.Column)
	return &Error{
		ID:   ulid.Make(),
		Kind: kind,
		Span: span,
		err:  built,
	}
}

// Wrap builds an *Error of the given kind at the given span, wrapping an
// underlying cause (e.g. a lower-level lexer failure bubbling into a
// SyntaxError at the template layer).
func Wrap(kind Kind, span Span, cause error, context string) *Error {
	built := oops.
		Code(string(kind)).
		With("byte_start", span.Start).
		With("byte_end", span.End).
		With("line", span.Line).
		With("column", span.Column).
		Wrapf(cause, "%s: %s", kind, context)
	return &Error{
		ID:   ulid.Make(),
		Kind: kind,
		Span: span,
		err:  built,
	}
}

// KindOf extracts the Kind from err if it is (or wraps) an *errkind.Error,
// reporting false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind, true
	}
	return "", false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// Syntaxf is a convenience constructor for the common SyntaxError case.
func Syntaxf(span Span, format string, args ...any) *Error {
	return New(Syntax, span, format, args...)
}

// Typef is a convenience constructor for the common TypeError case.
func Typef(span Span, format string, args ...any) *Error {
	return New(Type, span, format, args...)
}

// Namef is a convenience constructor for the common NameError case.
func Namef(span Span, format string, args ...any) *Error {
	return New(Name, span, format, args...)
}

// Lexerf is a convenience constructor for the common LexerError case.
func Lexerf(span Span, format string, args ...any) *Error {
	return New(Lexer, span, format, args...)
}
