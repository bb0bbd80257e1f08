// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package preprocessor

import "github.com/ca-jiezhang/btcc/pkg/util/source"

// ErrorKind distinguishes the failure classes a preprocessing run can
// produce.
type ErrorKind uint

// LexError indicates an unterminated string literal.
const LexError ErrorKind = 0

// ParseError indicates a malformed directive, an unterminated macro block, or
// a stray %end.
const ParseError ErrorKind = 1

// DuplicateDefinitionError indicates a name collision among constants and
// macros.
const DuplicateDefinitionError ErrorKind = 2

// UndefinedMacroError indicates a %call naming an unknown macro.
const UndefinedMacroError ErrorKind = 3

// ArityMismatchError indicates a %call whose argument count differs from the
// macro's parameter count.
const ArityMismatchError ErrorKind = 4

// RecursionLimitError indicates macro (or constant) expansion exceeding the
// configured depth ceiling.
const RecursionLimitError ErrorKind = 5

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	case DuplicateDefinitionError:
		return "duplicate definition"
	case UndefinedMacroError:
		return "undefined macro"
	case ArityMismatchError:
		return "arity mismatch"
	case RecursionLimitError:
		return "recursion limit exceeded"
	default:
		return "unknown error"
	}
}

// Error is a structured preprocessing error.  Every error carries a kind, the
// span of the offending token within its source file and, for definition and
// macro related errors, the offending name.  Preprocessing stops at the first
// error; there is no partial output.
type Error struct {
	kind ErrorKind
	// Name of the offending constant or macro, where applicable.
	name string
	// Underlying positioned error.
	err *source.SyntaxError
}

// errorAt constructs an error of a given kind reported against a given token.
func errorAt(kind ErrorKind, tok Token, name string, msg string) *Error {
	return &Error{kind, name, tok.File.SyntaxError(tok.Span, msg)}
}

// Kind returns the failure class of this error.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Name returns the offending constant or macro name, or "" when the error
// does not concern a specific definition.
func (e *Error) Name() string {
	return e.name
}

// Span returns the span of the offending token in the original source.
func (e *Error) Span() source.Span {
	return e.err.Span()
}

// Message returns the error message, without positional information.
func (e *Error) Message() string {
	return e.err.Message()
}

// SourceError exposes the underlying positioned error, allowing callers to
// highlight the enclosing source line.
func (e *Error) SourceError() *source.SyntaxError {
	return e.err
}

// Error implements the error interface, reporting "file:line:col: message".
func (e *Error) Error() string {
	return e.err.Error()
}
