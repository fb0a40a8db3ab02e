/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lsql

import (
	"errors"
	"fmt"
)

// ErrorType classifies a per-line parse failure.
type ErrorType int

const (
	// ErrorTypeSyntax covers malformed lines: missing or extra arguments,
	// bad integers, unknown headers, operators, or formats.
	ErrorTypeSyntax ErrorType = iota
	// ErrorTypeSemantic covers well-formed lines that reference unknown
	// columns, users, or wait objects, and filter-stack underflow.
	ErrorTypeSemantic
)

// ParseError is one captured header-line failure. The query keeps parsing
// after recording it; the response carries the first error with a
// bad_request status.
type ParseError struct {
	Type    ErrorType
	Header  string
	Table   string
	Message string
}

// Error renders the protocol error string.
func (e *ParseError) Error() string {
	return fmt.Sprintf("while processing header '%s' for table '%s': %s",
		e.Header, e.Table, e.Message)
}

// syntaxError tags failures from the syntax class that are not created
// by the argument lexers, e.g. unknown operators or output formats.
type syntaxError struct{ err error }

func (e syntaxError) Error() string { return e.err.Error() }
func (e syntaxError) Unwrap() error { return e.err }

func markSyntax(err error) error { return syntaxError{err: err} }

// newParseError wraps a sub-parser failure, classifying lexical failures
// and failures tagged by markSyntax as syntax errors and everything else
// as semantic.
func newParseError(header, tableName string, err error) *ParseError {
	errorType := ErrorTypeSemantic
	var tagged syntaxError
	if errors.Is(err, errMissingArgument) || errors.Is(err, errExpectedNonNegInt) ||
		errors.Is(err, errSuperfluousArgument) || errors.As(err, &tagged) {
		errorType = ErrorTypeSyntax
	}
	return &ParseError{
		Type:    errorType,
		Header:  header,
		Table:   tableName,
		Message: err.Error(),
	}
}
