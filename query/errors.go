// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package query

import (
	"errors"
	"fmt"
)

// ErrQuery is the parent error for all query errors.
var ErrQuery = errors.New("query")

var (
	// ErrUnmatchedStartParenthesis indicates an opening parenthesis that is
	// never closed.
	ErrUnmatchedStartParenthesis = fmt.Errorf("%w: unmatched start parenthesis", ErrQuery)

	// ErrUnmatchedEndParenthesis indicates a closing parenthesis without an
	// opening parenthesis.
	ErrUnmatchedEndParenthesis = fmt.Errorf("%w: unmatched end parenthesis", ErrQuery)

	// ErrHangingStartLogicalConnector indicates a logical connector with
	// nothing before it to connect to.
	ErrHangingStartLogicalConnector = fmt.Errorf("%w: hanging start logical connector", ErrQuery)

	// ErrHangingEndLogicalConnector indicates a logical connector with
	// nothing after it to connect to.
	ErrHangingEndLogicalConnector = fmt.Errorf("%w: hanging end logical connector", ErrQuery)

	// ErrMissingValueForKeyedQueryNode indicates a column key without a
	// value.
	ErrMissingValueForKeyedQueryNode = fmt.Errorf("%w: missing value for keyed query node", ErrQuery)

	// ErrMissingKeyAndValueForKeyedQueryNode indicates a bare key delimiter:
	// a ":" with whitespace or the end of its segment on both sides, as in
	// ":" or "foo :". Terms are separated by whitespace so such a delimiter
	// has neither a key nor a value of its own.
	ErrMissingKeyAndValueForKeyedQueryNode = fmt.Errorf("%w: missing key and value for keyed query node", ErrQuery)

	// ErrEmptyQuery indicates a query without any search terms.
	ErrEmptyQuery = fmt.Errorf("%w: empty query", ErrQuery)

	// ErrInvalidPattern indicates a search term that is not a valid regular
	// expression.
	ErrInvalidPattern = fmt.Errorf("%w: invalid pattern", ErrQuery)

	// ErrNotCompiled indicates that a query was used before being compiled.
	ErrNotCompiled = fmt.Errorf("%w: not compiled", ErrQuery)
)

// SyntaxError is an error in the query text.
type SyntaxError struct {
	// Err is one of the query sentinel errors.
	Err error

	// Text is the query text.
	Text string

	// Offset is the byte offset in Text where the error was detected.
	Offset int
}

// Error implements [error.Error].
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", e.Err, e.Offset, e.Text)
}

// Unwrap returns the underlying sentinel error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(err error, text string, offset int) error {
	return &SyntaxError{
		Err:    err,
		Text:   text,
		Offset: offset,
	}
}
