/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
)

// ErrorPresenter presents an error to a http.ResponseWriter.
type ErrorPresenter interface {
	// Write sends the given error to w.
	Write(w http.ResponseWriter, r *http.Request, err error)
}

// Errors by DefaultRequestBuilder.Build

// ErrEmptyQuery describes an error when an empty query is not allowed.
type ErrEmptyQuery struct {
	Request *http.Request
}

// Error implements Go's error interface.
func (err ErrEmptyQuery) Error() string {
	return "empty query"
}

// ErrParseQuery describes an invalid GraphQL query document that failed parsing.
type ErrParseQuery struct {
	Request       *http.Request
	ParsedRequest *HTTPRequest
	Err           error
}

// Error implements Go's error interface.
func (err *ErrParseQuery) Error() string {
	return "invalid query: " + err.Err.Error()
}

// Unwrap returns the error from parser.
func (err *ErrParseQuery) Unwrap() error {
	return err.Err
}

// ErrValidate indicates that a query document doesn't conform to the schema.
type ErrValidate struct {
	Request       *http.Request
	ParsedRequest *HTTPRequest
	Document      *ast.Document
	Errs          []gqlerrors.FormattedError
}

// Error implements Go's error interface.
func (err *ErrValidate) Error() string {
	var buf strings.Builder
	buf.WriteString("query failed validation because of following error(s): \n")
	for _, e := range err.Errs {
		buf.WriteRune('\t')
		buf.WriteString(e.Message)
		buf.WriteRune('\n')
	}
	return buf.String()
}

// ErrMethodNotAllowed is returned when a request that is not sent with POST selects an operation
// which is only allowed from a POST request (i.e., a mutation).
type ErrMethodNotAllowed struct {
	Request       *http.Request
	ParsedRequest *HTTPRequest
	OperationType string
}

// Error implements Go's error interface.
func (err *ErrMethodNotAllowed) Error() string {
	return "Can only perform a " + err.OperationType + " operation from a POST request."
}

// DefaultErrorPresenter implements an ErrorPresenter which is default used by HTTP handler when no
// error presenter is provided.
type DefaultErrorPresenter struct {
	// ResultPresenter is used to present ErrValidate.Errs in a graphql.Result.
	ResultPresenter ResultPresenter
}

// Write implements ErrorPresenter.
func (presenter DefaultErrorPresenter) Write(w http.ResponseWriter, r *http.Request, err error) {
	switch err := err.(type) {
	case *ErrValidate:
		presenter.ResultPresenter.Write(w, r, &graphql.Result{
			Errors: err.Errs,
		})

	case *ErrMethodNotAllowed:
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, err.Error(), http.StatusMethodNotAllowed)

	case ErrEmptyQuery, *ErrParseQuery, *HTTPRequestParseError:
		http.Error(w, err.Error(), http.StatusBadRequest)

	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
