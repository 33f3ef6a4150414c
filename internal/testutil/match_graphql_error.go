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

package testutil

import (
	"github.com/graphql-go/graphql/language/location"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gstruct"
	"github.com/onsi/gomega/types"
)

// ErrorFieldsMatcher sets up fields to match.
type ErrorFieldsMatcher func(gstruct.Fields)

// MessageContainSubstring matches message in a gqlerrors.FormattedError to contain the specified
// string.
func MessageContainSubstring(s string) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Message"] = gomega.ContainSubstring(s)
	}
}

// LocationEqual matches the locations in the error to contain the only specified location.
func LocationEqual(line int, column int) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Locations"] = gomega.Equal([]location.SourceLocation{{Line: line, Column: column}})
	}
}

// PathEqual matches the response path in the error.
func PathEqual(path ...interface{}) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Path"] = gomega.Equal(path)
	}
}

// MatchGraphQLError matches a gqlerrors.FormattedError with given fields.
//
// The following example matches an error including "Syntax Error" in the message and reported at
// line 1, column 3.
//
//	Expect(err).Should(MatchGraphQLError(
//		MessageContainSubstring("Syntax Error"),
//		LocationEqual(1, 3),
//	))
func MatchGraphQLError(matchers ...ErrorFieldsMatcher) types.GomegaMatcher {
	fields := gstruct.Fields{}
	for _, matcher := range matchers {
		matcher(fields)
	}
	return gstruct.MatchFields(gstruct.IgnoreExtras, fields)
}

// ConsistOfGraphQLErrors matches a []gqlerrors.FormattedError with Gomega's ConsistOf.
//
//	Expect(result.Errors).Should(ConsistOfGraphQLErrors(
//		MatchGraphQLError(
//			MessageContainSubstring("First error"),
//		),
//		MatchGraphQLError(
//			MessageContainSubstring("Second error"),
//		),
//	))
func ConsistOfGraphQLErrors(matchers ...interface{}) types.GomegaMatcher {
	return gomega.ConsistOf(matchers...)
}
