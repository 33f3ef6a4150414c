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

package util_test

import (
	"github.com/botobag/pokedex/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SuggestionList", func() {
	It("returns results when input is empty", func() {
		Expect(util.SuggestionList("", []string{"a"})).Should(Equal([]string{"a"}))
	})

	It("returns empty array when there are no options", func() {
		Expect(util.SuggestionList("input", []string{""})).Should(BeEmpty())
		Expect(util.SuggestionList("input", nil)).Should(BeEmpty())
	})

	It("returns options sorted based on similarity", func() {
		Expect(util.SuggestionList("abc", []string{"a", "ab", "abc"})).Should(Equal([]string{"abc", "ab"}))
	})

	It("considers case changes as a single edit", func() {
		Expect(util.SuggestionList("FAST", []string{"fast", "special"})).Should(Equal([]string{"fast"}))
	})

	It("considers a swap of two adjacent characters as distance 1", func() {
		Expect(util.SuggestionList("fsat", []string{"fast", "special"})).Should(Equal([]string{"fast"}))
	})
})

var _ = Describe("DidYouMean", func() {
	It("suggests similar options", func() {
		Expect(util.DidYouMean("fsat", []string{"fast", "special"})).Should(Equal(`; did you mean "fast"?`))
		Expect(util.DidYouMean("ab", []string{"a", "b"})).Should(Equal(`; did you mean "a" or "b"?`))
		Expect(util.DidYouMean("ab", []string{"a", "b", "abc"})).Should(Equal(`; did you mean "a", "b", or "abc"?`))
	})

	It("returns an empty string when nothing is similar", func() {
		Expect(util.DidYouMean("slow", []string{"fast", "special"})).Should(BeEmpty())
	})
})
