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

// Package util contains helpers shared by the packages of the module.
package util

import (
	"math"
	"sort"
	"strings"
)

// SuggestionList given an invalid input string and a list of valid options, returns a filtered
// list of valid options sorted based on their similarity with the input.
func SuggestionList(input string, options []string) []string {
	type candidate struct {
		option   string
		distance int
	}

	var candidates []candidate
	inputThreshold := float64(len(input)) / 2.0
	for _, option := range options {
		distance := lexicalDistance(input, option)
		threshold := math.Max(math.Max(inputThreshold, float64(len(option))/2.0), 1)
		if float64(distance) <= threshold {
			candidates = append(candidates, candidate{option, distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = c.option
	}
	return result
}

// DidYouMean returns a hint like `; did you mean "fast" or "special"?` that lists the options
// similar to input. It returns an empty string if none is similar.
func DidYouMean(input string, options []string) string {
	suggestions := SuggestionList(input, options)
	if len(suggestions) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("; did you mean ")
	orList(&buf, suggestions)
	buf.WriteString("?")
	return buf.String()
}

// orList writes items as `"A", "B", or "C"` to buf.
func orList(buf *strings.Builder, items []string) {
	for i, item := range items {
		if i > 0 {
			if len(items) > 2 {
				buf.WriteString(", ")
			} else {
				buf.WriteString(" ")
			}
			if i == len(items)-1 {
				buf.WriteString("or ")
			}
		}
		buf.WriteString(`"`)
		buf.WriteString(item)
		buf.WriteString(`"`)
	}
}

// Computes the lexical distance between strings A and B.
//
// The "distance" between two strings is given by counting the minimum number of edits needed to
// transform string A into string B. An edit can be an insertion, deletion, or substitution of a
// single character, or a swap of two adjacent characters. A change of case counts as a single edit
// for the whole string.
func lexicalDistance(aStr string, bStr string) int {
	if aStr == bStr {
		return 0
	}

	a := strings.ToLower(aStr)
	b := strings.ToLower(bStr)
	if a == b {
		return 1
	}

	// d[i][j] is the distance between a[:i] and b[:j].
	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
		d[i][0] = i
	}
	for j := 1; j <= len(b); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			best := minInt(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			// Adjacent swap
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				best = minInt(best, d[i-2][j-2]+cost)
			}
			d[i][j] = best
		}
	}

	return d[len(a)][len(b)]
}

func minInt(first int, rest ...int) int {
	result := first
	for _, v := range rest {
		if v < result {
			result = v
		}
	}
	return result
}
