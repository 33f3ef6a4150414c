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

package pokedex

import (
	"errors"
	"fmt"

	"github.com/botobag/pokedex/internal/util"
)

// Errors returned by Store mutations. They're always wrapped with the details of the failed lookup
// and should be tested with errors.Is.
var (
	// ErrOutOfRange is returned when a mutation addresses a record that is not in the collection.
	// The mutation is aborted before anything is changed.
	ErrOutOfRange = errors.New("index out of range")

	// ErrUnknownCategory is returned when an attack mutation names a category other than "fast" and
	// "special".
	ErrUnknownCategory = errors.New("unknown attack category")
)

var categories = []string{CategoryFast, CategorySpecial}

// unknownCategory wraps ErrUnknownCategory with the failed operation and suggests the categories
// that look like the given one.
func unknownCategory(operation string, category string) error {
	return fmt.Errorf("%s: %w%s", operation, ErrUnknownCategory, util.DidYouMean(category, categories))
}
