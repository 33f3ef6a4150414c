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
	"github.com/graphql-go/graphql/language/ast"
	lru "github.com/hashicorp/golang-lru/v2"
)

// OperationCache caches documents that have been parsed and validated against the schema to save
// the efforts for repeated queries.
type OperationCache interface {
	// Get looks up document for the given query.
	Get(query string) (document *ast.Document, ok bool)

	// Add adds a document that associated with the query to the cache.
	Add(query string, document *ast.Document)
}

// LRUOperationCache is an OperationCache that evicts the least recently used document when it is
// full. It is safe for concurrent use.
type LRUOperationCache struct {
	cache *lru.Cache[string, *ast.Document]
}

var _ OperationCache = (*LRUOperationCache)(nil)

// NewLRUOperationCache creates a LRUOperationCache that holds at most maxEntries documents.
func NewLRUOperationCache(maxEntries int) (*LRUOperationCache, error) {
	cache, err := lru.New[string, *ast.Document](maxEntries)
	if err != nil {
		return nil, err
	}
	return &LRUOperationCache{cache}, nil
}

// Get implements OperationCache.
func (c *LRUOperationCache) Get(query string) (*ast.Document, bool) {
	return c.cache.Get(query)
}

// Add implements OperationCache.
func (c *LRUOperationCache) Add(query string, document *ast.Document) {
	c.cache.Add(query, document)
}

// Len returns the number of cached documents.
func (c *LRUOperationCache) Len() int {
	return c.cache.Len()
}

// NopOperationCache disables caching.
type NopOperationCache struct{}

var _ OperationCache = NopOperationCache{}

// Get implements OperationCache. It always misses.
func (NopOperationCache) Get(query string) (*ast.Document, bool) {
	return nil, false
}

// Add implements OperationCache. It drops the document.
func (NopOperationCache) Add(query string, document *ast.Document) {}
