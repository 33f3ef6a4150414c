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
	_ "embed" // for go:embed
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Seed contains the initial content of a Store.
type Seed struct {
	Pokemon []*Pokemon `json:"pokemon"`
	Attacks Attacks    `json:"attacks"`
	Types   []string   `json:"types"`
}

//go:embed seed.json
var seedData []byte

// DecodeSeed decodes a Seed from JSON data.
func DecodeSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &seed, nil
}

// DefaultSeed decodes the seed data that is built into the binary. Every call returns a fresh copy
// so that Stores created from it never share records.
func DefaultSeed() (*Seed, error) {
	return DecodeSeed(seedData)
}

// NewDefaultStore creates a Store populated with DefaultSeed.
func NewDefaultStore() (*Store, error) {
	seed, err := DefaultSeed()
	if err != nil {
		return nil, err
	}
	return NewStore(seed), nil
}
