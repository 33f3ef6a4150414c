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

// Range is a {minimum, maximum} pair of measurements such as "6.04kg". Both Weight and Height of a
// Pokemon are Ranges.
type Range struct {
	Minimum string `json:"minimum"`
	Maximum string `json:"maximum"`
}

// EvolutionRequirements describes what it takes for a Pokemon to evolve.
type EvolutionRequirements struct {
	Amount int    `json:"amount"`
	Name   string `json:"name"`
}

// Evolution is a lightweight reference to the Pokemon that a Pokemon evolves into. It is not an
// embedded Pokemon record and is never resolved against the Store.
type Evolution struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Attack is a named move. Whether it is a fast or a special attack is decided by the bucket that
// holds it, not by the record itself.
type Attack struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Damage int    `json:"damage"`
}

// Attacks partitions attacks into the two category buckets. The same shape is used for the attacks
// owned by a Pokemon and for the global attack catalog; the two are never synchronized.
type Attacks struct {
	Fast    []*Attack `json:"fast"`
	Special []*Attack `json:"special"`
}

// Attack categories.
const (
	CategoryFast    = "fast"
	CategorySpecial = "special"
)

// Bucket returns the attacks stored under the given category. ok is false if category is not one
// of CategoryFast and CategorySpecial.
func (attacks *Attacks) Bucket(category string) (bucket []*Attack, ok bool) {
	switch category {
	case CategoryFast:
		return attacks.Fast, true
	case CategorySpecial:
		return attacks.Special, true
	}
	return nil, false
}

// bucketRef returns the address of the slice that backs the given category so that callers can
// append to it.
func (attacks *Attacks) bucketRef(category string) *[]*Attack {
	switch category {
	case CategoryFast:
		return &attacks.Fast
	case CategorySpecial:
		return &attacks.Special
	}
	return nil
}

// Pokemon is one species entry in the Pokédex. Name is the only required field; everything else
// is optional and a nil value means the field is absent from the record (Pokemon created through
// the API carry a name and a classification only).
type Pokemon struct {
	ID                    *string                `json:"id,omitempty"`
	Name                  string                 `json:"name"`
	Classification        *string                `json:"classification,omitempty"`
	Types                 []string               `json:"types,omitempty"`
	Resistant             []string               `json:"resistant,omitempty"`
	Weaknesses            []string               `json:"weaknesses,omitempty"`
	Weight                *Range                 `json:"weight,omitempty"`
	Height                *Range                 `json:"height,omitempty"`
	FleeRate              *float64               `json:"fleeRate,omitempty"`
	EvolutionRequirements *EvolutionRequirements `json:"evolutionRequirements,omitempty"`
	Evolutions            []Evolution            `json:"evolutions,omitempty"`
	MaxCP                 *int                   `json:"maxCP,omitempty"`
	MaxHP                 *int                   `json:"maxHP,omitempty"`
	Attacks               *Attacks               `json:"attacks,omitempty"`
}

// HasType returns true if t is one of the types of the Pokemon.
func (p *Pokemon) HasType(t string) bool {
	for _, pt := range p.Types {
		if pt == t {
			return true
		}
	}
	return false
}

// idEquals returns true if the Pokemon has an id that equals to id. Pokemon without an id never
// match.
func (p *Pokemon) idEquals(id string) bool {
	return p.ID != nil && *p.ID == id
}
