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
	"fmt"
)

// Store holds the three collections served by the Pokédex: the Pokemon, the attack catalog and the
// type list. It is the single source of truth and is mutated in place.
//
// Removing a Pokemon or a type doesn't shrink its collection. The removed slot is left as a hole
// (a nil element) so that every other record keeps its position. Holes are returned to callers and
// never match a lookup.
//
// The three collections are independent. Nothing keeps the attacks owned by a Pokemon in sync with
// the catalog, and removing a type doesn't touch the Pokemon that carry it.
//
// Store is not safe for concurrent use. Callers must serialize accesses; the GraphQL handler does
// so by running every operation on a single worker.
type Store struct {
	pokemon []*Pokemon
	attacks *Attacks
	types   []*string
}

// NewStore creates a Store from seed. The Store takes ownership of the records in seed.
func NewStore(seed *Seed) *Store {
	store := &Store{
		attacks: &Attacks{},
	}
	if seed == nil {
		return store
	}

	store.pokemon = append(store.pokemon, seed.Pokemon...)
	store.attacks.Fast = append(store.attacks.Fast, seed.Attacks.Fast...)
	store.attacks.Special = append(store.attacks.Special, seed.Attacks.Special...)
	for i := range seed.Types {
		t := seed.Types[i]
		store.types = append(store.types, &t)
	}
	return store
}

//===----------------------------------------------------------------------------------------====//
// Pokemon
//===----------------------------------------------------------------------------------------====//

// Pokemon returns every slot of the Pokemon collection in order. Deleted Pokemon show up as nil.
func (store *Store) Pokemon() []*Pokemon {
	return append([]*Pokemon(nil), store.pokemon...)
}

// PokemonByName returns the first Pokemon whose name equals to name (case-sensitive), or nil.
func (store *Store) PokemonByName(name string) *Pokemon {
	for _, p := range store.pokemon {
		if p != nil && p.Name == name {
			return p
		}
	}
	return nil
}

// PokemonByID returns the first Pokemon whose id equals to id, or nil.
func (store *Store) PokemonByID(id string) *Pokemon {
	if i, ok := store.indexOfPokemon(id); ok {
		return store.pokemon[i]
	}
	return nil
}

// PokemonByType returns every Pokemon that has t in its types, in collection order. The result is
// empty (but not nil) when nothing matches.
func (store *Store) PokemonByType(t string) []*Pokemon {
	result := []*Pokemon{}
	for _, p := range store.pokemon {
		if p != nil && p.HasType(t) {
			result = append(result, p)
		}
	}
	return result
}

// PokemonByAttackName scans the fast and then the special attacks of every Pokemon and appends the
// Pokemon to the result each time it finds an attack called name. A Pokemon that knows the attack
// twice (for example, as both a fast and a special attack) appears twice.
func (store *Store) PokemonByAttackName(name string) []*Pokemon {
	result := []*Pokemon{}
	for _, p := range store.pokemon {
		if p == nil || p.Attacks == nil {
			continue
		}
		for _, bucket := range [][]*Attack{p.Attacks.Fast, p.Attacks.Special} {
			for _, attack := range bucket {
				if attack != nil && attack.Name == name {
					result = append(result, p)
				}
			}
		}
	}
	return result
}

// PokemonInput contains the fields accepted by CreatePokemon.
type PokemonInput struct {
	Name           string
	Classification *string
}

// CreatePokemon appends a Pokemon that carries nothing but the given name and classification and
// returns the Pokemon collection.
func (store *Store) CreatePokemon(input PokemonInput) []*Pokemon {
	store.pokemon = append(store.pokemon, &Pokemon{
		Name:           input.Name,
		Classification: input.Classification,
	})
	return store.Pokemon()
}

// UpdatePokemon renames the first Pokemon with the given id and returns the Pokemon collection. It
// returns ErrOutOfRange without changing anything if there's no such Pokemon.
func (store *Store) UpdatePokemon(id string, name string) ([]*Pokemon, error) {
	i, ok := store.indexOfPokemon(id)
	if !ok {
		return nil, fmt.Errorf("update pokemon %q: %w", id, ErrOutOfRange)
	}
	store.pokemon[i].Name = name
	return store.Pokemon(), nil
}

// DeletePokemon leaves a hole in the slot of the first Pokemon with the given id and returns the
// Pokemon collection, whose length is unchanged. It returns ErrOutOfRange if there's no such
// Pokemon.
func (store *Store) DeletePokemon(id string) ([]*Pokemon, error) {
	i, ok := store.indexOfPokemon(id)
	if !ok {
		return nil, fmt.Errorf("delete pokemon %q: %w", id, ErrOutOfRange)
	}
	store.pokemon[i] = nil
	return store.Pokemon(), nil
}

func (store *Store) indexOfPokemon(id string) (int, bool) {
	for i, p := range store.pokemon {
		if p != nil && p.idEquals(id) {
			return i, true
		}
	}
	return -1, false
}

//===----------------------------------------------------------------------------------------====//
// Attacks
//===----------------------------------------------------------------------------------------====//

// Attacks returns the attack catalog. The returned value is live: changes made through the Store
// are visible to it.
func (store *Store) Attacks() *Attacks {
	return store.attacks
}

// AttacksByCategory returns the catalog bucket for the given category. ok is false if category is
// unknown. The records in the bucket are shared with the catalog, so updates made by UpdateAttack
// are visible through a bucket obtained earlier.
func (store *Store) AttacksByCategory(category string) (bucket []*Attack, ok bool) {
	bucket, ok = store.attacks.Bucket(category)
	if !ok {
		return nil, false
	}
	return append([]*Attack(nil), bucket...), true
}

// CreateAttack appends a copy of attack to the catalog bucket for the given category and returns
// the catalog.
func (store *Store) CreateAttack(category string, attack Attack) (*Attacks, error) {
	bucket := store.attacks.bucketRef(category)
	if bucket == nil {
		return nil, unknownCategory(fmt.Sprintf("create attack in %q", category), category)
	}
	*bucket = append(*bucket, &attack)
	return store.attacks, nil
}

// UpdateAttack overwrites the fields of the first attack called nameID in the given category with
// those of attack and returns the catalog. The record is updated in place. It returns
// ErrOutOfRange if the bucket has no attack called nameID.
func (store *Store) UpdateAttack(category string, nameID string, attack Attack) (*Attacks, error) {
	bucket, ok := store.attacks.Bucket(category)
	if !ok {
		return nil, unknownCategory(fmt.Sprintf("update attack %q in %q", nameID, category), category)
	}

	var found *Attack
	for _, a := range bucket {
		if a != nil && a.Name == nameID {
			found = a
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("update attack %q in %q: %w", nameID, category, ErrOutOfRange)
	}

	found.Name = attack.Name
	found.Type = attack.Type
	found.Damage = attack.Damage
	return store.attacks, nil
}

// DeleteAttack returns the catalog without removing anything from it. The bucket for category is
// never replaced and attacks called nameID are still there afterwards. It only fails if category is
// unknown.
func (store *Store) DeleteAttack(category string, nameID string) (*Attacks, error) {
	if _, ok := store.attacks.Bucket(category); !ok {
		return nil, unknownCategory(fmt.Sprintf("delete attack %q in %q", nameID, category), category)
	}
	return store.attacks, nil
}

//===----------------------------------------------------------------------------------------====//
// Types
//===----------------------------------------------------------------------------------------====//

// Types returns every slot of the type list in order, duplicates included. Deleted types show up
// as nil.
func (store *Store) Types() []*string {
	return append([]*string(nil), store.types...)
}

// CreateType appends name to the type list and returns the list.
func (store *Store) CreateType(name string) []*string {
	store.types = append(store.types, &name)
	return store.Types()
}

// UpdateType overwrites the first slot holding nameID with name and returns the list. It returns
// ErrOutOfRange if nameID is not in the list.
func (store *Store) UpdateType(nameID string, name string) ([]*string, error) {
	i, ok := store.indexOfType(nameID)
	if !ok {
		return nil, fmt.Errorf("update type %q: %w", nameID, ErrOutOfRange)
	}
	store.types[i] = &name
	return store.Types(), nil
}

// DeleteType leaves a hole in the first slot holding name and returns the list. The list is
// returned unchanged if name is not in it.
func (store *Store) DeleteType(name string) []*string {
	if i, ok := store.indexOfType(name); ok {
		store.types[i] = nil
	}
	return store.Types()
}

func (store *Store) indexOfType(name string) (int, bool) {
	for i, t := range store.types {
		if t != nil && *t == name {
			return i, true
		}
	}
	return -1, false
}
