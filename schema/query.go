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

package schema

import (
	"github.com/graphql-go/graphql"
)

func (r *resolver) queryType(types *typeSet) *graphql.Object {
	const op = "query"

	nameArgs := graphql.FieldConfigArgument{
		"name": {Type: graphql.NewNonNull(graphql.String)},
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"Pokemons": {
				Type:        graphql.NewList(types.pokemon),
				Description: "Every Pokemon in order. Deleted Pokemon are listed as null.",
				Resolve:     r.traced(op, "Pokemons", r.pokemons),
			},
			"Pokemon": {
				Type:        types.pokemon,
				Description: "Same as getPokemonByName.",
				Args:        nameArgs,
				Resolve:     r.traced(op, "Pokemon", r.pokemonByName),
			},
			"getPokemonByName": {
				Type:    types.pokemon,
				Args:    nameArgs,
				Resolve: r.traced(op, "getPokemonByName", r.pokemonByName),
			},
			"getPokemonById": {
				Type: types.pokemon,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "getPokemonById", r.pokemonByID),
			},
			"getPokemonByType": {
				Type: graphql.NewList(types.pokemon),
				Args: graphql.FieldConfigArgument{
					"type": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "getPokemonByType", r.pokemonByType),
			},
			"getPokemonByAttackName": {
				Type:        graphql.NewList(types.pokemon),
				Description: "Owners of the attacks with the given name, listed once per matching attack.",
				Args:        nameArgs,
				Resolve:     r.traced(op, "getPokemonByAttackName", r.pokemonByAttackName),
			},
			"Attacks": {
				Type:    types.attacks,
				Resolve: r.traced(op, "Attacks", r.attacks),
			},
			"getAttacksByType": {
				Type:        graphql.NewList(types.attack),
				Description: `Attacks in the given category ("fast" or "special").`,
				Args: graphql.FieldConfigArgument{
					"type": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "getAttacksByType", r.attacksByCategory),
			},
			"Types": {
				Type:    graphql.NewList(graphql.String),
				Resolve: r.traced(op, "Types", r.types),
			},
		},
	})
}

func (r *resolver) pokemons(params graphql.ResolveParams) (interface{}, error) {
	return r.store.Pokemon(), nil
}

func (r *resolver) pokemonByName(params graphql.ResolveParams) (interface{}, error) {
	if p := r.store.PokemonByName(stringArg(params, "name")); p != nil {
		return p, nil
	}
	return nil, nil
}

func (r *resolver) pokemonByID(params graphql.ResolveParams) (interface{}, error) {
	if p := r.store.PokemonByID(stringArg(params, "id")); p != nil {
		return p, nil
	}
	return nil, nil
}

func (r *resolver) pokemonByType(params graphql.ResolveParams) (interface{}, error) {
	return r.store.PokemonByType(stringArg(params, "type")), nil
}

func (r *resolver) pokemonByAttackName(params graphql.ResolveParams) (interface{}, error) {
	return r.store.PokemonByAttackName(stringArg(params, "name")), nil
}

func (r *resolver) attacks(params graphql.ResolveParams) (interface{}, error) {
	return r.store.Attacks(), nil
}

func (r *resolver) attacksByCategory(params graphql.ResolveParams) (interface{}, error) {
	bucket, ok := r.store.AttacksByCategory(stringArg(params, "type"))
	if !ok {
		return nil, nil
	}
	return bucket, nil
}

func (r *resolver) types(params graphql.ResolveParams) (interface{}, error) {
	return stringSlots(r.store.Types()), nil
}
