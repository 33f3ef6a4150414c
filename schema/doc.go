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

// Package schema declares the GraphQL schema of the Pokédex and the resolvers of its queries and
// mutations.
//
// Queries:
//
//	Pokemons: [Pokemon]
//	Pokemon(name: String!): Pokemon
//	getPokemonByName(name: String!): Pokemon
//	getPokemonById(id: String!): Pokemon
//	getPokemonByType(type: String!): [Pokemon]
//	getPokemonByAttackName(name: String!): [Pokemon]
//	Attacks: Attacks
//	getAttacksByType(type: String!): [Attack]
//	Types: [String]
//
// Mutations:
//
//	createPokemon(input: CreatePokemonInput!): [Pokemon]
//	updatePokemon(id: String!, input: UpdatePokemonInput!): [Pokemon]
//	deletePokemon(id: String!): [Pokemon]
//	createAttack(input: AttackInput!, category: String!): Attacks
//	updateAttack(input: AttackInput!, category: String!, nameID: String!): Attacks
//	deleteAttack(category: String!, nameID: String!): Attacks
//	createType(input: TypeInput!): [String]
//	updateType(input: TypeInput!, nameID: String!): [String]
//	deleteType(name: String!): [String]
//
// The resolvers access the Store without any locking. The schema must only be executed by one
// goroutine at a time (see concurrent.SerialExecutor).
package schema
