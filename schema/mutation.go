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
	"github.com/botobag/pokedex/pokedex"

	"github.com/graphql-go/graphql"
)

// Every mutation returns the whole collection it changed rather than the changed record.
//
// Mutations that address an existing record fail with an error wrapping pokedex.ErrOutOfRange when
// there's no such record. The Store is left untouched and the field resolves to null with the error
// reported in the response.

func (r *resolver) mutationType(types *typeSet) *graphql.Object {
	const op = "mutation"

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createPokemon": {
				Type: graphql.NewList(types.pokemon),
				Args: graphql.FieldConfigArgument{
					"input": {Type: graphql.NewNonNull(types.createPokemonInput)},
				},
				Resolve: r.traced(op, "createPokemon", r.createPokemon),
			},
			"updatePokemon": {
				Type: graphql.NewList(types.pokemon),
				Args: graphql.FieldConfigArgument{
					"id":    {Type: graphql.NewNonNull(graphql.String)},
					"input": {Type: graphql.NewNonNull(types.updatePokemonInput)},
				},
				Resolve: r.traced(op, "updatePokemon", r.updatePokemon),
			},
			"deletePokemon": {
				Type:        graphql.NewList(types.pokemon),
				Description: "Deleted Pokemon leave a null in their place; the list never shrinks.",
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "deletePokemon", r.deletePokemon),
			},
			"createAttack": {
				Type: types.attacks,
				Args: graphql.FieldConfigArgument{
					"input":    {Type: graphql.NewNonNull(types.attackInput)},
					"category": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "createAttack", r.createAttack),
			},
			"updateAttack": {
				Type: types.attacks,
				Args: graphql.FieldConfigArgument{
					"input":    {Type: graphql.NewNonNull(types.attackInput)},
					"category": {Type: graphql.NewNonNull(graphql.String)},
					"nameID":   {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "updateAttack", r.updateAttack),
			},
			"deleteAttack": {
				Type:        types.attacks,
				Description: "Returns the catalog as it is. Attacks are never removed from the catalog.",
				Args: graphql.FieldConfigArgument{
					"category": {Type: graphql.NewNonNull(graphql.String)},
					"nameID":   {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "deleteAttack", r.deleteAttack),
			},
			"createType": {
				Type: graphql.NewList(graphql.String),
				Args: graphql.FieldConfigArgument{
					"input": {Type: graphql.NewNonNull(types.typeInput)},
				},
				Resolve: r.traced(op, "createType", r.createType),
			},
			"updateType": {
				Type: graphql.NewList(graphql.String),
				Args: graphql.FieldConfigArgument{
					"input":  {Type: graphql.NewNonNull(types.typeInput)},
					"nameID": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "updateType", r.updateType),
			},
			"deleteType": {
				Type:        graphql.NewList(graphql.String),
				Description: "Deleted types leave a null in their place; the list never shrinks.",
				Args: graphql.FieldConfigArgument{
					"name": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.traced(op, "deleteType", r.deleteType),
			},
		},
	})
}

func attackFromInput(input map[string]interface{}) pokedex.Attack {
	var attack pokedex.Attack
	attack.Name, _ = input["name"].(string)
	attack.Type, _ = input["type"].(string)
	attack.Damage, _ = input["damage"].(int)
	return attack
}

func (r *resolver) createPokemon(params graphql.ResolveParams) (interface{}, error) {
	input := inputArg(params)

	var pokemon pokedex.PokemonInput
	pokemon.Name, _ = input["name"].(string)
	if classification, ok := input["classification"].(string); ok {
		pokemon.Classification = &classification
	}

	return r.store.CreatePokemon(pokemon), nil
}

func (r *resolver) updatePokemon(params graphql.ResolveParams) (interface{}, error) {
	name, _ := inputArg(params)["name"].(string)
	pokemon, err := r.store.UpdatePokemon(stringArg(params, "id"), name)
	if err != nil {
		return nil, err
	}
	return pokemon, nil
}

func (r *resolver) deletePokemon(params graphql.ResolveParams) (interface{}, error) {
	pokemon, err := r.store.DeletePokemon(stringArg(params, "id"))
	if err != nil {
		return nil, err
	}
	return pokemon, nil
}

func (r *resolver) createAttack(params graphql.ResolveParams) (interface{}, error) {
	catalog, err := r.store.CreateAttack(stringArg(params, "category"), attackFromInput(inputArg(params)))
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (r *resolver) updateAttack(params graphql.ResolveParams) (interface{}, error) {
	catalog, err := r.store.UpdateAttack(
		stringArg(params, "category"),
		stringArg(params, "nameID"),
		attackFromInput(inputArg(params)))
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (r *resolver) deleteAttack(params graphql.ResolveParams) (interface{}, error) {
	catalog, err := r.store.DeleteAttack(stringArg(params, "category"), stringArg(params, "nameID"))
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (r *resolver) createType(params graphql.ResolveParams) (interface{}, error) {
	name, _ := inputArg(params)["name"].(string)
	return stringSlots(r.store.CreateType(name)), nil
}

func (r *resolver) updateType(params graphql.ResolveParams) (interface{}, error) {
	name, _ := inputArg(params)["name"].(string)
	types, err := r.store.UpdateType(stringArg(params, "nameID"), name)
	if err != nil {
		return nil, err
	}
	return stringSlots(types), nil
}

func (r *resolver) deleteType(params graphql.ResolveParams) (interface{}, error) {
	return stringSlots(r.store.DeleteType(stringArg(params, "name"))), nil
}
