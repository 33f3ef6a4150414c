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

// typeSet contains the entity and input types of the Pokédex schema.
type typeSet struct {
	pokemon               *graphql.Object
	weight                *graphql.Object
	height                *graphql.Object
	evolutionRequirements *graphql.Object
	evolution             *graphql.Object
	attack                *graphql.Object
	attacks               *graphql.Object

	createPokemonInput *graphql.InputObject
	updatePokemonInput *graphql.InputObject
	attackInput        *graphql.InputObject
	typeInput          *graphql.InputObject
}

// Every entity field is resolved by projecting the in-memory record explicitly. A field that the
// record doesn't carry resolves to nil and is serialized as null.

func pokemonField(t graphql.Output, project func(p *pokedex.Pokemon) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(params graphql.ResolveParams) (interface{}, error) {
			p, ok := params.Source.(*pokedex.Pokemon)
			if !ok || p == nil {
				return nil, nil
			}
			return project(p), nil
		},
	}
}

func rangeField(project func(r *pokedex.Range) string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(params graphql.ResolveParams) (interface{}, error) {
			r, ok := params.Source.(*pokedex.Range)
			if !ok || r == nil {
				return nil, nil
			}
			return project(r), nil
		},
	}
}

func attackField(t graphql.Output, project func(a *pokedex.Attack) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(params graphql.ResolveParams) (interface{}, error) {
			a, ok := params.Source.(*pokedex.Attack)
			if !ok || a == nil {
				return nil, nil
			}
			return project(a), nil
		},
	}
}

func stringOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func intOrNil(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func floatOrNil(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func stringsOrNil(s []string) interface{} {
	if s == nil {
		return nil
	}
	return s
}

// stringSlots converts a list with holes into values that graphql-go serializes as strings and
// nulls.
func stringSlots(slots []*string) []interface{} {
	result := make([]interface{}, len(slots))
	for i, s := range slots {
		result[i] = stringOrNil(s)
	}
	return result
}

func newRangeObject(name string, description string) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name:        name,
		Description: description,
		Fields: graphql.Fields{
			"minimum": rangeField(func(r *pokedex.Range) string { return r.Minimum }),
			"maximum": rangeField(func(r *pokedex.Range) string { return r.Maximum }),
		},
	})
}

func newTypeSet() *typeSet {
	types := &typeSet{}

	types.weight = newRangeObject("Weight", "Weight range of a Pokemon.")
	types.height = newRangeObject("Height", "Height range of a Pokemon.")

	types.evolutionRequirements = graphql.NewObject(graphql.ObjectConfig{
		Name: "EvolutionRequirements",
		Fields: graphql.Fields{
			"amount": {
				Type: graphql.Int,
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					if req, ok := params.Source.(*pokedex.EvolutionRequirements); ok && req != nil {
						return req.Amount, nil
					}
					return nil, nil
				},
			},
			"name": {
				Type: graphql.String,
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					if req, ok := params.Source.(*pokedex.EvolutionRequirements); ok && req != nil {
						return req.Name, nil
					}
					return nil, nil
				},
			},
		},
	})

	types.evolution = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Evolutions",
		Description: "Reference to the Pokemon that a Pokemon evolves into.",
		Fields: graphql.Fields{
			"id": {
				Type: graphql.Int,
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					if evolution, ok := params.Source.(*pokedex.Evolution); ok && evolution != nil {
						return evolution.ID, nil
					}
					return nil, nil
				},
			},
			"name": {
				Type: graphql.String,
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					if evolution, ok := params.Source.(*pokedex.Evolution); ok && evolution != nil {
						return evolution.Name, nil
					}
					return nil, nil
				},
			},
		},
	})

	types.attack = graphql.NewObject(graphql.ObjectConfig{
		Name: "Attack",
		Fields: graphql.Fields{
			"name":   attackField(graphql.String, func(a *pokedex.Attack) interface{} { return a.Name }),
			"type":   attackField(graphql.String, func(a *pokedex.Attack) interface{} { return a.Type }),
			"damage": attackField(graphql.Int, func(a *pokedex.Attack) interface{} { return a.Damage }),
		},
	})

	bucketField := func(category string) *graphql.Field {
		return &graphql.Field{
			Type: graphql.NewList(types.attack),
			Resolve: func(params graphql.ResolveParams) (interface{}, error) {
				attacks, ok := params.Source.(*pokedex.Attacks)
				if !ok || attacks == nil {
					return nil, nil
				}
				bucket, _ := attacks.Bucket(category)
				return bucket, nil
			},
		}
	}

	types.attacks = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Attacks",
		Description: "Attacks partitioned into the fast and the special category.",
		Fields: graphql.Fields{
			pokedex.CategoryFast:    bucketField(pokedex.CategoryFast),
			pokedex.CategorySpecial: bucketField(pokedex.CategorySpecial),
		},
	})

	types.pokemon = graphql.NewObject(graphql.ObjectConfig{
		Name: "Pokemon",
		Fields: graphql.Fields{
			"id": pokemonField(graphql.String, func(p *pokedex.Pokemon) interface{} {
				return stringOrNil(p.ID)
			}),
			"name": pokemonField(graphql.NewNonNull(graphql.String), func(p *pokedex.Pokemon) interface{} {
				return p.Name
			}),
			"classification": pokemonField(graphql.String, func(p *pokedex.Pokemon) interface{} {
				return stringOrNil(p.Classification)
			}),
			"types": pokemonField(graphql.NewList(graphql.String), func(p *pokedex.Pokemon) interface{} {
				return stringsOrNil(p.Types)
			}),
			"resistant": pokemonField(graphql.NewList(graphql.String), func(p *pokedex.Pokemon) interface{} {
				return stringsOrNil(p.Resistant)
			}),
			"weaknesses": pokemonField(graphql.NewList(graphql.String), func(p *pokedex.Pokemon) interface{} {
				return stringsOrNil(p.Weaknesses)
			}),
			"weight": pokemonField(types.weight, func(p *pokedex.Pokemon) interface{} {
				if p.Weight == nil {
					return nil
				}
				return p.Weight
			}),
			"height": pokemonField(types.height, func(p *pokedex.Pokemon) interface{} {
				if p.Height == nil {
					return nil
				}
				return p.Height
			}),
			"fleeRate": pokemonField(graphql.Float, func(p *pokedex.Pokemon) interface{} {
				return floatOrNil(p.FleeRate)
			}),
			"evolutionRequirements": pokemonField(types.evolutionRequirements, func(p *pokedex.Pokemon) interface{} {
				if p.EvolutionRequirements == nil {
					return nil
				}
				return p.EvolutionRequirements
			}),
			"evolutions": pokemonField(graphql.NewList(types.evolution), func(p *pokedex.Pokemon) interface{} {
				if p.Evolutions == nil {
					return nil
				}
				evolutions := make([]*pokedex.Evolution, len(p.Evolutions))
				for i := range p.Evolutions {
					evolutions[i] = &p.Evolutions[i]
				}
				return evolutions
			}),
			"maxCP": pokemonField(graphql.Int, func(p *pokedex.Pokemon) interface{} {
				return intOrNil(p.MaxCP)
			}),
			"maxHP": pokemonField(graphql.Int, func(p *pokedex.Pokemon) interface{} {
				return intOrNil(p.MaxHP)
			}),
			"attacks": pokemonField(types.attacks, func(p *pokedex.Pokemon) interface{} {
				if p.Attacks == nil {
					return nil
				}
				return p.Attacks
			}),
		},
	})

	types.createPokemonInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreatePokemonInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":           {Type: graphql.NewNonNull(graphql.String)},
			"classification": {Type: graphql.String},
		},
	})

	types.updatePokemonInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdatePokemonInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": {Type: graphql.NewNonNull(graphql.String)},
		},
	})

	types.attackInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AttackInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":   {Type: graphql.NewNonNull(graphql.String)},
			"type":   {Type: graphql.NewNonNull(graphql.String)},
			"damage": {Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	types.typeInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TypeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": {Type: graphql.NewNonNull(graphql.String)},
		},
	})

	return types
}
