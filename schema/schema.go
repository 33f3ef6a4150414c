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
	"context"
	"errors"

	"github.com/botobag/pokedex/pokedex"

	"github.com/graphql-go/graphql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the tracer that records a span for every root field resolution.
const TracerName = "github.com/botobag/pokedex/schema"

// Config specifies the dependencies of the schema.
type Config struct {
	// Store to serve queries and mutations from (required)
	Store *pokedex.Store

	// TracerProvider that creates the tracer for resolver spans; If not given, the global provider
	// is used.
	TracerProvider trace.TracerProvider
}

var errMissingStore = errors.New("pokedex/schema: must specify a store")

// New builds the Pokédex schema against the store in config.
//
// Arguments declared as non-null are checked by graphql-go before any resolver runs, so resolvers
// read them without re-validation.
func New(config *Config) (graphql.Schema, error) {
	if config == nil || config.Store == nil {
		return graphql.Schema{}, errMissingStore
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	r := &resolver{
		store:  config.Store,
		tracer: provider.Tracer(TracerName),
	}
	types := newTypeSet()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(types),
		Mutation: r.mutationType(types),
	})
}

// resolver implements the root fields of the schema.
type resolver struct {
	store  *pokedex.Store
	tracer trace.Tracer
}

// traced wraps resolve so that it runs within a span named after the root field.
func (r *resolver) traced(operationType string, fieldName string, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(params graphql.ResolveParams) (interface{}, error) {
		ctx := params.Context
		if ctx == nil {
			ctx = context.Background()
		}

		ctx, span := r.tracer.Start(ctx, operationType+" "+fieldName,
			trace.WithAttributes(
				attribute.String("graphql.operation.type", operationType),
				attribute.String("graphql.field.name", fieldName),
			))
		defer span.End()

		params.Context = ctx
		result, err := resolve(params)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return result, err
	}
}

// Helpers to read arguments that are guaranteed by the schema.

func stringArg(params graphql.ResolveParams, name string) string {
	s, _ := params.Args[name].(string)
	return s
}

func inputArg(params graphql.ResolveParams) map[string]interface{} {
	input, _ := params.Args["input"].(map[string]interface{})
	return input
}
