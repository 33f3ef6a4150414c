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
	"context"
	"errors"

	"github.com/botobag/pokedex/concurrent"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the tracer that records a span for every operation served by LLHandler.
const TracerName = "github.com/botobag/pokedex/handler"

// LLHandler creates a handler that is suit for serving GraphQL queries against a schema in a
// long-running process. It is useful as a low-level building block for building GraphQL services
// such as GraphQL web services.
//
// Operations are executed by an Executor. With a concurrent.SerialExecutor, operations from all
// requests execute one at a time in arrival order.
type LLHandler struct {
	// Schema served by this handler
	schema *graphql.Schema

	// Cache for the parsed and validated documents
	cache OperationCache

	// Executor that runs operations
	executor concurrent.Executor

	tracer trace.Tracer
}

// LLConfig contains configuration to set up a LLHandler.
type LLConfig struct {
	// Schema to be working on
	Schema *graphql.Schema

	// OperationCache caches documents parsed from a query to save parsing and validation efforts. If
	// not given, a LRUOperationCache with 512 entries is used.
	OperationCache OperationCache

	// Executor that runs operations; If not given, a concurrent.SerialExecutor is created.
	Executor concurrent.Executor

	// TracerProvider for operation spans; If not given, the global provider is used.
	TracerProvider trace.TracerProvider
}

var errMissingSchema = errors.New("pokedex/handler: must specify a schema")

// NewLLHandler creates a LLHandler from given configuration.
func NewLLHandler(config *LLConfig) (*LLHandler, error) {
	// schema is required.
	schema := config.Schema
	if schema == nil || schema.QueryType() == nil {
		return nil, errMissingSchema
	}

	cache := config.OperationCache
	if cache == nil {
		// Create a LRU cache with 512 entries in maximum by default.
		var err error
		cache, err = NewLRUOperationCache(512)
		if err != nil {
			return nil, err
		}
	}

	executor := config.Executor
	if executor == nil {
		executor = concurrent.NewSerialExecutor()
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	return &LLHandler{
		schema:   schema,
		cache:    cache,
		executor: executor,
		tracer:   provider.Tracer(TracerName),
	}, nil
}

// Schema returns handler.schema.
func (handler *LLHandler) Schema() *graphql.Schema {
	return handler.schema
}

// OperationCache returns handler.cache.
func (handler *LLHandler) OperationCache() OperationCache {
	return handler.cache
}

// Request contains parameter required by Serve.
type Request struct {
	Ctx context.Context

	// Document that has been validated against the schema
	Document *ast.Document

	// Name of the operation in Document to execute; Can be empty if Document contains exactly one
	// operation.
	OperationName string

	// Values for the variables declared by the operation
	Variables map[string]interface{}
}

func errorResult(err error) *graphql.Result {
	return &graphql.Result{
		Errors: []gqlerrors.FormattedError{gqlerrors.FormatError(err)},
	}
}

// Serve executes the operation in the request and blocks until the result is available. The given
// request object must not be nil.
//
// An operation whose request context is done before it gets its turn is not executed. Once started,
// an operation always runs to completion and holds the executor until then, even if the request
// context is cancelled in the middle.
func (handler *LLHandler) Serve(request *Request) *graphql.Result {
	ctx := request.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := handler.tracer.Start(ctx, "graphql.execute",
		trace.WithAttributes(attribute.String("graphql.operation.name", request.OperationName)))
	defer span.End()

	handle, err := handler.executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// graphql.Execute returns as soon as its context is done while the resolvers keep running in
		// the background, so it must never see the cancellation of the request.
		return graphql.Execute(graphql.ExecuteParams{
			Schema:        *handler.schema,
			AST:           request.Document,
			OperationName: request.OperationName,
			Args:          request.Variables,
			Context:       context.WithoutCancel(ctx),
		}), nil
	}))

	var result interface{}
	if err == nil {
		result, err = handle.AwaitResult(0)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return errorResult(err)
	}

	r := result.(*graphql.Result)
	if r.HasErrors() {
		span.SetStatus(codes.Error, r.Errors[0].Message)
	}
	return r
}
