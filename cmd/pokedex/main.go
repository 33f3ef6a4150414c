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

// Command pokedex serves the Pokédex GraphQL API.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/botobag/pokedex/concurrent"
	"github.com/botobag/pokedex/handler"
	"github.com/botobag/pokedex/internal/config"
	"github.com/botobag/pokedex/internal/server"
	"github.com/botobag/pokedex/internal/telemetry"
	"github.com/botobag/pokedex/pokedex"
	"github.com/botobag/pokedex/schema"
)

const serviceName = "pokedex"

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = telemetry.Run(ctx, serviceName, telemetry.Options{
		Endpoint:        cfg.OTelEndpoint,
		Enabled:         cfg.OTelEnabled,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := pokedex.NewDefaultStore()
	if err != nil {
		return err
	}

	s, err := schema.New(&schema.Config{Store: store})
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	var cache handler.OperationCache = handler.NopOperationCache{}
	if cfg.OperationCacheSize > 0 {
		if cache, err = handler.NewLRUOperationCache(cfg.OperationCacheSize); err != nil {
			return err
		}
	}

	// All operations run one at a time on the executor.
	executor := concurrent.NewSerialExecutor()
	defer func() {
		terminated, _ := executor.Shutdown()
		<-terminated
	}()

	graphqlHandler, err := handler.New(&s,
		handler.MaxBodySize(cfg.MaxBodySize),
		handler.OverrideOperationCache(cache),
		handler.WithExecutor(executor))
	if err != nil {
		return err
	}

	srv := server.New(cfg.Addr(), server.NewMux(graphqlHandler, server.Options{
		Playground: cfg.Playground,
	}), cfg.ShutdownTimeout)

	log.Printf("Running a GraphQL API server at %s:%d%s", cfg.Host, cfg.Port, server.Endpoint)
	if err := srv.Run(ctx); err != nil && err != http.ErrServerClosed {
		return err
	}
	log.Println("shutting down...")
	return nil
}
