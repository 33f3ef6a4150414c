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

// Package server exposes the GraphQL handler over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
)

// Endpoint is the path that serves GraphQL requests.
const Endpoint = "/graphql"

// Options configures the routes.
type Options struct {
	// Playground serves the GraphQL Playground at "/" when true.
	Playground bool

	// Logger for request logs; If not given, the standard logger is used.
	Logger *log.Logger
}

// NewMux routes GraphQL requests to graphqlHandler and adds the playground and the health check.
// Every request is logged with a request id.
func NewMux(graphqlHandler http.Handler, options Options) http.Handler {
	mux := http.NewServeMux()
	if options.Playground {
		mux.Handle("/", playground.Handler("Pokédex", Endpoint))
	}
	mux.Handle(Endpoint, graphqlHandler)
	mux.HandleFunc("/health", healthHandler)

	logger := options.Logger
	if logger == nil {
		logger = log.Default()
	}
	return RequestLogger(logger)(mux)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Server serves HTTP requests until its context is done.
type Server struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

// New creates a Server that listens on addr. On shutdown, in-flight requests are given
// shutdownTimeout to complete.
func New(addr string, handler http.Handler, shutdownTimeout time.Duration) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the server address and serves requests until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections from listener until ctx is done. Then it stops accepting new
// connections and waits for in-flight requests.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
