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

// Package config loads the server configuration from the environment and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains settings of the Pokédex server. Values are first loaded from the environment and
// then overridden by command-line flags.
type Config struct {
	// Port to listen on
	Port int `env:"PORT" envDefault:"4000"`

	// Host to bind
	Host string `env:"POKEDEX_HOST" envDefault:"localhost"`

	// Playground serves the interactive query console at "/" when true.
	Playground bool `env:"POKEDEX_PLAYGROUND" envDefault:"true"`

	// Maximum number of parsed documents kept in the operation cache; 0 disables the cache.
	OperationCacheSize int `env:"POKEDEX_OPERATION_CACHE_SIZE" envDefault:"512"`

	// Maximum number of bytes read from a request body
	MaxBodySize uint `env:"POKEDEX_MAX_BODY_SIZE" envDefault:"10485760"`

	// Time allowed for draining requests and flushing telemetry on shutdown
	ShutdownTimeout time.Duration `env:"POKEDEX_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// OTLP/HTTP endpoint to export traces to; Tracing is disabled when empty.
	OTelEndpoint string `env:"POKEDEX_OTEL_ENDPOINT"`

	// OTelEnabled turns tracing off when false even if OTelEndpoint is set.
	OTelEnabled bool `env:"POKEDEX_OTEL_ENABLED" envDefault:"true"`
}

// Addr returns the address for the server to listen on.
func (cfg *Config) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// Validate checks the values in cfg.
func (cfg *Config) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d is out of range", cfg.Port)
	}
	if cfg.OperationCacheSize < 0 {
		return errors.New("operation cache size must not be negative")
	}
	if cfg.MaxBodySize == 0 {
		return errors.New("max body size must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Parse loads defaults from the environment, then parses flags in args (without the program name)
// and validates the result.
func Parse(args []string) (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("pokedex", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Host, "host", cfg.Host, "host to bind")
	fs.BoolVar(&cfg.Playground, "playground", cfg.Playground, "serve the GraphQL playground at /")
	fs.IntVar(&cfg.OperationCacheSize, "operation-cache-size", cfg.OperationCacheSize,
		"number of parsed queries to cache (0 disables the cache)")
	fs.UintVar(&cfg.MaxBodySize, "max-body-size", cfg.MaxBodySize, "maximum request body size in bytes")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
