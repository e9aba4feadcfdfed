// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batchcfg holds the handler's configuration: the BatchPolicy that
// drives capacity-triggered flush (spec.md §3 "Lifecycle"), and an Arrow
// memory allocator used only by package ipc. Grounded on the functional-
// options shape of pkg/config/config.go and pkg/air/config/config.go.
package batchcfg

import (
	"time"

	"github.com/apache/arrow/go/v12/arrow/memory"
)

// BatchPolicy configures a handler: MaxSize triggers a flush (encode +
// reset) the moment a record would exceed it; MaxDelay is declared but, per
// the design note in spec.md §9, never read by package handler — an
// external ticker collaborator could call Handler.Flush on a timer without
// needing an API change here.
type BatchPolicy struct {
	MaxSize  int
	MaxDelay time.Duration
}

// DefaultBatchPolicy returns a policy with a 1000-row capacity and a
// 5-second delay bound that is declared but not enforced.
func DefaultBatchPolicy() BatchPolicy {
	return BatchPolicy{MaxSize: 1000, MaxDelay: 5 * time.Second}
}

// Config is the handler's allocator configuration.
type Config struct {
	Pool memory.Allocator
}

// Option configures a Config.
type Option func(*Config)

// DefaultConfig returns a Config backed by memory.NewGoAllocator(), matching
// pkg/config/config.go's DefaultConfig.
func DefaultConfig() *Config {
	return &Config{Pool: memory.NewGoAllocator()}
}

// WithAllocator overrides the Arrow memory allocator used by package ipc.
func WithAllocator(allocator memory.Allocator) Option {
	return func(cfg *Config) {
		cfg.Pool = allocator
	}
}

// New builds a Config from DefaultConfig with the given options applied.
func New(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
