// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package groth16

import (
	"fmt"

	"github.com/veil-zk/veil/multiexp"
)

// Option alters the behavior of Prove and Verify.
type Option func(*Config) error

// Config is the configuration with options applied.
type Config struct {
	// NbTasks caps the worker count for FFT, multiexponentiation and
	// constraint evaluation. 0 defaults to the processor count; 1 forces the
	// deterministic single-threaded path (results are identical either way).
	NbTasks int

	// WindowSize overrides the multiexponentiation window width (2..16 bits).
	// 0 keeps the size-dependent heuristic.
	WindowSize int
}

// NewConfig returns a default Config with the given options applied.
func NewConfig(opts ...Option) (Config, error) {
	var cfg Config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithNbTasks sets the worker count.
func WithNbTasks(n int) Option {
	return func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("invalid number of tasks %d", n)
		}
		cfg.NbTasks = n
		return nil
	}
}

// WithoutParallelism forces single-threaded execution.
func WithoutParallelism() Option {
	return func(cfg *Config) error {
		cfg.NbTasks = 1
		return nil
	}
}

// WithWindowSize overrides the multiexponentiation window width.
func WithWindowSize(c int) Option {
	return func(cfg *Config) error {
		if c < 2 || c > 16 {
			return fmt.Errorf("window size %d out of range [2,16]", c)
		}
		cfg.WindowSize = c
		return nil
	}
}

func (cfg Config) msm() multiexp.Config {
	return multiexp.Config{NbTasks: cfg.NbTasks, WindowSize: cfg.WindowSize}
}
