// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package multiexp computes multi-scalar multiplications over BN254 using a
// fixed-window bucket method.
//
// Scalars are cut into c-bit windows; each window accumulates points into
// 2^c - 1 buckets, buckets collapse into a per-window sum, and windows are
// combined high-to-low by repeated doubling. When more than one worker is
// configured the input is split into contiguous chunks, each chunk's partial
// sum is computed independently, and the partials are added in chunk order.
// Group addition is associative, so the result is the same group element for
// any worker count; combining in a fixed order keeps even the internal
// Jacobian coordinates deterministic.
package multiexp

import (
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Config tunes an MSM call.
type Config struct {
	// NbTasks caps the number of concurrent chunk workers.
	// 0 defaults to runtime.NumCPU(); 1 is fully serial.
	NbTasks int

	// WindowSize overrides the window width in bits (2..16).
	// 0 selects a width from the input size.
	WindowSize int
}

func (cfg Config) nbTasks() int {
	if cfg.NbTasks > 0 {
		return cfg.NbTasks
	}
	return runtime.NumCPU()
}

func (cfg Config) windowSize(nbPoints int) int {
	if cfg.WindowSize >= 2 && cfg.WindowSize <= 16 {
		return cfg.WindowSize
	}
	return bestWindowSize(nbPoints)
}

// bestWindowSize balances bucket-initialization cost (2^c per window) against
// the number of windows (254/c): wider windows pay off as the input grows.
func bestWindowSize(nbPoints int) int {
	c := 2
	for (1 << (c + 3)) <= nbPoints && c < 16 {
		c++
	}
	return c
}

// chunkBounds splits [0, n) into nbChunks contiguous ranges of near-equal
// size.
func chunkBounds(n, nbChunks int) [][2]int {
	if nbChunks > n {
		nbChunks = n
	}
	bounds := make([][2]int, nbChunks)
	per := n / nbChunks
	extra := n - per*nbChunks
	start := 0
	for i := range bounds {
		end := start + per
		if i < extra {
			end++
		}
		bounds[i] = [2]int{start, end}
		start = end
	}
	return bounds
}

// digit extracts the c-bit window starting at bit `start` from regular-form
// scalar limbs.
func digit(limbs [fr.Limbs]uint64, start, c int) uint64 {
	l := start >> 6
	off := uint(start & 63)
	d := limbs[l] >> off
	if off+uint(c) > 64 && l+1 < fr.Limbs {
		d |= limbs[l+1] << (64 - off)
	}
	return d & ((1 << uint(c)) - 1)
}
