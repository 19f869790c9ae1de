// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package multiexp

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/veil-zk/veil/internal/debug"
	"golang.org/x/sync/errgroup"
)

// InG1 sets res to Σ scalars[i]·points[i] and returns it.
// len(points) must equal len(scalars).
func InG1(res *bn254.G1Jac, points []bn254.G1Affine, scalars []fr.Element, cfg Config) *bn254.G1Jac {
	debug.Assert(len(points) == len(scalars), "multiexp: %d points, %d scalars", len(points), len(scalars))

	res.Set(&g1Infinity)
	if len(points) == 0 {
		return res
	}

	c := cfg.windowSize(len(points))
	bounds := chunkBounds(len(points), cfg.nbTasks())

	partials := make([]bn254.G1Jac, len(bounds))
	if len(bounds) == 1 {
		g1ChunkSum(&partials[0], points, scalars, c)
	} else {
		var g errgroup.Group
		for i := range bounds {
			start, end := bounds[i][0], bounds[i][1]
			part := &partials[i]
			g.Go(func() error {
				g1ChunkSum(part, points[start:end], scalars[start:end], c)
				return nil
			})
		}
		_ = g.Wait() // workers never fail; they only write their own partial
	}

	// combine in chunk order
	for i := range partials {
		res.AddAssign(&partials[i])
	}
	return res
}

var g1Infinity bn254.G1Jac

func init() {
	g1Infinity.X.SetOne()
	g1Infinity.Y.SetOne()
	// Z stays zero: point at infinity in Jacobian coordinates
}

// g1ChunkSum runs the full windowed method over one contiguous chunk.
func g1ChunkSum(res *bn254.G1Jac, points []bn254.G1Affine, scalars []fr.Element, c int) {
	// regular-form limbs, one conversion per scalar
	limbs := make([][fr.Limbs]uint64, len(scalars))
	for i := range scalars {
		limbs[i] = scalars[i].Bits()
	}

	nbWindows := (fr.Bits + c - 1) / c
	buckets := make([]bn254.G1Jac, (1<<uint(c))-1)

	res.Set(&g1Infinity)
	for w := nbWindows - 1; w >= 0; w-- {
		if w != nbWindows-1 {
			for i := 0; i < c; i++ {
				res.DoubleAssign()
			}
		}

		for i := range buckets {
			buckets[i].Set(&g1Infinity)
		}
		for i := range points {
			d := digit(limbs[i], w*c, c)
			if d != 0 {
				buckets[d-1].AddMixed(&points[i])
			}
		}

		// running sum from the top bucket down:
		// Σ d·bucket[d-1] = Σ (bucket[top] + ... + bucket[d-1])
		var running, sum bn254.G1Jac
		running.Set(&g1Infinity)
		sum.Set(&g1Infinity)
		for b := len(buckets) - 1; b >= 0; b-- {
			running.AddAssign(&buckets[b])
			sum.AddAssign(&running)
		}
		res.AddAssign(&sum)
	}
}
