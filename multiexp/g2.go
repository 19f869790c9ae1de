// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package multiexp

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/veil-zk/veil/internal/debug"
	"golang.org/x/sync/errgroup"
)

// InG2 sets res to Σ scalars[i]·points[i] and returns it.
// len(points) must equal len(scalars).
func InG2(res *bn254.G2Jac, points []bn254.G2Affine, scalars []fr.Element, cfg Config) *bn254.G2Jac {
	debug.Assert(len(points) == len(scalars), "multiexp: %d points, %d scalars", len(points), len(scalars))

	res.Set(&g2Infinity)
	if len(points) == 0 {
		return res
	}

	c := cfg.windowSize(len(points))
	bounds := chunkBounds(len(points), cfg.nbTasks())

	partials := make([]bn254.G2Jac, len(bounds))
	if len(bounds) == 1 {
		g2ChunkSum(&partials[0], points, scalars, c)
	} else {
		var g errgroup.Group
		for i := range bounds {
			start, end := bounds[i][0], bounds[i][1]
			part := &partials[i]
			g.Go(func() error {
				g2ChunkSum(part, points[start:end], scalars[start:end], c)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i := range partials {
		res.AddAssign(&partials[i])
	}
	return res
}

var g2Infinity bn254.G2Jac

func init() {
	g2Infinity.X.SetOne()
	g2Infinity.Y.SetOne()
}

func g2ChunkSum(res *bn254.G2Jac, points []bn254.G2Affine, scalars []fr.Element, c int) {
	limbs := make([][fr.Limbs]uint64, len(scalars))
	for i := range scalars {
		limbs[i] = scalars[i].Bits()
	}

	nbWindows := (fr.Bits + c - 1) / c
	buckets := make([]bn254.G2Jac, (1<<uint(c))-1)

	res.Set(&g2Infinity)
	for w := nbWindows - 1; w >= 0; w-- {
		if w != nbWindows-1 {
			for i := 0; i < c; i++ {
				res.DoubleAssign()
			}
		}

		for i := range buckets {
			buckets[i].Set(&g2Infinity)
		}
		for i := range points {
			d := digit(limbs[i], w*c, c)
			if d != 0 {
				buckets[d-1].AddMixed(&points[i])
			}
		}

		var running, sum bn254.G2Jac
		running.Set(&g2Infinity)
		sum.Set(&g2Infinity)
		for b := len(buckets) - 1; b >= 0; b-- {
			running.AddAssign(&buckets[b])
			sum.AddAssign(&running)
		}
		res.AddAssign(&sum)
	}
}
