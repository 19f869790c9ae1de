// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package multiexp

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func randomInput(t *testing.T, n int) ([]bn254.G1Affine, []fr.Element) {
	t.Helper()
	_, _, g1Gen, _ := bn254.Generators()

	base := make([]fr.Element, n)
	scalars := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		for base[i].IsZero() {
			_, err := base[i].SetRandom()
			require.NoError(t, err)
		}
		_, err := scalars[i].SetRandom()
		require.NoError(t, err)
	}
	points := bn254.BatchScalarMultiplicationG1(&g1Gen, base)
	return points, scalars
}

// naiveG1 is the reference: one scalar multiplication per point.
func naiveG1(points []bn254.G1Affine, scalars []fr.Element) bn254.G1Jac {
	res := g1Infinity
	var p, q bn254.G1Jac
	var bi big.Int
	for i := range points {
		q.FromAffine(&points[i])
		scalars[i].BigInt(&bi)
		p.ScalarMultiplication(&q, &bi)
		res.AddAssign(&p)
	}
	return res
}

func TestInG1MatchesNaive(t *testing.T) {
	for _, n := range []int{1, 2, 13, 64, 257} {
		points, scalars := randomInput(t, n)
		expected := naiveG1(points, scalars)

		var got bn254.G1Jac
		InG1(&got, points, scalars, Config{})
		require.True(t, got.Equal(&expected), "n=%d", n)
	}
}

func TestInG1Deterministic(t *testing.T) {
	points, scalars := randomInput(t, 200)

	var reference bn254.G1Jac
	InG1(&reference, points, scalars, Config{NbTasks: 1})

	for _, nbTasks := range []int{0, 1, 2, 7} {
		for _, window := range []int{0, 2, 5, 13, 16} {
			var got bn254.G1Jac
			InG1(&got, points, scalars, Config{NbTasks: nbTasks, WindowSize: window})
			require.True(t, got.Equal(&reference), "nbTasks=%d window=%d", nbTasks, window)
		}
	}
}

func TestInG1EdgeCases(t *testing.T) {
	var res bn254.G1Jac

	// empty input sums to the identity
	InG1(&res, nil, nil, Config{})
	require.True(t, res.Z.IsZero())

	// all-zero scalars sum to the identity
	points, scalars := randomInput(t, 10)
	for i := range scalars {
		scalars[i].SetZero()
	}
	InG1(&res, points, scalars, Config{})
	require.True(t, res.Z.IsZero())

	// infinity points contribute nothing
	points, scalars = randomInput(t, 10)
	expected := naiveG1(points[1:], scalars[1:])
	points[0] = bn254.G1Affine{}
	InG1(&res, points, scalars, Config{})
	require.True(t, res.Equal(&expected))
}

func TestInG2MatchesNaive(t *testing.T) {
	_, _, _, g2Gen := bn254.Generators()

	n := 33
	base := make([]fr.Element, n)
	scalars := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		for base[i].IsZero() {
			_, err := base[i].SetRandom()
			require.NoError(t, err)
		}
		_, err := scalars[i].SetRandom()
		require.NoError(t, err)
	}
	points := bn254.BatchScalarMultiplicationG2(&g2Gen, base)

	expected := g2Infinity
	var p, q bn254.G2Jac
	var bi big.Int
	for i := range points {
		q.FromAffine(&points[i])
		scalars[i].BigInt(&bi)
		p.ScalarMultiplication(&q, &bi)
		expected.AddAssign(&p)
	}

	for _, nbTasks := range []int{1, 0} {
		var got bn254.G2Jac
		InG2(&got, points, scalars, Config{NbTasks: nbTasks})
		require.True(t, got.Equal(&expected), "nbTasks=%d", nbTasks)
	}
}

func TestBestWindowSize(t *testing.T) {
	require.Equal(t, 2, bestWindowSize(1))
	require.Equal(t, 2, bestWindowSize(31))
	require.LessOrEqual(t, bestWindowSize(1<<20), 16)

	grew := false
	prev := bestWindowSize(1)
	for n := 2; n <= 1<<16; n <<= 1 {
		c := bestWindowSize(n)
		require.GreaterOrEqual(t, c, prev)
		if c > prev {
			grew = true
		}
		prev = c
	}
	require.True(t, grew)
}

func TestChunkBounds(t *testing.T) {
	for _, tc := range []struct{ n, chunks int }{
		{10, 3}, {1, 4}, {100, 100}, {7, 2},
	} {
		bounds := chunkBounds(tc.n, tc.chunks)
		prev := 0
		total := 0
		for _, b := range bounds {
			require.Equal(t, prev, b[0])
			require.Greater(t, b[1], b[0])
			total += b[1] - b[0]
			prev = b[1]
		}
		require.Equal(t, tc.n, total)
	}
}

func TestDigit(t *testing.T) {
	var limbs [fr.Limbs]uint64
	limbs[0] = 0xffffffffffffffff
	limbs[1] = 0x1

	require.Equal(t, uint64(0x1f), digit(limbs, 0, 5))
	require.Equal(t, uint64(0xf), digit(limbs, 61, 5)) // crosses the limb boundary
	require.Equal(t, uint64(0), digit(limbs, 65, 5))
}
