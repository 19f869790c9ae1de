// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package fft

import (
	"bytes"
	"fmt"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func genPoly(size int) gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		a := make([]fr.Element, size)
		for i := range a {
			a[i].SetRandom()
		}
		return gopter.NewGenResult(a, gopter.NoShrinker)
	}
}

func TestFFTRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	for _, size := range []int{1, 2, 8, 64, 512} {
		d, err := NewDomain(size)
		require.NoError(t, err)

		for _, nbTasks := range []int{1, 0} {
			properties.Property(fmt.Sprintf("fft round trip, size=%d tasks=%d", size, nbTasks), prop.ForAll(
				func(p []fr.Element) bool {
					backup := make([]fr.Element, len(p))
					copy(backup, p)

					d.FFT(p, nbTasks)
					d.FFTInverse(p, nbTasks)

					for i := range p {
						if !p[i].Equal(&backup[i]) {
							return false
						}
					}
					return true
				},
				genPoly(int(d.Cardinality)),
			))

			properties.Property(fmt.Sprintf("coset round trip, size=%d tasks=%d", size, nbTasks), prop.ForAll(
				func(p []fr.Element) bool {
					backup := make([]fr.Element, len(p))
					copy(backup, p)

					d.CosetFFT(p, nbTasks)
					d.CosetFFTInverse(p, nbTasks)

					for i := range p {
						if !p[i].Equal(&backup[i]) {
							return false
						}
					}
					return true
				},
				genPoly(int(d.Cardinality)),
			))
		}
	}

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// evaluate p at x with Horner's rule
func evalPoly(p []fr.Element, x fr.Element) fr.Element {
	var res fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		res.Mul(&res, &x)
		res.Add(&res, &p[i])
	}
	return res
}

func TestFFTAgreesWithNaiveEvaluation(t *testing.T) {
	d, err := NewDomain(8)
	require.NoError(t, err)

	p := make([]fr.Element, d.Cardinality)
	for i := range p {
		p[i].SetRandom()
	}
	evals := make([]fr.Element, len(p))
	copy(evals, p)
	d.FFT(evals, 1)

	var x fr.Element
	x.SetOne()
	for i := range evals {
		expected := evalPoly(p, x)
		require.True(t, evals[i].Equal(&expected), "mismatch at point %d", i)
		x.Mul(&x, &d.Generator)
	}
}

func TestCosetVanishingIsMinusTwo(t *testing.T) {
	d, err := NewDomain(16)
	require.NoError(t, err)

	// Z(x) = x^m - 1 on the coset g·H
	var mBig big.Int
	mBig.SetUint64(d.Cardinality)
	var x, z, minusTwo fr.Element
	x.Mul(&d.GeneratorSqRt, &d.Generator) // one coset point, g·w
	z.Exp(x, &mBig)
	var one fr.Element
	one.SetOne()
	z.Sub(&z, &one)
	minusTwo.SetUint64(2)
	minusTwo.Neg(&minusTwo)
	require.True(t, z.Equal(&minusTwo))
}

func TestBitReverse(t *testing.T) {
	a := make([]fr.Element, 8)
	for i := range a {
		a[i].SetUint64(uint64(i))
	}
	BitReverse(a)

	var expected fr.Element
	for i, want := range []uint64{0, 4, 2, 6, 1, 5, 3, 7} {
		expected.SetUint64(want)
		require.True(t, a[i].Equal(&expected))
	}

	// involution
	BitReverse(a)
	for i := range a {
		expected.SetUint64(uint64(i))
		require.True(t, a[i].Equal(&expected))
	}
}

func TestNewDomain(t *testing.T) {
	for _, tc := range []struct {
		nbConstraints int
		cardinality   uint64
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {600, 1024},
	} {
		d, err := NewDomain(tc.nbConstraints)
		require.NoError(t, err)
		require.Equal(t, tc.cardinality, d.Cardinality, "nbConstraints=%d", tc.nbConstraints)
	}

	_, err := NewDomain(1 << 27)
	require.NoError(t, err)
	_, err = NewDomain(1<<27 + 1)
	require.ErrorIs(t, err, ErrDomainSizeTooLarge)
}

func TestDomainGeneratorOrder(t *testing.T) {
	d, err := NewDomain(64)
	require.NoError(t, err)

	var one fr.Element
	one.SetOne()

	var mBig big.Int
	mBig.SetUint64(d.Cardinality)
	var x fr.Element
	x.Exp(d.Generator, &mBig)
	require.True(t, x.Equal(&one), "generator order must divide m")

	mBig.SetUint64(d.Cardinality / 2)
	x.Exp(d.Generator, &mBig)
	require.False(t, x.Equal(&one), "generator must be primitive")

	x.Square(&d.GeneratorSqRt)
	require.True(t, x.Equal(&d.Generator))
}

func TestDomainSerialization(t *testing.T) {
	d, err := NewDomain(600)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = d.WriteTo(&buf)
	require.NoError(t, err)

	var read Domain
	_, err = read.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, *d, read)

	// a cardinality that is not a power of two is rejected
	buf.Reset()
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 3})
	_, err = read.ReadFrom(&buf)
	require.ErrorIs(t, err, ErrDomainSizeTooLarge)
}
