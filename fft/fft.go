// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package fft implements the radix-2 evaluation domain used to interpolate
// and evaluate QAP polynomials over BN254's scalar field.
package fft

import (
	"math/bits"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/veil-zk/veil/internal/debug"
	"github.com/veil-zk/veil/internal/parallel"
)

// below this size the butterfly recursion stops spawning goroutines
const parallelThreshold = 256

// FFT computes the discrete Fourier transform of a in place; output is in
// natural order. len(a) must equal the domain cardinality (callers zero-pad).
//
// nbTasks caps the number of concurrent workers; 0 defaults to NumCPU, 1
// forces the serial path. The result is identical either way.
func (d *Domain) FFT(a []fr.Element, nbTasks int) {
	debug.Assert(uint64(len(a)) == d.Cardinality, "fft input length %d != domain cardinality %d", len(a), d.Cardinality)

	difFFT(a, d.Generator, nbTasks != 1)
	BitReverse(a)
}

// FFTInverse computes the inverse transform of a in place, scaling by the
// cardinality inverse so that FFTInverse(FFT(p)) == p. Output is in natural
// order; len(a) must equal the domain cardinality.
func (d *Domain) FFTInverse(a []fr.Element, nbTasks int) {
	debug.Assert(uint64(len(a)) == d.Cardinality, "fft input length %d != domain cardinality %d", len(a), d.Cardinality)

	difFFT(a, d.GeneratorInv, nbTasks != 1)
	BitReverse(a)

	parallel.Execute(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i].Mul(&a[i], &d.CardinalityInv)
		}
	}, nbTasks)
}

// CosetFFT evaluates the polynomial with coefficients a over the coset
// generated by GeneratorSqRt, in place. On that coset the domain's vanishing
// polynomial x^m - 1 takes the constant value -2, which is what makes the
// quotient-polynomial division a pointwise scaling for the prover.
func (d *Domain) CosetFFT(a []fr.Element, nbTasks int) {
	d.mulByCosetTable(a, d.GeneratorSqRt, nbTasks)
	d.FFT(a, nbTasks)
}

// CosetFFTInverse interpolates coset evaluations back to coefficients,
// undoing CosetFFT.
func (d *Domain) CosetFFTInverse(a []fr.Element, nbTasks int) {
	d.FFTInverse(a, nbTasks)
	d.mulByCosetTable(a, d.GeneratorSqRtInv, nbTasks)
}

// mulByCosetTable multiplies a[i] by shift^i.
func (d *Domain) mulByCosetTable(a []fr.Element, shift fr.Element, nbTasks int) {
	table := make([]fr.Element, len(a))
	table[0].SetOne()
	for i := 1; i < len(table); i++ {
		table[i].Mul(&table[i-1], &shift)
	}
	parallel.Execute(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i].Mul(&a[i], &table[i])
		}
	}, nbTasks)
}

// difFFT is the recursive decimation-in-frequency kernel: natural-order
// input, bit-reversed output. w must be a primitive len(a)-th root of unity.
// The two halves of each split target disjoint sub-slices, so the parallel
// and serial paths compute identical results.
func difFFT(a []fr.Element, w fr.Element, parallelSplit bool) {
	if parallelSplit {
		var wg sync.WaitGroup
		asyncDifFFT(a, w, &wg)
		wg.Wait()
		return
	}
	serialDifFFT(a, w)
}

func serialDifFFT(a []fr.Element, w fr.Element) {
	n := len(a)
	if n == 1 {
		return
	}
	m := n / 2

	butterflies(a, w, m)

	w.Square(&w)
	serialDifFFT(a[0:m], w)
	serialDifFFT(a[m:n], w)
}

func asyncDifFFT(a []fr.Element, w fr.Element, wg *sync.WaitGroup) {
	n := len(a)
	if n == 1 {
		return
	}
	m := n / 2

	butterflies(a, w, m)

	w.Square(&w)
	if m < parallelThreshold {
		serialDifFFT(a[0:m], w)
		serialDifFFT(a[m:n], w)
		return
	}

	wg.Add(1)
	go func() {
		asyncDifFFT(a[m:n], w, wg)
		wg.Done()
	}()
	asyncDifFFT(a[0:m], w, wg)
}

// butterflies performs one stage: a[i], a[i+m] <- a[i]+a[i+m], (a[i]-a[i+m])*w^i
func butterflies(a []fr.Element, w fr.Element, m int) {
	wPow := w

	var tmp fr.Element
	tmp = a[0]
	a[0].Add(&a[0], &a[m])
	a[m].Sub(&tmp, &a[m])

	for i := 1; i < m; i++ {
		tmp = a[i]
		a[i].Add(&a[i], &a[i+m])
		a[i+m].
			Sub(&tmp, &a[i+m]).
			Mul(&a[i+m], &wPow)

		wPow.Mul(&wPow, &w)
	}
}

// BitReverse applies the bit-reversal permutation to a in place.
// len(a) must be a power of 2.
func BitReverse(a []fr.Element) {
	l := uint64(len(a))
	shift := uint64(64 - bits.TrailingZeros64(l))

	for i := uint64(0); i < l; i++ {
		irev := bits.Reverse64(i) >> shift
		if irev > i {
			a[i], a[irev] = a[irev], a[i]
		}
	}
}
