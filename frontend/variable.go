// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package frontend

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Visibility tags a variable as public input or private auxiliary.
type Visibility uint8

const (
	Public Visibility = iota
	Secret
)

// Variable is a handle to one slot of the assignment. Index counts within the
// variable's partition; wire 0 of the public partition is the constant one.
// Circuit code should treat Variable as opaque.
type Variable struct {
	Visibility Visibility
	Index      int
}

// Term is one coefficient*variable product of a linear combination.
type Term struct {
	Variable Variable
	Coeff    fr.Element
}

// LinearCombination is a sum of terms, used as the L, R or O part of a
// constraint. Insertion order is irrelevant; duplicate variables are
// coalesced by summing coefficients when the combination is recorded.
type LinearCombination []Term

// LC builds a linear combination summing the given variables with
// coefficient 1.
func LC(vs ...Variable) LinearCombination {
	one := fr.One()
	lc := make(LinearCombination, 0, len(vs))
	for _, v := range vs {
		lc = append(lc, Term{Variable: v, Coeff: one})
	}
	return lc
}

// AddTerm returns lc extended with coeff*v.
func (lc LinearCombination) AddTerm(coeff fr.Element, v Variable) LinearCombination {
	return append(lc, Term{Variable: v, Coeff: coeff})
}

// reduce coalesces duplicate variables by summing their coefficients and
// drops terms whose coefficient sums to zero. Output order follows first
// appearance, so reduction is deterministic.
func (lc LinearCombination) reduce() LinearCombination {
	out := make(LinearCombination, 0, len(lc))
	for _, t := range lc {
		merged := false
		for i := range out {
			if out[i].Variable == t.Variable {
				out[i].Coeff.Add(&out[i].Coeff, &t.Coeff)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, t)
		}
	}
	// drop cancelled terms
	n := 0
	for i := range out {
		if !out[i].Coeff.IsZero() {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// R1C is one rank-1 constraint: L * R = O over the assignment.
type R1C struct {
	L, R, O LinearCombination
}
