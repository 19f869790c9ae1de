// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package frontend

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/veil-zk/veil/internal/parallel"
)

// R1CS is a compiled constraint system: structure only, no assignment.
// It is produced once by Compile and shared read-only afterwards.
type R1CS struct {
	NbPublic    int // public wires, including the constant one at index 0
	NbSecret    int
	Constraints []R1C
}

// NbWires returns the total assignment length the system expects.
func (r *R1CS) NbWires() int { return r.NbPublic + r.NbSecret }

// WireID maps a variable to its index in the full assignment vector,
// laid out as [one, public inputs..., auxiliaries...].
func (r *R1CS) WireID(v Variable) int {
	if v.Visibility == Public {
		return v.Index
	}
	return r.NbPublic + v.Index
}

func (r *R1CS) evalLC(lc LinearCombination, vector []fr.Element) fr.Element {
	var acc, tmp fr.Element
	for _, t := range lc {
		tmp.Mul(&t.Coeff, &vector[r.WireID(t.Variable)])
		acc.Add(&acc, &tmp)
	}
	return acc
}

// Evaluate computes the per-constraint products a[i] = L_i·w, b[i] = R_i·w,
// c[i] = O_i·w against the witness vector, verifying a[i]*b[i] == c[i] as it
// goes. On failure it reports the lowest failing constraint index wrapped in
// ErrUnsatisfied. a, b, c must have length len(r.Constraints).
func (r *R1CS) Evaluate(vector []fr.Element, a, b, c []fr.Element, nbTasks int) error {
	if len(vector) != r.NbWires() {
		return fmt.Errorf("%w: got %d wire values, expected %d", ErrInvalidWitness, len(vector), r.NbWires())
	}

	failing := -1
	var mu sync.Mutex

	parallel.Execute(len(r.Constraints), func(start, end int) {
		var check fr.Element
		for i := start; i < end; i++ {
			a[i] = r.evalLC(r.Constraints[i].L, vector)
			b[i] = r.evalLC(r.Constraints[i].R, vector)
			c[i] = r.evalLC(r.Constraints[i].O, vector)

			check.Mul(&a[i], &b[i])
			if !check.Equal(&c[i]) {
				mu.Lock()
				if failing == -1 || i < failing {
					failing = i
				}
				mu.Unlock()
				return
			}
		}
	}, nbTasks)

	if failing != -1 {
		return fmt.Errorf("%w: constraint #%d", ErrUnsatisfied, failing)
	}
	return nil
}

// IsSatisfied re-evaluates every constraint against the witness; it reports
// the lowest failing constraint index, for diagnostics. Proving does not call
// this itself; checking satisfaction before trusting a proof is the caller's
// responsibility.
func (r *R1CS) IsSatisfied(w *Witness) error {
	n := len(r.Constraints)
	a := make([]fr.Element, n)
	b := make([]fr.Element, n)
	c := make([]fr.Element, n)
	return r.Evaluate(w.Vector(), a, b, c, 0)
}
