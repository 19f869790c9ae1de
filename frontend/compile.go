// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package frontend

import (
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/veil-zk/veil/logger"
)

// Compile synthesizes the circuit in setup mode and returns its constraint
// structure. Values passed to Allocate/AllocateInput are ignored.
//
// Compile fails with ErrUnconstrainedVariable if any allocated variable never
// appears in a constraint written by the circuit. After synthesis, one
// constraint x_i * 0 = 0 is appended per public wire so that every input
// appears in the A-polynomials of the QAP; provers and the parameter
// generator rely on that layout.
func Compile(circuit Circuit) (*R1CS, error) {
	log := logger.Logger()
	start := time.Now()

	cs := &compileSystem{nbPublic: 1} // wire 0 is the constant one
	if err := circuit.Synthesize(cs); err != nil {
		return nil, err
	}

	r1cs := &R1CS{
		NbPublic:    cs.nbPublic,
		NbSecret:    cs.nbSecret,
		Constraints: cs.constraints,
	}

	if err := checkConstrained(r1cs); err != nil {
		return nil, err
	}

	// input constraints: x_i * 0 = 0 for every public wire
	for i := 0; i < r1cs.NbPublic; i++ {
		r1cs.Constraints = append(r1cs.Constraints, R1C{
			L: LC(Variable{Visibility: Public, Index: i}),
		})
	}

	log.Debug().
		Int("nbConstraints", len(r1cs.Constraints)).
		Int("nbPublic", r1cs.NbPublic).
		Int("nbSecret", r1cs.NbSecret).
		Dur("took", time.Since(start)).
		Msg("circuit compiled")

	return r1cs, nil
}

// compileSystem is the setup-mode ConstraintSystem: it counts allocations and
// records constraint structure, never touching values.
type compileSystem struct {
	nbPublic    int
	nbSecret    int
	constraints []R1C
}

func (cs *compileSystem) One() Variable {
	return Variable{Visibility: Public, Index: 0}
}

func (cs *compileSystem) Allocate(_ *fr.Element) (Variable, error) {
	v := Variable{Visibility: Secret, Index: cs.nbSecret}
	cs.nbSecret++
	return v, nil
}

func (cs *compileSystem) AllocateInput(_ *fr.Element) (Variable, error) {
	v := Variable{Visibility: Public, Index: cs.nbPublic}
	cs.nbPublic++
	return v, nil
}

func (cs *compileSystem) Enforce(l, r, o LinearCombination) {
	cs.constraints = append(cs.constraints, R1C{
		L: l.reduce(),
		R: r.reduce(),
		O: o.reduce(),
	})
}

// checkConstrained flags variables that appear in no constraint. The constant
// one wire is exempt.
func checkConstrained(r *R1CS) error {
	seen := bitset.New(uint(r.NbWires()))
	seen.Set(0) // one wire

	mark := func(lc LinearCombination) {
		for _, t := range lc {
			seen.Set(uint(r.WireID(t.Variable)))
		}
	}
	for i := range r.Constraints {
		mark(r.Constraints[i].L)
		mark(r.Constraints[i].R)
		mark(r.Constraints[i].O)
	}

	if seen.Count() == uint(r.NbWires()) {
		return nil
	}
	for i := uint(0); i < uint(r.NbWires()); i++ {
		if !seen.Test(i) {
			kind := "public input"
			if int(i) >= r.NbPublic {
				kind = "auxiliary"
			}
			return fmt.Errorf("%w: %s wire %d", ErrUnconstrainedVariable, kind, i)
		}
	}
	return nil
}
