// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package frontend

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Witness is the full assignment produced by a proving-mode synthesis:
// a public-input prefix (the constant one at index 0) and a private
// auxiliary suffix, index-aligned with variable creation order. It is
// read-only once built; the prover borrows it and never mutates it.
type Witness struct {
	public []fr.Element
	secret []fr.Element
}

// NewWitness synthesizes the circuit in proving mode, collecting every
// allocated value. A nil value fails with ErrAssignmentMissing.
func NewWitness(circuit Circuit) (*Witness, error) {
	one := fr.One()
	cs := &witnessSystem{public: []fr.Element{one}}
	if err := circuit.Synthesize(cs); err != nil {
		return nil, err
	}
	return &Witness{public: cs.public, secret: cs.secret}, nil
}

// Public returns the public-input values in allocation order, excluding the
// constant one wire. This is the vector the verifier consumes.
func (w *Witness) Public() []fr.Element {
	out := make([]fr.Element, len(w.public)-1)
	copy(out, w.public[1:])
	return out
}

// Vector returns the full assignment [one, public inputs..., auxiliaries...].
func (w *Witness) Vector() []fr.Element {
	out := make([]fr.Element, 0, len(w.public)+len(w.secret))
	out = append(out, w.public...)
	out = append(out, w.secret...)
	return out
}

// NbPublic returns the number of public wires, including the constant one.
func (w *Witness) NbPublic() int { return len(w.public) }

// NbSecret returns the number of auxiliary wires.
func (w *Witness) NbSecret() int { return len(w.secret) }

// witnessSystem is the proving-mode ConstraintSystem: it records values and
// ignores constraint structure (the compiled R1CS already has it).
type witnessSystem struct {
	public []fr.Element
	secret []fr.Element
}

func (cs *witnessSystem) One() Variable {
	return Variable{Visibility: Public, Index: 0}
}

func (cs *witnessSystem) Allocate(value *fr.Element) (Variable, error) {
	if value == nil {
		return Variable{}, ErrAssignmentMissing
	}
	v := Variable{Visibility: Secret, Index: len(cs.secret)}
	cs.secret = append(cs.secret, *value)
	return v, nil
}

func (cs *witnessSystem) AllocateInput(value *fr.Element) (Variable, error) {
	if value == nil {
		return Variable{}, ErrAssignmentMissing
	}
	v := Variable{Visibility: Public, Index: len(cs.public)}
	cs.public = append(cs.public, *value)
	return v, nil
}

func (cs *witnessSystem) Enforce(_, _, _ LinearCombination) {}
