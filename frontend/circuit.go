// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package frontend defines rank-1 constraint synthesis: circuits allocate
// variables and enforce constraints against a ConstraintSystem, once in setup
// mode (structure only) and once per proof in proving mode (with values).
package frontend

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	// ErrAssignmentMissing is returned when a variable's value is required in
	// proving mode but the circuit did not supply one.
	ErrAssignmentMissing = errors.New("variable assignment missing in proving mode")

	// ErrUnconstrainedVariable is returned by Compile when a variable is
	// allocated but never appears in any constraint; this usually signals a
	// missing circuit constraint.
	ErrUnconstrainedVariable = errors.New("variable is not constrained")

	// ErrUnsatisfied is returned when an assignment does not satisfy a
	// constraint.
	ErrUnsatisfied = errors.New("unsatisfied constraint")

	// ErrInvalidWitness is returned when a witness does not match the shape of
	// the constraint system it is evaluated against.
	ErrInvalidWitness = errors.New("witness does not match constraint system")

	// ErrInvalidConstraintSystem is returned when deserializing a constraint
	// system fails.
	ErrInvalidConstraintSystem = errors.New("invalid serialized constraint system")
)

// Circuit is the sole extension point implemented by callers: Synthesize
// allocates the circuit's variables and enforces its constraints. It must
// perform the same allocations in the same order in both modes.
type Circuit interface {
	Synthesize(cs ConstraintSystem) error
}

// ConstraintSystem is what a Circuit synthesizes against. The concrete system
// is chosen by the engine: Compile passes a setup-mode system that records
// structure and ignores values; NewWitness passes a proving-mode system that
// requires every value.
type ConstraintSystem interface {
	// One returns the public variable fixed to the constant 1.
	One() Variable

	// Allocate creates a variable in the private (auxiliary) partition.
	// In proving mode a nil value fails with ErrAssignmentMissing; in setup
	// mode the value is ignored.
	Allocate(value *fr.Element) (Variable, error)

	// AllocateInput creates a variable in the public-input partition.
	AllocateInput(value *fr.Element) (Variable, error)

	// Enforce records the constraint l * r = o.
	Enforce(l, r, o LinearCombination)
}
