// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package frontend

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

// mulCircuit proves knowledge of secret factors x, y of a public product z.
type mulCircuit struct {
	x, y, z *fr.Element
}

func (c *mulCircuit) Synthesize(cs ConstraintSystem) error {
	x, err := cs.Allocate(c.x)
	if err != nil {
		return err
	}
	y, err := cs.Allocate(c.y)
	if err != nil {
		return err
	}
	z, err := cs.AllocateInput(c.z)
	if err != nil {
		return err
	}
	cs.Enforce(LC(x), LC(y), LC(z))
	return nil
}

func mulAssignment(x, y, z uint64) *mulCircuit {
	var xe, ye, ze fr.Element
	xe.SetUint64(x)
	ye.SetUint64(y)
	ze.SetUint64(z)
	return &mulCircuit{x: &xe, y: &ye, z: &ze}
}

func TestCompile(t *testing.T) {
	r1cs, err := Compile(&mulCircuit{})
	require.NoError(t, err)

	require.Equal(t, 2, r1cs.NbPublic) // constant one + z
	require.Equal(t, 2, r1cs.NbSecret)
	require.Equal(t, 4, r1cs.NbWires())
	// x*y=z plus one input constraint per public wire
	require.Len(t, r1cs.Constraints, 3)

	// the appended input constraints pin each public wire in L
	for i := 0; i < r1cs.NbPublic; i++ {
		ic := r1cs.Constraints[1+i]
		require.Len(t, ic.L, 1)
		require.Equal(t, Variable{Visibility: Public, Index: i}, ic.L[0].Variable)
		require.Empty(t, ic.R)
		require.Empty(t, ic.O)
	}
}

type unconstrainedCircuit struct{}

func (c *unconstrainedCircuit) Synthesize(cs ConstraintSystem) error {
	if _, err := cs.Allocate(nil); err != nil {
		return err
	}
	x, err := cs.Allocate(nil)
	if err != nil {
		return err
	}
	cs.Enforce(LC(x), LC(cs.One()), LC(x))
	return nil
}

func TestCompileUnconstrained(t *testing.T) {
	_, err := Compile(&unconstrainedCircuit{})
	require.ErrorIs(t, err, ErrUnconstrainedVariable)
}

// coalesceCircuit writes x + 2x - 3x + y on the left-hand side; the x terms
// cancel when the constraint is recorded.
type coalesceCircuit struct{}

func (c *coalesceCircuit) Synthesize(cs ConstraintSystem) error {
	x, err := cs.Allocate(nil)
	if err != nil {
		return err
	}
	y, err := cs.Allocate(nil)
	if err != nil {
		return err
	}

	var two, minusThree fr.Element
	two.SetUint64(2)
	minusThree.SetUint64(3)
	minusThree.Neg(&minusThree)

	l := LC(x).AddTerm(two, x).AddTerm(minusThree, x).AddTerm(fr.One(), y)
	cs.Enforce(l, LC(cs.One()), LC(y))
	cs.Enforce(LC(x), LC(cs.One()), LC(x)) // keep x constrained
	return nil
}

func TestLinearCombinationCoalescing(t *testing.T) {
	r1cs, err := Compile(&coalesceCircuit{})
	require.NoError(t, err)

	l := r1cs.Constraints[0].L
	require.Len(t, l, 1)
	require.Equal(t, Variable{Visibility: Secret, Index: 1}, l[0].Variable)
	one := fr.One()
	require.True(t, l[0].Coeff.Equal(&one))
}

func TestWitness(t *testing.T) {
	w, err := NewWitness(mulAssignment(3, 5, 15))
	require.NoError(t, err)

	require.Equal(t, 2, w.NbPublic())
	require.Equal(t, 2, w.NbSecret())

	pub := w.Public()
	require.Len(t, pub, 1)
	var fifteen fr.Element
	fifteen.SetUint64(15)
	require.True(t, pub[0].Equal(&fifteen))

	vec := w.Vector()
	require.Len(t, vec, 4)
	one := fr.One()
	require.True(t, vec[0].Equal(&one))
}

func TestWitnessAssignmentMissing(t *testing.T) {
	var xe fr.Element
	xe.SetUint64(3)
	_, err := NewWitness(&mulCircuit{x: &xe}) // y, z unassigned
	require.ErrorIs(t, err, ErrAssignmentMissing)
}

func TestIsSatisfied(t *testing.T) {
	r1cs, err := Compile(&mulCircuit{})
	require.NoError(t, err)

	good, err := NewWitness(mulAssignment(3, 5, 15))
	require.NoError(t, err)
	require.NoError(t, r1cs.IsSatisfied(good))

	bad, err := NewWitness(mulAssignment(3, 5, 16))
	require.NoError(t, err)
	err = r1cs.IsSatisfied(bad)
	require.ErrorIs(t, err, ErrUnsatisfied)
	require.Contains(t, err.Error(), "constraint #0")
}

func TestEvaluateShapeMismatch(t *testing.T) {
	r1cs, err := Compile(&mulCircuit{})
	require.NoError(t, err)

	n := len(r1cs.Constraints)
	a := make([]fr.Element, n)
	b := make([]fr.Element, n)
	c := make([]fr.Element, n)
	err = r1cs.Evaluate(make([]fr.Element, 2), a, b, c, 1)
	require.ErrorIs(t, err, ErrInvalidWitness)
}

func TestR1CSSerialization(t *testing.T) {
	r1cs, err := Compile(&coalesceCircuit{})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = r1cs.WriteTo(&buf)
	require.NoError(t, err)

	var read R1CS
	_, err = read.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, r1cs.NbPublic, read.NbPublic)
	require.Equal(t, r1cs.NbSecret, read.NbSecret)
	require.Equal(t, r1cs.Constraints, read.Constraints)
}

func TestWitnessSerialization(t *testing.T) {
	w, err := NewWitness(mulAssignment(3, 5, 15))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = w.WriteTo(&buf)
	require.NoError(t, err)

	var read Witness
	_, err = read.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, w.Vector(), read.Vector())
	require.Equal(t, w.Public(), read.Public())

	// a tampered constant one wire is rejected
	read.public[0].SetUint64(2)
	buf.Reset()
	_, err = read.WriteTo(&buf)
	require.NoError(t, err)
	var bad Witness
	_, err = bad.ReadFrom(&buf)
	require.ErrorIs(t, err, ErrInvalidWitness)
}

func TestR1CSSerializationRejectsGarbage(t *testing.T) {
	var read R1CS

	_, err := read.ReadFrom(bytes.NewReader([]byte{0x42, 0x13, 0x37}))
	require.ErrorIs(t, err, ErrInvalidConstraintSystem)
}

func TestR1CSSerializationRejectsVersionMismatch(t *testing.T) {
	data, err := cbor.Marshal(serializedR1CS{Version: "99.0.0", NbPublic: 1})
	require.NoError(t, err)

	var read R1CS
	_, err = read.ReadFrom(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrInvalidConstraintSystem)
	require.Contains(t, err.Error(), "version")
}

func TestR1CSSerializationRejectsBadWireReference(t *testing.T) {
	// a constraint referencing a wire outside the declared counts
	bogus := &R1CS{
		NbPublic: 1,
		NbSecret: 1,
		Constraints: []R1C{{
			L: LC(Variable{Visibility: Secret, Index: 7}),
		}},
	}
	var buf bytes.Buffer
	_, err := bogus.WriteTo(&buf)
	require.NoError(t, err)

	var read R1CS
	_, err = read.ReadFrom(&buf)
	require.ErrorIs(t, err, ErrInvalidConstraintSystem)
}
