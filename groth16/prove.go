// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package groth16

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/veil-zk/veil/fft"
	"github.com/veil-zk/veil/frontend"
	"github.com/veil-zk/veil/internal/parallel"
	"github.com/veil-zk/veil/logger"
	"github.com/veil-zk/veil/multiexp"
)

// Proof is a Groth16 proof: two G1 points and one G2 point, 256 bytes in
// compressed form. Proofs are zero-knowledge; they leak nothing about the
// auxiliary assignment beyond satisfiability.
type Proof struct {
	Ar, Krs bn254.G1Affine
	Bs      bn254.G2Affine
}

// Prove generates a proof that the witness satisfies the constraint system,
// under the given proving key. It fails with ErrUnsatisfiable if it does not,
// identifying the lowest violated constraint.
func Prove(r1cs *frontend.R1CS, pk *ProvingKey, witness *frontend.Witness, opts ...Option) (*Proof, error) {
	log := logger.Logger()
	start := time.Now()

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	if witness.NbPublic() != r1cs.NbPublic || witness.NbSecret() != r1cs.NbSecret {
		return nil, fmt.Errorf("%w: witness shape %d+%d, system expects %d+%d",
			frontend.ErrInvalidWitness, witness.NbPublic(), witness.NbSecret(), r1cs.NbPublic, r1cs.NbSecret)
	}
	if err := pk.sanityCheck(r1cs); err != nil {
		return nil, err
	}

	wireValues := witness.Vector()
	n := len(r1cs.Constraints)
	card := int(pk.Domain.Cardinality)

	// constraint evaluations, zero-padded to the domain
	a := make([]fr.Element, card)
	b := make([]fr.Element, card)
	c := make([]fr.Element, card)
	if err := r1cs.Evaluate(wireValues, a[:n], b[:n], c[:n], cfg.NbTasks); err != nil {
		if errors.Is(err, frontend.ErrUnsatisfied) {
			return nil, fmt.Errorf("%w: %v", ErrUnsatisfiable, err)
		}
		return nil, err
	}

	h := computeH(a, b, c, &pk.Domain, cfg.NbTasks)

	// blinding scalars; fresh per proof, so proving twice over the same
	// witness yields distinct proofs
	var r, s fr.Element
	if _, err := r.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := s.SetRandom(); err != nil {
		return nil, err
	}
	var rBig, sBig big.Int
	r.BigInt(&rBig)
	s.BigInt(&sBig)

	var delta1 bn254.G1Jac
	delta1.FromAffine(&pk.G1.Delta)
	var delta2 bn254.G2Jac
	delta2.FromAffine(&pk.G2.Delta)

	msm := cfg.msm()

	// Ar = [α + Σ wᵢAᵢ(t) + rδ]₁
	var arJac, p1 bn254.G1Jac
	multiexp.InG1(&arJac, pk.G1.A, wireValues, msm)
	arJac.AddMixed(&pk.G1.Alpha)
	p1.ScalarMultiplication(&delta1, &rBig)
	arJac.AddAssign(&p1)

	// Bs = [β + Σ wᵢBᵢ(t) + sδ]₂, with its G1 shadow for Krs
	var bs2Jac, p2 bn254.G2Jac
	multiexp.InG2(&bs2Jac, pk.G2.B, wireValues, msm)
	bs2Jac.AddMixed(&pk.G2.Beta)
	p2.ScalarMultiplication(&delta2, &sBig)
	bs2Jac.AddAssign(&p2)

	var bs1Jac bn254.G1Jac
	multiexp.InG1(&bs1Jac, pk.G1.B, wireValues, msm)
	bs1Jac.AddMixed(&pk.G1.Beta)
	p1.ScalarMultiplication(&delta1, &sBig)
	bs1Jac.AddAssign(&p1)

	// Krs = [Σ_aux wᵢKᵢ + Σ hᵢZᵢ + s·Ar + r·Bs₁ − rs·δ]₁
	var krsJac, krsZ bn254.G1Jac
	multiexp.InG1(&krsJac, pk.G1.K, wireValues[r1cs.NbPublic:], msm)
	multiexp.InG1(&krsZ, pk.G1.Z, h, msm)
	krsJac.AddAssign(&krsZ)
	p1.ScalarMultiplication(&arJac, &sBig)
	krsJac.AddAssign(&p1)
	p1.ScalarMultiplication(&bs1Jac, &rBig)
	krsJac.AddAssign(&p1)
	var rs fr.Element
	var rsBig big.Int
	rs.Mul(&r, &s)
	rs.Neg(&rs)
	rs.BigInt(&rsBig)
	p1.ScalarMultiplication(&delta1, &rsBig)
	krsJac.AddAssign(&p1)

	proof := &Proof{}
	proof.Ar.FromJacobian(&arJac)
	proof.Bs.FromJacobian(&bs2Jac)
	proof.Krs.FromJacobian(&krsJac)

	log.Debug().
		Int("nbConstraints", n).
		Dur("took", time.Since(start)).
		Msg("groth16 prover done")

	return proof, nil
}

// sanityCheck rejects keys that cannot match the constraint system, and keys
// whose δ collapsed to the identity (a subverted CRS would let its author
// forge proofs, and proving with one silently produces garbage).
func (pk *ProvingKey) sanityCheck(r1cs *frontend.R1CS) error {
	nbWires := r1cs.NbWires()
	switch {
	case pk.G1.Delta.IsInfinity() || pk.G2.Delta.IsInfinity():
		return fmt.Errorf("%w: δ is the identity", ErrMalformedProvingKey)
	case len(pk.G1.A) != nbWires || len(pk.G1.B) != nbWires || len(pk.G2.B) != nbWires:
		return fmt.Errorf("%w: wire vectors sized for %d wires, system has %d", ErrMalformedProvingKey, len(pk.G1.A), nbWires)
	case len(pk.G1.K) != r1cs.NbSecret:
		return fmt.Errorf("%w: %d auxiliary key elements, system has %d", ErrMalformedProvingKey, len(pk.G1.K), r1cs.NbSecret)
	case int(pk.Domain.Cardinality) < len(r1cs.Constraints) || len(pk.G1.Z) != int(pk.Domain.Cardinality):
		return fmt.Errorf("%w: domain of size %d for %d constraints", ErrMalformedProvingKey, pk.Domain.Cardinality, len(r1cs.Constraints))
	}
	return nil
}

// computeH builds the quotient polynomial h = (a·b - c)/Z in evaluation form
// and returns its coefficients. a, b, c are consumed. The coset trick makes
// the division a pointwise scaling: on the shifted domain g·H, the vanishing
// polynomial Z(x) = x^m - 1 is the constant -2.
func computeH(a, b, c []fr.Element, d *fft.Domain, nbTasks int) []fr.Element {
	d.FFTInverse(a, nbTasks)
	d.FFTInverse(b, nbTasks)
	d.FFTInverse(c, nbTasks)

	d.CosetFFT(a, nbTasks)
	d.CosetFFT(b, nbTasks)
	d.CosetFFT(c, nbTasks)

	var minusTwoInv fr.Element
	minusTwoInv.SetUint64(2)
	minusTwoInv.Neg(&minusTwoInv)
	minusTwoInv.Inverse(&minusTwoInv)

	parallel.Execute(len(a), func(start, end int) {
		var t fr.Element
		for i := start; i < end; i++ {
			t.Mul(&a[i], &b[i])
			t.Sub(&t, &c[i])
			a[i].Mul(&t, &minusTwoInv)
		}
	}, nbTasks)

	d.CosetFFTInverse(a, nbTasks)
	return a
}
