// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package groth16 implements the Groth16 zk-SNARK proving scheme over BN254:
// parameter generation from a compiled constraint system, proving against a
// full witness, and single-pairing-check verification against public inputs.
package groth16

import (
	"math/big"
	"time"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/veil-zk/veil/fft"
	"github.com/veil-zk/veil/frontend"
	"github.com/veil-zk/veil/logger"
)

// ProvingKey holds the prover side of the common reference string. The wire
// vectors are index-aligned with the assignment layout
// [one, public inputs..., auxiliaries...]; K covers auxiliary wires only.
type ProvingKey struct {
	Domain fft.Domain

	G1 struct {
		Alpha, Beta, Delta bn254.G1Affine
		A, B               []bn254.G1Affine // [A_i(t)], [B_i(t)], per wire
		Z                  []bn254.G1Affine // [Z(t)·t^i/δ]
		K                  []bn254.G1Affine // [(βA_i+αB_i+C_i)/δ], auxiliary wires
	}
	G2 struct {
		Beta, Delta bn254.G2Affine
		B           []bn254.G2Affine
	}
}

// VerifyingKey holds the verifier side of the common reference string.
// K covers the public wires, constant one first.
type VerifyingKey struct {
	G1 struct {
		Alpha bn254.G1Affine
		K     []bn254.G1Affine // [(βA_i+αB_i+C_i)/γ], public wires
	}
	G2 struct {
		Beta, Gamma, Delta bn254.G2Affine
	}

	// pairing constants derived by Precompute
	e           bn254.GT // e(α, β)
	gammaNeg    bn254.G2Affine
	deltaNeg    bn254.G2Affine
	precomputed bool
}

// NbPublicInputs returns the number of public inputs the key expects,
// excluding the constant one wire.
func (vk *VerifyingKey) NbPublicInputs() int { return len(vk.G1.K) - 1 }

// Precompute derives the pairing constants Verify consumes: e(α, β) and the
// negated γ and δ. Setup and ReadFrom call it; call it yourself only when
// assembling a key by hand, before any concurrent use.
func (vk *VerifyingKey) Precompute() error {
	e, err := bn254.Pair([]bn254.G1Affine{vk.G1.Alpha}, []bn254.G2Affine{vk.G2.Beta})
	if err != nil {
		return err
	}
	vk.e = e
	vk.gammaNeg.Neg(&vk.G2.Gamma)
	vk.deltaNeg.Neg(&vk.G2.Delta)
	vk.precomputed = true
	return nil
}

// toxicWaste holds the secret sample the common reference string is built
// from. It must never leave Setup; wipe zeroes it on every exit path.
type toxicWaste struct {
	t, alpha, beta, gamma, delta fr.Element
}

func sampleToxicWaste() (toxicWaste, error) {
	var tw toxicWaste
	for _, e := range []*fr.Element{&tw.t, &tw.alpha, &tw.beta, &tw.gamma, &tw.delta} {
		for {
			if _, err := e.SetRandom(); err != nil {
				return tw, err
			}
			if !e.IsZero() {
				break
			}
		}
	}
	return tw, nil
}

func (tw *toxicWaste) wipe() {
	tw.t.SetZero()
	tw.alpha.SetZero()
	tw.beta.SetZero()
	tw.gamma.SetZero()
	tw.delta.SetZero()
}

// Setup samples a common reference string for the given constraint system.
// The toxic waste is scoped to this call and zeroed before it returns; anyone
// holding it could forge proofs, so real deployments derive parameters from a
// multi-party ceremony instead.
func Setup(r1cs *frontend.R1CS) (*ProvingKey, *VerifyingKey, error) {
	log := logger.Logger()
	start := time.Now()

	domain, err := fft.NewDomain(len(r1cs.Constraints))
	if err != nil {
		return nil, nil, err
	}

	tw, err := sampleToxicWaste()
	if err != nil {
		return nil, nil, err
	}
	defer tw.wipe()

	// QAP polynomials evaluated at the secret point t
	A, B, C := setupABC(r1cs, domain, &tw)

	nbWires := r1cs.NbWires()
	nbPublic := r1cs.NbPublic
	m := int(domain.Cardinality)
	one := fr.One()

	var gammaInv, deltaInv fr.Element
	gammaInv.Inverse(&tw.gamma)
	deltaInv.Inverse(&tw.delta)

	// Z(t)·t^i/δ for the quotient commitment
	var mBig big.Int
	mBig.SetUint64(domain.Cardinality)
	var zdt fr.Element
	zdt.Exp(tw.t, &mBig)
	zdt.Sub(&zdt, &one)
	zdt.Mul(&zdt, &deltaInv)

	// one fixed-base batch per group; layout: singles, then wire vectors
	g1Scalars := make([]fr.Element, 0, 3+2*nbWires+m+nbWires)
	g1Scalars = append(g1Scalars, tw.alpha, tw.beta, tw.delta)
	g1Scalars = append(g1Scalars, A...)
	g1Scalars = append(g1Scalars, B...)

	zi := zdt
	for i := 0; i < m; i++ {
		g1Scalars = append(g1Scalars, zi)
		zi.Mul(&zi, &tw.t)
	}

	var k, tmp fr.Element
	for i := 0; i < nbWires; i++ {
		k.Mul(&tw.beta, &A[i])
		tmp.Mul(&tw.alpha, &B[i])
		k.Add(&k, &tmp)
		k.Add(&k, &C[i])
		if i < nbPublic {
			k.Mul(&k, &gammaInv)
		} else {
			k.Mul(&k, &deltaInv)
		}
		g1Scalars = append(g1Scalars, k)
	}

	g2Scalars := make([]fr.Element, 0, 3+nbWires)
	g2Scalars = append(g2Scalars, tw.beta, tw.delta, tw.gamma)
	g2Scalars = append(g2Scalars, B...)

	_, _, g1Gen, g2Gen := bn254.Generators()
	g1Points := fixedBaseG1(&g1Gen, g1Scalars)
	g2Points := fixedBaseG2(&g2Gen, g2Scalars)

	pk := &ProvingKey{Domain: *domain}
	vk := &VerifyingKey{}

	pk.G1.Alpha = g1Points[0]
	pk.G1.Beta = g1Points[1]
	pk.G1.Delta = g1Points[2]
	off := 3
	pk.G1.A = g1Points[off : off+nbWires]
	off += nbWires
	pk.G1.B = g1Points[off : off+nbWires]
	off += nbWires
	pk.G1.Z = g1Points[off : off+m]
	off += m
	vk.G1.K = g1Points[off : off+nbPublic]
	pk.G1.K = g1Points[off+nbPublic : off+nbWires]
	vk.G1.Alpha = pk.G1.Alpha

	pk.G2.Beta = g2Points[0]
	pk.G2.Delta = g2Points[1]
	vk.G2.Beta = g2Points[0]
	vk.G2.Delta = g2Points[1]
	vk.G2.Gamma = g2Points[2]
	pk.G2.B = g2Points[3:]

	if err := vk.Precompute(); err != nil {
		return nil, nil, err
	}

	log.Info().
		Int("nbConstraints", len(r1cs.Constraints)).
		Uint64("domain", domain.Cardinality).
		Dur("took", time.Since(start)).
		Msg("groth16 setup done")

	return pk, vk, nil
}

// setupABC evaluates the wire polynomials of the QAP at t. The i-th Lagrange
// basis polynomial over the domain is carried iteratively:
//
//	L_0(t)     = (t^m - 1) / (m · (t - 1))
//	L_{i+1}(t) = L_i(t) · w · (t - w^i) / (t - w^{i+1})
func setupABC(r1cs *frontend.R1CS, domain *fft.Domain, tw *toxicWaste) (A, B, C []fr.Element) {
	nbWires := r1cs.NbWires()
	A = make([]fr.Element, nbWires)
	B = make([]fr.Element, nbWires)
	C = make([]fr.Element, nbWires)

	one := fr.One()

	var mBig big.Int
	mBig.SetUint64(domain.Cardinality)

	var L, den fr.Element
	L.Exp(tw.t, &mBig)
	L.Sub(&L, &one)
	L.Mul(&L, &domain.CardinalityInv)
	den.Sub(&tw.t, &one)
	L.Div(&L, &den)

	accumulate := func(dst []fr.Element, lc frontend.LinearCombination) {
		var tmp fr.Element
		for _, term := range lc {
			tmp.Mul(&term.Coeff, &L)
			id := r1cs.WireID(term.Variable)
			dst[id].Add(&dst[id], &tmp)
		}
	}

	wPow := one // w^i
	var num, wNext fr.Element
	for i := range r1cs.Constraints {
		accumulate(A, r1cs.Constraints[i].L)
		accumulate(B, r1cs.Constraints[i].R)
		accumulate(C, r1cs.Constraints[i].O)

		num.Sub(&tw.t, &wPow)
		wNext.Mul(&wPow, &domain.Generator)
		den.Sub(&tw.t, &wNext)
		L.Mul(&L, &domain.Generator)
		L.Mul(&L, &num)
		L.Div(&L, &den)
		wPow = wNext
	}
	return
}

// fixedBaseG1 multiplies a single base by many scalars. The batch routine
// expects nonzero scalars, so zero slots are skipped and left at infinity.
func fixedBaseG1(base *bn254.G1Affine, scalars []fr.Element) []bn254.G1Affine {
	out := make([]bn254.G1Affine, len(scalars))
	nz := make([]fr.Element, 0, len(scalars))
	idx := make([]int, 0, len(scalars))
	for i := range scalars {
		if !scalars[i].IsZero() {
			nz = append(nz, scalars[i])
			idx = append(idx, i)
		}
	}
	if len(nz) == 0 {
		return out
	}
	points := bn254.BatchScalarMultiplicationG1(base, nz)
	for j, i := range idx {
		out[i] = points[j]
	}
	return out
}

func fixedBaseG2(base *bn254.G2Affine, scalars []fr.Element) []bn254.G2Affine {
	out := make([]bn254.G2Affine, len(scalars))
	nz := make([]fr.Element, 0, len(scalars))
	idx := make([]int, 0, len(scalars))
	for i := range scalars {
		if !scalars[i].IsZero() {
			nz = append(nz, scalars[i])
			idx = append(idx, i)
		}
	}
	if len(nz) == 0 {
		return out
	}
	points := bn254.BatchScalarMultiplicationG2(base, nz)
	for j, i := range idx {
		out[i] = points[j]
	}
	return out
}
