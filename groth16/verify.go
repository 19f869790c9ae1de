// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package groth16

import (
	"fmt"
	"time"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/veil-zk/veil/logger"
	"github.com/veil-zk/veil/multiexp"
)

// Verify checks a proof against a verifying key and the public inputs, in the
// order the circuit allocated them (constant one excluded). Structural
// problems fail fast with an error; a well-formed proof that does not verify
// returns (false, nil).
func Verify(proof *Proof, vk *VerifyingKey, publicInputs []fr.Element, opts ...Option) (bool, error) {
	log := logger.Logger()
	start := time.Now()

	cfg, err := NewConfig(opts...)
	if err != nil {
		return false, err
	}

	if len(vk.G1.K) == 0 {
		return false, fmt.Errorf("%w: empty public key vector", ErrMalformedVerifyingKey)
	}
	if len(publicInputs) != vk.NbPublicInputs() {
		return false, fmt.Errorf("%w: got %d, key expects %d", ErrInvalidInputCount, len(publicInputs), vk.NbPublicInputs())
	}
	if err := proof.sanityCheck(); err != nil {
		return false, err
	}

	// pairing constants; a key straight from Setup or ReadFrom has them cached
	e := vk.e
	gammaNeg, deltaNeg := vk.gammaNeg, vk.deltaNeg
	if !vk.precomputed {
		e, err = bn254.Pair([]bn254.G1Affine{vk.G1.Alpha}, []bn254.G2Affine{vk.G2.Beta})
		if err != nil {
			return false, err
		}
		gammaNeg.Neg(&vk.G2.Gamma)
		deltaNeg.Neg(&vk.G2.Delta)
	}

	// kSum = K₀ + Σ xᵢ·Kᵢ
	var kJac bn254.G1Jac
	multiexp.InG1(&kJac, vk.G1.K[1:], publicInputs, cfg.msm())
	kJac.AddMixed(&vk.G1.K[0])
	var kSum bn254.G1Affine
	kSum.FromJacobian(&kJac)

	// e(Ar, Bs) · e(kSum, -γ) · e(Krs, -δ) == e(α, β)
	ml, err := bn254.MillerLoop(
		[]bn254.G1Affine{proof.Ar, kSum, proof.Krs},
		[]bn254.G2Affine{proof.Bs, gammaNeg, deltaNeg},
	)
	if err != nil {
		return false, err
	}
	res := bn254.FinalExponentiation(&ml)
	ok := res.Equal(&e)

	log.Debug().
		Bool("verified", ok).
		Dur("took", time.Since(start)).
		Msg("groth16 verifier done")

	return ok, nil
}

// sanityCheck rejects proofs whose points are the identity, off the curve or
// outside the prime-order subgroup. Deserialized proofs already passed these
// checks; hand-built ones have not.
func (proof *Proof) sanityCheck() error {
	switch {
	case proof.Ar.IsInfinity() || proof.Krs.IsInfinity() || proof.Bs.IsInfinity():
		return fmt.Errorf("%w: identity point", ErrMalformedProof)
	case !proof.Ar.IsInSubGroup() || !proof.Krs.IsInSubGroup():
		return fmt.Errorf("%w: G1 point outside the subgroup", ErrMalformedProof)
	case !proof.Bs.IsInSubGroup():
		return fmt.Errorf("%w: G2 point outside the subgroup", ErrMalformedProof)
	}
	return nil
}
