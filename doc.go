// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package veil is a Groth16 zkSNARK proving engine over BN254.
//
// A circuit is described by implementing frontend.Circuit: its Synthesize
// method allocates variables and enforces rank-1 constraints against a
// frontend.ConstraintSystem. The same circuit is synthesized twice: once in
// setup mode (frontend.Compile, structure only) and once per proof in proving
// mode (frontend.NewWitness, with values).
//
// The groth16 package consumes the compiled constraint system:
//
//	r1cs, _ := frontend.Compile(&circuit)
//	pk, vk, _ := groth16.Setup(r1cs)
//	witness, _ := frontend.NewWitness(&assignedCircuit)
//	proof, _ := groth16.Prove(r1cs, pk, witness)
//	ok, _ := groth16.Verify(proof, vk, witness.Public())
//
// Finite-field and elliptic-curve arithmetic (including the pairing) come
// from github.com/consensys/gnark-crypto; this module implements the layers
// above it: constraint synthesis, the R1CS to QAP reduction over a radix-2
// FFT domain, windowed multi-scalar multiplication, and the Groth16
// setup/prove/verify protocol.
package veil

import "github.com/blang/semver/v4"

// Version is stamped into serialized constraint systems; decoding rejects
// artifacts produced by a different major version.
var Version = semver.MustParse("0.2.1")
