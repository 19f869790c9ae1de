// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package groth16

import "errors"

var (
	// ErrUnsatisfiable is returned by Prove when the witness does not satisfy
	// the constraint system.
	ErrUnsatisfiable = errors.New("groth16: unsatisfiable constraint system")

	// ErrInvalidInputCount is returned by Verify when the public input vector
	// length does not match the verifying key.
	ErrInvalidInputCount = errors.New("groth16: wrong number of public inputs")

	// ErrMalformedProof is returned when a proof fails structural validation,
	// either on deserialization or before the pairing check.
	ErrMalformedProof = errors.New("groth16: malformed proof")

	// ErrMalformedVerifyingKey is returned when a verifying key fails
	// structural validation.
	ErrMalformedVerifyingKey = errors.New("groth16: malformed verifying key")

	// ErrMalformedProvingKey is returned when a proving key fails structural
	// validation, including keys carrying unexpected identity points.
	ErrMalformedProvingKey = errors.New("groth16: malformed proving key")
)
