// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package groth16

import (
	"fmt"
	"io"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/crypto/blake2b"
)

// WriteTo serializes the proof in compressed form (256 bytes).
func (proof *Proof) WriteTo(w io.Writer) (int64, error) {
	return proof.writeTo(w, false)
}

// WriteRawTo serializes the proof with uncompressed points.
func (proof *Proof) WriteRawTo(w io.Writer) (int64, error) {
	return proof.writeTo(w, true)
}

func (proof *Proof) writeTo(w io.Writer, raw bool) (int64, error) {
	var enc *bn254.Encoder
	if raw {
		enc = bn254.NewEncoder(w, bn254.RawEncoding())
	} else {
		enc = bn254.NewEncoder(w)
	}
	toEncode := []interface{}{&proof.Ar, &proof.Bs, &proof.Krs}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// ReadFrom deserializes a proof, validating that every point is on the curve
// and in the prime-order subgroup. Failures wrap ErrMalformedProof.
func (proof *Proof) ReadFrom(r io.Reader) (int64, error) {
	dec := bn254.NewDecoder(r)
	toDecode := []interface{}{&proof.Ar, &proof.Bs, &proof.Krs}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), fmt.Errorf("%w: %v", ErrMalformedProof, err)
		}
	}
	return dec.BytesRead(), proof.sanityCheck()
}

// WriteTo serializes the verifying key in compressed form.
func (vk *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	return vk.writeTo(w, false)
}

// WriteRawTo serializes the verifying key with uncompressed points.
func (vk *VerifyingKey) WriteRawTo(w io.Writer) (int64, error) {
	return vk.writeTo(w, true)
}

func (vk *VerifyingKey) writeTo(w io.Writer, raw bool) (int64, error) {
	var enc *bn254.Encoder
	if raw {
		enc = bn254.NewEncoder(w, bn254.RawEncoding())
	} else {
		enc = bn254.NewEncoder(w)
	}
	toEncode := []interface{}{&vk.G1.Alpha, &vk.G2.Beta, &vk.G2.Gamma, &vk.G2.Delta, vk.G1.K}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// ReadFrom deserializes a verifying key and re-derives its pairing constants.
// Failures wrap ErrMalformedVerifyingKey.
func (vk *VerifyingKey) ReadFrom(r io.Reader) (int64, error) {
	dec := bn254.NewDecoder(r)
	toDecode := []interface{}{&vk.G1.Alpha, &vk.G2.Beta, &vk.G2.Gamma, &vk.G2.Delta, &vk.G1.K}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), fmt.Errorf("%w: %v", ErrMalformedVerifyingKey, err)
		}
	}
	if len(vk.G1.K) == 0 {
		return dec.BytesRead(), fmt.Errorf("%w: empty public key vector", ErrMalformedVerifyingKey)
	}
	if vk.G2.Gamma.IsInfinity() || vk.G2.Delta.IsInfinity() {
		return dec.BytesRead(), fmt.Errorf("%w: identity point", ErrMalformedVerifyingKey)
	}
	if err := vk.Precompute(); err != nil {
		return dec.BytesRead(), fmt.Errorf("%w: %v", ErrMalformedVerifyingKey, err)
	}
	return dec.BytesRead(), nil
}

// Fingerprint returns a blake2b digest of the serialized key, for logging and
// for checking that prover and verifier agree on a parameter set.
func (vk *VerifyingKey) Fingerprint() ([32]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return [32]byte{}, err
	}
	if _, err := vk.WriteTo(h); err != nil {
		return [32]byte{}, err
	}
	var fp [32]byte
	copy(fp[:], h.Sum(nil))
	return fp, nil
}

// WriteTo serializes the proving key in compressed form: the evaluation
// domain, then the group elements.
func (pk *ProvingKey) WriteTo(w io.Writer) (int64, error) {
	return pk.writeTo(w, false)
}

// WriteRawTo serializes the proving key with uncompressed points.
func (pk *ProvingKey) WriteRawTo(w io.Writer) (int64, error) {
	return pk.writeTo(w, true)
}

func (pk *ProvingKey) writeTo(w io.Writer, raw bool) (int64, error) {
	n, err := pk.Domain.WriteTo(w)
	if err != nil {
		return n, err
	}
	var enc *bn254.Encoder
	if raw {
		enc = bn254.NewEncoder(w, bn254.RawEncoding())
	} else {
		enc = bn254.NewEncoder(w)
	}
	toEncode := []interface{}{
		&pk.G1.Alpha, &pk.G1.Beta, &pk.G1.Delta,
		pk.G1.A, pk.G1.B, pk.G1.Z, pk.G1.K,
		&pk.G2.Beta, &pk.G2.Delta, pk.G2.B,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return n + enc.BytesWritten(), err
		}
	}
	return n + enc.BytesWritten(), nil
}

// ReadFrom deserializes a proving key, validating curve and subgroup
// membership of every point. Failures wrap ErrMalformedProvingKey.
func (pk *ProvingKey) ReadFrom(r io.Reader) (int64, error) {
	return pk.readFrom(r)
}

// UnsafeReadFrom deserializes a proving key without subgroup checks. Only use
// it on keys from a trusted source; proving keys are large and the checks
// dominate deserialization time.
func (pk *ProvingKey) UnsafeReadFrom(r io.Reader) (int64, error) {
	return pk.readFrom(r, bn254.NoSubgroupChecks())
}

func (pk *ProvingKey) readFrom(r io.Reader, opts ...func(*bn254.Decoder)) (int64, error) {
	n, err := pk.Domain.ReadFrom(r)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrMalformedProvingKey, err)
	}
	dec := bn254.NewDecoder(r, opts...)
	toDecode := []interface{}{
		&pk.G1.Alpha, &pk.G1.Beta, &pk.G1.Delta,
		&pk.G1.A, &pk.G1.B, &pk.G1.Z, &pk.G1.K,
		&pk.G2.Beta, &pk.G2.Delta, &pk.G2.B,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return n + dec.BytesRead(), fmt.Errorf("%w: %v", ErrMalformedProvingKey, err)
		}
	}
	if len(pk.G1.Z) != int(pk.Domain.Cardinality) {
		return n + dec.BytesRead(), fmt.Errorf("%w: %d quotient elements for a domain of size %d",
			ErrMalformedProvingKey, len(pk.G1.Z), pk.Domain.Cardinality)
	}
	if len(pk.G1.A) != len(pk.G1.B) || len(pk.G1.B) != len(pk.G2.B) {
		return n + dec.BytesRead(), fmt.Errorf("%w: inconsistent wire vector lengths", ErrMalformedProvingKey)
	}
	return n + dec.BytesRead(), nil
}
