// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package fft

import (
	"encoding/binary"
	"errors"
	"io"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrDomainSizeTooLarge is returned when the scalar field has no root of
// unity of the required order. BN254's Fr has 2-adicity 28; a domain of
// cardinality m needs a primitive 2m-th root of unity for coset evaluation,
// so m may not exceed 2^27.
var ErrDomainSizeTooLarge = errors.New("domain size too large: no root of unity of the required order in Fr")

// maxOrderRoot is the 2-adicity of Fr: r-1 = 2^28 * odd.
const maxOrderRoot = 28

// rootOfUnityStr is a generator of the full 2^28 two-adic subgroup of Fr,
// 5^((r-1)/2^28) mod r.
const rootOfUnityStr = "19103219067921713944291392827692070036145651957329286315305642004821462161904"

// Domain is the smallest power-of-two multiplicative subgroup of Fr with at
// least nbConstraints elements. It carries the precomputed roots needed for
// forward, inverse and coset transforms.
//
// The coset used for vanishing-polynomial division is the one generated by
// GeneratorSqRt, a primitive 2m-th root of unity: on that coset
// Z(x) = x^m - 1 evaluates to the constant -2.
type Domain struct {
	Cardinality      uint64
	CardinalityInv   fr.Element
	Generator        fr.Element
	GeneratorInv     fr.Element
	GeneratorSqRt    fr.Element
	GeneratorSqRtInv fr.Element
}

// NewDomain returns the evaluation domain for a circuit with nbConstraints
// constraints. It fails with ErrDomainSizeTooLarge if the padded cardinality
// exceeds the field's two-adicity ceiling.
func NewDomain(nbConstraints int) (*Domain, error) {
	if nbConstraints < 1 {
		nbConstraints = 1
	}

	logCard := bits.Len64(uint64(nbConstraints - 1))
	if nbConstraints == 1 {
		logCard = 0
	}
	// a 2m-th root must exist for the coset shift
	if logCard+1 > maxOrderRoot {
		return nil, ErrDomainSizeTooLarge
	}

	d := &Domain{Cardinality: uint64(1) << logCard}

	// GeneratorSqRt generates the 2m-th roots; its square generates the domain.
	var rootOfUnity fr.Element
	if _, err := rootOfUnity.SetString(rootOfUnityStr); err != nil {
		panic(err) // compile-time constant
	}
	expo := big.NewInt(1)
	expo.Lsh(expo, uint(maxOrderRoot-logCard-1))
	d.GeneratorSqRt.Exp(rootOfUnity, expo)

	d.Generator.Square(&d.GeneratorSqRt)
	d.GeneratorInv.Inverse(&d.Generator)
	d.GeneratorSqRtInv.Inverse(&d.GeneratorSqRt)
	d.CardinalityInv.SetUint64(d.Cardinality)
	d.CardinalityInv.Inverse(&d.CardinalityInv)

	return d, nil
}

// WriteTo writes the domain cardinality to w; the roots are recomputed on
// read.
func (d *Domain) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.BigEndian, d.Cardinality); err != nil {
		return 0, err
	}
	return 8, nil
}

// ReadFrom reads a domain cardinality from r and rebuilds the precomputed
// roots.
func (d *Domain) ReadFrom(r io.Reader) (int64, error) {
	var card uint64
	if err := binary.Read(r, binary.BigEndian, &card); err != nil {
		return 0, err
	}
	if card == 0 || bits.OnesCount64(card) != 1 || card > (1<<(maxOrderRoot-1)) {
		return 8, ErrDomainSizeTooLarge
	}
	rebuilt, err := NewDomain(int(card))
	if err != nil {
		return 8, err
	}
	*d = *rebuilt
	return 8, nil
}
