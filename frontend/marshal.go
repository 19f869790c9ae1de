// Copyright 2025 Veil Contributors
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package frontend

import (
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"

	veil "github.com/veil-zk/veil"
)

// serialized wire format for a compiled constraint system; the version stamp
// lets decoders reject artifacts from an incompatible release.
type serializedR1CS struct {
	Version     string
	NbPublic    int
	NbSecret    int
	Constraints []R1C
}

// WriteTo serializes the constraint system (CBOR, deterministic encoding).
func (r *R1CS) WriteTo(w io.Writer) (int64, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	data, err := enc.Marshal(serializedR1CS{
		Version:     veil.Version.String(),
		NbPublic:    r.NbPublic,
		NbSecret:    r.NbSecret,
		Constraints: r.Constraints,
	})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom deserializes a constraint system written by WriteTo. It fails with
// ErrInvalidConstraintSystem on malformed data, an incompatible version stamp
// or inconsistent wire counts.
func (r *R1CS) ReadFrom(rd io.Reader) (int64, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return int64(len(data)), err
	}

	dm, err := cbor.DecOptions{
		MaxArrayElements: 134217728,
		MaxMapPairs:      134217728,
	}.DecMode()
	if err != nil {
		return int64(len(data)), err
	}

	var s serializedR1CS
	if err := dm.Unmarshal(data, &s); err != nil {
		return int64(len(data)), fmt.Errorf("%w: %v", ErrInvalidConstraintSystem, err)
	}

	v, err := semver.Parse(s.Version)
	if err != nil {
		return int64(len(data)), fmt.Errorf("%w: bad version stamp %q", ErrInvalidConstraintSystem, s.Version)
	}
	if v.Major != veil.Version.Major {
		return int64(len(data)), fmt.Errorf("%w: version %s incompatible with %s", ErrInvalidConstraintSystem, v, veil.Version)
	}

	if s.NbPublic < 1 || s.NbSecret < 0 {
		return int64(len(data)), fmt.Errorf("%w: inconsistent wire counts", ErrInvalidConstraintSystem)
	}
	nbWires := s.NbPublic + s.NbSecret
	shape := R1CS{NbPublic: s.NbPublic, NbSecret: s.NbSecret}
	for i := range s.Constraints {
		for _, lc := range []LinearCombination{s.Constraints[i].L, s.Constraints[i].R, s.Constraints[i].O} {
			for _, t := range lc {
				if id := shape.WireID(t.Variable); id < 0 || id >= nbWires {
					return int64(len(data)), fmt.Errorf("%w: term references wire %d of %d", ErrInvalidConstraintSystem, id, nbWires)
				}
			}
		}
	}

	r.NbPublic = s.NbPublic
	r.NbSecret = s.NbSecret
	r.Constraints = s.Constraints
	return int64(len(data)), nil
}

type serializedWitness struct {
	Version string
	Public  []fr.Element
	Secret  []fr.Element
}

// WriteTo serializes the witness (CBOR, deterministic encoding). Witness
// files hold secret values; store them accordingly.
func (w *Witness) WriteTo(wr io.Writer) (int64, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	data, err := enc.Marshal(serializedWitness{
		Version: veil.Version.String(),
		Public:  w.public,
		Secret:  w.secret,
	})
	if err != nil {
		return 0, err
	}
	n, err := wr.Write(data)
	return int64(n), err
}

// ReadFrom deserializes a witness written by WriteTo.
func (w *Witness) ReadFrom(rd io.Reader) (int64, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return int64(len(data)), err
	}

	dm, err := cbor.DecOptions{
		MaxArrayElements: 134217728,
		MaxMapPairs:      134217728,
	}.DecMode()
	if err != nil {
		return int64(len(data)), err
	}

	var s serializedWitness
	if err := dm.Unmarshal(data, &s); err != nil {
		return int64(len(data)), fmt.Errorf("%w: %v", ErrInvalidWitness, err)
	}

	v, err := semver.Parse(s.Version)
	if err != nil {
		return int64(len(data)), fmt.Errorf("%w: bad version stamp %q", ErrInvalidWitness, s.Version)
	}
	if v.Major != veil.Version.Major {
		return int64(len(data)), fmt.Errorf("%w: version %s incompatible with %s", ErrInvalidWitness, v, veil.Version)
	}
	if len(s.Public) < 1 {
		return int64(len(data)), fmt.Errorf("%w: missing constant one wire", ErrInvalidWitness)
	}
	one := fr.One()
	if !s.Public[0].Equal(&one) {
		return int64(len(data)), fmt.Errorf("%w: wire 0 must be the constant one", ErrInvalidWitness)
	}

	w.public = s.Public
	w.secret = s.Secret
	return int64(len(data)), nil
}
