package pedersenpc

import (
	"github.com/mr-shifu/evss/core/hash"
	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/pkg/codec"
	"github.com/pkg/errors"
)

const seedBytes = hash.SecBytes

// UniversalParams holds the seed from which the second generator H is derived.
type UniversalParams struct {
	group     curve.Curve
	maxDegree int
	seed      []byte
	h         curve.Point
}

type rawParams struct {
	Group  string
	Degree int
	Seed   []byte
}

func (pp *UniversalParams) MaxDegree() int {
	return pp.maxDegree
}

// H returns the generator used for hiding.
func (pp *UniversalParams) H() curve.Point {
	return pp.h
}

func (pp *UniversalParams) MarshalBinary() ([]byte, error) {
	if pp.group == nil {
		return nil, ErrMalformed
	}
	return codec.MarshalCBOR(rawParams{
		Group:  pp.group.Name(),
		Degree: pp.maxDegree,
		Seed:   pp.seed,
	})
}

func (pp *UniversalParams) UnmarshalBinary(data []byte) error {
	group, degree, seed, h, err := decodeParams(data, pp.group)
	if err != nil {
		return err
	}
	pp.group, pp.maxDegree, pp.seed, pp.h = group, degree, seed, h
	return nil
}

// key is shared by CommitterKey and VerifierKey. Both carry the same public data.
type key struct {
	group  curve.Curve
	degree int
	seed   []byte
	h      curve.Point
}

func (k *key) SupportedDegree() int {
	return k.degree
}

func (k *key) H() curve.Point {
	return k.h
}

func (k *key) MarshalBinary() ([]byte, error) {
	if k.group == nil {
		return nil, ErrMalformed
	}
	return codec.MarshalCBOR(rawParams{
		Group:  k.group.Name(),
		Degree: k.degree,
		Seed:   k.seed,
	})
}

func (k *key) UnmarshalBinary(data []byte) error {
	group, degree, seed, h, err := decodeParams(data, k.group)
	if err != nil {
		return err
	}
	k.group, k.degree, k.seed, k.h = group, degree, seed, h
	return nil
}

// CommitterKey commits to and opens polynomials with up to SupportedDegree coefficients.
type CommitterKey struct {
	key
}

// VerifierKey checks openings of polynomials with up to SupportedDegree coefficients.
type VerifierKey struct {
	key
}

func decodeParams(data []byte, expected curve.Curve) (curve.Curve, int, []byte, curve.Point, error) {
	raw := &rawParams{}
	if err := codec.UnmarshalCBOR(data, raw); err != nil {
		return nil, 0, nil, nil, errors.WithMessage(err, "pedersenpc: failed to decode params")
	}
	group, err := curve.FromName(raw.Group)
	if err != nil {
		return nil, 0, nil, nil, err
	}
	if expected != nil && expected.Name() != group.Name() {
		return nil, 0, nil, nil, ErrGroupMismatch
	}
	if raw.Degree < 1 || raw.Degree > MaxDegree || len(raw.Seed) != seedBytes {
		return nil, 0, nil, nil, ErrMalformed
	}
	h, err := deriveH(group, raw.Seed)
	if err != nil {
		return nil, 0, nil, nil, err
	}
	return group, raw.Degree, raw.Seed, h, nil
}

// deriveH hashes the seed to a point of group.
func deriveH(group curve.Curve, seed []byte) (curve.Point, error) {
	hs := hash.New()
	if err := hs.WriteAny("pedersenpc.H", group.Name(), seed); err != nil {
		return nil, err
	}
	h, err := group.HashToPoint(hs.Digest())
	if err != nil {
		return nil, errors.WithMessage(err, "pedersenpc: failed to derive H")
	}
	return h, nil
}
