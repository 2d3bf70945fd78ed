package pedersenpc

import (
	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/polynomial"
	"github.com/mr-shifu/evss/pkg/codec"
	"github.com/pkg/errors"
)

// Commitment holds Cᵢ = aᵢ⋅G + rᵢ⋅H for every coefficient aᵢ.
type Commitment struct {
	exponent *polynomial.Exponent
}

// Exponent returns the committed points as an exponent polynomial.
func (c *Commitment) Exponent() *polynomial.Exponent {
	return c.exponent
}

func (c *Commitment) MarshalBinary() ([]byte, error) {
	if c.exponent == nil {
		return nil, ErrMalformed
	}
	return c.exponent.MarshalBinary()
}

func (c *Commitment) UnmarshalBinary(data []byte) error {
	var group curve.Curve
	if c.exponent != nil {
		group = c.exponent.Group()
	}
	exponent := polynomial.EmptyExponent(group)
	if err := exponent.UnmarshalBinary(data); err != nil {
		return errors.WithMessage(err, "pedersenpc: failed to decode commitment")
	}
	c.exponent = exponent
	return nil
}

// Randomness is the blinding polynomial r(X) of a Commitment.
type Randomness struct {
	blinding *polynomial.Polynomial
}

func (r *Randomness) MarshalBinary() ([]byte, error) {
	if r.blinding == nil {
		return nil, ErrMalformed
	}
	return r.blinding.MarshalBinary()
}

func (r *Randomness) UnmarshalBinary(data []byte) error {
	var group curve.Curve
	if r.blinding != nil {
		group = r.blinding.Group()
	}
	blinding := polynomial.EmptyPolynomial(group)
	if err := blinding.UnmarshalBinary(data); err != nil {
		return errors.WithMessage(err, "pedersenpc: failed to decode randomness")
	}
	r.blinding = blinding
	return nil
}

// Proof is a Schnorr proof of knowledge of ρ with C(z) - v⋅G = ρ⋅H.
type Proof struct {
	group curve.Curve
	// A = k⋅H
	a curve.Point
	// s = k + e⋅ρ
	s curve.Scalar
}

type rawProof struct {
	Group string
	A     []byte
	S     []byte
}

func (p *Proof) MarshalBinary() ([]byte, error) {
	if p.group == nil || p.a == nil || p.s == nil {
		return nil, ErrMalformed
	}
	a, err := p.a.MarshalBinary()
	if err != nil {
		return nil, err
	}
	s, err := p.s.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return codec.MarshalCBOR(rawProof{
		Group: p.group.Name(),
		A:     a,
		S:     s,
	})
}

func (p *Proof) UnmarshalBinary(data []byte) error {
	raw := &rawProof{}
	if err := codec.UnmarshalCBOR(data, raw); err != nil {
		return errors.WithMessage(err, "pedersenpc: failed to decode proof")
	}
	group, err := curve.FromName(raw.Group)
	if err != nil {
		return err
	}
	if p.group != nil && p.group.Name() != group.Name() {
		return ErrGroupMismatch
	}
	a := group.NewPoint()
	if err := a.UnmarshalBinary(raw.A); err != nil {
		return errors.WithMessage(err, "pedersenpc: failed to decode proof")
	}
	s := group.NewScalar()
	if err := s.UnmarshalBinary(raw.S); err != nil {
		return errors.WithMessage(err, "pedersenpc: failed to decode proof")
	}
	p.group, p.a, p.s = group, a, s
	return nil
}
