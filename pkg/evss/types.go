package evss

import (
	"encoding/json"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/polynomial"
	"github.com/mr-shifu/evss/pkg/codec"
	"github.com/mr-shifu/evss/pkg/common/cryptosuite/pcs"
	"github.com/pkg/errors"
)

// Params are the dealer's parameters. Degree is the number of coefficients of the
// sharing polynomial, which is also the number of shares needed to reconstruct.
type Params struct {
	Degree       int
	CommitterKey pcs.CommitterKey
	VerifierKey  pcs.VerifierKey
}

// PublicParams is the part of Params shareholders need.
type PublicParams struct {
	Degree      int
	VerifierKey pcs.VerifierKey
}

// SecretCommitment is the dealer's polynomial together with its commitment and the
// hiding randomness. Only Public() may leave the dealer.
type SecretCommitment struct {
	Polynomial *polynomial.Polynomial
	Commitment pcs.Commitment
	Randomness pcs.Randomness
}

type PublicCommitment struct {
	Commitment pcs.Commitment
}

// Share is an evaluation of the committed polynomial at Point, with a proof bound
// to Challenge.
type Share struct {
	Point     curve.Scalar
	Value     curve.Scalar
	Challenge curve.Scalar
	Proof     pcs.Proof
}

func (p *Params) Public() *PublicParams {
	return &PublicParams{
		Degree:      p.Degree,
		VerifierKey: p.VerifierKey,
	}
}

func (sc *SecretCommitment) Public() *PublicCommitment {
	return &PublicCommitment{Commitment: sc.Commitment}
}

// EmptyParams returns Params ready to be unmarshalled into.
func EmptyParams(scheme pcs.Scheme) *Params {
	return &Params{
		CommitterKey: scheme.NewCommitterKey(),
		VerifierKey:  scheme.NewVerifierKey(),
	}
}

func EmptyPublicParams(scheme pcs.Scheme) *PublicParams {
	return &PublicParams{VerifierKey: scheme.NewVerifierKey()}
}

func EmptySecretCommitment(scheme pcs.Scheme) *SecretCommitment {
	return &SecretCommitment{
		Polynomial: polynomial.EmptyPolynomial(scheme.Group()),
		Commitment: scheme.NewCommitment(),
		Randomness: scheme.NewRandomness(),
	}
}

func EmptyPublicCommitment(scheme pcs.Scheme) *PublicCommitment {
	return &PublicCommitment{Commitment: scheme.NewCommitment()}
}

func EmptyShare(scheme pcs.Scheme) *Share {
	group := scheme.Group()
	return &Share{
		Point:     group.NewScalar(),
		Value:     group.NewScalar(),
		Challenge: group.NewScalar(),
		Proof:     scheme.NewProof(),
	}
}

type rawParams struct {
	Degree       int
	CommitterKey []byte `json:",omitempty"`
	VerifierKey  []byte
}

type rawCommitment struct {
	Polynomial []byte `json:",omitempty"`
	Commitment []byte
	Randomness []byte `json:",omitempty"`
}

type rawShare struct {
	Point     []byte
	Value     []byte
	Challenge []byte
	Proof     []byte
}

func (p *Params) toRaw() (*rawParams, error) {
	ck, err := codec.Encode(p.CommitterKey)
	if err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode committer key")
	}
	vk, err := codec.Encode(p.VerifierKey)
	if err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode verifier key")
	}
	return &rawParams{Degree: p.Degree, CommitterKey: ck, VerifierKey: vk}, nil
}

func (p *Params) fromRaw(raw *rawParams) error {
	if p.CommitterKey == nil || p.VerifierKey == nil {
		return ErrNoScheme
	}
	if err := codec.Decode(raw.CommitterKey, p.CommitterKey); err != nil {
		return errors.WithMessage(err, "evss: failed to decode committer key")
	}
	if err := codec.Decode(raw.VerifierKey, p.VerifierKey); err != nil {
		return errors.WithMessage(err, "evss: failed to decode verifier key")
	}
	p.Degree = raw.Degree
	return nil
}

func (p *Params) MarshalBinary() ([]byte, error) {
	raw, err := p.toRaw()
	if err != nil {
		return nil, err
	}
	return codec.MarshalCBOR(raw)
}

func (p *Params) UnmarshalBinary(data []byte) error {
	raw := &rawParams{}
	if err := codec.UnmarshalCBOR(data, raw); err != nil {
		return err
	}
	return p.fromRaw(raw)
}

func (p *Params) MarshalJSON() ([]byte, error) {
	raw, err := p.toRaw()
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

func (p *Params) UnmarshalJSON(data []byte) error {
	raw := &rawParams{}
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}
	return p.fromRaw(raw)
}

func (pp *PublicParams) toRaw() (*rawParams, error) {
	vk, err := codec.Encode(pp.VerifierKey)
	if err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode verifier key")
	}
	return &rawParams{Degree: pp.Degree, VerifierKey: vk}, nil
}

func (pp *PublicParams) fromRaw(raw *rawParams) error {
	if pp.VerifierKey == nil {
		return ErrNoScheme
	}
	if err := codec.Decode(raw.VerifierKey, pp.VerifierKey); err != nil {
		return errors.WithMessage(err, "evss: failed to decode verifier key")
	}
	pp.Degree = raw.Degree
	return nil
}

func (pp *PublicParams) MarshalBinary() ([]byte, error) {
	raw, err := pp.toRaw()
	if err != nil {
		return nil, err
	}
	return codec.MarshalCBOR(raw)
}

func (pp *PublicParams) UnmarshalBinary(data []byte) error {
	raw := &rawParams{}
	if err := codec.UnmarshalCBOR(data, raw); err != nil {
		return err
	}
	return pp.fromRaw(raw)
}

func (pp *PublicParams) MarshalJSON() ([]byte, error) {
	raw, err := pp.toRaw()
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

func (pp *PublicParams) UnmarshalJSON(data []byte) error {
	raw := &rawParams{}
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}
	return pp.fromRaw(raw)
}

func (sc *SecretCommitment) toRaw() (*rawCommitment, error) {
	p, err := codec.Encode(sc.Polynomial)
	if err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode polynomial")
	}
	c, err := codec.Encode(sc.Commitment)
	if err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode commitment")
	}
	r, err := codec.Encode(sc.Randomness)
	if err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode randomness")
	}
	return &rawCommitment{Polynomial: p, Commitment: c, Randomness: r}, nil
}

func (sc *SecretCommitment) fromRaw(raw *rawCommitment) error {
	if sc.Polynomial == nil || sc.Commitment == nil || sc.Randomness == nil {
		return ErrNoScheme
	}
	if err := codec.Decode(raw.Polynomial, sc.Polynomial); err != nil {
		return errors.WithMessage(err, "evss: failed to decode polynomial")
	}
	if err := codec.Decode(raw.Commitment, sc.Commitment); err != nil {
		return errors.WithMessage(err, "evss: failed to decode commitment")
	}
	if err := codec.Decode(raw.Randomness, sc.Randomness); err != nil {
		return errors.WithMessage(err, "evss: failed to decode randomness")
	}
	return nil
}

func (sc *SecretCommitment) MarshalBinary() ([]byte, error) {
	raw, err := sc.toRaw()
	if err != nil {
		return nil, err
	}
	return codec.MarshalCBOR(raw)
}

func (sc *SecretCommitment) UnmarshalBinary(data []byte) error {
	raw := &rawCommitment{}
	if err := codec.UnmarshalCBOR(data, raw); err != nil {
		return err
	}
	return sc.fromRaw(raw)
}

func (pc *PublicCommitment) toRaw() (*rawCommitment, error) {
	c, err := codec.Encode(pc.Commitment)
	if err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode commitment")
	}
	return &rawCommitment{Commitment: c}, nil
}

func (pc *PublicCommitment) fromRaw(raw *rawCommitment) error {
	if pc.Commitment == nil {
		return ErrNoScheme
	}
	if err := codec.Decode(raw.Commitment, pc.Commitment); err != nil {
		return errors.WithMessage(err, "evss: failed to decode commitment")
	}
	return nil
}

func (pc *PublicCommitment) MarshalBinary() ([]byte, error) {
	raw, err := pc.toRaw()
	if err != nil {
		return nil, err
	}
	return codec.MarshalCBOR(raw)
}

func (pc *PublicCommitment) UnmarshalBinary(data []byte) error {
	raw := &rawCommitment{}
	if err := codec.UnmarshalCBOR(data, raw); err != nil {
		return err
	}
	return pc.fromRaw(raw)
}

func (pc *PublicCommitment) MarshalJSON() ([]byte, error) {
	raw, err := pc.toRaw()
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

func (pc *PublicCommitment) UnmarshalJSON(data []byte) error {
	raw := &rawCommitment{}
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}
	return pc.fromRaw(raw)
}

func (s *Share) toRaw() (*rawShare, error) {
	raw := &rawShare{}
	var err error
	if raw.Point, err = codec.Encode(s.Point); err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode point")
	}
	if raw.Value, err = codec.Encode(s.Value); err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode value")
	}
	if raw.Challenge, err = codec.Encode(s.Challenge); err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode challenge")
	}
	if raw.Proof, err = codec.Encode(s.Proof); err != nil {
		return nil, errors.WithMessage(err, "evss: failed to encode proof")
	}
	return raw, nil
}

func (s *Share) fromRaw(raw *rawShare) error {
	if s.Point == nil || s.Value == nil || s.Challenge == nil || s.Proof == nil {
		return ErrNoScheme
	}
	if err := codec.Decode(raw.Point, s.Point); err != nil {
		return errors.WithMessage(err, "evss: failed to decode point")
	}
	if err := codec.Decode(raw.Value, s.Value); err != nil {
		return errors.WithMessage(err, "evss: failed to decode value")
	}
	if err := codec.Decode(raw.Challenge, s.Challenge); err != nil {
		return errors.WithMessage(err, "evss: failed to decode challenge")
	}
	if err := codec.Decode(raw.Proof, s.Proof); err != nil {
		return errors.WithMessage(err, "evss: failed to decode proof")
	}
	return nil
}

func (s *Share) MarshalBinary() ([]byte, error) {
	raw, err := s.toRaw()
	if err != nil {
		return nil, err
	}
	return codec.MarshalCBOR(raw)
}

func (s *Share) UnmarshalBinary(data []byte) error {
	raw := &rawShare{}
	if err := codec.UnmarshalCBOR(data, raw); err != nil {
		return err
	}
	return s.fromRaw(raw)
}

func (s *Share) MarshalJSON() ([]byte, error) {
	raw, err := s.toRaw()
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

func (s *Share) UnmarshalJSON(data []byte) error {
	raw := &rawShare{}
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}
	return s.fromRaw(raw)
}
