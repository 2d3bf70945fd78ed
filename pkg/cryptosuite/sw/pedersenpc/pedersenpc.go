package pedersenpc

import (
	"fmt"
	"io"

	"github.com/mr-shifu/evss/core/hash"
	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/polynomial"
	"github.com/mr-shifu/evss/core/math/sample"
	"github.com/mr-shifu/evss/pkg/common/cryptosuite/pcs"
	"github.com/pkg/errors"
)

const Name = "pedersenpc"

// Scheme is a Pedersen commitment to each coefficient of a polynomial. An opening
// at z reveals v = p(z) and proves knowledge of ρ = r(z) such that
// C(z) - v⋅G = ρ⋅H, where C(X) = Σ Cᵢ⋅Xⁱ.
type Scheme struct {
	group curve.Curve
}

var _ pcs.Scheme = (*Scheme)(nil)

func New(group curve.Curve) *Scheme {
	return &Scheme{group: group}
}

func (s *Scheme) Name() string {
	return Name
}

func (s *Scheme) Group() curve.Curve {
	return s.group
}

// Setup samples a fresh seed for H.
func (s *Scheme) Setup(maxDegree int, rand io.Reader) (pcs.UniversalParams, error) {
	if maxDegree < 1 || maxDegree > MaxDegree {
		return nil, fmt.Errorf("%w: %d", ErrDegreeUnsupported, maxDegree)
	}
	seed := make([]byte, seedBytes)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, errors.WithMessage(err, "pedersenpc: failed to read seed")
	}
	h, err := deriveH(s.group, seed)
	if err != nil {
		return nil, err
	}
	return &UniversalParams{
		group:     s.group,
		maxDegree: maxDegree,
		seed:      seed,
		h:         h,
	}, nil
}

func (s *Scheme) Trim(pp pcs.UniversalParams, degree int) (pcs.CommitterKey, pcs.VerifierKey, error) {
	params, ok := pp.(*UniversalParams)
	if !ok || params.group == nil {
		return nil, nil, ErrInvalidValue
	}
	if params.group.Name() != s.group.Name() {
		return nil, nil, ErrGroupMismatch
	}
	if degree < 1 || degree > params.maxDegree {
		return nil, nil, fmt.Errorf("%w: %d", ErrDegreeUnsupported, degree)
	}
	k := key{
		group:  params.group,
		degree: degree,
		seed:   params.seed,
		h:      params.h,
	}
	return &CommitterKey{key: k}, &VerifierKey{key: k}, nil
}

func (s *Scheme) Commit(ck pcs.CommitterKey, p *polynomial.Polynomial, rand io.Reader) (pcs.Commitment, pcs.Randomness, error) {
	k, err := s.committerKey(ck)
	if err != nil {
		return nil, nil, err
	}
	if p == nil || p.Group().Name() != s.group.Name() {
		return nil, nil, ErrGroupMismatch
	}
	if p.Len() > k.degree {
		return nil, nil, fmt.Errorf("%w: %d > %d", ErrDegreeTooLarge, p.Len(), k.degree)
	}

	blinding := polynomial.NewPolynomial(rand, s.group, p.Degree(), sample.Scalar(rand, s.group))
	a := p.Coefficients()
	r := blinding.Coefficients()
	points := make([]curve.Point, len(a))
	for i := range a {
		// Cᵢ = aᵢ⋅G + rᵢ⋅H
		points[i] = a[i].ActOnBase().Add(r[i].Act(k.h))
	}

	return &Commitment{exponent: polynomial.NewExponent(s.group, points)}, &Randomness{blinding: blinding}, nil
}

func (s *Scheme) Open(ck pcs.CommitterKey, p *polynomial.Polynomial, c pcs.Commitment, point, challenge curve.Scalar, r pcs.Randomness, rand io.Reader) (pcs.Proof, error) {
	k, err := s.committerKey(ck)
	if err != nil {
		return nil, err
	}
	commitment, ok := c.(*Commitment)
	if !ok || commitment.exponent == nil {
		return nil, ErrInvalidValue
	}
	randomness, ok := r.(*Randomness)
	if !ok || randomness.blinding == nil {
		return nil, ErrInvalidValue
	}
	if p == nil || p.Group().Name() != s.group.Name() {
		return nil, ErrGroupMismatch
	}
	if err := s.checkScalars(point, challenge); err != nil {
		return nil, err
	}
	if p.Len() > k.degree {
		return nil, fmt.Errorf("%w: %d > %d", ErrDegreeTooLarge, p.Len(), k.degree)
	}
	if randomness.blinding.Len() != p.Len() || commitment.exponent.Len() != p.Len() {
		return nil, ErrRandomnessLength
	}

	value := p.Evaluate(point)
	rho := randomness.blinding.Evaluate(point)

	nonce := sample.Scalar(rand, s.group)
	a := nonce.Act(k.h)

	e, err := fiatShamir(s.group, k.h, commitment, point, value, challenge, a)
	if err != nil {
		return nil, err
	}

	// s = k + e⋅ρ
	z := e.Mul(rho).Add(nonce)

	return &Proof{group: s.group, a: a, s: z}, nil
}

// Check does not consume rand.
func (s *Scheme) Check(vk pcs.VerifierKey, c pcs.Commitment, point, value curve.Scalar, proof pcs.Proof, challenge curve.Scalar, _ io.Reader) (bool, error) {
	k, ok := vk.(*VerifierKey)
	if !ok || k.group == nil {
		return false, ErrInvalidValue
	}
	if k.group.Name() != s.group.Name() {
		return false, ErrGroupMismatch
	}
	commitment, ok := c.(*Commitment)
	if !ok || commitment.exponent == nil {
		return false, ErrInvalidValue
	}
	pi, ok := proof.(*Proof)
	if !ok || pi.a == nil || pi.s == nil {
		return false, ErrInvalidValue
	}
	if commitment.exponent.Group().Name() != s.group.Name() || pi.group.Name() != s.group.Name() {
		return false, ErrGroupMismatch
	}
	if commitment.exponent.Len() > k.degree {
		return false, fmt.Errorf("%w: %d > %d", ErrDegreeTooLarge, commitment.exponent.Len(), k.degree)
	}
	if err := s.checkScalars(point, value, challenge); err != nil {
		return false, err
	}

	e, err := fiatShamir(s.group, k.h, commitment, point, value, challenge, pi.a)
	if err != nil {
		return false, err
	}

	// C(z) - v⋅G
	blinded := commitment.exponent.Evaluate(point).Sub(value.ActOnBase())

	lhs := pi.s.Act(k.h)
	rhs := e.Act(blinded).Add(pi.a)

	return lhs.Equal(rhs), nil
}

func (s *Scheme) NewUniversalParams() pcs.UniversalParams {
	return &UniversalParams{group: s.group}
}

func (s *Scheme) NewCommitterKey() pcs.CommitterKey {
	return &CommitterKey{key: key{group: s.group}}
}

func (s *Scheme) NewVerifierKey() pcs.VerifierKey {
	return &VerifierKey{key: key{group: s.group}}
}

func (s *Scheme) NewCommitment() pcs.Commitment {
	return &Commitment{exponent: polynomial.EmptyExponent(s.group)}
}

func (s *Scheme) NewRandomness() pcs.Randomness {
	return &Randomness{blinding: polynomial.EmptyPolynomial(s.group)}
}

func (s *Scheme) NewProof() pcs.Proof {
	return &Proof{group: s.group}
}

func (s *Scheme) committerKey(ck pcs.CommitterKey) (*CommitterKey, error) {
	k, ok := ck.(*CommitterKey)
	if !ok || k.group == nil {
		return nil, ErrInvalidValue
	}
	if k.group.Name() != s.group.Name() {
		return nil, ErrGroupMismatch
	}
	return k, nil
}

// fiatShamir derives the proof challenge from the transcript (G, H, C, z, v, challenge, A).
func fiatShamir(group curve.Curve, h curve.Point, c *Commitment, point, value, challenge curve.Scalar, a curve.Point) (curve.Scalar, error) {
	if point == nil || value == nil || challenge == nil {
		return nil, ErrInvalidValue
	}
	hs := hash.New()
	if err := hs.WriteAny(group.NewBasePoint(), h, c.exponent, point, value, challenge, a); err != nil {
		return nil, errors.WithMessage(err, "pedersenpc: failed to hash transcript")
	}
	return sample.Scalar(hs.Digest(), group), nil
}

// checkScalars rejects nil scalars and scalars of another group.
func (s *Scheme) checkScalars(scalars ...curve.Scalar) error {
	for _, x := range scalars {
		if x == nil {
			return ErrInvalidValue
		}
		if x.Curve().Name() != s.group.Name() {
			return ErrGroupMismatch
		}
	}
	return nil
}
