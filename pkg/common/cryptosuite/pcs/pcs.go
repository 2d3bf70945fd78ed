package pcs

import (
	"encoding"
	"io"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/polynomial"
)

// Value is an opaque value produced by a Scheme. Its binary encoding is canonical:
// equal values always marshal to equal bytes.
type Value interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// UniversalParams are the public parameters output by Setup.
type UniversalParams interface {
	Value

	// MaxDegree returns the largest number of coefficients Trim may support.
	MaxDegree() int
}

// CommitterKey is the key used to commit to and open polynomials.
type CommitterKey interface {
	Value

	// SupportedDegree returns the largest number of coefficients the key can commit to.
	SupportedDegree() int
}

// VerifierKey is the key used to check openings.
type VerifierKey interface {
	Value

	// SupportedDegree returns the largest number of coefficients the key can verify.
	SupportedDegree() int
}

type Commitment interface {
	Value
}

// Randomness is the hiding randomness bound to a Commitment. It must stay with the
// committer.
type Randomness interface {
	Value
}

type Proof interface {
	Value
}

// Scheme is a hiding, binding polynomial commitment scheme with evaluation proofs.
type Scheme interface {
	// Name returns the identifier of the scheme.
	Name() string

	// Group returns the curve whose scalar field the committed polynomials live in.
	Group() curve.Curve

	// Setup generates UniversalParams for polynomials with up to maxDegree coefficients.
	Setup(maxDegree int, rand io.Reader) (UniversalParams, error)

	// Trim specializes pp to polynomials with up to degree coefficients.
	Trim(pp UniversalParams, degree int) (CommitterKey, VerifierKey, error)

	// Commit binds p and returns the commitment with its hiding randomness.
	Commit(ck CommitterKey, p *polynomial.Polynomial, rand io.Reader) (Commitment, Randomness, error)

	// Open proves that p, committed as c with randomness r, evaluates to p(point).
	// The proof is bound to challenge.
	Open(ck CommitterKey, p *polynomial.Polynomial, c Commitment, point, challenge curve.Scalar, r Randomness, rand io.Reader) (Proof, error)

	// Check reports whether proof shows that the polynomial committed in c evaluates
	// to value at point. A false verdict is not an error.
	Check(vk VerifierKey, c Commitment, point, value curve.Scalar, proof Proof, challenge curve.Scalar, rand io.Reader) (bool, error)

	// Empty values for decoding.
	NewUniversalParams() UniversalParams
	NewCommitterKey() CommitterKey
	NewVerifierKey() VerifierKey
	NewCommitment() Commitment
	NewRandomness() Randomness
	NewProof() Proof
}
