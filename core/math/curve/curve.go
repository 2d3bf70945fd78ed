package curve

import (
	"encoding"
	"errors"
	"io"

	"github.com/cronokirby/saferith"
)

var ErrUnsupportedCurve = errors.New("curve: unsupported curve")

// Curve represents a prime-order group together with its scalar field.
type Curve interface {
	// NewPoint returns the identity element of the group.
	NewPoint() Point
	// NewBasePoint returns the standard generator G.
	NewBasePoint() Point
	// NewScalar returns the zero scalar.
	NewScalar() Scalar
	// HashToPoint consumes the digest stream until it finds a valid encoding of a
	// point, and returns that point. Nobody knows its discrete log with respect to G.
	HashToPoint(digest io.Reader) (Point, error)
	// Name returns the canonical name of the curve.
	Name() string
	// ScalarBits returns the number of significant bits in a scalar.
	ScalarBits() int
	// SafeScalarBytes returns the number of random bytes needed to sample a scalar
	// with negligible bias.
	SafeScalarBytes() int
	// Order returns the order of the group as a Modulus.
	Order() *saferith.Modulus
}

// Scalar is an element of the scalar field of a Curve.
//
// Arithmetic methods modify the receiver and return it.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	// Invert sets s ← s⁻¹. The inverse of zero is zero.
	Invert() Scalar
	Negate() Scalar
	Equal(Scalar) bool
	IsZero() bool
	Set(Scalar) Scalar
	SetNat(*saferith.Nat) Scalar
	// Act returns s⋅P.
	Act(Point) Point
	// ActOnBase returns s⋅G.
	ActOnBase() Point
}

// Point is an element of the group of a Curve.
//
// Unlike Scalar, methods return a new Point and leave the receiver untouched.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Set(Point) Point
	Negate() Point
	Equal(Point) bool
	IsIdentity() bool
}

// FromName returns the Curve registered under name.
func FromName(name string) (Curve, error) {
	switch name {
	case Secp256k1{}.Name():
		return Secp256k1{}, nil
	case Edwards25519{}.Name():
		return Edwards25519{}, nil
	}
	return nil, ErrUnsupportedCurve
}
