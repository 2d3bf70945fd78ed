package curve

import (
	"encoding/hex"
	"fmt"
	"io"

	ed "filippo.io/edwards25519"
	"github.com/cronokirby/saferith"
)

const (
	edwards25519ScalarBytes = 32
	edwards25519PointBytes  = 32
)

var edwards25519Order *saferith.Modulus

func init() {
	l, _ := hex.DecodeString("1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED")
	edwards25519Order = saferith.ModulusFromBytes(l)
}

// Edwards25519 is the prime-order subgroup of Curve25519 in twisted Edwards form.
type Edwards25519 struct{}

func (Edwards25519) NewPoint() Point {
	return &Edwards25519Point{value: ed.NewIdentityPoint()}
}

func (Edwards25519) NewBasePoint() Point {
	return &Edwards25519Point{value: ed.NewGeneratorPoint()}
}

func (Edwards25519) NewScalar() Scalar {
	return &Edwards25519Scalar{value: ed.NewScalar()}
}

// HashToPoint reads 32 byte candidates until one decodes, then clears the cofactor.
func (Edwards25519) HashToPoint(digest io.Reader) (Point, error) {
	var buf [edwards25519PointBytes]byte
	for i := 0; i < hashToPointAttempts; i++ {
		if _, err := io.ReadFull(digest, buf[:]); err != nil {
			return nil, fmt.Errorf("edwards25519.HashToPoint: %w", err)
		}
		p, err := new(ed.Point).SetBytes(buf[:])
		if err != nil {
			continue
		}
		p.MultByCofactor(p)
		if p.Equal(ed.NewIdentityPoint()) == 1 {
			continue
		}
		return &Edwards25519Point{value: p}, nil
	}
	return nil, fmt.Errorf("edwards25519.HashToPoint: no point found after %d attempts", hashToPointAttempts)
}

func (Edwards25519) Name() string {
	return "edwards25519"
}

func (Edwards25519) ScalarBits() int {
	return 253
}

func (Edwards25519) SafeScalarBytes() int {
	return edwards25519ScalarBytes + 16
}

func (Edwards25519) Order() *saferith.Modulus {
	return edwards25519Order
}

type Edwards25519Scalar struct {
	value *ed.Scalar
}

func edwards25519CastScalar(generic Scalar) *Edwards25519Scalar {
	out, ok := generic.(*Edwards25519Scalar)
	if !ok {
		panic(fmt.Sprintf("failed to convert to edwards25519Scalar: %v", generic))
	}
	return out
}

func (*Edwards25519Scalar) Curve() Curve {
	return Edwards25519{}
}

// MarshalBinary returns the 32 byte little-endian canonical encoding.
func (s *Edwards25519Scalar) MarshalBinary() ([]byte, error) {
	return s.value.Bytes(), nil
}

func (s *Edwards25519Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != edwards25519ScalarBytes {
		return fmt.Errorf("invalid length for edwards25519 scalar: %d", len(data))
	}
	v, err := ed.NewScalar().SetCanonicalBytes(data)
	if err != nil {
		return fmt.Errorf("edwards25519Scalar.UnmarshalBinary: %w", err)
	}
	s.value = v
	return nil
}

func (s *Edwards25519Scalar) Add(that Scalar) Scalar {
	other := edwards25519CastScalar(that)
	s.value.Add(s.value, other.value)
	return s
}

func (s *Edwards25519Scalar) Sub(that Scalar) Scalar {
	other := edwards25519CastScalar(that)
	s.value.Subtract(s.value, other.value)
	return s
}

func (s *Edwards25519Scalar) Mul(that Scalar) Scalar {
	other := edwards25519CastScalar(that)
	s.value.Multiply(s.value, other.value)
	return s
}

func (s *Edwards25519Scalar) Invert() Scalar {
	s.value.Invert(s.value)
	return s
}

func (s *Edwards25519Scalar) Negate() Scalar {
	s.value.Negate(s.value)
	return s
}

func (s *Edwards25519Scalar) Equal(that Scalar) bool {
	other := edwards25519CastScalar(that)
	return s.value.Equal(other.value) == 1
}

func (s *Edwards25519Scalar) IsZero() bool {
	return s.value.Equal(ed.NewScalar()) == 1
}

func (s *Edwards25519Scalar) Set(that Scalar) Scalar {
	other := edwards25519CastScalar(that)
	s.value.Set(other.value)
	return s
}

func (s *Edwards25519Scalar) SetNat(x *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(x, edwards25519Order)
	be := reduced.Bytes()
	le := make([]byte, edwards25519ScalarBytes)
	for i := range be {
		le[len(be)-1-i] = be[i]
	}
	v, err := ed.NewScalar().SetCanonicalBytes(le)
	if err != nil {
		panic(fmt.Sprintf("edwards25519Scalar.SetNat: reduced value not canonical: %v", err))
	}
	s.value = v
	return s
}

func (s *Edwards25519Scalar) Act(that Point) Point {
	other := edwards25519CastPoint(that)
	return &Edwards25519Point{value: new(ed.Point).ScalarMult(s.value, other.value)}
}

func (s *Edwards25519Scalar) ActOnBase() Point {
	return &Edwards25519Point{value: new(ed.Point).ScalarBaseMult(s.value)}
}

type Edwards25519Point struct {
	value *ed.Point
}

func edwards25519CastPoint(generic Point) *Edwards25519Point {
	out, ok := generic.(*Edwards25519Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to edwards25519Point: %v", generic))
	}
	return out
}

func (*Edwards25519Point) Curve() Curve {
	return Edwards25519{}
}

func (p *Edwards25519Point) MarshalBinary() ([]byte, error) {
	return p.value.Bytes(), nil
}

func (p *Edwards25519Point) UnmarshalBinary(data []byte) error {
	if len(data) != edwards25519PointBytes {
		return fmt.Errorf("invalid length for edwards25519Point: %d", len(data))
	}
	v, err := new(ed.Point).SetBytes(data)
	if err != nil {
		return fmt.Errorf("edwards25519Point.UnmarshalBinary: %w", err)
	}
	p.value = v
	return nil
}

func (p *Edwards25519Point) Add(that Point) Point {
	other := edwards25519CastPoint(that)
	return &Edwards25519Point{value: new(ed.Point).Add(p.value, other.value)}
}

func (p *Edwards25519Point) Sub(that Point) Point {
	other := edwards25519CastPoint(that)
	return &Edwards25519Point{value: new(ed.Point).Subtract(p.value, other.value)}
}

func (p *Edwards25519Point) Set(that Point) Point {
	other := edwards25519CastPoint(that)
	p.value = new(ed.Point).Set(other.value)
	return p
}

func (p *Edwards25519Point) Negate() Point {
	return &Edwards25519Point{value: new(ed.Point).Negate(p.value)}
}

func (p *Edwards25519Point) Equal(that Point) bool {
	other := edwards25519CastPoint(that)
	return p.value.Equal(other.value) == 1
}

func (p *Edwards25519Point) IsIdentity() bool {
	return p.value.Equal(ed.NewIdentityPoint()) == 1
}
