package polynomial

import (
	"encoding/binary"
	"io"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/sample"
	"github.com/pkg/errors"
)

// Polynomial represents f(X) = a₀ + a₁⋅X + … + aₜ⋅Xᵗ.
type Polynomial struct {
	group        curve.Curve
	coefficients []curve.Scalar
}

// NewPolynomial generates a Polynomial f(X) = secret + a₁⋅X + … + aₜ⋅Xᵗ,
// with coefficients in ℤₚ read from rand, and degree t.
func NewPolynomial(rand io.Reader, group curve.Curve, degree int, constant curve.Scalar) *Polynomial {
	polynomial := &Polynomial{
		group:        group,
		coefficients: make([]curve.Scalar, degree+1),
	}

	// if the constant is nil, we interpret it as 0.
	if constant == nil {
		constant = group.NewScalar()
	}
	polynomial.coefficients[0] = group.NewScalar().Set(constant)

	for i := 1; i <= degree; i++ {
		polynomial.coefficients[i] = sample.Scalar(rand, group)
	}

	return polynomial
}

// FromCoefficients returns the polynomial a₀ + a₁⋅X + … with the given coefficients.
// The coefficients are copied. An empty slice yields the zero polynomial.
func FromCoefficients(group curve.Curve, coefficients []curve.Scalar) *Polynomial {
	polynomial := &Polynomial{
		group:        group,
		coefficients: make([]curve.Scalar, 0, len(coefficients)),
	}
	for _, c := range coefficients {
		polynomial.coefficients = append(polynomial.coefficients, group.NewScalar().Set(c))
	}
	if len(polynomial.coefficients) == 0 {
		polynomial.coefficients = append(polynomial.coefficients, group.NewScalar())
	}
	return polynomial
}

// FromRoots returns the monic polynomial (X - r₁)⋅⋅⋅(X - rₙ).
// With no roots this is the constant polynomial 1.
func FromRoots(group curve.Curve, roots []curve.Scalar) *Polynomial {
	one := group.NewScalar().Set(oneScalar(group))
	result := FromCoefficients(group, []curve.Scalar{one})
	for _, r := range roots {
		// X - r
		linear := FromCoefficients(group, []curve.Scalar{group.NewScalar().Set(r).Negate(), one})
		result = result.Mul(linear)
	}
	return result
}

// Mul returns p⋅q using schoolbook multiplication.
func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	out := make([]curve.Scalar, len(p.coefficients)+len(q.coefficients)-1)
	for i := range out {
		out[i] = p.group.NewScalar()
	}
	for i, a := range p.coefficients {
		for j, b := range q.coefficients {
			out[i+j].Add(p.group.NewScalar().Set(a).Mul(b))
		}
	}
	return &Polynomial{
		group:        p.group,
		coefficients: out,
	}
}

// Evaluate evaluates a polynomial in a given variable index
// We use Horner's method: https://en.wikipedia.org/wiki/Horner%27s_method
func (p *Polynomial) Evaluate(index curve.Scalar) curve.Scalar {
	result := p.group.NewScalar()
	// reverse order
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		// bₙ₋₁ = bₙ * x + aₙ₋₁
		result.Mul(index).Add(p.coefficients[i])
	}
	return result
}

// Constant returns a copy of the constant coefficient of the polynomial.
func (p *Polynomial) Constant() curve.Scalar {
	return p.group.NewScalar().Set(p.coefficients[0])
}

// Coefficients returns a copy of the coefficients, lowest power first.
func (p *Polynomial) Coefficients() []curve.Scalar {
	out := make([]curve.Scalar, len(p.coefficients))
	for i, c := range p.coefficients {
		out[i] = p.group.NewScalar().Set(c)
	}
	return out
}

// Len is the number of coefficients, i.e. Degree() + 1.
func (p *Polynomial) Len() int {
	return len(p.coefficients)
}

// Degree is the highest power of the Polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

func (p *Polynomial) Group() curve.Curve {
	return p.group
}

// EmptyPolynomial returns a Polynomial ready to be unmarshalled into.
func EmptyPolynomial(group curve.Curve) *Polynomial {
	return &Polynomial{group: group}
}

func (p *Polynomial) MarshalBinary() ([]byte, error) {
	data := make([]byte, 0)

	// 1. Group name
	data = appendGroup(data, p.group)

	// 2. Coefficient count
	data = binary.BigEndian.AppendUint32(data, uint32(len(p.coefficients)))

	// 3. Coefficients
	for _, c := range p.coefficients {
		b, err := c.MarshalBinary()
		if err != nil {
			return nil, errors.WithMessage(err, "polynomial: failed to marshal coefficient")
		}
		data = append(data, uint8(len(b)))
		data = append(data, b...)
	}

	return data, nil
}

func (p *Polynomial) UnmarshalBinary(data []byte) error {
	// 1. Group name
	group, offset, err := readGroup(data, p.group)
	if err != nil {
		return err
	}
	p.group = group

	// 2. Coefficient count
	count, offset, err := readCount(data, offset)
	if err != nil {
		return err
	}

	// 3. Coefficients
	coefficients := make([]curve.Scalar, count)
	for i := range coefficients {
		b, next, err := readChunk(data, offset)
		if err != nil {
			return err
		}
		c := group.NewScalar()
		if err := c.UnmarshalBinary(b); err != nil {
			return errors.WithMessage(err, "polynomial: failed to unmarshal coefficient")
		}
		coefficients[i] = c
		offset = next
	}
	if offset != len(data) {
		return ErrInvalidEncoding
	}
	p.coefficients = coefficients

	return nil
}
