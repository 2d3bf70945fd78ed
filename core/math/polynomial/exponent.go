package polynomial

import (
	"encoding/binary"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/pkg/errors"
)

// Exponent represents a polynomial whose coefficients are group elements,
// F(X) = A₀ + A₁⋅X + … + Aₜ⋅Xᵗ.
type Exponent struct {
	group        curve.Curve
	coefficients []curve.Point
}

// NewExponent returns the exponent polynomial with the given coefficients,
// lowest power first.
func NewExponent(group curve.Curve, coefficients []curve.Point) *Exponent {
	out := make([]curve.Point, len(coefficients))
	copy(out, coefficients)
	return &Exponent{
		group:        group,
		coefficients: out,
	}
}

// EmptyExponent returns an Exponent ready to be unmarshalled into.
func EmptyExponent(group curve.Curve) *Exponent {
	return &Exponent{group: group}
}

// Evaluate returns F(x) using Horner's method.
func (e *Exponent) Evaluate(x curve.Scalar) curve.Point {
	result := e.group.NewPoint()
	for i := len(e.coefficients) - 1; i >= 0; i-- {
		// Bₙ₋₁ = x⋅Bₙ + Aₙ₋₁
		result = x.Act(result).Add(e.coefficients[i])
	}
	return result
}

// Coefficients returns the coefficients, lowest power first.
func (e *Exponent) Coefficients() []curve.Point {
	out := make([]curve.Point, len(e.coefficients))
	copy(out, e.coefficients)
	return out
}

func (e *Exponent) Len() int {
	return len(e.coefficients)
}

func (e *Exponent) Degree() int {
	return len(e.coefficients) - 1
}

func (e *Exponent) Group() curve.Curve {
	return e.group
}

// Equal reports whether both exponents have the same coefficients.
func (e *Exponent) Equal(other *Exponent) bool {
	if e.group.Name() != other.group.Name() || len(e.coefficients) != len(other.coefficients) {
		return false
	}
	for i := range e.coefficients {
		if !e.coefficients[i].Equal(other.coefficients[i]) {
			return false
		}
	}
	return true
}

func (e *Exponent) MarshalBinary() ([]byte, error) {
	data := appendGroup(make([]byte, 0), e.group)
	data = binary.BigEndian.AppendUint32(data, uint32(len(e.coefficients)))
	for _, c := range e.coefficients {
		b, err := c.MarshalBinary()
		if err != nil {
			return nil, errors.WithMessage(err, "polynomial: failed to marshal exponent")
		}
		data = append(data, uint8(len(b)))
		data = append(data, b...)
	}
	return data, nil
}

func (e *Exponent) UnmarshalBinary(data []byte) error {
	group, offset, err := readGroup(data, e.group)
	if err != nil {
		return err
	}
	count, offset, err := readCount(data, offset)
	if err != nil {
		return err
	}
	coefficients := make([]curve.Point, count)
	for i := range coefficients {
		b, next, err := readChunk(data, offset)
		if err != nil {
			return err
		}
		c := group.NewPoint()
		if err := c.UnmarshalBinary(b); err != nil {
			return errors.WithMessage(err, "polynomial: failed to unmarshal exponent")
		}
		coefficients[i] = c
		offset = next
	}
	if offset != len(data) {
		return ErrInvalidEncoding
	}
	e.group = group
	e.coefficients = coefficients
	return nil
}
