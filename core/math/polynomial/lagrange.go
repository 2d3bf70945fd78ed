package polynomial

import (
	"errors"

	"github.com/mr-shifu/evss/core/math/curve"
)

var (
	ErrEmptyDomain    = errors.New("polynomial: empty interpolation domain")
	ErrDuplicatePoint = errors.New("polynomial: duplicate interpolation point")
	ErrLengthMismatch = errors.New("polynomial: points and values differ in length")
)

// Lagrange returns the Lagrange coefficients at 0 for all points in the interpolation domain,
// in the same order as the domain.
//
// The following formula is taken from
// https://en.wikipedia.org/wiki/Lagrange_polynomial
//
//	          xₘ
//	lⱼ(0) = Π ---------
//	       m≠j xₘ - xⱼ
func Lagrange(group curve.Curve, interpolationDomain []curve.Scalar) ([]curve.Scalar, error) {
	if len(interpolationDomain) == 0 {
		return nil, ErrEmptyDomain
	}
	if err := checkDistinct(interpolationDomain); err != nil {
		return nil, err
	}

	coefficients := make([]curve.Scalar, len(interpolationDomain))
	for j, xJ := range interpolationDomain {
		numerator := oneScalar(group)
		denominator := oneScalar(group)
		for m, xM := range interpolationDomain {
			if m == j {
				continue
			}
			numerator.Mul(xM)
			// xₘ - xⱼ
			denominator.Mul(group.NewScalar().Set(xM).Sub(xJ))
		}
		coefficients[j] = numerator.Mul(denominator.Invert())
	}
	return coefficients, nil
}

// InterpolateAtZero returns f(0) for the unique polynomial f of degree
// len(points)-1 with f(points[i]) = values[i].
func InterpolateAtZero(group curve.Curve, points, values []curve.Scalar) (curve.Scalar, error) {
	if len(points) != len(values) {
		return nil, ErrLengthMismatch
	}
	coefficients, err := Lagrange(group, points)
	if err != nil {
		return nil, err
	}
	result := group.NewScalar()
	for i, l := range coefficients {
		result.Add(l.Mul(values[i]))
	}
	return result, nil
}

func checkDistinct(points []curve.Scalar) error {
	seen := make(map[string]struct{}, len(points))
	for _, x := range points {
		b, err := x.MarshalBinary()
		if err != nil {
			return err
		}
		if _, ok := seen[string(b)]; ok {
			return ErrDuplicatePoint
		}
		seen[string(b)] = struct{}{}
	}
	return nil
}
