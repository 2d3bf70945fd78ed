package sample

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/stretchr/testify/assert"
)

func TestScalar_Deterministic(t *testing.T) {
	group := curve.Secp256k1{}
	seed := bytes.Repeat([]byte{0xab}, group.SafeScalarBytes())

	a := Scalar(bytes.NewReader(seed), group)
	b := Scalar(bytes.NewReader(seed), group)
	assert.True(t, a.Equal(b))
}

func TestScalar_Distinct(t *testing.T) {
	for _, group := range []curve.Curve{curve.Secp256k1{}, curve.Edwards25519{}} {
		a := ScalarUnit(rand.Reader, group)
		b := ScalarUnit(rand.Reader, group)
		assert.False(t, a.IsZero())
		assert.False(t, a.Equal(b), group.Name())
	}
}

func TestScalar_ShortReaderPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrMaxIterations, func() {
		Scalar(bytes.NewReader(nil), curve.Secp256k1{})
	})
}

func TestScalarPointPair(t *testing.T) {
	group := curve.Edwards25519{}
	x, X := ScalarPointPair(rand.Reader, group)
	assert.True(t, x.ActOnBase().Equal(X))
}
