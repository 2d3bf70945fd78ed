package pedersenpc

import (
	"crypto/rand"
	"testing"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/polynomial"
	"github.com/mr-shifu/evss/core/math/sample"
	"github.com/mr-shifu/evss/pkg/common/cryptosuite/pcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var groups = []curve.Curve{curve.Secp256k1{}, curve.Edwards25519{}}

func setup(t *testing.T, group curve.Curve, degree int) (*Scheme, pcs.CommitterKey, pcs.VerifierKey) {
	t.Helper()
	scheme := New(group)
	pp, err := scheme.Setup(degree, rand.Reader)
	require.NoError(t, err)
	ck, vk, err := scheme.Trim(pp, degree)
	require.NoError(t, err)
	return scheme, ck, vk
}

func TestScheme_OpenCheck(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			scheme, ck, vk := setup(t, group, 5)
			p := polynomial.NewPolynomial(rand.Reader, group, 4, sample.Scalar(rand.Reader, group))

			c, r, err := scheme.Commit(ck, p, rand.Reader)
			require.NoError(t, err)

			point := sample.Scalar(rand.Reader, group)
			challenge := sample.Scalar(rand.Reader, group)
			proof, err := scheme.Open(ck, p, c, point, challenge, r, rand.Reader)
			require.NoError(t, err)

			ok, err := scheme.Check(vk, c, point, p.Evaluate(point), proof, challenge, nil)
			require.NoError(t, err)
			assert.True(t, ok)

			// wrong value
			wrong := p.Evaluate(point).Add(sample.ScalarUnit(rand.Reader, group))
			ok, err = scheme.Check(vk, c, point, wrong, proof, challenge, nil)
			require.NoError(t, err)
			assert.False(t, ok)

			// wrong point
			ok, err = scheme.Check(vk, c, sample.Scalar(rand.Reader, group), p.Evaluate(point), proof, challenge, nil)
			require.NoError(t, err)
			assert.False(t, ok)

			// wrong challenge
			ok, err = scheme.Check(vk, c, point, p.Evaluate(point), proof, sample.Scalar(rand.Reader, group), nil)
			require.NoError(t, err)
			assert.False(t, ok)

			// commitment to another polynomial
			other, _, err := scheme.Commit(ck, p, rand.Reader)
			require.NoError(t, err)
			ok, err = scheme.Check(vk, other, point, p.Evaluate(point), proof, challenge, nil)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestScheme_CommitHiding(t *testing.T) {
	group := curve.Secp256k1{}
	scheme, ck, _ := setup(t, group, 3)
	p := polynomial.NewPolynomial(rand.Reader, group, 2, nil)

	c1, _, err := scheme.Commit(ck, p, rand.Reader)
	require.NoError(t, err)
	c2, _, err := scheme.Commit(ck, p, rand.Reader)
	require.NoError(t, err)
	assert.False(t, c1.(*Commitment).Exponent().Equal(c2.(*Commitment).Exponent()))
}

func TestScheme_Degrees(t *testing.T) {
	group := curve.Edwards25519{}
	scheme := New(group)

	_, err := scheme.Setup(0, rand.Reader)
	assert.ErrorIs(t, err, ErrDegreeUnsupported)
	_, err = scheme.Setup(MaxDegree+1, rand.Reader)
	assert.ErrorIs(t, err, ErrDegreeUnsupported)

	pp, err := scheme.Setup(4, rand.Reader)
	require.NoError(t, err)
	assert.Equal(t, 4, pp.MaxDegree())

	_, _, err = scheme.Trim(pp, 5)
	assert.ErrorIs(t, err, ErrDegreeUnsupported)

	ck, vk, err := scheme.Trim(pp, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, ck.SupportedDegree())
	assert.Equal(t, 3, vk.SupportedDegree())

	// 4 coefficients
	p := polynomial.NewPolynomial(rand.Reader, group, 3, nil)
	_, _, err = scheme.Commit(ck, p, rand.Reader)
	assert.ErrorIs(t, err, ErrDegreeTooLarge)
}

func TestScheme_GroupMismatch(t *testing.T) {
	_, ck, _ := setup(t, curve.Secp256k1{}, 3)
	other := New(curve.Edwards25519{})

	p := polynomial.NewPolynomial(rand.Reader, curve.Edwards25519{}, 2, nil)
	_, _, err := other.Commit(ck, p, rand.Reader)
	assert.ErrorIs(t, err, ErrGroupMismatch)
}

func TestScheme_ForeignScalars(t *testing.T) {
	group, foreign := curve.Secp256k1{}, curve.Edwards25519{}
	scheme, ck, vk := setup(t, group, 3)
	p := polynomial.NewPolynomial(rand.Reader, group, 2, nil)
	c, r, err := scheme.Commit(ck, p, rand.Reader)
	require.NoError(t, err)

	point := sample.Scalar(rand.Reader, group)
	challenge := sample.Scalar(rand.Reader, group)
	proof, err := scheme.Open(ck, p, c, point, challenge, r, rand.Reader)
	require.NoError(t, err)
	value := p.Evaluate(point)

	_, err = scheme.Open(ck, p, c, sample.Scalar(rand.Reader, foreign), challenge, r, rand.Reader)
	assert.ErrorIs(t, err, ErrGroupMismatch)
	_, err = scheme.Open(ck, p, c, point, sample.Scalar(rand.Reader, foreign), r, rand.Reader)
	assert.ErrorIs(t, err, ErrGroupMismatch)

	tests := []struct {
		name                    string
		point, value, challenge curve.Scalar
		err                     error
	}{
		{"point", sample.Scalar(rand.Reader, foreign), value, challenge, ErrGroupMismatch},
		{"value", point, sample.Scalar(rand.Reader, foreign), challenge, ErrGroupMismatch},
		{"challenge", point, value, sample.Scalar(rand.Reader, foreign), ErrGroupMismatch},
		{"nil value", point, nil, challenge, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := scheme.Check(vk, c, tt.point, tt.value, proof, tt.challenge, nil)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, ok)
		})
	}
}

func TestScheme_SerDe(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			scheme := New(group)
			pp, err := scheme.Setup(4, rand.Reader)
			require.NoError(t, err)

			ppBytes, err := pp.MarshalBinary()
			require.NoError(t, err)
			pp2 := scheme.NewUniversalParams()
			require.NoError(t, pp2.UnmarshalBinary(ppBytes))
			assert.True(t, pp.(*UniversalParams).H().Equal(pp2.(*UniversalParams).H()))

			ck, vk, err := scheme.Trim(pp2, 4)
			require.NoError(t, err)

			ckBytes, err := ck.MarshalBinary()
			require.NoError(t, err)
			vkBytes, err := vk.MarshalBinary()
			require.NoError(t, err)
			ck2 := scheme.NewCommitterKey()
			require.NoError(t, ck2.UnmarshalBinary(ckBytes))
			vk2 := scheme.NewVerifierKey()
			require.NoError(t, vk2.UnmarshalBinary(vkBytes))

			p := polynomial.NewPolynomial(rand.Reader, group, 3, nil)
			c, r, err := scheme.Commit(ck2, p, rand.Reader)
			require.NoError(t, err)

			cBytes, err := c.MarshalBinary()
			require.NoError(t, err)
			rBytes, err := r.MarshalBinary()
			require.NoError(t, err)
			c2 := scheme.NewCommitment()
			require.NoError(t, c2.UnmarshalBinary(cBytes))
			r2 := scheme.NewRandomness()
			require.NoError(t, r2.UnmarshalBinary(rBytes))

			point := sample.Scalar(rand.Reader, group)
			challenge := sample.Scalar(rand.Reader, group)
			proof, err := scheme.Open(ck2, p, c2, point, challenge, r2, rand.Reader)
			require.NoError(t, err)

			proofBytes, err := proof.MarshalBinary()
			require.NoError(t, err)
			proof2 := scheme.NewProof()
			require.NoError(t, proof2.UnmarshalBinary(proofBytes))

			ok, err := scheme.Check(vk2, c2, point, p.Evaluate(point), proof2, challenge, nil)
			require.NoError(t, err)
			assert.True(t, ok)

			// deterministic
			proofBytes2, err := proof2.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, proofBytes, proofBytes2)

			assert.Error(t, scheme.NewProof().UnmarshalBinary(cBytes))
		})
	}
}

func TestScheme_CrossGroupDecode(t *testing.T) {
	scheme := New(curve.Secp256k1{})
	pp, err := scheme.Setup(2, rand.Reader)
	require.NoError(t, err)
	data, err := pp.MarshalBinary()
	require.NoError(t, err)

	err = New(curve.Edwards25519{}).NewUniversalParams().UnmarshalBinary(data)
	assert.ErrorIs(t, err, ErrGroupMismatch)
}
