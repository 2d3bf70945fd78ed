package biaccumulator_test

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/pkg/biaccumulator"
	"github.com/mr-shifu/evss/pkg/cryptosuite/sw/pedersenpc"
	"github.com/mr-shifu/evss/pkg/evss"
	"github.com/mr-shifu/evss/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalar(group curve.Curve, x uint64) curve.Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(x))
}

func credentials(group curve.Curve, xs ...uint64) []curve.Scalar {
	out := make([]curve.Scalar, len(xs))
	for i, x := range xs {
		out[i] = scalar(group, x)
	}
	return out
}

func TestAccumulator_Membership(t *testing.T) {
	for _, group := range []curve.Curve{curve.Secp256k1{}, curve.Edwards25519{}} {
		t.Run(group.Name(), func(t *testing.T) {
			acc := biaccumulator.New(pedersenpc.New(group))
			params, err := acc.Setup(4, rand.Reader)
			require.NoError(t, err)

			members := credentials(group, 5, 9, 13)
			p, err := acc.Commit(params, members, rand.Reader)
			require.NoError(t, err)
			assert.Equal(t, 3, p.Polynomial.Degree())

			for _, c := range members {
				w, err := acc.CreateWitness(c, params, p, rand.Reader)
				require.NoError(t, err)
				assert.True(t, w.Value.IsZero())

				ok, err := acc.Check(params.Public(), p.Public(), w, rand.Reader)
				require.NoError(t, err)
				assert.True(t, ok)
			}

			w, err := acc.CreateWitness(scalar(group, 7), params, p, rand.Reader)
			require.NoError(t, err)
			assert.False(t, w.Value.IsZero())
			ok, err := acc.Check(params.Public(), p.Public(), w, rand.Reader)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestAccumulator_ForgedWitness(t *testing.T) {
	group := curve.Secp256k1{}
	acc := biaccumulator.New(pedersenpc.New(group))
	params, err := acc.Setup(4, rand.Reader)
	require.NoError(t, err)
	p, err := acc.Commit(params, credentials(group, 5, 9, 13), rand.Reader)
	require.NoError(t, err)

	// a non-member opening with its value replaced by zero
	w, err := acc.CreateWitness(scalar(group, 7), params, p, rand.Reader)
	require.NoError(t, err)
	w.Value = group.NewScalar()
	ok, err := acc.Check(params.Public(), p.Public(), w, rand.Reader)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccumulator_Commit(t *testing.T) {
	group := curve.Edwards25519{}
	acc := biaccumulator.New(pedersenpc.New(group))
	params, err := acc.Setup(4, rand.Reader)
	require.NoError(t, err)

	_, err = acc.Commit(params, credentials(group, 1, 2, 3, 4), rand.Reader)
	assert.ErrorIs(t, err, biaccumulator.ErrTooManyCredentials)

	_, err = acc.Commit(params, credentials(group, 1, 2, 1), rand.Reader)
	assert.ErrorIs(t, err, biaccumulator.ErrDuplicateCredential)

	// empty set is the constant 1, so nothing is a member
	p, err := acc.Commit(params, nil, rand.Reader)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Polynomial.Degree())
	w, err := acc.CreateWitness(scalar(group, 5), params, p, rand.Reader)
	require.NoError(t, err)
	ok, err := acc.Check(params.Public(), p.Public(), w, rand.Reader)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccumulator_WitnessCodec(t *testing.T) {
	group := curve.Secp256k1{}
	scheme := pedersenpc.New(group)
	acc := biaccumulator.New(scheme)
	params, err := acc.Setup(3, rand.Reader)
	require.NoError(t, err)
	p, err := acc.Commit(params, credentials(group, 42), rand.Reader)
	require.NoError(t, err)

	w, err := acc.CreateWitness(scalar(group, 42), params, p, rand.Reader)
	require.NoError(t, err)
	data, err := w.MarshalBinary()
	require.NoError(t, err)

	w2 := evss.EmptyShare(scheme)
	require.NoError(t, w2.UnmarshalBinary(data))
	ok, err := acc.Check(params.Public(), p.Public(), w2, rand.Reader)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccumulator_Metrics(t *testing.T) {
	group := curve.Secp256k1{}
	m := metrics.New(prometheus.NewRegistry())
	acc := biaccumulator.New(pedersenpc.New(group), biaccumulator.WithMetrics(m))

	params, err := acc.Setup(3, rand.Reader)
	require.NoError(t, err)
	_, err = acc.Commit(params, credentials(group, 1, 2, 3), rand.Reader)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues(biaccumulator.Protocol, metrics.OpSetup, metrics.StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues(biaccumulator.Protocol, metrics.OpCommit, metrics.StatusError)))
}
