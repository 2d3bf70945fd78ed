package evss_test

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/polynomial"
	"github.com/mr-shifu/evss/core/math/sample"
	"github.com/mr-shifu/evss/pkg/cryptosuite/sw/pedersenpc"
	"github.com/mr-shifu/evss/pkg/evss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes_BinaryRoundTrip(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			scheme := pedersenpc.New(group)
			secret := sample.Scalar(rand.Reader, group)
			e, params, sc := deal(t, group, 3, secret)

			paramsBytes, err := params.MarshalBinary()
			require.NoError(t, err)
			params2 := evss.EmptyParams(scheme)
			require.NoError(t, params2.UnmarshalBinary(paramsBytes))
			assert.Equal(t, params.Degree, params2.Degree)

			scBytes, err := sc.MarshalBinary()
			require.NoError(t, err)
			sc2 := evss.EmptySecretCommitment(scheme)
			require.NoError(t, sc2.UnmarshalBinary(scBytes))

			// the decoded dealer state issues valid shares
			share, err := e.GetShare(sample.ScalarUnit(rand.Reader, group), params2, sc2, rand.Reader)
			require.NoError(t, err)

			shareBytes, err := share.MarshalBinary()
			require.NoError(t, err)
			share2 := evss.EmptyShare(scheme)
			require.NoError(t, share2.UnmarshalBinary(shareBytes))

			ppBytes, err := params.Public().MarshalBinary()
			require.NoError(t, err)
			pp := evss.EmptyPublicParams(scheme)
			require.NoError(t, pp.UnmarshalBinary(ppBytes))

			pcBytes, err := sc.Public().MarshalBinary()
			require.NoError(t, err)
			pc := evss.EmptyPublicCommitment(scheme)
			require.NoError(t, pc.UnmarshalBinary(pcBytes))

			ok, err := e.Check(pp, pc, share2, rand.Reader)
			require.NoError(t, err)
			assert.True(t, ok)

			// deterministic
			shareBytes2, err := share2.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, shareBytes, shareBytes2)
		})
	}
}

func TestTypes_JSONRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	scheme := pedersenpc.New(group)
	e, params, sc := deal(t, group, 4, sample.Scalar(rand.Reader, group))

	share, err := e.GetShare(sample.ScalarUnit(rand.Reader, group), params, sc, rand.Reader)
	require.NoError(t, err)

	shareJSON, err := json.Marshal(share)
	require.NoError(t, err)
	ppJSON, err := json.Marshal(params.Public())
	require.NoError(t, err)
	pcJSON, err := json.Marshal(sc.Public())
	require.NoError(t, err)

	share2 := evss.EmptyShare(scheme)
	require.NoError(t, json.Unmarshal(shareJSON, share2))
	pp := evss.EmptyPublicParams(scheme)
	require.NoError(t, json.Unmarshal(ppJSON, pp))
	assert.Equal(t, 4, pp.Degree)
	pc := evss.EmptyPublicCommitment(scheme)
	require.NoError(t, json.Unmarshal(pcJSON, pc))

	ok, err := e.Check(pp, pc, share2, rand.Reader)
	require.NoError(t, err)
	assert.True(t, ok)

	paramsJSON, err := json.Marshal(params)
	require.NoError(t, err)
	params2 := evss.EmptyParams(scheme)
	require.NoError(t, json.Unmarshal(paramsJSON, params2))
	assert.Equal(t, params.Degree, params2.Degree)
}

func TestTypes_DecodeWithoutScheme(t *testing.T) {
	group := curve.Edwards25519{}
	e, params, sc := deal(t, group, 2, sample.Scalar(rand.Reader, group))
	share, err := e.GetShare(sample.ScalarUnit(rand.Reader, group), params, sc, rand.Reader)
	require.NoError(t, err)

	data, err := share.MarshalBinary()
	require.NoError(t, err)
	assert.ErrorIs(t, (&evss.Share{}).UnmarshalBinary(data), evss.ErrNoScheme)

	_, err = (&evss.Share{}).MarshalBinary()
	assert.Error(t, err)
}

func TestTypes_DecodeOversizedCommitment(t *testing.T) {
	group := curve.Secp256k1{}
	blob := append([]byte{byte(len(group.Name()))}, group.Name()...)
	blob = binary.BigEndian.AppendUint32(blob, 0xFFFFFFFF)

	data, err := json.Marshal(map[string][]byte{"Commitment": blob})
	require.NoError(t, err)

	pc := evss.EmptyPublicCommitment(pedersenpc.New(group))
	assert.ErrorIs(t, json.Unmarshal(data, pc), polynomial.ErrInvalidEncoding)
}
