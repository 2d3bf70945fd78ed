package dealer

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/google/uuid"
	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/pkg/cryptosuite/sw/pedersenpc"
	"github.com/mr-shifu/evss/pkg/evss"
	"github.com/mr-shifu/evss/pkg/keystore"
	"github.com/mr-shifu/evss/pkg/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalar(group curve.Curve, x uint64) curve.Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(x))
}

func newManager(group curve.Curve) *Manager {
	return NewManager(pedersenpc.New(group), keystore.NewInMemoryKeystore(vault.NewInMemoryVault()))
}

func TestManager_Sharing(t *testing.T) {
	group := curve.Secp256k1{}
	m := newManager(group)

	secret := scalar(group, 17)
	id, err := m.CreateSharing(4, secret, rand.Reader)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, m.List())
	assert.True(t, m.handle(id).Exists())
	assert.Equal(t, id.String(), m.handle(id).KeyID())

	points := []curve.Scalar{scalar(group, 1), scalar(group, 2), scalar(group, 3), scalar(group, 4)}
	shares, err := m.Shares(id, points, rand.Reader)
	require.NoError(t, err)

	pp, pc, err := m.Public(id)
	require.NoError(t, err)
	verdicts, err := m.EVSS().CheckShares(pp, pc, shares, rand.Reader)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true}, verdicts)

	got, err := m.EVSS().Reconstruct(pp, shares)
	require.NoError(t, err)
	assert.True(t, got.Equal(secret))

	_, err = m.Witness(id, scalar(group, 1), rand.Reader)
	assert.ErrorIs(t, err, ErrWrongKind)

	require.NoError(t, m.Delete(id))
	_, err = m.Share(id, scalar(group, 1), rand.Reader)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(id), ErrSessionNotFound)
	assert.False(t, m.handle(id).Exists())
}

func TestManager_Accumulator(t *testing.T) {
	group := curve.Edwards25519{}
	m := newManager(group)

	id, err := m.CreateAccumulator(4, []curve.Scalar{scalar(group, 5), scalar(group, 9), scalar(group, 13)}, rand.Reader)
	require.NoError(t, err)

	pp, pc, err := m.Public(id)
	require.NoError(t, err)

	w, err := m.Witness(id, scalar(group, 9), rand.Reader)
	require.NoError(t, err)
	ok, err := m.Accumulator().Check(pp, pc, w, rand.Reader)
	require.NoError(t, err)
	assert.True(t, ok)

	w, err = m.Witness(id, scalar(group, 7), rand.Reader)
	require.NoError(t, err)
	ok, err = m.Accumulator().Check(pp, pc, w, rand.Reader)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.Share(id, scalar(group, 1), rand.Reader)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestManager_ExportImport(t *testing.T) {
	group := curve.Secp256k1{}
	m1 := newManager(group)
	secret := scalar(group, 99)
	id, err := m1.CreateSharing(2, secret, rand.Reader)
	require.NoError(t, err)

	data, err := m1.Export(id)
	require.NoError(t, err)

	m2 := newManager(group)
	id2, err := m2.Import(data)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	_, err = m2.Import(data)
	assert.ErrorIs(t, err, ErrSessionExists)

	s1, err := m1.Share(id, scalar(group, 1), rand.Reader)
	require.NoError(t, err)
	s2, err := m2.Share(id, scalar(group, 2), rand.Reader)
	require.NoError(t, err)

	pp, _, err := m2.Public(id)
	require.NoError(t, err)
	got, err := m2.EVSS().Reconstruct(pp, []*evss.Share{s1, s2})
	require.NoError(t, err)
	assert.True(t, got.Equal(secret))

	// a manager over another curve refuses the session
	_, err = newManager(curve.Edwards25519{}).Import(data)
	assert.Error(t, err)

	_, err = m1.Export(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
