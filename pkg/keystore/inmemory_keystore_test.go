package keystore

import (
	"testing"

	"github.com/mr-shifu/evss/pkg/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryKeystore(t *testing.T) {
	v := vault.NewInMemoryVault()
	ks := NewInMemoryKeystore(v)

	require.NoError(t, ks.Import("session-1", []byte("dealer state")))
	got, err := ks.Get("session-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("dealer state"), got)

	ski, err := ks.SKI("session-1")
	require.NoError(t, err)
	assert.Equal(t, SKIOf([]byte("dealer state")), ski)
	assert.Len(t, ski, 64)

	// the vault is addressed by SKI
	raw, err := v.Get(ski)
	require.NoError(t, err)
	assert.Equal(t, got, raw)

	// replacing drops the old blob
	require.NoError(t, ks.Import("session-1", []byte("updated")))
	_, err = v.Get(ski)
	assert.ErrorIs(t, err, vault.ErrKeyNotFound)

	require.NoError(t, ks.Delete("session-1"))
	_, err = ks.Get("session-1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, ks.Delete("session-1"), ErrKeyNotFound)
	assert.Equal(t, 0, v.Len())
}

func TestInMemoryKeystore_SharedBlob(t *testing.T) {
	v := vault.NewInMemoryVault()
	ks := NewInMemoryKeystore(v)

	require.NoError(t, ks.Import("b", []byte("same")))
	require.NoError(t, ks.Import("a", []byte("same")))
	assert.Equal(t, []string{"a", "b"}, ks.List())
	assert.Equal(t, 1, v.Len())

	require.NoError(t, ks.Delete("a"))
	got, err := ks.Get("b")
	require.NoError(t, err)
	assert.Equal(t, []byte("same"), got)
}

func TestInMemoryKeyLinkedStore(t *testing.T) {
	ks := NewInMemoryKeystore(vault.NewInMemoryVault())
	linked := ks.WithKeyID("k")

	_, err := linked.Get()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.Equal(t, "k", linked.KeyID())
	assert.False(t, linked.Exists())
	_, err = linked.SKI()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, linked.Import([]byte{7}))
	assert.True(t, linked.Exists())
	got, err := linked.Get()
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, got)
	ski, err := linked.SKI()
	require.NoError(t, err)
	assert.Equal(t, SKIOf([]byte{7}), ski)

	require.NoError(t, linked.Delete())
	assert.False(t, linked.Exists())
	assert.Empty(t, ks.List())
	assert.ErrorIs(t, linked.Delete(), ErrKeyNotFound)
}
