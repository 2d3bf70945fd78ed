package vault

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryVault(t *testing.T) {
	v := NewInMemoryVault()

	key := []byte{1, 2, 3}
	require.NoError(t, v.Import("a", key))

	// stored value is a copy
	key[0] = 9
	got, err := v.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 9
	got, err = v.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	require.NoError(t, v.Import("a", []byte{4}))
	got, err = v.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte{4}, got)

	require.NoError(t, v.Delete("a"))
	_, err = v.Get("a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, v.Delete("a"), ErrKeyNotFound)
	assert.ErrorIs(t, v.Import("", key), ErrEmptyKeyID)
}

func TestInMemoryVault_Concurrent(t *testing.T) {
	v := NewInMemoryVault()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			assert.NoError(t, v.Import(id, []byte{byte(i)}))
			_, err := v.Get(id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 32, v.Len())
}
