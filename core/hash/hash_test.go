package hash

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_WriteAny(t *testing.T) {
	var err error

	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			err = h.WriteAny(v)
			if err != nil {
				return err
			}
		}
		return nil
	}
	n := new(saferith.Nat).SetUint64(35)

	assert.NoError(t, testFunc(n))
	assert.NoError(t, testFunc("label"))
	assert.NoError(t, testFunc(sample.Scalar(rand.Reader, curve.Secp256k1{})))
	assert.NoError(t, testFunc(sample.Scalar(rand.Reader, curve.Edwards25519{}).ActOnBase()))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))

	assert.Error(t, testFunc([]byte(nil)))
	assert.Error(t, testFunc(42))
}

func TestHash_WriteAny_Collision(t *testing.T) {
	testFunc := func(vs ...interface{}) []byte {
		h := New()
		require.NoError(t, h.WriteAny(vs...))
		return h.Sum()
	}

	h1 := testFunc([]byte("1)(string\x02*data_added*"), "3")
	h2 := testFunc([]byte("1"), "*data_added*)(string\x023")
	assert.NotEqual(t, h1, h2)

	// same bytes under a different domain
	assert.NotEqual(t, testFunc([]byte("abc")), testFunc("abc"))
}

func TestHash_Clone(t *testing.T) {
	h := New()
	require.NoError(t, h.WriteAny([]byte("prefix")))

	h1 := h.Clone()
	h2 := h.Fork([]byte("123"))

	require.NoError(t, h1.WriteAny([]byte("123")))
	assert.Equal(t, h1.Sum(), h2.Sum())

	require.NoError(t, h.WriteAny([]byte("456")))
	assert.NotEqual(t, h.Sum(), h1.Sum())
}

func TestHash_Digest(t *testing.T) {
	h := New()
	require.NoError(t, h.WriteAny("stream"))

	out1 := make([]byte, 200)
	out2 := make([]byte, 200)
	_, err := io.ReadFull(h.Digest(), out1)
	require.NoError(t, err)
	_, err = io.ReadFull(h.Digest(), out2)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
	assert.Len(t, h.Sum(), DigestLengthBytes)
}
