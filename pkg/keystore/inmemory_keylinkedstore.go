package keystore

import (
	"errors"

	"github.com/mr-shifu/evss/pkg/common/keystore"
)

// InMemoryKeyLinkedStore binds one key ID of an InMemoryKeystore.
type InMemoryKeyLinkedStore struct {
	keyID string
	ks    *InMemoryKeystore
}

var _ keystore.KeyLinkedStore = (*InMemoryKeyLinkedStore)(nil)

func NewInMemoryKeyLinkedStore(keyID string, ks *InMemoryKeystore) *InMemoryKeyLinkedStore {
	return &InMemoryKeyLinkedStore{keyID: keyID, ks: ks}
}

func (s *InMemoryKeyLinkedStore) KeyID() string {
	return s.keyID
}

func (s *InMemoryKeyLinkedStore) Import(key []byte) error {
	return s.ks.Import(s.keyID, key)
}

func (s *InMemoryKeyLinkedStore) Get() ([]byte, error) {
	return s.ks.Get(s.keyID)
}

func (s *InMemoryKeyLinkedStore) SKI() (string, error) {
	return s.ks.SKI(s.keyID)
}

func (s *InMemoryKeyLinkedStore) Exists() bool {
	_, err := s.ks.SKI(s.keyID)
	return !errors.Is(err, ErrKeyNotFound)
}

func (s *InMemoryKeyLinkedStore) Delete() error {
	return s.ks.Delete(s.keyID)
}
