package vault

import (
	"errors"
	"sync"
)

var (
	ErrKeyNotFound = errors.New("vault: key not found")
	ErrEmptyKeyID  = errors.New("vault: empty key id")
)

type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string][]byte
}

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string][]byte),
	}
}

// Import stores a copy of key, replacing any previous value.
func (store *InMemoryVault) Import(keyID string, key []byte) error {
	if keyID == "" {
		return ErrEmptyKeyID
	}
	store.lock.Lock()
	defer store.lock.Unlock()

	store.keys[keyID] = append([]byte(nil), key...)
	return nil
}

func (store *InMemoryVault) Get(keyID string) ([]byte, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	key, ok := store.keys[keyID]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), key...), nil
}

// Delete zeroes the stored bytes before dropping them.
func (store *InMemoryVault) Delete(keyID string) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	key, ok := store.keys[keyID]
	if !ok {
		return ErrKeyNotFound
	}
	for i := range key {
		key[i] = 0
	}
	delete(store.keys, keyID)
	return nil
}

func (store *InMemoryVault) Len() int {
	store.lock.RLock()
	defer store.lock.RUnlock()

	return len(store.keys)
}
