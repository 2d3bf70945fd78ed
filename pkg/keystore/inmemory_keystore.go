package keystore

import (
	"encoding/hex"
	"sort"
	"sync"

	"github.com/mr-shifu/evss/pkg/common/keystore"
	"github.com/mr-shifu/evss/pkg/common/vault"
	"golang.org/x/crypto/sha3"
)

var ErrKeyNotFound = keystore.ErrKeyNotFound

type InMemoryKeystore struct {
	lock sync.RWMutex
	v    vault.Vault
	// keyID -> SKI
	index map[string]string
}

var _ keystore.Keystore = (*InMemoryKeystore)(nil)

func NewInMemoryKeystore(v vault.Vault) *InMemoryKeystore {
	return &InMemoryKeystore{
		v:     v,
		index: make(map[string]string),
	}
}

// SKIOf returns the hex encoded SHA3-256 of key.
func SKIOf(key []byte) string {
	sum := sha3.Sum256(key)
	return hex.EncodeToString(sum[:])
}

func (ks *InMemoryKeystore) Import(keyID string, key []byte) error {
	ks.lock.Lock()
	defer ks.lock.Unlock()

	ski := SKIOf(key)
	// store key to vault
	if err := ks.v.Import(ski, key); err != nil {
		return err
	}

	if old, ok := ks.index[keyID]; ok && old != ski && !ks.referenced(old, keyID) {
		if err := ks.v.Delete(old); err != nil {
			return err
		}
	}
	ks.index[keyID] = ski
	return nil
}

func (ks *InMemoryKeystore) Get(keyID string) ([]byte, error) {
	ks.lock.RLock()
	defer ks.lock.RUnlock()

	ski, ok := ks.index[keyID]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return ks.v.Get(ski)
}

func (ks *InMemoryKeystore) SKI(keyID string) (string, error) {
	ks.lock.RLock()
	defer ks.lock.RUnlock()

	ski, ok := ks.index[keyID]
	if !ok {
		return "", ErrKeyNotFound
	}
	return ski, nil
}

func (ks *InMemoryKeystore) Delete(keyID string) error {
	ks.lock.Lock()
	defer ks.lock.Unlock()

	ski, ok := ks.index[keyID]
	if !ok {
		return ErrKeyNotFound
	}
	delete(ks.index, keyID)
	if ks.referenced(ski, keyID) {
		return nil
	}
	return ks.v.Delete(ski)
}

// List returns the stored key IDs in sorted order.
func (ks *InMemoryKeystore) List() []string {
	ks.lock.RLock()
	defer ks.lock.RUnlock()

	ids := make([]string, 0, len(ks.index))
	for id := range ks.index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (ks *InMemoryKeystore) WithKeyID(keyID string) keystore.KeyLinkedStore {
	return NewInMemoryKeyLinkedStore(keyID, ks)
}

// referenced reports whether another key ID points at ski.
func (ks *InMemoryKeystore) referenced(ski, except string) bool {
	for id, s := range ks.index {
		if id != except && s == ski {
			return true
		}
	}
	return false
}
