package keystore

import "errors"

var ErrKeyNotFound = errors.New("keystore: key not found")

// Keystore stores blobs under a caller-chosen key ID. Blobs are addressed in the
// underlying vault by their SKI.
type Keystore interface {
	Import(keyID string, key []byte) error
	Get(keyID string) ([]byte, error)
	// SKI returns the identifier of the blob currently stored under keyID.
	SKI(keyID string) (string, error)
	Delete(keyID string) error
	List() []string
	WithKeyID(keyID string) KeyLinkedStore
}

// KeyLinkedStore is a handle on a single key ID of a Keystore.
type KeyLinkedStore interface {
	KeyID() string
	Import(key []byte) error
	Get() ([]byte, error)
	SKI() (string, error)
	// Exists reports whether a blob is stored under the key ID.
	Exists() bool
	Delete() error
}
