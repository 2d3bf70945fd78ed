package vault

// Vault stores opaque blobs under an identifier.
type Vault interface {
	Import(keyID string, key []byte) error
	Get(keyID string) ([]byte, error)
	Delete(keyID string) error
}
