package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/evss/core/math/curve"
)

const (
	fileParams     = "params.json"
	fileCommitment = "commitment.json"
	fileDealer     = "dealer.cbor"
)

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// writeSecret writes dealer state readable by the owner only.
func writeSecret(path string, data []byte) error {
	return os.WriteFile(path, data, 0o600)
}

func outputPath(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// parseScalar reads a non-negative integer in decimal or 0x-prefixed hex and
// reduces it into the scalar field of group.
func parseScalar(group curve.Curve, s string) (curve.Scalar, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid scalar %q", s)
	}
	return group.NewScalar().SetNat(new(saferith.Nat).SetBytes(n.Bytes())), nil
}

func parseScalars(group curve.Curve, csv string) ([]curve.Scalar, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	out := make([]curve.Scalar, len(parts))
	for i, p := range parts {
		s, err := parseScalar(group, p)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func formatScalar(s curve.Scalar) (string, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}
