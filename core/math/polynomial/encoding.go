package polynomial

import (
	"encoding/binary"
	"errors"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/evss/core/math/curve"
)

var (
	ErrInvalidEncoding = errors.New("polynomial: invalid encoding")
	ErrGroupMismatch   = errors.New("polynomial: encoded group does not match")
)

func oneScalar(group curve.Curve) curve.Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(1))
}

func appendGroup(data []byte, group curve.Curve) []byte {
	gn := group.Name()
	data = append(data, byte(len(gn)))
	return append(data, gn...)
}

// readGroup decodes the group name at the start of data. If expected is set, the
// encoded group must match it.
func readGroup(data []byte, expected curve.Curve) (curve.Curve, int, error) {
	if len(data) == 0 {
		return nil, 0, ErrInvalidEncoding
	}
	gnlen := int(data[0])
	if len(data) < 1+gnlen {
		return nil, 0, ErrInvalidEncoding
	}
	group, err := curve.FromName(string(data[1 : 1+gnlen]))
	if err != nil {
		return nil, 0, err
	}
	if expected != nil && expected.Name() != group.Name() {
		return nil, 0, ErrGroupMismatch
	}
	return group, 1 + gnlen, nil
}

// readCount decodes the coefficient count. Every coefficient takes at least its
// length byte, so a count larger than the remaining bytes is rejected before
// anything is allocated.
func readCount(data []byte, offset int) (int, int, error) {
	if len(data) < offset+4 {
		return 0, 0, ErrInvalidEncoding
	}
	count := binary.BigEndian.Uint32(data[offset : offset+4])
	offset += 4
	if count == 0 || uint64(count) > uint64(len(data)-offset) {
		return 0, 0, ErrInvalidEncoding
	}
	return int(count), offset, nil
}

func readChunk(data []byte, offset int) ([]byte, int, error) {
	if len(data) < offset+1 {
		return nil, 0, ErrInvalidEncoding
	}
	blen := int(data[offset])
	offset++
	if len(data) < offset+blen {
		return nil, 0, ErrInvalidEncoding
	}
	return data[offset : offset+blen], offset + blen, nil
}
