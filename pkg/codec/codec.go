package codec

import (
	"encoding"
	"errors"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	ErrNilValue = errors.New("codec: nil value")
	ErrEmpty    = errors.New("codec: empty encoding")
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encode returns the canonical bytes of one opaque value.
func Encode(v encoding.BinaryMarshaler) ([]byte, error) {
	if isNil(v) {
		return nil, ErrNilValue
	}
	return v.MarshalBinary()
}

// Decode fills v from bytes produced by Encode.
func Decode(data []byte, v encoding.BinaryUnmarshaler) error {
	if isNil(v) {
		return ErrNilValue
	}
	if len(data) == 0 {
		return ErrEmpty
	}
	return v.UnmarshalBinary(data)
}

// MarshalCBOR encodes v with core deterministic encoding, so equal values always
// produce equal bytes.
func MarshalCBOR(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

// UnmarshalCBOR decodes data into v. Unknown fields and duplicate keys are rejected.
func UnmarshalCBOR(data []byte, v interface{}) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	return decMode.Unmarshal(data, v)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
