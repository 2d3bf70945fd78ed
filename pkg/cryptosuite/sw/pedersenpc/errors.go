package pedersenpc

import "errors"

// MaxDegree bounds the number of coefficients a UniversalParams can support.
const MaxDegree = 1 << 12

var (
	ErrDegreeUnsupported = errors.New("pedersenpc: unsupported degree")
	ErrDegreeTooLarge    = errors.New("pedersenpc: polynomial exceeds supported degree")
	ErrGroupMismatch     = errors.New("pedersenpc: group mismatch")
	ErrInvalidValue      = errors.New("pedersenpc: value was not produced by this scheme")
	ErrRandomnessLength  = errors.New("pedersenpc: randomness does not match polynomial")
	ErrMalformed         = errors.New("pedersenpc: malformed encoding")
)
