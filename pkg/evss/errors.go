package evss

import "errors"

var (
	ErrSetup              = errors.New("evss: setup failed")
	ErrCommit             = errors.New("evss: commit failed")
	ErrOpen               = errors.New("evss: open failed")
	ErrCheck              = errors.New("evss: check failed")
	ErrZeroPoint          = errors.New("evss: attempt to leak secret")
	ErrDegreeMismatch     = errors.New("evss: polynomial does not match degree")
	ErrInsufficientShares = errors.New("evss: not enough shares to reconstruct")
	ErrDuplicatePoint     = errors.New("evss: duplicate share point")
	ErrNilValue           = errors.New("evss: nil value")
	ErrNoScheme           = errors.New("evss: value must be created with a scheme before decoding")
)
