package evss

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/evss/core/hash"
	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// GetShares issues one share per point concurrently. A single seed is read from
// rand and every point draws from its own stream derived from it.
func (e *EVSS) GetShares(points []curve.Scalar, params *Params, sc *SecretCommitment, rand io.Reader) ([]*Share, error) {
	seed := make([]byte, hash.SecBytes)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, errors.WithMessage(err, "evss: failed to read seed")
	}

	shares := make([]*Share, len(points))
	var errGroup errgroup.Group
	for i := range points {
		i := i
		errGroup.Go(func() error {
			stream, err := deriveStream(seed, i)
			if err != nil {
				return err
			}
			share, err := e.GetShare(points[i], params, sc, stream)
			if err != nil {
				return err
			}
			shares[i] = share
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	e.log.Info("shares issued", "count", len(shares))
	return shares, nil
}

// CheckShares verifies every share concurrently and returns one verdict per share.
// rand is shared between the checks and must be safe for concurrent use.
func (e *EVSS) CheckShares(pp *PublicParams, pc *PublicCommitment, shares []*Share, rand io.Reader) ([]bool, error) {
	verdicts := make([]bool, len(shares))
	var errGroup errgroup.Group
	for i := range shares {
		i := i
		errGroup.Go(func() error {
			ok, err := e.Check(pp, pc, shares[i], rand)
			if err != nil {
				return err
			}
			verdicts[i] = ok
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

func deriveStream(seed []byte, index int) (io.Reader, error) {
	h := hash.New()
	if err := h.WriteAny("evss.GetShares", seed, new(saferith.Nat).SetUint64(uint64(index))); err != nil {
		return nil, err
	}
	return h.Digest(), nil
}
