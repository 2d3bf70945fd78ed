package evss

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/polynomial"
	"github.com/mr-shifu/evss/core/math/sample"
	"github.com/mr-shifu/evss/pkg/common/cryptosuite/pcs"
	"github.com/mr-shifu/evss/pkg/logging"
	"github.com/mr-shifu/evss/pkg/metrics"
)

const Protocol = "evss"

// EVSS deals a secret as the constant term of a random polynomial and hands out
// evaluations of it, each carrying an opening proof against the public commitment.
//
// All methods are stateless and safe for concurrent use.
type EVSS struct {
	scheme  pcs.Scheme
	log     *logging.Logger
	metrics *metrics.Metrics
}

func New(scheme pcs.Scheme, opts ...Option) *EVSS {
	e := &EVSS{
		scheme: scheme,
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("protocol", Protocol, "scheme", scheme.Name(), "group", scheme.Group().Name())
	return e
}

func (e *EVSS) Scheme() pcs.Scheme {
	return e.scheme
}

// Setup generates the parameters for polynomials with degree coefficients, so that
// any degree shares reconstruct the secret.
func (e *EVSS) Setup(degree int, rand io.Reader) (params *Params, err error) {
	defer e.metrics.Observe(Protocol, metrics.OpSetup, time.Now(), &err)

	pp, err := e.scheme.Setup(degree, rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}
	ck, vk, err := e.scheme.Trim(pp, degree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}
	e.log.Debug("setup", "degree", degree)
	return &Params{
		Degree:       degree,
		CommitterKey: ck,
		VerifierKey:  vk,
	}, nil
}

// Commit embeds secret as the constant term of a polynomial with params.Degree
// coefficients, the others uniform, and commits to it.
func (e *EVSS) Commit(params *Params, secret curve.Scalar, rand io.Reader) (sc *SecretCommitment, err error) {
	defer e.metrics.Observe(Protocol, metrics.OpCommit, time.Now(), &err)

	if params == nil || secret == nil {
		return nil, ErrNilValue
	}
	if params.Degree < 1 {
		return nil, fmt.Errorf("%w: degree %d", ErrDegreeMismatch, params.Degree)
	}
	p := polynomial.NewPolynomial(rand, e.scheme.Group(), params.Degree-1, secret)
	return e.CommitPolynomial(params, p, rand)
}

// CommitPolynomial commits to an already built sharing polynomial, which must have
// exactly params.Degree coefficients.
func (e *EVSS) CommitPolynomial(params *Params, p *polynomial.Polynomial, rand io.Reader) (*SecretCommitment, error) {
	if params == nil || p == nil {
		return nil, ErrNilValue
	}
	if p.Len() != params.Degree {
		return nil, fmt.Errorf("%w: %d coefficients, expected %d", ErrDegreeMismatch, p.Len(), params.Degree)
	}
	return e.commit(params, p, rand)
}

// CommitBounded commits to a polynomial with at most params.Degree coefficients.
// Such a commitment can be opened with Open but not shared with GetShare unless
// its length is exactly params.Degree.
func (e *EVSS) CommitBounded(params *Params, p *polynomial.Polynomial, rand io.Reader) (*SecretCommitment, error) {
	if params == nil || p == nil {
		return nil, ErrNilValue
	}
	if p.Len() > params.Degree {
		return nil, fmt.Errorf("%w: %d coefficients, at most %d", ErrDegreeMismatch, p.Len(), params.Degree)
	}
	return e.commit(params, p, rand)
}

func (e *EVSS) commit(params *Params, p *polynomial.Polynomial, rand io.Reader) (*SecretCommitment, error) {
	c, r, err := e.scheme.Commit(params.CommitterKey, p, rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommit, err)
	}
	e.log.Debug("committed", "coefficients", p.Len())
	return &SecretCommitment{
		Polynomial: p,
		Commitment: c,
		Randomness: r,
	}, nil
}

// GetShare returns the share at point. A fresh challenge is sampled on every call,
// including repeated calls for the same point.
func (e *EVSS) GetShare(point curve.Scalar, params *Params, sc *SecretCommitment, rand io.Reader) (share *Share, err error) {
	defer e.metrics.Observe(Protocol, metrics.OpShare, time.Now(), &err)

	if point == nil || params == nil || sc == nil || sc.Polynomial == nil {
		return nil, ErrNilValue
	}
	// f(0) is the secret
	if point.IsZero() {
		return nil, ErrZeroPoint
	}
	if sc.Polynomial.Len() != params.Degree {
		return nil, fmt.Errorf("%w: %d coefficients, expected %d", ErrDegreeMismatch, sc.Polynomial.Len(), params.Degree)
	}
	return e.Open(params, sc, point, rand)
}

// Open opens the committed polynomial at point under a fresh challenge. Unlike
// GetShare it applies no policy on the point or the number of coefficients.
func (e *EVSS) Open(params *Params, sc *SecretCommitment, point curve.Scalar, rand io.Reader) (*Share, error) {
	if point == nil || params == nil || sc == nil || sc.Polynomial == nil {
		return nil, ErrNilValue
	}
	challenge := sample.Scalar(rand, e.scheme.Group())
	proof, err := e.scheme.Open(params.CommitterKey, sc.Polynomial, sc.Commitment, point, challenge, sc.Randomness, rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return &Share{
		Point:     e.scheme.Group().NewScalar().Set(point),
		Value:     sc.Polynomial.Evaluate(point),
		Challenge: challenge,
		Proof:     proof,
	}, nil
}

// Check reports whether share is a valid evaluation of the committed polynomial.
// A false verdict is returned with a nil error.
func (e *EVSS) Check(pp *PublicParams, pc *PublicCommitment, share *Share, rand io.Reader) (bool, error) {
	start := time.Now()
	ok, err := e.check(pp, pc, share, rand)
	e.metrics.RecordOperation(Protocol, metrics.OpCheck, metrics.VerdictStatus(ok, err), time.Since(start))
	if err == nil && !ok {
		e.log.Warn("share rejected")
	}
	return ok, err
}

func (e *EVSS) check(pp *PublicParams, pc *PublicCommitment, share *Share, rand io.Reader) (bool, error) {
	if pp == nil || pc == nil || share == nil {
		return false, ErrNilValue
	}
	if share.Point == nil || share.Value == nil || share.Challenge == nil || share.Proof == nil {
		return false, ErrNilValue
	}
	ok, err := e.scheme.Check(pp.VerifierKey, pc.Commitment, share.Point, share.Value, share.Proof, share.Challenge, rand)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCheck, err)
	}
	return ok, nil
}

// Reconstruct interpolates the secret from at least pp.Degree shares with distinct
// points. The shares are not checked.
func (e *EVSS) Reconstruct(pp *PublicParams, shares []*Share) (secret curve.Scalar, err error) {
	defer e.metrics.Observe(Protocol, metrics.OpReconstruct, time.Now(), &err)

	if pp == nil {
		return nil, ErrNilValue
	}
	if len(shares) < pp.Degree {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(shares), pp.Degree)
	}
	points := make([]curve.Scalar, len(shares))
	values := make([]curve.Scalar, len(shares))
	for i, share := range shares {
		if share == nil || share.Point == nil || share.Value == nil {
			return nil, ErrNilValue
		}
		points[i] = share.Point
		values[i] = share.Value
	}
	secret, err = polynomial.InterpolateAtZero(e.scheme.Group(), points, values)
	if errors.Is(err, polynomial.ErrDuplicatePoint) {
		return nil, ErrDuplicatePoint
	}
	if err != nil {
		return nil, err
	}
	e.log.Debug("reconstructed", "shares", len(shares))
	return secret, nil
}
