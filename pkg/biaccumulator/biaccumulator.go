package biaccumulator

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/core/math/polynomial"
	"github.com/mr-shifu/evss/pkg/common/cryptosuite/pcs"
	"github.com/mr-shifu/evss/pkg/evss"
	"github.com/mr-shifu/evss/pkg/logging"
	"github.com/mr-shifu/evss/pkg/metrics"
)

const Protocol = "biaccumulator"

var (
	ErrTooManyCredentials  = errors.New("biaccumulator: too many credentials for degree")
	ErrDuplicateCredential = errors.New("biaccumulator: duplicate credential")
)

// Polynomial is the accumulator p(X) = Π (X - cᵢ) with its commitment.
type Polynomial = evss.SecretCommitment

// Witness is an opening of the accumulator at a credential. It proves membership
// when its value is zero.
type Witness = evss.Share

// Accumulator commits to a set of credentials as the roots of a polynomial.
type Accumulator struct {
	evss    *evss.EVSS
	log     *logging.Logger
	metrics *metrics.Metrics
}

type Option func(*Accumulator)

func WithLogger(l *logging.Logger) Option {
	return func(a *Accumulator) {
		if l != nil {
			a.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Accumulator) {
		a.metrics = m
	}
}

func New(scheme pcs.Scheme, opts ...Option) *Accumulator {
	a := &Accumulator{log: logging.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	a.evss = evss.New(scheme, evss.WithLogger(a.log))
	a.log = a.log.With("protocol", Protocol, "scheme", scheme.Name())
	return a
}

// Setup generates parameters for up to degree-1 credentials.
func (a *Accumulator) Setup(degree int, rand io.Reader) (params *evss.Params, err error) {
	defer a.metrics.Observe(Protocol, metrics.OpSetup, time.Now(), &err)
	return a.evss.Setup(degree, rand)
}

// Commit builds p(X) = Π (X - c) over credentials and commits to it. The empty set
// yields the constant polynomial 1.
func (a *Accumulator) Commit(params *evss.Params, credentials []curve.Scalar, rand io.Reader) (acc *Polynomial, err error) {
	defer a.metrics.Observe(Protocol, metrics.OpCommit, time.Now(), &err)

	if params == nil {
		return nil, evss.ErrNilValue
	}
	if len(credentials) > params.Degree-1 {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCredentials, len(credentials), params.Degree-1)
	}
	if err := checkDistinct(credentials); err != nil {
		return nil, err
	}
	p := polynomial.FromRoots(a.evss.Scheme().Group(), credentials)
	acc, err = a.evss.CommitBounded(params, p, rand)
	if err != nil {
		return nil, err
	}
	a.log.Info("accumulator committed", "credentials", len(credentials))
	return acc, nil
}

// CreateWitness opens the accumulator at credential.
func (a *Accumulator) CreateWitness(credential curve.Scalar, params *evss.Params, acc *Polynomial, rand io.Reader) (w *Witness, err error) {
	defer a.metrics.Observe(Protocol, metrics.OpCreateWitness, time.Now(), &err)
	return a.evss.Open(params, acc, credential, rand)
}

// Check reports whether witness proves membership in the accumulator. A witness
// with a nonzero value is rejected without consulting the scheme.
func (a *Accumulator) Check(pp *evss.PublicParams, pc *evss.PublicCommitment, witness *Witness, rand io.Reader) (bool, error) {
	start := time.Now()
	ok, err := a.check(pp, pc, witness, rand)
	a.metrics.RecordOperation(Protocol, metrics.OpCheck, metrics.VerdictStatus(ok, err), time.Since(start))
	return ok, err
}

func (a *Accumulator) check(pp *evss.PublicParams, pc *evss.PublicCommitment, witness *Witness, rand io.Reader) (bool, error) {
	if witness == nil || witness.Value == nil {
		return false, evss.ErrNilValue
	}
	if !witness.Value.IsZero() {
		return false, nil
	}
	return a.evss.Check(pp, pc, witness, rand)
}

func checkDistinct(credentials []curve.Scalar) error {
	seen := make(map[string]struct{}, len(credentials))
	for _, c := range credentials {
		if c == nil {
			return evss.ErrNilValue
		}
		b, err := c.MarshalBinary()
		if err != nil {
			return err
		}
		if _, ok := seen[string(b)]; ok {
			return ErrDuplicateCredential
		}
		seen[string(b)] = struct{}{}
	}
	return nil
}
