package dealer

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/pkg/biaccumulator"
	"github.com/mr-shifu/evss/pkg/codec"
	"github.com/mr-shifu/evss/pkg/common/cryptosuite/pcs"
	"github.com/mr-shifu/evss/pkg/common/keystore"
	"github.com/mr-shifu/evss/pkg/evss"
	"github.com/mr-shifu/evss/pkg/logging"
	"github.com/mr-shifu/evss/pkg/metrics"
)

var (
	ErrSessionNotFound = errors.New("dealer: session not found")
	ErrSessionExists   = errors.New("dealer: session already exists")
	ErrWrongKind       = errors.New("dealer: operation not supported by session kind")
)

type Kind string

const (
	KindSharing     Kind = "sharing"
	KindAccumulator Kind = "accumulator"
)

// Session is the dealer state of one sharing or accumulator.
type Session struct {
	ID         uuid.UUID
	Kind       Kind
	Params     *evss.Params
	Commitment *evss.SecretCommitment
}

type rawSession struct {
	ID         string
	Kind       string
	Scheme     string
	Group      string
	Params     []byte
	Commitment []byte
}

// Manager keeps dealer sessions in a keystore and issues shares and witnesses
// from them. Secret material only leaves the manager through Export.
type Manager struct {
	scheme pcs.Scheme
	evss   *evss.EVSS
	acc    *biaccumulator.Accumulator
	ks     keystore.Keystore
	log    *logging.Logger
}

type Option func(*options)

type options struct {
	log     *logging.Logger
	metrics *metrics.Metrics
}

func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func NewManager(scheme pcs.Scheme, ks keystore.Keystore, opts ...Option) *Manager {
	o := &options{log: logging.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logging.Discard()
	}
	return &Manager{
		scheme: scheme,
		evss:   evss.New(scheme, evss.WithLogger(o.log), evss.WithMetrics(o.metrics)),
		acc:    biaccumulator.New(scheme, biaccumulator.WithLogger(o.log), biaccumulator.WithMetrics(o.metrics)),
		ks:     ks,
		log:    o.log.With("component", "dealer"),
	}
}

func (m *Manager) EVSS() *evss.EVSS {
	return m.evss
}

func (m *Manager) Accumulator() *biaccumulator.Accumulator {
	return m.acc
}

// CreateSharing sets up a sharing of secret that any degree shares reconstruct.
func (m *Manager) CreateSharing(degree int, secret curve.Scalar, rand io.Reader) (uuid.UUID, error) {
	params, err := m.evss.Setup(degree, rand)
	if err != nil {
		return uuid.Nil, err
	}
	sc, err := m.evss.Commit(params, secret, rand)
	if err != nil {
		return uuid.Nil, err
	}
	return m.store(&Session{ID: uuid.New(), Kind: KindSharing, Params: params, Commitment: sc})
}

// CreateAccumulator commits to credentials in an accumulator of the given degree.
func (m *Manager) CreateAccumulator(degree int, credentials []curve.Scalar, rand io.Reader) (uuid.UUID, error) {
	params, err := m.acc.Setup(degree, rand)
	if err != nil {
		return uuid.Nil, err
	}
	p, err := m.acc.Commit(params, credentials, rand)
	if err != nil {
		return uuid.Nil, err
	}
	return m.store(&Session{ID: uuid.New(), Kind: KindAccumulator, Params: params, Commitment: p})
}

func (m *Manager) Share(id uuid.UUID, point curve.Scalar, rand io.Reader) (*evss.Share, error) {
	s, err := m.load(id, KindSharing)
	if err != nil {
		return nil, err
	}
	return m.evss.GetShare(point, s.Params, s.Commitment, rand)
}

func (m *Manager) Shares(id uuid.UUID, points []curve.Scalar, rand io.Reader) ([]*evss.Share, error) {
	s, err := m.load(id, KindSharing)
	if err != nil {
		return nil, err
	}
	return m.evss.GetShares(points, s.Params, s.Commitment, rand)
}

func (m *Manager) Witness(id uuid.UUID, credential curve.Scalar, rand io.Reader) (*biaccumulator.Witness, error) {
	s, err := m.load(id, KindAccumulator)
	if err != nil {
		return nil, err
	}
	return m.acc.CreateWitness(credential, s.Params, s.Commitment, rand)
}

// Public returns what verifiers of the session need.
func (m *Manager) Public(id uuid.UUID) (*evss.PublicParams, *evss.PublicCommitment, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return s.Params.Public(), s.Commitment.Public(), nil
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	data, err := m.handle(id).Get()
	if errors.Is(err, keystore.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.decode(data)
}

// Export returns the full dealer state of the session, secrets included.
func (m *Manager) Export(id uuid.UUID) ([]byte, error) {
	data, err := m.handle(id).Get()
	if errors.Is(err, keystore.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	return data, err
}

// Import stores a session produced by Export under its original ID.
func (m *Manager) Import(data []byte) (uuid.UUID, error) {
	s, err := m.decode(data)
	if err != nil {
		return uuid.Nil, err
	}
	if m.handle(s.ID).Exists() {
		return uuid.Nil, ErrSessionExists
	}
	return m.store(s)
}

func (m *Manager) Delete(id uuid.UUID) error {
	err := m.handle(id).Delete()
	if errors.Is(err, keystore.ErrKeyNotFound) {
		return ErrSessionNotFound
	}
	if err == nil {
		m.log.Info("session deleted", "id", id)
	}
	return err
}

func (m *Manager) List() []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	for _, k := range m.ks.List() {
		id, err := uuid.Parse(k)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// handle returns the keystore slot holding session id.
func (m *Manager) handle(id uuid.UUID) keystore.KeyLinkedStore {
	return m.ks.WithKeyID(id.String())
}

func (m *Manager) store(s *Session) (uuid.UUID, error) {
	params, err := s.Params.MarshalBinary()
	if err != nil {
		return uuid.Nil, err
	}
	commitment, err := s.Commitment.MarshalBinary()
	if err != nil {
		return uuid.Nil, err
	}
	data, err := codec.MarshalCBOR(rawSession{
		ID:         s.ID.String(),
		Kind:       string(s.Kind),
		Scheme:     m.scheme.Name(),
		Group:      m.scheme.Group().Name(),
		Params:     params,
		Commitment: commitment,
	})
	if err != nil {
		return uuid.Nil, err
	}
	if err := m.handle(s.ID).Import(data); err != nil {
		return uuid.Nil, err
	}
	m.log.Info("session stored", "id", s.ID, "kind", s.Kind, "degree", s.Params.Degree)
	return s.ID, nil
}

func (m *Manager) load(id uuid.UUID, kind Kind) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	if s.Kind != kind {
		return nil, fmt.Errorf("%w: %s", ErrWrongKind, s.Kind)
	}
	return s, nil
}

func (m *Manager) decode(data []byte) (*Session, error) {
	raw := &rawSession{}
	if err := codec.UnmarshalCBOR(data, raw); err != nil {
		return nil, err
	}
	if raw.Scheme != m.scheme.Name() || raw.Group != m.scheme.Group().Name() {
		return nil, fmt.Errorf("dealer: session uses %s over %s", raw.Scheme, raw.Group)
	}
	id, err := uuid.Parse(raw.ID)
	if err != nil {
		return nil, err
	}
	kind := Kind(raw.Kind)
	if kind != KindSharing && kind != KindAccumulator {
		return nil, fmt.Errorf("dealer: unknown session kind %q", raw.Kind)
	}
	params := evss.EmptyParams(m.scheme)
	if err := params.UnmarshalBinary(raw.Params); err != nil {
		return nil, err
	}
	sc := evss.EmptySecretCommitment(m.scheme)
	if err := sc.UnmarshalBinary(raw.Commitment); err != nil {
		return nil, err
	}
	return &Session{ID: id, Kind: kind, Params: params, Commitment: sc}, nil
}
