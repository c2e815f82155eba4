package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/collapseloader/collapse/internal/cache"
	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/collapseloader/collapse/internal/registry"
	"github.com/collapseloader/collapse/internal/source"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoDataSource means neither the remote nor a local snapshot could
// supply manifests.
var ErrNoDataSource = errors.New("no manifest source: remote unreachable and no local snapshot")

// ConfigurationError is the only error returned by Initialize and Refresh.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalog configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// SnapshotStore persists the last successfully fetched manifests.
type SnapshotStore interface {
	Exists() bool
	Get() (*cache.Snapshot, error)
	Save(descriptors []manifest.Descriptor) error
}

// CustomSource supplies user-registered clients.
type CustomSource interface {
	Descriptors() []manifest.Descriptor
}

// Manager builds and serves the client registry.
type Manager struct {
	source source.Source
	store  SnapshotStore
	custom CustomSource
	logger *zap.Logger

	policy registry.Policy

	mu  sync.RWMutex
	reg registry.Registry
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithCustom sets the provider of custom clients.
func WithCustom(c CustomSource) Option {
	return func(m *Manager) { m.custom = c }
}

// WithPolicy sets the visibility and ordering policy.
func WithPolicy(p registry.Policy) Option {
	return func(m *Manager) { m.policy = p }
}

// New creates a manager. The registry stays empty until Initialize.
func New(src source.Source, store SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		source: src,
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize loads the registry for the first time.
func (m *Manager) Initialize(ctx context.Context) error {
	return m.load(ctx)
}

// Refresh rebuilds the registry from the remote or the snapshot. On a
// ConfigurationError the registry is left empty.
func (m *Manager) Refresh(ctx context.Context) error {
	return m.load(ctx)
}

// Find returns the first client whose name contains name, ignoring case.
func (m *Manager) Find(name string) (manifest.Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reg.Find(name)
}

// Get returns the client with the given ID.
func (m *Manager) Get(id int) (manifest.Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reg.Get(id)
}

// Clients returns a copy of the registry in order.
func (m *Manager) Clients() []manifest.Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reg.All()
}

func (m *Manager) load(ctx context.Context) error {
	m.mu.Lock()
	m.reg = registry.Registry{}
	m.mu.Unlock()

	remote, err := m.remote(ctx)
	if err != nil {
		return err
	}

	var custom []manifest.Descriptor
	if m.custom != nil {
		custom = m.custom.Descriptors()
	}
	reg := registry.Build(remote, custom, m.policy)

	m.mu.Lock()
	m.reg = reg
	m.mu.Unlock()

	m.logger.Debug("catalog loaded", zap.Int("clients", reg.Len()), zap.Int("custom", len(custom)))
	return nil
}

// remote returns descriptors from the source, or from the snapshot when the
// source cannot deliver.
func (m *Manager) remote(ctx context.Context) ([]manifest.Descriptor, error) {
	if m.source != nil && m.source.Available(ctx) {
		descriptors, err := m.fetch(ctx)
		if err == nil {
			if err := m.store.Save(descriptors); err != nil {
				m.logger.Warn("could not save manifest snapshot", zap.Error(err))
			}
			return descriptors, nil
		}
		m.logger.Warn("fetching manifests failed, using local snapshot", zap.Error(err))
	}
	return m.fromSnapshot()
}

// fetch retrieves every manifest kind concurrently and concatenates them in
// source.Kinds order.
func (m *Manager) fetch(ctx context.Context) ([]manifest.Descriptor, error) {
	results := make([][]manifest.Descriptor, len(source.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range source.Kinds {
		i, kind := i, kind
		g.Go(func() error {
			descriptors, err := m.source.Fetch(gctx, kind)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", kind, err)
			}
			results[i] = descriptors
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []manifest.Descriptor
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func (m *Manager) fromSnapshot() ([]manifest.Descriptor, error) {
	if !m.store.Exists() {
		m.logger.Error("no manifest source available")
		return nil, &ConfigurationError{Err: ErrNoDataSource}
	}
	snap, err := m.store.Get()
	if err != nil {
		m.logger.Error("reading manifest snapshot", zap.Error(err))
		return nil, &ConfigurationError{Err: fmt.Errorf("%w: %v", ErrNoDataSource, err)}
	}
	m.logger.Warn("manifest source unavailable, using cached data",
		zap.Time("created_at", snap.CreatedAt),
		zap.Int("clients", len(snap.Descriptors)))
	return snap.Descriptors, nil
}
