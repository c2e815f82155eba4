package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/collapseloader/collapse/internal/userdata"
)

const tmpSuffix = ".tmp"

// Snapshot is the last manifest fetched successfully from the remote.
type Snapshot struct {
	CreatedAt   time.Time             `json:"created_at"`
	Version     string                `json:"version"`
	Descriptors []manifest.Descriptor `json:"descriptors"`
}

// Info summarizes the snapshot on disk.
type Info struct {
	Path      string
	Size      int64
	Clients   int
	CreatedAt time.Time
	Version   string
}

// Store persists a single Snapshot as a JSON file.
type Store struct {
	path    string
	version string
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithVersion sets the product version recorded in snapshots.
func WithVersion(v string) Option {
	return func(s *Store) { s.version = v }
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// Exists reports whether a snapshot file is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Get reads the snapshot.
func (s *Store) Get() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest cache: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing manifest cache: %w", err)
	}
	return &snap, nil
}

// Save replaces the snapshot with descriptors, stamping the creation time.
// The file is written to a temporary sibling and renamed into place so
// readers never observe a partial snapshot.
func (s *Store) Save(descriptors []manifest.Descriptor) error {
	if descriptors == nil {
		descriptors = []manifest.Descriptor{}
	}
	snap := Snapshot{
		CreatedAt:   s.now(),
		Version:     s.version,
		Descriptors: descriptors,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp := s.path + tmpSuffix
	if err := os.WriteFile(tmp, data, userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing manifest cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalizing manifest cache: %w", err)
	}
	return nil
}

// Info describes the snapshot on disk. Returns nil, nil when none exists.
func (s *Store) Info() (*Info, error) {
	stat, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inspecting manifest cache: %w", err)
	}

	snap, err := s.Get()
	if err != nil {
		return nil, err
	}
	return &Info{
		Path:      s.path,
		Size:      stat.Size(),
		Clients:   len(snap.Descriptors),
		CreatedAt: snap.CreatedAt,
		Version:   snap.Version,
	}, nil
}

// Clear removes the snapshot file if present.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing manifest cache: %w", err)
	}
	return nil
}
