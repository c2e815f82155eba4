package custom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/collapseloader/collapse/internal/userdata"
	"go.yaml.in/yaml/v3"
)

const (
	// IDOffset separates custom client IDs from manifest IDs.
	IDOffset = 10000

	DefaultVersion    = "1.12.2"
	DefaultEntryPoint = "net.minecraft.client.main.Main"
)

// ErrNotFound is returned when no custom client has the requested ID.
var ErrNotFound = errors.New("custom client not found")

// Client is one user-added client as persisted in custom_clients.yaml.
type Client struct {
	CustomID     int       `yaml:"custom_id"`
	Name         string    `yaml:"name"`
	Version      string    `yaml:"version"`
	EntryPoint   string    `yaml:"main_class"`
	Fabric       bool      `yaml:"fabric"`
	OriginalPath string    `yaml:"original_jar_path"`
	Filename     string    `yaml:"filename"`
	AddedAt      time.Time `yaml:"added_date"`
}

// AddRequest describes a client to register from a local file.
type AddRequest struct {
	Path       string
	Name       string // defaults to the file stem
	Version    string // defaults to DefaultVersion
	EntryPoint string // defaults to DefaultEntryPoint
	Fabric     bool
}

// Store manages the custom clients of one install root.
type Store struct {
	root    string
	path    string
	clients []Client
	now     func() time.Time
}

// NewStore creates a store for the install root. Call Load before use.
func NewStore(root string) *Store {
	return &Store{
		root: root,
		path: userdata.CustomPath(root),
		now:  time.Now,
	}
}

// Load reads the clients file. A missing file yields an empty list.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.clients = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading custom clients: %w", err)
	}

	var clients []Client
	if err := yaml.Unmarshal(data, &clients); err != nil {
		s.clients = nil
		return fmt.Errorf("parsing custom clients %s: %w", s.path, err)
	}
	s.clients = clients
	return nil
}

// Save writes the clients file.
func (s *Store) Save() error {
	data, err := yaml.Marshal(s.clients)
	if err != nil {
		return fmt.Errorf("marshaling custom clients: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating custom clients directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing custom clients: %w", err)
	}
	return nil
}

// List returns a copy of the custom clients.
func (s *Store) List() []Client {
	return append([]Client(nil), s.clients...)
}

// Add copies the file at req.Path into the install root and registers it.
func (s *Store) Add(req AddRequest) (Client, error) {
	info, err := os.Stat(req.Path)
	if err != nil {
		return Client{}, fmt.Errorf("checking client file: %w", err)
	}
	if info.IsDir() {
		return Client{}, fmt.Errorf("client file %s is a directory", req.Path)
	}

	version := req.Version
	if version == "" {
		version = DefaultVersion
	}
	if err := validateVersion(version); err != nil {
		return Client{}, err
	}

	filename := filepath.Base(req.Path)
	name := req.Name
	if name == "" {
		name = manifest.StripExt(filename)
	}
	entry := req.EntryPoint
	if entry == "" {
		entry = DefaultEntryPoint
	}

	dest := filepath.Join(userdata.CustomArtifactsDir(s.root), filename)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		if err := copyFile(req.Path, dest); err != nil {
			return Client{}, err
		}
	}

	c := Client{
		CustomID:     s.nextID(),
		Name:         name,
		Version:      version,
		EntryPoint:   entry,
		Fabric:       req.Fabric,
		OriginalPath: req.Path,
		Filename:     filename,
		AddedAt:      s.now(),
	}
	s.clients = append(s.clients, c)
	if err := s.Save(); err != nil {
		return Client{}, err
	}
	return c, nil
}

// Remove unregisters a client and deletes its installed directory and copy.
func (s *Store) Remove(customID int) error {
	i := s.index(customID)
	if i < 0 {
		return fmt.Errorf("removing client %d: %w", customID, ErrNotFound)
	}
	c := s.clients[i]

	_ = os.RemoveAll(filepath.Join(s.root, manifest.StripExt(c.Filename)))
	if !s.artifactShared(c) {
		_ = os.Remove(filepath.Join(userdata.CustomArtifactsDir(s.root), c.Filename))
	}

	s.clients = append(s.clients[:i], s.clients[i+1:]...)
	return s.Save()
}

// Rename changes a client's display name.
func (s *Store) Rename(customID int, name string) error {
	if name == "" {
		return fmt.Errorf("renaming client %d: name must not be empty", customID)
	}
	i := s.index(customID)
	if i < 0 {
		return fmt.Errorf("renaming client %d: %w", customID, ErrNotFound)
	}
	s.clients[i].Name = name
	return s.Save()
}

// SetVersion changes a client's game version.
func (s *Store) SetVersion(customID int, version string) error {
	if err := validateVersion(version); err != nil {
		return err
	}
	i := s.index(customID)
	if i < 0 {
		return fmt.Errorf("updating client %d: %w", customID, ErrNotFound)
	}
	s.clients[i].Version = version
	return s.Save()
}

// Descriptors returns the custom clients as catalog descriptors.
func (s *Store) Descriptors() []manifest.Descriptor {
	out := make([]manifest.Descriptor, 0, len(s.clients))
	for _, c := range s.clients {
		d := manifest.Descriptor{
			ID:           c.CustomID + IDOffset,
			Name:         c.Name,
			DownloadPath: filepath.Join(userdata.CustomArtifactsDir(s.root), c.Filename),
			EntryPoint:   c.EntryPoint,
			Version:      c.Version,
			Format:       manifest.FormatFor(c.Filename),
			Variant:      manifest.VariantStandard,
			Visible:      true,
			Enabled:      true,
			IsCustom:     true,
		}
		if c.Fabric {
			d.Variant = manifest.VariantFabric
		}
		out = append(out, d)
	}
	return out
}

func (s *Store) nextID() int {
	id := 1
	for _, c := range s.clients {
		if c.CustomID >= id {
			id = c.CustomID + 1
		}
	}
	return id
}

func (s *Store) index(customID int) int {
	for i, c := range s.clients {
		if c.CustomID == customID {
			return i
		}
	}
	return -1
}

// artifactShared reports whether another client uses the same file copy.
func (s *Store) artifactShared(c Client) bool {
	for _, other := range s.clients {
		if other.CustomID != c.CustomID && other.Filename == c.Filename {
			return true
		}
	}
	return false
}

func validateVersion(v string) error {
	if _, err := semver.NewVersion(v); err != nil {
		return fmt.Errorf("invalid version %q: %w", v, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating custom directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("copying client file: %w", err)
	}
	return out.Close()
}
