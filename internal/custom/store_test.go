package custom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJar(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("PK fake jar"), 0644))
	return path
}

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Load())
	assert.Empty(t, s.List())
	assert.Empty(t, s.Descriptors())
}

func TestStore_AddAssignsIDsAndCopies(t *testing.T) {
	root := t.TempDir()
	src := t.TempDir()
	s := NewStore(root)
	require.NoError(t, s.Load())

	first, err := s.Add(AddRequest{Path: writeJar(t, src, "Mine.jar")})
	require.NoError(t, err)
	assert.Equal(t, 1, first.CustomID)
	assert.Equal(t, "Mine", first.Name)
	assert.Equal(t, DefaultVersion, first.Version)
	assert.Equal(t, DefaultEntryPoint, first.EntryPoint)
	assert.FileExists(t, filepath.Join(root, "custom", "Mine.jar"))

	second, err := s.Add(AddRequest{Path: writeJar(t, src, "Other.jar"), Name: "Other client", Version: "1.21", Fabric: true})
	require.NoError(t, err)
	assert.Equal(t, 2, second.CustomID)

	reloaded := NewStore(root)
	require.NoError(t, reloaded.Load())
	assert.Len(t, reloaded.List(), 2)
}

func TestStore_AddRejectsMissingFileAndBadVersion(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Load())

	_, err := s.Add(AddRequest{Path: filepath.Join(t.TempDir(), "nope.jar")})
	assert.Error(t, err)

	_, err = s.Add(AddRequest{Path: writeJar(t, t.TempDir(), "x.jar"), Version: "not-a-version"})
	assert.Error(t, err)
	assert.Empty(t, s.List())
}

func TestStore_Descriptors(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	require.NoError(t, s.Load())

	_, err := s.Add(AddRequest{Path: writeJar(t, t.TempDir(), "Mine.jar"), Fabric: true})
	require.NoError(t, err)

	ds := s.Descriptors()
	require.Len(t, ds, 1)
	d := ds[0]
	assert.Equal(t, IDOffset+1, d.ID)
	assert.Equal(t, filepath.Join(root, "custom", "Mine.jar"), d.DownloadPath)
	assert.Equal(t, manifest.FormatSingleFile, d.Format)
	assert.Equal(t, manifest.VariantFabric, d.Variant)
	assert.True(t, d.IsCustom)
	assert.True(t, d.Visible)
	assert.True(t, d.Enabled)
}

func TestStore_RenameAndSetVersion(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Load())
	c, err := s.Add(AddRequest{Path: writeJar(t, t.TempDir(), "Mine.jar")})
	require.NoError(t, err)

	require.NoError(t, s.Rename(c.CustomID, "Renamed"))
	require.NoError(t, s.SetVersion(c.CustomID, "1.16.5"))
	assert.Equal(t, "Renamed", s.List()[0].Name)
	assert.Equal(t, "1.16.5", s.List()[0].Version)

	assert.ErrorIs(t, s.Rename(99, "x"), ErrNotFound)
	assert.ErrorIs(t, s.SetVersion(99, "1.0.0"), ErrNotFound)
	assert.Error(t, s.Rename(c.CustomID, ""))
	assert.Error(t, s.SetVersion(c.CustomID, "garbage"))
}

func TestStore_Remove(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	require.NoError(t, s.Load())
	c, err := s.Add(AddRequest{Path: writeJar(t, t.TempDir(), "Mine.jar")})
	require.NoError(t, err)

	installed := filepath.Join(root, "Mine")
	require.NoError(t, os.MkdirAll(installed, 0755))

	require.NoError(t, s.Remove(c.CustomID))
	assert.Empty(t, s.List())
	assert.NoDirExists(t, installed)
	assert.NoFileExists(t, filepath.Join(root, "custom", "Mine.jar"))

	assert.ErrorIs(t, s.Remove(c.CustomID), ErrNotFound)
}

func TestStore_LoadCorrupted(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "custom_clients.yaml"), []byte("- [unclosed"), 0644))

	s := NewStore(root)
	assert.Error(t, s.Load())
	assert.Empty(t, s.List())
}
