package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Missing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cache.json"))
	assert.False(t, s.Exists())

	_, err := s.Get()
	assert.Error(t, err)

	info, err := s.Info()
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestStore_SaveAndGet(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(filepath.Join(t.TempDir(), "nested", "cache.json"),
		WithClock(func() time.Time { return created }),
		WithVersion("1.4.0 (Eclipse)"))

	descriptors := []manifest.Descriptor{
		{ID: 1, Name: "Nova", DownloadPath: "Nova.zip", Format: manifest.FormatArchive, Visible: true},
		{ID: 2, Name: "Lumen", DownloadPath: "lumen.jar", Format: manifest.FormatSingleFile},
	}
	require.NoError(t, s.Save(descriptors))
	assert.True(t, s.Exists())

	snap, err := s.Get()
	require.NoError(t, err)
	assert.True(t, created.Equal(snap.CreatedAt))
	assert.Equal(t, "1.4.0 (Eclipse)", snap.Version)
	assert.Equal(t, descriptors, snap.Descriptors)

	_, err = os.Stat(s.Path() + tmpSuffix)
	assert.True(t, os.IsNotExist(err), "temporary file must not remain")
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cache.json"))

	require.NoError(t, s.Save([]manifest.Descriptor{{ID: 1, Name: "Old"}}))
	require.NoError(t, s.Save([]manifest.Descriptor{{ID: 2, Name: "New"}}))

	snap, err := s.Get()
	require.NoError(t, err)
	require.Len(t, snap.Descriptors, 1)
	assert.Equal(t, "New", snap.Descriptors[0].Name)
}

func TestStore_InfoAndClear(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cache.json"))
	require.NoError(t, s.Save([]manifest.Descriptor{{ID: 1}, {ID: 2}, {ID: 3}}))

	info, err := s.Info()
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 3, info.Clients)
	assert.Positive(t, info.Size)

	require.NoError(t, s.Clear())
	assert.False(t, s.Exists())
	require.NoError(t, s.Clear(), "clearing twice is not an error")
}

func TestStore_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not valid json{{{"), 0644))

	_, err := NewStore(path).Get()
	assert.Error(t, err)
}
