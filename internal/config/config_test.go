package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFresh(t *testing.T, path string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	Load(path)
}

func TestLoad_Defaults(t *testing.T) {
	loadFresh(t, filepath.Join(t.TempDir(), "settings.yaml"))

	opts, err := Current()
	require.NoError(t, err)
	assert.False(t, opts.SortClients)
	assert.False(t, opts.ShowHiddenClients)
	assert.Equal(t, 5, opts.Timeout)
	assert.NotEmpty(t, opts.CDNServers)
	assert.NotEmpty(t, opts.WebServers)
	assert.Equal(t, "info", opts.LogLevel)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "sort_clients: true\nshow_hidden_clients: true\ntimeout: 12\nweb_servers:\n  - api.example.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loadFresh(t, path)

	opts, err := Current()
	require.NoError(t, err)
	assert.True(t, opts.SortClients)
	assert.True(t, opts.ShowHiddenClients)
	assert.Equal(t, 12*time.Second, opts.RequestTimeout())
	assert.Equal(t, []string{"api.example.test"}, opts.WebServers)
}

func TestSet_PersistsValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.yaml")
	loadFresh(t, path)

	require.NoError(t, Set(KeyAPIURL, "http://localhost:8000/"))
	assert.Equal(t, "http://localhost:8000/", Get(KeyAPIURL))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "localhost:8000")
}

func TestRequestTimeout_Fallback(t *testing.T) {
	assert.Equal(t, 5*time.Second, Options{}.RequestTimeout())
}
