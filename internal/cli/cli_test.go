package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientsJSON = `[
  {"id": 1, "name": "Zulu", "filename": "Zulu.jar", "main_class": "zulu.Main", "version": "1.16.5", "working": true, "show_in_loader": true},
  {"id": 2, "name": "Alpha", "filename": "Alpha.jar", "main_class": "alpha.Main", "version": "1.12.2", "working": true, "show_in_loader": true},
  {"id": 3, "name": "Ghost", "filename": "Ghost.jar", "main_class": "ghost.Main", "version": "1.12.2", "working": true, "show_in_loader": false}
]`

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "ok")
	})
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, clientsJSON)
	})
	mux.HandleFunc("/fabric_clients", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[]`)
	})
	mux.HandleFunc("/Alpha.jar", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "alpha-jar")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	listJSON, listInstalled, installForce, clearYes = false, false, false, false
	flagAPIURL, flagSettings, flagTimeout, flagVerbose, flagLevel = "", "", 0, false, "error"
	flagLogJSON = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--level", "error"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	want := []string{"list", "find", "install", "remove", "reset", "refresh", "clear",
		"cache", "custom", "servers", "config", "version"}
	_, _, err := rootCmd.Find([]string{"config", "list"})
	require.NoError(t, err)
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestEndToEnd(t *testing.T) {
	srv := newBackend(t)
	root := t.TempDir()
	t.Setenv("COLLAPSE_ROOT", root)
	t.Setenv("COLLAPSE_CDN_SERVERS", srv.URL)

	out, err := run(t, "list", "--json", "--api-url", srv.URL)
	require.NoError(t, err)
	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2, "hidden clients are filtered")
	assert.Equal(t, "Alpha", entries[0].Name, "sorted by name when sort_clients is off")
	assert.Equal(t, "Zulu", entries[1].Name)

	out, err = run(t, "install", "alpha", "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Installed Alpha")
	got, err := os.ReadFile(filepath.Join(root, "Alpha", "Alpha.jar"))
	require.NoError(t, err)
	assert.Equal(t, "alpha-jar", string(got))

	out, err = run(t, "install", "#2", "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "already installed")

	out, err = run(t, "list", "--installed", "--json", "--api-url", srv.URL)
	require.NoError(t, err)
	entries = nil
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Installed)

	out, err = run(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Clients:  3")

	_, err = run(t, "install", "nothing-like-this", "--api-url", srv.URL)
	assert.ErrorContains(t, err, "no client matching")

	out, err = run(t, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared "+root)
	assert.NoDirExists(t, filepath.Join(root, "Alpha"))
	assert.FileExists(t, filepath.Join(root, "cache.json"))
}

func TestListMarksClientWithPackageDir(t *testing.T) {
	srv := newBackend(t)
	root := t.TempDir()
	t.Setenv("COLLAPSE_ROOT", root)
	t.Setenv("COLLAPSE_CDN_SERVERS", srv.URL)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Zulu"), 0o755))

	out, err := run(t, "list", "--installed", "--json", "--log-json", "--api-url", srv.URL)
	require.NoError(t, err)
	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1, "an existing package directory marks the client installed")
	assert.Equal(t, "Zulu", entries[0].Name)
}

func TestConfigSetGetList(t *testing.T) {
	t.Setenv("COLLAPSE_ROOT", t.TempDir())
	settings := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := run(t, "config", "set", "timeout", "9", "--settings", settings)
	require.NoError(t, err)
	assert.Equal(t, "Set timeout = 9\n", out)
	assert.FileExists(t, settings)

	out, err = run(t, "config", "get", "timeout", "--settings", settings)
	require.NoError(t, err)
	assert.Equal(t, "9\n", out)

	out, err = run(t, "config", "list", "--settings", settings)
	require.NoError(t, err)
	assert.Contains(t, out, "timeout = 9\n")
	assert.Contains(t, out, "sort_clients = false\n")
	assert.Contains(t, out, "log_level = info\n")
}

func TestConfigHelpListsTypesAndDefaults(t *testing.T) {
	for _, line := range []string{
		"sort_clients         bool",
		"timeout              int       network timeout in seconds (default 5)",
		"cdn_servers          []string",
		`log_level            string    debug, info, warn or error (default "info")`,
	} {
		assert.Contains(t, configCmd.Long, line)
	}
}

func TestBuildEntries(t *testing.T) {
	clients := []manifest.Descriptor{
		{ID: 1, Name: "A", DownloadPath: "A.jar", Enabled: true},
		{ID: 2, Name: "B", DownloadPath: "B.zip", Enabled: false},
		{ID: 10001, Name: "C", DownloadPath: "/tmp/C.jar", Enabled: true, IsCustom: true},
	}
	installed := func(d manifest.Descriptor) bool { return d.ID == 1 }

	all := buildEntries(clients, installed, false)
	require.Len(t, all, 3)
	assert.Equal(t, "installed", status(all[0]))
	assert.Equal(t, "unavailable", status(all[1]))
	assert.Equal(t, "- (custom)", status(all[2]))
	assert.Equal(t, "C.jar", all[2].Filename)

	only := buildEntries(clients, installed, true)
	require.Len(t, only, 1)
	assert.Equal(t, "A", only[0].Name)
}

func TestPrintListTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printListTable(&buf, []listEntry{{ID: 7, Name: "Seven", Variant: "standard"}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Seven")
	assert.Contains(t, lines[1], "-", "missing version renders as a dash")
}
