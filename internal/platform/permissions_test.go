package platform

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestApplyMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are ignored on windows")
	}

	tests := []struct {
		name string
		mode fs.FileMode
		want fs.FileMode
	}{
		{"executable", 0755, 0755},
		{"read only gains owner write", 0444, 0644},
		{"no recorded bits", 0, 0640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "entry")
			if err := os.WriteFile(path, nil, 0640); err != nil {
				t.Fatal(err)
			}
			if err := os.Chmod(path, 0640); err != nil {
				t.Fatal(err)
			}
			if err := ApplyMode(path, tt.mode); err != nil {
				t.Fatalf("ApplyMode: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if perm := info.Mode().Perm(); perm != tt.want {
				t.Errorf("permissions = %o, want %o", perm, tt.want)
			}
		})
	}
}

func TestIsPermission(t *testing.T) {
	wrapped := fmt.Errorf("removing: %w", &fs.PathError{Op: "remove", Path: "/x", Err: fs.ErrPermission})
	if !IsPermission(wrapped) {
		t.Error("IsPermission(wrapped ErrPermission) = false")
	}
	if IsPermission(fs.ErrNotExist) {
		t.Error("IsPermission(ErrNotExist) = true")
	}
}
