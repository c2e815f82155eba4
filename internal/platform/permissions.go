package platform

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
)

// ownerRW keeps extracted files readable and writable by the installing user
// even when the archive recorded stricter bits.
const ownerRW fs.FileMode = 0600

// Chmod sets file permissions. On Windows this is a no-op.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// ApplyMode applies the permission bits recorded for an extracted entry.
// Entries without recorded bits keep the mode they were created with.
func ApplyMode(path string, mode fs.FileMode) error {
	perm := mode.Perm()
	if perm == 0 {
		return nil
	}
	return Chmod(path, perm|ownerRW)
}

// IsPermission reports whether err was caused by missing access rights.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
