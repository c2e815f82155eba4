package retrieval

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/collapseloader/collapse/internal/platform"
	"go.uber.org/zap"
)

// ClearInstallRoot removes every entry of the install root except the
// ignored paths. The sweep continues past failures; each one is reported and
// all of them are joined into the returned error.
func (e *Engine) ClearInstallRoot(ignored ...string) error {
	entries, err := os.ReadDir(e.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	keep := make([]string, 0, len(ignored))
	for _, p := range ignored {
		keep = append(keep, filepath.Clean(p))
	}

	var errs []error
	removed := 0
	for _, entry := range entries {
		path := filepath.Join(e.root, entry.Name())
		if slices.Contains(keep, path) {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			if platform.IsPermission(err) {
				err = &PermissionError{Path: path, Err: err}
			}
			e.report(err)
			errs = append(errs, err)
			continue
		}
		removed++
	}

	e.logger.Info("cleared install root",
		zap.String("root", e.root),
		zap.Int("removed", removed),
		zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}
