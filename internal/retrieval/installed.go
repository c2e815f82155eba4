package retrieval

import (
	"os"
	"path/filepath"

	"github.com/collapseloader/collapse/internal/manifest"
)

// IsInstalled reports whether d's installed artifacts are present.
func (e *Engine) IsInstalled(d manifest.Descriptor) bool {
	return e.installed(e.JobFor(d))
}

// installed applies the install check without touching the network. The
// format decides first, matching extract:
//   - archives from non-URL sources are installed when their directory exists;
//     archives from URLs never are;
//   - packaged files (.jar) are installed when <target>/<stem>.jar exists;
//   - anything else is never considered installed.
func (e *Engine) installed(job Job) bool {
	if job.Format == manifest.FormatArchive {
		return !manifest.IsURL(job.SourcePath) && dirExists(job.ExtractTargetDir)
	}
	if job.packaged() {
		jar := manifest.StripExt(job.Filename()) + manifest.PackagedSuffix
		return fileExists(filepath.Join(job.ExtractTargetDir, jar))
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Installed reports whether a package directory exists for filename. It is
// the cheap check used for listing markers.
func (e *Engine) Installed(filename string) bool {
	return dirExists(filepath.Join(e.root, manifest.StripExt(filename)))
}
