package retrieval

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/collapseloader/collapse/internal/manifest"
)

// Job is one download-and-install request. Jobs are built per call and
// never shared.
type Job struct {
	// SourcePath is a filename resolved against the CDN, an http(s) URL, or
	// an absolute local path.
	SourcePath string
	// DestinationPath is where the artifact is downloaded.
	DestinationPath string
	// ExtractTargetDir is the per-package directory under the install root.
	ExtractTargetDir string
	// Raw leaves packaged files at DestinationPath instead of moving them.
	Raw    bool
	Format manifest.Format
}

// Filename returns the artifact's base name.
func (j Job) Filename() string {
	if manifest.IsURL(j.SourcePath) {
		return path.Base(j.SourcePath)
	}
	return filepath.Base(j.SourcePath)
}

func (j Job) packaged() bool {
	return strings.HasSuffix(strings.ToLower(j.Filename()), manifest.PackagedSuffix)
}

// NewJob builds a job for sourcePath. An empty destination selects
// <root>/<filename>.
func (e *Engine) NewJob(sourcePath, destination string, raw bool) Job {
	j := Job{SourcePath: sourcePath, Raw: raw}
	filename := j.Filename()
	j.Format = manifest.FormatFor(filename)
	j.ExtractTargetDir = filepath.Join(e.root, manifest.StripExt(filename))
	j.DestinationPath = destination
	if j.DestinationPath == "" {
		j.DestinationPath = filepath.Join(e.root, filename)
	}
	return j
}

// JobFor builds the install job for a descriptor.
func (e *Engine) JobFor(d manifest.Descriptor) Job {
	j := e.NewJob(d.DownloadPath, "", false)
	if d.Format != "" {
		j.Format = d.Format
	}
	return j
}
