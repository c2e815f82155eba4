package retrieval

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/collapseloader/collapse/internal/platform"
	"github.com/collapseloader/collapse/internal/userdata"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

func (e *Engine) extract(job Job) State {
	filename := job.Filename()

	switch {
	case job.Format == manifest.FormatArchive:
		e.logger.Debug("extracting",
			zap.String("filename", filename),
			zap.String("target", job.ExtractTargetDir))
		created := !dirExists(job.ExtractTargetDir)
		if err := unzip(job.DestinationPath, job.ExtractTargetDir); err != nil {
			if created {
				os.RemoveAll(job.ExtractTargetDir)
			}
			return e.extractFailed(job, err)
		}
		if err := os.Remove(job.DestinationPath); err != nil && !os.IsNotExist(err) {
			e.logger.Warn("could not remove archive", zap.String("path", job.DestinationPath), zap.Error(err))
		}

	case job.packaged() && !job.Raw:
		jar := filepath.Join(job.ExtractTargetDir, manifest.StripExt(filename)+manifest.PackagedSuffix)
		if err := os.MkdirAll(job.ExtractTargetDir, userdata.DirPermNormal); err != nil {
			return e.extractFailed(job, err)
		}
		if err := os.Rename(job.DestinationPath, jar); err != nil {
			return e.extractFailed(job, err)
		}
	}

	e.logger.Info("installed", zap.String("filename", filename))
	return Installed
}

// extractFailed removes the downloaded artifact so the next attempt starts
// from a clean download.
func (e *Engine) extractFailed(job Job, err error) State {
	os.Remove(job.DestinationPath)
	e.report(&ExtractionError{Filename: job.Filename(), Err: err})
	return ExtractFailed
}

func unzip(archive, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(dest, userdata.DirPermNormal); err != nil {
		return err
	}
	for _, f := range r.File {
		if err := unzipEntry(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func unzipEntry(f *zip.File, dest string) error {
	target, err := entryPath(dest, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, userdata.DirPermNormal)
	}
	if err := os.MkdirAll(filepath.Dir(target), userdata.DirPermNormal); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, userdata.FilePermNormal)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return platform.ApplyMode(target, f.Mode())
}

// entryPath joins name onto dest, rejecting entries that escape it.
func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("illegal entry path %q", name)
	}
	return target, nil
}
