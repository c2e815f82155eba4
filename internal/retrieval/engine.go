package retrieval

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/collapseloader/collapse/internal/network"
	"github.com/collapseloader/collapse/internal/userdata"
	"go.uber.org/zap"
)

const defaultChunkSize = 32 * 1024

// ProgressFunc observes download progress. done includes bytes resumed from
// a previous attempt; total is -1 when the server did not declare a length.
// It is called synchronously from the write loop and must not block.
type ProgressFunc func(filename string, done, total int64)

// ErrorFunc receives every TransportError, ExtractionError and
// PermissionError the engine reports.
type ErrorFunc func(err error)

// Engine installs packages into an install root, one job at a time.
// Concurrent calls for the same package are not supported.
type Engine struct {
	root      string
	baseURL   string
	transport network.Transport
	logger    *zap.Logger
	progress  ProgressFunc
	onError   ErrorFunc
	chunkSize int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithProgress sets the progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) { e.progress = fn }
}

// WithErrorHandler sets a hook receiving reported errors in addition to the log.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(e *Engine) { e.onError = fn }
}

// WithChunkSize sets the read buffer size used while streaming.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// New creates an engine for root. baseURL is the CDN prefix for relative
// source paths and may be empty when only URL or local sources are used.
func New(root, baseURL string, transport network.Transport, opts ...Option) *Engine {
	e := &Engine{
		root:      root,
		baseURL:   baseURL,
		transport: transport,
		logger:    zap.NewNop(),
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the install root.
func (e *Engine) Root() string { return e.root }

// Retrieve installs the package described by d. It returns without network
// access when d is already installed. Failures are reported through the
// logger and error handler, never returned; inspect the State or call
// IsInstalled afterwards.
func (e *Engine) Retrieve(ctx context.Context, d manifest.Descriptor) State {
	return e.Run(ctx, e.JobFor(d))
}

// Download fetches and installs an arbitrary artifact (shared libraries,
// assets, config files). An empty destination selects <root>/<filename>.
func (e *Engine) Download(ctx context.Context, sourcePath, destination string, raw bool) State {
	return e.Run(ctx, e.NewJob(sourcePath, destination, raw))
}

// Run executes one job: installed check, download, extraction.
func (e *Engine) Run(ctx context.Context, job Job) State {
	filename := job.Filename()
	if e.installed(job) {
		e.logger.Debug("already downloaded", zap.String("filename", filename))
		return AlreadyInstalled
	}

	e.logger.Debug("downloading",
		zap.String("filename", filename),
		zap.String("destination", job.DestinationPath))

	if state := e.download(ctx, job); state != Downloaded {
		return state
	}
	return e.extract(job)
}

// Remove deletes the installed directory of d.
func (e *Engine) Remove(d manifest.Descriptor) error {
	return os.RemoveAll(e.JobFor(d).ExtractTargetDir)
}

// Reset reinstalls d from scratch.
func (e *Engine) Reset(ctx context.Context, d manifest.Descriptor) State {
	if err := e.Remove(d); err != nil {
		e.report(&ExtractionError{Filename: d.Filename(), Err: err})
		return ExtractFailed
	}
	return e.Retrieve(ctx, d)
}

// PackageDir returns the directory d installs into.
func (e *Engine) PackageDir(d manifest.Descriptor) string {
	return e.JobFor(d).ExtractTargetDir
}

func (e *Engine) report(err error) {
	var (
		te *TransportError
		xe *ExtractionError
		pe *PermissionError
	)
	switch {
	case errors.As(err, &te):
		e.logger.Error("download failed", zap.String("filename", te.Filename), zap.Error(te.Err))
	case errors.As(err, &xe):
		e.logger.Error("extraction failed", zap.String("filename", xe.Filename), zap.Error(xe.Err))
	case errors.As(err, &pe):
		e.logger.Error("permission denied", zap.String("path", pe.Path))
	default:
		e.logger.Error("retrieval error", zap.Error(err))
	}
	if e.onError != nil {
		e.onError(err)
	}
}

func ensureParent(path string) error {
	return os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal)
}
