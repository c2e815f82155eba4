package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/collapseloader/collapse/internal/network"
	"github.com/collapseloader/collapse/internal/userdata"
	"go.uber.org/zap"
)

var errNoServer = errors.New("no CDN server available")

// stream is an open source positioned at offset. A nil stream means the
// destination already holds the complete artifact.
type stream struct {
	body   io.ReadCloser
	offset int64
	total  int64
}

func (e *Engine) download(ctx context.Context, job Job) State {
	filename := job.Filename()
	fail := func(err error) State {
		e.report(&TransportError{Filename: filename, Err: err})
		return DownloadFailed
	}

	if err := ensureParent(job.DestinationPath); err != nil {
		return fail(err)
	}

	offset := sizeOf(job.DestinationPath)
	s, err := e.open(ctx, job, offset)
	if err != nil {
		return fail(err)
	}
	if s == nil {
		e.logger.Debug("download already complete",
			zap.String("filename", filename),
			zap.Int64("size", offset))
		return Downloaded
	}
	defer s.body.Close()

	if s.offset > 0 {
		e.logger.Info("resuming download",
			zap.String("filename", filename),
			zap.Int64("offset", s.offset))
	}

	if err := e.copyStream(ctx, job, s); err != nil {
		return fail(err)
	}
	return Downloaded
}

// open positions the source at offset. A server or file that cannot resume
// yields a stream starting at zero.
func (e *Engine) open(ctx context.Context, job Job, offset int64) (*stream, error) {
	src := job.SourcePath
	if !manifest.IsURL(src) && filepath.IsAbs(src) {
		return openLocal(src, offset)
	}

	url, err := e.resolve(src)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if offset > 0 {
		header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := e.transport.Get(ctx, url, header)
	if err != nil {
		var se *network.StatusError
		if offset > 0 && errors.As(err, &se) && se.StatusCode == http.StatusRequestedRangeNotSatisfiable {
			return nil, nil
		}
		return nil, err
	}

	if resp.StatusCode == http.StatusPartialContent && offset > 0 {
		return &stream{body: resp.Body, offset: offset, total: partialTotal(resp, offset)}, nil
	}
	if offset > 0 {
		e.logger.Warn("server ignored range request, restarting download",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
	}
	return &stream{body: resp.Body, total: resp.ContentLength}, nil
}

func (e *Engine) resolve(src string) (string, error) {
	if manifest.IsURL(src) {
		return src, nil
	}
	if e.baseURL == "" {
		return "", errNoServer
	}
	return strings.TrimSuffix(e.baseURL, "/") + "/" + strings.TrimPrefix(filepath.ToSlash(src), "/"), nil
}

func openLocal(path string, offset int64) (*stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	switch {
	case offset == size && size > 0:
		f.Close()
		return nil, nil
	case offset > size:
		offset = 0
	}
	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &stream{body: f, offset: offset, total: size}, nil
}

// copyStream appends the stream to the destination, or truncates it when
// the stream starts at zero.
func (e *Engine) copyStream(ctx context.Context, job Job, s *stream) error {
	flag := os.O_CREATE | os.O_WRONLY
	if s.offset > 0 {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}
	f, err := os.OpenFile(job.DestinationPath, flag, userdata.FilePermNormal)
	if err != nil {
		return err
	}
	defer f.Close()

	filename := job.Filename()
	done := s.offset
	e.notify(filename, done, s.total)

	buf := make([]byte, e.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := s.body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return err
			}
			done += int64(n)
			e.notify(filename, done, s.total)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	if s.total >= 0 && done < s.total {
		return fmt.Errorf("received %d of %d bytes: %w", done, s.total, io.ErrUnexpectedEOF)
	}
	return f.Sync()
}

func (e *Engine) notify(filename string, done, total int64) {
	if e.progress != nil {
		e.progress(filename, done, total)
	}
}

// partialTotal derives the full artifact size from a 206 response.
func partialTotal(resp *http.Response, offset int64) int64 {
	// Content-Range: bytes 100-999/1000
	if cr := resp.Header.Get("Content-Range"); cr != "" {
		if i := strings.LastIndexByte(cr, '/'); i >= 0 {
			if n, err := strconv.ParseInt(cr[i+1:], 10, 64); err == nil {
				return n
			}
		}
	}
	if resp.ContentLength >= 0 {
		return offset + resp.ContentLength
	}
	return -1
}

func sizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0
	}
	return info.Size()
}
