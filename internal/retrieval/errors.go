package retrieval

import "fmt"

// TransportError reports a failed download. The partial file is kept so the
// next attempt can resume it.
type TransportError struct {
	Filename string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("downloading %s: %v", e.Filename, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExtractionError reports a failed install step after a complete download.
// The downloaded artifact has been removed.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// PermissionError reports a path the clear sweep was not allowed to remove.
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Path)
}

func (e *PermissionError) Unwrap() error { return e.Err }
