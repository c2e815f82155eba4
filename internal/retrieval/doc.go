// Package retrieval installs client packages and shared assets into the
// install root.
//
// A retrieval runs as one synchronous job: the installed check, a resumable
// download into <root>/<filename>, then extraction into <root>/<stem>.
// Downloads resume from the size of an existing partial file using an HTTP
// Range request. Zip archives are extracted and deleted; packaged jars are
// moved into their package directory unless the job is raw.
//
// Failures never escape as Go errors. They are logged, passed to the
// optional ErrorFunc, and reflected in the returned State.
package retrieval
