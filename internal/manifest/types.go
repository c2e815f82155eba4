package manifest

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Format describes how a downloaded artifact is installed.
type Format string

const (
	// FormatArchive artifacts are zip files extracted into a directory.
	FormatArchive Format = "archive"
	// FormatSingleFile artifacts are packaged files (jars) moved into place.
	FormatSingleFile Format = "single-file"
)

// Variant identifies which loader a client runs under.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantFabric   Variant = "fabric"
)

// Artifact suffixes recognized by the installer.
const (
	ArchiveSuffix  = ".zip"
	PackagedSuffix = ".jar"
)

// Descriptor is one installable client package. Values are immutable once
// constructed; copy and modify instead of mutating shared instances.
type Descriptor struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	DownloadPath string  `json:"download_path"`
	EntryPoint   string  `json:"entry_point,omitempty"`
	Version      string  `json:"version"`
	Format       Format  `json:"format"`
	Variant      Variant `json:"variant"`
	Visible      bool    `json:"visible"`
	Enabled      bool    `json:"enabled"`
	Internal     bool    `json:"internal,omitempty"`
	IsCustom     bool    `json:"is_custom,omitempty"`
}

// Filename returns the base name of the download path.
func (d Descriptor) Filename() string {
	if d.IsURL() {
		return path.Base(d.DownloadPath)
	}
	return filepath.Base(d.DownloadPath)
}

// Stem returns the filename without its extension. Installed packages live in
// a directory with this name.
func (d Descriptor) Stem() string {
	return StripExt(d.Filename())
}

// IsURL reports whether the download path is an absolute http(s) URL.
func (d Descriptor) IsURL() bool {
	return IsURL(d.DownloadPath)
}

// IsFabric reports whether the client runs under the alternate loader.
func (d Descriptor) IsFabric() bool {
	return d.Variant == VariantFabric
}

// AssetIndex returns the game asset index for the client: major.minor of the
// version for standard clients, the full version for fabric clients or
// versions that don't parse.
func (d Descriptor) AssetIndex() string {
	if d.IsFabric() {
		return d.Version
	}
	v, err := semver.NewVersion(d.Version)
	if err != nil {
		return d.Version
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// StripExt removes the final extension from a filename.
func StripExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// IsURL reports whether p is an absolute http(s) URL.
func IsURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// FormatFor derives the install format from a filename suffix.
func FormatFor(filename string) Format {
	if strings.HasSuffix(strings.ToLower(filename), ArchiveSuffix) {
		return FormatArchive
	}
	return FormatSingleFile
}

// RawDescriptor is the wire form of a manifest entry as served by the API.
type RawDescriptor struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Filename     string  `json:"filename"`
	MainClass    string  `json:"main_class"`
	Version      string  `json:"version"`
	Internal     bool    `json:"internal"`
	Working      *bool   `json:"working"`
	Fabric       bool    `json:"fabric"`
	ShowInLoader *bool   `json:"show_in_loader"`
	Format       *Format `json:"format"`
}

// Descriptor maps the wire fields onto a Descriptor. Missing visibility and
// working flags default to true. Fabric clients carry no entry point.
func (r RawDescriptor) Descriptor() Descriptor {
	d := Descriptor{
		ID:           r.ID,
		Name:         r.Name,
		DownloadPath: r.Filename,
		EntryPoint:   r.MainClass,
		Version:      r.Version,
		Format:       FormatFor(r.Filename),
		Variant:      VariantStandard,
		Visible:      r.ShowInLoader == nil || *r.ShowInLoader,
		Enabled:      r.Working == nil || *r.Working,
		Internal:     r.Internal,
	}
	if r.Format != nil {
		d.Format = *r.Format
	}
	if r.Fabric {
		d.Variant = VariantFabric
		d.EntryPoint = ""
	}
	return d
}
