// Package cli defines the Cobra command tree for the collapse CLI. Each file
// registers one top-level command with the root command. Commands delegate to
// the catalog, retrieval, cache, and custom packages and only handle flag
// parsing, output formatting, and progress display.
package cli
