// Package catalog owns the client registry. It loads manifests from the
// remote source, keeps the local snapshot current, falls back to that
// snapshot when the source is unreachable, and answers lookups.
package catalog
