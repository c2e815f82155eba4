// Package cache stores the last successfully fetched manifest so the catalog
// can be rebuilt while the manifest API is unreachable.
package cache
