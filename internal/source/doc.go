// Package source is the remote manifest capability: it reaches the web API,
// fetches the standard and fabric client lists, and maps them to validated
// descriptors.
package source
