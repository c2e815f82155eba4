// Package registry builds the ordered client list shown to users. Build is a
// pure function: it filters remote descriptors by visibility, appends custom
// clients, and applies the sort policy after each batch.
package registry
