// Package manifest defines the client Descriptor, its wire form served by the
// manifest API, and the schema-validated parser that maps one onto the other.
package manifest
