package registry

import (
	"strings"

	"github.com/collapseloader/collapse/internal/manifest"
	"golang.org/x/text/cases"
)

// Registry is an ordered, read-only list of client descriptors. The zero
// value is an empty registry.
type Registry struct {
	clients []manifest.Descriptor
}

// Len returns the number of clients.
func (r Registry) Len() int { return len(r.clients) }

// All returns a copy of the clients in registry order.
func (r Registry) All() []manifest.Descriptor {
	return append([]manifest.Descriptor(nil), r.clients...)
}

// Find returns the first client whose name contains name, ignoring case.
func (r Registry) Find(name string) (manifest.Descriptor, bool) {
	fold := cases.Fold()
	needle := fold.String(name)
	for _, d := range r.clients {
		if strings.Contains(fold.String(d.Name), needle) {
			return d, true
		}
	}
	return manifest.Descriptor{}, false
}

// Get returns the first client with the given ID.
func (r Registry) Get(id int) (manifest.Descriptor, bool) {
	for _, d := range r.clients {
		if d.ID == id {
			return d, true
		}
	}
	return manifest.Descriptor{}, false
}
