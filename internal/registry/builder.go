package registry

import (
	"slices"
	"strings"

	"github.com/collapseloader/collapse/internal/manifest"
	"golang.org/x/text/cases"
)

// Policy controls which remote descriptors are listed and how the result is
// ordered.
type Policy struct {
	// ShowHidden lists remote descriptors regardless of their Visible flag.
	ShowHidden bool
	// SortEnabled mirrors the "sort_clients" setting. When it is false the
	// registry is sorted by case-folded name; when true, source order
	// (remote, then custom) is kept.
	SortEnabled bool
}

// Build merges remote and custom descriptors into a Registry.
//
// Remote descriptors are filtered by visibility unless ShowHidden is set.
// Custom descriptors are always appended and stamped IsCustom. The sort
// policy is applied after each batch, so with sorting active the custom
// batch is merged into the remote one by name. Descriptors are not
// deduplicated by ID.
func Build(remote, custom []manifest.Descriptor, p Policy) Registry {
	clients := make([]manifest.Descriptor, 0, len(remote)+len(custom))

	for _, d := range remote {
		if d.Visible || p.ShowHidden {
			clients = append(clients, d)
		}
	}
	applySort(clients, p)

	if len(custom) > 0 {
		for _, d := range custom {
			d.IsCustom = true
			clients = append(clients, d)
		}
		applySort(clients, p)
	}

	return Registry{clients: clients}
}

func applySort(clients []manifest.Descriptor, p Policy) {
	if p.SortEnabled {
		return
	}
	fold := cases.Fold()
	slices.SortStableFunc(clients, func(a, b manifest.Descriptor) int {
		return strings.Compare(fold.String(a.Name), fold.String(b.Name))
	})
}
