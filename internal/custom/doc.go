// Package custom manages clients the user registers from local files. They
// are stored in custom_clients.yaml and always listed in the catalog, after
// the remote clients.
package custom
