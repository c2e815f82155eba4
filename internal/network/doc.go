// Package network provides the HTTP plumbing shared by the manifest source
// and the retrieval engine: a retrying streaming Transport that reports
// non-2xx responses as *StatusError, and a Servers prober that selects the
// first reachable CDN and API host.
package network
