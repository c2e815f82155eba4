// Package userdata resolves the install root (~/.collapse by default) and the
// well-known files stored inside it: the settings file, the manifest cache,
// and the custom clients list.
package userdata
