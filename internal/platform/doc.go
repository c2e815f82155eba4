// Package platform wraps filesystem calls whose behavior differs across
// operating systems. On Windows, Unix permission bits are ignored.
package platform
