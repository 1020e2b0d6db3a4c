// Package manifest parses package manifests as structured data in order to
// verify the name field, remove the bootstrap script entry, and re-serialize
// with stable two-space formatting. Substitution elsewhere treats the manifest
// as opaque text; only this package interprets it.
package manifest
