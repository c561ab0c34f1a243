// Package textutil holds small string helpers shared by the CLI and the
// analysis layer: content id tokens and export file names.
package textutil
