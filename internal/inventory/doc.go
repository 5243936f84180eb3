// Package inventory decodes Sphinx "objects.inv" files (inventory version 2).
//
// The format is four plain-text header lines followed by a zlib-compressed
// body of "name role priority uri display-name" lines. Decode validates the
// header strictly, skips malformed body lines with a warning, substitutes the
// "$" name placeholder, normalizes every uri, and drops entries whose target
// file is absent from the documentation root. Existence checks go through a
// FileCache so each distinct path is stat'ed, and warned about, once per run.
package inventory
