// Package intersphinx turns Sphinx documentation (anything that ships an
// intersphinx objects.inv) into docset entries.
//
// The Parser maps inventory roles onto entry types through a TypeConverter
// and builds entries through an EntryCreator. Both default to the
// table-driven ConvertType and CreateEntry and can be replaced with
// WithTypeConverter and WithEntryCreator to hide or redirect roles.
// Locate implements the anchor conventions Sphinx, mkdocstrings and pydoctor
// themes use, so the patcher can find where a TOC marker belongs.
package intersphinx
