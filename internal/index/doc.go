// Package index persists docset search entries in the SQLite database Dash
// reads (Contents/Resources/docSet.dsidx).
//
// A Store owns the database connection. Conversions write through a Writer,
// which wraps a single transaction: rows are inserted with INSERT OR IGNORE
// so duplicate (name, type, path) triples collapse onto the unique anchor
// index, and nothing becomes visible until Commit.
package index
