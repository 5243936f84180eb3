// Package patcher inserts Dash TOC markers into the HTML of a docset.
//
// Patching happens in two phases. Collect groups entries by the page their
// path points into; Finish then opens every page once, inserts a
//
//	<a name="//apple_ref/cpp/<Type>/<name>" class="dashAnchor"></a>
//
// marker before the element a Locator picks for each entry, and rewrites the
// page if at least one marker went in. No page is touched before Finish, so
// every entry for a page is known by the time it is opened.
package patcher
