package intersphinx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"doc2dash/internal/entry"
)

const modulePrefix = "module-"

// Locate returns the element a TOC marker for (name, t, anchor) should be
// inserted before, or nil. Type specific rules come first: glossary terms
// live on <dt>, labels on any element with the id, and module anchors use the
// page's first <h1>. Everything else falls through the permalink
// conventions of the themes seen in the wild.
func Locate(doc *goquery.Document, name string, t entry.Type, anchor string) *goquery.Selection {
	var pos *goquery.Selection
	switch {
	case t == entry.Word:
		pos = attrEquals(doc.Find("dt"), "id", anchor)
	case t == entry.Section:
		pos = attrEquals(doc.Find("[id]"), "id", anchor)
	case strings.HasPrefix(anchor, modulePrefix):
		pos = doc.Find("h1").First()
	}
	if found(pos) {
		return pos
	}

	href := "#" + anchor
	for _, try := range []func() *goquery.Selection{
		func() *goquery.Selection { return attrEquals(doc.Find("a.headerlink"), "href", href) },
		func() *goquery.Selection { return attrEquals(doc.Find("a.reference.internal"), "href", href) },
		func() *goquery.Selection { return attrEquals(doc.Find("span[id]"), "id", anchor) },
		// mkdocs-material
		func() *goquery.Selection { return attrEquals(doc.Find("a.md-nav__link"), "href", href) },
		// pydoctor
		func() *goquery.Selection { return attrEquals(doc.Find("a[name]"), "name", name) },
		func() *goquery.Selection { return attrEquals(doc.Find("[id]"), "id", anchor) },
	} {
		if pos = try(); found(pos) {
			return pos
		}
	}
	return nil
}

// attrEquals narrows sel to its first element whose key attribute is exactly
// value. Matching happens on the parsed attribute so anchors full of CSS
// metacharacters need no escaping.
func attrEquals(sel *goquery.Selection, key, value string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(key)
		return ok && v == value
	}).First()
}

func found(sel *goquery.Selection) bool {
	return sel != nil && sel.Length() > 0
}
