// Package docset lays out Dash docset bundles.
//
// A bundle named Foo lives at <dest>/Foo.docset and contains
//
//	Contents/Info.plist
//	Contents/Resources/docSet.dsidx
//	Contents/Resources/Documents/   (copy of the HTML tree)
//	icon.png, icon@2x.png           (optional)
//
// Prepare creates all of it except the index rows; conversions fill the
// index and patch the copied documents afterwards.
package docset
