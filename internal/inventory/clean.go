package inventory

import "strings"

// Placeholder in an inventory uri that stands for the entry name.
const Placeholder = "$"

// CleanURI normalizes an inventory uri. Only the last fragment survives when
// a generator encoded intermediate anchors ("docs.html#foo#api" becomes
// "docs.html#api"), and directory paths gain "index.html".
func CleanURI(uri string) string {
	path, fragment, hasFragment := splitURI(uri)
	if strings.HasSuffix(path, "/") {
		path += "index.html"
	}
	if !hasFragment {
		return path
	}
	return path + "#" + fragment
}

func splitURI(uri string) (path, fragment string, hasFragment bool) {
	parts := strings.Split(uri, "#")
	if len(parts) == 1 {
		return parts[0], "", false
	}
	return parts[0], parts[len(parts)-1], true
}

func expand(uri, name string) string {
	return strings.ReplaceAll(uri, Placeholder, name)
}
