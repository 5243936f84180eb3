package inventory

import (
	"net/url"
	"os"
	"path/filepath"
)

// FileCache memoizes whether paths relative to a documentation root name
// regular files. Construct one per conversion run and share it across the
// decoder so missing targets are reported once.
type FileCache struct {
	root  string
	known map[string]bool
}

// NewFileCache returns an empty cache rooted at root.
func NewFileCache(root string) *FileCache {
	return &FileCache{root: root, known: make(map[string]bool)}
}

// Root returns the directory the cache resolves paths against.
func (c *FileCache) Root() string { return c.root }

// Exists reports whether path names a regular file under the root. cached is
// true when the answer came from an earlier lookup.
func (c *FileCache) Exists(path string) (exists, cached bool) {
	if v, ok := c.known[path]; ok {
		return v, true
	}
	exists = c.stat(path)
	c.known[path] = exists
	return exists, false
}

// Len reports how many distinct paths have been checked.
func (c *FileCache) Len() int { return len(c.known) }

func (c *FileCache) stat(path string) bool {
	if path == "" {
		return false
	}
	for _, candidate := range candidates(path) {
		info, err := os.Stat(filepath.Join(c.root, filepath.FromSlash(candidate)))
		if err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}

// candidates lists the on-disk spellings of an inventory path: the decoded
// form first, then the raw form for trees whose file names contain '%'.
func candidates(path string) []string {
	decoded, err := url.PathUnescape(path)
	if err != nil || decoded == path {
		return []string{path}
	}
	return []string{decoded, path}
}
