package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDoc writes content to rel under root, creating parent directories,
// and returns the absolute path.
func WriteDoc(t testing.TB, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadDoc returns the content of rel under root.
func ReadDoc(t testing.TB, root, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Page wraps body in a minimal HTML document.
func Page(body string) string {
	return "<!DOCTYPE html>\n<html><head><title>t</title></head><body>" + body + "</body></html>\n"
}
