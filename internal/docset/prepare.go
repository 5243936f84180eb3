package docset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	cp "github.com/otiai10/copy"

	"doc2dash/internal/fileutil"
	"doc2dash/internal/index"
)

// PNGSignature starts every PNG file.
var PNGSignature = []byte("\x89PNG\r\n\x1a\n")

var (
	// ErrInvalidIcon is returned for icons that are not PNG images.
	ErrInvalidIcon = errors.New("not a valid PNG image")
	// ErrIndexPageMissing is returned when the index page is not part of the
	// documentation tree.
	ErrIndexPageMissing = errors.New("index page does not exist")
)

// Options describes the bundle to prepare.
type Options struct {
	Manifest Manifest
	Icon     string
	Icon2x   string
}

// Docset is a prepared bundle.
type Docset struct {
	Path      string
	Plist     string
	Index     string
	Documents string
}

// Layout returns the paths of a bundle rooted at path.
func Layout(path string) Docset {
	contents := filepath.Join(path, "Contents")
	resources := filepath.Join(contents, "Resources")
	return Docset{
		Path:      path,
		Plist:     filepath.Join(contents, "Info.plist"),
		Index:     filepath.Join(resources, index.FileName),
		Documents: filepath.Join(resources, "Documents"),
	}
}

// ValidateIcon checks that path is a PNG image.
func ValidateIcon(path string) error {
	ok, err := fileutil.HasPrefix(path, PNGSignature)
	if err != nil {
		return fmt.Errorf("read icon: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidIcon, filepath.Base(path))
	}
	return nil
}

// CheckIndexPage verifies that page, relative to source, exists.
func CheckIndexPage(source, page string) error {
	if page == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Join(source, filepath.FromSlash(page))); err != nil {
		return fmt.Errorf("%w: %q within %q", ErrIndexPageMissing, page, source)
	}
	return nil
}

// Prepare builds the bundle at dest from the documentation in source: it
// writes Info.plist, creates the empty index, copies the tree and the icons.
// dest must not exist yet.
func Prepare(ctx context.Context, source, dest string, opts Options) (*index.Store, Docset, error) {
	ds := Layout(dest)

	for _, icon := range []string{opts.Icon, opts.Icon2x} {
		if icon == "" {
			continue
		}
		if err := ValidateIcon(icon); err != nil {
			return nil, ds, err
		}
	}
	if err := CheckIndexPage(source, opts.Manifest.IndexPage); err != nil {
		return nil, ds, err
	}

	if err := os.MkdirAll(filepath.Dir(ds.Index), 0o755); err != nil {
		return nil, ds, fmt.Errorf("create docset directories: %w", err)
	}
	if err := WritePlist(ds.Plist, opts.Manifest.Dict()); err != nil {
		return nil, ds, err
	}

	store, err := index.Open(ctx, ds.Index)
	if err != nil {
		return nil, ds, err
	}

	if err := cp.Copy(source, ds.Documents, cp.Options{
		OnSymlink:     func(string) cp.SymlinkAction { return cp.Deep },
		PreserveTimes: true,
	}); err != nil {
		_ = store.Close()
		return nil, ds, fmt.Errorf("copy documentation: %w", err)
	}

	icons := []struct{ src, name string }{
		{opts.Icon, "icon.png"},
		{opts.Icon2x, "icon@2x.png"},
	}
	for _, icon := range icons {
		if icon.src == "" {
			continue
		}
		if err := fileutil.CopyFile(icon.src, filepath.Join(dest, icon.name)); err != nil {
			_ = store.Close()
			return nil, ds, fmt.Errorf("copy %s: %w", icon.name, err)
		}
	}

	return store, ds, nil
}

// ErrUnsupportedPlatform is returned by AddToDash outside macOS.
var ErrUnsupportedPlatform = errors.New("adding docsets to Dash only works on macOS")

// AddToDash asks Dash to load the bundle at path.
func AddToDash(ctx context.Context, path string) error {
	if runtime.GOOS != "darwin" {
		return ErrUnsupportedPlatform
	}
	out, err := exec.CommandContext(ctx, "open", "-a", "dash", path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("open -a dash: %w: %s", err, out)
	}
	return nil
}
