package inventory

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"

	"doc2dash/internal/logging"
)

// lineRE matches "name domain:role priority uri display-name". The name is
// greedy because it may contain spaces; the role must be domain qualified so
// numbers inside a display name cannot be mistaken for the priority.
var lineRE = regexp.MustCompile(`^(.+)\s+(\S+:\S+)\s+(-?\d+)\s+(\S*)\s+(.*)$`)

// Decoder turns an inventory stream into an Inventory.
type Decoder struct {
	files  *FileCache
	logger *slog.Logger
}

// Option customizes a Decoder.
type Option func(*Decoder)

// WithFileCache drops entries whose target file is not found through cache.
// Without it every decoded entry is kept.
func WithFileCache(cache *FileCache) Option {
	return func(d *Decoder) { d.files = cache }
}

// WithLogger routes decoder warnings to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) { d.logger = logger }
}

// NewDecoder builds a Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.NewComponentLogger(d.logger, "inventory")
	return d
}

// Load decodes the objects.inv file at the root of docs, filtering entries
// against the files under docs.
func Load(docs string, logger *slog.Logger) (*Inventory, error) {
	f, err := os.Open(filepath.Join(docs, FileName))
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer f.Close()

	dec := NewDecoder(WithFileCache(NewFileCache(docs)), WithLogger(logger))
	return dec.Decode(f)
}

// Decode reads a complete inventory from r.
func (d *Decoder) Decode(r io.Reader) (*Inventory, error) {
	br := bufio.NewReader(r)
	header, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	body, err := decompress(br)
	if err != nil {
		return nil, err
	}

	inv := newInventory(header)
	for lineNo, line := range splitLines(body) {
		name, role, uri, display, ok := parseLine(line)
		if !ok {
			d.logger.Warn("skipping malformed inventory line",
				logging.Int("line", lineNo+1),
				logging.String("content", line),
			)
			continue
		}

		uri = CleanURI(expand(uri, name))
		item := Item{URI: uri, DisplayName: display}
		if !d.present(item.Path()) {
			continue
		}
		inv.add(role, name, item)
	}

	d.logger.Debug("inventory decoded",
		logging.String("project", header.Project),
		logging.String("version", header.Version),
		logging.Int("roles", len(inv.roles)),
		logging.Int("entries", inv.Len()),
	)
	return inv, nil
}

func (d *Decoder) present(path string) bool {
	if d.files == nil {
		return true
	}
	exists, cached := d.files.Exists(path)
	if !exists && !cached {
		d.logger.Warn("inventory entry points to missing file; dropping it",
			logging.String("path", path),
		)
	}
	return exists
}

func decompress(r io.Reader) (string, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return "", fmt.Errorf("open compressed inventory body: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("decompress inventory body: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("decode inventory body: not valid UTF-8")
	}
	return string(data), nil
}

func splitLines(body string) []string {
	body = strings.TrimSuffix(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

func parseLine(line string) (name, role, uri, display string, ok bool) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", "", false
	}
	return m[1], m[2], m[4], m[5], true
}
