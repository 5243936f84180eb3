package intersphinx

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"

	"doc2dash/internal/entry"
	"doc2dash/internal/inventory"
	"doc2dash/internal/logging"
)

// Name identifies the parser on the command line and in logs.
const Name = "intersphinx"

// Parser produces entries from the objects.inv at the root of a Sphinx
// documentation tree.
type Parser struct {
	source  string
	convert TypeConverter
	create  EntryCreator
	files   *inventory.FileCache
	logger  *slog.Logger
}

// Option customizes a Parser.
type Option func(*Parser)

// WithTypeConverter replaces ConvertType.
func WithTypeConverter(fn TypeConverter) Option {
	return func(p *Parser) {
		if fn != nil {
			p.convert = fn
		}
	}
}

// WithEntryCreator replaces CreateEntry.
func WithEntryCreator(fn EntryCreator) Option {
	return func(p *Parser) {
		if fn != nil {
			p.create = fn
		}
	}
}

// WithFileCache shares an existence cache with the inventory decoder.
func WithFileCache(cache *inventory.FileCache) Option {
	return func(p *Parser) { p.files = cache }
}

// WithLogger sets the parser logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// New returns a Parser for the documentation rooted at source.
func New(source string, opts ...Option) *Parser {
	p := &Parser{
		source:  source,
		convert: ConvertType,
		create:  CreateEntry,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.files == nil {
		p.files = inventory.NewFileCache(source)
	}
	p.logger = logging.NewComponentLogger(p.logger, Name)
	return p
}

// Name returns the parser name.
func (p *Parser) Name() string { return Name }

// Source returns the documentation root.
func (p *Parser) Source() string { return p.source }

// Parse decodes the inventory and returns its entries. Decoding happens
// before Parse returns; the sequence itself can be ranged over once, later
// iterations yield nothing.
func (p *Parser) Parse() (iter.Seq[entry.Entry], error) {
	f, err := os.Open(filepath.Join(p.source, inventory.FileName))
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer f.Close()

	dec := inventory.NewDecoder(inventory.WithFileCache(p.files), inventory.WithLogger(p.logger))
	inv, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", inventory.FileName, err)
	}
	return p.Entries(inv), nil
}

// Entries converts an already decoded inventory. Roles without a type are
// skipped whole; items are emitted in inventory order.
func (p *Parser) Entries(inv *inventory.Inventory) iter.Seq[entry.Entry] {
	consumed := false
	return func(yield func(entry.Entry) bool) {
		if consumed {
			return
		}
		consumed = true
		for _, role := range inv.Roles() {
			t, ok := p.convert(role.Name)
			if !ok {
				p.logger.Debug("unknown inventory role; skipping",
					logging.String("role", role.Name),
					logging.Int("entries", role.Len()),
				)
				continue
			}
			for key, item := range role.All() {
				e, ok := p.create(t, key, item)
				if !ok {
					continue
				}
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Locate finds where the TOC marker for an entry belongs in doc.
func (p *Parser) Locate(doc *goquery.Document, name string, t entry.Type, anchor string) *goquery.Selection {
	return Locate(doc, name, t, anchor)
}

// detectLimit bounds how much of an inventory Detect reads looking for the
// two header lines.
const detectLimit = 4 << 10

// Detect reports whether root holds an intersphinx inventory and returns the
// project name from its header. It never fails: a missing, unreadable or
// corrupt inventory means "not ours".
func Detect(root string, logger *slog.Logger) (string, bool) {
	logger = logging.NewComponentLogger(logger, Name)

	path := filepath.Join(root, inventory.FileName)
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	r := bufio.NewReader(io.LimitReader(f, detectLimit))
	line, err := r.ReadString('\n')
	if err != nil || line != inventory.MagicLine {
		logger.Warn("inventory exists but is corrupt", logging.String("path", path))
		return "", false
	}
	line, err = r.ReadString('\n')
	if err != nil {
		logger.Warn("inventory exists but is corrupt", logging.String("path", path))
		return "", false
	}
	project, ok := projectName(line)
	if !ok {
		logger.Warn("inventory exists but is corrupt", logging.String("path", path))
		return "", false
	}
	return project, true
}
