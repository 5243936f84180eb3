package patcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"doc2dash/internal/entry"
	"doc2dash/internal/fileutil"
	"doc2dash/internal/logging"
)

// ModIndexFile is generated by Sphinx for Python projects only, yet
// non-Python projects still reference it from their inventories.
const ModIndexFile = "py-modindex.html"

var (
	// ErrMissingTarget is returned when a page entries point into does not
	// exist in the documentation tree.
	ErrMissingTarget = errors.New("patch target missing")
	// ErrFinished is returned by Collect and Finish once Finish has run.
	ErrFinished = errors.New("patcher already finished")
)

// Locator picks the element a marker is inserted before. It returns nil when
// the page has no recognizable anchor for the entry.
type Locator interface {
	Locate(doc *goquery.Document, name string, t entry.Type, anchor string) *goquery.Selection
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(doc *goquery.Document, name string, t entry.Type, anchor string) *goquery.Selection

// Locate calls f.
func (f LocatorFunc) Locate(doc *goquery.Document, name string, t entry.Type, anchor string) *goquery.Selection {
	return f(doc, name, t, anchor)
}

// Progress receives patch-phase progress, one tick per entry.
type Progress interface {
	Start(total int)
	Add(n int)
	Finish()
}

// Report summarizes a patch run.
type Report struct {
	// Entries is the number of collected entries with a patchable anchor.
	Entries int
	// Patched entries received a marker; Failed ones had no insertion point.
	Patched int
	Failed  int
	// Files is the number of pages rewritten.
	Files int
	// Skipped lists known-benign pages that were missing.
	Skipped []string
}

type target struct {
	name   string
	typ    entry.Type
	anchor string
}

// Patcher collects entries and patches the pages under a documentation root.
// It is not safe for concurrent use.
type Patcher struct {
	root     string
	locator  Locator
	logger   *slog.Logger
	progress Progress

	files    []string
	groups   map[string][]target
	seen     map[string]map[target]struct{}
	total    int
	finished bool
}

// Option customizes a Patcher.
type Option func(*Patcher)

// WithLogger sets the patcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Patcher) { p.logger = logger }
}

// WithProgress reports progress of Finish to tracker.
func WithProgress(tracker Progress) Option {
	return func(p *Patcher) {
		if tracker != nil {
			p.progress = tracker
		}
	}
}

// New returns a Patcher for the pages under root.
func New(root string, locator Locator, opts ...Option) *Patcher {
	p := &Patcher{
		root:     root,
		locator:  locator,
		progress: nopProgress{},
		groups:   make(map[string][]target),
		seen:     make(map[string]map[target]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "patcher")
	return p
}

// Collect queues e for patching. Entries whose path does not carry exactly
// one '#' have no patchable location and are ignored, as are exact repeats of
// an entry already queued for the same page.
func (p *Patcher) Collect(e entry.Entry) error {
	if p.finished {
		return ErrFinished
	}
	file, anchor, ok := e.Anchor()
	if !ok {
		return nil
	}
	if decoded, err := url.PathUnescape(file); err == nil {
		file = decoded
	}
	seen, known := p.seen[file]
	if !known {
		p.files = append(p.files, file)
		seen = make(map[target]struct{})
		p.seen[file] = seen
	}
	t := target{name: e.Name, typ: e.Type, anchor: anchor}
	if _, dup := seen[t]; dup {
		return nil
	}
	seen[t] = struct{}{}
	p.groups[file] = append(p.groups[file], t)
	p.total++
	return nil
}

// Pending reports how many entries are queued.
func (p *Patcher) Pending() int { return p.total }

// Files returns the queued pages in the order they were first seen.
func (p *Patcher) Files() []string {
	return append([]string(nil), p.files...)
}

// Finish patches every queued page. A missing page aborts the run with
// ErrMissingTarget unless it is ModIndexFile. The context is checked between
// pages.
func (p *Patcher) Finish(ctx context.Context) (Report, error) {
	if p.finished {
		return Report{}, ErrFinished
	}
	p.finished = true
	if ctx == nil {
		ctx = context.Background()
	}

	report := Report{Entries: p.total}
	p.logger.Info("Patching for TOCs",
		logging.Int("files", len(p.files)),
		logging.Int("entries", p.total),
	)
	p.progress.Start(p.total)
	defer p.progress.Finish()

	for _, file := range p.files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		targets := p.groups[file]
		patched, failed, err := p.patchFile(file, targets)
		if errors.Is(err, fs.ErrNotExist) {
			if file == ModIndexFile {
				p.logger.Warn("module index page is missing; skipping it", logging.String("file", file))
				report.Skipped = append(report.Skipped, file)
				p.progress.Add(len(targets))
				continue
			}
			return report, fmt.Errorf("%w: %s", ErrMissingTarget, filepath.Join(p.root, filepath.FromSlash(file)))
		}
		if err != nil {
			return report, err
		}
		report.Patched += patched
		report.Failed += failed
		if patched > 0 {
			report.Files++
		}
	}

	if report.Failed > 0 {
		p.logger.Warn("failed to add anchors", logging.Int("failed", report.Failed))
	}
	return report, nil
}

func (p *Patcher) patchFile(file string, targets []target) (patched, failed int, err error) {
	path := filepath.Join(p.root, filepath.FromSlash(file))
	doc, err := readDocument(path)
	if err != nil {
		return 0, 0, err
	}

	for _, t := range targets {
		pos := p.locator.Locate(doc, t.name, t.typ, t.anchor)
		if pos == nil || pos.Length() == 0 {
			p.logger.Debug("cannot find anchor",
				logging.String("anchor", t.anchor),
				logging.String("type", t.typ.String()),
				logging.String("file", file),
			)
			failed++
		} else {
			pos.First().BeforeNodes(marker(entry.Ref(t.typ, t.name)))
			patched++
		}
		p.progress.Add(1)
	}

	if patched == 0 {
		return 0, failed, nil
	}
	if err := fileutil.WriteFileAtomic(path, func(w io.Writer) error {
		return html.Render(w, doc.Nodes[0])
	}); err != nil {
		return patched, failed, fmt.Errorf("write patched %s: %w", file, err)
	}
	return patched, failed, nil
}

func readDocument(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

func marker(ref string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.A,
		Data:     "a",
		Attr: []html.Attribute{
			{Key: "name", Val: ref},
			{Key: "class", Val: "dashAnchor"},
		},
	}
}

type nopProgress struct{}

func (nopProgress) Start(int) {}
func (nopProgress) Add(int)   {}
func (nopProgress) Finish()   {}
