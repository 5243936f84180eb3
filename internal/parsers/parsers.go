// Package parsers keeps the ordered set of documentation formats doc2dash
// understands and picks the one that claims a source directory.
package parsers

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"doc2dash/internal/entry"
	"doc2dash/internal/intersphinx"
)

var (
	// ErrUnknownFormat is returned when no registered format claims a source.
	ErrUnknownFormat = errors.New("no parser recognizes the documentation format")
	// ErrUnknownParser is returned when a format is requested by an unknown name.
	ErrUnknownParser = errors.New("unknown parser")
)

// Parser produces index entries for one documentation tree and knows where
// that tree's HTML keeps its anchors.
type Parser interface {
	Name() string
	Parse() (iter.Seq[entry.Entry], error)
	Locate(doc *goquery.Document, name string, t entry.Type, anchor string) *goquery.Selection
}

// Format describes a documentation format.
type Format struct {
	Name string
	// Detect returns the project name when root belongs to the format. It
	// must not fail on foreign or garbage input.
	Detect func(root string, logger *slog.Logger) (string, bool)
	// New builds a Parser for root.
	New func(root string, logger *slog.Logger) Parser
}

// Registry is an ordered list of formats; the first detector to claim a
// directory wins.
type Registry struct {
	formats []Format
}

// NewRegistry returns a registry trying formats in the given order.
func NewRegistry(formats ...Format) *Registry {
	return &Registry{formats: append([]Format(nil), formats...)}
}

// Default returns the registry of built-in formats.
func Default() *Registry {
	return NewRegistry(Intersphinx())
}

// Intersphinx is the format backed by Sphinx objects.inv inventories.
func Intersphinx() Format {
	return Format{
		Name:   intersphinx.Name,
		Detect: intersphinx.Detect,
		New: func(root string, logger *slog.Logger) Parser {
			return intersphinx.New(root, intersphinx.WithLogger(logger))
		},
	}
}

// Names lists the registered format names in detection order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for _, f := range r.formats {
		names = append(names, f.Name)
	}
	return names
}

// Lookup returns the format called name.
func (r *Registry) Lookup(name string) (Format, error) {
	for _, f := range r.formats {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownParser, name, strings.Join(r.Names(), ", "))
}

// Detect returns the first format claiming root together with the project
// name it reported.
func (r *Registry) Detect(root string, logger *slog.Logger) (Format, string, error) {
	for _, f := range r.formats {
		if name, ok := f.Detect(root, logger); ok {
			return f, name, nil
		}
	}
	return Format{}, "", fmt.Errorf("%w: %s", ErrUnknownFormat, root)
}

// Resolve picks the format for root. An empty name auto-detects; otherwise
// the named format must also recognize root.
func (r *Registry) Resolve(root, name string, logger *slog.Logger) (Format, string, error) {
	if name == "" {
		return r.Detect(root, logger)
	}
	f, err := r.Lookup(name)
	if err != nil {
		return Format{}, "", err
	}
	project, ok := f.Detect(root, logger)
	if !ok {
		return Format{}, "", fmt.Errorf("%w: %s parser does not recognize %s", ErrUnknownFormat, f.Name, root)
	}
	return f, project, nil
}
