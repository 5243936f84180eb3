package docset

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"howett.net/plist"
)

// FullTextSearch controls Dash's full text search for a docset.
type FullTextSearch string

const (
	FullTextSearchOn        FullTextSearch = "on"
	FullTextSearchOff       FullTextSearch = "off"
	FullTextSearchForbidden FullTextSearch = "forbidden"
)

// ParseFullTextSearch validates a mode name.
func ParseFullTextSearch(value string) (FullTextSearch, error) {
	switch mode := FullTextSearch(value); mode {
	case FullTextSearchOn, FullTextSearchOff, FullTextSearchForbidden:
		return mode, nil
	case "":
		return FullTextSearchOff, nil
	default:
		return "", fmt.Errorf("full text search must be on, off, or forbidden (got %q)", value)
	}
}

// Manifest holds the Info.plist values doc2dash sets.
type Manifest struct {
	Name              string
	IndexPage         string
	EnableJS          bool
	OnlineRedirectURL string
	PlaygroundURL     string
	FullTextSearch    FullTextSearch
}

// Dict renders m as the plist dictionary Dash expects. Optional keys are
// only present when set.
func (m Manifest) Dict() map[string]any {
	d := map[string]any{
		"CFBundleIdentifier":        m.Name,
		"CFBundleName":              m.Name,
		"DocSetPlatformFamily":      cases.Lower(language.Und).String(m.Name),
		"DashDocSetFamily":          "python",
		"DashDocSetDeclaredInStyle": "originalName",
		"isDashDocset":              true,
		"isJavaScriptEnabled":       m.EnableJS,
	}
	if m.IndexPage != "" {
		d["dashIndexFilePath"] = filepath.ToSlash(m.IndexPage)
	}
	if m.OnlineRedirectURL != "" {
		d["DashDocSetFallbackURL"] = m.OnlineRedirectURL
	}
	if m.PlaygroundURL != "" {
		d["DashDocSetPlayURL"] = m.PlaygroundURL
	}
	switch m.FullTextSearch {
	case FullTextSearchForbidden:
		d["DashDocSetFTSNotSupported"] = true
	case FullTextSearchOn:
		d["DashDocSetDefaultFTSEnabled"] = true
	}
	return d
}

// WritePlist encodes dict as an XML property list at path.
func WritePlist(path string, dict map[string]any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plist: %w", err)
	}
	defer f.Close()

	enc := plist.NewEncoderForFormat(f, plist.XMLFormat)
	enc.Indent("\t")
	if err := enc.Encode(dict); err != nil {
		return fmt.Errorf("encode plist: %w", err)
	}
	return f.Close()
}

// ReadPlist decodes the property list at path.
func ReadPlist(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plist: %w", err)
	}
	var dict map[string]any
	if _, err := plist.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("decode plist: %w", err)
	}
	return dict, nil
}
