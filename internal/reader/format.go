package reader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MinChapterLength is the length below which an extracted page is treated as
// front matter (title pages, copyright notices) and dropped.
const MinChapterLength = 200

// Format defines a file format reader for extracting text.
type Format interface {
	Name() string
	Extensions() []string
	Extract(filename string) (string, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// lookup returns the registered format for filename, or nil.
func lookup(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return nil
}

// ExtractText extracts text from a file, using a registered format or plain text fallback.
func ExtractText(filename string) (string, error) {
	if f := lookup(filename); f != nil {
		return f.Extract(filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExtractChapters splits a file into chapters. Formats without chapter
// support produce a single chapter holding the whole text. Chapters shorter
// than minLength characters are dropped.
func ExtractChapters(filename string, minLength int) ([]Chapter, error) {
	var chapters []Chapter
	if ce, ok := lookup(filename).(ChapterExtractor); ok {
		var err error
		chapters, err = ce.ExtractChapters(filename)
		if err != nil {
			return nil, err
		}
	} else {
		text, err := ExtractText(filename)
		if err != nil {
			return nil, err
		}
		chapters = []Chapter{{Title: "Document", File: filepath.Base(filename), Text: strings.TrimSpace(text)}}
	}

	kept := chapters[:0]
	for _, c := range chapters {
		if utf8.RuneCountInString(c.Text) >= minLength {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// TableOfContents returns the TOC of a file if its format provides one.
func TableOfContents(filename string) ([]TOCEntry, error) {
	tp, ok := lookup(filename).(TOCProvider)
	if !ok {
		return nil, fmt.Errorf("no table of contents support for %s", filepath.Ext(filename))
	}
	return tp.TOC(filename)
}

// WriteChapters writes chapters as indented JSON to path.
func WriteChapters(path string, chapters []Chapter) error {
	data, err := json.MarshalIndent(chapters, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
