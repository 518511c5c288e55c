package reader

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MarkdownFormat implements Format for Markdown files.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Extract(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// headerRegex matches markdown headers (# to ######)
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// section is a header and the lines under it.
type section struct {
	title string
	level int
	lines []string
}

// scanSections splits a Markdown file at its headers. Text before the first
// header lands in an untitled section with level -1.
func scanSections(filename string) ([]section, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sections := []section{{level: -1}}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if match := headerRegex.FindStringSubmatch(line); match != nil {
			sections = append(sections, section{
				title: strings.TrimSpace(match[2]),
				level: len(match[1]) - 1, // h1 = level 0, h2 = level 1, etc.
			})
			continue
		}
		cur := &sections[len(sections)-1]
		cur.lines = append(cur.lines, line)
	}
	return sections, scanner.Err()
}

func (s section) text() string {
	return strings.TrimSpace(strings.Join(s.lines, "\n"))
}

// TOC extracts the table of contents from a Markdown file by parsing headers.
// Every header starts a chapter, so Chapter is the header's index.
func (f *MarkdownFormat) TOC(filename string) ([]TOCEntry, error) {
	sections, err := scanSections(filename)
	if err != nil {
		return nil, err
	}

	var entries []TOCEntry
	for _, s := range sections[1:] {
		entries = append(entries, TOCEntry{
			Title:   s.title,
			Level:   s.level,
			Chapter: len(entries),
			Preview: preview(strings.Fields(s.text()), 10),
		})
	}
	return entries, nil
}

// ExtractChapters returns one chapter per header. A file without headers is
// a single chapter titled "Document".
func (f *MarkdownFormat) ExtractChapters(filename string) ([]Chapter, error) {
	sections, err := scanSections(filename)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(filename)
	if len(sections) == 1 {
		text := sections[0].text()
		if text == "" {
			return nil, nil
		}
		return []Chapter{{Title: "Document", File: base, Text: text}}, nil
	}

	var chapters []Chapter
	for _, s := range sections[1:] {
		chapters = append(chapters, Chapter{Title: s.title, File: base, Text: s.text()})
	}
	return chapters, nil
}
