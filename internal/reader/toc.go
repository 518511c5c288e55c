package reader

import "strings"

// TOCEntry represents a single entry in a table of contents
type TOCEntry struct {
	Title   string `json:"title"`
	Level   int    `json:"level"`
	Chapter int    `json:"chapter"` // index into the extracted chapters, -1 if unknown
	Preview string `json:"preview,omitempty"`
}

// Chapter is the text of one chapter of a source file
type Chapter struct {
	Title string `json:"title"`
	File  string `json:"file"`
	Text  string `json:"text"`
}

// TOCProvider is an optional interface for formats that support TOC extraction
type TOCProvider interface {
	TOC(filename string) ([]TOCEntry, error)
}

// ChapterExtractor is an optional interface for chapter-aware extraction
type ChapterExtractor interface {
	ExtractChapters(filename string) ([]Chapter, error)
}

// preview returns the first n words of text followed by an ellipsis.
func preview(words []string, n int) string {
	if len(words) == 0 {
		return ""
	}
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ") + "..."
}
