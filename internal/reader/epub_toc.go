package reader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     navLabel   `xml:"navLabel"`
	Content   navContent `xml:"content"`
	Children  []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// TOC extracts the table of contents from an EPUB file. Chapter indices
// match the order of ExtractChapters before short pages are dropped.
func (f *EPUBFormat) TOC(filename string) ([]TOCEntry, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]

	toc, err := readNCX(filename, book)
	if err != nil {
		return nil, err
	}

	spine := buildSpineMap(book)
	return flattenNavPoints(toc.NavMap.NavPoints, spine, 0), nil
}

// ExtractChapters returns one chapter per non-empty spine document, titled
// from the NCX when it names the document.
func (f *EPUBFormat) ExtractChapters(filename string) ([]Chapter, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]
	titles := buildTOCHrefMap(filename, book)

	var chapters []Chapter
	for i, ref := range book.Spine.Itemrefs {
		text, ok := readItem(ref.Item)
		if !ok || text == "" {
			continue
		}

		title := fmt.Sprintf("Section %d", i+1)
		if t, ok := lookupHref(titles, ref.Item.HREF); ok {
			title = t
		}

		chapters = append(chapters, Chapter{
			Title: title,
			File:  path.Base(ref.Item.HREF),
			Text:  text,
		})
	}

	return chapters, nil
}

// lookupHref finds an href in m by its full path, then by base name.
func lookupHref[V any](m map[string]V, href string) (V, bool) {
	if v, ok := m[href]; ok {
		return v, true
	}
	v, ok := m[path.Base(href)]
	return v, ok
}

// buildTOCHrefMap parses the NCX and returns a map of href to title
func buildTOCHrefMap(filename string, book *epub.Rootfile) map[string]string {
	result := make(map[string]string)

	toc, err := readNCX(filename, book)
	if err != nil {
		return result
	}

	var extract func(points []navPoint)
	extract = func(points []navPoint) {
		for _, np := range points {
			title := strings.TrimSpace(np.Label.Text)
			href := stripFragment(np.Content.Src)
			for _, key := range []string{np.Content.Src, href, path.Base(href)} {
				if _, exists := result[key]; !exists {
					result[key] = title
				}
			}
			extract(np.Children)
		}
	}
	extract(toc.NavMap.NavPoints)

	return result
}

func stripFragment(href string) string {
	if idx := strings.Index(href, "#"); idx != -1 {
		return href[:idx]
	}
	return href
}

func readNCX(filename string, book *epub.Rootfile) (*ncx, error) {
	data, err := findAndReadNCX(filename, book)
	if err != nil {
		return nil, err
	}
	var toc ncx
	if err := xml.Unmarshal(data, &toc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX: %w", err)
	}
	return &toc, nil
}

func findAndReadNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}

	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}

	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}

type spineInfo struct {
	chapter int
	preview string
}

// buildSpineMap indexes the non-empty spine documents by href, numbering
// them the way ExtractChapters does.
func buildSpineMap(book *epub.Rootfile) map[string]spineInfo {
	m := make(map[string]spineInfo)
	chapter := 0

	for _, ref := range book.Spine.Itemrefs {
		text, ok := readItem(ref.Item)
		if !ok || text == "" {
			continue
		}

		info := spineInfo{chapter: chapter, preview: preview(strings.Fields(text), 10)}
		if ref.Item.HREF != "" {
			m[ref.Item.HREF] = info
			m[path.Base(ref.Item.HREF)] = info
		}
		chapter++
	}

	return m
}

func flattenNavPoints(points []navPoint, spine map[string]spineInfo, level int) []TOCEntry {
	var entries []TOCEntry

	for _, np := range points {
		entry := TOCEntry{
			Title:   strings.TrimSpace(np.Label.Text),
			Level:   level,
			Chapter: -1,
		}
		if info, ok := lookupHref(spine, stripFragment(np.Content.Src)); ok {
			entry.Chapter = info.chapter
			entry.Preview = info.preview
		}
		entries = append(entries, entry)
		if len(np.Children) > 0 {
			entries = append(entries, flattenNavPoints(np.Children, spine, level+1)...)
		}
	}

	return entries
}
