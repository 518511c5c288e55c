package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a slug does not name a book in the library.
var ErrNotFound = errors.New("book not found")

// Files every book directory holds.
const (
	MetaFile       = "meta.json"
	ChunksFile     = "chunks.json"
	CharactersFile = "characters.json"
	LocationsFile  = "locations.json"
)

// Library is a directory with one subdirectory per book, named by slug.
type Library struct {
	dir string
}

// NewLibrary returns a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the library root.
func (l *Library) Dir() string { return l.dir }

// List returns the metadata of every book directory that has a meta.json,
// in directory order. Directories without one are skipped.
func (l *Library) List(ctx context.Context) ([]Meta, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	books := []Meta{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(l.dir, e.Name(), MetaFile)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		var m Meta
		if err := readJSON(path, &m); err != nil {
			return nil, err
		}
		books = append(books, m)
	}
	return books, nil
}

// Load reads all data files of one book.
func (l *Library) Load(ctx context.Context, slug string) (*Book, error) {
	dir, err := l.bookDir(slug)
	if err != nil {
		return nil, err
	}

	b := &Book{}
	files := []struct {
		name string
		v    any
	}{
		{MetaFile, &b.Meta},
		{ChunksFile, &b.Chunks},
		{CharactersFile, &b.Characters},
		{LocationsFile, &b.Locations},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readJSON(filepath.Join(dir, f.name), f.v); err != nil {
			return nil, err
		}
	}
	if b.Slug == "" {
		b.Slug = slug
	}
	return b, nil
}

// bookDir resolves a slug to its directory. Anything that is not a plain
// directory name inside the library is treated as unknown.
func (l *Library) bookDir(slug string) (string, error) {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return "", ErrNotFound
	}
	dir := filepath.Join(l.dir, slug)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", slug, err)
	}
	if !info.IsDir() {
		return "", ErrNotFound
	}
	return dir, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
