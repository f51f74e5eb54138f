// Package content serves the static informational pages bundled with the binary.
// Pages are markdown files with YAML front matter, rendered once at load time.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"modern-stitch/models"
)

//go:embed pages/*.md
var embeddedPages embed.FS

// ErrNotFound is returned for unknown page slugs
var ErrNotFound = errors.New("content page not found")

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Store holds the rendered pages keyed by slug. It is immutable after construction.
type Store struct {
	pages map[string]models.ContentPage
}

// NewStore loads the embedded pages
func NewStore() (*Store, error) {
	return NewStoreFromFS(embeddedPages, "pages")
}

// NewStoreFromFS loads every *.md file under dir; the file name without extension is the slug
func NewStoreFromFS(fsys fs.FS, dir string) (*Store, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy := bluemonday.UGCPolicy()

	pages := make(map[string]models.ContentPage, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", slug, err)
		}
		page, err := parsePage(slug, string(raw), md, policy)
		if err != nil {
			return nil, err
		}
		pages[slug] = page
	}
	return &Store{pages: pages}, nil
}

func parsePage(slug, raw string, md goldmark.Markdown, policy *bluemonday.Policy) (models.ContentPage, error) {
	fmRaw, body := splitFrontMatter(raw)

	var fm frontMatter
	if fmRaw != "" {
		if err := yaml.Unmarshal([]byte(fmRaw), &fm); err != nil {
			return models.ContentPage{}, fmt.Errorf("page %s: invalid front matter: %w", slug, err)
		}
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return models.ContentPage{}, fmt.Errorf("page %s: render markdown: %w", slug, err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = prettifySlug(slug)
	}

	return models.ContentPage{
		Slug:      slug,
		Title:     title,
		Summary:   strings.TrimSpace(fm.Summary),
		HTML:      policy.Sanitize(buf.String()),
		UpdatedAt: parseContentDate(fm.UpdatedAt),
	}, nil
}

// Page returns a page by slug
func (s *Store) Page(slug string) (models.ContentPage, error) {
	page, ok := s.pages[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return models.ContentPage{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return page, nil
}

// Slugs lists the available pages in alphabetical order
func (s *Store) Slugs() []string {
	out := make([]string, 0, len(s.pages))
	for slug := range s.pages {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
