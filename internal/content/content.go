package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a page does not exist.
var ErrNotFound = errors.New("content: not found")

// Page is a static marketing page sourced from local markdown.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	Body      template.HTML
	UpdatedAt time.Time
	Banner    *Banner
	SEO       SEO
}

// SEO holds optional metadata overrides for a page.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

// Banner models an optional notice displayed above the body.
type Banner struct {
	Variant  string
	Title    string
	Message  string
	LinkText string
	LinkURL  string
}

type frontMatter struct {
	Title     string             `yaml:"title"`
	Summary   string             `yaml:"summary"`
	Format    string             `yaml:"format"`
	UpdatedAt string             `yaml:"updated_at"`
	SEO       frontMatterSEO     `yaml:"seo"`
	Banner    *frontMatterBanner `yaml:"banner"`
}

type frontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

type frontMatterBanner struct {
	Variant  string `yaml:"variant"`
	Title    string `yaml:"title"`
	Message  string `yaml:"message"`
	LinkText string `yaml:"link_text"`
	LinkURL  string `yaml:"link_url"`
}

const (
	defaultDir      = "content"
	defaultCacheTTL = 5 * time.Minute
)

// Library reads pages from a directory of markdown files with YAML front matter
// and keeps rendered pages in memory for a while.
type Library struct {
	dir string
	ttl time.Duration

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewLibrary builds a Library rooted at dir. A ttl <= 0 uses the default.
func NewLibrary(dir string, ttl time.Duration) *Library {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultDir
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Library{dir: dir, ttl: ttl, items: map[string]cacheEntry{}}
}

// Page returns the page stored as <dir>/<slug>.md.
func (l *Library) Page(slug string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	if page, ok := l.cached(slug); ok {
		return page, nil
	}
	page, err := l.read(slug)
	if err != nil {
		return Page{}, err
	}
	l.store(slug, page)
	return clonePage(page), nil
}

func (l *Library) read(slug string) (Page, error) {
	file := filepath.Join(l.dir, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	var rendered template.HTML
	if strings.EqualFold(strings.TrimSpace(front.Format), "html") {
		rendered = Sanitize(body)
	} else {
		rendered, err = Markdown(body)
		if err != nil {
			return Page{}, fmt.Errorf("content: render %s: %w", file, err)
		}
	}
	page := Page{
		Slug:    slug,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    rendered,
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
		UpdatedAt: parseDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if front.Banner != nil {
		page.Banner = &Banner{
			Variant:  strings.TrimSpace(front.Banner.Variant),
			Title:    strings.TrimSpace(front.Banner.Title),
			Message:  strings.TrimSpace(front.Banner.Message),
			LinkText: strings.TrimSpace(front.Banner.LinkText),
			LinkURL:  strings.TrimSpace(front.Banner.LinkURL),
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
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

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02-01-2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func (l *Library) cached(slug string) (Page, bool) {
	l.mu.RLock()
	entry, ok := l.items[slug]
	l.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return clonePage(entry.page), true
}

func (l *Library) store(slug string, page Page) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items[slug] = cacheEntry{page: clonePage(page), expires: time.Now().Add(l.ttl)}
}

func clonePage(src Page) Page {
	cp := src
	if src.Banner != nil {
		b := *src.Banner
		cp.Banner = &b
	}
	return cp
}

// trimParagraph unwraps a single <p> produced for inline snippets.
func trimParagraph(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if bytes.HasPrefix(b, []byte("<p>")) && bytes.HasSuffix(b, []byte("</p>")) && bytes.Count(b, []byte("<p>")) == 1 {
		return b[3 : len(b)-4]
	}
	return b
}
