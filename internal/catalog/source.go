package catalog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultDataFile = "data/products.json"
	defaultTimeout  = 10 * time.Second
)

// Source fetches the raw catalog.
type Source interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// FileSource reads the catalog from a local JSON file.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s FileSource) Fetch(ctx context.Context) ([]Product, error) {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		path = defaultDataFile
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// HTTPSource fetches the catalog document from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch implements Source. Any status >= 400 is a failure.
func (s HTTPSource) Fetch(ctx context.Context) ([]Product, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog: fetch %s: status %d", s.URL, resp.StatusCode)
	}
	return Decode(resp.Body)
}

// NewSource picks the remote source when url is set, otherwise the local file.
func NewSource(path, url string) Source {
	if u := strings.TrimSpace(url); u != "" {
		return HTTPSource{URL: u}
	}
	return FileSource{Path: path}
}
