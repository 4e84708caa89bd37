package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLibraryPageRendersMarkdown(t *testing.T) {
	lib := NewLibrary("testdata", time.Minute)
	page, err := lib.Page("about")
	require.NoError(t, err)
	require.Equal(t, "About Us", page.Title)
	require.Equal(t, "Test summary", page.Summary)
	require.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	require.Contains(t, string(page.Body), "<strong>world</strong>")
	require.Contains(t, string(page.Body), "<li>one</li>")
	require.NotContains(t, string(page.Body), "<script>")
	require.NotNil(t, page.Banner)
	require.Equal(t, "Notice", page.Banner.Title)
}

func TestLibraryHTMLFormatIsSanitized(t *testing.T) {
	page, err := NewLibrary("testdata", 0).Page("raw")
	require.NoError(t, err)
	require.Contains(t, string(page.Body), "<em>html</em>")
	require.NotContains(t, string(page.Body), "onclick")
	require.Equal(t, "Raw", page.Title)
}

func TestLibraryTitleFallsBackToSlug(t *testing.T) {
	page, err := NewLibrary("testdata", 0).Page("plain-page")
	require.NoError(t, err)
	require.Equal(t, "Plain Page", page.Title)
}

func TestLibraryRejectsTraversalAndMissing(t *testing.T) {
	lib := NewLibrary("testdata", 0)
	for _, slug := range []string{"", "../secret", "a/b", "missing"} {
		_, err := lib.Page(slug)
		require.ErrorIs(t, err, ErrNotFound, slug)
	}
}

func TestLibraryCachesPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: First\n---\nbody\n"), 0o644))

	lib := NewLibrary(dir, time.Hour)
	page, err := lib.Page("faq")
	require.NoError(t, err)
	require.Equal(t, "First", page.Title)

	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: Second\n---\nbody\n"), 0o644))
	page, err = lib.Page("faq")
	require.NoError(t, err)
	require.Equal(t, "First", page.Title)
}

func TestInline(t *testing.T) {
	require.Equal(t, "Apply <strong>twice</strong> daily", string(Inline("Apply **twice** daily")))
	require.Equal(t, "a &lt; b", string(Inline("a < b")))
}
