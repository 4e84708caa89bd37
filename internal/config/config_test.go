package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("SITE_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "data/products.json", cfg.Catalog.Path)
	require.Equal(t, 10*time.Second, cfg.Catalog.FetchTimeout)
	require.False(t, cfg.Prod())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  templates_dir: "tpl"
catalog:
  url: "https://cdn.example.com/products.json"
  fetch_timeout: 3s
log:
  level: debug
`), 0o600))
	t.Setenv("SITE_CONFIG_FILE", path)
	t.Setenv("SITE_TEMPLATES_DIR", "override")
	t.Setenv("PORT", "")
	t.Setenv("SITE_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Server.Addr)
	require.Equal(t, "override", cfg.Server.TemplatesDir)
	require.Equal(t, "https://cdn.example.com/products.json", cfg.Catalog.URL)
	require.Equal(t, 3*time.Second, cfg.Catalog.FetchTimeout)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITE_CATALOG_PATH=fixtures/p.json\n"), 0o600))
	t.Setenv("SITE_CATALOG_PATH", "")
	os.Unsetenv("SITE_CATALOG_PATH")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "fixtures/p.json", cfg.Catalog.Path)
}

func TestProdRequiresSigningKey(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SITE_ENV", "prod")
	t.Setenv("SITE_SESSION_SIGNING_KEY", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("SITE_SESSION_SIGNING_KEY", "k")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Prod())
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
