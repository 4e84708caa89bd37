package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"shreekara.in/catalog-web/internal/catalog"
)

const testCatalog = "../web/testdata/products.json"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheckReportsShapes(t *testing.T) {
	out, err := run(t, "check", "--file", testCatalog)
	require.NoError(t, err)
	require.Equal(t, "ok: 3 products, 6 variants (4 flat, 1 discounted, 1 quote)\n", out)
}

func TestCheckRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.json")
	doc := `{"products":[{"id":"a","variants":[{"id":"x"},{"id":"x"}]},{"id":"a"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := run(t, "check", "--file", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `product "a": duplicate id`)
	require.Contains(t, err.Error(), `variant "x": duplicate id`)
}

func TestPricesTableAndJSON(t *testing.T) {
	out, err := run(t, "prices", "--file", testCatalog)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[2], "₹300 — ₹400")
	require.Contains(t, lines[3], "on request")

	out, err = run(t, "prices", "--file", testCatalog, "--format", "json", "alpha", "beta", "gamma")
	require.NoError(t, err)
	var rows []struct {
		ID       string           `json:"id"`
		Price    string           `json:"price"`
		Quote    bool             `json:"quoteOnly"`
		Variants []map[string]any `json:"variants"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	require.Equal(t, "₹300", rows[0].Price)
	require.Len(t, rows[0].Variants, 3)
	require.Equal(t, map[string]any{"id": "s", "label": "Small", "price": 300.0}, rows[0].Variants[0])
	// discounted variants keep mrp/offerPrice and gain no price field
	require.Equal(t, map[string]any{"id": "b1", "label": "10 x 10", "mrp": 500.0, "offerPrice": 400.0}, rows[1].Variants[0])
	require.True(t, rows[2].Quote)
	require.Equal(t, map[string]any{"id": "unit", "label": "Unit"}, rows[2].Variants[0])

	_, err = run(t, "prices", "--file", testCatalog, "nope")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}
