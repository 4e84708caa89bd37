package populate

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"shreekara.in/catalog-web/internal/catalog"
)

type staticCatalog []catalog.Product

func (s staticCatalog) Load(context.Context) []catalog.Product { return s }

type countingCatalog struct{ calls int }

func (c *countingCatalog) Load(context.Context) []catalog.Product {
	c.calls++
	return nil
}

func price(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

func testCatalog() staticCatalog {
	return staticCatalog{
		{ID: "same", Variants: []catalog.Variant{{ID: "a", Price: price(300)}, {ID: "b", Price: price(300)}, {ID: "c", Price: price(300)}}},
		{ID: "spread", Variants: []catalog.Variant{{ID: "a", Price: price(300)}, {ID: "b", Price: price(500)}}},
		{ID: "none", Variants: []catalog.Variant{{ID: "a"}}},
		{ID: "empty"},
	}
}

const page = `<!DOCTYPE html><html><head><title>t</title></head><body>
<span id="s1" data-product-price-for="same">Price on request</span>
<span id="s2" data-product-price-for="spread">Price on request</span>
<span id="s3" data-product-price-for="none">Call us</span>
<span id="s4" data-product-price-for="empty">Call us</span>
<span id="s5" data-product-price-for="unknown">Call us</span>
</body></html>`

func TestRenderFillsSlots(t *testing.T) {
	out, err := Populator{Catalog: testCatalog()}.Render(context.Background(), []byte(page))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "₹300", doc.Find("#s1").Text())
	require.Equal(t, "₹300 — ₹500", doc.Find("#s2").Text())
	require.Equal(t, "Call us", doc.Find("#s3").Text())
	require.Equal(t, "Call us", doc.Find("#s4").Text())
	require.Equal(t, "Call us", doc.Find("#s5").Text())
	require.Equal(t, "t", doc.Find("title").Text())
}

func TestRenderWithoutSlotsSkipsCatalog(t *testing.T) {
	c := &countingCatalog{}
	body := []byte(`<html><body><p>hello</p></body></html>`)
	out, err := Populator{Catalog: c}.Render(context.Background(), body)
	require.NoError(t, err)
	require.Equal(t, body, out)
	require.Zero(t, c.calls)
}

func TestRenderWithNothingToFillKeepsBody(t *testing.T) {
	body := []byte(`<html><body><span data-product-price-for="none">x</span></body></html>`)
	out, err := Populator{Catalog: testCatalog()}.Render(context.Background(), body)
	require.NoError(t, err)
	require.Equal(t, body, out)
}

func TestApplyCounts(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(page)))
	require.NoError(t, err)
	require.Equal(t, 2, Apply(doc, testCatalog()))
}
