package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductOffer(t *testing.T) {
	m := Product(ProductInfo{Name: "Gloves", URL: "https://x.in/product?id=g", LowPrice: "300", HighPrice: "300"})
	offer, ok := m["offers"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Offer", offer["@type"])
	require.Equal(t, "INR", offer["priceCurrency"])
	require.Equal(t, "300", offer["price"])

	m = Product(ProductInfo{Name: "Dressing", LowPrice: "2000", HighPrice: "3570", Offers: 2})
	offer = m["offers"].(map[string]any)
	require.Equal(t, "AggregateOffer", offer["@type"])
	require.Equal(t, 2, offer["offerCount"])

	m = Product(ProductInfo{Name: "NPWT"})
	require.NotContains(t, m, "offers")
}

func TestBreadcrumbList(t *testing.T) {
	require.Nil(t, BreadcrumbList([]BreadcrumbItem{{Name: "Home", URL: "https://x.in/"}}))

	m := BreadcrumbList([]BreadcrumbItem{
		{Name: "Home", URL: "https://x.in/"},
		{Name: "Products", URL: "https://x.in/products"},
		{Name: "Gloves"},
	})
	require.Equal(t, "BreadcrumbList", m["@type"])
	items := m["itemListElement"].([]map[string]any)
	require.Len(t, items, 3)
	require.Equal(t, 2, items[1]["position"])
	require.Equal(t, "https://x.in/products", items[1]["item"])
	require.NotContains(t, items[2], "item")
}

func TestJSONAndOrganization(t *testing.T) {
	out := JSON(Organization("Shreekara Traders", "https://shreekara.in", "6361673634", ""))
	require.True(t, strings.Contains(out, `"telephone":"+91-6361673634"`), out)
	require.Equal(t, "", JSON(func() {}))
}

func TestCanonicalAndTitle(t *testing.T) {
	require.Equal(t, "", Canonical("", "/products"))
	require.Equal(t, "https://shreekara.in/product?id=a", Canonical("https://shreekara.in/", "/product?id=a"))
	require.Equal(t, "Products | Shreekara", Title("Products", "Shreekara"))
	require.Equal(t, "Shreekara", Title("", "Shreekara"))
}
