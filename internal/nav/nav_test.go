package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func activeLabels(items []RenderedItem) []string {
	var out []string
	for _, it := range items {
		if it.Active {
			out = append(out, it.Label)
		}
	}
	return out
}

func TestBuildMarksActiveItem(t *testing.T) {
	require.Equal(t, []string{"Home"}, activeLabels(Build("")))
	require.Equal(t, []string{"Products"}, activeLabels(Build("/products")))
	require.Equal(t, []string{"Products"}, activeLabels(Build("/product.html")))
	require.Equal(t, []string{"Products"}, activeLabels(Build("/products/npwt-system/quick-view")))
	require.Equal(t, []string{"Partners"}, activeLabels(Build("/clients")))
	require.Empty(t, activeLabels(Build("/unknown")))
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("/product")
	require.Len(t, crumbs, 2)
	require.Equal(t, Crumb{Href: "/products", Label: "Products", Active: true}, crumbs[1])

	crumbs = Append(crumbs, "Nitrile Gloves", "/product?id=nitrile")
	require.Len(t, crumbs, 3)
	require.False(t, crumbs[1].Active)
	require.True(t, crumbs[2].Active)

	deep := Breadcrumbs("/guides/wound-care")
	require.Equal(t, "Guides", deep[1].Label)
	require.Equal(t, "Wound care", deep[2].Label)
	require.True(t, deep[2].Active)
}
