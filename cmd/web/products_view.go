package main

import (
	"net/url"
	"sort"
	"strings"

	"shreekara.in/catalog-web/internal/catalog"
	"shreekara.in/catalog-web/internal/pricing"
)

// ProductCard is one tile of the listing and home grids. Its price slot is
// filled after rendering from the data-product-price-for attribute.
type ProductCard struct {
	ID               string
	Name             string
	ShortDescription string
	Brand            string
	Category         string
	Image            string
	Uses             []string
	Href             string
	QuickViewURL     string
	QuoteOnly        bool
}

// CategoryOption is a listing filter chip.
type CategoryOption struct {
	Name   string
	Href   string
	Active bool
}

// ProductsView aggregates the listing page.
type ProductsView struct {
	Cards      []ProductCard
	Categories []CategoryOption
	Category   string
	Empty      bool
}

func buildCard(p catalog.Product) ProductCard {
	uses := p.Uses
	if len(uses) > 3 {
		uses = uses[:3]
	}
	return ProductCard{
		ID:               p.ID,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Brand:            p.Brand,
		Category:         p.Category,
		Image:            p.Image,
		Uses:             uses,
		Href:             productHref(p.ID, "", nil),
		QuickViewURL:     "/products/" + url.PathEscape(p.ID) + "/quick-view",
		QuoteOnly:        !pricing.Purchasable(p),
	}
}

func buildCards(products []catalog.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, buildCard(p))
	}
	return cards
}

// buildProductsView filters products by the "category" query parameter,
// compared case-insensitively. Unknown categories yield an empty grid.
func buildProductsView(products []catalog.Product, q url.Values) ProductsView {
	selected := strings.TrimSpace(q.Get("category"))
	view := ProductsView{Category: selected}

	names := map[string]string{}
	for _, p := range products {
		if c := strings.TrimSpace(p.Category); c != "" {
			names[strings.ToLower(c)] = c
		}
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	view.Categories = append(view.Categories, CategoryOption{Name: "All", Href: "/products", Active: selected == ""})
	for _, k := range keys {
		view.Categories = append(view.Categories, CategoryOption{
			Name:   names[k],
			Href:   "/products?category=" + url.QueryEscape(names[k]),
			Active: strings.EqualFold(selected, names[k]),
		})
	}

	for _, p := range products {
		if selected != "" && !strings.EqualFold(strings.TrimSpace(p.Category), selected) {
			continue
		}
		view.Cards = append(view.Cards, buildCard(p))
	}
	view.Empty = len(view.Cards) == 0
	return view
}

const featuredCount = 3

func featuredCards(products []catalog.Product) []ProductCard {
	if len(products) > featuredCount {
		products = products[:featuredCount]
	}
	return buildCards(products)
}
