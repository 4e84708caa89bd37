package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"shreekara.in/catalog-web/internal/catalog"
	handlersPkg "shreekara.in/catalog-web/internal/handlers"
	mw "shreekara.in/catalog-web/internal/middleware"
	"shreekara.in/catalog-web/internal/nav"
	"shreekara.in/catalog-web/internal/seo"
)

// HomeHandler renders the landing page with featured products.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	products := loadCatalog(r.Context())
	home := handlersPkg.BuildHomeData(site.Name)
	home.Featured = featuredCards(products)

	vm := handlersPkg.PageData{
		Home:         home,
		CatalogError: catalogNotice(),
	}
	vm.SEO.Description = home.Tagline
	vm.SEO.JSONLD = []string{seo.JSON(seo.Organization(site.Name, site.BaseURL, site.Phone, site.Email))}
	renderPage(w, r, "home", vm)
}

// ProductsHandler renders the product listing.
func ProductsHandler(w http.ResponseWriter, r *http.Request) {
	view := buildProductsView(loadCatalog(r.Context()), r.URL.Query())
	vm := handlersPkg.PageData{
		Title:        "Products",
		Products:     view,
		CatalogError: catalogNotice(),
	}
	vm.SEO.Description = "Advanced wound care, surgical consumables and hospital equipment supplied by " + site.Name + "."
	if mw.IsHTMX(r.Context()) && mw.HXTarget(r.Context()) == "product-grid" {
		w.Header().Set("HX-Push-Url", r.URL.RequestURI())
		notifyCatalogFailure(w)
		renderTemplate(w, r, "frag_product_grid", view)
		return
	}
	renderPage(w, r, "products", vm)
}

// ProductHandler renders the product detail page for ?id=.
func ProductHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var products []catalog.Product
	if strings.TrimSpace(q.Get("id")) != "" {
		products = loadCatalog(r.Context())
	}
	view := buildProductView(products, q, mw.CSRFToken(r))

	vm := handlersPkg.PageData{
		Title:        view.Title,
		CatalogError: catalogNotice(),
	}
	status := http.StatusOK
	switch view.State {
	case ProductFound:
		p := view.Product
		canonical := productHref(p.ID, "", nil)
		vm.Breadcrumbs = nav.Append(nav.Breadcrumbs("/products"), p.Name, canonical)
		vm.SEO.Description = p.ShortDescription
		vm.SEO.OG.Image = p.Image
		vm.SEO.OG.Type = "product"
		vm.SEO.JSONLD = []string{seo.JSON(productJSONLD(p, seo.Canonical(site.BaseURL, canonical)))}
		if trail := breadcrumbJSONLD(vm.Breadcrumbs); trail != nil {
			vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(trail))
		}
	case ProductNotFound:
		status = http.StatusNotFound
		vm.SEO.Robots = "noindex"
	default:
		vm.SEO.Robots = "noindex"
	}
	vm.Product = view
	renderPageStatus(w, r, status, "product", vm)
}

// ProductPricingFrag re-renders the variant row and pricing block for a new selection.
func ProductPricingFrag(w http.ResponseWriter, r *http.Request) {
	id := productIDParam(r)
	q := r.URL.Query()
	variant := q.Get("variant")
	open := parseOpen(q)
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, productHref(id, variant, open), http.StatusSeeOther)
		return
	}
	p, ok := findProduct(r.Context(), id)
	if !ok {
		notifyCatalogFailure(w)
		mw.WriteError(w, r, http.StatusNotFound, "Product not found.")
		return
	}
	view, ok := buildPricingView(p, variant, open, mw.CSRFToken(r))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "This product has no variants.")
		return
	}
	w.Header().Set("HX-Replace-Url", productHref(p.ID, view.Quote.VariantID, open))
	renderTemplate(w, r, "frag_product_pricing", view)
}

// breadcrumbJSONLD mirrors the visible trail. Links become absolute when a
// base URL is configured; the active crumb carries no link.
func breadcrumbJSONLD(crumbs []nav.Crumb) map[string]any {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		it := seo.BreadcrumbItem{Name: c.Label}
		if !c.Active {
			if it.URL = seo.Canonical(site.BaseURL, c.Href); it.URL == "" {
				it.URL = c.Href
			}
		}
		items = append(items, it)
	}
	return seo.BreadcrumbList(items)
}

// productIDParam returns the {id} route segment. chi matches on the raw path
// when the id was escaped (ids may contain '/'), so it is unescaped here.
func productIDParam(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}
