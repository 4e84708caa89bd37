package main

import (
	"net/http"

	mw "shreekara.in/catalog-web/internal/middleware"
)

// QuickViewHandler renders the whole modal body for one product. Plain
// navigations to the URL go to the detail page instead.
func QuickViewHandler(w http.ResponseWriter, r *http.Request) {
	id := productIDParam(r)
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, productHref(id, "", nil), http.StatusSeeOther)
		return
	}
	p, ok := findProduct(r.Context(), id)
	if !ok {
		notifyCatalogFailure(w)
		renderTemplateStatus(w, r, http.StatusNotFound, "frag_quickview_missing", map[string]any{
			"Message":     "Product not found.",
			"ProductsURL": "/products",
		})
		return
	}
	mw.Trigger(w, map[string]any{"modal:open": map[string]string{"product": p.ID}})
	renderTemplate(w, r, "frag_quickview", buildQuickView(p, mw.CSRFToken(r)))
}

// QuickViewPriceFrag swaps the modal price line for the chosen variant.
func QuickViewPriceFrag(w http.ResponseWriter, r *http.Request) {
	id := productIDParam(r)
	p, ok := findProduct(r.Context(), id)
	if !ok {
		notifyCatalogFailure(w)
		mw.WriteError(w, r, http.StatusNotFound, "Product not found.")
		return
	}
	q := r.URL.Query()
	variant := q.Get("variant")
	if variant == "" {
		// the select submits under its form field name
		variant = q.Get("variant_id")
	}
	renderTemplate(w, r, "frag_quickview_price", quickViewPrice(p, variant))
}
