package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	mw "shreekara.in/catalog-web/internal/middleware"
	"shreekara.in/catalog-web/internal/observability"
	"shreekara.in/catalog-web/internal/pricing"
)

const maxCartQuantity = 99

// CartAddHandler adds a product variant to the session cart. Quote-only
// selections are sent to the contact page instead.
func CartAddHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	id := strings.TrimSpace(r.PostFormValue("product_id"))
	p, ok := findProduct(r.Context(), id)
	if !ok {
		notifyCatalogFailure(w)
		mw.WriteError(w, r, http.StatusNotFound, "Product not found.")
		return
	}

	quote, ok := pricing.Resolve(p, r.PostFormValue("variant_id"))
	if !ok || quote.Action != pricing.ActionPurchase {
		redirectTo(w, r, pricing.QuoteURL(p.ID))
		return
	}

	qty := parseQuantity(r.PostFormValue("quantity"))
	sess := mw.GetSession(r)
	count := sess.AddToCart(qty)
	observability.FromContext(r.Context()).Info("cart add",
		zap.String("product_id", p.ID),
		zap.String("variant_id", quote.VariantID),
		zap.Int("quantity", qty),
		zap.Int("cart_count", count),
	)

	if !mw.IsHTMX(r.Context()) {
		redirectTo(w, r, productHref(p.ID, quote.VariantID, nil))
		return
	}
	mw.Trigger(w, map[string]any{
		"cart:updated": map[string]int{"count": count},
		"modal:close":  true,
	})
	mw.Notify(w, addedMessage(p.Name, quote.Label, qty), "success")
	renderTemplate(w, r, "frag_cart_count", map[string]any{"CartCount": count})
}

func addedMessage(name, label string, qty int) string {
	msg := name
	if label != "" {
		msg += " (" + label + ")"
	}
	if qty > 1 {
		msg = strconv.Itoa(qty) + " x " + msg
	}
	return msg + " added to cart!"
}

// parseQuantity clamps the submitted quantity to 1..maxCartQuantity.
func parseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxCartQuantity {
		return maxCartQuantity
	}
	return n
}

// redirectTo navigates htmx clients with HX-Redirect and others with a 303.
func redirectTo(w http.ResponseWriter, r *http.Request, target string) {
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if u, err := url.Parse(target); err == nil && u.Host == "" {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
