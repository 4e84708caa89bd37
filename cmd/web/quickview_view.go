package main

import (
	"net/url"

	"shreekara.in/catalog-web/internal/catalog"
	"shreekara.in/catalog-web/internal/pricing"
)

// QuickView is the complete body of the shared product modal. Every open
// replaces the modal body with a fresh render of this view.
type QuickView struct {
	ProductID   string
	Name        string
	Image       string
	Description string
	Uses        []string
	Variants    []VariantOption
	Price       QuickViewPrice
	DetailsURL  string
	PriceURL    string
	CSRFToken   string
}

// QuickViewPrice is the price line and call-to-action label of the modal.
type QuickViewPrice struct {
	Quote pricing.Quote
	// HasVariants is false for products without any variant; the confirm
	// control then falls back to the quote flow.
	HasVariants bool
}

// Purchase reports whether confirming adds to the cart.
func (p QuickViewPrice) Purchase() bool {
	return p.HasVariants && p.Quote.Action == pricing.ActionPurchase
}

// CTALabel is the confirm control text.
func (p QuickViewPrice) CTALabel() string {
	if p.Purchase() {
		return "Add to Cart"
	}
	return "Request Quote"
}

func quickViewPrice(p catalog.Product, variantID string) QuickViewPrice {
	q, ok := pricing.Resolve(p, variantID)
	if !ok {
		return QuickViewPrice{Quote: pricing.Quote{ProductID: p.ID, Action: pricing.ActionQuote, QuoteURL: pricing.QuoteURL(p.ID)}}
	}
	if q.QuoteURL == "" {
		q.QuoteURL = pricing.QuoteURL(p.ID)
	}
	return QuickViewPrice{Quote: q, HasVariants: true}
}

func buildQuickView(p catalog.Product, csrf string) QuickView {
	price := quickViewPrice(p, "")
	return QuickView{
		ProductID:   p.ID,
		Name:        p.Name,
		Image:       p.Image,
		Description: p.ShortDescription,
		Uses:        p.Uses,
		Variants:    buildVariantOptions(p, price.Quote.VariantID, nil),
		Price:       price,
		DetailsURL:  productHref(p.ID, "", nil),
		PriceURL:    "/products/" + url.PathEscape(p.ID) + "/quick-view/price",
		CSRFToken:   csrf,
	}
}
