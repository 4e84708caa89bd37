// Package pricing classifies variant pricing and derives what a page shows for a selection.
package pricing

import (
	"net/url"

	"github.com/shopspring/decimal"

	"shreekara.in/catalog-web/internal/catalog"
	"shreekara.in/catalog-web/internal/format"
)

// Shape is the pricing shape of a variant.
type Shape int

const (
	// ShapeQuote carries no amounts; the buyer has to request a quote.
	ShapeQuote Shape = iota
	// ShapeFlat carries a single price.
	ShapeFlat
	// ShapeDiscounted carries an MRP and an offer price.
	ShapeDiscounted
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeDiscounted:
		return "discounted"
	default:
		return "quote"
	}
}

// Action is the call to action derived from a variant.
type Action string

const (
	ActionPurchase Action = "purchase"
	ActionQuote    Action = "quote"
)

// Pricing is the classified pricing of one variant.
type Pricing struct {
	Shape Shape
	// Amount is the price paid: the flat price or the offer price.
	Amount decimal.Decimal
	// MRP is only set for ShapeDiscounted.
	MRP decimal.Decimal
}

// Classify derives the pricing shape from the fields present on v.
func Classify(v catalog.Variant) Pricing {
	switch {
	case v.OfferPrice.Valid:
		p := Pricing{Shape: ShapeDiscounted, Amount: v.OfferPrice.Decimal}
		if v.MRP.Valid {
			p.MRP = v.MRP.Decimal
		}
		return p
	case v.Price.Valid:
		return Pricing{Shape: ShapeFlat, Amount: v.Price.Decimal}
	default:
		return Pricing{Shape: ShapeQuote}
	}
}

// DisplayAmount returns the amount a card shows for v, if any.
func DisplayAmount(v catalog.Variant) (decimal.Decimal, bool) {
	p := Classify(v)
	if p.Shape == ShapeQuote {
		return decimal.Decimal{}, false
	}
	return p.Amount, true
}

// DiscountPercent returns round((mrp-offer)/mrp*100). It reports false when no
// positive discount exists.
func DiscountPercent(mrp, offer decimal.Decimal) (int64, bool) {
	if !mrp.IsPositive() || !offer.LessThan(mrp) {
		return 0, false
	}
	pct := mrp.Sub(offer).Div(mrp).Mul(decimal.NewFromInt(100)).Round(0)
	return pct.IntPart(), true
}

// Quote is the render model for the pricing block of one selected variant.
type Quote struct {
	ProductID string
	VariantID string
	Label     string
	Shape     Shape
	// Price is the formatted amount; empty for quote-only variants.
	Price string
	// Strike is the formatted MRP shown struck through.
	Strike string
	// Badge is e.g. "20% OFF".
	Badge    string
	Action   Action
	QuoteURL string
}

// Resolve computes the pricing block for the selected variant of p. An unknown
// variantID falls back to the first variant. ok is false when p has no variants.
func Resolve(p catalog.Product, variantID string) (Quote, bool) {
	v, found := p.Variant(variantID)
	if !found {
		v, found = p.DefaultVariant()
	}
	if !found {
		return Quote{}, false
	}
	return ResolveVariant(p.ID, v), true
}

// ResolveVariant computes the pricing block for one variant of the product productID.
func ResolveVariant(productID string, v catalog.Variant) Quote {
	pr := Classify(v)
	q := Quote{
		ProductID: productID,
		VariantID: v.ID,
		Label:     v.Label,
		Shape:     pr.Shape,
		Action:    ActionPurchase,
	}
	switch pr.Shape {
	case ShapeDiscounted:
		q.Price = format.INR(pr.Amount)
		if pct, ok := DiscountPercent(pr.MRP, pr.Amount); ok {
			q.Strike = format.INR(pr.MRP)
			q.Badge = decimal.NewFromInt(pct).String() + "% OFF"
		}
	case ShapeFlat:
		q.Price = format.INR(pr.Amount)
	default:
		q.Action = ActionQuote
		q.QuoteURL = QuoteURL(productID)
	}
	return q
}

// QuoteURL is the contact page link carrying the product id.
func QuoteURL(productID string) string {
	return "/contact?product=" + url.QueryEscape(productID)
}

// Purchasable reports whether any variant of p carries purchasing fields.
func Purchasable(p catalog.Product) bool {
	for _, v := range p.Variants {
		if Classify(v).Shape != ShapeQuote {
			return true
		}
	}
	return false
}

// CardRange returns min and max display amounts across the variants of p.
// ok is false when no variant has a numeric amount.
func CardRange(p catalog.Product) (min, max decimal.Decimal, ok bool) {
	for _, v := range p.Variants {
		amt, has := DisplayAmount(v)
		if !has {
			continue
		}
		if !ok {
			min, max, ok = amt, amt, true
			continue
		}
		if amt.LessThan(min) {
			min = amt
		}
		if amt.GreaterThan(max) {
			max = amt
		}
	}
	return min, max, ok
}

// CardPrice formats the card price of p: a single amount or a "min — max" range.
func CardPrice(p catalog.Product) (string, bool) {
	min, max, ok := CardRange(p)
	if !ok {
		return "", false
	}
	return format.Range(min, max), true
}
