// Package populate fills card price slots declared in page markup.
//
// Markup declares a slot with the data-product-price-for attribute naming a
// product id; the element text is replaced with the formatted price or price
// range of that product. Slots whose product is unknown or has no numeric
// prices keep their original content.
package populate

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"shreekara.in/catalog-web/internal/catalog"
	"shreekara.in/catalog-web/internal/pricing"
)

// Attr is the attribute naming the product of a price slot.
const Attr = "data-product-price-for"

var marker = []byte(Attr)

// Loader provides the catalog.
type Loader interface {
	Load(ctx context.Context) []catalog.Product
}

// Apply fills the price slots in doc and returns how many were written.
func Apply(doc *goquery.Document, products []catalog.Product) int {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}
	n := 0
	doc.Find("[" + Attr + "]").Each(func(_ int, el *goquery.Selection) {
		id, _ := el.Attr(Attr)
		p, ok := byID[id]
		if !ok {
			return
		}
		text, ok := pricing.CardPrice(p)
		if !ok {
			return
		}
		el.SetText(text)
		n++
	})
	return n
}

// Populator post-processes rendered pages.
type Populator struct {
	Catalog Loader
}

// Render fills the price slots of an HTML document. Documents without any slot
// are returned as is without touching the catalog.
func (p Populator) Render(ctx context.Context, body []byte) ([]byte, error) {
	if p.Catalog == nil || !bytes.Contains(body, marker) {
		return body, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("populate: parse: %w", err)
	}
	if Apply(doc, p.Catalog.Load(ctx)) == 0 {
		return body, nil
	}
	var buf bytes.Buffer
	buf.Grow(len(body))
	for _, n := range doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("populate: render: %w", err)
		}
	}
	return buf.Bytes(), nil
}
