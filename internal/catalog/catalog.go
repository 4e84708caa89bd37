package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a product id is not present in the catalog.
var ErrNotFound = errors.New("catalog: product not found")

// Product is a catalog entry. Loaded products are shared between requests and
// must be treated as read-only.
type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	Brand            string   `json:"brand"`
	Supplier         string   `json:"supplier"`
	Category         string   `json:"category"`
	Image            string   `json:"image"`
	Uses             []string `json:"uses"`

	Overview          []string `json:"overview,omitempty"`
	Ingredients       []string `json:"ingredients,omitempty"`
	Company           []string `json:"company,omitempty"`
	Indications       []string `json:"indications,omitempty"`
	HowItWorks        []string `json:"howItWorks,omitempty"`
	Benefits          []string `json:"benefits,omitempty"`
	Contraindications []string `json:"contraindications,omitempty"`
	Usage             []string `json:"usage,omitempty"`
	UsedIn            []string `json:"usedIn,omitempty"`

	Variants []Variant `json:"variants"`
}

// Variant is a purchasable size or pack of a product.
// Amounts are only set when the data file carries a JSON number for them.
type Variant struct {
	ID         string
	Label      string
	Price      decimal.NullDecimal
	MRP        decimal.NullDecimal
	OfferPrice decimal.NullDecimal
}

// Variant returns the variant with the given id.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// DefaultVariant returns the first variant, which is the initial selection on every render.
func (p Product) DefaultVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	return p.Variants[0], true
}

type variantPayload struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Price      json.RawMessage `json:"price,omitempty"`
	MRP        json.RawMessage `json:"mrp,omitempty"`
	OfferPrice json.RawMessage `json:"offerPrice,omitempty"`
}

// UnmarshalJSON decodes a variant, ignoring pricing fields that are not JSON numbers.
func (v *Variant) UnmarshalJSON(b []byte) error {
	var raw variantPayload
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*v = Variant{
		ID:         strings.TrimSpace(raw.ID),
		Label:      strings.TrimSpace(raw.Label),
		Price:      amount(raw.Price),
		MRP:        amount(raw.MRP),
		OfferPrice: amount(raw.OfferPrice),
	}
	return nil
}

// MarshalJSON writes the variant back in the data file shape.
func (v Variant) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":    v.ID,
		"label": v.Label,
	}
	if v.Price.Valid {
		out["price"] = json.Number(v.Price.Decimal.String())
	}
	if v.MRP.Valid {
		out["mrp"] = json.Number(v.MRP.Decimal.String())
	}
	if v.OfferPrice.Valid {
		out["offerPrice"] = json.Number(v.OfferPrice.Decimal.String())
	}
	return json.Marshal(out)
}

func amount(raw json.RawMessage) decimal.NullDecimal {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return decimal.NullDecimal{}
	}
	switch s[0] {
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
	default:
		// strings, null, booleans and objects are not amounts
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

type document struct {
	Products []Product `json:"products"`
}

// Decode parses a `{ "products": [...] }` document.
func Decode(r io.Reader) ([]Product, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if doc.Products == nil {
		doc.Products = []Product{}
	}
	return doc.Products, nil
}

// Find returns the first product whose id equals id.
func Find(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Validate checks the identifier invariants of a catalog: product ids are
// non-empty and unique, variant ids are non-empty and unique within their product.
func Validate(products []Product) error {
	var errs []error
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			errs = append(errs, fmt.Errorf("product #%d: empty id", i))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product %q: duplicate id", p.ID))
		}
		seen[p.ID] = struct{}{}
		variants := make(map[string]struct{}, len(p.Variants))
		for j, v := range p.Variants {
			if v.ID == "" {
				errs = append(errs, fmt.Errorf("product %q variant #%d: empty id", p.ID, j))
				continue
			}
			if _, dup := variants[v.ID]; dup {
				errs = append(errs, fmt.Errorf("product %q variant %q: duplicate id", p.ID, v.ID))
			}
			variants[v.ID] = struct{}{}
		}
	}
	return errors.Join(errs...)
}
