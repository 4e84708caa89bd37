package main

import (
	"html/template"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"shreekara.in/catalog-web/internal/catalog"
	"shreekara.in/catalog-web/internal/content"
	"shreekara.in/catalog-web/internal/format"
	"shreekara.in/catalog-web/internal/pricing"
	"shreekara.in/catalog-web/internal/seo"
)

// ProductState is the outcome of resolving the detail page query.
type ProductState int

const (
	// ProductMissing means no id was supplied.
	ProductMissing ProductState = iota
	// ProductNotFound means the id is not in the catalog.
	ProductNotFound
	// ProductFound means the product renders in full.
	ProductFound
)

// ProductView aggregates all data needed for the detail page and its fragments.
type ProductView struct {
	State   ProductState
	Title   string
	Message string

	Product     catalog.Product
	Gallery     []GalleryImage
	Variants    []VariantOption
	Pricing     PricingView
	Purchasable bool
	Sections    []SectionView
	QuoteURL    string
}

// Found reports whether the product block renders.
func (v ProductView) Found() bool { return v.State == ProductFound }

// GalleryImage is one gallery thumbnail.
type GalleryImage struct {
	Src    string
	Alt    string
	Active bool
}

// VariantOption is one variant button or select option.
type VariantOption struct {
	ID       string
	Label    string
	Selected bool
	// Href is the no-script fallback link selecting this variant.
	Href string
	// PricingURL fetches the pricing fragment for this variant.
	PricingURL string
	// Price is the formatted display amount, empty for quote-only variants.
	Price string
}

// PricingView is the pricing and call-to-action block. It is rendered on the
// page and again as a fragment whenever the selection changes.
type PricingView struct {
	Quote       pricing.Quote
	ProductName string
	Purchasable bool
	CSRFToken   string
	Quantity    int
	// Variants carries the button row, so the swap also moves the highlight.
	Variants []VariantOption
}

// Purchase reports whether the selected variant can go to the cart.
func (p PricingView) Purchase() bool {
	return p.Purchasable && p.Quote.Action == pricing.ActionPurchase
}

// SectionView is one collapsible panel of the detail page.
type SectionView struct {
	Key   string
	Title string
	Intro string
	Items []template.HTML
	Facts []Fact
	Open  bool
	// ToggleHref reloads the page with this panel flipped and every other
	// panel left as it is.
	ToggleHref string
}

// Fact is a label/value row in the details panel.
type Fact struct {
	Label string
	Value string
}

type sectionDef struct {
	key   string
	title string
	items func(catalog.Product) []string
}

// sectionDefs lists the optional panels in display order. The details panel
// always comes first and is not listed here.
var sectionDefs = []sectionDef{
	{"ingredients", "Ingredients", func(p catalog.Product) []string { return p.Ingredients }},
	{"company", "Company", func(p catalog.Product) []string { return p.Company }},
	{"indications", "Indications", func(p catalog.Product) []string { return p.Indications }},
	{"how-it-works", "How It Works", func(p catalog.Product) []string { return p.HowItWorks }},
	{"benefits", "Benefits", func(p catalog.Product) []string { return p.Benefits }},
	{"contraindications", "Contraindications", func(p catalog.Product) []string { return p.Contraindications }},
	{"usage", "How to Use", func(p catalog.Product) []string { return p.Usage }},
	{"used-in", "Used In", func(p catalog.Product) []string { return p.UsedIn }},
}

const detailsSection = "details"

var sectionOrder = func() map[string]int {
	m := map[string]int{detailsSection: 0}
	for i, d := range sectionDefs {
		m[d.key] = i + 1
	}
	return m
}()

// ToggleSection returns the open-panel set with key flipped. The result is
// deduplicated and kept in display order so that flipping the same key twice
// yields the input set again. Unknown keys are dropped.
func ToggleSection(open []string, key string) []string {
	seen := map[string]bool{}
	for _, k := range open {
		if _, ok := sectionOrder[k]; ok {
			seen[k] = true
		}
	}
	if _, ok := sectionOrder[key]; ok {
		seen[key] = !seen[key]
	}
	out := make([]string, 0, len(seen))
	for _, k := range orderedSectionKeys() {
		if seen[k] {
			out = append(out, k)
		}
	}
	return out
}

func orderedSectionKeys() []string {
	keys := make([]string, 0, len(sectionDefs)+1)
	keys = append(keys, detailsSection)
	for _, d := range sectionDefs {
		keys = append(keys, d.key)
	}
	return keys
}

// parseOpen reads the comma separated "open" query parameter.
func parseOpen(q url.Values) []string {
	var keys []string
	for _, raw := range q["open"] {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return ToggleSection(keys, "")
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]`)

// GallerySlug derives the image name prefix from a product id.
func GallerySlug(id string) string {
	return slugPattern.ReplaceAllString(strings.ToLower(id), "-")
}

func buildGallery(p catalog.Product) []GalleryImage {
	images := []GalleryImage{{Src: p.Image, Alt: p.Name + " - View 1", Active: true}}
	slug := GallerySlug(p.ID)
	for i := 1; i <= 3; i++ {
		images = append(images, GalleryImage{
			Src: "/assets/images/" + slug + "_gallery_0" + strconv.Itoa(i) + ".jpg",
			Alt: p.Name + " - View " + strconv.Itoa(i+1),
		})
	}
	return images
}

func productHref(id, variantID string, open []string) string {
	q := url.Values{}
	q.Set("id", id)
	if variantID != "" {
		q.Set("variant", variantID)
	}
	if len(open) > 0 {
		q.Set("open", strings.Join(open, ","))
	}
	return "/product?" + q.Encode()
}

// pricingHref is the fragment URL for one variant. The open accordion set is
// added client side from the live page.
func pricingHref(id, variantID string) string {
	return "/products/" + url.PathEscape(id) + "/pricing?" + url.Values{"variant": {variantID}}.Encode()
}

func buildVariantOptions(p catalog.Product, selected string, open []string) []VariantOption {
	out := make([]VariantOption, 0, len(p.Variants))
	for _, v := range p.Variants {
		opt := VariantOption{
			ID:         v.ID,
			Label:      v.Label,
			Selected:   v.ID == selected,
			Href:       productHref(p.ID, v.ID, open),
			PricingURL: pricingHref(p.ID, v.ID),
		}
		if amt, ok := pricing.DisplayAmount(v); ok {
			opt.Price = format.INR(amt)
		}
		out = append(out, opt)
	}
	return out
}

func buildSections(p catalog.Product, selected string, open []string) []SectionView {
	isOpen := map[string]bool{}
	for _, k := range open {
		isOpen[k] = true
	}
	details := SectionView{
		Key:   detailsSection,
		Title: "Product Details",
		Intro: p.ShortDescription,
		Facts: []Fact{
			{Label: "Brand", Value: p.Brand},
			{Label: "Supplier", Value: p.Supplier},
			{Label: "Category", Value: p.Category},
		},
	}
	for _, line := range p.Overview {
		details.Items = append(details.Items, content.Inline(line))
	}
	sections := []SectionView{details}
	for _, d := range sectionDefs {
		items := d.items(p)
		if len(items) == 0 {
			continue
		}
		sec := SectionView{Key: d.key, Title: d.title}
		for _, line := range items {
			sec.Items = append(sec.Items, content.Inline(line))
		}
		sections = append(sections, sec)
	}
	for i := range sections {
		sections[i].Open = isOpen[sections[i].Key]
		sections[i].ToggleHref = productHref(p.ID, selected, ToggleSection(open, sections[i].Key)) + "#section-" + sections[i].Key
	}
	return sections
}

// buildPricingView resolves the pricing block for one selection.
func buildPricingView(p catalog.Product, variantID string, open []string, csrf string) (PricingView, bool) {
	q, ok := pricing.Resolve(p, variantID)
	if !ok {
		return PricingView{}, false
	}
	return PricingView{
		Quote:       q,
		ProductName: p.Name,
		Purchasable: pricing.Purchasable(p),
		CSRFToken:   csrf,
		Quantity:    1,
		Variants:    buildVariantOptions(p, q.VariantID, open),
	}, true
}

// buildProductView is the detail page state machine. Pricing is only resolved
// when the product is found.
func buildProductView(products []catalog.Product, q url.Values, csrf string) ProductView {
	id := strings.TrimSpace(q.Get("id"))
	if id == "" {
		return ProductView{
			State:   ProductMissing,
			Title:   "No product specified",
			Message: "Choose a product from our catalog to see its details.",
		}
	}
	p, ok := catalog.Find(products, id)
	if !ok {
		return ProductView{
			State:   ProductNotFound,
			Title:   "Product not found",
			Message: "The product you are looking for is not in our catalog.",
		}
	}

	open := parseOpen(q)
	view := ProductView{
		State:       ProductFound,
		Title:       p.Name,
		Product:     p,
		Gallery:     buildGallery(p),
		Purchasable: pricing.Purchasable(p),
		QuoteURL:    pricing.QuoteURL(p.ID),
	}
	selected := ""
	if pv, ok := buildPricingView(p, q.Get("variant"), open, csrf); ok {
		view.Pricing = pv
		view.Variants = pv.Variants
		selected = pv.Quote.VariantID
	} else {
		view.Pricing = PricingView{
			Quote:       pricing.Quote{ProductID: p.ID, Action: pricing.ActionQuote, QuoteURL: view.QuoteURL},
			ProductName: p.Name,
			CSRFToken:   csrf,
			Quantity:    1,
		}
	}
	view.Sections = buildSections(p, selected, open)
	return view
}

// productJSONLD describes p for search engines.
func productJSONLD(p catalog.Product, pageURL string) map[string]any {
	info := seo.ProductInfo{
		Name:        p.Name,
		Description: p.ShortDescription,
		URL:         pageURL,
		Image:       p.Image,
		SKU:         p.ID,
		Brand:       p.Brand,
		Category:    p.Category,
	}
	if min, max, ok := pricing.CardRange(p); ok {
		info.LowPrice = min.String()
		info.HighPrice = max.String()
		info.Offers = len(p.Variants)
	}
	return seo.Product(info)
}
