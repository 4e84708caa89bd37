package seo

import (
	"encoding/json"
	"strings"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns an Organization schema with optional contact details.
func Organization(name, url, phone, email string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if phone != "" || email != "" {
		cp := map[string]any{"@type": "ContactPoint", "contactType": "sales"}
		if phone != "" {
			cp["telephone"] = "+91-" + phone
		}
		if email != "" {
			cp["email"] = email
		}
		m["contactPoint"] = cp
	}
	return m
}

// BreadcrumbItem is one trail entry. URL should be absolute; the current
// page may leave it empty.
type BreadcrumbItem struct {
	Name string
	URL  string
}

// BreadcrumbList returns a BreadcrumbList schema, or nil for a trail shorter
// than two entries.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	if len(items) < 2 {
		return nil
	}
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		li := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		if it.URL != "" {
			li["item"] = it.URL
		}
		el = append(el, li)
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ProductInfo is the subset of a catalog entry described in Product markup.
type ProductInfo struct {
	Name        string
	Description string
	URL         string
	Image       string
	SKU         string
	Brand       string
	Category    string
	// LowPrice and HighPrice are plain decimal strings ("2000"); both empty
	// means the product is sold on quotation and no Offer is emitted.
	LowPrice  string
	HighPrice string
	Offers    int
}

// Product returns a Product schema payload with an INR Offer or AggregateOffer.
func Product(p ProductInfo) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        p.Name,
		"description": p.Description,
	}
	if p.URL != "" {
		m["url"] = p.URL
	}
	if p.Image != "" {
		m["image"] = p.Image
	}
	if p.SKU != "" {
		m["sku"] = p.SKU
	}
	if p.Brand != "" {
		m["brand"] = map[string]any{"@type": "Brand", "name": p.Brand}
	}
	if p.Category != "" {
		m["category"] = p.Category
	}
	low, high := strings.TrimSpace(p.LowPrice), strings.TrimSpace(p.HighPrice)
	switch {
	case low == "":
	case high == "" || high == low:
		m["offers"] = map[string]any{
			"@type":         "Offer",
			"priceCurrency": "INR",
			"price":         low,
			"availability":  "https://schema.org/InStock",
			"url":           p.URL,
		}
	default:
		offer := map[string]any{
			"@type":         "AggregateOffer",
			"priceCurrency": "INR",
			"lowPrice":      low,
			"highPrice":     high,
		}
		if p.Offers > 0 {
			offer["offerCount"] = p.Offers
		}
		m["offers"] = offer
	}
	return m
}
