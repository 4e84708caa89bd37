package handlers

import (
	"shreekara.in/catalog-web/internal/config"
	"shreekara.in/catalog-web/internal/nav"
)

// Site is the brand block shared by the header and footer.
type Site struct {
	Name    string
	BaseURL string
	Phone   string
	Email   string
	GSTIN   string
	City    string
}

// SiteFromConfig copies brand details out of cfg.
func SiteFromConfig(cfg config.SiteConfig) Site {
	return Site{
		Name:    cfg.Name,
		BaseURL: cfg.BaseURL,
		Phone:   cfg.Phone,
		Email:   cfg.Email,
		GSTIN:   cfg.GSTIN,
		City:    cfg.City,
	}
}

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Page      string // content template name, e.g. "product"
	SEO       SEOData
	Analytics Analytics
	Site      Site

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	CartCount int
	CSRFToken string
	// CatalogError is set when the product data could not be loaded.
	CatalogError string

	// Optional per-page view model payloads
	Home     any
	Products any
	Product  any
	Content  any
	Contact  any
}
