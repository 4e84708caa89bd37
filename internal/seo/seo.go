// Package seo builds page metadata and schema.org payloads.
package seo

import "strings"

// Canonical joins baseURL and a request path and query. It returns "" when no
// base URL is configured, in which case templates omit the link.
func Canonical(baseURL, requestURI string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}
	if requestURI == "" || requestURI[0] != '/' {
		requestURI = "/" + requestURI
	}
	return baseURL + requestURI
}

// Title composes "<page> | <site>", collapsing to the site name when page is empty.
func Title(page, site string) string {
	page = strings.TrimSpace(page)
	if page == "" || page == site {
		return site
	}
	return page + " | " + site
}
