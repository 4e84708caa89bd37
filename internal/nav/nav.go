package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/products"
	Label string
	// Aliases are legacy paths that highlight the same item.
	Aliases []string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", Label: "Home", Aliases: []string{"/index.html"}},
	{Path: "/products", Label: "Products", Aliases: []string{"/products.html", "/product", "/product.html"}},
	{Path: "/clients", Label: "Partners"},
	{Path: "/about", Label: "About"},
	{Path: "/contact", Label: "Contact"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: it.matches(currentPath),
		})
	}
	return items
}

func (it Item) matches(currentPath string) bool {
	if isActive(it.Path, currentPath) {
		return true
	}
	for _, alias := range it.Aliases {
		if currentPath == alias {
			return true
		}
	}
	return false
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/products" or "/products/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Home comes first, known sections use their nav label and deeper segments
// get a prettified label.
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, part := range parts {
		if part == "" {
			continue
		}
		href += "/" + part
		label := titleFromSegment(strings.TrimSuffix(part, ".html"))
		if i == 0 {
			for _, it := range Main {
				if it.matches(href) {
					label = it.Label
					href = it.Path
					break
				}
			}
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: label, Active: i == len(parts)-1})
	}
	return crumbs
}

// Append adds a final active crumb (a product name, for instance) and
// deactivates the previous last entry.
func Append(crumbs []Crumb, label, href string) []Crumb {
	out := make([]Crumb, len(crumbs), len(crumbs)+1)
	copy(out, crumbs)
	for i := range out {
		out[i].Active = false
	}
	return append(out, Crumb{Href: href, Label: label, Active: true})
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
