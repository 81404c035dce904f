package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/precios"
	LabelKey string // i18n key, e.g. "nav.prices"
	// Section is the path prefix that marks the item active; defaults to Path.
	Section string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home"},
	{Path: "/precios", LabelKey: "nav.prices"},
	{Path: "/amenidades/casa-club", LabelKey: "nav.amenities", Section: "/amenidades"},
	{Path: "/contacto", LabelKey: "nav.contact"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.section(), currentPath),
		})
	}
	return items
}

func (it Item) section() string {
	if it.Section != "" {
		return it.Section
	}
	return it.Path
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path: Home, then the
// matching top-level section, then one crumb per deeper segment.
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return crumbs
	}

	top := "/" + parts[0]
	href, labelKey := top, ""
	for _, it := range Main {
		if it.section() == top {
			href, labelKey = it.Path, it.LabelKey
			break
		}
	}
	crumbs = append(crumbs, Crumb{Href: href, LabelKey: labelKey, Label: titleFromSegment(parts[0]), Active: len(parts) == 1})

	next := top
	for i := 1; i < len(parts); i++ {
		next += "/" + parts[i]
		crumbs = append(crumbs, Crumb{
			Href:   next,
			Label:  titleFromSegment(parts[i]),
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

// titleFromSegment turns "casa-club" into "Casa club".
func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
