package handlers

import (
	"time"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/cms"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/nav"
)

// PageData is the view model every page passes to the shared layout.
type PageData struct {
	Title       string
	Description string
	Lang        string
	CSRFToken   string

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Layout      Layout
	Year        int

	// Optional per-page view model payloads
	Home    any
	Map     any
	Prices  any
	Contact any
	Content any
}

// NewPage fills the layout fields shared by all pages.
func NewPage(title, lang, path, csrf string, site cms.Site) PageData {
	if path == "" {
		path = "/"
	}
	if title == "" {
		title = site.Company
	} else if site.Company != "" {
		title = title + " | " + site.Company
	}
	return PageData{
		Title:       title,
		Lang:        lang,
		CSRFToken:   csrf,
		Path:        path,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
		Layout:      BuildLayout(site),
		Year:        time.Now().Year(),
	}
}
