package main

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/cms"
	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
)

// ContentView is an amenity page.
type ContentView struct {
	Lang string
	Page cms.ContentPage
	// Body is the sanitized HTML of the markdown body.
	Body template.HTML
}

// AmenityHandler renders /amenidades/{slug}.
func AmenityHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	slug := chi.URLParam(r, "slug")
	page, err := cmsClient.GetContentPage(r.Context(), "amenidades", slug, lang)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, cms.ErrNotFound) {
			status = http.StatusNotFound
		} else {
			logger.ErrorContext(r.Context(), "amenity page", slog.String("slug", slug), slog.Any("error", err))
		}
		vm := newPage(r, http.StatusText(status), "")
		renderPageStatus(w, r, "notfound", vm, status)
		return
	}

	vm := newPage(r, page.Title, page.Summary)
	if page.BackLink.URL == "" {
		page.BackLink = cms.Link{Label: i18nOrDefault(lang, "content.back", "Volver"), URL: "/"}
	}
	vm.Content = ContentView{
		Lang: lang,
		Page: page,
		// HTML went through the bluemonday policy in cms
		Body: template.HTML(page.HTML),
	}
	renderPage(w, r, "content", vm)
}
