package main

import (
	"net/http"

	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
)

// PricesHandler renders /precios.
func PricesHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm := newPage(r, i18nOrDefault(lang, "nav.prices", "Precios"), site.PriceGrid.Tagline)
	vm.Prices = PricesView{
		Lang:      lang,
		Stages:    site.Stages,
		Financing: site.Financing,
		Grid:      buildPriceGrid(r.Context(), lang),
		Map:       deferredMapView(lang),
	}
	renderPage(w, r, "precios", vm)
}

func i18nOrDefault(lang, key, fallback string) string {
	if i18nBundle == nil {
		return fallback
	}
	if v := i18nBundle.T(lang, key); v != key {
		return v
	}
	return fallback
}
