package main

import (
	"net/http"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/cms"
	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
)

// HomeView is the landing page.
type HomeView struct {
	Lang      string
	Slides    []cms.HeroSlide
	Financing cms.Financing
	Grid      PriceGridView
	Map       MapView
	Amenities []cms.Amenity
	Contact   ContactView
}

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm := newPage(r, "", i18nOrDefault(lang, "site.tagline", ""))
	// the map section loads itself, so the contact select only sees lots
	// once a generation exists
	reg := currentRegistryIfLoaded()
	vm.Home = HomeView{
		Lang:      lang,
		Slides:    site.HeroSlides,
		Financing: site.Financing,
		Grid:      buildPriceGrid(r.Context(), lang),
		Map:       deferredMapView(lang),
		Amenities: site.Amenities,
		Contact:   newContactView(lang, mw.CSRFToken(r), reg),
	}
	renderPage(w, r, "home", vm)
}
