package main

import (
	"net/http"

	handlersPkg "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/handlers"
	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
)

// newPage builds the shared page model for r.
func newPage(r *http.Request, title, description string) handlersPkg.PageData {
	vm := handlersPkg.NewPage(title, mw.Lang(r), r.URL.Path, mw.CSRFToken(r), site)
	vm.Description = description
	return vm
}
