package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/contact"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
)

const maxContactBody = 64 << 10

// currentRegistry is the lot list of the latest generation, possibly empty.
func currentRegistry(r *http.Request) *lots.Registry {
	if mapService == nil {
		return lots.NewRegistry(nil)
	}
	if gen := mapService.Ensure(r.Context()); gen != nil {
		return gen.Registry
	}
	return lots.NewRegistry(nil)
}

// currentRegistryIfLoaded never triggers a fetch.
func currentRegistryIfLoaded() *lots.Registry {
	if mapService != nil {
		if gen := mapService.Current(); gen != nil {
			return gen.Registry
		}
	}
	return lots.NewRegistry(nil)
}

// ContactHandler renders /contacto.
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	form := newContactView(lang, mw.CSRFToken(r), currentRegistry(r))
	// ?lote= preselects the lot, as the panel's reserved-lot action links here
	form.Form.LoteInteres = r.URL.Query().Get("lote")
	renderContactPage(w, r, form, http.StatusOK)
}

func renderContactPage(w http.ResponseWriter, r *http.Request, form ContactView, status int) {
	lang := mw.Lang(r)
	vm := newPage(r, i18nOrDefault(lang, "contact.title", "Contáctanos"), i18nOrDefault(lang, "contact.subtitle", ""))
	vm.Contact = ContactPageView{
		Office:            vm.Layout,
		ValuePropositions: site.ValuePropositions,
		Social:            site.Social,
		Form:              form,
	}
	renderPageStatus(w, r, "contacto", vm, status)
}

// ContactSubmitHandler validates and relays the form. htmx gets the form
// fragment back (always 200 so it swaps); plain posts get the whole page.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	lang := mw.Lang(r)
	form := contact.FormFromValues(r.PostForm.Get)
	view := newContactView(lang, mw.CSRFToken(r), currentRegistry(r))

	status := http.StatusOK
	if !form.Validate() {
		view = view.withOutcome(form, contact.StatusIdle)
		status = http.StatusUnprocessableEntity
	} else if err := contactClient.Send(r.Context(), form.Submission(), r.PostForm.Get("idempotency_key")); err != nil {
		logger.WarnContext(r.Context(), "contact submission failed", slog.Any("error", err))
		view = view.withOutcome(form, contact.StatusError)
		// a retry of the same message keeps its key
		if key := r.PostForm.Get("idempotency_key"); key != "" {
			view.IdempotencyKey = key
		}
		status = http.StatusBadGateway
	} else {
		view = view.withOutcome(form, contact.StatusSuccess)
	}

	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, "frag_contact_form", view)
		return
	}
	renderContactPage(w, r, view, status)
}

// APIContactHandler accepts the JSON submission used by external landing
// pages.
func APIContactHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxContactBody))
	if err != nil {
		mw.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}
	sub, err := contact.DecodeSubmission(body)
	if err != nil {
		mw.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := contactClient.Send(r.Context(), sub, r.Header.Get("Idempotency-Key")); err != nil {
		logger.WarnContext(r.Context(), "contact api submission failed", slog.Any("error", err))
		code := http.StatusInternalServerError
		if errors.Is(err, contact.ErrSubmitFailed) {
			code = http.StatusBadGateway
		}
		mw.WriteJSON(w, code, map[string]string{"error": contact.ErrorMessage})
		return
	}
	mw.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "message": contact.SuccessMessage})
}
