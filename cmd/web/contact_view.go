package main

import (
	"github.com/google/uuid"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/cms"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/contact"
	handlersPkg "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/handlers"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
)

// ContactView is the contact form plus the outcome of the last submission.
type ContactView struct {
	Lang      string
	CSRFToken string
	// IdempotencyKey is rendered into the form so a double submit is sent
	// with the same key.
	IdempotencyKey string
	Form           contact.Form
	Status         contact.Status
	Alert          string
	Options        []contact.Option
}

// ContactPageView is /contacto: office details, value list and the form.
type ContactPageView struct {
	Office            handlersPkg.Layout
	ValuePropositions []string
	Social            []cms.Link
	Form              ContactView
}

func newContactView(lang, csrf string, reg *lots.Registry) ContactView {
	return ContactView{
		Lang:           lang,
		CSRFToken:      csrf,
		IdempotencyKey: uuid.NewString(),
		Options:        contact.LotOptions(reg),
	}
}

// withOutcome keeps the typed fields after a failure and clears them after a
// success.
func (v ContactView) withOutcome(form contact.Form, status contact.Status) ContactView {
	v.Status = status
	switch status {
	case contact.StatusSuccess:
		v.Form = contact.Form{}
		v.Alert = contact.SuccessMessage
	case contact.StatusError:
		v.Form = form
		v.Alert = contact.ErrorMessage
	default:
		v.Form = form
	}
	return v
}
