// Package contact validates contact requests and relays them to the mail
// sending endpoint.
package contact

import (
	"net/mail"
	"strings"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
)

// Alert copy shown after a submission.
const (
	SuccessMessage = "¡Mensaje enviado con éxito! Nos comunicaremos contigo a la brevedad."
	ErrorMessage   = "Ocurrió un error al enviar el mensaje. Por favor, inténtalo de nuevo o llámanos."
)

// Status of the last submission shown with the form.
type Status string

const (
	StatusIdle    Status = ""
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Submission is the JSON body the mail endpoint expects.
type Submission struct {
	Nombre      string `json:"nombre"`
	Email       string `json:"email"`
	Mensaje     string `json:"mensaje"`
	Telefono    string `json:"telefono"`
	LoteInteres string `json:"loteInteres"`
}

// Form holds what the visitor typed plus per-field errors.
type Form struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	LoteInteres string
	Errors      map[string]string
}

// FormFromValues reads the posted form fields.
func FormFromValues(get func(string) string) Form {
	return Form{
		Name:        strings.TrimSpace(get("name")),
		Email:       strings.TrimSpace(get("email")),
		Phone:       strings.TrimSpace(get("phone")),
		Message:     strings.TrimSpace(get("message")),
		LoteInteres: strings.TrimSpace(get("loteInteres")),
	}
}

// Validate checks the required fields and fills Errors.
func (f *Form) Validate() bool {
	f.Errors = map[string]string{}
	if f.Name == "" {
		f.Errors["name"] = "Escribe tu nombre completo."
	}
	if f.Email == "" {
		f.Errors["email"] = "Escribe tu correo electrónico."
	} else if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
		f.Errors["email"] = "El correo electrónico no es válido."
	}
	return len(f.Errors) == 0
}

// Submission maps the form onto the endpoint's field names.
func (f Form) Submission() Submission {
	return Submission{
		Nombre:      f.Name,
		Email:       f.Email,
		Mensaje:     f.Message,
		Telefono:    f.Phone,
		LoteInteres: f.LoteInteres,
	}
}

// Option is one entry of the lot-of-interest select.
type Option struct {
	Value string
	Label string
}

// LotOptions lists the lots that can still be asked about.
func LotOptions(reg *lots.Registry) []Option {
	available := reg.Available()
	out := make([]Option, 0, len(available))
	for _, rec := range available {
		label := "Lote " + rec.ID
		if strings.HasPrefix(lots.Key(rec.ID), "lote") {
			label = rec.ID
		}
		if estado := strings.TrimSpace(rec.Estado); estado != "" {
			label += " - " + estado
		}
		out = append(out, Option{Value: rec.ID, Label: label})
	}
	return out
}
