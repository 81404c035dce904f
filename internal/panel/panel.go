// Package panel derives what the lot detail panel shows for a record.
package panel

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/format"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/links"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
)

const (
	// WhatsAppNumber receives quote requests.
	WhatsAppNumber = "528123852034"
	// ContactPath is where reserved lots send visitors without their own link.
	ContactPath = "/contacto"

	LabelQuote       = "COTIZAR"
	LabelNotifyMe    = "Contactarme si se libera"
	LabelChooseOther = "Ver otro lote"

	headingSelected = "TU LOTE SELECCIONADO"
	headingInfo     = "INFORMACIÓN"
	titleFallback   = "Lote Seleccionado"
	titleLoading    = "Cargando..."
	statusUnknown   = "ESTADO DESCONOCIDO"
	areaMissing     = format.AreaUnit + " no disponible"
)

// Placeholder is displayed while no lot is hovered or selected.
var Placeholder = lots.Record{
	Titulo: "PASA EL CURSOR POR EL MAPA",
	Estado: lots.StatusNone,
	Tipo:   "Tipo",
	Nota:   "Da click en el lote para seleccionar",
}

// Action is the call to action under the lot details. A disabled action has
// no destination.
type Action struct {
	Label    string
	Href     string
	Target   string
	Disabled bool
}

// View is the rendered state of the panel.
type View struct {
	Heading     string
	Title       string
	Initial     bool
	Selected    bool
	Loading     bool
	Status      string
	StatusColor string
	Tipo        string
	Area        string
	Price       string
	Note        string
	Action      Action
}

// Build renders rec, or the placeholder when rec is nil.
func Build(rec *lots.Record, selected bool) View {
	initial := rec == nil
	if initial {
		p := Placeholder
		rec = &p
		selected = false
	}

	v := View{
		Heading:     headingInfo,
		Title:       Title(*rec),
		Initial:     initial,
		Selected:    selected,
		Status:      StatusLabel(rec.Estado),
		StatusColor: lots.StatusColor(rec.Estado),
		Tipo:        strings.TrimSpace(rec.Tipo),
		Area:        Area(rec.SuperficieM2),
		Price:       rec.CostoM2.Currency(),
		Note:        strings.TrimSpace(rec.Nota),
	}
	if selected {
		v.Heading = headingSelected
	}
	if !initial {
		v.Action = CallToAction(*rec)
	}
	return v
}

// Loading is shown before the map data has arrived.
func Loading() View {
	v := Build(nil, false)
	v.Loading = true
	v.Title = titleLoading
	return v
}

// Title returns the display title: the record's own title, the lot id, or a
// generic label.
func Title(rec lots.Record) string {
	if t := strings.TrimSpace(rec.Titulo); t != "" {
		return t
	}
	id := strings.TrimSpace(rec.ID)
	switch {
	case id == "":
		return titleFallback
	case strings.HasPrefix(lots.Key(id), "lote"):
		return id
	default:
		return "Lote " + id
	}
}

// StatusLabel upper-cases a status for display.
func StatusLabel(estado string) string {
	s := strings.TrimSpace(estado)
	if s == "" {
		return statusUnknown
	}
	return cases.Upper(language.Spanish).String(s)
}

// Area formats a surface, "1,500 m²", or reports it as unavailable.
func Area(a format.Amount) string {
	if !a.Numeric || a.Value == 0 {
		return areaMissing
	}
	return format.Area(a.Value)
}

// Disabled reports whether a lot cannot be quoted: sold, blocked, or without a
// published price (common areas). A zero price counts as unpublished.
func Disabled(rec lots.Record) bool {
	switch rec.Status() {
	case lots.StatusSold, lots.StatusBlocked:
		return true
	}
	return rec.CostoM2.Unpublished() || (rec.CostoM2.Numeric && rec.CostoM2.Value == 0)
}

// CallToAction derives the quote button for a lot.
func CallToAction(rec lots.Record) Action {
	reserved := rec.Status() == lots.StatusReserved
	label := LabelQuote
	if reserved {
		label = LabelNotifyMe
	}
	if Disabled(rec) {
		return Action{Label: label, Disabled: true}
	}
	if reserved {
		href := strings.TrimSpace(rec.Link)
		if href == "" {
			href = ContactPath
		}
		return Action{Label: label, Href: href, Target: "_self"}
	}
	return Action{Label: label, Href: links.WhatsApp(WhatsAppNumber, QuoteMessage(rec)), Target: "_blank"}
}

// QuoteMessage is the text pre-filled in the WhatsApp chat.
func QuoteMessage(rec lots.Record) string {
	return fmt.Sprintf("Hola, me interesa el %s, con superficie de %s y costo de %s. Estado: %s.",
		Title(rec), Area(rec.SuperficieM2), rec.CostoM2.Currency(), StatusLabel(rec.Estado))
}
