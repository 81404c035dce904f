package handlers

import (
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/cms"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/links"
)

// Layout carries the header and footer data derived from the site copy.
type Layout struct {
	Company  string
	Address  string
	Phone    string
	Email    string
	Brochure string
	Social   []cms.Link

	MapsHref     string
	PhoneHref    string
	EmailHref    string
	WhatsAppHref string
}

// BuildLayout derives the outbound office links.
func BuildLayout(site cms.Site) Layout {
	l := Layout{
		Company:  site.Company,
		Address:  site.Office.Address,
		Phone:    site.Office.Phone,
		Email:    site.Office.Email,
		Brochure: site.Brochure,
		Social:   site.Social,
	}
	if l.Address != "" {
		l.MapsHref = links.MapsSearch(l.Address)
	}
	if l.Phone != "" {
		l.PhoneHref = links.Tel(l.Phone)
	}
	if l.Email != "" {
		l.EmailHref = links.Mailto(l.Email)
	}
	if site.Office.WhatsApp != "" {
		l.WhatsAppHref = links.WhatsApp(site.Office.WhatsApp, "Hola, me gustaría recibir información de Granados del Mediterráneo.")
	}
	return l
}
