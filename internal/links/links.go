// Package links builds the outbound URLs used across the site.
package links

import (
	"net/url"
	"strings"
	"unicode"
)

const (
	mapsSearchBase = "https://www.google.com/maps/search/?api=1&query="
	whatsAppBase   = "https://wa.me/"
)

// Component escapes s the way a URI component is escaped in the browser:
// spaces become %20, never "+".
func Component(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// MapsSearch links to a maps search for a postal address.
func MapsSearch(address string) string {
	return mapsSearchBase + Component(strings.TrimSpace(address))
}

// WhatsApp opens a chat with number, pre-filled with message when non-empty.
// Anything but digits is stripped from the number.
func WhatsApp(number, message string) string {
	link := whatsAppBase + digits(number)
	if message == "" {
		return link + "?text="
	}
	return link + "?text=" + Component(message)
}

// Tel builds a tel: link, dropping whitespace.
func Tel(phone string) string {
	return "tel:" + strings.Join(strings.Fields(phone), "")
}

// Mailto builds a mailto: link.
func Mailto(email string) string {
	return "mailto:" + strings.TrimSpace(email)
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
