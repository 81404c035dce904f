package lots

import (
	"regexp"
	"strings"
)

// FallbackColor paints lots with no record or an unknown status.
const FallbackColor = "#d1e7dd"

// SelectedColor is the fill of the lot under a sticky selection.
const SelectedColor = "#1e3a8a"

// StatusColors maps a status to its resting fill.
var StatusColors = map[string]string{
	StatusAvailable: "#66bb6a",
	StatusReserved:  "#fde68a",
	StatusSold:      "#ef5350",
	StatusBlocked:   "#e5e7eb",
	StatusNone:      "#e5e7eb",
}

// ColorPresets are the named overrides accepted in the "color" column.
var ColorPresets = map[string]string{
	"verde":    "#66bb6a",
	"amarillo": "#fde68a",
	"rojo":     "#ef5350",
	"gris":     "#e5e7eb",
}

// TypeColors distinguishes the classifications of available lots.
var TypeColors = map[string]string{
	"A":   "#a5d6a7",
	"AA":  "#66bb6a",
	"AAA": "#2e7d32",
}

var (
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor = regexp.MustCompile(`(?i)^(?:rgba?|hsla?)\([0-9a-z.,%\s/+-]*\)$`)
)

// PickColor resolves the resting fill of a lot. The first matching rule wins:
// explicit literal, named preset, classification of an available lot, generic
// available, then the status table.
func PickColor(rec *Record) string {
	if rec == nil {
		return FallbackColor
	}
	if c := strings.TrimSpace(rec.Color); c != "" {
		if IsColorLiteral(c) {
			return c
		}
		if preset, ok := ColorPresets[strings.ToLower(c)]; ok {
			return preset
		}
	}
	status := rec.Status()
	if status == StatusAvailable {
		if c, ok := TypeColors[Classification(rec.Tipo)]; ok {
			return c
		}
		return StatusColors[StatusAvailable]
	}
	if c, ok := StatusColors[status]; ok {
		return c
	}
	return FallbackColor
}

// StatusColor resolves the colour of a bare status label.
func StatusColor(status string) string {
	return PickColor(&Record{Estado: status})
}

// IsColorLiteral reports a hex, rgb(a) or hsl(a) colour literal.
func IsColorLiteral(s string) bool {
	return hexColor.MatchString(s) || funcColor.MatchString(s)
}

// Classification normalizes a lot type such as "aa" or "Tipo AA" to "AA".
// Unknown types come back upper-cased and untouched otherwise.
func Classification(tipo string) string {
	t := strings.ToUpper(strings.TrimSpace(tipo))
	t = strings.TrimSpace(strings.TrimPrefix(t, "TIPO"))
	return t
}
