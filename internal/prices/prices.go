// Package prices reads the per-classification price list and builds the
// price cards.
package prices

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/format"
)

// Table holds the price per square meter of each lot classification.
type Table struct {
	byType map[string]format.Amount
}

// Decode reads the price webhook payload: a single object keyed by
// "tipo_<classification>", or an array whose first element is that object.
// Anything else yields an empty table.
func Decode(raw []byte) Table {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
			return Table{}
		}
		raw = arr[0]
	}
	var obj map[string]format.Amount
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Table{}
	}
	t := Table{byType: make(map[string]format.Amount, len(obj))}
	for k, v := range obj {
		tipo, ok := strings.CutPrefix(strings.TrimSpace(k), "tipo_")
		if !ok || tipo == "" {
			continue
		}
		t.byType[strings.ToUpper(tipo)] = v
	}
	return t
}

// Price returns the amount published for a classification.
func (t Table) Price(tipo string) (format.Amount, bool) {
	a, ok := t.byType[strings.ToUpper(strings.TrimSpace(tipo))]
	return a, ok
}

// Display renders the price of a classification: "$600", text verbatim, or
// "Consultar" when the key is missing, null or zero.
func (t Table) Display(tipo string) string {
	a, ok := t.Price(tipo)
	if !ok || (a.Numeric && a.Value == 0) {
		return format.OnRequest
	}
	return a.Currency()
}

// Len reports how many classifications carry a key.
func (t Table) Len() int { return len(t.byType) }

// Card is one classification in the price grid.
type Card struct {
	Type      string
	Title     string
	SizeRange string
	Detail    string
	Price     string
	Unit      string
	Featured  bool
}

// Lineup describes the static part of each card, in display order.
var Lineup = []Card{
	{Type: "A", SizeRange: "Desde 1500 m²", Detail: "Plusvalía interior, acceso rápido."},
	{Type: "AA", SizeRange: "Desde 1500 m²", Detail: "Cerca de amenidades y áreas verdes.", Featured: true},
	{Type: "AAA", SizeRange: "Desde 1500 m²", Detail: "Vistas panorámicas o esquinas exclusivas."},
}

// Cards merges the table into the lineup.
func Cards(t Table) []Card {
	out := make([]Card, 0, len(Lineup))
	for _, c := range Lineup {
		c.Title = "TIPO " + c.Type
		c.Price = t.Display(c.Type)
		c.Unit = "/" + format.AreaUnit
		out = append(out, c)
	}
	return out
}
