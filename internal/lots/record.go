package lots

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/format"
)

// Lot statuses published by the webhook.
const (
	StatusAvailable = "disponible"
	StatusReserved  = "reservado"
	StatusSold      = "vendido"
	StatusBlocked   = "bloqueado"
	StatusNone      = "n/a"
)

// Record is one row of the lot webhook.
type Record struct {
	ID           string        `json:"id"`
	Titulo       string        `json:"titulo,omitempty"`
	Estado       string        `json:"estado"`
	Tipo         string        `json:"tipo"`
	SuperficieM2 format.Amount `json:"superficie_m2"`
	CostoM2      format.Amount `json:"costo_m2"`
	Color        string        `json:"color,omitempty"`
	Nota         string        `json:"nota,omitempty"`
	Link         string        `json:"link,omitempty"`
}

// rawRecord accepts both "id" and "Id" and loosely typed scalar fields.
type rawRecord struct {
	ID           looseString   `json:"id"`
	AltID        looseString   `json:"Id"`
	Titulo       looseString   `json:"titulo"`
	Estado       looseString   `json:"estado"`
	Tipo         looseString   `json:"tipo"`
	SuperficieM2 format.Amount `json:"superficie_m2"`
	CostoM2      format.Amount `json:"costo_m2"`
	Color        looseString   `json:"color"`
	Nota         looseString   `json:"nota"`
	Link         looseString   `json:"link"`
}

// parseRecord decodes a single row. It reports false when the row is not an
// object; missing fields simply stay empty.
func parseRecord(raw json.RawMessage) (Record, bool) {
	var rr rawRecord
	if err := json.Unmarshal(raw, &rr); err != nil {
		return Record{}, false
	}
	id := strings.TrimSpace(string(rr.ID))
	if id == "" {
		id = strings.TrimSpace(string(rr.AltID))
	}
	return Record{
		ID:           id,
		Titulo:       strings.TrimSpace(string(rr.Titulo)),
		Estado:       strings.TrimSpace(string(rr.Estado)),
		Tipo:         strings.TrimSpace(string(rr.Tipo)),
		SuperficieM2: rr.SuperficieM2,
		CostoM2:      rr.CostoM2,
		Color:        strings.TrimSpace(string(rr.Color)),
		Nota:         strings.TrimSpace(string(rr.Nota)),
		Link:         strings.TrimSpace(string(rr.Link)),
	}, true
}

// Key returns the normalized id of the record.
func (r Record) Key() string { return Key(r.ID) }

// Status returns the lower-cased status.
func (r Record) Status() string { return strings.ToLower(strings.TrimSpace(r.Estado)) }

// looseString decodes strings, numbers and booleans as text; anything else is empty.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	*s = ""
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			*s = looseString(v)
		}
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err == nil {
			*s = looseString(strconv.FormatBool(v))
		}
	case '{', '[', 'n':
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err == nil {
			*s = looseString(n.String())
		}
	}
	return nil
}
