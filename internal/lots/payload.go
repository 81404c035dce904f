package lots

import (
	"bytes"
	"encoding/json"
)

// Shape identifies which response layout the lot webhook used.
type Shape int

const (
	// ShapeUnknown is the fallback: anything unrecognized yields no rows.
	ShapeUnknown Shape = iota
	// ShapeArray is a bare array of lot objects.
	ShapeArray
	// ShapeEnvelopes is an array of {"json": {...}} wrappers.
	ShapeEnvelopes
	// ShapeData is {"data": [...]}.
	ShapeData
	// ShapeItems is {"items": [...]}, each element optionally wrapped in "json".
	ShapeItems
	// ShapeRows is {"rows": [...]}.
	ShapeRows
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeEnvelopes:
		return "envelopes"
	case ShapeData:
		return "data"
	case ShapeItems:
		return "items"
	case ShapeRows:
		return "rows"
	default:
		return "unknown"
	}
}

// Payload is a decoded webhook response: the detected shape and its raw rows.
type Payload struct {
	Shape Shape
	Rows  []json.RawMessage
}

type envelope struct {
	JSON json.RawMessage `json:"json"`
}

// Decode sniffs the response layout. It never fails; invalid JSON and
// unrecognized layouts decode to ShapeUnknown with no rows.
func Decode(raw []byte) Payload {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Payload{Shape: ShapeUnknown}
	}
	switch raw[0] {
	case '[':
		var rows []json.RawMessage
		if err := json.Unmarshal(raw, &rows); err != nil {
			return Payload{Shape: ShapeUnknown}
		}
		if len(rows) > 0 && hasEnvelope(rows[0]) {
			return Payload{Shape: ShapeEnvelopes, Rows: unwrapEnvelopes(rows)}
		}
		return Payload{Shape: ShapeArray, Rows: rows}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Payload{Shape: ShapeUnknown}
		}
		if rows, ok := arrayField(obj, "data"); ok {
			return Payload{Shape: ShapeData, Rows: rows}
		}
		if rows, ok := arrayField(obj, "items"); ok {
			return Payload{Shape: ShapeItems, Rows: unwrapEnvelopes(rows)}
		}
		if rows, ok := arrayField(obj, "rows"); ok {
			return Payload{Shape: ShapeRows, Rows: rows}
		}
	}
	return Payload{Shape: ShapeUnknown}
}

func arrayField(obj map[string]json.RawMessage, name string) ([]json.RawMessage, bool) {
	v, ok := obj[name]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(v, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func hasEnvelope(row json.RawMessage) bool {
	var env envelope
	if err := json.Unmarshal(row, &env); err != nil {
		return false
	}
	inner := bytes.TrimSpace(env.JSON)
	return len(inner) > 0 && !bytes.Equal(inner, []byte("null"))
}

// unwrapEnvelopes replaces each {"json": x} element by x and keeps other
// elements as they are.
func unwrapEnvelopes(rows []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		var env envelope
		if err := json.Unmarshal(row, &env); err == nil && hasEnvelope(row) {
			out = append(out, env.JSON)
			continue
		}
		out = append(out, row)
	}
	return out
}
