package format

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// onRequestToken marks a value that is published as "ask us".
const onRequestToken = "consultar"

// Amount is a numeric-or-null value coming from the webhooks. Numbers may arrive
// as JSON numbers or as strings with grouping commas or spaces. Text that does not
// parse is kept verbatim in Text.
type Amount struct {
	Value float64
	Text  string
	// Numeric reports whether Value holds a parsed number.
	Numeric bool
	// Set reports whether the source carried a non-empty value at all.
	Set bool
}

// ParseAmount interprets a raw string value.
func ParseAmount(raw string) Amount {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Amount{}
	}
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(raw)
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return Amount{Value: v, Text: raw, Numeric: true, Set: true}
	}
	return Amount{Text: raw, Set: true}
}

// NumberAmount wraps an already numeric value.
func NumberAmount(v float64) Amount {
	return Amount{Value: v, Text: strconv.FormatFloat(v, 'f', -1, 64), Numeric: true, Set: true}
}

// UnmarshalJSON never fails: null, objects and arrays decode to an unset amount.
func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		*a = ParseAmount(s)
	case '{', '[', 'n', 't', 'f':
		return nil
	default:
		var v float64
		if err := json.Unmarshal(b, &v); err != nil {
			return nil
		}
		*a = NumberAmount(v)
	}
	return nil
}

// MarshalJSON writes numbers as numbers, text as strings and unset as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	switch {
	case !a.Set:
		return []byte("null"), nil
	case a.Numeric:
		return json.Marshal(a.Value)
	default:
		return json.Marshal(a.Text)
	}
}

// Unpublished reports a missing value or the literal "consultar".
func (a Amount) Unpublished() bool {
	if !a.Set {
		return true
	}
	return !a.Numeric && strings.EqualFold(strings.TrimSpace(a.Text), onRequestToken)
}

// Currency renders the amount as a price: "$1,500", the verbatim text for
// non-numeric values, or "Consultar" when unpublished.
func (a Amount) Currency() string {
	switch {
	case a.Unpublished():
		return OnRequest
	case a.Numeric:
		return Currency(a.Value)
	default:
		return a.Text
	}
}
