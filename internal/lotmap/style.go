package lotmap

import "strings"

// declarations is an ordered list of CSS property/value pairs as found in an
// inline style attribute.
type declarations []declaration

type declaration struct {
	prop  string
	value string
}

func parseStyle(s string) declarations {
	var out declarations
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		out = out.set(prop, value)
	}
	return out
}

func (d declarations) get(prop string) (string, bool) {
	for _, decl := range d {
		if decl.prop == prop {
			return strings.TrimSpace(strings.TrimSuffix(decl.value, "!important")), true
		}
	}
	return "", false
}

func (d declarations) set(prop, value string) declarations {
	for i := range d {
		if d[i].prop == prop {
			d[i].value = value
			return d
		}
	}
	return append(d, declaration{prop: prop, value: value})
}

func (d declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		parts = append(parts, decl.prop+":"+decl.value)
	}
	return strings.Join(parts, ";")
}

// mergeStyle overlays props onto an inline style attribute value.
func mergeStyle(existing string, props ...declaration) string {
	d := parseStyle(existing)
	for _, p := range props {
		d = d.set(p.prop, p.value)
	}
	return d.String()
}
