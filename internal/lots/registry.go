package lots

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Registry indexes lot records by normalized key. Later duplicates overwrite
// earlier ones but keep the position of the first occurrence.
type Registry struct {
	byKey map[string]Record
	order []string
}

// NewRegistry indexes records, dropping those whose id normalizes to empty.
func NewRegistry(records []Record) *Registry {
	reg := &Registry{byKey: make(map[string]Record, len(records))}
	for _, rec := range records {
		reg.put(rec)
	}
	return reg
}

// Normalize turns a raw webhook response into a registry. It never fails:
// unknown layouts and malformed rows yield fewer (or zero) records.
func Normalize(raw []byte) *Registry {
	return FromPayload(Decode(raw))
}

// FromPayload indexes the rows of an already decoded payload.
func FromPayload(p Payload) *Registry {
	reg := &Registry{byKey: make(map[string]Record, len(p.Rows))}
	for _, row := range p.Rows {
		rec, ok := parseRecord(row)
		if !ok {
			continue
		}
		reg.put(rec)
	}
	return reg
}

func (r *Registry) put(rec Record) {
	k := rec.Key()
	if k == "" {
		return
	}
	if _, exists := r.byKey[k]; !exists {
		r.order = append(r.order, k)
	}
	r.byKey[k] = rec
}

// Lookup returns the record stored under a normalized key.
func (r *Registry) Lookup(key string) (Record, bool) {
	if r == nil {
		return Record{}, false
	}
	rec, ok := r.byKey[key]
	return rec, ok
}

// Has reports whether the normalized key is known.
func (r *Registry) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Len returns the number of distinct lots.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Keys returns normalized keys in first-seen order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Records returns the records in first-seen order.
func (r *Registry) Records() []Record {
	if r == nil {
		return nil
	}
	out := make([]Record, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.byKey[k])
	}
	return out
}

// Available lists lots that can still be asked about (everything not sold),
// ordered by id with numeric runs compared as numbers.
func (r *Registry) Available() []Record {
	var out []Record
	for _, rec := range r.Records() {
		if rec.Status() == StatusSold {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return naturalLess(out[i].ID, out[j].ID)
	})
	return out
}

// naturalLess compares case-insensitively, treating digit runs as numbers so
// that "L2" sorts before "L10".
func naturalLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for a != "" && b != "" {
		ca, cb := rune(a[0]), rune(b[0])
		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			na, ra := leadingDigits(a)
			nb, rb := leadingDigits(b)
			if na != nb {
				return na < nb
			}
			a, b = ra, rb
			continue
		}
		if ca != cb {
			return ca < cb
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func leadingDigits(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		n = int(^uint(0) >> 1)
	}
	return n, s[i:]
}
