package lotmap

import (
	"sort"
	"strings"
	"sync"
)

// Overlay is a Surface that records per-lot overrides and renders them as a
// stylesheet layered over the shared, pre-rendered graphic. Each visitor gets
// their own overlay, so the graphic markup itself is never mutated after bind.
type Overlay struct {
	mu     sync.Mutex
	scope  string
	styles map[string]Style
}

// NewOverlay returns an empty overlay scoped to the element matched by scope,
// e.g. "#svgmap".
func NewOverlay(scope string) *Overlay {
	return &Overlay{scope: strings.TrimSpace(scope), styles: make(map[string]Style)}
}

// Paint implements Surface.
func (o *Overlay) Paint(key string, st Style) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.styles[key] = st
}

// Reset implements Surface.
func (o *Overlay) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	clear(o.styles)
}

// Style returns the override currently applied to key.
func (o *Overlay) Style(key string) (Style, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	st, ok := o.styles[key]
	return st, ok
}

// CSS renders the overrides. Keys are normalized (lower-case alphanumerics) so
// they are safe inside attribute selectors.
func (o *Overlay) CSS() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	keys := make([]string, 0, len(o.styles))
	for k := range o.styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	prefix := ""
	if o.scope != "" {
		prefix = o.scope + " "
	}
	var b strings.Builder
	for _, k := range keys {
		st := o.styles[k]
		lot := `[` + AttrLot + `="` + k + `"]`
		if st.Filter != "" {
			b.WriteString(prefix + lot + "{filter:" + st.Filter + " !important}\n")
		}
		if st.Fill != "" {
			b.WriteString(prefix + lot + " [" + AttrPaint + "]," + prefix + lot + "[" + AttrPaint + "]")
			b.WriteString("{fill:" + st.Fill + " !important}\n")
		}
	}
	return b.String()
}
