package lotmap

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
)

const (
	// RestingOpacity is the translucency applied to every painted shape.
	RestingOpacity = "0.7"

	// AttrLot marks a bound element with its normalized key.
	AttrLot = "data-lot"
	// AttrPaint marks a shape that receives the lot fill.
	AttrPaint = "data-lot-paint"
)

// DefaultEventsPath is where pointer events for bound lots are posted.
const DefaultEventsPath = "/mapa/lotes"

// BindOptions configures the handlers attached to bound elements.
type BindOptions struct {
	// EventsPath prefixes the per-lot event endpoints.
	EventsPath string
	// Target is the CSS selector swapped with the event response.
	Target string
}

func (o BindOptions) withDefaults() BindOptions {
	if strings.TrimSpace(o.EventsPath) == "" {
		o.EventsPath = DefaultEventsPath
	}
	o.EventsPath = strings.TrimRight(o.EventsPath, "/")
	if strings.TrimSpace(o.Target) == "" {
		o.Target = "#lot-panel"
	}
	return o
}

// Binding associates a lot with the graphic elements that represent it.
type Binding struct {
	Key string
	// IDs are the raw id attributes of the bound elements.
	IDs      []string
	elements []*html.Node
	paint    []*html.Node
}

// PaintCount returns how many shapes receive the lot fill.
func (b *Binding) PaintCount() int {
	if b == nil {
		return 0
	}
	return len(b.paint)
}

// Bindings maps normalized keys to their shapes.
type Bindings map[string]*Binding

// Keys returns the bound keys sorted.
func (b Bindings) Keys() []string {
	out := make([]string, 0, len(b))
	for k := range b {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Disposer undoes a Bind: handlers are detached and visual overrides cleared.
// Calling it more than once is harmless.
type Disposer func()

type savedAttr struct {
	node *html.Node
	key  string
	val  string
	had  bool
}

type undoLog struct {
	entries []savedAttr
	seen    map[*html.Node]map[string]bool
}

func (u *undoLog) set(n *html.Node, key, val string) {
	if u.seen == nil {
		u.seen = make(map[*html.Node]map[string]bool)
	}
	keys := u.seen[n]
	if keys == nil {
		keys = make(map[string]bool)
		u.seen[n] = keys
	}
	if !keys[key] {
		keys[key] = true
		old, had := attr(n, key)
		u.entries = append(u.entries, savedAttr{node: n, key: key, val: old, had: had})
	}
	setAttr(n, key, val)
}

func (u *undoLog) restore() {
	for i := len(u.entries) - 1; i >= 0; i-- {
		e := u.entries[i]
		if e.had {
			setAttr(e.node, e.key, e.val)
		} else {
			removeAttr(e.node, e.key)
		}
	}
	u.entries = nil
	u.seen = nil
}

// Bind locates the shapes of every lot in reg, paints them with their resting
// colour and attaches the pointer handlers. Elements whose id does not match a
// lot are left alone. The returned Disposer must run before the graphic is
// bound again.
func Bind(g *Graphic, reg *lots.Registry, opts BindOptions) (Bindings, Disposer) {
	bindings := make(Bindings)
	if g == nil || reg.Len() == 0 {
		return bindings, func() {}
	}
	opts = opts.withDefaults()

	// Resolve every target against the pristine graphic before painting.
	type target struct {
		key   string
		node  *html.Node
		paint []*html.Node
	}
	var targets []target
	for _, n := range g.withID() {
		id, _ := attr(n, "id")
		key := lots.Key(id)
		if !reg.Has(key) {
			continue
		}
		targets = append(targets, target{key: key, node: n, paint: g.paintTargets(n)})
	}

	undo := &undoLog{}
	for _, t := range targets {
		rec, _ := reg.Lookup(t.key)
		color := lots.PickColor(&rec)

		for _, shape := range t.paint {
			style, _ := attr(shape, "style")
			undo.set(shape, "style", mergeStyle(style,
				declaration{"fill", color},
				declaration{"fill-opacity", RestingOpacity},
				declaration{"transition", "fill 0.3s ease"},
				declaration{"cursor", "pointer"},
			))
			undo.set(shape, AttrPaint, "")
		}

		style, _ := attr(t.node, "style")
		undo.set(t.node, "style", mergeStyle(style, declaration{"pointer-events", "auto"}))
		undo.set(t.node, AttrLot, t.key)
		for _, h := range handlers(opts, t.key) {
			undo.set(t.node, h[0], h[1])
		}

		b := bindings[t.key]
		if b == nil {
			b = &Binding{Key: t.key}
			bindings[t.key] = b
		}
		id, _ := attr(t.node, "id")
		b.IDs = append(b.IDs, id)
		b.elements = append(b.elements, t.node)
		b.paint = append(b.paint, t.paint...)
	}

	return bindings, undo.restore
}

// paintTargets returns n itself when it is paintable, otherwise its paintable
// descendants.
func (g *Graphic) paintTargets(n *html.Node) []*html.Node {
	if g.paintable(n) {
		return []*html.Node{n}
	}
	var out []*html.Node
	walk(n, func(c *html.Node) {
		if g.paintable(c) {
			out = append(out, c)
		}
	})
	return out
}

// handlers builds the htmx attributes that post pointer events for key. Both
// click and touchend select; selecting an already selected lot is a no-op.
func handlers(opts BindOptions, key string) [][2]string {
	post := func(action string) string {
		return fmt.Sprintf(
			"htmx.ajax('POST','%s/%s/%s',{source:this,target:'%s',swap:'outerHTML'})",
			opts.EventsPath, key, action, opts.Target,
		)
	}
	return [][2]string{
		{"hx-on:mouseenter", post("entrar")},
		{"hx-on:mouseleave", post("salir")},
		{"hx-on:click", "event.stopPropagation();" + post("seleccionar")},
		{"hx-on:touchend", post("seleccionar")},
	}
}
