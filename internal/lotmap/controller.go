package lotmap

import (
	"sync"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
)

// Mode is the phase of the selection state machine.
type Mode int

const (
	Idle Mode = iota
	Hovering
	Selected
)

func (m Mode) String() string {
	switch m {
	case Hovering:
		return "hovering"
	case Selected:
		return "selected"
	default:
		return "idle"
	}
}

// State is the active lot, identified by key. Key is empty when Idle.
type State struct {
	Mode Mode
	Key  string
}

const (
	HoverFilter    = "brightness(0.85)"
	SelectedFilter = "drop-shadow(0 0 5px rgba(0,0,0,0.5)) brightness(1.1)"
	NoFilter       = "none"
)

// Style is the visual override applied to a lot.
type Style struct {
	Fill   string
	Filter string
}

// Surface looks up and mutates the shapes of a lot by key.
type Surface interface {
	Paint(key string, st Style)
	Reset()
}

// Display is what the detail panel should show.
type Display struct {
	// Record is nil when the panel shows the placeholder.
	Record   *lots.Record
	Key      string
	Selected bool
}

// Controller owns the hover/selection state of one map instance. It never holds
// graphic elements, only the key of the active lot, so a rebind with a fresh
// registry cannot leave it pointing at stale shapes.
type Controller struct {
	mu      sync.Mutex
	reg     *lots.Registry
	surface Surface
	state   State
}

// NewController builds an idle controller. reg may be nil until data loads.
func NewController(reg *lots.Registry, surface Surface) *Controller {
	return &Controller{reg: reg, surface: surface}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Enter handles the pointer entering lot key. Hover is ignored while any lot is
// selected. It reports whether the state changed.
func (c *Controller) Enter(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode == Selected || !c.reg.Has(key) {
		return false
	}
	if c.state.Mode == Hovering && c.state.Key == key {
		return false
	}
	if c.state.Mode == Hovering {
		c.rest(c.state.Key)
	}
	c.paint(key, Style{Fill: c.resting(key), Filter: HoverFilter})
	c.state = State{Mode: Hovering, Key: key}
	return true
}

// Leave handles the pointer leaving lot key.
func (c *Controller) Leave(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode != Hovering || c.state.Key != key {
		return false
	}
	c.rest(key)
	c.state = State{}
	return true
}

// Select makes key the sticky selection. The previously active lot is restored
// to its resting colour first. Selecting the selected lot again is a no-op.
func (c *Controller) Select(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.reg.Has(key) {
		return false
	}
	if c.state.Mode == Selected && c.state.Key == key {
		return false
	}
	if c.state.Mode != Idle {
		c.rest(c.state.Key)
	}
	c.paint(key, Style{Fill: lots.SelectedColor, Filter: SelectedFilter})
	c.state = State{Mode: Selected, Key: key}
	return true
}

// Dismiss clears a selection after a click outside the map and the panel, or
// an explicit request to choose another lot. Hover state is left alone.
func (c *Controller) Dismiss() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode != Selected {
		return false
	}
	c.rest(c.state.Key)
	c.state = State{}
	return true
}

// Reset returns to Idle from any state.
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode == Idle {
		return false
	}
	c.rest(c.state.Key)
	c.state = State{}
	return true
}

// Rebind switches to a freshly loaded registry. All overrides are cleared; an
// active lot that still exists is repainted with its current data, one that
// vanished drops the controller back to Idle.
func (c *Controller) Rebind(reg *lots.Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reg = reg
	if c.surface != nil {
		c.surface.Reset()
	}
	switch {
	case c.state.Mode == Idle:
	case !reg.Has(c.state.Key):
		c.state = State{}
	case c.state.Mode == Selected:
		c.paint(c.state.Key, Style{Fill: lots.SelectedColor, Filter: SelectedFilter})
	default:
		c.paint(c.state.Key, Style{Fill: c.resting(c.state.Key), Filter: HoverFilter})
	}
}

// Display returns the record the panel should render.
func (c *Controller) Display() Display {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode == Idle {
		return Display{}
	}
	rec, ok := c.reg.Lookup(c.state.Key)
	if !ok {
		return Display{}
	}
	return Display{Record: &rec, Key: c.state.Key, Selected: c.state.Mode == Selected}
}

// resting is always derived from the current record, never remembered.
func (c *Controller) resting(key string) string {
	rec, ok := c.reg.Lookup(key)
	if !ok {
		return lots.PickColor(nil)
	}
	return lots.PickColor(&rec)
}

func (c *Controller) rest(key string) {
	c.paint(key, Style{Fill: c.resting(key), Filter: NoFilter})
}

func (c *Controller) paint(key string, st Style) {
	if c.surface != nil {
		c.surface.Paint(key, st)
	}
}
