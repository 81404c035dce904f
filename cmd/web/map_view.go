package main

import (
	"html/template"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lotmap"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/panel"
)

// mapElementID is the container of the bound graphic; overlay selectors are
// scoped to it.
const mapElementID = "svgmap"

// MapView is the map section: the bound graphic, the legend and the panel.
type MapView struct {
	Lang string
	// Deferred renders a placeholder that loads the graphic with htmx.
	Deferred bool
	Ready    bool
	Markup   template.HTML
	Legend   []LegendEntry
	Panel    PanelView
}

// LegendEntry is one swatch of the status legend.
type LegendEntry struct {
	Label  string
	Status string
	Color  string
}

// PanelView wraps the panel with the session overlay, which travels with
// every panel swap as an out-of-band <style>.
type PanelView struct {
	panel.View
	StateCSS    template.CSS
	OOB         bool
	ChooseOther string
}

func buildLegend() []LegendEntry {
	out := make([]LegendEntry, 0, len(site.Legend))
	for _, item := range site.Legend {
		out = append(out, LegendEntry{Label: item.Label, Status: item.Status, Color: lots.StatusColor(item.Status)})
	}
	return out
}

// deferredMapView is what full pages embed: the heavy graphic arrives later.
func deferredMapView(lang string) MapView {
	return MapView{
		Lang:     lang,
		Deferred: true,
		Legend:   buildLegend(),
		Panel:    PanelView{View: panel.Loading(), ChooseOther: panel.LabelChooseOther},
	}
}

// buildMapView renders the bound graphic for a session. A nil generation
// means neither source has loaded yet.
func buildMapView(lang string, sess *lotmap.Session, gen *lotmap.Generation) MapView {
	view := MapView{Lang: lang, Legend: buildLegend()}
	if gen == nil || sess == nil {
		view.Panel = PanelView{View: panel.Loading(), ChooseOther: panel.LabelChooseOther}
		return view
	}
	view.Ready = true
	// markup is our own site plan, serialized by the html renderer after bind
	view.Markup = template.HTML(gen.Markup)
	view.Panel = buildPanelView(sess, false)
	return view
}

func buildPanelView(sess *lotmap.Session, oob bool) PanelView {
	d := sess.Controller.Display()
	return PanelView{
		View: panel.Build(d.Record, d.Selected),
		// overlay keys are normalized and fills pass lots.IsColorLiteral
		StateCSS:    template.CSS(sess.Overlay.CSS()),
		OOB:         oob,
		ChooseOther: panel.LabelChooseOther,
	}
}
