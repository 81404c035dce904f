package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lotmap"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
)

// mapSession resolves the latest generation and the visitor's controller,
// rebinding it when the generation moved on. Both are nil while the map has
// never loaded.
func mapSession(r *http.Request) (*lotmap.Session, *lotmap.Generation) {
	if mapService == nil || mapSessions == nil {
		return nil, nil
	}
	gen := mapService.Ensure(r.Context())
	if gen == nil {
		return nil, nil
	}
	return mapSessions.Get(mw.GetSession(r).ID, gen), gen
}

// MapFrag renders the map section with the bound graphic. A freshly loaded
// graphic starts with nothing hovered or selected.
func MapFrag(w http.ResponseWriter, r *http.Request) {
	sess, gen := mapSession(r)
	if sess != nil {
		sess.Controller.Reset()
	}
	renderTemplate(w, r, "frag_map", buildMapView(mw.Lang(r), sess, gen))
}

// MapPanelFrag renders the panel for the current state.
func MapPanelFrag(w http.ResponseWriter, r *http.Request) {
	sess, gen := mapSession(r)
	view := buildMapView(mw.Lang(r), sess, gen).Panel
	view.OOB = sess != nil
	renderTemplate(w, r, "frag_lot_panel", view)
}

// MapLotEventHandler applies a pointer event on one lot.
func MapLotEventHandler(w http.ResponseWriter, r *http.Request) {
	key := lots.Key(chi.URLParam(r, "key"))
	action := chi.URLParam(r, "action")

	sess, _ := mapSession(r)
	if sess == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	var changed bool
	switch action {
	case "entrar":
		changed = sess.Controller.Enter(key)
	case "salir":
		changed = sess.Controller.Leave(key)
	case "seleccionar":
		changed = sess.Controller.Select(key)
	default:
		http.NotFound(w, r)
		return
	}
	writePanel(w, r, sess, changed)
}

// MapDismissHandler handles a click outside the graphic and the panel.
func MapDismissHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := mapSession(r)
	if sess == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writePanel(w, r, sess, sess.Controller.Dismiss())
}

// MapResetHandler handles "Ver otro lote".
func MapResetHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := mapSession(r)
	if sess == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sess.Controller.Reset()
	writePanel(w, r, sess, true)
}

// writePanel swaps the panel and the overlay, or answers 204 so htmx leaves
// the page alone when nothing changed.
func writePanel(w http.ResponseWriter, r *http.Request, sess *lotmap.Session, changed bool) {
	if !changed {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	renderTemplate(w, r, "frag_lot_panel", buildPanelView(sess, true))
}

type apiLot struct {
	lots.Record
	Key        string `json:"key"`
	Resolved   string `json:"fill"`
	Selectable bool   `json:"bound"`
}

// APILotsHandler lists the lots of the current generation with their
// resolved resting colour.
func APILotsHandler(w http.ResponseWriter, r *http.Request) {
	if mapService == nil {
		mw.WriteError(w, r, http.StatusServiceUnavailable, "map not configured")
		return
	}
	gen := mapService.Ensure(r.Context())
	if gen == nil {
		mw.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"error": lotmap.ErrNotReady.Error(), "lots": []apiLot{}})
		return
	}
	bound := make(map[string]bool, len(gen.Bound))
	for _, k := range gen.Bound {
		bound[k] = true
	}
	records := gen.Registry.Records()
	out := make([]apiLot, 0, len(records))
	for i := range records {
		rec := records[i]
		out = append(out, apiLot{Record: rec, Key: rec.Key(), Resolved: lots.PickColor(&rec), Selectable: bound[rec.Key()]})
	}
	mw.WriteJSON(w, http.StatusOK, map[string]any{
		"generation": gen.Number,
		"loadedAt":   gen.LoadedAt,
		"lots":       out,
	})
}
