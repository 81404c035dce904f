package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/status"
)

// newStatusMonitor probes the sources behind the map, the price grid and the
// contact form. Only a missing map makes the site unready: prices fall back
// to "Consultar" and the form reports its own failures.
func newStatusMonitor(ttl time.Duration) *status.Monitor {
	return status.NewMonitor(ttl,
		status.Probe{Name: "mapa", Check: func(ctx context.Context) (string, string) {
			if mapService == nil {
				return status.StateDown, "not configured"
			}
			gen := mapService.Current()
			if gen == nil {
				return status.StateDown, "no generation loaded"
			}
			return status.StateOperational, fmt.Sprintf("generation %d, %d lots, %d bound", gen.Number, gen.Registry.Len(), len(gen.Bound))
		}},
		status.Probe{Name: "precios", Check: func(ctx context.Context) (string, string) {
			table, err := priceClient.Get(ctx)
			if err != nil {
				return status.StateDegraded, err.Error()
			}
			if table.Len() == 0 {
				return status.StateDegraded, "empty price list"
			}
			return status.StateOperational, ""
		}},
		status.Probe{Name: "contacto", Check: func(context.Context) (string, string) {
			if !contactClient.Configured() {
				return status.StateDegraded, "endpoint not configured"
			}
			return status.StateOperational, ""
		}},
	)
}

// StatusHandler reports readiness as JSON: 503 while the map has never
// loaded.
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	if statusMonitor == nil {
		mw.WriteError(w, r, http.StatusServiceUnavailable, "status not configured")
		return
	}
	summary := statusMonitor.Summary(r.Context())
	code := http.StatusOK
	if summary.State == status.StateDown {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	mw.WriteJSON(w, code, summary)
}
