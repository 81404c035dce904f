// Package status summarizes the health of the sources the site depends on:
// the lot map webhooks, the price list and the mail endpoint.
package status

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// States, from best to worst.
const (
	StateOperational = "operational"
	StateDegraded    = "degraded"
	StateDown        = "down"
)

// Summary captures an overview of every source.
type Summary struct {
	State      string      `json:"state"`
	StateLabel string      `json:"stateLabel"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Components []Component `json:"components"`
}

// Component represents the status of one source.
type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Probe inspects one source. It must return promptly once ctx is done.
type Probe struct {
	Name  string
	Check func(ctx context.Context) (state, detail string)
}

// Monitor runs the probes and caches the summary for ttl, so a health checker
// polling every few seconds does not hammer the webhooks.
type Monitor struct {
	probes []Probe
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	cached  Summary
	expires time.Time
}

// NewMonitor builds a monitor. A non-positive ttl disables the cache.
func NewMonitor(ttl time.Duration, probes ...Probe) *Monitor {
	return &Monitor{probes: probes, ttl: ttl, now: time.Now}
}

// Summary returns the cached summary while fresh, otherwise runs every probe
// concurrently.
func (m *Monitor) Summary(ctx context.Context) Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ttl > 0 && !m.expires.IsZero() && m.now().Before(m.expires) {
		return cloneSummary(m.cached)
	}

	components := make([]Component, len(m.probes))
	var g errgroup.Group
	for i, p := range m.probes {
		i, p := i, p
		g.Go(func() error {
			state, detail := p.Check(ctx)
			if state == "" {
				state = StateOperational
			}
			components[i] = Component{Name: p.Name, Status: state, Detail: detail}
			return nil
		})
	}
	_ = g.Wait()

	state := Worst(components)
	m.cached = Summary{
		State:      state,
		StateLabel: label(state),
		UpdatedAt:  m.now().UTC(),
		Components: components,
	}
	m.expires = m.now().Add(m.ttl)
	return cloneSummary(m.cached)
}

// Worst returns the most severe state among components.
func Worst(components []Component) string {
	worst := StateOperational
	for _, c := range components {
		if rank(c.Status) > rank(worst) {
			worst = c.Status
		}
	}
	return worst
}

func rank(state string) int {
	switch state {
	case StateDown:
		return 2
	case StateDegraded:
		return 1
	default:
		return 0
	}
}

func label(state string) string {
	switch state {
	case StateDown:
		return "Servicio no disponible"
	case StateDegraded:
		return "Servicio parcialmente disponible"
	default:
		return "Todos los sistemas operando"
	}
}

func cloneSummary(s Summary) Summary {
	out := s
	out.Components = append([]Component(nil), s.Components...)
	return out
}
