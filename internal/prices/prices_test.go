package prices

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cardPrices(cards []Card) map[string]string {
	out := map[string]string{}
	for _, c := range cards {
		out[c.Type] = c.Price
	}
	return out
}

func TestCardsShowPriceOrConsultar(t *testing.T) {
	t.Parallel()

	cards := Cards(Decode([]byte(`{"tipo_A": 600, "tipo_AA": null}`)))
	require.Len(t, cards, 3)
	require.Equal(t, map[string]string{"A": "$600", "AA": "Consultar", "AAA": "Consultar"}, cardPrices(cards))
	require.Equal(t, "TIPO A", cards[0].Title)
	require.Equal(t, "/m²", cards[0].Unit)
	require.True(t, cards[1].Featured)
}

func TestDecodeVariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"array first element", `[{"tipo_A":"1,100","tipo_AAA":1300},{"tipo_A":1}]`, map[string]string{"A": "$1,100", "AA": "Consultar", "AAA": "$1,300"}},
		{"text kept verbatim", `{"tipo_AA":"Agotado"}`, map[string]string{"A": "Consultar", "AA": "Agotado", "AAA": "Consultar"}},
		{"zero is on request", `{"tipo_A":0}`, map[string]string{"A": "Consultar", "AA": "Consultar", "AAA": "Consultar"}},
		{"empty array", `[]`, map[string]string{"A": "Consultar", "AA": "Consultar", "AAA": "Consultar"}},
		{"garbage", `nope`, map[string]string{"A": "Consultar", "AA": "Consultar", "AAA": "Consultar"}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, cardPrices(Cards(Decode([]byte(tc.raw)))), tc.name)
	}
}

func TestClientCachesAndServesStale(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if failing.Load() {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `[{"tipo_A":700}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, time.Minute, quietLogger())
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	table, err := c.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "$700", table.Display("a"))

	_, err = c.Get(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, hits.Load())

	now = now.Add(2 * time.Minute)
	failing.Store(true)
	table, err = c.Get(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	require.Equal(t, "$700", table.Display("A"))
	require.EqualValues(t, 2, hits.Load())
}

func TestClientThrottlesRetriesWhileDown(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, time.Minute, quietLogger())
	c.SetRetryAfter(30 * time.Second)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		table, err := c.Get(context.Background())
		require.ErrorIs(t, err, ErrUnexpectedStatus)
		require.Zero(t, table.Len())
	}
	require.EqualValues(t, 1, hits.Load())

	now = now.Add(31 * time.Second)
	_, err := c.Get(context.Background())
	require.Error(t, err)
	require.EqualValues(t, 2, hits.Load())
}

func TestClientWithoutURL(t *testing.T) {
	t.Parallel()

	table, err := NewClient("", 0, 0, nil).Get(context.Background())
	require.NoError(t, err)
	require.Zero(t, table.Len())
}
