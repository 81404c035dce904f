package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrencyGroupsWithoutDecimals(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:          "$0",
		600:        "$600",
		1500:       "$1,500",
		1234567.6:  "$1,234,568",
		-2500:      "-$2,500",
		999999.4:   "$999,999",
		1000000000: "$1,000,000,000",
	}
	for in, want := range cases {
		require.Equal(t, want, Currency(in), "Currency(%v)", in)
	}
}

func TestAreaKeepsFractionalMeters(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1,500 m²", Area(1500))
	require.Equal(t, "350.5 m²", Area(350.5))
	require.Equal(t, "12,000.125 m²", Area(12000.125))
}

func TestAmountDecodesLooseWebhookValues(t *testing.T) {
	t.Parallel()

	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
		D Amount `json:"d"`
		E Amount `json:"e"`
		F Amount `json:"f"`
	}
	raw := `{"a": 600, "b": "1,500", "c": null, "d": "Consultar", "e": "precio especial", "f": {"x": 1}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	require.True(t, payload.A.Numeric)
	require.Equal(t, "$600", payload.A.Currency())

	require.True(t, payload.B.Numeric)
	require.InDelta(t, 1500, payload.B.Value, 0.0001)

	require.True(t, payload.C.Unpublished())
	require.Equal(t, OnRequest, payload.C.Currency())

	require.True(t, payload.D.Unpublished())
	require.Equal(t, OnRequest, payload.D.Currency())

	require.False(t, payload.E.Unpublished())
	require.Equal(t, "precio especial", payload.E.Currency())

	require.False(t, payload.F.Set)
	require.Equal(t, OnRequest, payload.F.Currency())
}

func TestAmountMissingFieldIsUnpublished(t *testing.T) {
	t.Parallel()

	var payload struct {
		Costo Amount `json:"costo_m2"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	require.True(t, payload.Costo.Unpublished())
}
