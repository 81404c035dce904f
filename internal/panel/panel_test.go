package panel

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/format"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
)

func TestBuildPlaceholder(t *testing.T) {
	t.Parallel()

	v := Build(nil, true)
	require.True(t, v.Initial)
	require.False(t, v.Selected)
	require.Equal(t, "INFORMACIÓN", v.Heading)
	require.Equal(t, "PASA EL CURSOR POR EL MAPA", v.Title)
	require.Equal(t, "N/A", v.Status)
	require.Equal(t, "Consultar", v.Price)
	require.Equal(t, "m² no disponible", v.Area)
	require.Empty(t, v.Action.Label)

	l := Loading()
	require.True(t, l.Loading)
	require.Equal(t, "Cargando...", l.Title)
}

func TestBuildAvailableLotQuotesOnWhatsApp(t *testing.T) {
	t.Parallel()

	rec := lots.Record{
		ID:           "Lote 12",
		Estado:       "disponible",
		Tipo:         "AA",
		SuperficieM2: format.NumberAmount(1500),
		CostoM2:      format.NumberAmount(900),
		Nota:         " Esquina ",
	}
	v := Build(&rec, true)
	require.Equal(t, "TU LOTE SELECCIONADO", v.Heading)
	require.Equal(t, "Lote 12", v.Title)
	require.Equal(t, "DISPONIBLE", v.Status)
	require.Equal(t, lots.StatusColors[lots.StatusAvailable], v.StatusColor)
	require.Equal(t, "1,500 m²", v.Area)
	require.Equal(t, "$900", v.Price)
	require.Equal(t, "Esquina", v.Note)

	require.False(t, v.Action.Disabled)
	require.Equal(t, "COTIZAR", v.Action.Label)
	require.Equal(t, "_blank", v.Action.Target)
	require.True(t, strings.HasPrefix(v.Action.Href, "https://wa.me/528123852034?text="))

	u, err := url.Parse(v.Action.Href)
	require.NoError(t, err)
	require.Equal(t,
		"Hola, me interesa el Lote 12, con superficie de 1,500 m² y costo de $900. Estado: DISPONIBLE.",
		u.Query().Get("text"))
}

func TestCallToActionDisabledCases(t *testing.T) {
	t.Parallel()

	priced := format.NumberAmount(700)
	cases := []struct {
		name string
		rec  lots.Record
	}{
		{"sold", lots.Record{Estado: "vendido", CostoM2: priced}},
		{"blocked", lots.Record{Estado: "Bloqueado", CostoM2: priced}},
		{"missing price", lots.Record{Estado: "disponible"}},
		{"consultar", lots.Record{Estado: "disponible", CostoM2: format.ParseAmount("Consultar")}},
		{"zero price", lots.Record{Estado: "disponible", CostoM2: format.NumberAmount(0)}},
		{"reserved common area", lots.Record{Estado: "reservado"}},
	}
	for _, tc := range cases {
		a := CallToAction(tc.rec)
		require.True(t, a.Disabled, tc.name)
		require.Empty(t, a.Href, tc.name)
	}
}

func TestCallToActionReserved(t *testing.T) {
	t.Parallel()

	rec := lots.Record{Estado: "reservado", CostoM2: format.NumberAmount(700), Link: "https://example.com/lista"}
	a := CallToAction(rec)
	require.False(t, a.Disabled)
	require.Equal(t, "Contactarme si se libera", a.Label)
	require.Equal(t, "https://example.com/lista", a.Href)

	rec.Link = ""
	require.Equal(t, "/contacto", CallToAction(rec).Href)
}

func TestTitleAndStatusFallbacks(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Esquina Norte", Title(lots.Record{Titulo: "Esquina Norte", ID: "L1"}))
	require.Equal(t, "lote-7", Title(lots.Record{ID: "lote-7"}))
	require.Equal(t, "Lote Seleccionado", Title(lots.Record{}))
	require.Equal(t, "ESTADO DESCONOCIDO", StatusLabel("  "))
	require.Equal(t, "PRÓXIMAMENTE", StatusLabel("próximamente"))
	require.Equal(t, "m² no disponible", Area(format.ParseAmount("grande")))
}
