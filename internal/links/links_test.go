package links

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapsSearchEncodesAddress(t *testing.T) {
	t.Parallel()

	addr := "Edificio Connexity, Av. Alfonso Reyes Local 11, Monterrey Sur, 64920 Monterrey, N.L."
	link := MapsSearch(addr)
	require.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=Edificio%20Connexity%2C%20Av.%20Alfonso%20Reyes%20Local%2011%2C%20Monterrey%20Sur%2C%2064920%20Monterrey%2C%20N.L.",
		link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, addr, u.Query().Get("query"))
}

func TestWhatsAppEncodesMessage(t *testing.T) {
	t.Parallel()

	msg := "Hola, me interesa el Lote 5 & costo de $1,500. ¿Disponible?"
	link := WhatsApp("+52 81 2385 2034", msg)
	require.Contains(t, link, "https://wa.me/528123852034?text=")
	require.NotContains(t, link, " ")
	require.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, msg, u.Query().Get("text"))
}

func TestTelAndMailto(t *testing.T) {
	t.Parallel()

	require.Equal(t, "tel:+528141660969", Tel("+52 81 4166 0969"))
	require.Equal(t, "mailto:ventas@granadosdelmediterraneo.com", Mailto(" ventas@granadosdelmediterraneo.com "))
}
