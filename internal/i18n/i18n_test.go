package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load("../../locales", "es", []string{"es", "en"})
	require.NoError(t, err)

	require.Equal(t, "en", b.Resolve("es;q=0.8, en;q=0.9"))
	require.Equal(t, "es", b.Resolve("es-MX,es;q=0.9,en;q=0.5"))
	require.Equal(t, "es", b.Resolve("fr-FR"))
	require.Equal(t, "es", b.Resolve(""))
}

func TestTranslateFallsBack(t *testing.T) {
	b, err := Load("../../locales", "es", []string{"es", "en"})
	require.NoError(t, err)

	require.Equal(t, "Prices", b.T("en", "nav.prices"))
	require.Equal(t, "Precios", b.T("es", "nav.prices"))
	require.Equal(t, "Precios", b.T("fr", "nav.prices"))
	require.Equal(t, "missing.key", b.T("en", "missing.key"))
}
