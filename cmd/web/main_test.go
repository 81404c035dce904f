package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/cms"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/contact"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/i18n"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lotmap"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/prices"
)

const lotsFixture = `[
  {"id": "Lote 1", "estado": "disponible", "tipo": "AA", "superficie_m2": 1500, "costo_m2": 700},
  {"id": "LOTE2", "estado": "vendido", "tipo": "A", "superficie_m2": "1,620", "costo_m2": 600},
  {"id": "lote-4", "estado": "reservado", "tipo": "AAA", "superficie_m2": 1800, "costo_m2": 650},
  {"id": "99", "estado": "disponible", "tipo": "A"}
]`

// fakeContact records what the contact endpoint received.
type fakeContact struct {
	mu     sync.Mutex
	status int
	bodies []contact.Submission
	keys   []string
}

func (f *fakeContact) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	_ = json.NewDecoder(r.Body).Decode(&sub)
	f.mu.Lock()
	f.bodies = append(f.bodies, sub)
	f.keys = append(f.keys, r.Header.Get("Idempotency-Key"))
	status := f.status
	f.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, `{"ok":true}`)
}

func (f *fakeContact) received() []contact.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contact.Submission(nil), f.bodies...)
}

// newTestRouter wires the package state against local fakes, the way main()
// wires it against the real webhooks.
func newTestRouter(t *testing.T) (http.Handler, *fakeContact) {
	t.Helper()
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	_, err := parseTemplates()
	require.NoError(t, err)

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	mw.ConfigureSessions("test-signing-key", false)
	i18nBundle, err = i18n.Load("../../locales", "es", []string{"es", "en"})
	require.NoError(t, err)
	site = cms.DefaultSite()
	corsOrigins = []string{"https://landing.example"}

	lotsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, lotsFixture)
	}))
	t.Cleanup(lotsSrv.Close)
	pricesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"tipo_A": 600, "tipo_AA": null, "tipo_AAA": "850"}]`)
	}))
	t.Cleanup(pricesSrv.Close)
	fc := &fakeContact{}
	contactSrv := httptest.NewServer(fc)
	t.Cleanup(contactSrv.Close)

	cmsClient = cms.NewClient("")
	cmsClient.SetContentDir("../../content")
	priceClient = prices.NewClient(pricesSrv.URL, 2*time.Second, time.Minute, logger)
	contactClient = contact.NewClient(contactSrv.URL, 2*time.Second, logger)
	mapService = lotmap.NewService(
		lotmap.FileGraphic("../../public/assets/mapa.svg"),
		lots.NewClient(lotsSrv.URL, 2*time.Second, logger),
		lotmap.Options{Logger: logger},
	)
	mapSessions = lotmap.NewSessions(time.Hour, "#"+mapElementID)
	statusMonitor = newStatusMonitor(0)
	t.Cleanup(func() {
		cmsClient, priceClient, contactClient, mapService, mapSessions = nil, nil, nil, nil, nil
		statusMonitor = nil
	})
	return newRouter(), fc
}

// browser keeps cookies between requests and adds the CSRF header to unsafe
// requests, like htmx does through hx-headers.
type browser struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	b := &browser{t: t, h: h, cookies: map[string]*http.Cookie{}}
	rec := b.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, b.csrf())
	return b
}

func (b *browser) csrf() string {
	if c, ok := b.cookies["csrf_token"]; ok {
		return c.Value
	}
	return ""
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) htmx(method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")
	req.Header.Set(mw.CSRFHeader, b.csrf())
	return b.do(req)
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func TestHealthzOK(t *testing.T) {
	srv, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestHomeRendersSections(t *testing.T) {
	srv, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := parseDoc(t, rec)
	require.Equal(t, "/mapa", doc.Find("#map-frame").AttrOr("hx-get", ""))
	require.Equal(t, 1, doc.Find("style#lot-state").Length())
	require.Equal(t, "Cargando...", strings.TrimSpace(doc.Find("#lot-panel .lot-panel__title").Text()))

	cards := doc.Find(".price-card")
	require.Equal(t, 3, cards.Length())
	require.Equal(t, "$600", strings.TrimSpace(doc.Find(`.price-card[data-tipo="A"] .price-card__price strong`).Text()))
	require.Equal(t, "Consultar", strings.TrimSpace(doc.Find(`.price-card[data-tipo="AA"] .price-card__price strong`).Text()))
	require.Equal(t, "$850", strings.TrimSpace(doc.Find(`.price-card[data-tipo="AAA"] .price-card__price strong`).Text()))

	require.Equal(t, 1, doc.Find("form#contact-form").Length())
	require.Equal(t, 4, doc.Find(".site-nav a").Length())
	require.Equal(t, 4, doc.Find(".map-legend li").Length())
}

func TestHomeLocalizedNav_EN(t *testing.T) {
	srv, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "en", rec.Header().Get("Content-Language"))
	require.Contains(t, rec.Body.String(), ">Prices<")
}

func TestMapFragmentBindsLots(t *testing.T) {
	srv, _ := newTestRouter(t)
	b := newBrowser(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/mapa", nil)
	req.Header.Set("HX-Request", "true")
	rec := b.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := parseDoc(t, rec)
	require.Equal(t, "/mapa/descartar", doc.Find("#map-frame").AttrOr("hx-post", ""))
	bound := doc.Find("#svgmap [data-lot]")
	var keys []string
	bound.Each(func(_ int, s *goquery.Selection) { keys = append(keys, s.AttrOr("data-lot", "")) })
	require.ElementsMatch(t, []string{"lote1", "lote2", "lote4"}, keys)

	lot1 := doc.Find(`#svgmap [data-lot="lote1"]`)
	require.Contains(t, lot1.AttrOr("hx-on:click", ""), "/mapa/lotes/lote1/seleccionar")
	require.Contains(t, lot1.AttrOr("style", ""), "pointer-events")
	require.Contains(t, lot1.AttrOr("style", ""), "fill:#66bb6a")
	// drawn but not in the registry: left untouched
	require.Zero(t, doc.Find(`#svgmap [data-lot="lote5"]`).Length())
	require.Equal(t, 1, doc.Find(`#svgmap #Lote_5`).Length())
	require.Equal(t, "PASA EL CURSOR POR EL MAPA", strings.TrimSpace(doc.Find("#lot-panel .lot-panel__title").Text()))
}

func TestMapSelectHoverDismissFlow(t *testing.T) {
	srv, _ := newTestRouter(t)
	b := newBrowser(t, srv)
	require.Equal(t, http.StatusOK, b.do(httptest.NewRequest(http.MethodGet, "/mapa", nil)).Code)

	// hover shows the lot without selecting it
	rec := b.htmx(http.MethodPost, "/mapa/lotes/lote2/entrar", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := parseDoc(t, rec)
	require.Equal(t, "INFORMACIÓN", strings.TrimSpace(doc.Find(".lot-panel__heading").Text()))
	require.Equal(t, "VENDIDO", strings.TrimSpace(doc.Find(".lot-panel__status").Text()))
	require.Equal(t, 1, doc.Find("button.lot-panel__cta[disabled]").Length())
	require.Contains(t, doc.Find("style#lot-state").Text(), "brightness(0.85)")

	rec = b.htmx(http.MethodPost, "/mapa/lotes/lote2/salir", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// selection is sticky
	rec = b.htmx(http.MethodPost, "/mapa/lotes/lote1/seleccionar", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc = parseDoc(t, rec)
	require.Equal(t, "TU LOTE SELECCIONADO", strings.TrimSpace(doc.Find(".lot-panel__heading").Text()))
	require.Equal(t, "Lote 1", strings.TrimSpace(doc.Find(".lot-panel__title").Text()))
	require.Equal(t, "$700", strings.TrimSpace(doc.Find(".lot-panel__price").Text()))
	cta := doc.Find("a.lot-panel__cta")
	require.Equal(t, "COTIZAR", strings.TrimSpace(cta.Text()))
	require.True(t, strings.HasPrefix(cta.AttrOr("href", ""), "https://wa.me/528123852034?text=Hola%2C%20me%20interesa%20el%20Lote%201"))
	require.Equal(t, "_blank", cta.AttrOr("target", ""))
	require.Equal(t, 1, doc.Find("button.lot-panel__other").Length())
	state := doc.Find("style#lot-state")
	require.Equal(t, "true", state.AttrOr("hx-swap-oob", ""))
	require.Contains(t, state.Text(), `[data-lot="lote1"]`)
	require.Contains(t, state.Text(), "#1e3a8a")

	// hovering another lot while selected does nothing, nor does reselecting
	require.Equal(t, http.StatusNoContent, b.htmx(http.MethodPost, "/mapa/lotes/lote4/entrar", nil).Code)
	require.Equal(t, http.StatusNoContent, b.htmx(http.MethodPost, "/mapa/lotes/lote1/seleccionar", nil).Code)
	require.Equal(t, http.StatusNoContent, b.htmx(http.MethodPost, "/mapa/lotes/nope/seleccionar", nil).Code)

	// switching selection restores the previous lot
	rec = b.htmx(http.MethodPost, "/mapa/lotes/lote4/seleccionar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = parseDoc(t, rec)
	require.Equal(t, "Contactarme si se libera", strings.TrimSpace(doc.Find("a.lot-panel__cta").Text()))
	require.Equal(t, "/contacto", doc.Find("a.lot-panel__cta").AttrOr("href", ""))
	css := doc.Find("style#lot-state").Text()
	require.Contains(t, css, `[data-lot="lote4"]{filter:drop-shadow`)
	require.Contains(t, css, `[data-lot="lote1"]{filter:none !important}`)
	require.Contains(t, css, "fill:#66bb6a !important")

	// click outside clears the panel; a second one has nothing to clear
	rec = b.htmx(http.MethodPost, "/mapa/descartar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = parseDoc(t, rec)
	require.Equal(t, "PASA EL CURSOR POR EL MAPA", strings.TrimSpace(doc.Find(".lot-panel__title").Text()))
	css = doc.Find("style#lot-state").Text()
	require.NotContains(t, css, "#1e3a8a")
	require.Contains(t, css, "fill:#fde68a !important")
	require.Equal(t, http.StatusNoContent, b.htmx(http.MethodPost, "/mapa/descartar", nil).Code)

	require.Equal(t, http.StatusNotFound, b.htmx(http.MethodPost, "/mapa/lotes/lote1/bailar", nil).Code)
}

func TestMapResetClearsSelection(t *testing.T) {
	srv, _ := newTestRouter(t)
	b := newBrowser(t, srv)
	require.Equal(t, http.StatusOK, b.htmx(http.MethodPost, "/mapa/lotes/lote1/seleccionar", nil).Code)

	rec := b.htmx(http.MethodPost, "/mapa/otro", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Equal(t, "INFORMACIÓN", strings.TrimSpace(doc.Find(".lot-panel__heading").Text()))

	rec = b.do(httptest.NewRequest(http.MethodGet, "/mapa/panel", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "PASA EL CURSOR POR EL MAPA", strings.TrimSpace(parseDoc(t, rec).Find(".lot-panel__title").Text()))
}

func TestMapEventsRequireCSRF(t *testing.T) {
	srv, _ := newTestRouter(t)
	b := newBrowser(t, srv)

	req := httptest.NewRequest(http.MethodPost, "/mapa/lotes/lote1/seleccionar", nil)
	req.Header.Set("HX-Request", "true")
	rec := b.do(req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid CSRF token")
}

func TestContactPageListsAvailableLots(t *testing.T) {
	srv, _ := newTestRouter(t)
	b := newBrowser(t, srv)

	rec := b.do(httptest.NewRequest(http.MethodGet, "/contacto?lote=lote-4", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	var values []string
	doc.Find(`select[name="loteInteres"] option[value!=""]`).Each(func(_ int, s *goquery.Selection) {
		values = append(values, s.AttrOr("value", ""))
	})
	// sold lots are not offered
	require.ElementsMatch(t, []string{"Lote 1", "lote-4", "99"}, values)
	require.Equal(t, "lote-4", doc.Find(`select[name="loteInteres"] option[selected]`).AttrOr("value", ""))
	require.Contains(t, doc.Find(".contact-page__directions").AttrOr("href", ""), "https://www.google.com/maps/search/?api=1&query=")
	require.NotEmpty(t, doc.Find(`input[name="csrf_token"]`).AttrOr("value", ""))
}

func TestContactSubmitSuccessClearsForm(t *testing.T) {
	srv, fc := newTestRouter(t)
	b := newBrowser(t, srv)

	form := url.Values{
		"name":            {"Ana López"},
		"email":           {"ana@example.com"},
		"phone":           {"81 1234 5678"},
		"message":         {"Quiero informes"},
		"loteInteres":     {"Lote 1"},
		"idempotency_key": {"key-123"},
	}
	rec := b.htmx(http.MethodPost, "/contacto", form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := parseDoc(t, rec)
	require.Equal(t, contact.SuccessMessage, strings.TrimSpace(doc.Find(".alert--success").Text()))
	require.Empty(t, doc.Find(`input[name="name"]`).AttrOr("value", "x"))

	got := fc.received()
	require.Len(t, got, 1)
	require.Equal(t, contact.Submission{
		Nombre: "Ana López", Email: "ana@example.com", Mensaje: "Quiero informes",
		Telefono: "81 1234 5678", LoteInteres: "Lote 1",
	}, got[0])
	require.Equal(t, "key-123", fc.keys[0])
}

func TestContactSubmitFailureKeepsFields(t *testing.T) {
	srv, fc := newTestRouter(t)
	fc.status = http.StatusInternalServerError
	b := newBrowser(t, srv)

	form := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "message": {"Hola"}, "idempotency_key": {"key-9"}}
	rec := b.htmx(http.MethodPost, "/contacto", form)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Equal(t, contact.ErrorMessage, strings.TrimSpace(doc.Find(".alert--error").Text()))
	require.Equal(t, "Ana", doc.Find(`input[name="name"]`).AttrOr("value", ""))
	require.Equal(t, "Hola", strings.TrimSpace(doc.Find(`textarea[name="message"]`).Text()))
	require.Equal(t, "key-9", doc.Find(`input[name="idempotency_key"]`).AttrOr("value", ""))

	// without htmx the whole page comes back with a gateway status
	req := httptest.NewRequest(http.MethodPost, "/contacto", strings.NewReader(url.Values{
		"name": {"Ana"}, "email": {"ana@example.com"}, "csrf_token": {b.csrf()},
	}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = b.do(req)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, 1, parseDoc(t, rec).Find("header.site-header").Length())
}

func TestContactSubmitValidation(t *testing.T) {
	srv, fc := newTestRouter(t)
	b := newBrowser(t, srv)

	rec := b.htmx(http.MethodPost, "/contacto", url.Values{"name": {""}, "email": {"no-es-correo"}})
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Equal(t, 2, doc.Find(".field-error").Length())
	require.Equal(t, "no-es-correo", doc.Find(`input[name="email"]`).AttrOr("value", ""))
	require.Empty(t, fc.received())
}

func TestAPIContact(t *testing.T) {
	srv, fc := newTestRouter(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/contacto", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "https://landing.example")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"nombre":"Ana","email":"no"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, fc.received())

	rec = post(`{"nombre":"Ana","email":"ana@example.com","mensaje":"Hola"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "https://landing.example", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Len(t, fc.received(), 1)

	fc.status = http.StatusBadGateway
	rec = post(`{"nombre":"Ana","email":"ana@example.com"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAPILots(t *testing.T) {
	srv, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lotes", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payload struct {
		Generation uint64 `json:"generation"`
		Lots       []struct {
			ID    string `json:"id"`
			Key   string `json:"key"`
			Fill  string `json:"fill"`
			Bound bool   `json:"bound"`
		} `json:"lots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, uint64(1), payload.Generation)
	require.Len(t, payload.Lots, 4)
	require.Equal(t, "lote1", payload.Lots[0].Key)
	require.Equal(t, "#66bb6a", payload.Lots[0].Fill)
	require.True(t, payload.Lots[0].Bound)
	require.False(t, payload.Lots[3].Bound)
}

func TestAmenityPage(t *testing.T) {
	srv, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/amenidades/casa-club", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := parseDoc(t, rec)
	require.NotEmpty(t, strings.TrimSpace(doc.Find(".content-page h1").Text()))
	require.Positive(t, doc.Find(".panorama[data-panorama]").Length())
	require.Zero(t, doc.Find(".content-page__body script").Length())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/amenidades/no-existe", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionMiddlewareSetsCookie(t *testing.T) {
	h := mw.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var seen bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == mw.SessionCookieName {
			seen = true
		}
	}
	require.True(t, seen, "expected %s cookie, got %v", mw.SessionCookieName, rec.Result().Header["Set-Cookie"])
}

func TestPricesPage(t *testing.T) {
	srv, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/precios", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := parseDoc(t, rec)
	require.Equal(t, "Precios | Granados del Mediterráneo", strings.TrimSpace(doc.Find("title").Text()))
	require.Equal(t, 3, doc.Find(".price-card").Length())
	require.Equal(t, "is-active", doc.Find(`.site-nav a[href="/precios"]`).AttrOr("class", ""))
	require.Equal(t, "/mapa", doc.Find("#map-frame").AttrOr("hx-get", ""))
}

func TestReadyzFollowsMapLoad(t *testing.T) {
	srv, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "no generation loaded")

	// /api/lotes loads the first generation
	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/lotes", nil))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary struct {
		State      string `json:"state"`
		Components []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, "operational", summary.State)
	require.Len(t, summary.Components, 3)
}
