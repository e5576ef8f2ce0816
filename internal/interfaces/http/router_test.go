package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/devis-renovation-api/internal/application/analytics"
	"github.com/jhoicas/devis-renovation-api/internal/application/auth"
	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/application/catalog"
	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/application/usecase"
	infracatalog "github.com/jhoicas/devis-renovation-api/internal/infrastructure/catalog"
	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/devis-renovation-api/internal/interfaces/http"
	"github.com/jhoicas/devis-renovation-api/internal/testutil/memstore"
)

const tariffsJSON = `{
  "paints": [{"name": "Peinture murs", "type": "support", "bands": [{"code": "supply_install", "min": 100, "max": 200}]}],
  "extras": {
    "paint": [{"name": "Enduit de lissage", "bands": [{"code": "price", "min": 8, "max": 15}]}],
    "kitchen": [{"name": "Crédence", "unit": "ml", "bands": [{"code": "price", "min": 60, "max": 150}]}]
  },
  "services": {"delivery_per_km": 0.55, "travel_per_km": 0.55, "disposal_per_m3": {"depot": 30}}
}`

// newTestApp monta la API completa sobre repositorios en memoria y el generador PDF real.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memstore.New()

	tariffs, err := infracatalog.Parse(strings.NewReader(tariffsJSON))
	require.NoError(t, err)
	_, err = catalog.NewSeeder(store.References(), tariffs, nil, nil).SeedIfEmpty(context.Background())
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}).
		WithBcryptCost(bcrypt.MinCost)
	companyUC := usecase.NewCompanyUseCase(store.Profiles(), store.Users())
	quoteUC := billing.NewQuoteUseCase(store.Quotes(), companyUC, billing.QuoteDefaults{ValidityDays: 30}, nil)
	invoiceUC := billing.NewInvoiceUseCase(store.Invoices(), store.TxRunner(), nil)
	pdfUC := billing.NewPDFUseCase(store.Quotes(), store.Invoices(), companyUC, pdf.NewMarotoPDFGenerator())

	app := apphttp.NewApp(apphttp.AppOptions{Name: "test"})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		CatalogUC:   catalog.NewUseCase(store.References(), nil, tariffs.Services),
		QuoteUC:     quoteUC,
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		DashboardUC: appanalytics.NewDashboardUseCase(store.Analytics(), store.Quotes()),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "secret1", "name": "Artisan",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.AuthResponse](t, resp).Token
}

var sampleQuoteBody = map[string]any{
	"client": map[string]any{"last_name": "Martin", "first_name": "Claire", "city": "Lyon"},
	"lines": []map[string]any{
		{
			"category": "paint", "reference_name": "Peinture murs", "unit": "m²",
			"quantity": 5, "price_min": 100, "price_max": 200, "default_price": 150,
		},
		{
			"category": "other", "reference_name": "Nettoyage", "unit": "forfait",
			"quantity": 1, "price_min": 0, "price_max": 500, "default_price": 300, "complimentary": true,
		},
	},
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	resp := doJSON(t, newTestApp(t), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRutaDesconocida_NotFoundSinToken(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/api/unknown", "", nil).StatusCode)

	// los grupos protegidos siguen exigiendo token
	for _, path := range []string{"/api/company", "/api/quotes", "/api/invoices", "/api/dashboard/summary"} {
		assert.Equal(t, http.StatusUnauthorized, doJSON(t, app, http.MethodGet, path, "", nil).StatusCode, path)
	}
}

func TestAuth_RegistroLoginYMe(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "artisan@example.com")

	me := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.StatusCode)
	assert.Equal(t, "artisan@example.com", decode[dto.UserResponse](t, me).Email)

	dup := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "artisan@example.com", "password": "secret1", "name": "Otro",
	})
	assert.Equal(t, http.StatusConflict, dup.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decode[dto.ErrorResponse](t, dup).Code)

	bad := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "artisan@example.com", "password": "incorrecta",
	})
	unknown := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nadie@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, decode[dto.ErrorResponse](t, bad), decode[dto.ErrorResponse](t, unknown))
}

func TestAuth_RegistroInvalido_Validation(t *testing.T) {
	resp := doJSON(t, newTestApp(t), http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "no-es-email", "password": "123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "email")
	assert.Contains(t, body.Message, "name: required")
}

func TestReferences_Publicas(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/references/extras?category=paint", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decode[[]dto.ReferenceItemResponse](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, "Enduit de lissage", items[0].Name)

	empty := doJSON(t, app, http.MethodGet, "/api/references/kitchen/worktops", "", nil)
	require.Equal(t, http.StatusOK, empty.StatusCode)
	assert.Empty(t, decode[[]dto.ReferenceItemResponse](t, empty))

	services := doJSON(t, app, http.MethodGet, "/api/references/services", "", nil)
	require.Equal(t, http.StatusOK, services.StatusCode)
	assert.Equal(t, "0.55", decode[dto.ServiceRatesResponse](t, services).TravelPerKm.String())
}

func TestQuotes_FlujoCompletoConFactura(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "artisan@example.com")

	// crear devis
	created := doJSON(t, app, http.MethodPost, "/api/quotes", token, sampleQuoteBody)
	require.Equal(t, http.StatusCreated, created.StatusCode)
	q := decode[dto.QuoteResponse](t, created)
	assert.Equal(t, "draft", q.Status)
	assert.Equal(t, "750.00", q.TotalHT.StringFixed(2))
	assert.Equal(t, "150.00", q.TotalTVA.StringFixed(2))
	assert.Equal(t, "900.00", q.TotalTTC.StringFixed(2))

	// PDF del devis
	pdfResp := doJSON(t, app, http.MethodGet, "/api/quotes/"+q.ID+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
	assert.Contains(t, pdfResp.Header.Get("Content-Disposition"), "Devis_"+q.Number+".pdf")
	raw, err := io.ReadAll(pdfResp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	// un draft no se factura
	draft := doJSON(t, app, http.MethodPost, "/api/invoices", token, map[string]string{"quote_id": q.ID})
	assert.Equal(t, http.StatusConflict, draft.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, draft).Code)

	accepted := doJSON(t, app, http.MethodPatch, "/api/quotes/"+q.ID, token, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, accepted.StatusCode)

	// facturar dos veces
	inv := doJSON(t, app, http.MethodPost, "/api/invoices", token, map[string]string{"quote_id": q.ID})
	require.Equal(t, http.StatusCreated, inv.StatusCode)
	invoice := decode[dto.InvoiceResponse](t, inv)
	again := doJSON(t, app, http.MethodPost, "/api/invoices", token, map[string]string{"quote_id": q.ID})
	assert.Equal(t, http.StatusConflict, again.StatusCode)
	assert.Equal(t, "INVOICE_EXISTS", decode[dto.ErrorResponse](t, again).Code)

	// un devis facturado no se borra
	del := doJSON(t, app, http.MethodDelete, "/api/quotes/"+q.ID, token, nil)
	assert.Equal(t, http.StatusConflict, del.StatusCode)

	// pagar y no volver a pending
	paid := doJSON(t, app, http.MethodPut, "/api/invoices/"+invoice.ID+"/status", token, map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, paid.StatusCode)
	assert.NotNil(t, decode[dto.InvoiceResponse](t, paid).PaidAt)
	back := doJSON(t, app, http.MethodPut, "/api/invoices/"+invoice.ID+"/status", token, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusConflict, back.StatusCode)

	// dashboard
	dash := doJSON(t, app, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, dash.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, dash)
	assert.Equal(t, 1, summary.QuotesByStatus["invoiced"])
	assert.Equal(t, "900.00", summary.PaidThisMonthTTC.StringFixed(2))

	// borrar la factura devuelve el devis a accepted
	delInv := doJSON(t, app, http.MethodDelete, "/api/invoices/"+invoice.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, delInv.StatusCode)
	got := doJSON(t, app, http.MethodGet, "/api/quotes/"+q.ID, token, nil)
	require.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, "accepted", decode[dto.QuoteResponse](t, got).Status)
}

func TestQuotes_DeOtroUsuario_NotFound(t *testing.T) {
	app := newTestApp(t)
	owner := register(t, app, "owner@example.com")
	other := register(t, app, "other@example.com")

	created := doJSON(t, app, http.MethodPost, "/api/quotes", owner, sampleQuoteBody)
	require.Equal(t, http.StatusCreated, created.StatusCode)
	q := decode[dto.QuoteResponse](t, created)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp := doJSON(t, app, method, "/api/quotes/"+q.ID, other, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
	}
	put := doJSON(t, app, http.MethodPut, "/api/quotes/"+q.ID, other, map[string]any{"notes": "x"})
	assert.Equal(t, http.StatusNotFound, put.StatusCode)

	list := doJSON(t, app, http.MethodGet, "/api/quotes", other, nil)
	require.Equal(t, http.StatusOK, list.StatusCode)
	assert.Zero(t, decode[dto.ListResponse[dto.QuoteSummaryResponse]](t, list).Total)
}

func TestQuotes_Validacion(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "artisan@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/quotes", token, map[string]any{
		"client": map[string]any{},
		"lines":  []map[string]any{{"category": "bathroom", "reference_name": "X", "unit": "u", "quantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "client.last_name")
	assert.Contains(t, body.Message, "lines[0].category")

	patch := doJSON(t, app, http.MethodPatch, "/api/quotes/whatever", token, "no-json")
	assert.Equal(t, http.StatusBadRequest, patch.StatusCode)

	unauth := doJSON(t, app, http.MethodGet, "/api/quotes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, unauth.StatusCode)
}

func TestCompany_PerfilPorDefectoYActualizacion(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "artisan@example.com")

	get := doJSON(t, app, http.MethodGet, "/api/company", token, nil)
	require.Equal(t, http.StatusOK, get.StatusCode)
	profile := decode[dto.CompanyProfileResponse](t, get)
	assert.Equal(t, "Artisan", profile.CompanyName)

	put := doJSON(t, app, http.MethodPut, "/api/company", token, map[string]any{"siret": "123 456 789 00012"})
	require.Equal(t, http.StatusOK, put.StatusCode)
	updated := decode[dto.CompanyProfileResponse](t, put)
	assert.Equal(t, "123 456 789 00012", updated.SIRET)
	assert.Equal(t, "Artisan", updated.CompanyName)
}
