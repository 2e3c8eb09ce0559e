package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MedStock-api/internal/application/auth"
	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/application/export"
	"github.com/jhoicas/MedStock-api/internal/application/inventory"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/stock"
	"github.com/jhoicas/MedStock-api/internal/infrastructure/memory"
	"github.com/jhoicas/MedStock-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/MedStock-api/internal/interfaces/http"
	"github.com/jhoicas/MedStock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	sites := entity.NewSiteSet(entity.Site{ID: "north", Name: "North Clinic"}, entity.Site{ID: "south", Name: "South Clinic"})
	supplies := memory.NewSupplyStore()
	reconciler := stock.NewReconciler(stock.DefaultThreshold)

	authUC := auth.NewAuthUseCase(memory.NewUserStore(), sites, auth.NewDenylist(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	orderListUC := inventory.NewOrderListUseCase(supplies, sites, reconciler)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		SupplyUC:     inventory.NewSupplyUseCase(supplies, supplies, reconciler, entity.FieldUPC),
		OrderListUC:  orderListUC,
		ExportUC:     export.NewOrderListExportUseCase(orderListUC, pdf.NewMarotoPDFGenerator(), 35),
		Sites:        sites,
		LoginLimiter: apphttp.NewIPRateLimiter(600, 100),
		Logger:       logger.Nop(),
		JWTSecret:    testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signUpAndLogin registra al usuario en la sede y devuelve su token.
func signUpAndLogin(t *testing.T, app *fiber.App, email, site string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: email, Password: "password123", SiteID: site})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "password123", SiteID: site})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return out.Token
}

func createSupply(t *testing.T, app *fiber.App, token, name, category string, qty int, upc string) dto.SupplyResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/supplies", token, map[string]interface{}{
		"name": name, "category": category, "stock": qty, "upc": upc,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.SupplyMutationResponse
	decode(t, resp, &out)
	require.NotNil(t, out.Supply)
	return *out.Supply
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_Publico(t *testing.T) {
	app := buildAPI(t)

	var sites []dto.SiteResponse
	decode(t, call(t, app, http.MethodGet, "/api/sites", "", nil), &sites)
	assert.Equal(t, []dto.SiteResponse{{ID: "north", Name: "North Clinic"}, {ID: "south", Name: "South Clinic"}}, sites)

	var categories []string
	decode(t, call(t, app, http.MethodGet, "/api/categories", "", nil), &categories)
	assert.Equal(t, entity.Categories, categories)
}

func TestSupplies_RequiereToken(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, http.MethodGet, "/api/supplies", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_MiddlewareDeAuthSoloEnRutasProtegidas(t *testing.T) {
	app := buildAPI(t)

	resp := call(t, app, http.MethodGet, "/api/unknown", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "rutas fuera de los grupos protegidos no exigen token")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodPost, "/api/supplies/scan"},
	} {
		resp := call(t, app, tc.method, tc.path, "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, tc.path)
	}

	resp = call(t, app, http.MethodGet, "/api/categories", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_SedeDistintaALaCuenta(t *testing.T) {
	app := buildAPI(t)
	signUpAndLogin(t, app, "nurse@clinic.org", "north")
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nurse@clinic.org", Password: "password123", SiteID: "south"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSupplies_FlujoCompleto(t *testing.T) {
	app := buildAPI(t)
	token := signUpAndLogin(t, app, "nurse@clinic.org", "north")

	gauze := createSupply(t, app, token, "Gauze", entity.CategoryWoundCare, 5, "0001")
	assert.False(t, gauze.LowStock)
	createSupply(t, app, token, "Aspirin", entity.CategoryMeds, 10, "")

	// Decremento manual: 5 -> 4 cruza el umbral.
	resp := call(t, app, http.MethodPatch, "/api/supplies/"+gauze.ID+"/stock", token, dto.AdjustStockRequest{Delta: -1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adjusted dto.SupplyMutationResponse
	decode(t, resp, &adjusted)
	assert.Equal(t, 4, adjusted.Supply.Stock)
	assert.True(t, adjusted.Supply.LowStock)
	require.NotNil(t, adjusted.Inventory)
	assert.Equal(t, 1, adjusted.Inventory.Summary.LowStock)

	// Escaneo de entrada por UPC: 4 -> 5 sale de stock bajo.
	resp = call(t, app, http.MethodPost, "/api/supplies/scan", token, dto.ScanRequest{Key: "0001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var scanned dto.ScanResponse
	decode(t, resp, &scanned)
	assert.Equal(t, "updated", scanned.Outcome)
	assert.Equal(t, 5, scanned.Supply.Stock)
	assert.False(t, scanned.Supply.LowStock)

	// Escaneo sin coincidencia: 200 con borrador.
	resp = call(t, app, http.MethodPost, "/api/supplies/scan", token, dto.ScanRequest{Key: "9999"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var missing dto.ScanResponse
	decode(t, resp, &missing)
	assert.Equal(t, "not_found", missing.Outcome)
	require.NotNil(t, missing.Draft)
	assert.Equal(t, "9999", missing.Draft.UPC)

	// Lista filtrada y ordenada.
	var list dto.InventoryResponse
	decode(t, call(t, app, http.MethodGet, "/api/supplies?category=Meds", token, nil), &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Aspirin", list.Items[0].Name)
	assert.Equal(t, 2, list.Summary.Supplies)

	var sum dto.InventorySummary
	decode(t, call(t, app, http.MethodGet, "/api/supplies/summary", token, nil), &sum)
	assert.Equal(t, 15, sum.TotalStock)
}

func TestSupplies_ErroresDeValidacionYConflicto(t *testing.T) {
	app := buildAPI(t)
	token := signUpAndLogin(t, app, "nurse@clinic.org", "north")
	createSupply(t, app, token, "Gauze", entity.CategoryWoundCare, 5, "0001")

	resp := call(t, app, http.MethodPost, "/api/supplies", token, map[string]interface{}{"name": "", "category": "Meds", "stock": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/supplies", token, map[string]interface{}{"name": "X", "category": "Meds", "stock": 1, "upc": "0001"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPatch, "/api/supplies/missing/stock", token, dto.AdjustStockRequest{Delta: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/supplies?category=Snacks", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSupplies_AislamientoPorSede(t *testing.T) {
	app := buildAPI(t)
	north := signUpAndLogin(t, app, "north@clinic.org", "north")
	south := signUpAndLogin(t, app, "south@clinic.org", "south")
	gauze := createSupply(t, app, north, "Gauze", entity.CategoryWoundCare, 5, "")

	var list dto.InventoryResponse
	decode(t, call(t, app, http.MethodGet, "/api/supplies", south, nil), &list)
	assert.Empty(t, list.Items)

	resp := call(t, app, http.MethodPatch, "/api/supplies/"+gauze.ID+"/stock", south, dto.AdjustStockRequest{Delta: 1})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSupplies_DeleteSoloAdmin(t *testing.T) {
	app := buildAPI(t)
	admin := signUpAndLogin(t, app, "admin@clinic.org", "north")
	staff := signUpAndLogin(t, app, "staff@clinic.org", "north")
	gauze := createSupply(t, app, admin, "Gauze", entity.CategoryWoundCare, 5, "")

	resp := call(t, app, http.MethodDelete, "/api/supplies/"+gauze.ID, staff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodDelete, "/api/supplies/"+gauze.ID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.SupplyMutationResponse
	decode(t, resp, &out)
	require.NotNil(t, out.Inventory)
	assert.Empty(t, out.Inventory.Items)
}

func TestOrderList_JSONTextoYPDF(t *testing.T) {
	app := buildAPI(t)
	token := signUpAndLogin(t, app, "nurse@clinic.org", "north")
	createSupply(t, app, token, "Gloves", entity.CategoryPPE, 1, "")
	createSupply(t, app, token, "Gauze", entity.CategoryWoundCare, 20, "")

	var list dto.OrderListResponse
	decode(t, call(t, app, http.MethodGet, "/api/supplies/order-list", token, nil), &list)
	assert.Equal(t, "North Clinic", list.SiteName)
	require.Len(t, list.Lines, 1)
	assert.Equal(t, "Gloves", list.Lines[0].Name)

	resp := call(t, app, http.MethodGet, "/api/supplies/order-list/print", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	text, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(text), "Gloves")
	assert.NotContains(t, string(text), "Gauze")

	resp = call(t, app, http.MethodGet, "/api/supplies/order-list/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "lista-pedido-north-")
	doc, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestLogout_RevocaToken(t *testing.T) {
	app := buildAPI(t)
	token := signUpAndLogin(t, app, "nurse@clinic.org", "north")

	var me dto.UserResponse
	decode(t, call(t, app, http.MethodGet, "/api/auth/me", token, nil), &me)
	assert.Equal(t, "nurse@clinic.org", me.Email)
	assert.Equal(t, entity.RoleAdmin, me.Role)

	resp := call(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/supplies", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
