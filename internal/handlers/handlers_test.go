package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dairy-pos/internal/accounts"
	"dairy-pos/internal/ai"
	"dairy-pos/internal/auth"
	"dairy-pos/internal/catalog"
	"dairy-pos/internal/customers"
	"dairy-pos/internal/models"
	"dairy-pos/internal/sales"
	"dairy-pos/internal/testutil"
	"dairy-pos/internal/uploads"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type harness struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	shop   models.Shop
	token  string
}

func newHarness(t *testing.T) *harness {
	gin.SetMode(gin.TestMode)
	db := testutil.MustOpenDB(t)
	tokens := auth.NewTokens("test-secret", time.Hour)
	products := catalog.New(db)
	dir := customers.New(db)

	r := NewRouter(Deps{
		DB:        db,
		Sales:     sales.New(db, products, dir),
		Catalog:   products,
		Customers: dir,
		Accounts:  accounts.New(db, tokens),
		Tokens:    tokens,
		Uploads:   uploads.New(t.TempDir(), "http://localhost:8080", 1<<20),
		Agent:     ai.NewAgent("", db, products),
	})

	shop := testutil.SeedShop(t, db, "owner@dairy.test")
	token, err := tokens.GenerateToken(shop.OwnerID, shop.ID)
	require.NoError(t, err)
	return &harness{t: t, db: db, router: r, shop: shop, token: token}
}

func (h *harness) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h := newHarness(t)
	h.token = ""

	w, out := h.do(http.MethodGet, "/api/sales/shop/"+h.shop.ID, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotEmpty(t, out["message"])

	w, _ = h.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRecordSale_Endpoint(t *testing.T) {
	h := newHarness(t)
	milk := testutil.SeedProduct(t, h.db, h.shop.ID, "Milk", 30, 5)

	w, out := h.do(http.MethodPost, "/api/sales/add", gin.H{
		"shop_id":   h.shop.ID,
		"items":     []gin.H{{"product_id": milk.ID, "name": "Milk", "price": 30, "quantity": 2}},
		"sale_type": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, "Sale recorded successfully!", out["message"])
	require.NotEmpty(t, out["sale_id"])
	require.Equal(t, 3, testutil.StockOf(t, h.db, milk.ID))

	w, out = h.do(http.MethodGet, "/api/sales/"+out["sale_id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "paid", out["payment_status"])
	require.Equal(t, "cash", out["payment_method"])
}

func TestRecordSale_EndpointRejectsShortStock(t *testing.T) {
	h := newHarness(t)
	milk := testutil.SeedProduct(t, h.db, h.shop.ID, "Milk", 30, 1)

	w, out := h.do(http.MethodPost, "/api/sales/add", gin.H{
		"shop_id":   h.shop.ID,
		"items":     []gin.H{{"product_id": milk.ID, "name": "Milk", "price": 30, "quantity": 2}},
		"sale_type": "cash",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Error recording sale.", out["message"])
	require.Contains(t, out["error"], "Milk")
	require.Equal(t, 1, testutil.StockOf(t, h.db, milk.ID))
	require.Zero(t, testutil.CountSales(t, h.db))
}

func TestTabSettlement_Endpoints(t *testing.T) {
	h := newHarness(t)
	milk := testutil.SeedProduct(t, h.db, h.shop.ID, "Milk", 30, 5)
	cust := testutil.SeedCustomer(t, h.db, h.shop.ID, "Ravi")

	w, out := h.do(http.MethodPost, "/api/sales/add", gin.H{
		"shop_id":        h.shop.ID,
		"customer_id":    cust.ID,
		"items":          []gin.H{{"product_id": milk.ID, "name": "Milk", "price": 30, "quantity": 1}},
		"sale_type":      "tab",
		"payment_status": "unpaid",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saleID := out["sale_id"].(string)

	w, _ = h.do(http.MethodGet, "/api/sales/debt/"+cust.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var debts []models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &debts))
	require.Len(t, debts, 1)
	require.Equal(t, models.MethodNone, debts[0].PaymentMethod)

	w, _ = h.do(http.MethodPost, "/api/sales/pay/"+saleID, gin.H{"payment_method": "none"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, out = h.do(http.MethodPost, "/api/sales/pay/"+saleID, gin.H{"payment_method": "online"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Payment recorded successfully!", out["message"])

	w, _ = h.do(http.MethodPost, "/api/sales/pay/"+saleID, gin.H{"payment_method": "cash"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodPost, "/api/sales/pay/does-not-exist", gin.H{"payment_method": "cash"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = h.do(http.MethodGet, "/api/sales/debt/"+cust.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}

func TestAddProductAndCustomer_Endpoints(t *testing.T) {
	h := newHarness(t)

	w, out := h.do(http.MethodPost, "/api/products/add", gin.H{
		"name": "Curd", "price": 40, "unit": "500g", "stock_level": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := out["product"].(map[string]any)
	require.Equal(t, h.shop.ID, product["shop_id"])

	w, _ = h.do(http.MethodPost, "/api/products/add", gin.H{
		"name": "Cheese", "price": 40, "unit": "crate", "stock_level": 10,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodPost, "/api/customers/add", gin.H{
		"name": "Asha", "email": "asha@example.com", "phone": "555", "address": "Lane 2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, out = h.do(http.MethodPost, "/api/customers/add", gin.H{
		"name": "Asha Two", "email": "ASHA@example.com", "phone": "556", "address": "Lane 3",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "A customer with this email already exists for this shop.", out["message"])

	w, _ = h.do(http.MethodGet, "/api/shops/"+h.shop.ID+"/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestRegisterAndLogin_Endpoints(t *testing.T) {
	h := newHarness(t)
	h.token = ""

	reg := gin.H{
		"name": "Meena", "email": "meena@dairy.test", "password": "secret1",
		"shop_name": "Meena Milk", "address": "3 Hill St",
	}
	w, out := h.do(http.MethodPost, "/api/users/register", reg)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, "Registration successful! Please login.", out["message"])

	w, _ = h.do(http.MethodPost, "/api/users/register", reg)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodPost, "/api/users/login", gin.H{"email": "meena@dairy.test", "password": "wrong!!"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, out = h.do(http.MethodPost, "/api/users/login", gin.H{"email": "meena@dairy.test", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, out["token"])
	shop := out["shop"].(map[string]any)
	require.Equal(t, "Meena Milk", shop["shop_name"])

	h.token = out["token"].(string)
	w, _ = h.do(http.MethodGet, "/api/shops/"+shop["id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReports_Endpoints(t *testing.T) {
	h := newHarness(t)
	milk := testutil.SeedProduct(t, h.db, h.shop.ID, "Milk", 25, 10)
	cust := testutil.SeedCustomer(t, h.db, h.shop.ID, "Ravi")

	w, _ := h.do(http.MethodPost, "/api/sales/add", gin.H{
		"shop_id":   h.shop.ID,
		"items":     []gin.H{{"product_id": milk.ID, "name": "Milk", "price": 25, "quantity": 2}},
		"sale_type": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = h.do(http.MethodPost, "/api/sales/add", gin.H{
		"shop_id":        h.shop.ID,
		"customer_id":    cust.ID,
		"items":          []gin.H{{"product_id": milk.ID, "name": "Milk", "price": 25, "quantity": 1}},
		"sale_type":      "tab",
		"payment_status": "unpaid",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, out := h.do(http.MethodGet, "/api/reports/"+h.shop.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.InDelta(t, 50.0, out["revenue"], 0.001)
	require.InDelta(t, 25.0, out["outstanding_debt"], 0.001)

	w, _ = h.do(http.MethodGet, "/api/reports/"+h.shop.ID+"?from=yesterday", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodGet, "/api/reports/"+h.shop.ID+"/debtors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var debtors []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &debtors))
	require.Len(t, debtors, 1)
	require.Equal(t, "Ravi", debtors[0]["name"])
}

func TestAskAI_DisabledWithoutKey(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, "/api/ask", gin.H{"message": "how much milk is left?"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestParseBound(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	start, err := parseBound("", today, false)
	require.NoError(t, err)
	require.Equal(t, today, start)

	end, err := parseBound("2024-03-01", today, true)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 999999999, time.UTC), end)

	exact, err := parseBound("2024-03-01T10:00:00Z", today, true)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), exact)
}
