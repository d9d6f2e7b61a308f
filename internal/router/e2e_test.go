//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - full sale cycle: login → create customer/product → vente → list
//   - facilite vente with installment plan, then settling every échéance
//   - cancelling a vente restores stock
//   - comptabilité summary over the created sales

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"seratauto/internal/config"
	"seratauto/internal/infra"
	"seratauto/internal/router"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// assertAmount compares money values numerically so "750" and "750.00"
// both pass regardless of the column scale the driver reports.
func assertAmount(t *testing.T, want, got string) {
	t.Helper()
	w, err := decimal.NewFromString(want)
	require.NoError(t, err)
	g, err := decimal.NewFromString(got)
	require.NoError(t, err)
	assert.True(t, w.Equal(g), "expected %s, got %s", want, got)
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("seratauto_test"),
		tcPostgres.WithUsername("seratauto"),
		tcPostgres.WithPassword("seratauto"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		NeotrackAPIURL:     "http://localhost:9999", // unused in these tests
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("seratauto2026"), 12)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO users (name, username, email, password_hash, role, active, created_at, updated_at)
		VALUES ('Admin E2E', 'admin@e2e.test', 'admin@e2e.test', ?, 'administrateur', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error)

	neotrackCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, neotrackCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@e2e.test", "password": "seratauto2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func createCustomer(t *testing.T, env *testEnv, cin string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/customers",
		jsonBody(t, map[string]any{
			"fname":       "Mouna",
			"lname":       "Trabelsi",
			"cin":         cin,
			"phoneNumber": "21698123456",
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var c struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &c)
	return c.ID
}

func createProduct(t *testing.T, env *testEnv, title string, price float64, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"title":   title,
			"s_price": price,
			"b_price": price * 0.7,
			"stock":   stock,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &p)
	return p.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullSaleCycle(t *testing.T) {
	env := setupTestEnv(t)

	customerID := createCustomer(t, env, "11223344")
	productID := createProduct(t, env, "Traceur GPS TK-103", 250.0, 20)

	venteResp := do(t, env.server, "POST", "/v1/ventes",
		jsonBody(t, map[string]any{
			"customer":    customerID,
			"articles":    []map[string]any{{"product": productID, "quantity": 3}},
			"paymentType": "comptant",
		}), env.token)
	require.Equal(t, http.StatusCreated, venteResp.StatusCode)
	var vente struct {
		ID            string `json:"id"`
		TotalCost     string `json:"totalCost"`
		PaymentStatus string `json:"paymentStatus"`
	}
	decodeJSON(t, venteResp, &vente)
	assert.Equal(t, "paid", vente.PaymentStatus)
	assertAmount(t, "750", vente.TotalCost)

	// Stock decremented
	prodResp := do(t, env.server, "GET", "/v1/products/"+productID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 17, prod.Stock)

	// List includes the sale
	listResp := do(t, env.server, "GET", fmt.Sprintf("/v1/ventes?customer=%s", customerID), nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.Equal(t, int64(1), list.Total)
}

func TestE2E_FaciliteLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	customerID := createCustomer(t, env, "55667788")
	productID := createProduct(t, env, "Autoradio Android 10\"", 600.0, 5)

	venteResp := do(t, env.server, "POST", "/v1/ventes",
		jsonBody(t, map[string]any{
			"customer":    customerID,
			"articles":    []map[string]any{{"product": productID, "quantity": 1}},
			"paymentType": "facilite",
			"installments": []map[string]any{
				{"amount": 200, "dueDate": "2026-10-01"},
				{"amount": 200, "dueDate": "2026-11-01"},
				{"amount": 200, "dueDate": "2026-12-01"},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, venteResp.StatusCode)
	var vente struct {
		ID            string `json:"id"`
		PaymentStatus string `json:"paymentStatus"`
		Installments  []struct {
			ID string `json:"id"`
		} `json:"installments"`
	}
	decodeJSON(t, venteResp, &vente)
	require.Equal(t, "pending", vente.PaymentStatus)
	require.Len(t, vente.Installments, 3)

	// Pay each installment; the vente progresses pending → en_cours → paid
	for i, inst := range vente.Installments {
		payResp := do(t, env.server, "PATCH", "/v1/installments/"+inst.ID+"/paid",
			jsonBody(t, map[string]any{}), env.token)
		require.Equal(t, http.StatusOK, payResp.StatusCode)
		payResp.Body.Close()

		getResp := do(t, env.server, "GET", "/v1/ventes/"+vente.ID, nil, env.token)
		require.Equal(t, http.StatusOK, getResp.StatusCode)
		var current struct {
			PaymentStatus string `json:"paymentStatus"`
		}
		decodeJSON(t, getResp, &current)
		if i < 2 {
			assert.Equal(t, "en_cours", current.PaymentStatus)
		} else {
			assert.Equal(t, "paid", current.PaymentStatus)
		}
	}
}

func TestE2E_DeleteVenteRestoresStock(t *testing.T) {
	env := setupTestEnv(t)

	customerID := createCustomer(t, env, "99001122")
	productID := createProduct(t, env, "Batterie 70Ah", 280.0, 10)

	venteResp := do(t, env.server, "POST", "/v1/ventes",
		jsonBody(t, map[string]any{
			"customer":    customerID,
			"articles":    []map[string]any{{"product": productID, "quantity": 4}},
			"paymentType": "comptant",
		}), env.token)
	require.Equal(t, http.StatusCreated, venteResp.StatusCode)
	var vente struct {
		ID string `json:"id"`
	}
	decodeJSON(t, venteResp, &vente)

	delResp := do(t, env.server, "DELETE", "/v1/ventes/"+vente.ID, nil, env.token)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	prodResp := do(t, env.server, "GET", "/v1/products/"+productID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 10, prod.Stock)
}

func TestE2E_ComptabiliteSummary(t *testing.T) {
	env := setupTestEnv(t)

	customerID := createCustomer(t, env, "33445566")
	productID := createProduct(t, env, "Kit xénon", 150.0, 30)

	for i := 0; i < 2; i++ {
		resp := do(t, env.server, "POST", "/v1/ventes",
			jsonBody(t, map[string]any{
				"customer":    customerID,
				"articles":    []map[string]any{{"product": productID, "quantity": 1}},
				"paymentType": "comptant",
			}), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	sumResp := do(t, env.server, "GET", "/v1/comptabilite/summary", nil, env.token)
	require.Equal(t, http.StatusOK, sumResp.StatusCode)
	var summary struct {
		TotalRevenue      string `json:"totalRevenue"`
		ComptantRevenue   string `json:"comptantRevenue"`
		TotalTransactions int64  `json:"totalTransactions"`
		PaidCount         int64  `json:"paidCount"`
	}
	decodeJSON(t, sumResp, &summary)
	assertAmount(t, "300", summary.TotalRevenue)
	assertAmount(t, "300", summary.ComptantRevenue)
	assert.Equal(t, int64(2), summary.TotalTransactions)
	assert.Equal(t, int64(2), summary.PaidCount)
}
