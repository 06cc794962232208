//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"smartfinance-go/internal/app"
	"smartfinance-go/internal/config"
	"smartfinance-go/internal/db"
	transactionsdomain "smartfinance-go/internal/domain/transactions"
	transactionsrepo "smartfinance-go/internal/repository/postgres/transactions"
	"smartfinance-go/internal/transport/httpserver"
	"smartfinance-go/internal/transport/httpserver/handler"
	"smartfinance-go/pkg/logger"

	"gorm.io/gorm"
)

const (
	aliceToken = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	bobToken   = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

type testEnv struct {
	server     *httptest.Server
	authServer *httptest.Server
	db         *gorm.DB
	client     *http.Client
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.Discard()
	authServer := newAuthServer(t)

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			URL:            authServer.URL,
			PublishableKey: "test-key",
			Timeout:        2 * time.Second,
		},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(dbConn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}
	if _, err := transactionsdomain.SeedDefaultCategories(context.Background(), transactionsrepo.NewPostgres(dbConn)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	services := app.NewServices(cfg, dbConn)
	router := httpserver.NewRouter(cfg, handler.New(services, log), services.Accounts, log)

	return &testEnv{
		server:     httptest.NewServer(router),
		authServer: authServer,
		db:         dbConn,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.authServer.Close()
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    token,
			"email": token[:4] + "@example.com",
			"user_metadata": map[string]interface{}{
				"username": "user-" + token[:4],
			},
		})
	}))
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE savings_goals, budgets, transactions, categories, profiles CASCADE",
	).Error
}

func (e *testEnv) request(t *testing.T, method, path, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, respBody
}

func decode(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type categoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsDefault bool   `json:"is_default"`
}

type transactionResponse struct {
	ID           string  `json:"id"`
	Amount       string  `json:"amount"`
	CategoryName *string `json:"category_name"`
	Date         string  `json:"date"`
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	resp, _ := env.request(t, http.MethodGet, "/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.StatusCode)
	}

	resp, body := env.request(t, http.MethodGet, "/api/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("auth/me without token: expected 401, got %d", resp.StatusCode)
	}
	var envelope errorEnvelope
	decode(t, body, &envelope)
	if envelope.Error.Code != "invalid_token" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}

	resp, body = env.request(t, http.MethodGet, "/api/auth/me/", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("auth/me: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var me struct {
		ID            string `json:"id"`
		Username      string `json:"username"`
		MonthlyIncome string `json:"monthly_income"`
		Currency      string `json:"currency"`
	}
	decode(t, body, &me)
	if me.ID != aliceToken || me.Username != "user-aaaa" || me.Currency != "USD" || me.MonthlyIncome != "0.00" {
		t.Fatalf("unexpected profile %+v", me)
	}

	resp, body = env.request(t, http.MethodPatch, "/api/auth/me", aliceToken, map[string]interface{}{
		"monthly_income": "5200.50",
		"currency":       "eur",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch auth/me: expected 200, got %d: %s", resp.StatusCode, body)
	}
	decode(t, body, &me)
	if me.MonthlyIncome != "5200.50" || me.Currency != "EUR" {
		t.Fatalf("unexpected updated profile %+v", me)
	}
}

func TestE2ETransactionsAndInsights(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	resp, body := env.request(t, http.MethodGet, "/api/transactions/categories", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("categories: expected 200, got %d", resp.StatusCode)
	}
	var categories []categoryResponse
	decode(t, body, &categories)
	var rentID string
	for _, category := range categories {
		if category.Name == "Rent" {
			rentID = category.ID
		}
	}
	if len(categories) != 12 || rentID == "" {
		t.Fatalf("expected seeded defaults, got %+v", categories)
	}

	resp, _ = env.request(t, http.MethodDelete, "/api/transactions/categories/"+rentID, aliceToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("delete default category: expected 403, got %d", resp.StatusCode)
	}

	for _, month := range []string{"2026-01", "2026-02", "2026-03"} {
		for _, day := range []string{"05", "20"} {
			resp, body = env.request(t, http.MethodPost, "/api/transactions", aliceToken, map[string]interface{}{
				"type":        "expense",
				"amount":      "100.00",
				"category":    rentID,
				"description": "rent share",
				"date":        month + "-" + day,
			})
			if resp.StatusCode != http.StatusCreated {
				t.Fatalf("create transaction: expected 201, got %d: %s", resp.StatusCode, body)
			}
		}
		resp, body = env.request(t, http.MethodPost, "/api/transactions", aliceToken, map[string]interface{}{
			"type":   "income",
			"amount": 3000,
			"date":   month + "-01",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create income: expected 201, got %d: %s", resp.StatusCode, body)
		}
	}

	resp, body = env.request(t, http.MethodGet, "/api/transactions?type=expense&limit=2", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	var list struct {
		Count   int64                 `json:"count"`
		Results []transactionResponse `json:"results"`
	}
	decode(t, body, &list)
	if list.Count != 6 || len(list.Results) != 2 {
		t.Fatalf("unexpected list %+v", list)
	}
	if list.Results[0].Date != "2026-03-20" || list.Results[0].Amount != "100.00" {
		t.Fatalf("expected newest expense first, got %+v", list.Results[0])
	}
	if list.Results[0].CategoryName == nil || *list.Results[0].CategoryName != "Rent" {
		t.Fatalf("expected category name, got %+v", list.Results[0])
	}

	resp, body = env.request(t, http.MethodGet, "/api/transactions", aliceToken, nil)
	decode(t, body, &list)
	if resp.StatusCode != http.StatusOK || list.Count != 9 || len(list.Results) != 9 {
		t.Fatalf("expected every transaction without a limit, got %d %+v", resp.StatusCode, list)
	}

	resp, body = env.request(t, http.MethodPatch, "/api/transactions/"+list.Results[0].ID, aliceToken, map[string]interface{}{
		"type":     "expense",
		"amount":   "110.00",
		"category": rentID,
		"date":     list.Results[0].Date,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch transaction: expected 200, got %d: %s", resp.StatusCode, body)
	}

	resp, body = env.request(t, http.MethodGet, "/api/transactions", bobToken, nil)
	decode(t, body, &list)
	if resp.StatusCode != http.StatusOK || list.Count != 0 || len(list.Results) != 0 {
		t.Fatalf("expected bob to see nothing, got %d %+v", resp.StatusCode, list)
	}

	resp, body = env.request(t, http.MethodGet, "/api/transactions/summary?start_date=2026-01-01&end_date=2026-03-31", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", resp.StatusCode)
	}
	var summary struct {
		TotalIncome   float64 `json:"total_income"`
		TotalExpenses float64 `json:"total_expenses"`
		Balance       float64 `json:"balance"`
	}
	decode(t, body, &summary)
	if summary.TotalIncome != 9000 || summary.TotalExpenses != 610 || summary.Balance != 8390 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	resp, body = env.request(t, http.MethodGet, "/api/ml/predict-expenses", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("predict: expected 200, got %d", resp.StatusCode)
	}
	var forecast struct {
		Prediction float64 `json:"prediction"`
		Confidence string  `json:"confidence"`
		Message    string  `json:"message"`
	}
	decode(t, body, &forecast)
	if forecast.Confidence != "low" || forecast.Message != "Insufficient data for prediction" {
		t.Fatalf("expected insufficient data with 9 records, got %+v", forecast)
	}

	resp, body = env.request(t, http.MethodGet, "/api/ml/insights", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("insights: expected 200, got %d", resp.StatusCode)
	}
	var insights struct {
		Insights []struct {
			Type     string `json:"type"`
			Category string `json:"category"`
		} `json:"insights"`
		TotalAnalyzed int `json:"total_analyzed"`
	}
	decode(t, body, &insights)
	if insights.TotalAnalyzed != 9 || len(insights.Insights) == 0 || insights.Insights[0].Category != "Rent" {
		t.Fatalf("unexpected insights %+v", insights)
	}

	resp, body = env.request(t, http.MethodPost, "/api/ml/predict-category", aliceToken, map[string]interface{}{
		"amount":      12,
		"description": "Uber to airport",
	})
	var prediction struct {
		PredictedCategory string  `json:"predicted_category"`
		Confidence        float64 `json:"confidence"`
	}
	decode(t, body, &prediction)
	if resp.StatusCode != http.StatusOK || prediction.PredictedCategory != "transport" || prediction.Confidence != 0.8 {
		t.Fatalf("unexpected prediction %d %+v", resp.StatusCode, prediction)
	}
}

func TestE2EBudgetsAndGoals(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	resp, body := env.request(t, http.MethodPost, "/api/transactions/categories", aliceToken, map[string]interface{}{
		"name":  "Pets",
		"type":  "expense",
		"color": "#aabbcc",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d: %s", resp.StatusCode, body)
	}
	var pets categoryResponse
	decode(t, body, &pets)

	resp, body = env.request(t, http.MethodGet, "/api/transactions/categories/"+pets.ID, aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get category: expected 200, got %d: %s", resp.StatusCode, body)
	}
	resp, _ = env.request(t, http.MethodGet, "/api/transactions/categories/"+pets.ID, bobToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign category: expected 404, got %d", resp.StatusCode)
	}

	resp, body = env.request(t, http.MethodPut, "/api/transactions/categories/"+pets.ID, aliceToken, map[string]interface{}{
		"name":  "Pets",
		"type":  "expense",
		"icon":  "paw",
		"color": "#112233",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put category: expected 200, got %d: %s", resp.StatusCode, body)
	}

	resp, _ = env.request(t, http.MethodPost, "/api/transactions/categories", aliceToken, map[string]interface{}{
		"name": "pets",
		"type": "expense",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate category: expected 409, got %d", resp.StatusCode)
	}

	resp, body = env.request(t, http.MethodPost, "/api/transactions", aliceToken, map[string]interface{}{
		"type":     "expense",
		"amount":   "75.25",
		"category": pets.ID,
		"date":     "2026-10-05",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create transaction: expected 201, got %d: %s", resp.StatusCode, body)
	}

	resp, body = env.request(t, http.MethodPost, "/api/transactions/budgets", aliceToken, map[string]interface{}{
		"category":   pets.ID,
		"amount":     "300",
		"start_date": "2026-10-01",
		"end_date":   "2026-10-31",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create budget: expected 201, got %d: %s", resp.StatusCode, body)
	}
	var budget struct {
		ID             string  `json:"id"`
		CategoryName   string  `json:"category_name"`
		SpentAmount    float64 `json:"spent_amount"`
		PercentageUsed float64 `json:"percentage_used"`
		Period         string  `json:"period"`
	}
	decode(t, body, &budget)
	if budget.CategoryName != "Pets" || budget.SpentAmount != 75.25 || budget.PercentageUsed != 25.08 || budget.Period != "monthly" {
		t.Fatalf("unexpected budget %+v", budget)
	}

	resp, _ = env.request(t, http.MethodGet, "/api/transactions/budgets/"+budget.ID, bobToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign budget: expected 404, got %d", resp.StatusCode)
	}

	resp, body = env.request(t, http.MethodPost, "/api/transactions/savings-goals", aliceToken, map[string]interface{}{
		"name":          "Emergency fund",
		"target_amount": "1000",
		"target_date":   "2027-06-30",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create goal: expected 201, got %d: %s", resp.StatusCode, body)
	}
	var goal struct {
		ID                 string  `json:"id"`
		CurrentAmount      string  `json:"current_amount"`
		ProgressPercentage float64 `json:"progress_percentage"`
		IsCompleted        bool    `json:"is_completed"`
	}
	decode(t, body, &goal)

	resp, body = env.request(t, http.MethodPost, "/api/transactions/savings-goals/"+goal.ID+"/add_funds", aliceToken, map[string]interface{}{
		"amount": "abc",
	})
	var envelope errorEnvelope
	decode(t, body, &envelope)
	if resp.StatusCode != http.StatusBadRequest || envelope.Error.Code != "invalid_amount" || envelope.Error.Message != "Invalid amount" {
		t.Fatalf("expected invalid amount error, got %d %+v", resp.StatusCode, envelope)
	}

	resp, body = env.request(t, http.MethodPost, "/api/transactions/savings-goals/"+goal.ID+"/add_funds", aliceToken, map[string]interface{}{
		"amount": 1000,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add funds: expected 200, got %d: %s", resp.StatusCode, body)
	}
	decode(t, body, &goal)
	if !goal.IsCompleted || goal.CurrentAmount != "1000.00" || goal.ProgressPercentage != 100 {
		t.Fatalf("expected completed goal, got %+v", goal)
	}
}
