package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(b)
}

// decodeData pulls the data array out of the response envelope.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rec.Body.String())
	}
	return envelope.Data
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set ZOINCAS_DB_TEST=1 and
	// ZOINCAS_DATABASE_DSN to run them against a disposable database.
	if os.Getenv("ZOINCAS_DB_TEST") != "1" {
		t.Skip("integration tests are disabled; set ZOINCAS_DB_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	jwtSecret = []byte("integration-test-secret")
	tokenTTL = time.Hour
	initDB(cfg)
	r := gin.Default()
	setupRoutes(r)
	return r
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	username := fmt.Sprintf("user%d", time.Now().UnixNano())

	// 1. Register
	resp := performRequest(r, http.MethodPost, "/register",
		jsonBody(t, map[string]string{"username": username, "email": username + "@example.com", "password": "pass123"}), "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login
	resp = performRequest(r, http.MethodPost, "/login",
		jsonBody(t, map[string]string{"username": username, "password": "pass123"}), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	token, _ := decodeData(t, resp)[0]["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}

	// 3. Create an account
	resp = performRequest(r, http.MethodPost, "/accounts",
		jsonBody(t, map[string]any{"name": "Checking", "initialBalance": 100.0}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create account failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	accountID, _ := decodeData(t, resp)[0]["id"].(string)

	// 4. Create a category
	resp = performRequest(r, http.MethodPost, "/categories",
		jsonBody(t, map[string]any{"name": "Groceries"}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create category failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	categoryID, _ := decodeData(t, resp)[0]["id"].(string)

	// 5. Create transactions, one income and one expense
	resp = performRequest(r, http.MethodPost, "/transactions",
		jsonBody(t, map[string]any{
			"description": "Salary",
			"amount":      2500.0,
			"accountId":   accountID,
		}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create income failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/transactions",
		jsonBody(t, map[string]any{
			"description": "Weekly shop",
			"amount":      -120.5,
			"accountId":   accountID,
			"categoryId":  categoryID,
		}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create expense failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	expenseID, _ := decodeData(t, resp)[0]["id"].(string)

	// 6. List transactions, expense amount round-trips through miliunits
	resp = performRequest(r, http.MethodGet, "/transactions", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("list transactions failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	if n := len(decodeData(t, resp)); n < 2 {
		t.Fatalf("list transactions returned %d rows, want >= 2", n)
	}

	// 7. Account rollup sees both transactions
	resp = performRequest(r, http.MethodGet, "/accounts", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("list accounts failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var acct map[string]any
	for _, row := range decodeData(t, resp) {
		if row["id"] == accountID {
			acct = row
		}
	}
	if acct == nil {
		t.Fatal("created account missing from list")
	}
	if count, _ := acct["count"].(float64); count != 2 {
		t.Errorf("account count = %v, want 2", acct["count"])
	}
	if total, _ := acct["total"].(float64); total != 2379.5 {
		t.Errorf("account total = %v, want 2379.5", acct["total"])
	}

	// 8. Shopping plan with an item, then materialize it
	resp = performRequest(r, http.MethodPost, "/shopping-plans",
		jsonBody(t, map[string]any{"title": "Hardware run"}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create shopping plan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	planID, _ := decodeData(t, resp)[0]["id"].(string)

	resp = performRequest(r, http.MethodPost, "/shopping-items/"+planID,
		jsonBody(t, map[string]any{"name": "Drill", "amount": 10.0, "quantity": 3, "discount": 5.0, "tax": 2.0}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create shopping item failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	item := decodeData(t, resp)[0]
	if total, _ := item["total"].(float64); total != 27 {
		t.Errorf("item total = %v, want 27", item["total"])
	}

	resp = performRequest(r, http.MethodPost, "/transactions/shopping-plan/"+planID,
		jsonBody(t, map[string]any{"accountId": accountID}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("materialize plan failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 9. Budget plan, category, connect the expense
	resp = performRequest(r, http.MethodPost, "/budget-plans",
		jsonBody(t, map[string]any{"title": "Monthly"}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create budget plan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	budgetPlanID, _ := decodeData(t, resp)[0]["id"].(string)

	resp = performRequest(r, http.MethodPost, "/budget-categories/"+budgetPlanID,
		jsonBody(t, map[string]any{"name": "Food", "amount": 400.0}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create budget category failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	budgetCategoryID, _ := decodeData(t, resp)[0]["id"].(string)

	resp = performRequest(r, http.MethodPatch, "/transactions/"+expenseID+"/budget-category",
		jsonBody(t, map[string]any{"planId": budgetPlanID, "categoryId": budgetCategoryID}), token)
	if resp.Code != http.StatusOK {
		t.Fatalf("connect budget failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	resp = performRequest(r, http.MethodGet, "/budget-plans/summary", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("budget summary failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 10. Dashboard summary has the envelope shape and a gap-free series
	resp = performRequest(r, http.MethodGet, "/summary", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("summary failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	dash := decodeData(t, resp)[0]
	chart, _ := dash["chartData"].([]any)
	if len(chart) != 31 {
		t.Errorf("chartData has %d days, want 31 for the default window", len(chart))
	}

	// 11. Bulk delete is scoped and returns the deleted rows
	resp = performRequest(r, http.MethodPost, "/transactions/bulk-delete",
		jsonBody(t, map[string]any{"ids": []string{expenseID}}), token)
	if resp.Code != http.StatusOK {
		t.Fatalf("bulk delete failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	if n := len(decodeData(t, resp)); n != 1 {
		t.Errorf("bulk delete returned %d rows, want 1", n)
	}

	// 12. Another user cannot see the first user's data
	other := username + "b"
	resp = performRequest(r, http.MethodPost, "/register",
		jsonBody(t, map[string]string{"username": other, "password": "pass123"}), "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register other failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/login",
		jsonBody(t, map[string]string{"username": other, "password": "pass123"}), "")
	otherToken, _ := decodeData(t, resp)[0]["token"].(string)

	resp = performRequest(r, http.MethodGet, "/accounts/"+accountID, nil, otherToken)
	if resp.Code != http.StatusNotFound {
		t.Errorf("foreign account lookup status = %d, want 404", resp.Code)
	}
	resp = performRequest(r, http.MethodGet, "/accounts", nil, otherToken)
	if resp.Code != http.StatusNotFound {
		t.Errorf("empty account list status = %d, want 404", resp.Code)
	}
}
