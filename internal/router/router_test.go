package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"kakeibo/internal/logger"
	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
)

// testApp holds the full application stack for flow tests.
type testApp struct {
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	return &testApp{Router: New(db, Options{AllowedOrigins: []string{"*"}})}
}

func (a *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) createPurchase(t *testing.T, name, amount, category, date string) map[string]interface{} {
	t.Helper()
	body := fmt.Sprintf(`{"purchase":{"name":%q,"amount":%q,"category":%q,"date":%q}}`, name, amount, category, date)
	rec := a.request("POST", "/api/v1/purchases", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating purchase, got %d: %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["status"] != "ok" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestSwaggerDocs(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/purchases/{id}") {
		t.Error("expected purchase routes in swagger doc")
	}
}

func TestCategories(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != len(models.SuggestedCategories) {
		t.Errorf("expected %d categories, got %d", len(models.SuggestedCategories), len(categories))
	}
}

func TestPurchaseFlow_CRUD(t *testing.T) {
	app := setupApp(t)

	// Step 1: create
	created := app.createPurchase(t, "スーパーで食材", "3500", "食費", "2024-03-15")
	id := created["id"].(string)
	if created["amount"] != "3500" {
		t.Errorf("expected amount 3500, got %v", created["amount"])
	}

	// Step 2: read back
	rec := app.request("GET", "/api/v1/purchases/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["name"] != "スーパーで食材" {
		t.Errorf("unexpected purchase: %s", rec.Body.String())
	}

	// Step 3: partial update keeps other fields
	rec = app.request("PATCH", "/api/v1/purchases/"+id, `{"purchase":{"amount":"4200","description":"特売"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)
	if updated["amount"] != "4200" || updated["name"] != "スーパーで食材" || updated["description"] != "特売" {
		t.Errorf("unexpected update result: %v", updated)
	}

	// Step 4: PUT behaves like PATCH
	rec = app.request("PUT", "/api/v1/purchases/"+id, `{"purchase":{"category":"日用品"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["category"] != "日用品" {
		t.Errorf("expected category to change: %s", rec.Body.String())
	}

	// Step 5: delete, then it is gone
	rec = app.request("DELETE", "/api/v1/purchases/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = app.request("GET", "/api/v1/purchases/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
	rec = app.request("DELETE", "/api/v1/purchases/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", rec.Code)
	}
}

func TestPurchaseFlow_Validation(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/purchases", `{"purchase":{"name":"","amount":"0","category":"食費"}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %v", errObj["code"])
	}
	fields := errObj["fields"].(map[string]interface{})
	for _, f := range []string{"name", "amount", "date"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("expected field error for %s, got %v", f, fields)
		}
	}
	if _, ok := fields["category"]; ok {
		t.Errorf("did not expect category error, got %v", fields["category"])
	}

	// nothing stored
	rec = app.request("GET", "/api/v1/purchases", "")
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["item_count"].(float64) != 0 {
		t.Errorf("expected empty store, got %v", summary)
	}
}

func TestPurchaseFlow_UnparseableValues(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/purchases",
		`{"purchase":{"name":"x","amount":"abc","category":"食費","date":"2024-13-45"}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %v", errObj["code"])
	}
	fields := errObj["fields"].(map[string]interface{})
	if msgs, _ := fields["amount"].([]interface{}); len(msgs) != 1 || msgs[0] != "is not a number" {
		t.Errorf("unexpected amount errors: %v", fields["amount"])
	}
	if msgs, _ := fields["date"].([]interface{}); len(msgs) != 1 || msgs[0] != "is not a valid date" {
		t.Errorf("unexpected date errors: %v", fields["date"])
	}

	created := app.createPurchase(t, "電車代", "480", "交通費", "2024-02-01")
	rec = app.request("PATCH", "/api/v1/purchases/"+created["id"].(string), `{"purchase":{"date":"2024-02-30"}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("PATCH: expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	// malformed JSON is still a 400
	rec = app.request("POST", "/api/v1/purchases", `{"purchase":{"amount":}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestPurchaseFlow_MalformedID(t *testing.T) {
	app := setupApp(t)

	for _, method := range []string{"GET", "DELETE"} {
		rec := app.request(method, "/api/v1/purchases/123", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", method, rec.Code)
		}
	}
	rec := app.request("PATCH", "/api/v1/purchases/123", `{"purchase":{"name":"x"}}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("PATCH: expected 404, got %d", rec.Code)
	}
}

func TestPurchaseFlow_FilterAndSummary(t *testing.T) {
	app := setupApp(t)

	app.createPurchase(t, "電車代", "480", "交通費", "2024-02-01")
	app.createPurchase(t, "ランチ", "1200", "食費", "2024-02-29")
	app.createPurchase(t, "夕食", "800.50", "食費", "2024-02-29")
	app.createPurchase(t, "本", "2800", "書籍", "2024-03-01")
	app.createPurchase(t, "電話", "6800", "通信費", "2023-12-31")

	tests := []struct {
		name      string
		query     string
		wantCount float64
		wantTotal string
		wantDates []string
	}{
		{"no filter", "", 5, "12080.5", []string{"2024-03-01", "2024-02-29", "2024-02-29", "2024-02-01", "2023-12-31"}},
		{"year", "?year=2024", 4, "5280.5", []string{"2024-03-01", "2024-02-29", "2024-02-29", "2024-02-01"}},
		{"leap month", "?year=2024&month=2", 3, "2480.5", []string{"2024-02-29", "2024-02-29", "2024-02-01"}},
		{"month and category", "?year=2024&month=2&category=%E9%A3%9F%E8%B2%BB", 2, "2000.5", []string{"2024-02-29", "2024-02-29"}},
		{"month without year", "?month=2", 5, "12080.5", nil},
		{"non-numeric year", "?year=abc", 5, "12080.5", nil},
		{"bad month falls back to year", "?year=2024&month=13", 4, "5280.5", nil},
		{"unknown category", "?category=nothing", 0, "0", []string{}},
		{"blank category", "?category=%20%20", 5, "12080.5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request("GET", "/api/v1/purchases"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			result := parseJSON(t, rec)
			summary := result["summary"].(map[string]interface{})

			if summary["item_count"].(float64) != tt.wantCount {
				t.Errorf("expected %v items, got %v", tt.wantCount, summary["item_count"])
			}
			if summary["total_amount"] != tt.wantTotal {
				t.Errorf("expected total %s, got %v", tt.wantTotal, summary["total_amount"])
			}

			purchases := result["purchases"].([]interface{})
			if len(purchases) != int(tt.wantCount) {
				t.Errorf("summary count %v does not match %d listed purchases", tt.wantCount, len(purchases))
			}
			if tt.wantDates != nil {
				got := make([]string, len(purchases))
				for i, p := range purchases {
					got[i] = p.(map[string]interface{})["date"].(string)
				}
				if strings.Join(got, ",") != strings.Join(tt.wantDates, ",") {
					t.Errorf("expected dates %v, got %v", tt.wantDates, got)
				}
			}
		})
	}

	t.Run("breakdown has only present categories", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/purchases?year=2024&month=2", "")
		breakdown := parseJSON(t, rec)["summary"].(map[string]interface{})["category_breakdown"].(map[string]interface{})

		if len(breakdown) != 2 {
			t.Fatalf("expected 2 categories, got %v", breakdown)
		}
		if breakdown["食費"] != "2000.5" || breakdown["交通費"] != "480" {
			t.Errorf("unexpected breakdown: %v", breakdown)
		}
	})
}
