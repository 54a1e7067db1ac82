package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"kakeibo/internal/models"
)

func testForm() Form {
	return Form{
		Name:     "電車代",
		Amount:   decimal.NewFromInt(480),
		Category: "交通費",
		Date:     models.MustParseDate("2024-02-01"),
	}
}

func TestListPurchases_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/purchases" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("year") != "2024" || q.Get("month") != "2" || q.Get("category") != "交通費" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"purchases":[{"id":"p-1","name":"電車代","amount":"480","category":"交通費","date":"2024-02-01","description":null}],
			"summary":{"total_amount":"480","item_count":1,"category_breakdown":{"交通費":"480"}}}`)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	res, err := c.ListPurchases(context.Background(), Query{Year: 2024, Month: 2, Category: "交通費"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Purchases) != 1 || res.Purchases[0].ID != "p-1" {
		t.Fatalf("unexpected purchases: %+v", res.Purchases)
	}
	if res.Purchases[0].Date.String() != "2024-02-01" {
		t.Errorf("expected date 2024-02-01, got %s", res.Purchases[0].Date)
	}
	if !res.Summary.TotalAmount.Equal(decimal.NewFromInt(480)) || res.Summary.ItemCount != 1 {
		t.Errorf("unexpected summary: %+v", res.Summary)
	}
}

func TestListPurchases_NoQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query, got %q", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"purchases":[],"summary":{"total_amount":"0","item_count":0,"category_breakdown":{}}}`)
	}))
	defer server.Close()

	c := New(server.URL+"/", server.Client())
	res, err := c.ListPurchases(context.Background(), Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary.CategoryBreakdown == nil {
		t.Error("expected non-nil breakdown")
	}
}

func TestCreatePurchase_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type")
		}

		var body map[string]map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		p := body["purchase"]
		if p["name"] != "電車代" || p["amount"] != "480" || p["date"] != "2024-02-01" {
			t.Errorf("unexpected body: %v", p)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"p-9","name":"電車代","amount":"480","category":"交通費","date":"2024-02-01"}`)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	p, err := c.CreatePurchase(context.Background(), testForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "p-9" {
		t.Errorf("expected id p-9, got %s", p.ID)
	}
}

func TestCreatePurchase_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"error":{"code":"VALIDATION_FAILED","message":"Validation failed","fields":{"amount":["must be greater than 0"]}}}`)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	_, err := c.CreatePurchase(context.Background(), testForm())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Code != "VALIDATION_FAILED" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if apiErr.Fields["amount"][0] != "must be greater than 0" {
		t.Errorf("unexpected fields: %v", apiErr.Fields)
	}
}

func TestUpdatePurchase_UsesPatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/purchases/p-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"id":"p-1","name":"電車代","amount":"500","category":"交通費","date":"2024-02-01"}`)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	form := testForm()
	form.Amount = decimal.NewFromInt(500)
	p, err := c.UpdatePurchase(context.Background(), "p-1", form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Amount.String() != "500" {
		t.Errorf("expected amount 500, got %s", p.Amount)
	}
}

func TestDeletePurchase(t *testing.T) {
	t.Run("no_content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := New(server.URL, server.Client())
		if err := c.DeletePurchase(context.Background(), "p-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"code":"PURCHASE_NOT_FOUND","message":"Purchase not found"}}`)
		}))
		defer server.Close()

		c := New(server.URL, server.Client())
		err := c.DeletePurchase(context.Background(), "p-1")
		if !IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
		if !strings.Contains(err.Error(), "Purchase not found") {
			t.Errorf("expected server message in %q", err.Error())
		}
	})
}

func TestServerError_WithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	_, err := c.Categories(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if want := "unexpected status 502"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should contain %q", err.Error(), want)
	}
}

func TestCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/categories" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"categories":["食費","交通費"]}`)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	categories, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 || categories[0] != "食費" {
		t.Errorf("unexpected categories: %v", categories)
	}
}
