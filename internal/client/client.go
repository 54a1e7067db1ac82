// Package client provides an HTTP client for the kakeibo purchase API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"kakeibo/internal/ledger"
	"kakeibo/internal/models"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Query narrows a purchase listing. Zero values are not sent.
type Query struct {
	Year     int
	Month    int
	Category string
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Year != 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	if q.Month != 0 {
		v.Set("month", strconv.Itoa(q.Month))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	return v
}

// Client communicates with the kakeibo API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListPurchases fetches the purchases matching q together with their summary.
func (c *Client) ListPurchases(ctx context.Context, q Query) (*ledger.Result, error) {
	path := "/api/v1/purchases"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	var result ledger.Result
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	if result.Summary.CategoryBreakdown == nil {
		result.Summary.CategoryBreakdown = ledger.Summarize(nil).CategoryBreakdown
	}
	return &result, nil
}

// GetPurchase fetches a single purchase.
func (c *Client) GetPurchase(ctx context.Context, id string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := c.do(ctx, http.MethodGet, "/api/v1/purchases/"+url.PathEscape(id), nil, &purchase); err != nil {
		return nil, fmt.Errorf("fetching purchase: %w", err)
	}
	return &purchase, nil
}

// CreatePurchase submits a new purchase.
func (c *Client) CreatePurchase(ctx context.Context, form Form) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := c.do(ctx, http.MethodPost, "/api/v1/purchases", purchaseBody{Purchase: form}, &purchase); err != nil {
		return nil, fmt.Errorf("creating purchase: %w", err)
	}
	return &purchase, nil
}

// UpdatePurchase replaces the editable fields of a purchase with form.
func (c *Client) UpdatePurchase(ctx context.Context, id string, form Form) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := c.do(ctx, http.MethodPatch, "/api/v1/purchases/"+url.PathEscape(id), purchaseBody{Purchase: form}, &purchase); err != nil {
		return nil, fmt.Errorf("updating purchase: %w", err)
	}
	return &purchase, nil
}

// DeletePurchase removes a purchase.
func (c *Client) DeletePurchase(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/purchases/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}
	return nil
}

// Categories fetches the suggested category list.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var result struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, &result); err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	return result.Categories, nil
}

type purchaseBody struct {
	Purchase Form `json:"purchase"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error struct {
			Code    string              `json:"code"`
			Message string              `json:"message"`
			Fields  map[string][]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Fields = envelope.Error.Fields
	}
	return apiErr
}
