package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/partnerlab/partner_api/internal/models"
	"github.com/partnerlab/partner_api/internal/repository"
	"github.com/partnerlab/partner_api/internal/service"
	"github.com/partnerlab/partner_api/internal/utils"
)

type mockCatalog struct {
	listFunc    func(ctx context.Context, filter repository.ListFilter) (*service.ListResult, error)
	getFunc     func(ctx context.Context, asin string) (*models.ProductDetail, error)
	updateFunc  func(ctx context.Context, asin string, rawPrice interface{}) (*models.PriceUpdate, error)
	lastFilter  repository.ListFilter
	updateCalls int
}

func (m *mockCatalog) ListProducts(ctx context.Context, filter repository.ListFilter) (*service.ListResult, error) {
	m.lastFilter = filter
	return m.listFunc(ctx, filter)
}

func (m *mockCatalog) GetProduct(ctx context.Context, asin string) (*models.ProductDetail, error) {
	return m.getFunc(ctx, asin)
}

func (m *mockCatalog) UpdatePrice(ctx context.Context, asin string, rawPrice interface{}) (*models.PriceUpdate, error) {
	m.updateCalls++
	return m.updateFunc(ctx, asin, rawPrice)
}

func newRouter(catalog CatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(catalog)
	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.GET("/products", h.GetProducts)
		api.GET("/products/:asin", h.GetProduct)
		api.PATCH("/products/:asin/price", h.UpdatePrice)
	}
	r.NoRoute(NotFound)
	return r
}

func TestGetProducts_Envelope(t *testing.T) {
	catalog := &mockCatalog{
		listFunc: func(ctx context.Context, filter repository.ListFilter) (*service.ListResult, error) {
			return &service.ListResult{
				Items: []models.ListItem{{Data: models.ProductSummary{ASIN: "B000TEST01"}}},
				Page:  1,
				Limit: 50,
				Total: 1,
			}, nil
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Success    bool              `json:"success"`
		Data       []models.ListItem `json:"data"`
		Pagination utils.Pagination  `json:"pagination"`
		Metadata   struct {
			ResponseTimeTaken *float64 `json:"response_time_taken"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success true")
	}
	if len(body.Data) != 1 || body.Data[0].Data.ASIN != "B000TEST01" {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
	if body.Pagination.Page != 1 || body.Pagination.Limit != 50 || body.Pagination.Total != 1 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
	if body.Metadata.ResponseTimeTaken == nil {
		t.Fatalf("expected response_time_taken in metadata")
	}
}

func TestGetProducts_EmptyCatalog(t *testing.T) {
	catalog := &mockCatalog{
		listFunc: func(ctx context.Context, filter repository.ListFilter) (*service.ListResult, error) {
			return &service.ListResult{Items: []models.ListItem{}, Page: 1, Limit: 50, Total: 0}, nil
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"data":[]`)) {
		t.Fatalf("expected empty data array, got %s", w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"total":0`)) {
		t.Fatalf("expected total 0, got %s", w.Body.String())
	}
}

func TestGetProducts_FilterParsing(t *testing.T) {
	catalog := &mockCatalog{
		listFunc: func(ctx context.Context, filter repository.ListFilter) (*service.ListResult, error) {
			return &service.ListResult{Items: []models.ListItem{}, Page: filter.Page, Limit: filter.Limit}, nil
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/products?category=Electronics&brand=Sony&min_price=10.5&max_price=99&min_rating=4&page=2&limit=10", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	f := catalog.lastFilter
	if f.Category != "Electronics" || f.Brand != "Sony" {
		t.Fatalf("unexpected string filters: %+v", f)
	}
	if f.MinPrice == nil || *f.MinPrice != 10.5 || f.MaxPrice == nil || *f.MaxPrice != 99 {
		t.Fatalf("unexpected price bounds: %+v", f)
	}
	if f.MinRating == nil || *f.MinRating != 4 {
		t.Fatalf("unexpected rating bound: %+v", f)
	}
	if f.Page != 2 || f.Limit != 10 {
		t.Fatalf("unexpected paging: %+v", f)
	}
}

func TestGetProducts_MalformedNumericsSkipped(t *testing.T) {
	catalog := &mockCatalog{
		listFunc: func(ctx context.Context, filter repository.ListFilter) (*service.ListResult, error) {
			return &service.ListResult{Items: []models.ListItem{}, Page: filter.Page, Limit: filter.Limit}, nil
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/products?min_price=notanumber&max_price=&min_rating=high&page=zero&limit=-5", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("malformed filters must not error, got %d", w.Code)
	}
	f := catalog.lastFilter
	if f.MinPrice != nil || f.MaxPrice != nil || f.MinRating != nil {
		t.Fatalf("expected malformed numerics to be dropped: %+v", f)
	}
	if f.Page != 1 || f.Limit != 50 {
		t.Fatalf("expected default paging, got %d/%d", f.Page, f.Limit)
	}
}

func TestGetProducts_StoreError(t *testing.T) {
	catalog := &mockCatalog{
		listFunc: func(ctx context.Context, filter repository.ListFilter) (*service.ListResult, error) {
			return nil, errors.New("connection refused")
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"success":false`)) {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
}

func TestGetProduct_Found(t *testing.T) {
	catalog := &mockCatalog{
		getFunc: func(ctx context.Context, asin string) (*models.ProductDetail, error) {
			return &models.ProductDetail{ASIN: asin, URL: "https://www.amazon.com/dp/" + asin}, nil
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/B000TEST01", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"asin":"B000TEST01"`)) {
		t.Fatalf("expected asin in body, got %s", w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"credits_spent":1`)) {
		t.Fatalf("expected credits_spent metadata, got %s", w.Body.String())
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	catalog := &mockCatalog{
		getFunc: func(ctx context.Context, asin string) (*models.ProductDetail, error) {
			return nil, utils.ErrProductNotFound
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/B000MISSING", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"error":"Product not found"`)) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("B000MISSING")) {
		t.Fatalf("expected asin in message: %s", w.Body.String())
	}
}

func TestUpdatePrice_Invalid(t *testing.T) {
	catalog := &mockCatalog{
		updateFunc: func(ctx context.Context, asin string, rawPrice interface{}) (*models.PriceUpdate, error) {
			return nil, utils.ErrInvalidPrice
		},
	}
	r := newRouter(catalog)

	for _, payload := range []string{`{"price":"abc"}`, `{}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/B000TEST01/price", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte(`"error":"Invalid price"`)) {
			t.Fatalf("payload %s: unexpected body %s", payload, w.Body.String())
		}
	}
}

func TestUpdatePrice_MalformedBody(t *testing.T) {
	catalog := &mockCatalog{
		updateFunc: func(ctx context.Context, asin string, rawPrice interface{}) (*models.PriceUpdate, error) {
			return nil, nil
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/B000TEST01/price", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if catalog.updateCalls != 0 {
		t.Fatalf("expected no service call for malformed body")
	}
}

func TestUpdatePrice_Success(t *testing.T) {
	catalog := &mockCatalog{
		updateFunc: func(ctx context.Context, asin string, rawPrice interface{}) (*models.PriceUpdate, error) {
			price, ok := rawPrice.(float64)
			if !ok {
				t.Fatalf("expected float64 price, got %T", rawPrice)
			}
			return &models.PriceUpdate{ASIN: asin, NewPrice: price}, nil
		},
	}
	r := newRouter(catalog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/B000TEST01/price", strings.NewReader(`{"price":49.99}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, want := range []string{`"success":true`, `"message":"Price updated successfully"`, `"asin":"B000TEST01"`, `"new_price":49.99`} {
		if !bytes.Contains(w.Body.Bytes(), []byte(want)) {
			t.Fatalf("expected %s in body %s", want, w.Body.String())
		}
	}
}

func TestNotFoundRoute(t *testing.T) {
	r := newRouter(&mockCatalog{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body utils.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Success || body.Error != "Endpoint not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Message != "Cannot GET /api/v1/unknown" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", NewHealthHandler("v1").GetHealth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, want := range []string{`"success":true`, `"version":"v1"`, `"status":"running"`, `"timestamp"`} {
		if !bytes.Contains(w.Body.Bytes(), []byte(want)) {
			t.Fatalf("expected %s in body %s", want, w.Body.String())
		}
	}
}
