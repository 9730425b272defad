package orders

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
	"github.com/Aldonvacriates/E-Commerce-API/internal/validation"
)

func newTestMux(t *testing.T) http.Handler {
	t.Helper()

	service, _, _, _ := newTestService()
	handler := NewHandler(service, nil, validation.New(), slog.New(slog.DiscardHandler))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", handler.HandleCreate)
	mux.HandleFunc("GET /orders/{id}", handler.HandleGet)
	mux.HandleFunc("GET /orders/{id}/products", handler.HandleListProducts)
	mux.HandleFunc("PUT /orders/{id}/products/{productId}", handler.HandleAddProduct)
	mux.HandleFunc("DELETE /orders/{id}/products/{productId}", handler.HandleRemoveProduct)
	mux.HandleFunc("DELETE /orders/{id}", handler.HandleDelete)
	return mux
}

func createOrder(t *testing.T, mux http.Handler, body string) domain.Order {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var order domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("failed to decode order: %v", err)
	}
	return order
}

func TestHandleCreateOrder(t *testing.T) {
	mux := newTestMux(t)

	order := createOrder(t, mux, `{"customer_id":"c1","order_date":"2025-01-01T00:00:00","product_ids":["p1","p1","p2"]}`)

	if order.ID == "" {
		t.Fatal("expected order id to be assigned")
	}
	if len(order.Products) != 2 {
		t.Fatalf("expected duplicate ids collapsed to 2 products, got %d", len(order.Products))
	}
}

func TestHandleCreateOrderBadDate(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"customer_id":"c1","order_date":"01/01/2025"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCreateOrderUnknownCustomer(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"customer_id":"nobody","order_date":"2025-01-01T00:00:00"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCreateOrderUnknownProduct(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"customer_id":"c1","order_date":"2025-01-01T00:00:00","product_ids":["ghost"]}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleAddProductReportsResult(t *testing.T) {
	mux := newTestMux(t)

	order := createOrder(t, mux, `{"customer_id":"c1","order_date":"2025-01-01T00:00:00"}`)

	addProduct := func() addProductResponse {
		req := httptest.NewRequest(http.MethodPut, "/orders/"+order.ID+"/products/p1", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp addProductResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return resp
	}

	first := addProduct()
	if first.Result != "added" {
		t.Fatalf("expected result added, got %q", first.Result)
	}
	if len(first.Order.Products) != 1 {
		t.Fatalf("expected 1 product after add, got %d", len(first.Order.Products))
	}

	second := addProduct()
	if second.Result != "already_present" {
		t.Fatalf("expected result already_present, got %q", second.Result)
	}
	if len(second.Order.Products) != 1 {
		t.Fatalf("expected association set unchanged, got %d products", len(second.Order.Products))
	}
}

func TestHandleAddProductUnknownProduct(t *testing.T) {
	mux := newTestMux(t)

	order := createOrder(t, mux, `{"customer_id":"c1","order_date":"2025-01-01T00:00:00"}`)

	req := httptest.NewRequest(http.MethodPut, "/orders/"+order.ID+"/products/ghost", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRemoveProductMissingAssociation(t *testing.T) {
	mux := newTestMux(t)

	order := createOrder(t, mux, `{"customer_id":"c1","order_date":"2025-01-01T00:00:00"}`)

	req := httptest.NewRequest(http.MethodDelete, "/orders/"+order.ID+"/products/p1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRemoveProductReturnsUpdatedOrder(t *testing.T) {
	mux := newTestMux(t)

	order := createOrder(t, mux, `{"customer_id":"c1","order_date":"2025-01-01T00:00:00","product_ids":["p1","p2"]}`)

	req := httptest.NewRequest(http.MethodDelete, "/orders/"+order.ID+"/products/p1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode order: %v", err)
	}
	if len(updated.Products) != 1 || updated.Products[0].ID != "p2" {
		t.Fatalf("expected only p2 to remain, got %v", updated.Products)
	}
}

func TestHandleDeleteOrder(t *testing.T) {
	mux := newTestMux(t)

	order := createOrder(t, mux, `{"customer_id":"c1","order_date":"2025-01-01T00:00:00"}`)

	req := httptest.NewRequest(http.MethodDelete, "/orders/"+order.ID, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/orders/"+order.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
