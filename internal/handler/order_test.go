package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreepawar22/quickserve/internal/order"
)

type mockOrderService struct {
	CheckoutFunc     func(ctx context.Context, in order.CheckoutInput) (*order.Order, error)
	ListActiveFunc   func(ctx context.Context) ([]order.Order, error)
	ListHistoryFunc  func(ctx context.Context) ([]order.Order, error)
	AdvanceOrderFunc func(ctx context.Context, orderID string) (*order.Order, error)
	SetStatusFunc    func(ctx context.Context, orderID string, status order.Status) (*order.Order, error)
	SweepArchiveFunc func(ctx context.Context, now time.Time) (int, error)
}

func (m *mockOrderService) Checkout(ctx context.Context, in order.CheckoutInput) (*order.Order, error) {
	return m.CheckoutFunc(ctx, in)
}

func (m *mockOrderService) ListActive(ctx context.Context) ([]order.Order, error) {
	return m.ListActiveFunc(ctx)
}

func (m *mockOrderService) ListHistory(ctx context.Context) ([]order.Order, error) {
	return m.ListHistoryFunc(ctx)
}

func (m *mockOrderService) AdvanceOrder(ctx context.Context, orderID string) (*order.Order, error) {
	return m.AdvanceOrderFunc(ctx, orderID)
}

func (m *mockOrderService) SetStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
	return m.SetStatusFunc(ctx, orderID, status)
}

func (m *mockOrderService) SweepArchive(ctx context.Context, now time.Time) (int, error) {
	return m.SweepArchiveFunc(ctx, now)
}

const checkoutBody = `{
	"restaurantId": "rest-1",
	"restaurantName": "Spice Garden",
	"items": [{"name": "Masala Dosa", "price": 120, "quantity": 2}],
	"userDetails": {"name": "Priya", "phone": "9876543210"},
	"orderType": "takeaway"
}`

func TestOrderHandler_Checkout(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		checkout       func(ctx context.Context, in order.CheckoutInput) (*order.Order, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: checkoutBody,
			checkout: func(ctx context.Context, in order.CheckoutInput) (*order.Order, error) {
				return &order.Order{
					ID:           "order_1716033600000",
					RestaurantID: in.RestaurantID,
					Items:        in.Items,
					Customer:     in.Customer,
					Type:         in.Type,
					Subtotal:     240,
					Tax:          12,
					TotalAmount:  252,
					Status:       order.StatusPending,
					OrderDate:    time.Date(2024, 5, 18, 12, 0, 0, 0, time.UTC),
				}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "empty_cart_rejected",
			body: `{
				"restaurantId": "rest-1",
				"items": [],
				"userDetails": {"name": "Priya", "phone": "9876543210"},
				"orderType": "takeaway"
			}`,
			checkout: func(ctx context.Context, in order.CheckoutInput) (*order.Order, error) {
				return nil, order.ErrEmptyCart
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_json",
			body:           `{invalid json}`,
			checkout:       nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request payload"}`,
		},
		{
			name:           "unknown_field_rejected",
			body:           `{"restaurantId": "rest-1", "surprise": true}`,
			checkout:       nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request payload"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{CheckoutFunc: tt.checkout}

			h := NewOrderHandler(mockSvc)
			router := chi.NewRouter()
			h.RegisterRoutes(router)

			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestOrderHandler_Checkout_ValidationDetails(t *testing.T) {
	mockSvc := &mockOrderService{}
	h := NewOrderHandler(mockSvc)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	body := `{"items": [{"name": "Masala Dosa", "price": 120, "quantity": 1}], "orderType": "takeaway"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Contains(t, resp.Details, "RestaurantID")
}

func TestOrderHandler_Advance(t *testing.T) {
	tests := []struct {
		name           string
		orderID        string
		advance        func(ctx context.Context, orderID string) (*order.Order, error)
		expectedStatus int
	}{
		{
			name:    "success",
			orderID: "order_1",
			advance: func(ctx context.Context, orderID string) (*order.Order, error) {
				return &order.Order{ID: orderID, Status: order.StatusPreparing}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "not_found",
			orderID: "order_missing",
			advance: func(ctx context.Context, orderID string) (*order.Order, error) {
				return nil, order.ErrOrderNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{AdvanceOrderFunc: tt.advance}

			h := NewOrderHandler(mockSvc)
			router := chi.NewRouter()
			h.RegisterRoutes(router)

			req := httptest.NewRequest(http.MethodPost, "/api/orders/"+tt.orderID+"/advance", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestOrderHandler_SetStatus(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setStatus      func(ctx context.Context, orderID string, status order.Status) (*order.Order, error)
		expectedStatus int
	}{
		{
			name: "cancelled",
			body: `{"status": "cancelled"}`,
			setStatus: func(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
				return &order.Order{ID: orderID, Status: status}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "progression_status_rejected",
			body: `{"status": "preparing"}`,
			setStatus: func(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
				return nil, order.ErrInvalidStatus
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{SetStatusFunc: tt.setStatus}

			h := NewOrderHandler(mockSvc)
			router := chi.NewRouter()
			h.RegisterRoutes(router)

			req := httptest.NewRequest(http.MethodPost, "/api/orders/order_1/status", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestOrderHandler_ListActive(t *testing.T) {
	mockSvc := &mockOrderService{
		ListActiveFunc: func(ctx context.Context) ([]order.Order, error) {
			return []order.Order{
				{ID: "order_2", Status: order.StatusPending},
				{ID: "order_1", Status: order.StatusPreparing},
			}, nil
		},
	}

	h := NewOrderHandler(mockSvc)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var listed []order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "order_2", listed[0].ID)
}
