package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/domain/documents/purchase_batch"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/infrastructure/http/v1/dto"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func setupPurchaseHandler(t *testing.T) (*gin.Engine, *MockPurchaseService) {
	svc := new(MockPurchaseService)
	handler := NewPurchaseHandler(NewBaseHandler(), svc)

	router := setupTestRouter(t)
	router.GET("/purchases", handler.List)
	router.GET("/purchases/summary", handler.Summary)
	router.POST("/purchases", handler.Create)
	return router, svc
}

func TestPurchaseHandler_List_Filters(t *testing.T) {
	router, svc := setupPurchaseHandler(t)

	productID := id.New()
	svc.On("List", mock.Anything, mock.MatchedBy(func(f purchase.ListFilter) bool {
		return f.Range.From != nil && f.Range.From.Equal(mustDate(t, "2024-01-01")) &&
			f.Range.To != nil && f.Range.To.Equal(mustDate(t, "2024-01-31")) &&
			f.ProductID != nil && *f.ProductID == productID &&
			f.BatchID == nil
	})).Return(domain.ListResult[*purchase.Line]{Items: []*purchase.Line{}}, nil)

	w := doJSON(router, http.MethodGet,
		"/purchases?startDate=2024-01-01&endDate=2024-01-31&productId="+productID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestPurchaseHandler_List_BadDate(t *testing.T) {
	router, svc := setupPurchaseHandler(t)

	w := doJSON(router, http.MethodGet, "/purchases?startDate=2024-13-45", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeError(t, w)
	assert.Equal(t, apperror.CodeInvalidInput, errResp.Code)
	assert.Equal(t, "startDate", errResp.Details["field"])
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestPurchaseHandler_Summary(t *testing.T) {
	router, svc := setupPurchaseHandler(t)

	svc.On("Summary", mock.Anything, mock.Anything).
		Return(purchase.Summary{TotalSpent: types.LineTotal(3, 250), PurchaseCount: 2}, nil)

	w := doJSON(router, http.MethodGet, "/purchases/summary", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.PurchaseSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "750.00", resp.TotalSpent)
	assert.Equal(t, int64(2), resp.PurchaseCount)
}

func TestPurchaseHandler_Create_InvalidProductID(t *testing.T) {
	router, svc := setupPurchaseHandler(t)

	w := doJSON(router, http.MethodPost, "/purchases", map[string]any{
		"date":      "2024-01-05",
		"productId": "soap",
		"quantity":  1,
		"unitCost":  10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeError(t, w)
	assert.Equal(t, apperror.CodeValidation, errResp.Code)
	assert.Equal(t, "productId", errResp.Details["field"])
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func setupBatchHandler(t *testing.T) (*gin.Engine, *MockBatchService) {
	svc := new(MockBatchService)
	handler := NewPurchaseBatchHandler(NewBaseHandler(), svc)

	router := setupTestRouter(t)
	router.GET("/purchase-batches", handler.List)
	router.POST("/purchase-batches", handler.Create)
	router.PUT("/purchase-batches/:id", handler.Update)
	return router, svc
}

func TestBatchHandler_Create_ReportsFailingLine(t *testing.T) {
	router, svc := setupBatchHandler(t)

	w := doJSON(router, http.MethodPost, "/purchase-batches", map[string]any{
		"date":     "2024-03-01",
		"supplier": "Acme",
		"lines": []map[string]any{
			{"productId": id.New().String(), "quantity": 1, "unitCost": 5},
			{"productId": "", "quantity": 1, "unitCost": 5},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeError(t, w)
	assert.Equal(t, "productId", errResp.Details["field"])
	assert.EqualValues(t, 2, errResp.Details["line"])
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchHandler_Create_Success(t *testing.T) {
	router, svc := setupBatchHandler(t)

	productID := id.New()
	svc.On("Create", mock.Anything, mock.AnythingOfType("*purchase_batch.Batch"),
		mock.MatchedBy(func(lines []*purchase.Line) bool {
			return len(lines) == 1 && lines[0].ProductID == productID && lines[0].Quantity == 4
		})).Return(nil)

	w := doJSON(router, http.MethodPost, "/purchase-batches", map[string]any{
		"date":     "2024-03-01",
		"supplier": "Acme",
		"lines": []map[string]any{
			{"productId": productID.String(), "quantity": 4, "unitCost": 5},
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestBatchHandler_Update_LinesOmittedOrEmpty(t *testing.T) {
	tests := []struct {
		name      string
		body      map[string]any
		wantLines bool
	}{
		{"omitted keeps lines", map[string]any{"supplier": "Beta"}, false},
		{"empty list replaces lines", map[string]any{"supplier": "Beta", "lines": []any{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupBatchHandler(t)

			batch := purchase_batch.NewBatch(mustDate(t, "2024-03-01"), "Acme")
			svc.On("GetByID", mock.Anything, batch.ID).Return(batch, nil)
			svc.On("Update", mock.Anything, mock.MatchedBy(func(b *purchase_batch.Batch) bool {
				return b.Supplier == "Beta"
			}), mock.MatchedBy(func(lines []*purchase.Line) bool {
				return (lines != nil) == tt.wantLines && len(lines) == 0
			})).Return(nil)

			w := doJSON(router, http.MethodPut, "/purchase-batches/"+batch.ID.String(), tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestBatchHandler_List_Supplier(t *testing.T) {
	router, svc := setupBatchHandler(t)

	svc.On("List", mock.Anything, mock.MatchedBy(func(f purchase_batch.ListFilter) bool {
		return f.Supplier == "acme"
	})).Return(domain.ListResult[*purchase_batch.Batch]{Items: []*purchase_batch.Batch{}}, nil)

	w := doJSON(router, http.MethodGet, "/purchase-batches?supplier=%20acme%20", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func setupSaleHandler(t *testing.T) (*gin.Engine, *MockSaleService) {
	svc := new(MockSaleService)
	handler := NewSaleHandler(NewBaseHandler(), svc)

	router := setupTestRouter(t)
	router.GET("/sales", handler.List)
	router.POST("/sales", handler.Create)
	router.PUT("/sales/:id", handler.Update)
	router.DELETE("/sales/:id", handler.Delete)
	return router, svc
}

func TestSaleHandler_Create_UnknownChannel(t *testing.T) {
	router, svc := setupSaleHandler(t)

	w := doJSON(router, http.MethodPost, "/sales", map[string]any{
		"date":      "2024-02-01",
		"productId": id.New().String(),
		"channel":   "telegram",
		"customer":  "Ana",
		"quantity":  1,
		"unitPrice": 10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeError(t, w)
	assert.Equal(t, apperror.CodeValidation, errResp.Code)
	assert.Equal(t, "channel", errResp.Details["field"])
	assert.Equal(t, "telegram", errResp.Details["value"])
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaleHandler_Create_Defaults(t *testing.T) {
	router, svc := setupSaleHandler(t)

	svc.On("Create", mock.Anything, mock.MatchedBy(func(s *sale.Sale) bool {
		return s.Channel == sale.ChannelLocal && s.PaymentMethod == sale.PaymentCash && s.Paid
	})).Return(nil)

	w := doJSON(router, http.MethodPost, "/sales", map[string]any{
		"date":      "2024-02-01",
		"productId": id.New().String(),
		"customer":  "Ana",
		"quantity":  2,
		"unitPrice": 15,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.SaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "30.00", resp.Total)
	svc.AssertExpectations(t)
}

func TestSaleHandler_List_Filters(t *testing.T) {
	router, svc := setupSaleHandler(t)

	svc.On("List", mock.Anything, mock.MatchedBy(func(f sale.ListFilter) bool {
		return f.Paid != nil && !*f.Paid && f.Channel != nil && *f.Channel == sale.ChannelInstagram
	})).Return(domain.ListResult[*sale.Sale]{Items: []*sale.Sale{}}, nil)

	w := doJSON(router, http.MethodGet, "/sales?paid=false&channel=instagram", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSaleHandler_List_BadPaidFlag(t *testing.T) {
	router, svc := setupSaleHandler(t)

	w := doJSON(router, http.MethodGet, "/sales?paid=maybe", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidInput, decodeError(t, w).Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSaleHandler_Update_ResetsOmittedDefaults(t *testing.T) {
	router, svc := setupSaleHandler(t)

	existing := sale.NewSale(mustDate(t, "2024-02-01"), id.New())
	existing.Channel = sale.ChannelInstagram
	existing.Paid = false
	svc.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	svc.On("Update", mock.Anything, mock.MatchedBy(func(s *sale.Sale) bool {
		return s.Channel == sale.ChannelLocal && s.Paid && s.Quantity == 3
	})).Return(nil)

	w := doJSON(router, http.MethodPut, "/sales/"+existing.ID.String(), map[string]any{
		"productId": existing.ProductID.String(),
		"customer":  "Ana",
		"quantity":  3,
		"unitPrice": 10,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSaleHandler_Delete(t *testing.T) {
	router, svc := setupSaleHandler(t)

	saleID := id.New()
	svc.On("Delete", mock.Anything, saleID).Return(nil)

	w := doJSON(router, http.MethodDelete, "/sales/"+saleID.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
