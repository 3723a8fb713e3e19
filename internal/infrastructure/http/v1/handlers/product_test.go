package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/infrastructure/http/v1/dto"
	"stockbook/internal/infrastructure/http/v1/middleware"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, RegisterValidators())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var env dto.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error
}

func setupProductHandler(t *testing.T) (*gin.Engine, *MockProductService, *MockStockService) {
	products := new(MockProductService)
	stocks := new(MockStockService)
	handler := NewProductHandler(NewBaseHandler(), products, stocks)

	router := setupTestRouter(t)
	router.GET("/products", handler.List)
	router.POST("/products", handler.Create)
	router.GET("/products/stock-with-quantities", handler.StockWithQuantities)
	router.GET("/products/:id", handler.Get)
	router.PUT("/products/:id", handler.Update)
	router.DELETE("/products/:id", handler.Delete)
	return router, products, stocks
}

func TestProductHandler_Create_Success(t *testing.T) {
	router, products, _ := setupProductHandler(t)

	products.On("Create", mock.Anything, mock.AnythingOfType("*product.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*product.Product).ProductNumber = 3
		}).
		Return(nil)

	w := doJSON(router, http.MethodPost, "/products", dto.CreateProductRequest{
		Name:          "Lavender soap",
		UnitOfMeasure: "pcs",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.ProductNumber)
	assert.Equal(t, "Lavender soap", resp.Name)
	require.NotNil(t, resp.Stock)
	assert.Equal(t, int64(0), *resp.Stock)
	products.AssertExpectations(t)
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	router, products, _ := setupProductHandler(t)

	w := doJSON(router, http.MethodPost, "/products", map[string]any{"unitOfMeasure": "pcs"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeError(t, w)
	assert.Equal(t, apperror.CodeValidation, errResp.Code)
	assert.Equal(t, "name", errResp.Details["field"])
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductHandler_Create_InvalidJSON(t *testing.T) {
	router, _, _ := setupProductHandler(t)

	w := doJSON(router, http.MethodPost, "/products", "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidInput, decodeError(t, w).Code)
}

func TestProductHandler_Get_WithStock(t *testing.T) {
	router, products, stocks := setupProductHandler(t)

	p := product.NewProduct("Soap", "pcs")
	p.ProductNumber = 1
	products.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	stocks.On("StockOf", mock.Anything, []id.ID{p.ID}).Return(map[id.ID]int64{p.ID: -2}, nil)

	w := doJSON(router, http.MethodGet, "/products/"+p.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Stock)
	assert.Equal(t, int64(-2), *resp.Stock)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	router, products, _ := setupProductHandler(t)

	missing := id.New()
	products.On("GetByID", mock.Anything, missing).Return(nil, apperror.NewNotFound("Product", missing))

	w := doJSON(router, http.MethodGet, "/products/"+missing.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	errResp := decodeError(t, w)
	assert.Equal(t, apperror.CodeNotFound, errResp.Code)
	assert.Equal(t, "Product not found", errResp.Message)
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	router, products, _ := setupProductHandler(t)

	w := doJSON(router, http.MethodGet, "/products/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidInput, decodeError(t, w).Code)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProductHandler_List_Pagination(t *testing.T) {
	router, products, _ := setupProductHandler(t)

	p := product.NewProduct("Soap", "pcs")
	products.On("List", mock.Anything, mock.MatchedBy(func(f domain.ListFilter) bool {
		return f.Search == "so" && f.Limit == domain.MaxLimit && f.Offset == 10
	})).Return(domain.ListResult[*product.Product]{
		Items:      []*product.Product{p},
		TotalCount: 11,
		Limit:      domain.MaxLimit,
		Offset:     10,
	}, nil)

	w := doJSON(router, http.MethodGet, "/products?search=so&limit=100000&offset=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListResponse[dto.ProductResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.TotalCount)
	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Items[0].Stock)
	products.AssertExpectations(t)
}

func TestProductHandler_Update_KeepsOmittedFields(t *testing.T) {
	router, products, _ := setupProductHandler(t)

	p := product.NewProduct("Soap", "pcs")
	p.Description = "olive oil"
	products.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	products.On("Update", mock.Anything, mock.MatchedBy(func(got *product.Product) bool {
		return got.Name == "Soap bar" && got.Description == "olive oil" && got.UnitOfMeasure == "pcs"
	})).Return(nil)

	w := doJSON(router, http.MethodPut, "/products/"+p.ID.String(), map[string]any{"name": "Soap bar"})

	assert.Equal(t, http.StatusOK, w.Code)
	products.AssertExpectations(t)
}

func TestProductHandler_Delete_ReportsRemovedBatches(t *testing.T) {
	router, products, _ := setupProductHandler(t)

	productID, batchID := id.New(), id.New()
	products.On("Delete", mock.Anything, productID).Return(&product.DeleteResult{
		ProductID:      productID,
		RemovedBatches: []id.ID{batchID},
	}, nil)

	w := doJSON(router, http.MethodDelete, "/products/"+productID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DeleteProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, productID.String(), resp.ProductID)
	assert.Equal(t, []string{batchID.String()}, resp.RemovedBatches)
}

func TestProductHandler_StockWithQuantities(t *testing.T) {
	router, _, stocks := setupProductHandler(t)

	b := stock.Balance{ProductID: id.New(), ProductNumber: 2, ProductName: "Soap", UnitOfMeasure: "pcs", Stock: 7}
	stocks.On("All", mock.Anything).Return([]stock.Balance{b}, nil)

	w := doJSON(router, http.MethodGet, "/products/stock-with-quantities", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []dto.ProductStockResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(7), resp[0].Stock)
	assert.Equal(t, "Soap", resp[0].Name)
}
