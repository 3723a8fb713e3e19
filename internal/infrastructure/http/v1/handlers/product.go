package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ProductService is the product catalog as seen by the handler.
type ProductService interface {
	Create(ctx context.Context, p *product.Product) error
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error)
	Update(ctx context.Context, p *product.Product) error
	Delete(ctx context.Context, productID id.ID) (*product.DeleteResult, error)
}

// StockService answers stock questions.
type StockService interface {
	All(ctx context.Context) ([]stock.Balance, error)
	StockOf(ctx context.Context, productIDs []id.ID) (map[id.ID]int64, error)
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	*BaseHandler
	service ProductService
	stock   StockService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service ProductService, stock StockService) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service, stock: stock}
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ParseListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result, dto.FromProduct))
}

// Get handles GET /products/:id. The response carries the current stock.
func (h *ProductHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	qty, err := h.stock.StockOf(ctx, []id.ID{productID})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p).WithStock(qty[productID]))
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromProduct(p).WithStock(0))
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(existing)

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(existing))
}

// Delete handles DELETE /products/:id. The response lists purchase batches
// that were removed because they had no lines left.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c)
	if !ok {
		return
	}

	result, err := h.service.Delete(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDeleteResult(result))
}

// StockWithQuantities handles GET /products/stock-with-quantities.
func (h *ProductHandler) StockWithQuantities(c *gin.Context) {
	balances, err := h.stock.All(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ProductStockResponse, len(balances))
	for i, b := range balances {
		items[i] = dto.FromBalanceAsProductStock(b)
	}
	h.OK(c, items)
}
