package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// SaleService manages sales.
type SaleService interface {
	Create(ctx context.Context, s *sale.Sale) error
	GetByID(ctx context.Context, saleID id.ID) (*sale.Sale, error)
	List(ctx context.Context, filter sale.ListFilter) (domain.ListResult[*sale.Sale], error)
	Summary(ctx context.Context, filter sale.ListFilter) (sale.Summary, error)
	Update(ctx context.Context, s *sale.Sale) error
	Delete(ctx context.Context, saleID id.ID) error
}

// SaleHandler handles HTTP requests for sales.
type SaleHandler struct {
	*BaseHandler
	service SaleService
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service SaleService) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service}
}

func (h *SaleHandler) parseFilter(c *gin.Context) (sale.ListFilter, bool) {
	filter := sale.ListFilter{ListFilter: h.ParseListFilter(c)}

	var ok bool
	if filter.Range, ok = h.ParseDateRange(c); !ok {
		return filter, false
	}
	if filter.ProductID, ok = h.ParseIDQuery(c, "productId"); !ok {
		return filter, false
	}
	if filter.Paid, ok = h.ParseBoolQuery(c, "paid"); !ok {
		return filter, false
	}
	if v := c.Query("channel"); v != "" {
		ch := sale.Channel(v)
		filter.Channel = &ch
	}
	return filter, true
}

// List handles GET /sales.
func (h *SaleHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result, dto.FromSale))
}

// Summary handles GET /sales/summary.
func (h *SaleHandler) Summary(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSaleSummary(summary))
}

// Get handles GET /sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := h.ParseID(c)
	if !ok {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSale(s))
}

// Create handles POST /sales.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromSale(s))
}

// Update handles PUT /sales/:id.
func (h *SaleHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	saleID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.GetByID(ctx, saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(s)

	if err := h.service.Update(ctx, s); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSale(s))
}

// Delete handles DELETE /sales/:id.
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), saleID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
