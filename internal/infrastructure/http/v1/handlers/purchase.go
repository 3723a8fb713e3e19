package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// PurchaseService manages single purchase lines.
type PurchaseService interface {
	Create(ctx context.Context, line *purchase.Line) error
	GetByID(ctx context.Context, lineID id.ID) (*purchase.Line, error)
	List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.Line], error)
	Summary(ctx context.Context, filter purchase.ListFilter) (purchase.Summary, error)
	Update(ctx context.Context, line *purchase.Line) error
	Delete(ctx context.Context, lineID id.ID) error
}

// PurchaseHandler handles HTTP requests for purchase lines.
type PurchaseHandler struct {
	*BaseHandler
	service PurchaseService
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service}
}

// parseFilter reads the list filters shared by List and Summary.
func (h *PurchaseHandler) parseFilter(c *gin.Context) (purchase.ListFilter, bool) {
	filter := purchase.ListFilter{ListFilter: h.ParseListFilter(c)}

	var ok bool
	if filter.Range, ok = h.ParseDateRange(c); !ok {
		return filter, false
	}
	if filter.ProductID, ok = h.ParseIDQuery(c, "productId"); !ok {
		return filter, false
	}
	if filter.BatchID, ok = h.ParseIDQuery(c, "batchId"); !ok {
		return filter, false
	}
	return filter, true
}

// List handles GET /purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result, dto.FromPurchase))
}

// Summary handles GET /purchases/summary.
func (h *PurchaseHandler) Summary(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromPurchaseSummary(summary))
}

// Get handles GET /purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	lineID, ok := h.ParseID(c)
	if !ok {
		return
	}

	line, err := h.service.GetByID(c.Request.Context(), lineID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromPurchase(line))
}

// Create handles POST /purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.PurchaseLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	line := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), line); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromPurchase(line))
}

// Update handles PUT /purchases/:id.
func (h *PurchaseHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	lineID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.PurchaseLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	line, err := h.service.GetByID(ctx, lineID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(line)

	if err := h.service.Update(ctx, line); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromPurchase(line))
}

// Delete handles DELETE /purchases/:id.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	lineID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), lineID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
