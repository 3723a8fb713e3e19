package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/domain/documents/purchase_batch"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// BatchService manages purchase batches and their lines.
type BatchService interface {
	Create(ctx context.Context, batch *purchase_batch.Batch, lines []*purchase.Line) error
	Update(ctx context.Context, batch *purchase_batch.Batch, lines []*purchase.Line) error
	GetByID(ctx context.Context, batchID id.ID) (*purchase_batch.Batch, error)
	List(ctx context.Context, filter purchase_batch.ListFilter) (domain.ListResult[*purchase_batch.Batch], error)
	Summary(ctx context.Context, filter purchase_batch.ListFilter) (purchase_batch.Summary, error)
	Delete(ctx context.Context, batchID id.ID) error
}

// PurchaseBatchHandler handles HTTP requests for purchase batches.
type PurchaseBatchHandler struct {
	*BaseHandler
	service BatchService
}

// NewPurchaseBatchHandler creates a new purchase batch handler.
func NewPurchaseBatchHandler(base *BaseHandler, service BatchService) *PurchaseBatchHandler {
	return &PurchaseBatchHandler{BaseHandler: base, service: service}
}

func (h *PurchaseBatchHandler) parseFilter(c *gin.Context) (purchase_batch.ListFilter, bool) {
	filter := purchase_batch.ListFilter{
		ListFilter: h.ParseListFilter(c),
		Supplier:   strings.TrimSpace(c.Query("supplier")),
	}

	var ok bool
	filter.Range, ok = h.ParseDateRange(c)
	return filter, ok
}

// List handles GET /purchase-batches.
func (h *PurchaseBatchHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result, dto.FromBatch))
}

// Summary handles GET /purchase-batches/summary.
func (h *PurchaseBatchHandler) Summary(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromBatchSummary(summary))
}

// Get handles GET /purchase-batches/:id.
func (h *PurchaseBatchHandler) Get(c *gin.Context) {
	batchID, ok := h.ParseID(c)
	if !ok {
		return
	}

	batch, err := h.service.GetByID(c.Request.Context(), batchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromBatch(batch))
}

// Create handles POST /purchase-batches.
func (h *PurchaseBatchHandler) Create(c *gin.Context) {
	var req dto.CreateBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	batch, lines := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), batch, lines); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromBatch(batch))
}

// Update handles PUT /purchase-batches/:id.
func (h *PurchaseBatchHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	batch, err := h.service.GetByID(ctx, batchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	lines := req.ApplyTo(batch)

	if err := h.service.Update(ctx, batch, lines); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromBatch(batch))
}

// Delete handles DELETE /purchase-batches/:id.
func (h *PurchaseBatchHandler) Delete(c *gin.Context) {
	batchID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), batchID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
