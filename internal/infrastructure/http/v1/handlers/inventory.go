package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockbook/internal/domain"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/export"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ReportService builds inventory and financial reports.
type ReportService interface {
	Financial(ctx context.Context, r domain.DateRange) (*reports.FinancialReport, error)
	Inventory(ctx context.Context) ([]reports.InventoryItem, error)
}

// InventoryHandler serves the inventory list, its spreadsheet export and
// the financial report.
type InventoryHandler struct {
	*BaseHandler
	service ReportService
	now     func() time.Time
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service ReportService) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service, now: time.Now}
}

// Inventory handles GET /inventory.
func (h *InventoryHandler) Inventory(c *gin.Context) {
	items, err := h.service.Inventory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.InventoryItemResponse, len(items))
	for i, item := range items {
		resp[i] = dto.FromInventoryItem(item)
	}
	h.OK(c, resp)
}

// Export handles GET /inventory/export and returns an xlsx workbook.
func (h *InventoryHandler) Export(c *gin.Context) {
	items, err := h.service.Inventory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	// Render into memory first so a failure still produces a JSON error.
	var buf bytes.Buffer
	if err := export.WriteInventory(&buf, items); err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, export.InventoryFileName(h.now())))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// FinancialReport handles GET /inventory/financial-report.
func (h *InventoryHandler) FinancialReport(c *gin.Context) {
	dr, ok := h.ParseDateRange(c)
	if !ok {
		return
	}

	report, err := h.service.Financial(c.Request.Context(), dr)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromFinancialReport(report))
}
