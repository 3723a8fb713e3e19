package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain/audit"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// AuditHandler exposes the change trail.
type AuditHandler struct {
	*BaseHandler
	reader audit.Reader
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, reader audit.Reader) *AuditHandler {
	return &AuditHandler{BaseHandler: base, reader: reader}
}

// History handles GET /audit.
func (h *AuditHandler) History(c *gin.Context) {
	q := audit.HistoryQuery{
		EntityType: c.Query("entityType"),
		Limit:      h.ParseIntQuery(c, "limit", 50),
	}
	if q.EntityType != "" && !audit.IsEntityType(q.EntityType) {
		h.Error(c, apperror.NewInvalidInput("unknown entity type").
			WithDetail("entityType", q.EntityType))
		return
	}

	var ok bool
	if q.EntityID, ok = h.ParseIDQuery(c, "entityId"); !ok {
		return
	}

	entries, err := h.reader.History(c.Request.Context(), q)
	if err != nil {
		h.Error(c, err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	h.OK(c, dto.AuditHistoryResponse{Items: entries})
}
