// Package handlers provides HTTP request handlers.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, bindingError(err))
		return false
	}
	return true
}

// bindingError turns a binding failure into an AppError. Struct tag
// failures become field validation errors; anything else is malformed input.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldError(verrs[0])
	}
	return apperror.NewInvalidInput("invalid request body").WithDetail("error", err.Error())
}

// Error records err on the context and aborts. middleware.ErrorHandler
// renders the envelope.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseID parses the :id path parameter.
func (h *BaseHandler) ParseID(c *gin.Context) (id.ID, bool) {
	parsed, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewInvalidInput("invalid id format").WithDetail("id", c.Param("id")))
		return id.ID{}, false
	}
	return parsed, true
}

// ParseIntQuery returns def when key is absent or not an integer.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil {
		return n
	}
	return def
}

// ParseListFilter reads search, pagination and ordering parameters.
func (h *BaseHandler) ParseListFilter(c *gin.Context) domain.ListFilter {
	filter := domain.ListFilter{
		Search:  c.Query("search"),
		OrderBy: c.Query("orderBy"),
		Limit:   h.ParseIntQuery(c, "limit", domain.DefaultLimit),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}
	filter.Normalize()
	return filter
}

// optionalQuery parses query parameter key with parse. An absent key
// yields nil; an unparsable one aborts with INVALID_INPUT.
func optionalQuery[T any](h *BaseHandler, c *gin.Context, key, what string, parse func(string) (T, error)) (*T, bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return nil, true
	}
	v, err := parse(raw)
	if err != nil {
		h.Error(c, apperror.NewInvalidInput("invalid "+what).
			WithDetail("field", key).
			WithDetail("value", raw))
		return nil, false
	}
	return &v, true
}

// ParseDateRange reads the startDate and endDate query parameters.
func (h *BaseHandler) ParseDateRange(c *gin.Context) (domain.DateRange, bool) {
	from, ok := optionalQuery(h, c, "startDate", "date", types.ParseDate)
	if !ok {
		return domain.DateRange{}, false
	}
	to, ok := optionalQuery(h, c, "endDate", "date", types.ParseDate)
	if !ok {
		return domain.DateRange{}, false
	}
	return domain.DateRange{From: from, To: to}, true
}

// ParseIDQuery reads an optional UUID query parameter.
func (h *BaseHandler) ParseIDQuery(c *gin.Context, key string) (*id.ID, bool) {
	return optionalQuery(h, c, key, "id format", id.Parse)
}

// ParseBoolQuery reads an optional boolean query parameter.
func (h *BaseHandler) ParseBoolQuery(c *gin.Context, key string) (*bool, bool) {
	return optionalQuery(h, c, key, "boolean", strconv.ParseBool)
}

// Created sends 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
