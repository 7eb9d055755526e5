package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentora-backend/internal/domains/property"
	"rentora-backend/internal/domains/property/service"
	"rentora-backend/internal/shared/middleware"
	"rentora-backend/internal/shared/response"
)

type PropertyHandler struct {
	service *service.PropertyService
}

func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: svc}
}

// List is the public search endpoint. Everything arrives as flat query
// params; malformed filter values are silently dropped.
func (h *PropertyHandler) List(c *gin.Context) {
	f := property.ParseFilters(c.Query)

	items, total, err := h.service.Search(c.Request.Context(), f, optionalViewer(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(f.Page, f.Limit, total))
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id, optionalViewer(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req property.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}

	var req property.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, middleware.UserID(c), middleware.UserRole(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.UserID(c), middleware.UserRole(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "property deleted"})
}

func (h *PropertyHandler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	items, total, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(page, limit, total))
}

func (h *PropertyHandler) ListFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	items, err := h.service.ListFeatured(c.Request.Context(), limit, optionalViewer(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *PropertyHandler) ListByCity(c *gin.Context) {
	city := c.Param("city")
	if city == "" {
		response.BadRequest(c, "city is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	items, err := h.service.ListByCity(c.Request.Context(), city, limit, optionalViewer(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *PropertyHandler) FilterOptions(c *gin.Context) {
	opts, err := h.service.FilterOptions(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts)
}

func (h *PropertyHandler) ToggleLike(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property id")
		return
	}

	liked, err := h.service.ToggleLike(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"liked": liked})
}

// optionalViewer returns the caller id when the route ran behind auth,
// nil on public routes.
func optionalViewer(c *gin.Context) *uuid.UUID {
	if raw, exists := c.Get(middleware.CtxUserID); exists {
		if id, ok := raw.(uuid.UUID); ok {
			return &id
		}
	}
	return nil
}
