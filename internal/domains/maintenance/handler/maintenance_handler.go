package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentora-backend/internal/domains/maintenance"
	"rentora-backend/internal/domains/maintenance/service"
	"rentora-backend/internal/shared/middleware"
	"rentora-backend/internal/shared/response"
)

type MaintenanceHandler struct {
	service *service.MaintenanceService
}

func NewMaintenanceHandler(svc *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: svc}
}

func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req maintenance.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	m, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *MaintenanceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid maintenance request id")
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), id, middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *MaintenanceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filters := maintenance.ListFilters{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("propertyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid propertyId")
			return
		}
		filters.PropertyID = &id
	}

	items, total, err := h.service.List(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c), filters, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(page, limit, total))
}

func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid maintenance request id")
		return
	}

	var req maintenance.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, middleware.UserID(c), middleware.UserRole(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}
