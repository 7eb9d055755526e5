package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentora-backend/internal/domains/dashboard/service"
	"rentora-backend/internal/shared/middleware"
	"rentora-backend/internal/shared/response"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, overview)
}

// Earnings reports monthly revenue for a year, defaulting to the
// current one.
func (h *DashboardHandler) Earnings(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	earnings, err := h.service.Earnings(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c), year)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, earnings)
}
