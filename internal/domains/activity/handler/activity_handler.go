package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/internal/domains/activity/service"
	"rentora-backend/internal/domains/user"
	"rentora-backend/internal/shared/middleware"
	"rentora-backend/internal/shared/response"
)

type ActivityHandler struct {
	service *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

// List returns the activity feed. Admin and support see everything and
// may filter by user; everyone else sees only their own entries.
func (h *ActivityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filters := activity.ListFilters{
		Action:     c.Query("action"),
		EntityType: c.Query("entityType"),
	}

	role := middleware.UserRole(c)
	if role == user.RoleAdmin || role == user.RoleSupport {
		if raw := c.Query("userId"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.BadRequest(c, "invalid userId")
				return
			}
			filters.UserID = &id
		}
	} else {
		id := middleware.UserID(c)
		filters.UserID = &id
	}

	items, total, err := h.service.List(c.Request.Context(), filters, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(page, limit, total))
}
