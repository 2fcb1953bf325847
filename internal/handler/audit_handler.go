package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prathibhasolutions/prathibha-tech/internal/middleware"
	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/service"
	"github.com/prathibhasolutions/prathibha-tech/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/audit-events")
	audit.Use(middleware.RequireRole(model.RoleAdmin))
	{
		audit.GET("", h.ListEvents)
		audit.DELETE("/:id", h.DeleteEvent)
	}
}

// ListEvents returns the audit trail, newest first
// @Summary      List audit events
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        action   query     string  false  "Filter by action (LOGIN, LOGOUT, ADD, CHANGE, DELETE, OTHER)"
// @Param        user_id  query     string  false  "Filter by acting user ID"
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Number of items per page (default 50)"
// @Success      200      {object}  response.Response{data=object}
// @Failure      500      {object}  response.Response
// @Router       /api/audit-events [get]
func (h *AuditHandler) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	filter := service.AuditFilter{
		Action: c.Query("action"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid user_id"))
			return
		}
		filter.UserID = &id
	}

	events, total, err := h.auditService.ListEvents(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  total,
		"page":   page,
		"limit":  limit,
	}))
}

// DeleteEvent always fails with 403; the trail is append-only
// @Summary      Delete audit event
// @Description  Audit events are immutable; this endpoint always refuses
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Failure      403  {object}  response.Response
// @Router       /api/audit-events/{id} [delete]
func (h *AuditHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid event ID"))
		return
	}

	err = h.auditService.DeleteEvent(c.Request.Context(), id)
	if errors.Is(err, model.ErrAuditEventImmutable) {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Event deleted"}))
}
