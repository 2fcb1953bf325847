package handler

import (
	"net/http"

	"github.com/prathibhasolutions/prathibha-tech/internal/middleware"
	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/service"
	"github.com/prathibhasolutions/prathibha-tech/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.GetDashboard)
}

// GetDashboard returns the composed landing view
// @Summary      Get dashboard
// @Description  Returns the ledger balance, unpaid invoices, and current stock levels in one payload
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, overview))
}
