package handler

import (
	"net/http"
	"strconv"

	"github.com/prathibhasolutions/prathibha-tech/internal/middleware"
	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/service"
	"github.com/prathibhasolutions/prathibha-tech/pkg/response"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	stocks := router.Group("/api/stocks")
	{
		stocks.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.CreateStock)
		stocks.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.ListStocks)
		stocks.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.GetStock)
		stocks.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.UpdateStock)
		stocks.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteStock)
	}
}

// CreateStock creates a new stock item
// @Summary      Create stock item
// @Description  Creates a new sellable stock item with quantity and prices
// @Tags         stocks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateStockRequest  true  "Create Stock Payload"
// @Success      201      {object}  response.Response{data=service.StockResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/stocks [post]
func (h *StockHandler) CreateStock(c *gin.Context) {
	var req service.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	stock, err := h.stockService.CreateStock(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, stock))
}

// ListStocks returns a paginated list of stock items
// @Summary      List stock items
// @Description  Retrieves a paginated list of stock items, optionally filtered by name or serial number
// @Tags         stocks
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Search by product name or serial number"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	stocks, total, err := h.stockService.ListStocks(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"stocks": stocks,
		"total":  total,
		"page":   page,
		"limit":  limit,
	}))
}

// GetStock returns a single stock item by ID
// @Summary      Get stock item
// @Tags         stocks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Stock ID"
// @Success      200  {object}  response.Response{data=service.StockResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	stock, err := h.stockService.GetStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stock))
}

// UpdateStock updates a stock item
// @Summary      Update stock item
// @Tags         stocks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Stock ID"
// @Param        payload  body      service.UpdateStockRequest  true  "Update Stock Payload"
// @Success      200      {object}  response.Response{data=service.StockResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/stocks/{id} [put]
func (h *StockHandler) UpdateStock(c *gin.Context) {
	var req service.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	stock, err := h.stockService.UpdateStock(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stock))
}

// DeleteStock deletes a stock item
// @Summary      Delete stock item
// @Tags         stocks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Stock ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/stocks/{id} [delete]
func (h *StockHandler) DeleteStock(c *gin.Context) {
	if err := h.stockService.DeleteStock(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Stock deleted"}))
}
