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

// WarehouseHandler exposes the movement-ledger stock model: a product
// catalog plus IN/OUT movements with derived on-hand quantities.
type WarehouseHandler struct {
	inventoryService service.InventoryService
}

func NewWarehouseHandler(inventoryService service.InventoryService) *WarehouseHandler {
	return &WarehouseHandler{inventoryService: inventoryService}
}

func (h *WarehouseHandler) RegisterRoutes(router *gin.RouterGroup) {
	warehouse := router.Group("/api/warehouse")
	warehouse.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	{
		warehouse.POST("/products", h.CreateProduct)
		warehouse.GET("/products", h.ListProducts)
		warehouse.GET("/products/:id", h.GetProduct)
		warehouse.PUT("/products/:id", h.UpdateProduct)
		warehouse.DELETE("/products/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteProduct)

		warehouse.POST("/movements", h.RecordMovement)
		warehouse.GET("/movements", h.ListMovements)
	}
}

// CreateProduct adds a product to the warehouse catalog
// @Summary      Create product
// @Tags         warehouse
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ProductRequest  true  "Product Payload"
// @Success      201      {object}  response.Response{data=service.ProductResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/warehouse/products [post]
func (h *WarehouseHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// ListProducts returns the catalog with derived stock levels
// @Summary      List products
// @Tags         warehouse
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Search by product name"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/warehouse/products [get]
func (h *WarehouseHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, total, err := h.inventoryService.ListProducts(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}))
}

// GetProduct returns a product with its derived stock level
// @Summary      Get product
// @Tags         warehouse
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=service.ProductResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/warehouse/products/{id} [get]
func (h *WarehouseHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	product, err := h.inventoryService.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// UpdateProduct edits a catalog entry
// @Summary      Update product
// @Tags         warehouse
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Product ID"
// @Param        payload  body      service.ProductRequest  true  "Product Payload"
// @Success      200      {object}  response.Response{data=service.ProductResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/warehouse/products/{id} [put]
func (h *WarehouseHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.inventoryService.UpdateProduct(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// DeleteProduct removes a catalog entry and its movement history
// @Summary      Delete product
// @Tags         warehouse
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/warehouse/products/{id} [delete]
func (h *WarehouseHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	if err := h.inventoryService.DeleteProduct(c.Request.Context(), actorFrom(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Product deleted"}))
}

// RecordMovement records an IN or OUT movement
// @Summary      Record movement
// @Description  Records an IN or OUT movement; OUT movements exceeding the derived stock are rejected
// @Tags         warehouse
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.MovementRequest  true  "Movement Payload"
// @Success      201      {object}  response.Response{data=service.MovementResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/warehouse/movements [post]
func (h *WarehouseHandler) RecordMovement(c *gin.Context) {
	var req service.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	movement, err := h.inventoryService.RecordMovement(c.Request.Context(), actorFrom(c), req)
	if errors.Is(err, service.ErrInsufficientStock) {
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, movement))
}

// ListMovements returns the movement ledger, newest first
// @Summary      List movements
// @Tags         warehouse
// @Security     BearerAuth
// @Produce      json
// @Param        product_id  query     string  false  "Filter by product ID"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Failure      500         {object}  response.Response
// @Router       /api/warehouse/movements [get]
func (h *WarehouseHandler) ListMovements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid product_id"))
			return
		}
		productID = &id
	}

	movements, total, err := h.inventoryService.ListMovements(c.Request.Context(), productID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"movements": movements,
		"total":     total,
		"page":      page,
		"limit":     limit,
	}))
}
