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

type QuotationHandler struct {
	quotationService service.QuotationService
}

func NewQuotationHandler(quotationService service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

func (h *QuotationHandler) RegisterRoutes(router *gin.RouterGroup) {
	quotations := router.Group("/api/quotations")
	quotations.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	{
		quotations.POST("", h.CreateQuotation)
		quotations.GET("", h.ListQuotations)
		quotations.GET("/:id", h.GetQuotation)
		quotations.PUT("/:id", h.UpdateQuotation)
		quotations.DELETE("/:id", h.DeleteQuotation)

		quotations.POST("/:id/items", h.AddItem)
		quotations.PUT("/:id/items/:itemID", h.UpdateItem)
		quotations.DELETE("/:id/items/:itemID", h.DeleteItem)
	}
}

// CreateQuotation creates a new quotation with its line items
// @Summary      Create quotation
// @Description  Creates a quotation and assigns the next sequential number; stock is never touched
// @Tags         quotations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateQuotationRequest  true  "Create Quotation Payload"
// @Success      201      {object}  response.Response{data=service.QuotationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/quotations [post]
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var req service.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, quotation))
}

// ListQuotations returns a paginated list of quotations
// @Summary      List quotations
// @Tags         quotations
// @Security     BearerAuth
// @Produce      json
// @Param        quotation_no  query     string  false  "Filter by quotation number (partial match)"
// @Param        date_from     query     string  false  "Start date (YYYY-MM-DD)"
// @Param        date_to       query     string  false  "End date (YYYY-MM-DD)"
// @Param        page          query     int     false  "Page number (default 1)"
// @Param        limit         query     int     false  "Number of items per page (default 20)"
// @Success      200           {object}  response.Response{data=object}
// @Failure      500           {object}  response.Response
// @Router       /api/quotations [get]
func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := service.QuotationFilter{
		QuotationNo: c.Query("quotation_no"),
		DateFrom:    parseDateQuery(c.Query("date_from")),
		DateTo:      parseDateQuery(c.Query("date_to")),
		Page:        page,
		Limit:       limit,
	}

	quotations, total, err := h.quotationService.ListQuotations(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"quotations": quotations,
		"total":      total,
		"page":       page,
		"limit":      limit,
	}))
}

// GetQuotation returns a single quotation with items and amount in words
// @Summary      Get quotation
// @Tags         quotations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {object}  response.Response{data=service.QuotationResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}

// UpdateQuotation updates quotation fields and recomputes the total
// @Summary      Update quotation
// @Tags         quotations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Quotation ID"
// @Param        payload  body      service.UpdateQuotationRequest  true  "Update Quotation Payload"
// @Success      200      {object}  response.Response{data=service.QuotationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/quotations/{id} [put]
func (h *QuotationHandler) UpdateQuotation(c *gin.Context) {
	var req service.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}

// DeleteQuotation deletes a quotation
// @Summary      Delete quotation
// @Tags         quotations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/quotations/{id} [delete]
func (h *QuotationHandler) DeleteQuotation(c *gin.Context) {
	if err := h.quotationService.DeleteQuotation(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Quotation deleted"}))
}

// AddItem appends a line item to a quotation
// @Summary      Add quotation item
// @Tags         quotations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Quotation ID"
// @Param        payload  body      service.QuotationItemRequest  true  "Item Payload"
// @Success      200      {object}  response.Response{data=service.QuotationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/quotations/{id}/items [post]
func (h *QuotationHandler) AddItem(c *gin.Context) {
	var req service.QuotationItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quotation, err := h.quotationService.AddItem(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}

// UpdateItem edits a quotation line item
// @Summary      Update quotation item
// @Tags         quotations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Quotation ID"
// @Param        itemID   path      string                        true  "Item ID"
// @Param        payload  body      service.QuotationItemRequest  true  "Item Payload"
// @Success      200      {object}  response.Response{data=service.QuotationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/quotations/{id}/items/{itemID} [put]
func (h *QuotationHandler) UpdateItem(c *gin.Context) {
	var req service.QuotationItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quotation, err := h.quotationService.UpdateItem(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("itemID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}

// DeleteItem removes a quotation line item
// @Summary      Delete quotation item
// @Tags         quotations
// @Security     BearerAuth
// @Produce      json
// @Param        id      path      string  true  "Quotation ID"
// @Param        itemID  path      string  true  "Item ID"
// @Success      200     {object}  response.Response{data=service.QuotationResponse}
// @Failure      400     {object}  response.Response
// @Router       /api/quotations/{id}/items/{itemID} [delete]
func (h *QuotationHandler) DeleteItem(c *gin.Context) {
	quotation, err := h.quotationService.DeleteItem(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}
