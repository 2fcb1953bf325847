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

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	invoices.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.POST("/bulk-delete", h.BulkDeleteInvoices)

		invoices.POST("/:id/items", h.AddItem)
		invoices.PUT("/:id/items/:itemID", h.UpdateItem)
		invoices.DELETE("/:id/items/:itemID", h.DeleteItem)
	}
}

// CreateInvoice creates a new invoice with its line items
// @Summary      Create invoice
// @Description  Creates an invoice, assigns the next sequential number, deducts stock, and computes totals
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInvoiceRequest  true  "Create Invoice Payload"
// @Success      201      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// ListInvoices returns a paginated list of invoices
// @Summary      List invoices
// @Description  Retrieves a paginated list of invoices, optionally filtered by payment status, number, and date range
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        payment_status  query     string  false  "Filter by payment status (UNPAID, PAID)"
// @Param        invoice_no      query     string  false  "Filter by invoice number (partial match)"
// @Param        date_from       query     string  false  "Start date (YYYY-MM-DD)"
// @Param        date_to         query     string  false  "End date (YYYY-MM-DD)"
// @Param        page            query     int     false  "Page number (default 1)"
// @Param        limit           query     int     false  "Number of items per page (default 20)"
// @Success      200             {object}  response.Response{data=object}
// @Failure      500             {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := service.InvoiceFilter{
		PaymentStatus: c.Query("payment_status"),
		InvoiceNo:     c.Query("invoice_no"),
		DateFrom:      parseDateQuery(c.Query("date_from")),
		DateTo:        parseDateQuery(c.Query("date_to")),
		Page:          page,
		Limit:         limit,
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}))
}

// GetInvoice returns a single invoice with items, amount in words, and payment QR
// @Summary      Get invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// UpdateInvoice updates invoice fields and recomputes totals
// @Summary      Update invoice
// @Description  Updates customer, discount, GST, advance, or payment status; totals are recomputed
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Invoice ID"
// @Param        payload  body      service.UpdateInvoiceRequest  true  "Update Invoice Payload"
// @Success      200      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// DeleteInvoice deletes an invoice and restores the stock its items consumed
// @Summary      Delete invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Invoice deleted"}))
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BulkDeleteInvoices deletes a set of invoices in one transaction
// @Summary      Bulk delete invoices
// @Description  Deletes the given invoices atomically; stock consumed by their items is restored
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      bulkDeleteRequest  true  "Invoice IDs"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/invoices/bulk-delete [post]
func (h *InvoiceHandler) BulkDeleteInvoices(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.invoiceService.DeleteInvoices(c.Request.Context(), actorFrom(c), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Invoices deleted", "count": len(req.IDs)}))
}

// AddItem appends a line item to an invoice
// @Summary      Add invoice item
// @Description  Adds a line item, deducts stock when the item references a stock entry, and recomputes totals
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Invoice ID"
// @Param        payload  body      service.InvoiceItemRequest  true  "Item Payload"
// @Success      200      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/invoices/{id}/items [post]
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	var req service.InvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.AddItem(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// UpdateItem edits an invoice line item
// @Summary      Update invoice item
// @Description  Edits a line item; stock is reconciled against the previous quantity and reference
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Invoice ID"
// @Param        itemID   path      string                      true  "Item ID"
// @Param        payload  body      service.InvoiceItemRequest  true  "Item Payload"
// @Success      200      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/invoices/{id}/items/{itemID} [put]
func (h *InvoiceHandler) UpdateItem(c *gin.Context) {
	var req service.InvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.UpdateItem(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("itemID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// DeleteItem removes an invoice line item
// @Summary      Delete invoice item
// @Description  Removes a line item, restores the stock it consumed, and recomputes totals
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id      path      string  true  "Invoice ID"
// @Param        itemID  path      string  true  "Item ID"
// @Success      200     {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400     {object}  response.Response
// @Router       /api/invoices/{id}/items/{itemID} [delete]
func (h *InvoiceHandler) DeleteItem(c *gin.Context) {
	invoice, err := h.invoiceService.DeleteItem(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}
