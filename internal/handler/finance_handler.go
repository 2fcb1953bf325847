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

type FinanceHandler struct {
	financeService service.FinanceService
}

func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

func (h *FinanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	finance := router.Group("/api/finance")
	finance.Use(middleware.RequireRole(model.RoleAdmin))
	{
		finance.POST("/entries", h.CreateEntry)
		finance.GET("/entries", h.ListEntries)
		finance.GET("/balance", h.GetBalance)
	}
}

// CreateEntry records a manual ledger entry
// @Summary      Create finance entry
// @Description  Records a CREDIT or DEBIT ledger entry with a categorized reason
// @Tags         finance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateFinanceEntryRequest  true  "Finance Entry Payload"
// @Success      201      {object}  response.Response{data=service.FinanceEntryResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/finance/entries [post]
func (h *FinanceHandler) CreateEntry(c *gin.Context) {
	var req service.CreateFinanceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.financeService.CreateEntry(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// ListEntries returns a paginated ledger
// @Summary      List finance entries
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Param        transaction_type  query     string  false  "Filter by type (CREDIT, DEBIT)"
// @Param        reason            query     string  false  "Filter by reason category"
// @Param        search            query     string  false  "Search in description"
// @Param        date_from         query     string  false  "Start date (YYYY-MM-DD)"
// @Param        date_to           query     string  false  "End date (YYYY-MM-DD)"
// @Param        page              query     int     false  "Page number (default 1)"
// @Param        limit             query     int     false  "Number of items per page (default 20)"
// @Success      200               {object}  response.Response{data=object}
// @Failure      500               {object}  response.Response
// @Router       /api/finance/entries [get]
func (h *FinanceHandler) ListEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := service.FinanceFilter{
		TransactionType: c.Query("transaction_type"),
		Reason:          c.Query("reason"),
		Search:          c.Query("search"),
		DateFrom:        parseDateQuery(c.Query("date_from")),
		DateTo:          parseDateQuery(c.Query("date_to")),
		Page:            page,
		Limit:           limit,
	}

	entries, total, err := h.financeService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
		"page":    page,
		"limit":   limit,
	}))
}

// GetBalance returns the derived cash position
// @Summary      Get ledger balance
// @Description  Returns total credits, total debits, and the derived balance
// @Tags         finance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.BalanceResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/finance/balance [get]
func (h *FinanceHandler) GetBalance(c *gin.Context) {
	balance, err := h.financeService.Balance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, balance))
}
