package handler

import (
	"strconv"
	"time"

	"github.com/assistec/assistec-api/internal/application/service"
	"github.com/assistec/assistec-api/internal/domain/enum"
	"github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/internal/presentation/http/dto/response"
	"github.com/assistec/assistec-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CashierHandler handles cash ledger HTTP requests
type CashierHandler struct {
	cashierService *service.CashierService
}

// NewCashierHandler creates a new cashier handler
func NewCashierHandler(cashierService *service.CashierService) *CashierHandler {
	return &CashierHandler{cashierService: cashierService}
}

type manualMovementRequest struct {
	Kind        int     `json:"kind"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

// CreateMovement handles posting a manual entry or exit (suprimento, sangria)
func (h *CashierHandler) CreateMovement(c *gin.Context) {
	var req manualMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.cashierService.ManualMovement(c.Request.Context(), &service.ManualMovementInput{
		Kind:        enum.EntryKind(req.Kind),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Operator:    GetUserName(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash movement recorded successfully", entry)
}

// GetEntry handles retrieving a single ledger entry
func (h *CashierHandler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.cashierService.GetEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger entry retrieved successfully", entry)
}

// List handles listing ledger entries (page or cursor based)
func (h *CashierHandler) List(c *gin.Context) {
	if c.Query("cursor") != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.LedgerFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Category: c.Query("category"),
	}

	if kindStr := c.Query("kind"); kindStr != "" {
		if kindInt, err := strconv.Atoi(kindStr); err == nil {
			kind := enum.EntryKind(kindInt)
			params.Kind = &kind
		}
	}

	applyLedgerDates(c, &params.StartDate, &params.EndDate)

	result, err := h.cashierService.ListEntries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Ledger entries retrieved successfully", result)
}

func (h *CashierHandler) listWithCursor(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &repository.LedgerCursorParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Category: c.Query("category"),
	}

	if kindStr := c.Query("kind"); kindStr != "" {
		if kindInt, err := strconv.Atoi(kindStr); err == nil {
			kind := enum.EntryKind(kindInt)
			params.Kind = &kind
		}
	}

	applyLedgerDates(c, &params.StartDate, &params.EndDate)

	result, err := h.cashierService.ListEntriesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger entries retrieved successfully", result)
}

// Balance returns the current cash on hand
func (h *CashierHandler) Balance(c *gin.Context) {
	balance, err := h.cashierService.Balance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved successfully", gin.H{"balance": balance})
}

// applyLedgerDates parses start_date/end_date query params. The end date is
// inclusive, so it becomes an exclusive bound on the following day.
func applyLedgerDates(c *gin.Context, start, end **time.Time) {
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			*start = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			e := endDate.AddDate(0, 0, 1)
			*end = &e
		}
	}
}
