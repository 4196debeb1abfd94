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

// SaleHandler handles sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

type saleItemRequest struct {
	ProductID *string `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
}

type createSaleRequest struct {
	CustomerID    *string           `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	DeliveryType  int               `json:"delivery_type"`
	ShippingCost  float64           `json:"shipping_cost"`
	AmountPaid    float64           `json:"amount_paid"`
	PreOrder      bool              `json:"pre_order"`
	Items         []saleItemRequest `json:"items" binding:"required,min=1"`
}

// Create handles checkout
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	input := &service.CreateSaleInput{
		OperatorID:   *userID,
		Operator:     GetUserName(c),
		CustomerName: req.CustomerName,
		Method:       method,
		DeliveryType: enum.DeliveryType(req.DeliveryType),
		ShippingCost: req.ShippingCost,
		AmountPaid:   req.AmountPaid,
		PreOrder:     req.PreOrder,
	}

	if req.CustomerID != nil && *req.CustomerID != "" {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	}

	for _, item := range req.Items {
		saleItem := service.SaleItemInput{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		}
		if item.ProductID != nil && *item.ProductID != "" {
			productID, err := uuid.Parse(*item.ProductID)
			if err != nil {
				response.BadRequest(c, "Invalid product ID")
				return
			}
			saleItem.ProductID = &productID
		}
		input.Items = append(input.Items, saleItem)
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}

// Get handles retrieving a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales with filters
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.SaleStatus(statusInt)
			params.Status = &status
		}
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			end := endDate.AddDate(0, 0, 1)
			params.EndDate = &end
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// ReceivePayment marks an open (A Receber / Encomenda) sale as paid
func (h *SaleHandler) ReceivePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.ReceivePayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment received successfully", sale)
}

type refundRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// Refund reverses a sale as store credit or money back
func (h *SaleHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var kind enum.RefundKind
	switch req.Kind {
	case "Credito", "Crédito", "credito":
		kind = enum.RefundKindCredito
	case "Dinheiro", "dinheiro":
		kind = enum.RefundKindDinheiro
	default:
		response.BadRequest(c, "Refund kind must be Credito or Dinheiro")
		return
	}

	sale, err := h.saleService.Refund(c.Request.Context(), &service.RefundInput{
		SaleID:   id,
		Kind:     kind,
		Operator: GetUserName(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale refunded successfully", sale)
}
