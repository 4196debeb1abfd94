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

// OrderHandler handles service order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type orderItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Kind      string  `json:"kind"`
	UnitPrice float64 `json:"unit_price"`
}

type createOrderRequest struct {
	CustomerID    *string            `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	DeviceBrand   string             `json:"device_brand"`
	DeviceModel   string             `json:"device_model"`
	DeviceSerial  string             `json:"device_serial"`
	Defect        string             `json:"defect"`
	Items         []orderItemRequest `json:"items"`
}

// Create handles service order creation
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateOrderInput{
		OperatorID:    *userID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		DeviceBrand:   req.DeviceBrand,
		DeviceModel:   req.DeviceModel,
		DeviceSerial:  req.DeviceSerial,
		Defect:        req.Defect,
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
		kind := enum.ItemKindServico
		if item.Kind == "Produto" {
			kind = enum.ItemKindProduto
		}
		input.Items = append(input.Items, service.OrderItemInput{
			Name:      item.Name,
			Kind:      kind,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service order created successfully", order)
}

// Get handles retrieving a single service order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service order retrieved successfully", order)
}

// List handles listing service orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
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

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Service orders retrieved successfully", result)
}

type updateStatusRequest struct {
	Status int `json:"status" binding:"min=0"`
}

// UpdateStatus handles moving an order to a new workflow status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, enum.OrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

type settleOrderRequest struct {
	PaymentMethod  string   `json:"payment_method" binding:"required"`
	Installments   int      `json:"installments"`
	OverrideAmount *float64 `json:"override_amount"`
}

// Settle handles order settlement: fee resolution, Finalizado transition and
// the ledger post happen in the service as one protected sequence.
func (h *OrderHandler) Settle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req settleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	order, err := h.orderService.Settle(c.Request.Context(), &service.SettleOrderInput{
		OrderID:        id,
		Method:         method,
		Installments:   req.Installments,
		OverrideAmount: req.OverrideAmount,
		Operator:       GetUserName(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order settled successfully", order)
}
