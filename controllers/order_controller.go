package controllers

import (
	"net/http"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
)

// OrderController handles the /orders endpoints.
type OrderController struct {
	orders services.OrderService
}

func NewOrderController(svc services.OrderService) *OrderController {
	return &OrderController{orders: svc}
}

// List handles GET /orders, optionally narrowed with ?vendor_id=
func (oc *OrderController) List(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	vendorID, ok := optionalUUIDQuery(ctx, "vendor_id")
	if !ok {
		return
	}
	page, limit := parsePaginationParams(ctx)
	orders, pagination, err := oc.orders.List(ctx.Request.Context(), userID, vendorID, page, limit)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders, "pagination": pagination})
}

// Get handles GET /orders/:order_id
func (oc *OrderController) Get(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	orderID, ok := uuidParam(ctx, "order_id", "Order not found")
	if !ok {
		return
	}
	order, err := oc.orders.Get(ctx.Request.Context(), userID, orderID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// UpdateQuantity handles PUT /orders/:order_id
func (oc *OrderController) UpdateQuantity(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	orderID, ok := uuidParam(ctx, "order_id", "Order not found")
	if !ok {
		return
	}
	var req models.QuantityRequest
	if !bind(ctx, &req) {
		return
	}
	order, err := oc.orders.UpdateQuantity(ctx.Request.Context(), userID, orderID, req.Quantity)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}
