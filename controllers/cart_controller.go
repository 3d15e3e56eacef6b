package controllers

import (
	"net/http"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
)

const msgCartItemNotFound = "Item not found in cart"

// CartController handles the /cart endpoints.
type CartController struct {
	cart services.CartService
}

func NewCartController(svc services.CartService) *CartController {
	return &CartController{cart: svc}
}

// List handles GET /cart
func (cc *CartController) List(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	summary, err := cc.cart.List(ctx.Request.Context(), userID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// AddItem handles POST /cart/items/:item_id
func (cc *CartController) AddItem(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "item_id", "Menu item not found")
	if !ok {
		return
	}
	entry, err := cc.cart.AddItem(ctx.Request.Context(), userID, itemID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}

// UpdateQuantity handles PUT /cart/items/:item_id
func (cc *CartController) UpdateQuantity(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "item_id", msgCartItemNotFound)
	if !ok {
		return
	}
	var req models.QuantityRequest
	if !bind(ctx, &req) {
		return
	}
	entry, err := cc.cart.UpdateQuantity(ctx.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

// RemoveItem handles DELETE /cart/items/:item_id
func (cc *CartController) RemoveItem(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "item_id", msgCartItemNotFound)
	if !ok {
		return
	}
	if err := cc.cart.RemoveItem(ctx.Request.Context(), userID, itemID); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Clear handles DELETE /cart
func (cc *CartController) Clear(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	if err := cc.cart.Clear(ctx.Request.Context(), userID); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Checkout handles POST /cart/checkout
func (cc *CartController) Checkout(ctx *gin.Context) {
	userID, ok := accountID(ctx)
	if !ok {
		return
	}
	result, err := cc.cart.Checkout(ctx.Request.Context(), userID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	if len(result.Orders) == 0 {
		ctx.JSON(http.StatusOK, result)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}
