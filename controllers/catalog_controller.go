package controllers

import (
	"net/http"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
)

const (
	msgLocationNotFound = "Location not found or does not belong to the vendor"
	msgItemNotFound     = "Item not found or does not belong to the vendor"
)

// CatalogController handles the vendor-managed /vendors/me locations and
// menu items.
type CatalogController struct {
	catalog services.CatalogService
}

func NewCatalogController(svc services.CatalogService) *CatalogController {
	return &CatalogController{catalog: svc}
}

// AddLocation handles POST /vendors/me/locations
func (cc *CatalogController) AddLocation(ctx *gin.Context) {
	vendorID, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.LocationRequest
	if !bind(ctx, &req) {
		return
	}
	loc, err := cc.catalog.AddLocation(ctx.Request.Context(), vendorID, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Location created and associated with the vendor.",
		"location": loc,
	})
}

// DeleteLocation handles DELETE /vendors/me/locations/:location_id
func (cc *CatalogController) DeleteLocation(ctx *gin.Context) {
	vendorID, ok := accountID(ctx)
	if !ok {
		return
	}
	locationID, ok := uuidParam(ctx, "location_id", msgLocationNotFound)
	if !ok {
		return
	}
	if err := cc.catalog.DeleteLocation(ctx.Request.Context(), vendorID, locationID); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully."})
}

// ListItems handles GET /vendors/me/items?category_id=
func (cc *CatalogController) ListItems(ctx *gin.Context) {
	vendorID, ok := accountID(ctx)
	if !ok {
		return
	}
	categoryID, ok := optionalUUIDQuery(ctx, "category_id")
	if !ok {
		return
	}
	items, err := cc.catalog.ListOwnMenu(ctx.Request.Context(), vendorID, categoryID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": nonNil(items)})
}

// AddItem handles POST /vendors/me/items
func (cc *CatalogController) AddItem(ctx *gin.Context) {
	vendorID, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.CreateMenuItemRequest
	if !bind(ctx, &req) {
		return
	}
	item, err := cc.catalog.AddMenuItem(ctx.Request.Context(), vendorID, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /vendors/me/items/:item_id
func (cc *CatalogController) UpdateItem(ctx *gin.Context) {
	vendorID, ok := accountID(ctx)
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "item_id", msgItemNotFound)
	if !ok {
		return
	}
	var req models.UpdateMenuItemRequest
	if !bind(ctx, &req) {
		return
	}
	item, err := cc.catalog.UpdateMenuItem(ctx.Request.Context(), vendorID, itemID, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /vendors/me/items/:item_id
func (cc *CatalogController) DeleteItem(ctx *gin.Context) {
	vendorID, ok := accountID(ctx)
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "item_id", msgItemNotFound)
	if !ok {
		return
	}
	if err := cc.catalog.DeleteMenuItem(ctx.Request.Context(), vendorID, itemID); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully."})
}

// UploadItemImage handles POST /vendors/me/items/:item_id/image
func (cc *CatalogController) UploadItemImage(ctx *gin.Context) {
	vendorID, ok := accountID(ctx)
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "item_id", msgItemNotFound)
	if !ok {
		return
	}
	var req models.ImageUploadRequest
	if !bind(ctx, &req) {
		return
	}
	upload, err := cc.catalog.MenuItemImageUploadURL(ctx.Request.Context(), vendorID, itemID, req.ContentType)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, upload)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
