package controllers

import (
	"net/http"

	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
)

// BrowseController serves the public /catalog views.
type BrowseController struct {
	catalog services.CatalogService
}

func NewBrowseController(svc services.CatalogService) *BrowseController {
	return &BrowseController{catalog: svc}
}

// ListVendors handles GET /catalog/vendors
func (bc *BrowseController) ListVendors(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	vendors, pagination, err := bc.catalog.ListVendors(ctx.Request.Context(), page, limit)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"vendors": nonNil(vendors), "pagination": pagination})
}

// GetVendor handles GET /catalog/vendors/:vendor_id
func (bc *BrowseController) GetVendor(ctx *gin.Context) {
	vendorID, ok := uuidParam(ctx, "vendor_id", "Vendor not found")
	if !ok {
		return
	}
	vendor, err := bc.catalog.GetVendor(ctx.Request.Context(), vendorID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, vendor)
}

// VendorMenu handles GET /catalog/vendors/:vendor_id/menu?category_id=
func (bc *BrowseController) VendorMenu(ctx *gin.Context) {
	vendorID, ok := uuidParam(ctx, "vendor_id", "Vendor not found")
	if !ok {
		return
	}
	categoryID, ok := optionalUUIDQuery(ctx, "category_id")
	if !ok {
		return
	}
	items, err := bc.catalog.VendorMenu(ctx.Request.Context(), vendorID, categoryID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": nonNil(items)})
}

// ListCategories handles GET /catalog/categories
func (bc *BrowseController) ListCategories(ctx *gin.Context) {
	categories, err := bc.catalog.ListCategories(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": nonNil(categories)})
}

// VendorsByCategory handles GET /catalog/categories/:category_id/vendors
func (bc *BrowseController) VendorsByCategory(ctx *gin.Context) {
	categoryID, ok := uuidParam(ctx, "category_id", "Category not found")
	if !ok {
		return
	}
	vendors, err := bc.catalog.VendorsByCategory(ctx.Request.Context(), categoryID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"vendors": nonNil(vendors)})
}
