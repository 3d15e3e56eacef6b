package controllers

import (
	"net/http"

	"github.com/EkeneDeProgram/909ineFoods/middleware"
	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
)

// VendorController handles the vendor account endpoints.
type VendorController struct {
	vendors services.VendorService
	cookie  CookieConfig
}

func NewVendorController(svc services.VendorService, cookie CookieConfig) *VendorController {
	return &VendorController{vendors: svc, cookie: cookie}
}

// Register handles POST /vendors/register
func (vc *VendorController) Register(ctx *gin.Context) {
	var req models.RegisterVendorRequest
	if !bind(ctx, &req) {
		return
	}
	vendor, err := vc.vendors.Register(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, vendor)
}

// Login handles POST /vendors/login
func (vc *VendorController) Login(ctx *gin.Context) {
	var req models.EmailRequest
	if !bind(ctx, &req) {
		return
	}
	if err := vc.vendors.RequestLogin(ctx.Request.Context(), req.Email); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Verification code sent to your email"})
}

// ResendCode handles POST /vendors/resend-code
func (vc *VendorController) ResendCode(ctx *gin.Context) {
	var req models.EmailRequest
	if !bind(ctx, &req) {
		return
	}
	if err := vc.vendors.ResendCode(ctx.Request.Context(), req.Email); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Verification code resent"})
}

// Verify handles POST /vendors/verify
func (vc *VendorController) Verify(ctx *gin.Context) {
	var req models.VerifyCodeRequest
	if !bind(ctx, &req) {
		return
	}
	_, session, err := vc.vendors.Verify(ctx.Request.Context(), req.Email, req.VerificationCode)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	vc.cookie.set(ctx, session.Token)
	ctx.JSON(http.StatusOK, gin.H{"jwt": session.Token})
}

// Profile handles GET /vendors/me
func (vc *VendorController) Profile(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	vendor, err := vc.vendors.Profile(ctx.Request.Context(), id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, vendor)
}

// Logout handles POST /vendors/logout
func (vc *VendorController) Logout(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	if err := vc.vendors.Logout(ctx.Request.Context(), id, middleware.GetClaims(ctx)); err != nil {
		_ = ctx.Error(err)
		return
	}
	vc.cookie.clear(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// UpdateEmail handles PUT /vendors/me/email
func (vc *VendorController) UpdateEmail(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.EmailRequest
	if !bind(ctx, &req) {
		return
	}
	vendor, err := vc.vendors.UpdateEmail(ctx.Request.Context(), id, req.Email)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Email updated successfully", "vendor": vendor})
}

// UpdateContactInfo handles PUT /vendors/me/contact-info
func (vc *VendorController) UpdateContactInfo(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.UpdateContactInfoRequest
	if !bind(ctx, &req) {
		return
	}
	vendor, err := vc.vendors.UpdateContactInfo(ctx.Request.Context(), id, req.ContactInfo)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Contact info updated successfully.", "vendor": vendor})
}

// UpdateDetails handles PUT /vendors/me
func (vc *VendorController) UpdateDetails(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.UpdateVendorRequest
	if !bind(ctx, &req) {
		return
	}
	vendor, err := vc.vendors.UpdateDetails(ctx.Request.Context(), id, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Update successful", "vendor": vendor})
}

// UploadImage handles POST /vendors/me/image
func (vc *VendorController) UploadImage(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.ImageUploadRequest
	if !bind(ctx, &req) {
		return
	}
	upload, err := vc.vendors.ImageUploadURL(ctx.Request.Context(), id, req.ContentType)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, upload)
}

// Delete handles DELETE /vendors/me
func (vc *VendorController) Delete(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	if err := vc.vendors.Delete(ctx.Request.Context(), id, middleware.GetClaims(ctx)); err != nil {
		_ = ctx.Error(err)
		return
	}
	vc.cookie.clear(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Your account has been deleted successfully"})
}
