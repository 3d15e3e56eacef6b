package controllers

import (
	"net/http"

	"github.com/EkeneDeProgram/909ineFoods/middleware"
	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
)

// UserController handles the /users endpoints.
type UserController struct {
	users  services.UserService
	cookie CookieConfig
}

// NewUserController creates a new UserController.
func NewUserController(svc services.UserService, cookie CookieConfig) *UserController {
	return &UserController{users: svc, cookie: cookie}
}

// Register handles POST /users/register
func (uc *UserController) Register(ctx *gin.Context) {
	var req models.RegisterUserRequest
	if !bind(ctx, &req) {
		return
	}
	user, err := uc.users.Register(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login handles POST /users/login
func (uc *UserController) Login(ctx *gin.Context) {
	var req models.EmailRequest
	if !bind(ctx, &req) {
		return
	}
	if err := uc.users.RequestLogin(ctx.Request.Context(), req.Email); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Verification code sent to your email"})
}

// ResendCode handles POST /users/resend-code
func (uc *UserController) ResendCode(ctx *gin.Context) {
	var req models.EmailRequest
	if !bind(ctx, &req) {
		return
	}
	if err := uc.users.ResendCode(ctx.Request.Context(), req.Email); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Verification code resent"})
}

// Verify handles POST /users/verify and starts the session.
func (uc *UserController) Verify(ctx *gin.Context) {
	var req models.VerifyCodeRequest
	if !bind(ctx, &req) {
		return
	}
	_, session, err := uc.users.Verify(ctx.Request.Context(), req.Email, req.VerificationCode)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	uc.cookie.set(ctx, session.Token)
	ctx.JSON(http.StatusOK, gin.H{"jwt": session.Token})
}

// Profile handles GET /users/me
func (uc *UserController) Profile(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	user, err := uc.users.Profile(ctx.Request.Context(), id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user, "address": user.Address})
}

// Logout handles POST /users/logout
func (uc *UserController) Logout(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	if err := uc.users.Logout(ctx.Request.Context(), id, middleware.GetClaims(ctx)); err != nil {
		_ = ctx.Error(err)
		return
	}
	uc.cookie.clear(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// UpdateEmail handles PUT /users/me/email
func (uc *UserController) UpdateEmail(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.EmailRequest
	if !bind(ctx, &req) {
		return
	}
	user, err := uc.users.UpdateEmail(ctx.Request.Context(), id, req.Email)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Email updated successfully", "user": user})
}

// UpdatePhone handles PUT /users/me/phone
func (uc *UserController) UpdatePhone(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.UpdatePhoneRequest
	if !bind(ctx, &req) {
		return
	}
	user, err := uc.users.UpdatePhone(ctx.Request.Context(), id, req.PhoneNumber)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Phone number updated successfully", "user": user})
}

// UpdateName handles PUT /users/me/name
func (uc *UserController) UpdateName(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.UpdateNameRequest
	if !bind(ctx, &req) {
		return
	}
	user, err := uc.users.UpdateName(ctx.Request.Context(), id, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Name updated successfully", "user": user})
}

// UpdateAddress handles PUT /users/me/address
func (uc *UserController) UpdateAddress(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.AddressRequest
	if !bind(ctx, &req) {
		return
	}
	user, err := uc.users.UpdateAddress(ctx.Request.Context(), id, &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"user":    user,
		"address": user.Address,
	})
}

// UploadImage handles POST /users/me/image
func (uc *UserController) UploadImage(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	var req models.ImageUploadRequest
	if !bind(ctx, &req) {
		return
	}
	upload, err := uc.users.ImageUploadURL(ctx.Request.Context(), id, req.ContentType)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, upload)
}

// Delete handles DELETE /users/me
func (uc *UserController) Delete(ctx *gin.Context) {
	id, ok := accountID(ctx)
	if !ok {
		return
	}
	if err := uc.users.Delete(ctx.Request.Context(), id, middleware.GetClaims(ctx)); err != nil {
		_ = ctx.Error(err)
		return
	}
	uc.cookie.clear(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Your account has been deleted successfully"})
}
