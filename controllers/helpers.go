package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
	Domain string
	MaxAge time.Duration
}

func (cc CookieConfig) set(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, token, int(cc.MaxAge.Seconds()), "/", cc.Domain, cc.Secure, true)
}

func (cc CookieConfig) clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", cc.Domain, cc.Secure, true)
}

// bind decodes the JSON body into req and records a ValidationError on failure.
func bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		_ = ctx.Error(bindError(err))
		return false
	}
	return true
}

func uuidParam(ctx *gin.Context, name, notFoundMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		_ = ctx.Error(apperrors.NotFound(notFoundMsg))
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery parses an optional uuid query parameter.
func optionalUUIDQuery(ctx *gin.Context, name string) (*uuid.UUID, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = ctx.Error(apperrors.Validation(name + " must be a valid UUID"))
		return nil, false
	}
	return &id, true
}

// accountID returns the authenticated account id. Routes using it sit
// behind SessionAuth.
func accountID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.GetAccountID(ctx)
	if err != nil {
		_ = ctx.Error(apperrors.Unauthenticated("Unauthenticated!"))
		return uuid.Nil, false
	}
	return id, true
}

// parsePaginationParams extracts page/limit; the service clamps them.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	return page, limit
}
