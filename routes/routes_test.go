package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/controllers"
	"github.com/EkeneDeProgram/909ineFoods/middleware"
	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/routes"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Controllers are built over nil services; these tests only exercise
// requests that never reach a handler.
func setupRouter(t *testing.T, limiter gin.HandlerFunc) (*gin.Engine, services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := services.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Controllers{
		Users:   controllers.NewUserController(nil, controllers.CookieConfig{}),
		Vendors: controllers.NewVendorController(nil, controllers.CookieConfig{}),
		Catalog: controllers.NewCatalogController(nil),
		Browse:  controllers.NewBrowseController(nil),
		Cart:    controllers.NewCartController(nil),
		Orders:  controllers.NewOrderController(nil),
	}, routes.Auth{Tokens: tokens, AuthLimiter: limiter})
	return r, tokens
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"909inefoods"}`, w.Body.String())
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r, _ := setupRouter(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/me"},
		{http.MethodPost, "/users/logout"},
		{http.MethodGet, "/vendors/me"},
		{http.MethodPost, "/vendors/me/items"},
		{http.MethodGet, "/cart"},
		{http.MethodPost, "/cart/checkout"},
		{http.MethodGet, "/orders"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"detail":"Unauthenticated!"}`, w.Body.String())
		})
	}
}

func TestVendorSessionCannotUseUserRoutes(t *testing.T) {
	r, tokens := setupRouter(t, nil)
	token, _, err := tokens.Issue(uuid.New(), models.AccountVendor)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid token"}`, w.Body.String())
}

func TestAuthLimiterGuardsCodeEndpoints(t *testing.T) {
	calls := 0
	limiter := func(c *gin.Context) {
		calls++
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "slow down"})
	}
	r, _ := setupRouter(t, limiter)

	for _, path := range []string{"/users/login", "/users/verify", "/vendors/register", "/vendors/resend-code"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code, path)
	}
	assert.Equal(t, 4, calls)
}
