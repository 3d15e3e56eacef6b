package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		code int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Unauthenticated("x"), http.StatusUnauthorized},
		{InvalidCode("x"), http.StatusBadRequest},
		{Validation("x"), http.StatusBadRequest},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code, string(tt.err.Kind))
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", Conflict("taken"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindConflict))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindInternal))
}

func TestStoreErrorHelpers(t *testing.T) {
	assert.True(t, IsRecordNotFound(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})))
	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))
	assert.False(t, IsDuplicateKey(errors.New("duplicate delivery of verification email")))
	assert.False(t, IsDuplicateKey(errors.New("unique constraint check skipped")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestErrorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/conflict", func(c *gin.Context) { _ = c.Error(Conflict("Vendor with this name already exists")) })
	r.GET("/plain", func(c *gin.Context) { _ = c.Error(errors.New("dial tcp: refused")) })
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		_ = c.Error(NotFound("late"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"detail":"Vendor with this name already exists"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
