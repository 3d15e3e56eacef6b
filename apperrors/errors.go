package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/EkeneDeProgram/909ineFoods/logger"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Kind classifies an application error.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindUnauthenticated Kind = "unauthenticated"
	KindInvalidCode     Kind = "invalid_code"
	KindValidation      Kind = "validation_error"
	KindInternal        Kind = "internal"
)

var kindStatus = map[Kind]int{
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindUnauthenticated: http.StatusUnauthorized,
	KindInvalidCode:     http.StatusBadRequest,
	KindValidation:      http.StatusBadRequest,
	KindInternal:        http.StatusInternalServerError,
}

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"-"`
	Message string `json:"detail"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(kind Kind, message string, err error) *Error {
	code, ok := kindStatus[kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *Error        { return New(KindNotFound, message, nil) }
func Conflict(message string) *Error        { return New(KindConflict, message, nil) }
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message, nil) }
func InvalidCode(message string) *Error     { return New(KindInvalidCode, message, nil) }
func Validation(message string) *Error      { return New(KindValidation, message, nil) }

// Internal wraps a store or infrastructure failure. The cause is logged, never rendered.
func Internal(err error) *Error {
	return New(KindInternal, "Internal server error", err)
}

// KindOf reports the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsRecordNotFound reports whether err is GORM's missing-row error.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

const sqlStateUniqueViolation = "23505"

// IsDuplicateKey reports whether err is a unique constraint violation,
// either translated by GORM or a raw Postgres error.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlStateUniqueViolation
}

// ErrorMiddleware renders the last error attached to the gin context.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *Error
		if !errors.As(err, &appErr) {
			appErr = Internal(err)
		}

		if appErr.Code >= http.StatusInternalServerError && logger.Log != nil {
			logger.Error(c, "request failed", appErr.Err,
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
		}

		c.AbortWithStatusJSON(appErr.Code, gin.H{"detail": appErr.Message})
	}
}
