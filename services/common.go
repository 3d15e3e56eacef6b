package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/models"
	aws_pkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/EkeneDeProgram/909ineFoods/sender"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AccountOptions tunes the verification flow.
type AccountOptions struct {
	CodeTTL     time.Duration
	PhoneRegion string
}

// AccountDeps are the collaborators shared by the user and vendor services.
// Sessions, Images and Metrics may be nil.
type AccountDeps struct {
	Tokens   TokenService
	Sessions repository.SessionStore
	Notifier sender.CodeNotifier
	Images   aws_pkg.UploadPresigner
	Metrics  aws_pkg.CountRecorder
	Options  AccountOptions
}

func (d AccountDeps) codeTTL() time.Duration {
	if d.Options.CodeTTL <= 0 {
		return DefaultCodeTTL
	}
	return d.Options.CodeTTL
}

// Account columns written by the lifecycle operations. Each operation
// writes only what it changed.
var (
	codeColumns     = []string{"hashed_verification_code", "code_expires_at"}
	verifiedColumns = []string{"hashed_verification_code", "code_expires_at", "is_verified", "is_login"}
	emailColumns    = []string{"email", "is_verified", "hashed_verification_code", "code_expires_at"}
)

// Session is a freshly issued session token.
type Session struct {
	Token  string
	Claims *SessionClaims
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// storeErr maps a repository error to NotFound or Internal.
func storeErr(err error, notFoundMsg string) error {
	if apperrors.IsRecordNotFound(err) {
		return apperrors.NotFound(notFoundMsg)
	}
	return apperrors.Internal(err)
}

// writeErr maps a repository write error, turning unique violations into Conflict.
func writeErr(err error, conflictMsg string) error {
	if apperrors.IsDuplicateKey(err) {
		return apperrors.Conflict(conflictMsg)
	}
	return apperrors.Internal(err)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// revokeSession puts the token id on the revocation list until the token
// would have expired anyway.
func revokeSession(ctx context.Context, store repository.SessionStore, claims *SessionClaims, logger *zap.Logger) error {
	if claims == nil {
		return nil
	}
	if store == nil {
		logger.Warn("Session store not configured, token stays valid until expiry",
			zap.String("jti", claims.TokenID))
		return nil
	}
	if err := store.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		return apperrors.Internal(fmt.Errorf("revoke session: %w", err))
	}
	return nil
}

func recordCount(ctx context.Context, metrics aws_pkg.CountRecorder, name string, dims map[string]string, logger *zap.Logger) {
	if metrics == nil {
		return
	}
	if err := metrics.RecordCount(ctx, name, dims); err != nil {
		logger.Warn("Failed to record metric", zap.String("metric", name), zap.Error(err))
	}
}

func recordValue(ctx context.Context, metrics aws_pkg.CountRecorder, name string, value float64, dims map[string]string, logger *zap.Logger) {
	if metrics == nil {
		return
	}
	if err := metrics.RecordValue(ctx, name, value, dims); err != nil {
		logger.Warn("Failed to record metric", zap.String("metric", name), zap.Error(err))
	}
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// presignImage reserves a new object key under prefix/ownerID and returns
// the upload URL for it.
func presignImage(ctx context.Context, images aws_pkg.UploadPresigner, prefix string, ownerID uuid.UUID, contentType string) (*models.ImageUpload, error) {
	if images == nil {
		return nil, apperrors.New(apperrors.KindInternal, "Image uploads are not configured", nil)
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, apperrors.Validation("Unsupported image content type")
	}
	key := fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, uuid.NewString(), ext)
	url, headers, err := images.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.ImageUpload{UploadURL: url, Headers: headers, ImageKey: key}, nil
}
