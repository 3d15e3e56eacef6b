package services

import (
	"context"
	"strings"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/models"
	aws_pkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VendorService is the vendor account and session lifecycle.
type VendorService interface {
	Register(ctx context.Context, req *models.RegisterVendorRequest) (*models.Vendor, error)
	RequestLogin(ctx context.Context, email string) error
	ResendCode(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) (*models.Vendor, *Session, error)
	Profile(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	Logout(ctx context.Context, id uuid.UUID, claims *SessionClaims) error
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*models.Vendor, error)
	UpdateContactInfo(ctx context.Context, id uuid.UUID, contact string) (*models.Vendor, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, req *models.UpdateVendorRequest) (*models.Vendor, error)
	ImageUploadURL(ctx context.Context, id uuid.UUID, contentType string) (*models.ImageUpload, error)
	Delete(ctx context.Context, id uuid.UUID, claims *SessionClaims) error
}

const (
	msgVendorNotFound     = "Vendor not found"
	msgVendorEmailTaken   = "Vendor with this email already exists"
	msgVendorNameTaken    = "Vendor with this name already exists"
	msgVendorContactTaken = "This contact_info already exists for another vendor."
)

type vendorServiceImpl struct {
	repo   repository.VendorRepository
	deps   AccountDeps
	logger *zap.Logger
	now    func() time.Time
}

// NewVendorService creates a new VendorService.
func NewVendorService(repo repository.VendorRepository, deps AccountDeps, logger *zap.Logger) VendorService {
	return &vendorServiceImpl{repo: repo, deps: deps, logger: logger, now: time.Now}
}

func (s *vendorServiceImpl) Register(ctx context.Context, req *models.RegisterVendorRequest) (*models.Vendor, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	contact, err := NormalizePhone(req.ContactInfo, s.deps.Options.PhoneRegion)
	if err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, s.repo.FindByEmail, email, uuid.Nil, msgVendorEmailTaken); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.repo.FindByName, name, uuid.Nil, msgVendorNameTaken); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.repo.FindByContactInfo, contact, uuid.Nil, msgVendorContactTaken); err != nil {
		return nil, err
	}

	vendor := &models.Vendor{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		ContactInfo: contact,
		Email:       email,
	}
	code, err := issueCode(&vendor.Verification, s.deps.codeTTL(), s.now())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, writeErr(err, msgVendorEmailTaken)
	}

	s.logger.Info("Vendor registered", zap.String("vendor_id", vendor.ID.String()))
	recordCount(ctx, s.deps.Metrics, aws_pkg.MetricAccountsRegistered, map[string]string{"kind": string(models.AccountVendor)}, s.logger)

	if err := s.deps.Notifier.SendVerificationCode(ctx, vendor.Email, code); err != nil {
		s.logger.Error("Failed to send verification code", zap.String("vendor_id", vendor.ID.String()), zap.Error(err))
	}
	return vendor, nil
}

func (s *vendorServiceImpl) RequestLogin(ctx context.Context, email string) error {
	return s.sendFreshCode(ctx, email)
}

func (s *vendorServiceImpl) ResendCode(ctx context.Context, email string) error {
	return s.sendFreshCode(ctx, email)
}

func (s *vendorServiceImpl) sendFreshCode(ctx context.Context, email string) error {
	vendor, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return storeErr(err, msgVendorNotFound)
	}
	code, err := issueCode(&vendor.Verification, s.deps.codeTTL(), s.now())
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.repo.Update(ctx, vendor, codeColumns...); err != nil {
		return apperrors.Internal(err)
	}
	if err := s.deps.Notifier.SendVerificationCode(ctx, vendor.Email, code); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *vendorServiceImpl) Verify(ctx context.Context, email, code string) (*models.Vendor, *Session, error) {
	vendor, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperrors.IsRecordNotFound(err) {
			return nil, nil, apperrors.InvalidCode(msgInvalidCode)
		}
		return nil, nil, apperrors.Internal(err)
	}
	if !checkCode(&vendor.Verification, code, s.now()) {
		return nil, nil, apperrors.InvalidCode(msgInvalidCode)
	}

	consumeCode(&vendor.Verification)
	token, claims, err := s.deps.Tokens.Issue(vendor.ID, models.AccountVendor)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	if err := s.repo.Update(ctx, vendor, verifiedColumns...); err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	recordCount(ctx, s.deps.Metrics, aws_pkg.MetricSessionsIssued, map[string]string{"kind": string(models.AccountVendor)}, s.logger)
	return vendor, &Session{Token: token, Claims: claims}, nil
}

// Profile returns the vendor with its locations.
func (s *vendorServiceImpl) Profile(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgVendorNotFound)
	}
	return vendor, nil
}

func (s *vendorServiceImpl) Logout(ctx context.Context, id uuid.UUID, claims *SessionClaims) error {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, msgVendorNotFound)
	}
	if err := revokeSession(ctx, s.deps.Sessions, claims, s.logger); err != nil {
		return err
	}
	vendor.IsLogin = false
	if err := s.repo.Update(ctx, vendor, "is_login"); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *vendorServiceImpl) UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgVendorNotFound)
	}
	email = normalizeEmail(email)
	if email == vendor.Email {
		return vendor, nil
	}
	if err := s.ensureFree(ctx, s.repo.FindByEmail, email, vendor.ID, msgVendorEmailTaken); err != nil {
		return nil, err
	}

	vendor.Email = email
	vendor.IsVerified = false
	code, err := issueCode(&vendor.Verification, s.deps.codeTTL(), s.now())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.repo.Update(ctx, vendor, emailColumns...); err != nil {
		return nil, writeErr(err, msgVendorEmailTaken)
	}
	if err := s.deps.Notifier.SendVerificationCode(ctx, vendor.Email, code); err != nil {
		s.logger.Error("Failed to send verification code", zap.String("vendor_id", vendor.ID.String()), zap.Error(err))
	}
	return vendor, nil
}

func (s *vendorServiceImpl) UpdateContactInfo(ctx context.Context, id uuid.UUID, contact string) (*models.Vendor, error) {
	normalized, err := NormalizePhone(contact, s.deps.Options.PhoneRegion)
	if err != nil {
		return nil, err
	}
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgVendorNotFound)
	}
	if normalized == vendor.ContactInfo {
		return vendor, nil
	}
	if err := s.ensureFree(ctx, s.repo.FindByContactInfo, normalized, vendor.ID, msgVendorContactTaken); err != nil {
		return nil, err
	}

	vendor.ContactInfo = normalized
	if err := s.repo.Update(ctx, vendor, "contact_info"); err != nil {
		return nil, writeErr(err, msgVendorContactTaken)
	}
	return vendor, nil
}

// UpdateDetails changes the name and/or description.
func (s *vendorServiceImpl) UpdateDetails(ctx context.Context, id uuid.UUID, req *models.UpdateVendorRequest) (*models.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" && req.Description == nil {
		return nil, apperrors.Validation(msgNothingToUpdate)
	}
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgVendorNotFound)
	}
	if name != "" && name != vendor.Name {
		if err := s.ensureFree(ctx, s.repo.FindByName, name, vendor.ID, msgVendorNameTaken); err != nil {
			return nil, err
		}
		vendor.Name = name
	}
	if req.Description != nil {
		vendor.Description = strings.TrimSpace(*req.Description)
	}
	if err := s.repo.Update(ctx, vendor, "name", "description"); err != nil {
		return nil, writeErr(err, msgVendorNameTaken)
	}
	return vendor, nil
}

func (s *vendorServiceImpl) ImageUploadURL(ctx context.Context, id uuid.UUID, contentType string) (*models.ImageUpload, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgVendorNotFound)
	}
	upload, err := presignImage(ctx, s.deps.Images, "vendors", vendor.ID, contentType)
	if err != nil {
		return nil, err
	}
	vendor.ImageKey = upload.ImageKey
	if err := s.repo.Update(ctx, vendor, "image_key"); err != nil {
		return nil, apperrors.Internal(err)
	}
	return upload, nil
}

// Delete removes the vendor; locations and menu items cascade.
func (s *vendorServiceImpl) Delete(ctx context.Context, id uuid.UUID, claims *SessionClaims) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr(err, msgVendorNotFound)
	}
	if err := revokeSession(ctx, s.deps.Sessions, claims, s.logger); err != nil {
		s.logger.Error("Failed to revoke session of deleted vendor", zap.String("vendor_id", id.String()), zap.Error(err))
	}
	s.logger.Info("Vendor deleted", zap.String("vendor_id", id.String()))
	return nil
}

type vendorLookup func(ctx context.Context, value string) (*models.Vendor, error)

func (s *vendorServiceImpl) ensureFree(ctx context.Context, find vendorLookup, value string, self uuid.UUID, conflictMsg string) error {
	existing, err := find(ctx, value)
	if err == nil && existing.ID != self {
		return apperrors.Conflict(conflictMsg)
	}
	if err != nil && !apperrors.IsRecordNotFound(err) {
		return apperrors.Internal(err)
	}
	return nil
}
