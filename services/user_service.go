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

// UserService is the end-user account and session lifecycle.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterUserRequest) (*models.User, error)
	RequestLogin(ctx context.Context, email string) error
	ResendCode(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) (*models.User, *Session, error)
	Profile(ctx context.Context, id uuid.UUID) (*models.User, error)
	Logout(ctx context.Context, id uuid.UUID, claims *SessionClaims) error
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*models.User, error)
	UpdatePhone(ctx context.Context, id uuid.UUID, phone string) (*models.User, error)
	UpdateName(ctx context.Context, id uuid.UUID, req *models.UpdateNameRequest) (*models.User, error)
	UpdateAddress(ctx context.Context, id uuid.UUID, req *models.AddressRequest) (*models.User, error)
	ImageUploadURL(ctx context.Context, id uuid.UUID, contentType string) (*models.ImageUpload, error)
	Delete(ctx context.Context, id uuid.UUID, claims *SessionClaims) error
}

const (
	msgUserNotFound    = "User not found"
	msgInvalidCode     = "Invalid verification code"
	msgUserEmailTaken  = "User with this email already exists"
	msgUserPhoneTaken  = "User with this phone number already exists"
	msgNothingToUpdate = "Nothing to update"
)

type userServiceImpl struct {
	repo   repository.UserRepository
	deps   AccountDeps
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, deps AccountDeps, logger *zap.Logger) UserService {
	return &userServiceImpl{repo: repo, deps: deps, logger: logger, now: time.Now}
}

func (s *userServiceImpl) Register(ctx context.Context, req *models.RegisterUserRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	phone, err := NormalizePhone(req.PhoneNumber, s.deps.Options.PhoneRegion)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.ensurePhoneFree(ctx, phone, uuid.Nil); err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		PhoneNumber: phone,
	}
	code, err := issueCode(&user.Verification, s.deps.codeTTL(), s.now())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, writeErr(err, msgUserEmailTaken)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	recordCount(ctx, s.deps.Metrics, aws_pkg.MetricAccountsRegistered, map[string]string{"kind": string(models.AccountUser)}, s.logger)

	// A failed delivery is recovered with resend-code.
	if err := s.deps.Notifier.SendVerificationCode(ctx, user.Email, code); err != nil {
		s.logger.Error("Failed to send verification code", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return user, nil
}

func (s *userServiceImpl) RequestLogin(ctx context.Context, email string) error {
	return s.sendFreshCode(ctx, email)
}

func (s *userServiceImpl) ResendCode(ctx context.Context, email string) error {
	return s.sendFreshCode(ctx, email)
}

func (s *userServiceImpl) sendFreshCode(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return storeErr(err, msgUserNotFound)
	}

	code, err := issueCode(&user.Verification, s.deps.codeTTL(), s.now())
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.repo.Update(ctx, user, codeColumns...); err != nil {
		return apperrors.Internal(err)
	}
	if err := s.deps.Notifier.SendVerificationCode(ctx, user.Email, code); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Verify checks code against the account identified by email only, and
// on success consumes the code and issues a session.
func (s *userServiceImpl) Verify(ctx context.Context, email, code string) (*models.User, *Session, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperrors.IsRecordNotFound(err) {
			return nil, nil, apperrors.InvalidCode(msgInvalidCode)
		}
		return nil, nil, apperrors.Internal(err)
	}
	if !checkCode(&user.Verification, code, s.now()) {
		return nil, nil, apperrors.InvalidCode(msgInvalidCode)
	}

	consumeCode(&user.Verification)
	token, claims, err := s.deps.Tokens.Issue(user.ID, models.AccountUser)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	if err := s.repo.Update(ctx, user, verifiedColumns...); err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	recordCount(ctx, s.deps.Metrics, aws_pkg.MetricSessionsIssued, map[string]string{"kind": string(models.AccountUser)}, s.logger)
	return user, &Session{Token: token, Claims: claims}, nil
}

func (s *userServiceImpl) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound)
	}
	return user, nil
}

func (s *userServiceImpl) Logout(ctx context.Context, id uuid.UUID, claims *SessionClaims) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, msgUserNotFound)
	}
	if err := revokeSession(ctx, s.deps.Sessions, claims, s.logger); err != nil {
		return err
	}
	user.IsLogin = false
	if err := s.repo.Update(ctx, user, "is_login"); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// UpdateEmail moves the account to the new address and sends a code there.
// The account is unverified until that code is used.
func (s *userServiceImpl) UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound)
	}
	email = normalizeEmail(email)
	if email == user.Email {
		return user, nil
	}
	if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
		return nil, err
	}

	user.Email = email
	user.IsVerified = false
	code, err := issueCode(&user.Verification, s.deps.codeTTL(), s.now())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.repo.Update(ctx, user, emailColumns...); err != nil {
		return nil, writeErr(err, msgUserEmailTaken)
	}
	if err := s.deps.Notifier.SendVerificationCode(ctx, user.Email, code); err != nil {
		s.logger.Error("Failed to send verification code", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return user, nil
}

func (s *userServiceImpl) UpdatePhone(ctx context.Context, id uuid.UUID, phone string) (*models.User, error) {
	normalized, err := NormalizePhone(phone, s.deps.Options.PhoneRegion)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound)
	}
	if normalized == user.PhoneNumber {
		return user, nil
	}
	if err := s.ensurePhoneFree(ctx, normalized, user.ID); err != nil {
		return nil, err
	}

	user.PhoneNumber = normalized
	if err := s.repo.Update(ctx, user, "phone_number"); err != nil {
		return nil, writeErr(err, msgUserPhoneTaken)
	}
	return user, nil
}

func (s *userServiceImpl) UpdateName(ctx context.Context, id uuid.UUID, req *models.UpdateNameRequest) (*models.User, error) {
	first, last := strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)
	if first == "" && last == "" {
		return nil, apperrors.Validation(msgNothingToUpdate)
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound)
	}
	if first != "" {
		user.FirstName = first
	}
	if last != "" {
		user.LastName = last
	}
	if err := s.repo.Update(ctx, user, "first_name", "last_name"); err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// UpdateAddress creates the address on first use and afterwards changes
// only the fields that were sent.
func (s *userServiceImpl) UpdateAddress(ctx context.Context, id uuid.UUID, req *models.AddressRequest) (*models.User, error) {
	street, city, state := strings.TrimSpace(req.Street), strings.TrimSpace(req.City), strings.TrimSpace(req.State)
	if street == "" && city == "" && state == "" {
		return nil, apperrors.Validation(msgNothingToUpdate)
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound)
	}

	addr := user.Address
	if addr == nil {
		addr = &models.Address{UserID: user.ID}
	}
	if street != "" {
		addr.Street = street
	}
	if city != "" {
		addr.City = city
	}
	if state != "" {
		addr.State = state
	}
	if err := s.repo.SaveAddress(ctx, addr); err != nil {
		return nil, apperrors.Internal(err)
	}
	user.Address = addr
	return user, nil
}

func (s *userServiceImpl) ImageUploadURL(ctx context.Context, id uuid.UUID, contentType string) (*models.ImageUpload, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound)
	}
	upload, err := presignImage(ctx, s.deps.Images, "users", user.ID, contentType)
	if err != nil {
		return nil, err
	}
	user.ImageKey = upload.ImageKey
	if err := s.repo.Update(ctx, user, "image_key"); err != nil {
		return nil, apperrors.Internal(err)
	}
	return upload, nil
}

// Delete removes the account; cart entries, orders and the address cascade.
func (s *userServiceImpl) Delete(ctx context.Context, id uuid.UUID, claims *SessionClaims) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr(err, msgUserNotFound)
	}
	if err := revokeSession(ctx, s.deps.Sessions, claims, s.logger); err != nil {
		s.logger.Error("Failed to revoke session of deleted user", zap.String("user_id", id.String()), zap.Error(err))
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *userServiceImpl) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing.ID != self {
		return apperrors.Conflict(msgUserEmailTaken)
	}
	if err != nil && !apperrors.IsRecordNotFound(err) {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *userServiceImpl) ensurePhoneFree(ctx context.Context, phone string, self uuid.UUID) error {
	existing, err := s.repo.FindByPhone(ctx, phone)
	if err == nil && existing.ID != self {
		return apperrors.Conflict(msgUserPhoneTaken)
	}
	if err != nil && !apperrors.IsRecordNotFound(err) {
		return apperrors.Internal(err)
	}
	return nil
}
