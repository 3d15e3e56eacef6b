package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ---- in-memory user repository ----

type memUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*models.User
	updateErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.New()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *memUserRepo) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.PhoneNumber == phone })
}

func (r *memUserRepo) Update(_ context.Context, u *models.User, columns ...string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if len(columns) == 0 {
		return repository.ErrNoColumns
	}
	for _, c := range columns {
		if applyVerificationColumn(&stored.Verification, &u.Verification, c) {
			continue
		}
		switch c {
		case "email":
			stored.Email = u.Email
		case "phone_number":
			stored.PhoneNumber = u.PhoneNumber
		case "first_name":
			stored.FirstName = u.FirstName
		case "last_name":
			stored.LastName = u.LastName
		case "image_key":
			stored.ImageKey = u.ImageKey
		default:
			return fmt.Errorf("unknown user column %q", c)
		}
	}
	return nil
}

func applyVerificationColumn(dst, src *models.Verification, column string) bool {
	switch column {
	case "hashed_verification_code":
		dst.HashedVerificationCode = src.HashedVerificationCode
	case "code_expires_at":
		dst.CodeExpiresAt = src.CodeExpiresAt
	case "is_verified":
		dst.IsVerified = src.IsVerified
	case "is_login":
		dst.IsLogin = src.IsLogin
	default:
		return false
	}
	return true
}

func (r *memUserRepo) SaveAddress(_ context.Context, a *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[a.UserID]
	if !ok {
		return errors.New("foreign key violation")
	}
	cp := *a
	u.Address = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

// ---- in-memory vendor repository ----

type memVendorRepo struct {
	mu      sync.Mutex
	vendors map[uuid.UUID]*models.Vendor
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{vendors: map[uuid.UUID]*models.Vendor{}}
}

func (r *memVendorRepo) Create(_ context.Context, v *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = uuid.New()
	cp := *v
	r.vendors[v.ID] = &cp
	return nil
}

func (r *memVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memVendorRepo) find(match func(*models.Vendor) bool) (*models.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vendors {
		if match(v) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memVendorRepo) FindByEmail(_ context.Context, email string) (*models.Vendor, error) {
	return r.find(func(v *models.Vendor) bool { return v.Email == email })
}

func (r *memVendorRepo) FindByName(_ context.Context, name string) (*models.Vendor, error) {
	return r.find(func(v *models.Vendor) bool { return v.Name == name })
}

func (r *memVendorRepo) FindByContactInfo(_ context.Context, contact string) (*models.Vendor, error) {
	return r.find(func(v *models.Vendor) bool { return v.ContactInfo == contact })
}

func (r *memVendorRepo) Update(_ context.Context, v *models.Vendor, columns ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.vendors[v.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if len(columns) == 0 {
		return repository.ErrNoColumns
	}
	for _, c := range columns {
		if applyVerificationColumn(&stored.Verification, &v.Verification, c) {
			continue
		}
		switch c {
		case "email":
			stored.Email = v.Email
		case "name":
			stored.Name = v.Name
		case "description":
			stored.Description = v.Description
		case "contact_info":
			stored.ContactInfo = v.ContactInfo
		case "image_key":
			stored.ImageKey = v.ImageKey
		case "is_active":
			// only activate() sets it
		default:
			return fmt.Errorf("unknown vendor column %q", c)
		}
	}
	return nil
}

// activate mirrors the location transaction flipping is_active.
func (r *memVendorRepo) activate(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.IsActive = true
	return nil
}

func (r *memVendorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vendors[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.vendors, id)
	return nil
}

func (r *memVendorRepo) ListActive(_ context.Context, _, _ int) ([]models.Vendor, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Vendor
	for _, v := range r.vendors {
		if v.IsActive {
			out = append(out, *v)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memVendorRepo) ListActiveByCategory(_ context.Context, _ uuid.UUID) ([]models.Vendor, error) {
	vs, _, err := r.ListActive(context.Background(), 1, 100)
	return vs, err
}

// ---- notifier / session store / presigner / metrics ----

type capturingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func newCapturingNotifier() *capturingNotifier {
	return &capturingNotifier{codes: map[string]string{}}
}

func (n *capturingNotifier) SendVerificationCode(_ context.Context, email, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.codes[email] = code
	return nil
}

func (n *capturingNotifier) last(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[email]
}

type memSessionStore struct {
	revoked map[string]time.Duration
	err     error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{revoked: map[string]time.Duration{}}
}

func (s *memSessionStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[tokenID] = ttl
	return nil
}

func (s *memSessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, nil
}

var _ repository.SessionStore = (*memSessionStore)(nil)

type fakePresigner struct {
	key string
	err error
}

func (p *fakePresigner) PresignPut(_ context.Context, key, _ string) (string, map[string]string, error) {
	p.key = key
	if p.err != nil {
		return "", nil, p.err
	}
	return "https://bucket.s3.amazonaws.com/" + key + "?X-Amz-Signature=abc", map[string]string{"Content-Type": "image/png"}, nil
}

type countingMetrics struct {
	counts map[string]int
	values map[string]float64
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{counts: map[string]int{}, values: map[string]float64{}}
}

func (m *countingMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.counts[name]++
	return nil
}

func (m *countingMetrics) RecordValue(_ context.Context, name string, v float64, _ map[string]string) error {
	m.values[name] += v
	return nil
}

// ---- helpers ----

func newTestDeps(notifier *capturingNotifier, store *memSessionStore) services.AccountDeps {
	tokens, err := services.NewTokenService("test-secret", time.Hour)
	if err != nil {
		panic(err)
	}
	return services.AccountDeps{
		Tokens:   tokens,
		Sessions: store,
		Notifier: notifier,
		Images:   &fakePresigner{},
		Metrics:  newCountingMetrics(),
		Options:  services.AccountOptions{CodeTTL: 15 * time.Minute, PhoneRegion: "NG"},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
