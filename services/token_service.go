package services

import (
	"fmt"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionClaims is the decoded content of a session token.
type SessionClaims struct {
	AccountID uuid.UUID
	Kind      models.AccountKind
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and validates session tokens.
type TokenService interface {
	Issue(accountID uuid.UUID, kind models.AccountKind) (string, *SessionClaims, error)
	Parse(tokenStr string, kind models.AccountKind) (*SessionClaims, error)
	TTL() time.Duration
}

type jwtTokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates an HS256 token service.
func NewTokenService(secret string, ttl time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &jwtTokenService{secretKey: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *jwtTokenService) TTL() time.Duration { return s.ttl }

func (s *jwtTokenService) Issue(accountID uuid.UUID, kind models.AccountKind) (string, *SessionClaims, error) {
	now := s.now()
	sc := &SessionClaims{
		AccountID: accountID,
		Kind:      kind,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	claims := jwt.MapClaims{
		"id":  accountID.String(),
		"typ": string(kind),
		"jti": sc.TokenID,
		"iat": now.Unix(),
		"exp": sc.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", nil, err
	}
	return signed, sc, nil
}

func (s *jwtTokenService) Parse(tokenStr string, kind models.AccountKind) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, ok := claims["typ"].(string); !ok || typ != string(kind) {
		return nil, fmt.Errorf("invalid token type")
	}
	rawID, _ := claims["id"].(string)
	accountID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject")
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, fmt.Errorf("token has no id")
	}

	sc := &SessionClaims{AccountID: accountID, Kind: kind, TokenID: jti}
	if iat, ok := claims["iat"].(float64); ok {
		sc.IssuedAt = time.Unix(int64(iat), 0)
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("token has no expiry")
	}
	sc.ExpiresAt = time.Unix(int64(exp), 0)
	return sc, nil
}
