package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"golang.org/x/crypto/bcrypt"
)

const codeDigits = 6

// DefaultCodeTTL is how long a verification code stays valid.
const DefaultCodeTTL = 15 * time.Minute

// GenerateRandomCode returns a uniformly random 6-digit numeric code.
func GenerateRandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// issueCode generates a fresh code, stores its hash and expiry on v and
// returns the plain code for delivery.
func issueCode(v *models.Verification, ttl time.Duration, now time.Time) (string, error) {
	code, err := GenerateRandomCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}
	expires := now.Add(ttl)
	v.HashedVerificationCode = string(hashed)
	v.CodeExpiresAt = &expires
	return code, nil
}

// checkCode reports whether code matches the unexpired stored hash.
func checkCode(v *models.Verification, code string, now time.Time) bool {
	if v.HashedVerificationCode == "" {
		return false
	}
	if v.CodeExpiresAt != nil && now.After(*v.CodeExpiresAt) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(v.HashedVerificationCode), []byte(code)) == nil
}

// consumeCode marks the account verified and logged in and clears the code.
func consumeCode(v *models.Verification) {
	v.HashedVerificationCode = ""
	v.CodeExpiresAt = nil
	v.IsVerified = true
	v.IsLogin = true
}
