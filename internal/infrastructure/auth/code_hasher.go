package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// BcryptCodeHasher implements domain.CodeHasher. OTP codes never sit in
// redis in plaintext.
type BcryptCodeHasher struct {
	cost int
}

// NewCodeHasher creates a bcrypt-backed code hasher. Codes are short-lived,
// so MinCost keeps Generate cheap.
func NewCodeHasher() domain.CodeHasher {
	return &BcryptCodeHasher{cost: bcrypt.MinCost}
}

// Hash implements domain.CodeHasher
func (h *BcryptCodeHasher) Hash(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.CodeHasher
func (h *BcryptCodeHasher) Verify(hashedCode, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(code)) == nil
}
