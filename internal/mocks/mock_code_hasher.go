package mocks

import (
	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockCodeHasher implements domain.CodeHasher interface for testing
type MockCodeHasher struct {
	HashFunc   func(code string) (string, error)
	VerifyFunc func(hashedCode, code string) bool
}

// NewMockCodeHasher creates a new MockCodeHasher with default behaviors
func NewMockCodeHasher() *MockCodeHasher {
	return &MockCodeHasher{}
}

// Hash hashes a code
func (m *MockCodeHasher) Hash(code string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(code)
	}
	// Default behavior: distinguishable fake hash
	return "hashed_" + code, nil
}

// Verify compares a code against its hash
func (m *MockCodeHasher) Verify(hashedCode, code string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedCode, code)
	}
	// Default behavior: match the fake hash
	return hashedCode == "hashed_"+code
}

var _ domain.CodeHasher = (*MockCodeHasher)(nil)
