package mocks

import (
	"context"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockTransactionRepository implements domain.TransactionRepository interface for testing
type MockTransactionRepository struct {
	CreateFunc        func(ctx context.Context, tx *domain.Transaction) error
	FindByProfileFunc func(ctx context.Context, profileID string) ([]domain.Transaction, error)
	CountFunc         func(ctx context.Context) (int64, error)
	SeedFunc          func(ctx context.Context) error
}

// NewMockTransactionRepository creates a new MockTransactionRepository with default behaviors
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Create stores a transaction row
func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	// Default behavior: success
	return nil
}

// FindByProfile lists transactions for a profile
func (m *MockTransactionRepository) FindByProfile(ctx context.Context, profileID string) ([]domain.Transaction, error) {
	if m.FindByProfileFunc != nil {
		return m.FindByProfileFunc(ctx, profileID)
	}
	// Default behavior: empty history
	return []domain.Transaction{}, nil
}

// Count reports the number of stored transactions
func (m *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	// Default behavior: empty table
	return 0, nil
}

// Seed loads the reference history
func (m *MockTransactionRepository) Seed(ctx context.Context) error {
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx)
	}
	// Default behavior: success
	return nil
}

var _ domain.TransactionRepository = (*MockTransactionRepository)(nil)
