package mocks

import (
	"context"
	"time"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockPaymentService implements domain.PaymentService interface for testing
type MockPaymentService struct {
	PlansFunc        func() []domain.Plan
	TransactionsFunc func(ctx context.Context, profileID string) ([]domain.Transaction, error)
	ExportCSVFunc    func(ctx context.Context, profileID string) ([]byte, error)
	SubscriptionFunc func(ctx context.Context, profileID string) (*domain.Subscription, error)
	PurchaseFunc     func(ctx context.Context, profileID, planID string, cycle domain.BillingCycle) (*domain.Subscription, error)
	CancelFunc       func(ctx context.Context, profileID string) (*domain.Subscription, error)
}

// NewMockPaymentService creates a new MockPaymentService with default behaviors
func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{}
}

func defaultMockSubscription() *domain.Subscription {
	now := time.Now()
	return &domain.Subscription{
		PlanID:       "gold",
		PlanName:     "طلایی",
		Status:       domain.SubscriptionActive,
		StartDate:    now,
		EndDate:      now.AddDate(1, 0, 0),
		BillingCycle: domain.BillingYearly,
		Amount:       990000,
	}
}

// Plans lists the premium tiers
func (m *MockPaymentService) Plans() []domain.Plan {
	if m.PlansFunc != nil {
		return m.PlansFunc()
	}
	// Default behavior: no plans
	return []domain.Plan{}
}

// Transactions lists the payment history
func (m *MockPaymentService) Transactions(ctx context.Context, profileID string) ([]domain.Transaction, error) {
	if m.TransactionsFunc != nil {
		return m.TransactionsFunc(ctx, profileID)
	}
	// Default behavior: empty history
	return []domain.Transaction{}, nil
}

// ExportCSV renders the history as CSV
func (m *MockPaymentService) ExportCSV(ctx context.Context, profileID string) ([]byte, error) {
	if m.ExportCSVFunc != nil {
		return m.ExportCSVFunc(ctx, profileID)
	}
	// Default behavior: header only
	return []byte("id,date,amount,currency,plan,payment_method,status,description\n"), nil
}

// Subscription reads the current subscription
func (m *MockPaymentService) Subscription(ctx context.Context, profileID string) (*domain.Subscription, error) {
	if m.SubscriptionFunc != nil {
		return m.SubscriptionFunc(ctx, profileID)
	}
	// Default behavior: return the mock active subscription
	return defaultMockSubscription(), nil
}

// Purchase buys a plan
func (m *MockPaymentService) Purchase(ctx context.Context, profileID, planID string, cycle domain.BillingCycle) (*domain.Subscription, error) {
	if m.PurchaseFunc != nil {
		return m.PurchaseFunc(ctx, profileID, planID, cycle)
	}
	// Default behavior: return the mock active subscription
	return defaultMockSubscription(), nil
}

// Cancel cancels the subscription
func (m *MockPaymentService) Cancel(ctx context.Context, profileID string) (*domain.Subscription, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, profileID)
	}
	// Default behavior: return the cancelled mock subscription
	sub := defaultMockSubscription()
	sub.Status = domain.SubscriptionCancelled
	return sub, nil
}

var _ domain.PaymentService = (*MockPaymentService)(nil)
