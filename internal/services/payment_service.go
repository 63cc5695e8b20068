package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// PaymentConfig controls the simulated purchase paths.
type PaymentConfig struct {
	// PurchaseDelay is the fixed simulated processing time before a
	// purchase or cancellation resolves.
	PurchaseDelay time.Duration
}

// PaymentServiceImpl implements domain.PaymentService. Plans are fixed
// catalog data; transactions live in the database; subscriptions are mock
// state kept per profile. Purchase and cancel are simulated calls guarded
// against duplicate submission per profile.
type PaymentServiceImpl struct {
	txRepo domain.TransactionRepository
	config PaymentConfig

	mu            sync.Mutex
	subscriptions map[string]*domain.Subscription
	inFlight      map[string]struct{}
}

// NewPaymentService creates a new payment service.
func NewPaymentService(txRepo domain.TransactionRepository, config PaymentConfig) domain.PaymentService {
	return &PaymentServiceImpl{
		txRepo:        txRepo,
		config:        config,
		subscriptions: make(map[string]*domain.Subscription),
		inFlight:      make(map[string]struct{}),
	}
}

// planCatalog is the fixed premium tier catalog (fa-IR).
var planCatalog = []domain.Plan{
	{
		ID:          "basic",
		Name:        "پلن پایه",
		Price:       domain.PlanPrice{Monthly: 19000, Yearly: 190000},
		Description: "برای شروع مطالعه",
		MaxBooks:    100,
		SupportType: "ایمیل",
		Features: []string{
			"دسترسی به ۱۰۰ کتاب",
			"پشتیبانی ایمیل",
			"گزارش پیشرفت پایه",
			"دسترسی موبایل",
			"یادداشت‌برداری ساده",
		},
	},
	{
		ID:          "silver",
		Name:        "پلن نقره‌ای",
		Price:       domain.PlanPrice{Monthly: 49000, Yearly: 490000},
		Description: "برای مطالعه منظم",
		Popular:     true,
		MaxBooks:    500,
		SupportType: "چت زنده",
		Features: []string{
			"دسترسی به ۵۰۰ کتاب",
			"پشتیبانی چت زنده",
			"گزارش پیشرفت کامل",
			"دسترسی آفلاین",
			"گروه‌های مطالعه",
			"یادداشت‌برداری پیشرفته",
			"نشانک‌گذاری هوشمند",
		},
	},
	{
		ID:          "gold",
		Name:        "پلن طلایی",
		Price:       domain.PlanPrice{Monthly: 99000, Yearly: 990000},
		Description: "برای مطالعه حرفه‌ای",
		Recommended: true,
		SupportType: "پشتیبانی اولویت‌دار",
		Features: []string{
			"دسترسی نامحدود به کتاب‌ها",
			"پشتیبانی اولویت‌دار ۲۴/۷",
			"تحلیل هوشمند مطالعه",
			"دسترسی به کتاب‌های صوتی",
			"مربی شخصی",
			"گروه‌های VIP",
			"دانلود نامحدود",
			"محتوای اختصاصی",
			"گزارش‌های تفصیلی",
			"API دسترسی برای توسعه‌دهندگان",
		},
	},
}

// Plans implements domain.PaymentService.
func (s *PaymentServiceImpl) Plans() []domain.Plan {
	plans := make([]domain.Plan, len(planCatalog))
	copy(plans, planCatalog)
	return plans
}

// Transactions implements domain.PaymentService.
func (s *PaymentServiceImpl) Transactions(ctx context.Context, profileID string) ([]domain.Transaction, error) {
	return s.txRepo.FindByProfile(ctx, profileID)
}

// ExportCSV implements domain.PaymentService: renders the profile's payment
// history as a downloadable CSV.
func (s *PaymentServiceImpl) ExportCSV(ctx context.Context, profileID string) ([]byte, error) {
	transactions, err := s.txRepo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "date", "amount", "currency", "plan", "payment_method", "status", "description"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, tx := range transactions {
		record := []string{
			tx.ID,
			tx.Date.Format("2006-01-02"),
			fmt.Sprintf("%d", tx.Amount),
			tx.Currency,
			tx.PlanName,
			tx.PaymentMethod,
			string(tx.Status),
			tx.Description,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Subscription implements domain.PaymentService. Profiles without a purchase
// carry the mock active gold subscription, matching the reference data.
func (s *PaymentServiceImpl) Subscription(ctx context.Context, profileID string) (*domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subscriptions[profileID]; ok {
		out := *sub
		return &out, nil
	}
	sub := defaultSubscription()
	s.subscriptions[profileID] = sub
	out := *sub
	return &out, nil
}

// Purchase implements domain.PaymentService: a simulated plan purchase with
// a fixed processing delay. A second purchase for the same profile while one
// is pending is rejected with ErrPurchaseInFlight.
func (s *PaymentServiceImpl) Purchase(ctx context.Context, profileID, planID string, cycle domain.BillingCycle) (*domain.Subscription, error) {
	plan, ok := s.findPlan(planID)
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	if cycle != domain.BillingMonthly && cycle != domain.BillingYearly {
		cycle = domain.BillingMonthly
	}

	if !s.acquire(profileID) {
		return nil, domain.ErrPurchaseInFlight
	}
	defer s.release(profileID)

	if err := s.simulateProcessing(ctx); err != nil {
		return nil, err
	}

	amount := plan.Price.Monthly
	period := 30 * 24 * time.Hour
	if cycle == domain.BillingYearly {
		amount = plan.Price.Yearly
		period = 365 * 24 * time.Hour
	}

	now := time.Now()
	sub := &domain.Subscription{
		PlanID:          plan.ID,
		PlanName:        plan.Name,
		Status:          domain.SubscriptionActive,
		StartDate:       now,
		EndDate:         now.Add(period),
		NextBillingDate: now.Add(period),
		BillingCycle:    cycle,
		Amount:          amount,
	}

	tx := &domain.Transaction{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		Date:          now,
		Amount:        amount,
		Currency:      "تومان",
		PlanName:      plan.Name,
		PaymentMethod: "کارت بانکی",
		Status:        domain.TransactionCompleted,
		Description:   "خرید اشتراک " + plan.Name,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.mu.Lock()
	s.subscriptions[profileID] = sub
	s.mu.Unlock()

	out := *sub
	return &out, nil
}

// Cancel implements domain.PaymentService.
func (s *PaymentServiceImpl) Cancel(ctx context.Context, profileID string) (*domain.Subscription, error) {
	if !s.acquire(profileID) {
		return nil, domain.ErrPurchaseInFlight
	}
	defer s.release(profileID)

	if err := s.simulateProcessing(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[profileID]
	if !ok {
		sub = defaultSubscription()
		s.subscriptions[profileID] = sub
	}
	sub.Status = domain.SubscriptionCancelled
	sub.NextBillingDate = time.Time{}
	out := *sub
	return &out, nil
}

func (s *PaymentServiceImpl) findPlan(planID string) (domain.Plan, bool) {
	for _, plan := range planCatalog {
		if plan.ID == planID {
			return plan, true
		}
	}
	return domain.Plan{}, false
}

func (s *PaymentServiceImpl) acquire(profileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[profileID]; busy {
		return false
	}
	s.inFlight[profileID] = struct{}{}
	return true
}

func (s *PaymentServiceImpl) release(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, profileID)
}

func (s *PaymentServiceImpl) simulateProcessing(ctx context.Context) error {
	if s.config.PurchaseDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.config.PurchaseDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// defaultSubscription is the mock active gold subscription from the
// reference data set.
func defaultSubscription() *domain.Subscription {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return &domain.Subscription{
		PlanID:          "gold",
		PlanName:        "پلن طلایی",
		Status:          domain.SubscriptionActive,
		StartDate:       start,
		EndDate:         end,
		NextBillingDate: end,
		BillingCycle:    domain.BillingYearly,
		Amount:          990000,
	}
}
