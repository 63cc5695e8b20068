package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// TransactionRepositoryImpl implements domain.TransactionRepository using GORM
type TransactionRepositoryImpl struct {
	db *gorm.DB
}

// DBTransaction represents the database model for a payment-history row
type DBTransaction struct {
	ID            string         `gorm:"primaryKey;size:64"`
	ProfileID     string         `gorm:"index;size:64"`
	Date          time.Time      `gorm:"index"`
	Amount        int64
	Currency      string         `gorm:"size:32"`
	PlanName      string         `gorm:"size:128"`
	PaymentMethod string         `gorm:"size:64"`
	Status        string         `gorm:"index;size:32"`
	Description   string         `gorm:"size:255"`
	CreatedAt     time.Time      `gorm:"index"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBTransaction) TableName() string {
	return "transactions"
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domain.TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

// Create implements domain.TransactionRepository
func (r *TransactionRepositoryImpl) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(r.domainToDB(tx)).Error
}

// FindByProfile implements domain.TransactionRepository, newest first.
// Rows seeded without a profile id belong to every profile; they are the
// shared mock history.
func (r *TransactionRepositoryImpl) FindByProfile(ctx context.Context, profileID string) ([]domain.Transaction, error) {
	var rows []DBTransaction
	err := r.db.WithContext(ctx).
		Where("profile_id = ? OR profile_id = ''", profileID).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, *r.dbToDomain(&rows[i]))
	}
	return transactions, nil
}

// Count implements domain.TransactionRepository
func (r *TransactionRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBTransaction{}).Count(&count).Error
	return count, err
}

// Seed inserts the reference mock history once, on an empty table.
func (r *TransactionRepositoryImpl) Seed(ctx context.Context) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []domain.Transaction{
		{
			ID:            uuid.NewString(),
			Date:          time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Amount:        99000,
			Currency:      "تومان",
			PlanName:      "پلن طلایی",
			PaymentMethod: "کارت بانکی",
			Status:        domain.TransactionCompleted,
			Description:   "تمدید اشتراک سالانه",
		},
		{
			ID:            uuid.NewString(),
			Date:          time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC),
			Amount:        49000,
			Currency:      "تومان",
			PlanName:      "پلن نقره‌ای",
			PaymentMethod: "کیف پول",
			Status:        domain.TransactionCompleted,
			Description:   "ارتقا از پلن پایه",
		},
		{
			ID:            uuid.NewString(),
			Date:          time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC),
			Amount:        29000,
			Currency:      "تومان",
			PlanName:      "پلن برنزی",
			PaymentMethod: "کارت بانکی",
			Status:        domain.TransactionFailed,
			Description:   "خرید اولیه اشتراک",
		},
		{
			ID:            uuid.NewString(),
			Date:          time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC),
			Amount:        19000,
			Currency:      "تومان",
			PlanName:      "پلن پایه",
			PaymentMethod: "کارت بانکی",
			Status:        domain.TransactionCompleted,
			Description:   "اولین خرید",
		},
	}
	for i := range seed {
		if err := r.Create(ctx, &seed[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransactionRepositoryImpl) domainToDB(tx *domain.Transaction) *DBTransaction {
	return &DBTransaction{
		ID:            tx.ID,
		ProfileID:     tx.ProfileID,
		Date:          tx.Date,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		PlanName:      tx.PlanName,
		PaymentMethod: tx.PaymentMethod,
		Status:        string(tx.Status),
		Description:   tx.Description,
	}
}

func (r *TransactionRepositoryImpl) dbToDomain(row *DBTransaction) *domain.Transaction {
	return &domain.Transaction{
		ID:            row.ID,
		ProfileID:     row.ProfileID,
		Date:          row.Date,
		Amount:        row.Amount,
		Currency:      row.Currency,
		PlanName:      row.PlanName,
		PaymentMethod: row.PaymentMethod,
		Status:        domain.TransactionStatus(row.Status),
		Description:   row.Description,
	}
}
