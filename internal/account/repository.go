package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bet_tracker/internal/ledger"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	List(ctx context.Context) ([]Account, error)
	Get(ctx context.Context, accountID string) (*Account, error)
	Upsert(ctx context.Context, a *Account) (*Account, error)
	Delete(ctx context.Context, accountID string) error
}

type AccountRepositoryImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepositoryImpl {
	return &AccountRepositoryImpl{db: db}
}

func (r *AccountRepositoryImpl) List(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepositoryImpl) Get(ctx context.Context, accountID string) (*Account, error) {
	var a Account
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// Upsert inserts the account or, when the name is taken, updates that
// account's bankroll fields. It returns the stored row.
func (r *AccountRepositoryImpl) Upsert(ctx context.Context, a *Account) (*Account, error) {
	var stored Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		row := *a
		if row.AccountID == "" {
			row.AccountID = uuid.New().String()
		}
		row.CreatedAt = now
		row.UpdatedAt = now

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"initial_bankroll", "max_bet_percent", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("name = ?", a.Name).First(&stored).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}
	return &stored, nil
}

// Delete removes the account and all of its wagers.
func (r *AccountRepositoryImpl) Delete(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ledger.DeleteAccount(ctx, tx, accountID); err != nil {
			return err
		}
		result := tx.Where("account_id = ?", accountID).Delete(&Account{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete account: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAccountNotFound
		}
		return nil
	})
}
