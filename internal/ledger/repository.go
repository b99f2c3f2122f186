package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"bet_tracker/internal/wager"
)

// Store is the persistence collaborator of a Ledger. Save replaces every
// wager of the account; it never merges.
type Store interface {
	Load(ctx context.Context, accountID string) ([]wager.Wager, error)
	Save(ctx context.Context, accountID string, wagers []wager.Wager) error
}

type RepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Load(ctx context.Context, accountID string) ([]wager.Wager, error) {
	var wagers []wager.Wager
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("slip_no ASC").
		Find(&wagers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load wagers: %w", err)
	}
	return wagers, nil
}

func (r *RepositoryImpl) Save(ctx context.Context, accountID string, wagers []wager.Wager) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&wager.Wager{}).Error; err != nil {
			return fmt.Errorf("failed to clear wagers: %w", err)
		}
		if len(wagers) == 0 {
			return nil
		}
		rows := make([]wager.Wager, len(wagers))
		for i, w := range wagers {
			rows[i] = w.Clone()
			rows[i].AccountID = accountID
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to save wagers: %w", err)
		}
		return nil
	})
}

// DeleteAccount removes every wager of the account inside tx.
func DeleteAccount(ctx context.Context, tx *gorm.DB, accountID string) error {
	if err := tx.WithContext(ctx).Where("account_id = ?", accountID).Delete(&wager.Wager{}).Error; err != nil {
		return fmt.Errorf("failed to delete account wagers: %w", err)
	}
	return nil
}
