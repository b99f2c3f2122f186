package account

import (
	"time"

	"github.com/shopspring/decimal"

	"bet_tracker/internal/risk"
)

type Account struct {
	AccountID       string          `gorm:"column:account_id;primaryKey;type:uuid" json:"account_id"`
	Name            string          `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"`
	InitialBankroll decimal.Decimal `gorm:"column:initial_bankroll;type:numeric(20,2);not null" json:"initial_bankroll"`
	MaxBetPercent   decimal.Decimal `gorm:"column:max_bet_percent;type:numeric(20,6);not null" json:"max_bet_percent"`
	CreatedAt       time.Time       `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// Policy is the bankroll policy the risk check applies to this account.
func (a Account) Policy() risk.Policy {
	return risk.Policy{
		InitialBankroll: a.InitialBankroll,
		MaxBetPercent:   a.MaxBetPercent,
	}
}

type UpsertRequest struct {
	Name            string          `json:"name"`
	InitialBankroll decimal.Decimal `json:"initial_bankroll"`
	MaxBetPercent   decimal.Decimal `json:"max_bet_percent"`
}
