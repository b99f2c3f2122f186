package account

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bet_tracker/internal/config"
	"bet_tracker/internal/wager"
)

type Service struct {
	repo AccountRepository
	log  *zap.Logger
}

func NewService(repo AccountRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, accountID string) (*Account, error) {
	if !validID(accountID) {
		return nil, ErrAccountNotFound
	}
	return s.repo.Get(ctx, accountID)
}

func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, wager.Invalid("Account name is required.")
	}
	if !req.InitialBankroll.IsPositive() {
		return nil, wager.Invalid("Initial bankroll must be a positive number.")
	}

	a, err := s.repo.Upsert(ctx, &Account{
		Name:            name,
		InitialBankroll: req.InitialBankroll.Round(2),
		MaxBetPercent:   req.MaxBetPercent,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("account saved",
		zap.String("account_id", a.AccountID),
		zap.String("name", a.Name),
		zap.String("initial_bankroll", a.InitialBankroll.String()),
		zap.String("max_bet_percent", a.MaxBetPercent.String()))
	return a, nil
}

func (s *Service) Delete(ctx context.Context, accountID string) error {
	if !validID(accountID) {
		return ErrAccountNotFound
	}
	if err := s.repo.Delete(ctx, accountID); err != nil {
		return err
	}
	s.log.Info("account deleted", zap.String("account_id", accountID))
	return nil
}

// EnsureDefault creates the configured default account when none exist.
func (s *Service) EnsureDefault(ctx context.Context, cfg config.LedgerConfig) (*Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		return &accounts[0], nil
	}
	return s.Upsert(ctx, UpsertRequest{
		Name:            cfg.DefaultAccount,
		InitialBankroll: decimal.NewFromFloat(cfg.DefaultInitialBankroll),
		MaxBetPercent:   decimal.NewFromFloat(cfg.DefaultMaxBetPercent),
	})
}

// validID reports whether id can name an account. Ids are uuids; anything
// else cannot exist and must not reach the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
