package service

import (
	"context"
	"errors"

	walleterrors "fastfix/internal/wallet/errors"
	"fastfix/internal/wallet/repository"
	"fastfix/pkg/config"
	apperrors "fastfix/pkg/errors"
	"fastfix/pkg/events"
	"fastfix/pkg/metrics"
	"fastfix/pkg/model"
	"fastfix/pkg/money"

	"go.mongodb.org/mongo-driver/mongo"
)

type WalletService interface {
	LoadWallet(ctx context.Context, accountID string, amount string) (*model.Account, error)
	Balance(ctx context.Context, accountID string) (*model.Account, error)
	Statement(ctx context.Context, accountID string, limit int, offset int64, order string) ([]*model.LedgerEntry, int64, error)
}

type walletService struct {
	repo      repository.WalletRepository
	publisher events.Publisher
	metrics   *metrics.Collector
	cfg       *config.Config
}

func NewWalletService(
	repo repository.WalletRepository,
	publisher events.Publisher,
	collector *metrics.Collector,
	cfg *config.Config,
) WalletService {
	return &walletService{
		repo:      repo,
		publisher: publisher,
		metrics:   collector,
		cfg:       cfg,
	}
}

// LoadWallet credits the account and appends the matching ledger entry in one
// transaction. The amount must be strictly positive.
func (s *walletService) LoadWallet(ctx context.Context, accountID string, amount string) (*model.Account, error) {
	if accountID == "" {
		return nil, apperrors.InvalidInput("Account ID cannot be empty")
	}

	piasters, err := money.Parse(amount)
	if err != nil {
		return nil, apperrors.InvalidAmount("Top-up amount must be a positive EGP amount with at most two decimals")
	}
	if piasters <= 0 {
		return nil, apperrors.InvalidAmount("Top-up amount must be greater than zero")
	}

	var account *model.Account
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		credited, err := s.repo.Credit(sessCtx, accountID, piasters)
		if err != nil {
			if errors.Is(err, walleterrors.ErrAccountNotFound) {
				return apperrors.NotFoundWithID("Account", accountID)
			}
			return apperrors.Internal("Failed to credit wallet", err)
		}

		entry := &model.LedgerEntry{
			AccountID: accountID,
			Cause:     model.CauseTopUp,
			Delta:     piasters,
			Balance:   credited.Balance,
		}
		if err := s.repo.AppendEntry(sessCtx, entry); err != nil {
			return apperrors.Internal("Failed to record ledger entry", err)
		}

		account = credited
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to load wallet", "account_id", accountID, "error", err)
		return nil, err
	}

	s.metrics.WalletTopUp()
	s.metrics.SetWalletBalance(account.ID, string(account.Role), account.Balance)

	s.publisher.Publish(ctx, events.TypeWalletCredited, accountID, events.WalletCredited{
		AccountID: accountID,
		Amount:    piasters,
		Balance:   account.Balance,
	})

	s.cfg.Log.Info("Wallet loaded",
		"account_id", accountID,
		"amount", money.Format(piasters),
		"balance", money.Format(account.Balance),
	)
	return account, nil
}

func (s *walletService) Balance(ctx context.Context, accountID string) (*model.Account, error) {
	if accountID == "" {
		return nil, apperrors.InvalidInput("Account ID cannot be empty")
	}

	account, err := s.repo.FindAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, walleterrors.ErrAccountNotFound) {
			return nil, apperrors.NotFoundWithID("Account", accountID)
		}
		return nil, apperrors.Internal("Failed to retrieve balance", err)
	}

	return account, nil
}

// Statement returns the account's ledger entries. Summing deltas over the
// full statement reconciles against the stored balance.
func (s *walletService) Statement(ctx context.Context, accountID string, limit int, offset int64, order string) ([]*model.LedgerEntry, int64, error) {
	if accountID == "" {
		return nil, 0, apperrors.InvalidInput("Account ID cannot be empty")
	}

	if _, err := s.Balance(ctx, accountID); err != nil {
		return nil, 0, err
	}

	entries, err := s.repo.FindEntries(ctx, accountID, limit, offset, order)
	if err != nil {
		s.cfg.Log.Error("Failed to list ledger entries", "account_id", accountID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve ledger entries", err)
	}

	count, err := s.repo.CountEntries(ctx, accountID)
	if err != nil {
		s.cfg.Log.Error("Failed to count ledger entries", "account_id", accountID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count ledger entries", err)
	}

	return entries, count, nil
}
