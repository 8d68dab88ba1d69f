package service

import (
	"context"
	"testing"
	"time"

	walleterrors "fastfix/internal/wallet/errors"
	"fastfix/pkg/config"
	mongotx "fastfix/pkg/db/mongo"
	apperrors "fastfix/pkg/errors"
	"fastfix/pkg/events"
	"fastfix/pkg/logger"
	"fastfix/pkg/metrics"
	"fastfix/pkg/model"

	"github.com/google/uuid"
)

type mockWalletRepository struct {
	creditFunc      func(ctx context.Context, accountID string, amount int64) (*model.Account, error)
	findAccountFunc func(ctx context.Context, accountID string) (*model.Account, error)
	appendEntryFunc func(ctx context.Context, entry *model.LedgerEntry) error
	findEntriesFunc func(ctx context.Context, accountID string, limit int, offset int64, order string) ([]*model.LedgerEntry, error)
	countFunc       func(ctx context.Context, accountID string) (int64, error)
}

func (m *mockWalletRepository) Credit(ctx context.Context, accountID string, amount int64) (*model.Account, error) {
	if m.creditFunc != nil {
		return m.creditFunc(ctx, accountID, amount)
	}
	return nil, walleterrors.ErrAccountNotFound
}

func (m *mockWalletRepository) Debit(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
	return nil, walleterrors.ErrAccountNotFound
}

func (m *mockWalletRepository) FindAccount(ctx context.Context, accountID string) (*model.Account, error) {
	if m.findAccountFunc != nil {
		return m.findAccountFunc(ctx, accountID)
	}
	return nil, walleterrors.ErrAccountNotFound
}

func (m *mockWalletRepository) AppendEntry(ctx context.Context, entry *model.LedgerEntry) error {
	if m.appendEntryFunc != nil {
		return m.appendEntryFunc(ctx, entry)
	}
	return nil
}

func (m *mockWalletRepository) FindEntries(ctx context.Context, accountID string, limit int, offset int64, order string) ([]*model.LedgerEntry, error) {
	if m.findEntriesFunc != nil {
		return m.findEntriesFunc(ctx, accountID, limit, offset, order)
	}
	return []*model.LedgerEntry{}, nil
}

func (m *mockWalletRepository) CountEntries(ctx context.Context, accountID string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, accountID)
	}
	return 0, nil
}

func (m *mockWalletRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo *mockWalletRepository) WalletService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewWalletService(repo, events.NewNoopPublisher(), metrics.NewCollector(log), cfg)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestLoadWallet_CreditsAndRecordsEntry(t *testing.T) {
	accountID := uuid.NewString()

	var creditedAmount int64
	var entry *model.LedgerEntry

	repo := &mockWalletRepository{
		creditFunc: func(ctx context.Context, id string, amount int64) (*model.Account, error) {
			creditedAmount = amount
			return &model.Account{ID: accountID, Role: model.RoleCustomer, Balance: 15000 + amount}, nil
		},
		appendEntryFunc: func(ctx context.Context, e *model.LedgerEntry) error {
			entry = e
			return nil
		},
	}

	svc := newTestService(repo)

	account, err := svc.LoadWallet(context.Background(), accountID, "100.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if creditedAmount != 10000 {
		t.Errorf("expected credit of 10000 piasters, got %d", creditedAmount)
	}
	if account.Balance != 25000 {
		t.Errorf("expected balance 25000, got %d", account.Balance)
	}
	if entry == nil {
		t.Fatal("expected ledger entry to be appended")
	}
	if entry.Cause != model.CauseTopUp || entry.Delta != 10000 || entry.Balance != 25000 {
		t.Errorf("unexpected ledger entry: %+v", entry)
	}
}

func TestLoadWallet_RejectsInvalidAmounts(t *testing.T) {
	svc := newTestService(&mockWalletRepository{})
	accountID := uuid.NewString()

	tests := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"zero with decimals", "0.00"},
		{"negative", "-50.00"},
		{"sub-piaster precision", "10.999"},
		{"not a number", "ten pounds"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.LoadWallet(context.Background(), accountID, tt.amount)
			assertAppErrorCode(t, err, apperrors.CodeInvalidAmount)
		})
	}
}

func TestLoadWallet_UnknownAccount(t *testing.T) {
	repo := &mockWalletRepository{
		creditFunc: func(ctx context.Context, id string, amount int64) (*model.Account, error) {
			return nil, walleterrors.ErrAccountNotFound
		},
	}

	svc := newTestService(repo)

	_, err := svc.LoadWallet(context.Background(), uuid.NewString(), "100.00")
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestStatement_ReconcilesAgainstBalance(t *testing.T) {
	accountID := uuid.NewString()

	entries := []*model.LedgerEntry{
		{AccountID: accountID, Cause: model.CauseTopUp, Delta: 20000, Balance: 20000},
		{AccountID: accountID, Cause: model.CauseTravelFee, Delta: -10000, Balance: 10000},
		{AccountID: accountID, Cause: model.CauseTopUp, Delta: 5000, Balance: 15000},
	}

	repo := &mockWalletRepository{
		findAccountFunc: func(ctx context.Context, id string) (*model.Account, error) {
			return &model.Account{ID: accountID, Role: model.RoleCustomer, Balance: 15000}, nil
		},
		findEntriesFunc: func(ctx context.Context, id string, limit int, offset int64, order string) ([]*model.LedgerEntry, error) {
			return entries, nil
		},
		countFunc: func(ctx context.Context, id string) (int64, error) {
			return int64(len(entries)), nil
		},
	}

	svc := newTestService(repo)

	got, total, err := svc.Statement(context.Background(), accountID, 100, 0, "asc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d (total %d)", len(got), total)
	}

	var sum int64
	for _, e := range got {
		sum += e.Delta
	}
	if sum != 15000 {
		t.Errorf("expected deltas to sum to the stored balance 15000, got %d", sum)
	}
}

func TestStatement_UnknownAccount(t *testing.T) {
	svc := newTestService(&mockWalletRepository{})

	_, _, err := svc.Statement(context.Background(), uuid.NewString(), 100, 0, "asc")
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}
