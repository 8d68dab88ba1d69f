package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountsrepo "fastfix/internal/accounts/repository"
	walleterrors "fastfix/internal/wallet/errors"
	"fastfix/pkg/config"
	mongotx "fastfix/pkg/db/mongo"
	"fastfix/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	LedgerCollectionName = "Ledger_entries"
)

type mongoWalletRepository struct {
	cfg       *config.Config
	accounts  *mongo.Collection
	ledger    *mongo.Collection
	txManager mongotx.TransactionManager
}

// WalletRepository owns all balance mutations. Credit and Debit are single
// conditional writes, so a debit can never take a balance below zero even
// under concurrent load.
type WalletRepository interface {
	Credit(ctx context.Context, accountID string, amount int64) (*model.Account, error)
	Debit(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error)
	FindAccount(ctx context.Context, accountID string) (*model.Account, error)
	AppendEntry(ctx context.Context, entry *model.LedgerEntry) error
	FindEntries(ctx context.Context, accountID string, limit int, offset int64, order string) ([]*model.LedgerEntry, error)
	CountEntries(ctx context.Context, accountID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoWalletRepository(cfg *config.Config) WalletRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWalletRepository{
		cfg:       cfg,
		accounts:  db.Collection(accountsrepo.CollectionName),
		ledger:    db.Collection(LedgerCollectionName),
		txManager: mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoWalletRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoWalletRepository) Credit(ctx context.Context, accountID string, amount int64) (*model.Account, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": accountID}
	update := bson.M{"$inc": bson.M{"balance": amount}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account model.Account
	err := r.accounts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, walleterrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to credit account: %w", err)
	}

	return &account, nil
}

// Debit subtracts amount from the balance only if the current balance is at
// least floor. Callers pass floor = amount for a plain debit, or a higher
// floor to enforce a pre-debit minimum.
func (r *mongoWalletRepository) Debit(ctx context.Context, accountID string, amount int64, floor int64) (*model.Account, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     accountID,
		"balance": bson.M{"$gte": floor},
	}
	update := bson.M{"$inc": bson.M{"balance": -amount}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account model.Account
	err := r.accounts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&account)
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to debit account: %w", err)
	}

	// Filter missed: distinguish a missing account from a low balance.
	if _, findErr := r.FindAccount(ctx, accountID); findErr != nil {
		return nil, findErr
	}
	return nil, walleterrors.ErrInsufficientFunds
}

func (r *mongoWalletRepository) FindAccount(ctx context.Context, accountID string) (*model.Account, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var account model.Account
	err := r.accounts.FindOne(ctx, bson.M{"_id": accountID}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, walleterrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}

func (r *mongoWalletRepository) AppendEntry(ctx context.Context, entry *model.LedgerEntry) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.ledger.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return nil
}

func (r *mongoWalletRepository) FindEntries(ctx context.Context, accountID string, limit int, offset int64, order string) ([]*model.LedgerEntry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	sortOrder := 1
	if order == "desc" {
		sortOrder = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: sortOrder}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.ledger.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.LedgerEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode ledger entries: %w", err)
	}

	return entries, nil
}

func (r *mongoWalletRepository) CountEntries(ctx context.Context, accountID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.ledger.CountDocuments(ctx, bson.M{"account_id": accountID})
	if err != nil {
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	return count, nil
}

func (r *mongoWalletRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
