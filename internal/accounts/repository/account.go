package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountserrors "fastfix/internal/accounts/errors"
	"fastfix/pkg/config"
	"fastfix/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Accounts"
)

type mongoAccountRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id string) (*model.Account, error)
	FindTechnicians(ctx context.Context, approval model.ApprovalStatus, limit int, offset int64) ([]*model.Account, error)
	CountTechnicians(ctx context.Context, approval model.ApprovalStatus) (int64, error)
	SetApproval(ctx context.Context, id string, to model.ApprovalStatus) error
}

func NewMongoAccountRepository(cfg *config.Config) AccountRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAccountRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAccountRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAccountRepository) Create(ctx context.Context, account *model.Account) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	account.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *mongoAccountRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var account model.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, accountserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}

func (r *mongoAccountRepository) FindTechnicians(ctx context.Context, approval model.ApprovalStatus, limit int, offset int64) ([]*model.Account, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, technicianFilter(approval), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find technicians: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []*model.Account
	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode technicians: %w", err)
	}

	return accounts, nil
}

func (r *mongoAccountRepository) CountTechnicians(ctx context.Context, approval model.ApprovalStatus) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, technicianFilter(approval))
	if err != nil {
		return 0, fmt.Errorf("failed to count technicians: %w", err)
	}
	return count, nil
}

func technicianFilter(approval model.ApprovalStatus) bson.M {
	filter := bson.M{"role": model.RoleTechnician}
	if approval != "" {
		filter["approval_status"] = approval
	}
	return filter
}

// SetApproval flips a pending technician to approved or rejected. The filter
// pins the pending state so a decision can never overwrite an earlier one.
func (r *mongoAccountRepository) SetApproval(ctx context.Context, id string, to model.ApprovalStatus) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":             id,
		"role":            model.RoleTechnician,
		"approval_status": model.ApprovalPending,
	}
	update := bson.M{
		"$set": bson.M{"approval_status": to},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set approval status: %w", err)
	}

	if result.MatchedCount == 0 {
		return accountserrors.ErrNotPending
	}

	return nil
}
