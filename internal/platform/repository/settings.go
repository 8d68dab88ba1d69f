package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	platformerrors "fastfix/internal/platform/errors"
	"fastfix/pkg/config"
	"fastfix/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Platform_settings"
)

type mongoSettingsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type SettingsRepository interface {
	Get(ctx context.Context) (*model.PlatformSettings, error)
	Replace(ctx context.Context, settings *model.PlatformSettings) error
	EnsureDefaults(ctx context.Context, defaults *model.PlatformSettings) error
}

func NewMongoSettingsRepository(cfg *config.Config) SettingsRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSettingsRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSettingsRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoSettingsRepository) Get(ctx context.Context) (*model.PlatformSettings, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var settings model.PlatformSettings
	err := r.collection.FindOne(ctx, bson.M{"_id": model.PlatformSettingsID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, platformerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load platform settings: %w", err)
	}

	return &settings, nil
}

func (r *mongoSettingsRepository) Replace(ctx context.Context, settings *model.PlatformSettings) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	settings.ID = model.PlatformSettingsID
	settings.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": model.PlatformSettingsID}, settings, opts); err != nil {
		return fmt.Errorf("failed to store platform settings: %w", err)
	}

	return nil
}

// EnsureDefaults seeds the singleton document on first boot without touching
// values an admin may already have changed.
func (r *mongoSettingsRepository) EnsureDefaults(ctx context.Context, defaults *model.PlatformSettings) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$setOnInsert": bson.M{
			"commission_rate":           defaults.CommissionRate,
			"minimum_balance_to_accept": defaults.MinimumBalanceToAccept,
			"travel_fee":                defaults.TravelFee,
			"updated_at":                time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": model.PlatformSettingsID}, update, opts); err != nil {
		return fmt.Errorf("failed to seed platform settings: %w", err)
	}

	return nil
}
