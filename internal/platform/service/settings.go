package service

import (
	"context"
	"errors"

	platformerrors "fastfix/internal/platform/errors"
	"fastfix/internal/platform/repository"
	"fastfix/pkg/config"
	apperrors "fastfix/pkg/errors"
	"fastfix/pkg/model"
	"fastfix/pkg/money"
)

type SettingsService interface {
	Get(ctx context.Context) (*model.PlatformSettings, error)
	Update(ctx context.Context, update *model.PlatformSettingsUpdate) (*model.PlatformSettings, error)
	EnsureDefaults(ctx context.Context) error
}

type settingsService struct {
	repo repository.SettingsRepository
	cfg  *config.Config
}

func NewSettingsService(repo repository.SettingsRepository, cfg *config.Config) SettingsService {
	return &settingsService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *settingsService) Get(ctx context.Context) (*model.PlatformSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, platformerrors.ErrNotFound) {
			return nil, apperrors.NotFound("Platform settings")
		}
		return nil, apperrors.Internal("Failed to load platform settings", err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, update *model.PlatformSettingsUpdate) (*model.PlatformSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if update.CommissionRate != nil {
		if _, err := money.ParseRate(*update.CommissionRate); err != nil {
			s.cfg.Log.Warn("Rejected commission rate update", "rate", *update.CommissionRate, "error", err)
			return nil, apperrors.InvalidRate("Commission rate must be a decimal between 0 and 1")
		}
		settings.CommissionRate = *update.CommissionRate
	}

	if update.MinimumBalanceToAccept != nil {
		minBalance, err := money.Parse(*update.MinimumBalanceToAccept)
		if err != nil {
			return nil, apperrors.InvalidAmount("Minimum balance must be a non-negative EGP amount")
		}
		settings.MinimumBalanceToAccept = minBalance
	}

	if update.TravelFee != nil {
		fee, err := money.Parse(*update.TravelFee)
		if err != nil {
			return nil, apperrors.InvalidAmount("Travel fee must be a non-negative EGP amount")
		}
		settings.TravelFee = fee
	}

	if err := s.repo.Replace(ctx, settings); err != nil {
		s.cfg.Log.Error("Failed to update platform settings", "error", err)
		return nil, apperrors.Internal("Failed to update platform settings", err)
	}

	s.cfg.Log.Info("Platform settings updated",
		"commission_rate", settings.CommissionRate,
		"minimum_balance_to_accept", money.Format(settings.MinimumBalanceToAccept),
		"travel_fee", money.Format(settings.TravelFee),
	)
	return settings, nil
}

// EnsureDefaults seeds the settings document from configuration on startup.
func (s *settingsService) EnsureDefaults(ctx context.Context) error {
	defaults := &model.PlatformSettings{
		ID:                     model.PlatformSettingsID,
		CommissionRate:         s.cfg.CommissionRate,
		MinimumBalanceToAccept: s.cfg.MinimumBalanceToAccept,
		TravelFee:              s.cfg.TravelFee,
	}

	if err := s.repo.EnsureDefaults(ctx, defaults); err != nil {
		return apperrors.Internal("Failed to seed platform settings", err)
	}

	s.cfg.Log.Info("Platform settings ready",
		"commission_rate", defaults.CommissionRate,
		"minimum_balance_to_accept", money.Format(defaults.MinimumBalanceToAccept),
		"travel_fee", money.Format(defaults.TravelFee),
	)
	return nil
}
