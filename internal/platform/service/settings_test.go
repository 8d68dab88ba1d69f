package service

import (
	"context"
	"testing"
	"time"

	"fastfix/pkg/config"
	apperrors "fastfix/pkg/errors"
	"fastfix/pkg/logger"
	"fastfix/pkg/model"
)

type mockSettingsRepository struct {
	getFunc     func(ctx context.Context) (*model.PlatformSettings, error)
	replaceFunc func(ctx context.Context, settings *model.PlatformSettings) error
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*model.PlatformSettings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return &model.PlatformSettings{
		ID:                     model.PlatformSettingsID,
		CommissionRate:         "0.15",
		MinimumBalanceToAccept: 5000,
		TravelFee:              10000,
	}, nil
}

func (m *mockSettingsRepository) Replace(ctx context.Context, settings *model.PlatformSettings) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, settings)
	}
	return nil
}

func (m *mockSettingsRepository) EnsureDefaults(ctx context.Context, defaults *model.PlatformSettings) error {
	return nil
}

func newTestService(repo *mockSettingsRepository) SettingsService {
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
	return NewSettingsService(repo, cfg)
}

func strPtr(s string) *string { return &s }

func TestUpdate_CommissionRate(t *testing.T) {
	var stored *model.PlatformSettings
	repo := &mockSettingsRepository{
		replaceFunc: func(ctx context.Context, settings *model.PlatformSettings) error {
			stored = settings
			return nil
		},
	}

	svc := newTestService(repo)

	settings, err := svc.Update(context.Background(), &model.PlatformSettingsUpdate{
		CommissionRate: strPtr("0.20"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settings.CommissionRate != "0.20" {
		t.Errorf("expected rate 0.20, got %s", settings.CommissionRate)
	}
	if stored == nil || stored.CommissionRate != "0.20" {
		t.Error("expected updated settings to be stored")
	}
	// Untouched fields keep their current values.
	if settings.MinimumBalanceToAccept != 5000 || settings.TravelFee != 10000 {
		t.Errorf("expected untouched amounts to survive, got %+v", settings)
	}
}

func TestUpdate_RejectsOutOfBoundsRates(t *testing.T) {
	svc := newTestService(&mockSettingsRepository{})

	for _, rate := range []string{"-0.10", "1.5", "abc", ""} {
		_, err := svc.Update(context.Background(), &model.PlatformSettingsUpdate{
			CommissionRate: strPtr(rate),
		})
		if err == nil {
			t.Fatalf("expected rate %q to be rejected", rate)
		}
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != apperrors.CodeInvalidRate {
			t.Errorf("expected INVALID_RATE for %q, got %v", rate, err)
		}
	}
}

func TestUpdate_RejectsNegativeMinimumBalance(t *testing.T) {
	svc := newTestService(&mockSettingsRepository{})

	_, err := svc.Update(context.Background(), &model.PlatformSettingsUpdate{
		MinimumBalanceToAccept: strPtr("-50.00"),
	})
	if err == nil {
		t.Fatal("expected negative minimum balance to be rejected")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodeInvalidAmount {
		t.Errorf("expected INVALID_AMOUNT, got %v", err)
	}
}

func TestUpdate_BoundaryRatesAccepted(t *testing.T) {
	svc := newTestService(&mockSettingsRepository{})

	for _, rate := range []string{"0", "1", "0.5"} {
		if _, err := svc.Update(context.Background(), &model.PlatformSettingsUpdate{
			CommissionRate: strPtr(rate),
		}); err != nil {
			t.Errorf("expected rate %q to be accepted, got %v", rate, err)
		}
	}
}
