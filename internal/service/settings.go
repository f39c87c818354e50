package service

import (
	"context"
	"fmt"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/repo"
)

// SettingsService reads and patches the scalar ledger knobs.
type SettingsService struct {
	settings repo.SettingsRepo
}

// NewSettingsService constructs a SettingsService backed by the provided repo.
func NewSettingsService(settings repo.SettingsRepo) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the current settings; unset knobs read as zero.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	limit, err := s.settings.Get(ctx, repo.SettingFuelSubsidyLimit)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Get: %w", err)
	}
	correction, err := s.settings.Get(ctx, repo.SettingMileageCorrection)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Get: %w", err)
	}
	return domain.Settings{FuelSubsidyLimit: limit, MileageCorrection: correction}, nil
}

// Patch applies a partial update and returns the resulting settings.
// Negative values are rejected with domain.ErrValidation.
func (s *SettingsService) Patch(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	if patch.FuelSubsidyLimit != nil {
		if *patch.FuelSubsidyLimit < 0 {
			return domain.Settings{}, fmt.Errorf("%w: fuel_subsidy_limit must not be negative", domain.ErrValidation)
		}
		if err := s.settings.Set(ctx, repo.SettingFuelSubsidyLimit, *patch.FuelSubsidyLimit); err != nil {
			return domain.Settings{}, fmt.Errorf("service.SettingsService.Patch: %w", err)
		}
	}
	if patch.MileageCorrection != nil {
		if *patch.MileageCorrection < 0 {
			return domain.Settings{}, fmt.Errorf("%w: mileage_correction must not be negative", domain.ErrValidation)
		}
		if err := s.settings.Set(ctx, repo.SettingMileageCorrection, *patch.MileageCorrection); err != nil {
			return domain.Settings{}, fmt.Errorf("service.SettingsService.Patch: %w", err)
		}
	}
	return s.Get(ctx)
}
