package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/repo"
	"github.com/ywjeong/haulbook/internal/service"
)

func TestSettingsService_Get_UnsetReadsZero(t *testing.T) {
	svc := service.NewSettingsService(&mockSettingsRepo{})

	got, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Zero(t, got.FuelSubsidyLimit)
	assert.Zero(t, got.MileageCorrection)
}

func TestSettingsService_Patch_Partial(t *testing.T) {
	store := &mockSettingsRepo{values: map[string]float64{
		repo.SettingFuelSubsidyLimit:  200,
		repo.SettingMileageCorrection: 130,
	}}
	svc := service.NewSettingsService(store)

	limit := 250.0
	got, err := svc.Patch(context.Background(), domain.SettingsPatch{FuelSubsidyLimit: &limit})

	require.NoError(t, err)
	assert.Equal(t, 250.0, got.FuelSubsidyLimit)
	assert.Equal(t, 130.0, got.MileageCorrection, "absent field stays untouched")
}

func TestSettingsService_Patch_NegativeRejected(t *testing.T) {
	store := &mockSettingsRepo{}
	svc := service.NewSettingsService(store)

	bad := -1.0
	_, err := svc.Patch(context.Background(), domain.SettingsPatch{FuelSubsidyLimit: &bad})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, store.values, "nothing written on rejection")
}
