package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/handler"
)

// mockSettingsServicer is a test double for handler.SettingsServicer.
type mockSettingsServicer struct {
	get   func(ctx context.Context) (domain.Settings, error)
	patch func(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
}

func (m *mockSettingsServicer) Get(ctx context.Context) (domain.Settings, error) {
	return m.get(ctx)
}
func (m *mockSettingsServicer) Patch(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	return m.patch(ctx, patch)
}

var _ handler.SettingsServicer = (*mockSettingsServicer)(nil)

func TestGetSettings_200(t *testing.T) {
	svc := &mockSettingsServicer{
		get: func(_ context.Context) (domain.Settings, error) {
			return domain.Settings{FuelSubsidyLimit: 200, MileageCorrection: 130}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{settings: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Settings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 200.0, got.FuelSubsidyLimit)
}

func TestPatchSettings_200_PartialBody(t *testing.T) {
	var got domain.SettingsPatch
	svc := &mockSettingsServicer{
		patch: func(_ context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
			got = patch
			return domain.Settings{FuelSubsidyLimit: 250, MileageCorrection: 130}, nil
		},
	}

	body := jsonBody(t, map[string]any{"fuel_subsidy_limit": 250})
	req := httptest.NewRequest(http.MethodPatch, "/settings", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{settings: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.FuelSubsidyLimit)
	assert.Equal(t, 250.0, *got.FuelSubsidyLimit)
	assert.Nil(t, got.MileageCorrection, "absent field stays nil")
}

func TestPatchSettings_422_Negative(t *testing.T) {
	svc := &mockSettingsServicer{
		patch: func(_ context.Context, _ domain.SettingsPatch) (domain.Settings, error) {
			return domain.Settings{}, fmt.Errorf("%w: fuel_subsidy_limit must not be negative", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"fuel_subsidy_limit": -5})
	req := httptest.NewRequest(http.MethodPatch, "/settings", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{settings: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
