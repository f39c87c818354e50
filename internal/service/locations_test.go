package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/service"
)

func TestLocationService_Register_TrimsFields(t *testing.T) {
	locs := &mockLocationRepo{}
	svc := service.NewLocationService(locs)

	err := svc.Register(context.Background(), "  군산항 ", " 전북 군산시 ", "", false)

	require.NoError(t, err)
	require.Len(t, locs.upserted, 1)
	assert.Equal(t, "군산항", locs.upserted[0].Name)
	assert.Equal(t, "전북 군산시", locs.upserted[0].Address)
	assert.Equal(t, []bool{false}, locs.forced)
}

func TestLocationService_Register_EmptyName(t *testing.T) {
	svc := service.NewLocationService(&mockLocationRepo{})

	err := svc.Register(context.Background(), "   ", "addr", "", false)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLocationService_Register_ForcePassedThrough(t *testing.T) {
	locs := &mockLocationRepo{}
	svc := service.NewLocationService(locs)

	err := svc.Register(context.Background(), "안성", "새 주소", "", true)

	require.NoError(t, err)
	assert.Equal(t, []bool{true}, locs.forced)
}

func TestLocationService_List_NeverNil(t *testing.T) {
	svc := service.NewLocationService(&mockLocationRepo{})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLocationService_GetByName_NotFound(t *testing.T) {
	svc := service.NewLocationService(&mockLocationRepo{})

	_, err := svc.GetByName(context.Background(), "없는곳")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
