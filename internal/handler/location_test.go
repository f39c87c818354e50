package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/handler"
)

// mockLocationServicer is a test double for handler.LocationServicer.
type mockLocationServicer struct {
	register func(ctx context.Context, name, address, memo string, force bool) error
	list     func(ctx context.Context) ([]domain.Location, error)
}

func (m *mockLocationServicer) Register(ctx context.Context, name, address, memo string, force bool) error {
	return m.register(ctx, name, address, memo, force)
}
func (m *mockLocationServicer) List(ctx context.Context) ([]domain.Location, error) {
	return m.list(ctx)
}

var _ handler.LocationServicer = (*mockLocationServicer)(nil)

// ---- POST /locations -------------------------------------------------------

func TestRegisterLocation_204(t *testing.T) {
	var gotName string
	var gotForce bool
	svc := &mockLocationServicer{
		register: func(_ context.Context, name, _, _ string, force bool) error {
			gotName, gotForce = name, force
			return nil
		},
	}

	body := jsonBody(t, map[string]any{"name": "군산항", "address": "전북 군산시", "force": true})
	req := httptest.NewRequest(http.MethodPost, "/locations", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{locations: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "군산항", gotName)
	assert.True(t, gotForce)
}

// ---- GET /locations --------------------------------------------------------

func TestListLocations_200(t *testing.T) {
	svc := &mockLocationServicer{
		list: func(_ context.Context) ([]domain.Location, error) {
			return []domain.Location{{Name: "안성"}, {Name: "인천"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/locations", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{locations: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var locs []domain.Location
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&locs))
	require.Len(t, locs, 2)
}

// ---- GET /routes/recall ----------------------------------------------------

func TestRecallRoute_200(t *testing.T) {
	svc := &mockLedgerServicer{
		recall: func(_ context.Context, key domain.RouteKey) (domain.RouteRecall, error) {
			assert.Equal(t, domain.RouteKey{From: "안성", To: "부산"}, key)
			return domain.RouteRecall{Key: key, Fare: 450000, Distance: 350}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/routes/recall?from=안성&to=부산", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var recall domain.RouteRecall
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&recall))
	assert.Equal(t, int64(450000), recall.Fare)
}

func TestRecallRoute_400_MissingEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/routes/recall?from=안성", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: &mockLedgerServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- POST /routes/reconcile ------------------------------------------------

func TestReconcileRoutes_204(t *testing.T) {
	called := false
	svc := &mockLedgerServicer{
		reconcile: func(_ context.Context) error {
			called = true
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/routes/reconcile", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverWith{ledger: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}
